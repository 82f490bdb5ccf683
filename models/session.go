package models

// User is the authenticated demo user
type User struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Session is the authenticated session produced by login. The token is
// opaque to everything but the auth gate; its presence means
// authenticated. Logout clears the whole session atomically, together
// with any in-flight order id.
type Session struct {
	Token     string `json:"token"`
	User      User   `json:"user"`
	SessionID string `json:"session_id"`
}
