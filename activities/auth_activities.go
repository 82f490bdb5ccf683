package activities

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"

	"shopbot/config"
	"shopbot/models"

	"github.com/google/uuid"
	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"
)

// AuthActivities gates sessions behind the fixed demo credential
type AuthActivities struct {
	demo       config.DemoConfig
	loginDelay time.Duration
}

// NewAuthActivities creates a new AuthActivities instance
func NewAuthActivities(cfg config.Config) *AuthActivities {
	return &AuthActivities{
		demo:       cfg.Demo,
		loginDelay: cfg.Latency.Login.Std(),
	}
}

// LoginRequest carries the credentials presented at login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login checks the credentials against the demo user and mints an
// opaque session token plus a fresh session id. Bad credentials fail
// with a non-retryable InvalidCredentials error; retrying the same
// wrong password cannot succeed.
func (a *AuthActivities) Login(ctx context.Context, req LoginRequest) (models.Session, error) {
	logger := activity.GetLogger(ctx)
	logger.Info("Authenticating user", "email", req.Email)

	if err := simulateLatency(ctx, a.loginDelay); err != nil {
		return models.Session{}, err
	}

	if req.Email != a.demo.Email || req.Password != a.demo.Password {
		return models.Session{}, temporal.NewNonRetryableApplicationError(
			"Invalid email or password", ErrTypeInvalidCredentials, nil)
	}

	user := models.User{ID: a.demo.UserID, Name: a.demo.UserName, Email: a.demo.Email}
	token, err := mintToken(user)
	if err != nil {
		return models.Session{}, fmt.Errorf("failed to mint session token: %w", err)
	}

	session := models.Session{
		Token:     token,
		User:      user,
		SessionID: "session_" + uuid.NewString(),
	}

	logger.Info("User authenticated", "email", user.Email, "session_id", session.SessionID)
	return session, nil
}

// mintToken builds the demo token: a base64 JSON payload with a 24h
// expiry. Opaque to every consumer; presence means authenticated.
func mintToken(user models.User) (string, error) {
	payload := map[string]interface{}{
		"id":    user.ID,
		"email": user.Email,
		"name":  user.Name,
		"exp":   time.Now().Add(24 * time.Hour).UnixMilli(),
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(data), nil
}
