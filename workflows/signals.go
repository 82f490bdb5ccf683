// Package workflows contains the three ShopBot workflows: the
// per-session conversation/cart state machine, the per-checkout order
// workflow, and the timer-driven delivery timeline.
package workflows

import "strconv"

// Signal and query names. Session signals go to the session workflow;
// retry/abandon go to the in-flight order workflow.
const (
	SignalChat           = "chat-message"
	SignalAddToCart      = "add-to-cart"
	SignalRemoveFromCart = "remove-from-cart"
	SignalCheckout       = "checkout"
	SignalLogout         = "logout"

	SignalRetryPayment = "retry-payment"
	SignalAbandonOrder = "abandon-order"

	QuerySessionState     = "session-state"
	QueryTranscript       = "chat-transcript"
	QueryOrderState       = "order-state"
	QueryDeliveryState    = "delivery-state"
	QueryDeliveryTimeline = "delivery-timeline"
)

// ErrTypeOrderAbandoned marks a checkout the user walked away from
// after a failed payment.
const ErrTypeOrderAbandoned = "OrderAbandoned"

// OrderWorkflowID derives the child workflow id for a session's
// in-flight order. At most one order is in flight per session, so the
// session id is enough to address it.
func OrderWorkflowID(sessionID string) string {
	return "order-" + sessionID
}

// DeliveryWorkflowID derives the delivery workflow id for an order
func DeliveryWorkflowID(orderID int) string {
	return "delivery-" + strconv.Itoa(orderID)
}
