package activities

import (
	"context"
	"math/rand"
	"time"

	"shopbot/chat"
	"shopbot/config"
	"shopbot/models"

	"go.temporal.io/sdk/activity"
)

// ChatActivities wraps the pure intent resolver in a simulated
// assistant call with jittered latency.
type ChatActivities struct {
	baseDelay time.Duration
	jitter    time.Duration
}

// NewChatActivities creates a new ChatActivities instance
func NewChatActivities(cfg config.Config) *ChatActivities {
	return &ChatActivities{
		baseDelay: cfg.Latency.ChatBase.Std(),
		jitter:    cfg.Latency.ChatJitter.Std(),
	}
}

// ChatRequest is one user message together with the cart snapshot the
// resolver needs for checkout summaries.
type ChatRequest struct {
	Message   string      `json:"message"`
	SessionID string      `json:"session_id"`
	Cart      models.Cart `json:"cart"`
}

// Chat resolves a user message to an assistant response after a
// jittered delay. Resolution itself never fails; a missed product
// lookup is a normal response with a clarifying reply.
func (a *ChatActivities) Chat(ctx context.Context, req ChatRequest) (chat.Response, error) {
	logger := activity.GetLogger(ctx)

	delay := a.baseDelay
	if a.jitter > 0 {
		delay += time.Duration(rand.Int63n(int64(a.jitter)))
	}
	if err := simulateLatency(ctx, delay); err != nil {
		return chat.Response{}, err
	}

	resp := chat.Resolve(req.Message, req.Cart)

	logger.Info("Chat message resolved",
		"session_id", req.SessionID,
		"action", string(resp.Action),
		"products", len(resp.Products))
	return resp, nil
}
