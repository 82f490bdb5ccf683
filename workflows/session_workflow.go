package workflows

import (
	"errors"
	"fmt"
	"time"

	"shopbot/activities"
	"shopbot/catalog"
	"shopbot/chat"
	"shopbot/models"

	enumspb "go.temporal.io/api/enums/v1"
	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"
)

// SessionInput starts a session: the credentials to authenticate and
// the delivery stage interval handed down to delivery workflows.
type SessionInput struct {
	Email         string        `json:"email"`
	Password      string        `json:"password"`
	StageInterval time.Duration `json:"stage_interval"`
}

// CheckoutRequest is the checkout signal payload
type CheckoutRequest struct {
	Address string               `json:"address"`
	Method  models.PaymentMethod `json:"method"`
}

// SessionState is the queryable state of a session: the authenticated
// session, the cart, the last product subset the assistant showed, and
// the current order. The transcript is exposed through its own query.
type SessionState struct {
	Authenticated     bool                 `json:"authenticated"`
	Session           models.Session       `json:"session"`
	Cart              models.Cart          `json:"cart"`
	CartTotal         int                  `json:"cart_total"`
	CartCount         int                  `json:"cart_count"`
	LastShown         []models.Product     `json:"last_shown"`
	CurrentOrder      *models.Order        `json:"current_order,omitempty"`
	LastTransactionID string               `json:"last_txn_id,omitempty"`
	PendingCheckout   bool                 `json:"pending_checkout"`
	Transcript        []models.ChatMessage `json:"-"`
}

// SessionWorkflow is the session/cart state machine. It authenticates
// once, then processes signals one at a time off a single selector
// loop: a cart mutation is never visible mid-way through another
// mutation, and each screen has at most one outstanding request. The
// workflow completes on logout, which resets token, user, session id,
// and in-flight order id together.
func SessionWorkflow(ctx workflow.Context, input SessionInput) error {
	logger := workflow.GetLogger(ctx)
	logger.Info("SessionWorkflow started", "email", input.Email)

	if input.StageInterval <= 0 {
		input.StageInterval = 5 * time.Second
	}

	state := SessionState{}
	nextMessageID := 0

	err := workflow.SetQueryHandler(ctx, QuerySessionState, func() (SessionState, error) {
		snapshot := state
		snapshot.CartTotal = state.Cart.Total()
		snapshot.CartCount = state.Cart.Count()
		return snapshot, nil
	})
	if err != nil {
		return fmt.Errorf("failed to set query handler: %w", err)
	}
	err = workflow.SetQueryHandler(ctx, QueryTranscript, func() ([]models.ChatMessage, error) {
		return state.Transcript, nil
	})
	if err != nil {
		return fmt.Errorf("failed to set query handler: %w", err)
	}

	activityOptions := workflow.ActivityOptions{
		StartToCloseTimeout: 30 * time.Second,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    1 * time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    10 * time.Second,
			MaximumAttempts:    3,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, activityOptions)

	appendMessage := func(sender models.Sender, text string) {
		nextMessageID++
		state.Transcript = append(state.Transcript, models.ChatMessage{
			ID:     nextMessageID,
			Sender: sender,
			Text:   text,
		})
	}

	// Auth gate: the session exists only past a successful login
	var auth *activities.AuthActivities
	var session models.Session
	err = workflow.ExecuteActivity(ctx, auth.Login, activities.LoginRequest{
		Email:    input.Email,
		Password: input.Password,
	}).Get(ctx, &session)
	if err != nil {
		logger.Warn("Login rejected", "email", input.Email, "error", err)
		return fmt.Errorf("login failed: %w", err)
	}
	state.Authenticated = true
	state.Session = session
	appendMessage(models.SenderBot, chat.WelcomeMessage)
	logger.Info("Session authenticated", "session_id", session.SessionID)

	chatChan := workflow.GetSignalChannel(ctx, SignalChat)
	addChan := workflow.GetSignalChannel(ctx, SignalAddToCart)
	removeChan := workflow.GetSignalChannel(ctx, SignalRemoveFromCart)
	checkoutChan := workflow.GetSignalChannel(ctx, SignalCheckout)
	logoutChan := workflow.GetSignalChannel(ctx, SignalLogout)

	loggedOut := false

	selector := workflow.NewSelector(ctx)
	selector.AddReceive(chatChan, func(c workflow.ReceiveChannel, more bool) {
		var message string
		c.Receive(ctx, &message)
		handleChat(ctx, &state, appendMessage, message)
	})
	selector.AddReceive(addChan, func(c workflow.ReceiveChannel, more bool) {
		var productID int
		c.Receive(ctx, &productID)
		if p, ok := catalog.ByID(productID); ok {
			state.Cart.Add(p)
			logger.Info("Product added to cart", "product_id", productID, "count", state.Cart.Count())
		} else {
			logger.Warn("Ignoring add for unknown product", "product_id", productID)
		}
	})
	selector.AddReceive(removeChan, func(c workflow.ReceiveChannel, more bool) {
		var productID int
		c.Receive(ctx, &productID)
		removed := state.Cart.Remove(productID)
		logger.Info("Product removed from cart", "product_id", productID, "removed", removed)
	})
	selector.AddReceive(checkoutChan, func(c workflow.ReceiveChannel, more bool) {
		var req CheckoutRequest
		c.Receive(ctx, &req)
		handleCheckout(ctx, &state, appendMessage, req, input.StageInterval)
	})
	selector.AddReceive(logoutChan, func(c workflow.ReceiveChannel, more bool) {
		var signal string
		c.Receive(ctx, &signal)
		loggedOut = true
	})

	for !loggedOut {
		selector.Select(ctx)
	}

	// Logout is one atomic reset: token, user, session id, and the
	// in-flight order id all go together.
	state = SessionState{}
	logger.Info("Session logged out", "email", input.Email)
	return nil
}

// handleChat runs one conversational turn. A failing resolver degrades
// to a generic apology; the conversation itself never fails.
func handleChat(ctx workflow.Context, state *SessionState, appendMessage func(models.Sender, string), message string) {
	logger := workflow.GetLogger(ctx)
	appendMessage(models.SenderUser, message)

	var chatAct *activities.ChatActivities
	var resp chat.Response
	err := workflow.ExecuteActivity(ctx, chatAct.Chat, activities.ChatRequest{
		Message:   message,
		SessionID: state.Session.SessionID,
		Cart:      state.Cart.Snapshot(),
	}).Get(ctx, &resp)
	if err != nil {
		logger.Warn("Chat resolver unavailable", "error", err)
		appendMessage(models.SenderBot, chat.UnavailableReply)
		return
	}

	appendMessage(models.SenderBot, resp.Reply)
	if len(resp.Products) > 0 {
		state.LastShown = resp.Products
	}
	if resp.AutoAdd != nil {
		state.Cart.Add(*resp.AutoAdd)
		logger.Info("Product auto-added from chat", "product_id", resp.AutoAdd.ID)
	}
	if resp.Action == chat.ActionConfirmOrder {
		state.PendingCheckout = true
	}
}

// handleCheckout drives one checkout attempt through the order
// workflow. On success the cart is cleared and the delivery flow is
// started; on failure the cart is untouched so the user can retry.
func handleCheckout(ctx workflow.Context, state *SessionState, appendMessage func(models.Sender, string), req CheckoutRequest, stageInterval time.Duration) {
	logger := workflow.GetLogger(ctx)

	if state.Cart.IsEmpty() {
		appendMessage(models.SenderBot, "Your cart is empty! Browse some products first. Try asking for 'pizzas' or 'show me the menu'.")
		return
	}
	if req.Method == "" {
		req.Method = models.PaymentMock
	}

	childOptions := workflow.ChildWorkflowOptions{
		WorkflowID:               OrderWorkflowID(state.Session.SessionID),
		WorkflowExecutionTimeout: 10 * time.Minute,
	}
	childCtx := workflow.WithChildOptions(ctx, childOptions)

	var result OrderResult
	err := workflow.ExecuteChildWorkflow(childCtx, OrderWorkflow, OrderInput{
		Items:   state.Cart.Snapshot().Lines,
		Address: req.Address,
		Method:  req.Method,
	}).Get(ctx, &result)
	if err != nil {
		// Only the unconfirmed step rolls back: the cart survives so
		// the user can try again.
		logger.Error("Checkout failed", "error", err)
		appendMessage(models.SenderBot, "❌ "+userFacingError(err))
		return
	}

	order := result.Order
	state.CurrentOrder = &order
	state.LastTransactionID = result.TransactionID
	state.PendingCheckout = false
	state.Cart.Clear()

	// The delivery timeline is presentational; it outlives checkout
	// handling and keeps ticking on its own.
	deliveryOptions := workflow.ChildWorkflowOptions{
		WorkflowID:        DeliveryWorkflowID(order.ID),
		ParentClosePolicy: enumspb.PARENT_CLOSE_POLICY_ABANDON,
	}
	deliveryCtx := workflow.WithChildOptions(ctx, deliveryOptions)
	future := workflow.ExecuteChildWorkflow(deliveryCtx, DeliveryWorkflow, DeliveryInput{
		OrderID:       order.ID,
		StageInterval: stageInterval,
	})
	if err := future.GetChildWorkflowExecution().Get(ctx, nil); err != nil {
		logger.Warn("Failed to start delivery workflow", "order_id", order.ID, "error", err)
	}

	if result.CashOnDelivery {
		appendMessage(models.SenderBot, fmt.Sprintf("✅ Order #%d placed! Cash on Delivery selected. Total: ₹%d.", order.ID, order.Total))
	} else {
		appendMessage(models.SenderBot, fmt.Sprintf("✅ Payment successful! Order #%d confirmed. Total: ₹%d.", order.ID, order.Total))
	}
	logger.Info("Checkout completed", "order_id", order.ID, "cod", result.CashOnDelivery)
}

// userFacingError converts a checkout failure into the message shown in
// the conversation. Application errors carry user-appropriate text;
// anything else degrades to a generic apology.
func userFacingError(err error) string {
	var appErr *temporal.ApplicationError
	if errors.As(err, &appErr) {
		return appErr.Message()
	}
	return "Something went wrong. Please try again."
}
