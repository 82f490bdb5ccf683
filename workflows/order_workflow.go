package workflows

import (
	"errors"
	"fmt"
	"time"

	"shopbot/activities"
	"shopbot/models"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"
)

// OrderInput is the checkout handed to the order workflow: the cart
// snapshot, the delivery address, and the payment method.
type OrderInput struct {
	Items   []models.CartLine    `json:"items"`
	Address string               `json:"address"`
	Method  models.PaymentMethod `json:"method"`
}

// OrderResult is the successful outcome of a checkout
type OrderResult struct {
	Order          models.Order `json:"order"`
	TransactionID  string       `json:"txn_id,omitempty"`
	CashOnDelivery bool         `json:"cash_on_delivery"`
}

// OrderState is the queryable state of an in-flight checkout
type OrderState struct {
	Order         models.Order `json:"order"`
	Attempts      int          `json:"attempts"`
	AwaitingRetry bool         `json:"awaiting_retry"`
	LastError     string       `json:"last_error,omitempty"`
}

// OrderWorkflow creates the order exactly once, then settles it. Mock
// payment runs with the configured failure rate; a failed payment
// leaves the order in PLACED and parks the workflow on a retry/abandon
// signal, so the same order is paid on retry rather than a new one
// being created. Cash on delivery bypasses payment entirely.
func OrderWorkflow(ctx workflow.Context, input OrderInput) (OrderResult, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("OrderWorkflow started", "items", len(input.Items), "method", string(input.Method))

	state := OrderState{}
	err := workflow.SetQueryHandler(ctx, QueryOrderState, func() (OrderState, error) {
		return state, nil
	})
	if err != nil {
		return OrderResult{}, fmt.Errorf("failed to set query handler: %w", err)
	}

	activityOptions := workflow.ActivityOptions{
		StartToCloseTimeout: 30 * time.Second,
		HeartbeatTimeout:    10 * time.Second,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    1 * time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    10 * time.Second,
			MaximumAttempts:    3,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, activityOptions)

	var act *activities.OrderActivities

	var order models.Order
	err = workflow.ExecuteActivity(ctx, act.CreateOrder, activities.CreateOrderRequest{
		Items:   input.Items,
		Address: input.Address,
	}).Get(ctx, &order)
	if err != nil {
		logger.Error("Order creation failed", "error", err)
		return OrderResult{}, fmt.Errorf("order creation failed: %w", err)
	}
	state.Order = order
	logger.Info("Order placed", "order_id", order.ID, "total", order.Total)

	retryChan := workflow.GetSignalChannel(ctx, SignalRetryPayment)
	abandonChan := workflow.GetSignalChannel(ctx, SignalAbandonOrder)

	result := OrderResult{
		Order:          order,
		CashOnDelivery: input.Method == models.PaymentCashOnDelivery,
	}

	for !result.CashOnDelivery {
		state.Attempts++
		state.AwaitingRetry = false

		var payment models.PaymentResult
		err = workflow.ExecuteActivity(ctx, act.MockPayment, order.ID).Get(ctx, &payment)
		if err == nil {
			result.TransactionID = payment.TransactionID
			state.LastError = ""
			logger.Info("Payment captured", "order_id", order.ID, "txn_id", payment.TransactionID, "attempt", state.Attempts)
			break
		}

		var appErr *temporal.ApplicationError
		if !errors.As(err, &appErr) || appErr.Type() != activities.ErrTypePaymentFailed {
			logger.Error("Payment processing failed", "order_id", order.ID, "error", err)
			return OrderResult{}, fmt.Errorf("payment processing failed: %w", err)
		}

		// Order stays PLACED; the parent keeps the cart intact.
		state.LastError = appErr.Message()
		state.AwaitingRetry = true
		logger.Warn("Payment failed, awaiting retry", "order_id", order.ID, "attempt", state.Attempts)

		abandoned := false
		selector := workflow.NewSelector(ctx)
		selector.AddReceive(retryChan, func(c workflow.ReceiveChannel, more bool) {
			var signal string
			c.Receive(ctx, &signal)
		})
		selector.AddReceive(abandonChan, func(c workflow.ReceiveChannel, more bool) {
			var signal string
			c.Receive(ctx, &signal)
			abandoned = true
		})
		selector.Select(ctx)

		if abandoned {
			logger.Info("Order abandoned after failed payment", "order_id", order.ID)
			var cancelled models.Order
			if cErr := workflow.ExecuteActivity(ctx, act.CancelOrder, order.ID).Get(ctx, &cancelled); cErr == nil {
				state.Order = cancelled
			}
			return OrderResult{}, temporal.NewApplicationError("Order abandoned before payment.", ErrTypeOrderAbandoned)
		}
	}

	var confirmed models.Order
	err = workflow.ExecuteActivity(ctx, act.ConfirmOrder, order.ID).Get(ctx, &confirmed)
	if err != nil {
		logger.Error("Order confirmation failed", "order_id", order.ID, "error", err)
		return OrderResult{}, fmt.Errorf("order confirmation failed: %w", err)
	}
	state.Order = confirmed
	result.Order = confirmed

	logger.Info("OrderWorkflow completed", "order_id", confirmed.ID, "status", string(confirmed.Status))
	return result, nil
}
