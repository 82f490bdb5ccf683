package activities

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"shopbot/config"
	"shopbot/models"

	"github.com/google/uuid"
	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"
)

// OrderActivities simulates order creation and payment. Created orders
// are held in memory for the lifetime of the worker; the id counter is
// seeded above the catalog id range so order and product ids never look
// alike. The randomness source is injected so tests can force both
// payment outcomes.
type OrderActivities struct {
	deliveryFee int
	successRate float64
	randFloat   func() float64

	createDelay  time.Duration
	paymentDelay time.Duration
	getDelay     time.Duration

	mu      sync.Mutex
	counter int
	orders  map[int]models.Order
}

// NewOrderActivities creates a new OrderActivities instance. A nil
// randFloat falls back to the global math/rand source.
func NewOrderActivities(cfg config.Config, randFloat func() float64) *OrderActivities {
	if randFloat == nil {
		randFloat = rand.Float64
	}
	return &OrderActivities{
		deliveryFee:  cfg.Order.DeliveryFee,
		successRate:  cfg.Payment.SuccessRate,
		randFloat:    randFloat,
		createDelay:  cfg.Latency.CreateOrder.Std(),
		paymentDelay: cfg.Latency.Payment.Std(),
		getDelay:     cfg.Latency.GetOrder.Std(),
		counter:      cfg.Order.CounterSeed,
		orders:       make(map[int]models.Order),
	}
}

// CreateOrderRequest snapshots the cart at checkout time
type CreateOrderRequest struct {
	Items   []models.CartLine `json:"items"`
	Address string            `json:"address"`
}

// CreateOrder assigns the next order id and prices the order: subtotal
// plus the fixed delivery fee. The new order starts in PLACED.
func (o *OrderActivities) CreateOrder(ctx context.Context, req CreateOrderRequest) (models.Order, error) {
	logger := activity.GetLogger(ctx)

	if len(req.Items) == 0 {
		return models.Order{}, temporal.NewNonRetryableApplicationError(
			"cannot create an order from an empty cart", ErrTypeOrderCreationFailed, nil)
	}

	if err := simulateLatency(ctx, o.createDelay); err != nil {
		return models.Order{}, err
	}

	subtotal := 0
	for _, line := range req.Items {
		subtotal += line.Product.Price * line.Quantity
	}

	now := time.Now()
	o.mu.Lock()
	o.counter++
	order := models.Order{
		ID:        o.counter,
		Items:     req.Items,
		Address:   req.Address,
		Subtotal:  subtotal,
		Total:     subtotal + o.deliveryFee,
		Status:    models.OrderStatusPlaced,
		CreatedAt: now,
		UpdatedAt: now,
	}
	o.orders[order.ID] = order
	o.mu.Unlock()

	logger.Info("Order created",
		"order_id", order.ID,
		"items", len(order.Items),
		"subtotal", order.Subtotal,
		"total", order.Total)
	return order, nil
}

// MockPayment settles an order with the configured success probability.
// A failed payment is a non-retryable PaymentFailed application error:
// the retry decision belongs to the user, not the activity retry policy.
func (o *OrderActivities) MockPayment(ctx context.Context, orderID int) (models.PaymentResult, error) {
	logger := activity.GetLogger(ctx)
	logger.Info("Processing payment", "order_id", orderID)

	activity.RecordHeartbeat(ctx, "processing payment")

	if err := simulateLatency(ctx, o.paymentDelay); err != nil {
		return models.PaymentResult{}, err
	}

	if o.randFloat() >= o.successRate {
		logger.Warn("Payment declined", "order_id", orderID)
		return models.PaymentResult{}, temporal.NewNonRetryableApplicationError(
			"Payment failed. Please try again.", ErrTypePaymentFailed, nil)
	}

	result := models.PaymentResult{
		Success:       true,
		TransactionID: fmt.Sprintf("TXN-%s", strings.ToUpper(uuid.NewString()[:8])),
	}
	logger.Info("Payment captured", "order_id", orderID, "txn_id", result.TransactionID)
	return result, nil
}

// ConfirmOrder transitions an order to CONFIRMED after payment (or COD
// selection) and returns the updated snapshot.
func (o *OrderActivities) ConfirmOrder(ctx context.Context, orderID int) (models.Order, error) {
	return o.transition(ctx, orderID, models.OrderStatusConfirmed)
}

// CancelOrder transitions an abandoned order to CANCELLED
func (o *OrderActivities) CancelOrder(ctx context.Context, orderID int) (models.Order, error) {
	return o.transition(ctx, orderID, models.OrderStatusCancelled)
}

func (o *OrderActivities) transition(ctx context.Context, orderID int, status models.OrderStatus) (models.Order, error) {
	logger := activity.GetLogger(ctx)

	o.mu.Lock()
	order, ok := o.orders[orderID]
	if ok {
		order.Status = status
		order.UpdatedAt = time.Now()
		o.orders[orderID] = order
	}
	o.mu.Unlock()

	if !ok {
		return models.Order{}, temporal.NewNonRetryableApplicationError(
			fmt.Sprintf("order %d not found", orderID), ErrTypeOrderNotFound, nil)
	}

	logger.Info("Order status updated", "order_id", orderID, "status", string(status))
	return order, nil
}

// GetOrder returns the current snapshot of an order
func (o *OrderActivities) GetOrder(ctx context.Context, orderID int) (models.Order, error) {
	if err := simulateLatency(ctx, o.getDelay); err != nil {
		return models.Order{}, err
	}

	o.mu.Lock()
	order, ok := o.orders[orderID]
	o.mu.Unlock()

	if !ok {
		return models.Order{}, temporal.NewNonRetryableApplicationError(
			fmt.Sprintf("order %d not found", orderID), ErrTypeOrderNotFound, nil)
	}
	return order, nil
}
