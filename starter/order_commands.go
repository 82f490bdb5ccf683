package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"shopbot/models"
	"shopbot/workflows"

	"github.com/spf13/cobra"
	"go.temporal.io/sdk/client"
)

var (
	checkoutAddress string
	checkoutMethod  string
)

var checkoutCmd = &cobra.Command{
	Use:   "checkout",
	Short: "Place the order and pay",
	RunE: func(cmd *cobra.Command, args []string) error {
		method := models.PaymentMethod(checkoutMethod)
		if method != models.PaymentMock && method != models.PaymentCashOnDelivery {
			return fmt.Errorf("unknown payment method %q (use mock or cod)", checkoutMethod)
		}

		c, err := dial()
		if err != nil {
			return err
		}
		defer c.Close()
		ctx := cmd.Context()

		state, err := querySessionState(ctx, c)
		if err != nil {
			return err
		}
		if state.Cart.IsEmpty() {
			fmt.Println("Your cart is empty! Browse some products first.")
			return nil
		}
		prevOrderID := 0
		if state.CurrentOrder != nil {
			prevOrderID = state.CurrentOrder.ID
		}

		err = c.SignalWorkflow(ctx, sessionWorkflowID, "", workflows.SignalCheckout, workflows.CheckoutRequest{
			Address: checkoutAddress,
			Method:  method,
		})
		if err != nil {
			return friendlyNotFound(err)
		}

		fmt.Println("Placing your order...")
		return waitForOrderOutcome(ctx, c, state.Session.SessionID, prevOrderID, 0)
	},
}

var retryPayCmd = &cobra.Command{
	Use:   "retry-pay",
	Short: "Retry payment for the order awaiting it",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := dial()
		if err != nil {
			return err
		}
		defer c.Close()
		ctx := cmd.Context()

		state, err := querySessionState(ctx, c)
		if err != nil {
			return err
		}
		orderWID := workflows.OrderWorkflowID(state.Session.SessionID)

		orderState, err := queryOrderState(ctx, c, orderWID)
		if err != nil {
			return err
		}
		if !orderState.AwaitingRetry {
			fmt.Println("No payment is awaiting retry.")
			return nil
		}
		prevOrderID := 0
		if state.CurrentOrder != nil {
			prevOrderID = state.CurrentOrder.ID
		}

		if err := c.SignalWorkflow(ctx, orderWID, "", workflows.SignalRetryPayment, "retry"); err != nil {
			return friendlyNotFound(err)
		}
		fmt.Println("Retrying payment...")
		return waitForOrderOutcome(ctx, c, state.Session.SessionID, prevOrderID, orderState.Attempts)
	},
}

var abandonCmd = &cobra.Command{
	Use:   "abandon",
	Short: "Give up on the order awaiting payment",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := dial()
		if err != nil {
			return err
		}
		defer c.Close()
		ctx := cmd.Context()

		state, err := querySessionState(ctx, c)
		if err != nil {
			return err
		}
		orderWID := workflows.OrderWorkflowID(state.Session.SessionID)

		if err := c.SignalWorkflow(ctx, orderWID, "", workflows.SignalAbandonOrder, "abandon"); err != nil {
			return friendlyNotFound(err)
		}
		// The order workflow finishes with an OrderAbandoned error;
		// that is the expected outcome here, not a failure.
		_ = c.GetWorkflow(ctx, orderWID, "").Get(ctx, nil)
		fmt.Println("Order abandoned. Your cart is untouched.")
		return nil
	},
}

var trackCmd = &cobra.Command{
	Use:   "track",
	Short: "Show the delivery timeline for the current order",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := dial()
		if err != nil {
			return err
		}
		defer c.Close()
		ctx := cmd.Context()

		state, err := querySessionState(ctx, c)
		if err != nil {
			return err
		}
		if state.CurrentOrder == nil {
			fmt.Println("No order to track yet. Run 'shopbot checkout' first.")
			return nil
		}

		deliveryWID := workflows.DeliveryWorkflowID(state.CurrentOrder.ID)

		resp, err := c.QueryWorkflow(ctx, deliveryWID, "", workflows.QueryDeliveryTimeline)
		if err != nil {
			return friendlyNotFound(err)
		}
		var timeline []models.TimelineEntry
		if err := resp.Get(&timeline); err != nil {
			return fmt.Errorf("failed to decode timeline: %w", err)
		}

		fmt.Printf("📋 Order #%d\n", state.CurrentOrder.ID)
		for _, entry := range timeline {
			marker := "○"
			switch entry.Status {
			case models.StageStatusCompleted:
				marker = "✓"
			case models.StageStatusCurrent:
				marker = "●"
			}
			when := entry.Time.Local().Format("3:04 PM")
			if entry.Estimated {
				when = "~" + when
			}
			fmt.Printf("  %s %s %-18s %s\n", marker, entry.Glyph, entry.Label, when)
		}

		resp, err = c.QueryWorkflow(ctx, deliveryWID, "", workflows.QueryDeliveryState)
		if err == nil {
			var delivery workflows.DeliveryState
			if err := resp.Get(&delivery); err == nil && len(delivery.Notifications) > 0 {
				latest := delivery.Notifications[len(delivery.Notifications)-1]
				fmt.Printf("🤖 %s %s\n", latest.Title, latest.Body)
			}
		}
		return nil
	},
}

func queryOrderState(ctx context.Context, c client.Client, orderWID string) (workflows.OrderState, error) {
	var state workflows.OrderState
	resp, err := c.QueryWorkflow(ctx, orderWID, "", workflows.QueryOrderState)
	if err != nil {
		return state, friendlyNotFound(err)
	}
	if err := resp.Get(&state); err != nil {
		return state, fmt.Errorf("failed to decode order state: %w", err)
	}
	return state, nil
}

// waitForOrderOutcome polls until the checkout attempt settles: either
// the session shows a fresh confirmed order, or the order workflow is
// parked awaiting a payment retry.
func waitForOrderOutcome(ctx context.Context, c client.Client, sessionID string, prevOrderID, attemptsBefore int) error {
	orderWID := workflows.OrderWorkflowID(sessionID)
	deadline := time.Now().Add(60 * time.Second)

	for time.Now().Before(deadline) {
		state, err := querySessionState(ctx, c)
		if err != nil {
			return err
		}
		if state.CurrentOrder != nil && state.CurrentOrder.ID != prevOrderID {
			order := state.CurrentOrder
			fmt.Printf("✅ Order #%d confirmed! Total ₹%d to %s.\n", order.ID, order.Total, order.Address)
			if state.LastTransactionID != "" {
				fmt.Printf("   Payment reference: %s\n", state.LastTransactionID)
			}
			fmt.Println("   Run 'shopbot track' to follow your delivery.")
			return nil
		}

		orderState, err := queryOrderState(ctx, c, orderWID)
		if err == nil && orderState.AwaitingRetry && orderState.Attempts > attemptsBefore {
			fmt.Printf("❌ %s\n", orderState.LastError)
			fmt.Println("   Your cart is untouched. Run 'shopbot retry-pay' or 'shopbot abandon'.")
			return nil
		}

		time.Sleep(400 * time.Millisecond)
	}
	return errors.New("timed out waiting for the checkout result")
}

func init() {
	checkoutCmd.Flags().StringVar(&checkoutAddress, "address", "123 Main St, Pune", "delivery address")
	checkoutCmd.Flags().StringVar(&checkoutMethod, "method", string(models.PaymentMock), "payment method: mock or cod")
}
