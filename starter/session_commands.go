package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"shopbot/catalog"
	"shopbot/models"
	"shopbot/workflows"

	"github.com/spf13/cobra"
	enumspb "go.temporal.io/api/enums/v1"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"
)

var (
	loginEmail    string
	loginPassword string
)

func init() {
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "login email (defaults to the demo user)")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "login password (defaults to the demo password)")
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and start a shopping session",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := dial()
		if err != nil {
			return err
		}
		defer c.Close()
		ctx := cmd.Context()

		if loginEmail == "" {
			loginEmail = cfg.Demo.Email
		}
		if loginPassword == "" {
			loginPassword = cfg.Demo.Password
		}

		_, err = c.ExecuteWorkflow(ctx, client.StartWorkflowOptions{
			ID:        sessionWorkflowID,
			TaskQueue: cfg.Temporal.TaskQueue,
		}, workflows.SessionWorkflow, workflows.SessionInput{
			Email:         loginEmail,
			Password:      loginPassword,
			StageInterval: cfg.Delivery.StageInterval.Std(),
		})
		if err != nil {
			var alreadyStarted *serviceerror.WorkflowExecutionAlreadyStarted
			if errors.As(err, &alreadyStarted) {
				return errors.New("a session is already active; run 'shopbot logout' first")
			}
			return fmt.Errorf("unable to start session: %w", err)
		}

		state, err := waitForLogin(ctx, c)
		if err != nil {
			return err
		}
		fmt.Printf("Welcome, %s! (session %s)\n", state.Session.User.Name, state.Session.SessionID)
		if transcript, err := queryTranscript(ctx, c); err == nil && len(transcript) > 0 {
			fmt.Printf("🤖 %s\n", transcript[len(transcript)-1].Text)
		}
		return nil
	},
}

// waitForLogin polls the session until the auth gate has decided. Bad
// credentials fail the workflow, which surfaces as a FAILED execution.
func waitForLogin(ctx context.Context, c client.Client) (workflows.SessionState, error) {
	deadline := time.Now().Add(15 * time.Second)
	for time.Now().Before(deadline) {
		state, err := querySessionState(ctx, c)
		if err == nil && state.Authenticated {
			return state, nil
		}

		desc, derr := c.DescribeWorkflowExecution(ctx, sessionWorkflowID, "")
		if derr == nil && desc.WorkflowExecutionInfo.Status == enumspb.WORKFLOW_EXECUTION_STATUS_FAILED {
			return workflows.SessionState{}, errors.New("login failed: invalid email or password")
		}

		time.Sleep(300 * time.Millisecond)
	}
	return workflows.SessionState{}, errors.New("timed out waiting for login")
}

var chatCmd = &cobra.Command{
	Use:   "chat [message]",
	Short: "Send a message to the shopping assistant",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := dial()
		if err != nil {
			return err
		}
		defer c.Close()
		ctx := cmd.Context()
		message := strings.Join(args, " ")

		before, err := queryTranscript(ctx, c)
		if err != nil {
			return err
		}
		prior, err := querySessionState(ctx, c)
		if err != nil {
			return err
		}

		if err := c.SignalWorkflow(ctx, sessionWorkflowID, "", workflows.SignalChat, message); err != nil {
			return friendlyNotFound(err)
		}

		// One outstanding request per session: wait for the reply
		// before handing the prompt back.
		deadline := time.Now().Add(20 * time.Second)
		for time.Now().Before(deadline) {
			transcript, err := queryTranscript(ctx, c)
			if err != nil {
				return err
			}
			if len(transcript) >= len(before)+2 {
				reply := transcript[len(transcript)-1]
				fmt.Printf("🤖 %s\n", reply.Text)

				state, err := querySessionState(ctx, c)
				if err == nil {
					if !sameProducts(prior.LastShown, state.LastShown) {
						printProducts(state.LastShown)
					}
					if state.PendingCheckout {
						fmt.Println("→ Ready to order: run 'shopbot checkout --address \"...\"'")
					}
				}
				return nil
			}
			time.Sleep(250 * time.Millisecond)
		}
		return errors.New("timed out waiting for the assistant")
	},
}

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Print the full product catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		printProducts(catalog.All())
		return nil
	},
}

var cartCmd = &cobra.Command{
	Use:   "cart",
	Short: "Show the current cart",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := dial()
		if err != nil {
			return err
		}
		defer c.Close()

		state, err := querySessionState(cmd.Context(), c)
		if err != nil {
			return err
		}
		printCart(state)
		return nil
	},
}

var addCmd = &cobra.Command{
	Use:   "add [product-id]",
	Short: "Add a product to the cart by id",
	Args:  cobra.ExactArgs(1),
	RunE:  func(cmd *cobra.Command, args []string) error { return mutateCart(cmd, args[0], workflows.SignalAddToCart) },
}

var removeCmd = &cobra.Command{
	Use:   "remove [product-id]",
	Short: "Remove a product from the cart by id",
	Args:  cobra.ExactArgs(1),
	RunE:  func(cmd *cobra.Command, args []string) error { return mutateCart(cmd, args[0], workflows.SignalRemoveFromCart) },
}

func mutateCart(cmd *cobra.Command, rawID, signal string) error {
	productID, err := strconv.Atoi(rawID)
	if err != nil {
		return fmt.Errorf("product id must be a number: %w", err)
	}

	c, err := dial()
	if err != nil {
		return err
	}
	defer c.Close()
	ctx := cmd.Context()

	if err := c.SignalWorkflow(ctx, sessionWorkflowID, "", signal, productID); err != nil {
		return friendlyNotFound(err)
	}

	// Give the single-writer loop a beat to apply the mutation
	time.Sleep(300 * time.Millisecond)
	state, err := querySessionState(ctx, c)
	if err != nil {
		return err
	}
	printCart(state)
	return nil
}

var stateCmd = &cobra.Command{
	Use:   "state",
	Short: "Dump the session state as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := dial()
		if err != nil {
			return err
		}
		defer c.Close()

		state, err := querySessionState(cmd.Context(), c)
		if err != nil {
			return err
		}
		out, err := json.MarshalIndent(state, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal state: %w", err)
		}
		fmt.Println(string(out))
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "End the session, clearing cart and order state",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := dial()
		if err != nil {
			return err
		}
		defer c.Close()
		ctx := cmd.Context()

		if err := c.SignalWorkflow(ctx, sessionWorkflowID, "", workflows.SignalLogout, "logout"); err != nil {
			return friendlyNotFound(err)
		}
		if err := c.GetWorkflow(ctx, sessionWorkflowID, "").Get(ctx, nil); err != nil {
			return fmt.Errorf("session ended with error: %w", err)
		}
		fmt.Println("Logged out. See you next time!")
		return nil
	},
}

func printProducts(products []models.Product) {
	for _, p := range products {
		fmt.Printf("%3d. %s %-22s ₹%-4d %s\n", p.ID, p.Glyph, p.Name, p.Price, p.Category)
	}
}

func printCart(state workflows.SessionState) {
	if state.Cart.IsEmpty() {
		fmt.Println("🛒 Your cart is empty.")
		return
	}
	fmt.Println("🛒 Cart:")
	for _, line := range state.Cart.Lines {
		fmt.Printf("  %s %s x%d = ₹%d\n", line.Product.Glyph, line.Product.Name, line.Quantity, line.Product.Price*line.Quantity)
	}
	fmt.Printf("  %d items, subtotal ₹%d (+₹%d delivery)\n", state.CartCount, state.CartTotal, cfg.Order.DeliveryFee)
}

func sameProducts(a, b []models.Product) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].ID != b[i].ID {
			return false
		}
	}
	return true
}
