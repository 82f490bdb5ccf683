// The shopbot CLI drives a storefront session end to end: login starts
// the session workflow, chat/cart commands signal it, checkout runs the
// order flow, and track follows the delivery timeline.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"shopbot/config"
	"shopbot/logging"
	"shopbot/models"
	"shopbot/workflows"

	"github.com/spf13/cobra"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"
	"go.uber.org/zap"
)

var (
	configPath        string
	sessionWorkflowID string

	cfg    config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "shopbot",
	Short: "ShopBot - chat-driven demo storefront",
	Long: `ShopBot is a demo storefront driven entirely through chat.

Log in with the demo credentials, talk to the assistant to browse the
menu and fill your cart, then check out and watch the simulated
delivery timeline.

Typical session:
  shopbot login
  shopbot chat "show me pizzas"
  shopbot chat "add margherita"
  shopbot checkout --address "123 Main St, Pune"
  shopbot track
  shopbot logout`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		logger, err = zap.NewDevelopment()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func main() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config.yaml (defaults apply when omitted)")
	rootCmd.PersistentFlags().StringVar(&sessionWorkflowID, "session", "shopbot-session", "session workflow id")

	rootCmd.AddCommand(loginCmd, chatCmd, menuCmd, cartCmd, addCmd, removeCmd, stateCmd, logoutCmd)
	rootCmd.AddCommand(checkoutCmd, retryPayCmd, abandonCmd, trackCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func dial() (client.Client, error) {
	return client.Dial(client.Options{
		HostPort: cfg.Temporal.Address,
		Logger:   logging.NewZapAdapter(logger),
	})
}

// querySessionState reads the session workflow state, mapping a missing
// workflow to a friendly not-logged-in error.
func querySessionState(ctx context.Context, c client.Client) (workflows.SessionState, error) {
	var state workflows.SessionState
	resp, err := c.QueryWorkflow(ctx, sessionWorkflowID, "", workflows.QuerySessionState)
	if err != nil {
		return state, friendlyNotFound(err)
	}
	if err := resp.Get(&state); err != nil {
		return state, fmt.Errorf("failed to decode session state: %w", err)
	}
	return state, nil
}

func queryTranscript(ctx context.Context, c client.Client) ([]models.ChatMessage, error) {
	resp, err := c.QueryWorkflow(ctx, sessionWorkflowID, "", workflows.QueryTranscript)
	if err != nil {
		return nil, friendlyNotFound(err)
	}
	var transcript []models.ChatMessage
	if err := resp.Get(&transcript); err != nil {
		return nil, fmt.Errorf("failed to decode transcript: %w", err)
	}
	return transcript, nil
}

// friendlyNotFound rewrites a NotFound service error into an
// instruction the user can act on.
func friendlyNotFound(err error) error {
	var notFound *serviceerror.NotFound
	if errors.As(err, &notFound) {
		return errors.New("no active session; run 'shopbot login' first")
	}
	return err
}
