package tests

import (
	"strings"
	"testing"
	"time"

	"shopbot/activities"
	"shopbot/models"
	"shopbot/workflows"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/testsuite"
)

func newSessionWorkflowEnv(t *testing.T, randFloat func() float64) *testsuite.TestWorkflowEnvironment {
	t.Helper()
	testSuite := &testsuite.WorkflowTestSuite{}
	env := testSuite.NewTestWorkflowEnvironment()

	cfg := testConfig()
	auth := activities.NewAuthActivities(cfg)
	chatAct := activities.NewChatActivities(cfg)
	orderAct := activities.NewOrderActivities(cfg, randFloat)

	env.RegisterWorkflow(workflows.SessionWorkflow)
	env.RegisterWorkflow(workflows.OrderWorkflow)
	env.RegisterWorkflow(workflows.DeliveryWorkflow)
	env.RegisterActivity(auth.Login)
	env.RegisterActivity(chatAct.Chat)
	env.RegisterActivity(orderAct.CreateOrder)
	env.RegisterActivity(orderAct.MockPayment)
	env.RegisterActivity(orderAct.ConfirmOrder)
	env.RegisterActivity(orderAct.CancelOrder)
	return env
}

func demoSessionInput() workflows.SessionInput {
	return workflows.SessionInput{
		Email:         "demo@shopbot.com",
		Password:      "demo1234",
		StageInterval: time.Second,
	}
}

func querySession(t *testing.T, env *testsuite.TestWorkflowEnvironment) workflows.SessionState {
	t.Helper()
	val, err := env.QueryWorkflow(workflows.QuerySessionState)
	require.NoError(t, err)
	var state workflows.SessionState
	require.NoError(t, val.Get(&state))
	return state
}

func queryTranscript(t *testing.T, env *testsuite.TestWorkflowEnvironment) []models.ChatMessage {
	t.Helper()
	val, err := env.QueryWorkflow(workflows.QueryTranscript)
	require.NoError(t, err)
	var transcript []models.ChatMessage
	require.NoError(t, val.Get(&transcript))
	return transcript
}

func TestSessionWorkflowLoginFailure(t *testing.T) {
	env := newSessionWorkflowEnv(t, nil)

	env.ExecuteWorkflow(workflows.SessionWorkflow, workflows.SessionInput{
		Email:    "demo@shopbot.com",
		Password: "nope",
	})

	require.True(t, env.IsWorkflowCompleted())
	err := env.GetWorkflowError()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "login failed")
}

func TestSessionWorkflowChatAndCart(t *testing.T) {
	env := newSessionWorkflowEnv(t, nil)

	env.RegisterDelayedCallback(func() {
		state := querySession(t, env)
		assert.True(t, state.Authenticated)
		assert.True(t, strings.HasPrefix(state.Session.SessionID, "session_"))

		transcript := queryTranscript(t, env)
		require.NotEmpty(t, transcript)
		assert.Equal(t, models.SenderBot, transcript[0].Sender)
		assert.Contains(t, transcript[0].Text, "Welcome to ShopBot")

		env.SignalWorkflow(workflows.SignalChat, "add margherita")
	}, time.Second)

	env.RegisterDelayedCallback(func() {
		env.SignalWorkflow(workflows.SignalAddToCart, 11)
	}, 2*time.Second)

	env.RegisterDelayedCallback(func() {
		state := querySession(t, env)
		require.Len(t, state.Cart.Lines, 2)
		assert.Equal(t, 1, state.Cart.Lines[0].Product.ID)
		assert.Equal(t, 11, state.Cart.Lines[1].Product.ID)
		assert.Equal(t, 248, state.CartTotal)
		assert.Equal(t, 2, state.CartCount)

		transcript := queryTranscript(t, env)
		assert.Contains(t, transcript[len(transcript)-1].Text, "added to your cart")

		env.SignalWorkflow(workflows.SignalRemoveFromCart, 1)
	}, 3*time.Second)

	env.RegisterDelayedCallback(func() {
		state := querySession(t, env)
		require.Len(t, state.Cart.Lines, 1)
		assert.Equal(t, 11, state.Cart.Lines[0].Product.ID)

		env.SignalWorkflow(workflows.SignalChat, "show me pizzas")
	}, 4*time.Second)

	env.RegisterDelayedCallback(func() {
		state := querySession(t, env)
		assert.Len(t, state.LastShown, 4, "last shown tracks the latest product subset")

		env.SignalWorkflow(workflows.SignalLogout, "")
	}, 5*time.Second)

	env.ExecuteWorkflow(workflows.SessionWorkflow, demoSessionInput())

	require.True(t, env.IsWorkflowCompleted())
	require.NoError(t, env.GetWorkflowError())

	// Logout resets everything at once
	state := querySession(t, env)
	assert.False(t, state.Authenticated)
	assert.Empty(t, state.Session.Token)
	assert.Empty(t, state.Session.SessionID)
	assert.True(t, state.Cart.IsEmpty())
	assert.Nil(t, state.CurrentOrder)
}

func TestSessionWorkflowCheckoutSuccess(t *testing.T) {
	env := newSessionWorkflowEnv(t, fixedRand(0.0))

	env.RegisterDelayedCallback(func() {
		// Checkout with nothing in the cart is refused in-chat
		env.SignalWorkflow(workflows.SignalCheckout, workflows.CheckoutRequest{
			Address: "123 Main St, Pune",
			Method:  models.PaymentMock,
		})
	}, time.Second)

	env.RegisterDelayedCallback(func() {
		state := querySession(t, env)
		assert.Nil(t, state.CurrentOrder)

		transcript := queryTranscript(t, env)
		assert.Contains(t, transcript[len(transcript)-1].Text, "cart is empty")

		env.SignalWorkflow(workflows.SignalAddToCart, 1)
	}, 2*time.Second)

	env.RegisterDelayedCallback(func() {
		env.SignalWorkflow(workflows.SignalCheckout, workflows.CheckoutRequest{
			Address: "123 Main St, Pune",
			Method:  models.PaymentMock,
		})
	}, 3*time.Second)

	env.RegisterDelayedCallback(func() {
		state := querySession(t, env)
		require.NotNil(t, state.CurrentOrder)
		assert.Equal(t, 1041, state.CurrentOrder.ID)
		assert.Equal(t, models.OrderStatusConfirmed, state.CurrentOrder.Status)
		assert.Equal(t, 199+40, state.CurrentOrder.Total)
		assert.Regexp(t, `^TXN-`, state.LastTransactionID)
		assert.True(t, state.Cart.IsEmpty(), "checkout clears the cart")
		assert.False(t, state.PendingCheckout)

		transcript := queryTranscript(t, env)
		assert.Contains(t, transcript[len(transcript)-1].Text, "Payment successful! Order #1041")
	}, 10*time.Second)

	env.RegisterDelayedCallback(func() {
		env.SignalWorkflow(workflows.SignalLogout, "")
	}, 30*time.Second)

	env.ExecuteWorkflow(workflows.SessionWorkflow, demoSessionInput())

	require.True(t, env.IsWorkflowCompleted())
	require.NoError(t, env.GetWorkflowError())
}

// A declined payment leaves the cart intact for another attempt and
// never records a current order.
func TestSessionWorkflowPaymentFailurePreservesCart(t *testing.T) {
	env := newSessionWorkflowEnv(t, fixedRand(0.99))

	env.RegisterDelayedCallback(func() {
		env.SignalWorkflow(workflows.SignalAddToCart, 1)
	}, time.Second)

	env.RegisterDelayedCallback(func() {
		env.SignalWorkflow(workflows.SignalCheckout, workflows.CheckoutRequest{
			Address: "123 Main St, Pune",
			Method:  models.PaymentMock,
		})
	}, 2*time.Second)

	env.RegisterDelayedCallback(func() {
		// The session is parked on the in-flight order; walk away
		state := querySession(t, env)
		orderWorkflowID := workflows.OrderWorkflowID(state.Session.SessionID)
		require.NoError(t, env.SignalWorkflowByID(orderWorkflowID, workflows.SignalAbandonOrder, "abandon"))
	}, 10*time.Second)

	env.RegisterDelayedCallback(func() {
		state := querySession(t, env)
		assert.Nil(t, state.CurrentOrder)
		assert.Empty(t, state.LastTransactionID)
		require.Len(t, state.Cart.Lines, 1, "failed checkout must not touch the cart")
		assert.Equal(t, 1, state.Cart.Lines[0].Product.ID)

		transcript := queryTranscript(t, env)
		assert.Contains(t, transcript[len(transcript)-1].Text, "❌ Order abandoned before payment.")

		env.SignalWorkflow(workflows.SignalLogout, "")
	}, 20*time.Second)

	env.ExecuteWorkflow(workflows.SessionWorkflow, demoSessionInput())

	require.True(t, env.IsWorkflowCompleted())
	require.NoError(t, env.GetWorkflowError())
}

// Chat-driven checkout: confirm in chat raises the pending flag, the
// checkout signal then settles cash on delivery without a payment.
func TestSessionWorkflowCashOnDeliveryViaChat(t *testing.T) {
	env := newSessionWorkflowEnv(t, fixedRand(0.99))

	env.RegisterDelayedCallback(func() {
		env.SignalWorkflow(workflows.SignalChat, "add margherita")
	}, time.Second)

	env.RegisterDelayedCallback(func() {
		env.SignalWorkflow(workflows.SignalChat, "confirm my order")
	}, 2*time.Second)

	env.RegisterDelayedCallback(func() {
		state := querySession(t, env)
		assert.True(t, state.PendingCheckout)

		env.SignalWorkflow(workflows.SignalCheckout, workflows.CheckoutRequest{
			Address: "123 Main St, Pune",
			Method:  models.PaymentCashOnDelivery,
		})
	}, 3*time.Second)

	env.RegisterDelayedCallback(func() {
		state := querySession(t, env)
		require.NotNil(t, state.CurrentOrder)
		assert.Equal(t, models.OrderStatusConfirmed, state.CurrentOrder.Status)
		assert.Empty(t, state.LastTransactionID)

		transcript := queryTranscript(t, env)
		assert.Contains(t, transcript[len(transcript)-1].Text, "Cash on Delivery")

		env.SignalWorkflow(workflows.SignalLogout, "")
	}, 10*time.Second)

	env.ExecuteWorkflow(workflows.SessionWorkflow, demoSessionInput())

	require.True(t, env.IsWorkflowCompleted())
	require.NoError(t, env.GetWorkflowError())
}
