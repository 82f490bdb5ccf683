package tests

import (
	"testing"

	"shopbot/activities"
	"shopbot/chat"
	"shopbot/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/testsuite"
)

func TestChat(t *testing.T) {
	tests := []struct {
		name     string
		request  activities.ChatRequest
		validate func(t *testing.T, resp chat.Response)
	}{
		{
			name:    "Greeting",
			request: activities.ChatRequest{Message: "hello", SessionID: "session_test"},
			validate: func(t *testing.T, resp chat.Response) {
				assert.Contains(t, resp.Reply, "Welcome to ShopBot")
				assert.Equal(t, chat.ActionNone, resp.Action)
			},
		},
		{
			name:    "Category Browse",
			request: activities.ChatRequest{Message: "show me pizzas", SessionID: "session_test"},
			validate: func(t *testing.T, resp chat.Response) {
				assert.Len(t, resp.Products, 4)
				assert.Equal(t, chat.ActionShowProducts, resp.Action)
			},
		},
		{
			name:    "Auto Add",
			request: activities.ChatRequest{Message: "add margherita", SessionID: "session_test"},
			validate: func(t *testing.T, resp chat.Response) {
				require.NotNil(t, resp.AutoAdd)
				assert.Equal(t, 1, resp.AutoAdd.ID)
			},
		},
		{
			name: "Checkout Uses Cart Snapshot",
			request: activities.ChatRequest{
				Message:   "confirm my order",
				SessionID: "session_test",
				Cart:      models.Cart{Lines: cartLines(1, 1, 11)},
			},
			validate: func(t *testing.T, resp chat.Response) {
				assert.Equal(t, chat.ActionConfirmOrder, resp.Action)
				assert.Contains(t, resp.Reply, "Margherita Pizza x2")
				assert.Contains(t, resp.Reply, "447")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testSuite := &testsuite.WorkflowTestSuite{}
			env := testSuite.NewTestActivityEnvironment()

			chatAct := activities.NewChatActivities(testConfig())
			env.RegisterActivity(chatAct.Chat)

			val, err := env.ExecuteActivity(chatAct.Chat, tt.request)
			require.NoError(t, err)

			var resp chat.Response
			require.NoError(t, val.Get(&resp))
			tt.validate(t, resp)
		})
	}
}

func TestGetProducts(t *testing.T) {
	tests := []struct {
		name    string
		ids     []int
		wantIDs []int
	}{
		{
			name:    "Subset In Display Order",
			ids:     []int{3, 1, 11},
			wantIDs: []int{1, 3, 11},
		},
		{
			name:    "Empty Means Whole Catalog",
			ids:     nil,
			wantIDs: nil, // length checked below
		},
		{
			name:    "Unknown IDs Skipped",
			ids:     []int{1, 999},
			wantIDs: []int{1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testSuite := &testsuite.WorkflowTestSuite{}
			env := testSuite.NewTestActivityEnvironment()

			catAct := activities.NewCatalogActivities(testConfig())
			env.RegisterActivity(catAct.GetProducts)

			val, err := env.ExecuteActivity(catAct.GetProducts, tt.ids)
			require.NoError(t, err)

			var products []models.Product
			require.NoError(t, val.Get(&products))

			if tt.wantIDs == nil {
				assert.Len(t, products, 15)
				return
			}
			gotIDs := make([]int, 0, len(products))
			for _, p := range products {
				gotIDs = append(gotIDs, p.ID)
			}
			assert.Equal(t, tt.wantIDs, gotIDs)
		})
	}
}
