// Package chat implements the rule-based shopping assistant. Resolve is
// a pure function over the message text and a cart snapshot; it walks an
// ordered rule table and the first matching rule wins, so rule priority
// is explicit in the table layout rather than buried in control flow.
package chat

import (
	"fmt"
	"regexp"
	"strings"

	"shopbot/catalog"
	"shopbot/models"
)

// Action is an out-of-band signal telling the caller to transition
// screens after a reply.
type Action string

const (
	ActionNone         Action = ""
	ActionShowProducts Action = "show_products"
	ActionConfirmOrder Action = "confirm_order"
)

// Response is the resolver output for a single user message
type Response struct {
	Reply    string           `json:"reply"`
	Products []models.Product `json:"products"`
	Action   Action           `json:"action,omitempty"`
	AutoAdd  *models.Product  `json:"auto_add,omitempty"`
}

// WelcomeMessage seeds the transcript when a session starts
const WelcomeMessage = "Hi! 👋 I'm ShopBot, your AI shopping assistant. What would you like today? Try asking for **pizzas**, **pastas**, or say **menu** to see everything!"

// UnavailableReply is the degraded reply used when the assistant cannot
// be reached; the conversation itself must never fail.
const UnavailableReply = "Sorry, something went wrong. Please try again! 😅"

var (
	greetingRe = regexp.MustCompile(`\b(hi|hello|hey|sup|yo)\b`)
	menuRe     = regexp.MustCompile(`\b(menu|everything|all|what.*(have|sell|offer|available))\b`)

	pizzaRe    = regexp.MustCompile(`\bpizza`)
	pastaRe    = regexp.MustCompile(`\bpasta`)
	sidesRe    = regexp.MustCompile(`\b(side|fries|bread|wing|snack)`)
	drinksRe   = regexp.MustCompile(`\b(drink|coke|juice|tea|lemon)`)
	dessertsRe = regexp.MustCompile(`\b(dessert|sweet|brownie|cake|tiramisu)`)

	priceRe        = regexp.MustCompile(`price.*(of|for)\s+(the\s+)?(.+?)(\?|$)`)
	howMuchRe      = regexp.MustCompile(`how much`)
	howMuchStripRe = regexp.MustCompile(`how much.*(is|does|for)\s+(the\s+)?`)
	addRe          = regexp.MustCompile(`\badd\b`)
	checkoutRe     = regexp.MustCompile(`\b(confirm|done|checkout|order|pay|proceed|finish)\b`)
	helpRe         = regexp.MustCompile(`\b(help|what can you do|how)\b`)
	thanksRe       = regexp.MustCompile(`\b(thanks|thank you|thx|ty)\b`)
)

type request struct {
	msg  string // lowercased message
	cart models.Cart
}

type rule struct {
	name    string
	matches func(msg string) bool
	respond func(req request) Response
}

// rules in priority order. Category rules could textually overlap
// ("pizza and pasta"); only the first match fires. The explicit price
// pattern outranks the category rules: "price of Garlic Bread" must
// report a price even though "bread" is also a sides keyword.
var rules = []rule{
	{
		name:    "greeting",
		matches: greetingRe.MatchString,
		respond: func(request) Response {
			return Response{Reply: "Hey there! 👋 Welcome to ShopBot! I can help you find delicious food. Try asking me for pizzas, pastas, sides, drinks, or desserts!"}
		},
	},
	{
		name:    "menu",
		matches: menuRe.MatchString,
		respond: func(request) Response {
			return Response{
				Reply:    "Here's our full menu! 🍽️ We've got pizzas, pastas, sides, drinks, and desserts. Take your pick!",
				Products: catalog.All(),
				Action:   ActionShowProducts,
			}
		},
	},
	{
		name: "price",
		matches: func(msg string) bool {
			return priceRe.MatchString(msg) || howMuchRe.MatchString(msg)
		},
		respond: respondPrice,
	},
	categoryRule("pizza", pizzaRe, models.CategoryPizza, func(n int) string {
		return fmt.Sprintf("🍕 Here are our %d delicious pizza options! Click \"Add\" on any that catch your eye.", n)
	}),
	categoryRule("pasta", pastaRe, models.CategoryPasta, func(int) string {
		return "🍝 Check out our pasta selection! All freshly made."
	}),
	categoryRule("sides", sidesRe, models.CategorySides, func(int) string {
		return "🥖 Here are our sides — perfect add-ons!"
	}),
	categoryRule("drinks", drinksRe, models.CategoryDrinks, func(int) string {
		return "🥤 Stay refreshed! Here are our drink options."
	}),
	categoryRule("desserts", dessertsRe, models.CategoryDesserts, func(int) string {
		return "🍰 Treat yourself to something sweet!"
	}),
	{
		name:    "add",
		matches: addRe.MatchString,
		respond: respondAdd,
	},
	{
		name:    "checkout",
		matches: checkoutRe.MatchString,
		respond: respondCheckout,
	},
	{
		name:    "help",
		matches: helpRe.MatchString,
		respond: func(request) Response {
			return Response{Reply: "I can help you: \n• Browse products — say \"show me pizzas\" or \"menu\"\n• Check prices — say \"price of Margherita\"\n• Manage cart — say \"add Margherita\"\n• Checkout — say \"confirm my order\""}
		},
	},
	{
		name:    "thanks",
		matches: thanksRe.MatchString,
		respond: func(request) Response {
			return Response{Reply: "You're welcome! 😊 Let me know if you need anything else."}
		},
	},
}

func categoryRule(name string, re *regexp.Regexp, cat models.Category, reply func(count int) string) rule {
	return rule{
		name:    name,
		matches: re.MatchString,
		respond: func(request) Response {
			products := catalog.ByCategory(cat)
			return Response{
				Reply:    reply(len(products)),
				Products: products,
				Action:   ActionShowProducts,
			}
		},
	}
}

func respondPrice(req request) Response {
	var term string
	if m := priceRe.FindStringSubmatch(req.msg); m != nil {
		term = strings.TrimSpace(m[3])
	} else {
		term = strings.TrimSpace(howMuchStripRe.ReplaceAllString(req.msg, ""))
	}
	if p, ok := catalog.FindByName(term); ok {
		return Response{Reply: fmt.Sprintf("The %s is ₹%d. Would you like to add it to your cart?", p.Name, p.Price)}
	}
	return Response{Reply: "I couldn't find that item. Could you try asking for pizzas, pastas, sides, drinks, or desserts?"}
}

func respondAdd(req request) Response {
	if p, ok := catalog.FindForAdd(req.msg); ok {
		return Response{
			Reply:   fmt.Sprintf("✅ %s added to your cart! Anything else?", p.Name),
			AutoAdd: &p,
		}
	}
	return Response{Reply: "Which item would you like to add? I couldn't find a match. Try browsing our categories first!"}
}

func respondCheckout(req request) Response {
	if req.cart.IsEmpty() {
		return Response{Reply: "Your cart is empty! Browse some products first. Try asking for 'pizzas' or 'show me the menu'."}
	}
	items := make([]string, 0, len(req.cart.Lines))
	for _, line := range req.cart.Lines {
		items = append(items, fmt.Sprintf("%s x%d", line.Product.Name, line.Quantity))
	}
	return Response{
		Reply:  fmt.Sprintf("📦 Your order: %s. Total: ₹%d. Let me take you to checkout!", strings.Join(items, ", "), req.cart.Total()),
		Action: ActionConfirmOrder,
	}
}

// Resolve matches a free-text message against the rule table and
// returns the reply, any matched product subset, an optional action
// tag, and an optional product to auto-add to the cart. A miss on every
// rule yields the generic category suggestion; no input is an error.
func Resolve(message string, cart models.Cart) Response {
	req := request{msg: strings.ToLower(message), cart: cart}
	for _, r := range rules {
		if r.matches(req.msg) {
			return r.respond(req)
		}
	}
	return Response{Reply: "I'm not sure I understood that. Try asking me to show you **pizzas**, **pastas**, **sides**, **drinks**, or **desserts**. Or say **menu** to see everything!"}
}
