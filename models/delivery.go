package models

import "time"

// Delivery stage indices. Progression is monotonic, one stage at a
// time, bounded to [StagePlaced, StageDelivered].
const (
	StagePlaced = iota
	StagePaymentConfirmed
	StagePreparing
	StageOutForDelivery
	StageDelivered

	FinalStage = StageDelivered
)

// StageNotification is the one-time message surfaced to the user when a
// stage is entered.
type StageNotification struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// StageInfo describes one step of the fixed delivery timeline
type StageInfo struct {
	Label        string            `json:"label"`
	Glyph        string            `json:"glyph"`
	Notification StageNotification `json:"notification"`
}

// DeliveryStages is the fixed 5-stage delivery progression, in order
var DeliveryStages = [FinalStage + 1]StageInfo{
	{
		Label: "Order Placed",
		Glyph: "📦",
		Notification: StageNotification{
			Title: "Order received!",
			Body:  "Your order has been placed successfully. We're getting things ready!",
		},
	},
	{
		Label: "Payment Confirmed",
		Glyph: "✅",
		Notification: StageNotification{
			Title: "Payment confirmed!",
			Body:  "Your payment has been verified. The kitchen is about to start!",
		},
	},
	{
		Label: "Preparing",
		Glyph: "👨‍🍳",
		Notification: StageNotification{
			Title: "Your food is being prepared!",
			Body:  "Our chef is working on your order. Estimated delivery: ~15 mins.",
		},
	},
	{
		Label: "Out for Delivery",
		Glyph: "🛵",
		Notification: StageNotification{
			Title: "Your rider is on the way!",
			Body:  "Your order has been picked up and is heading to you. Almost there!",
		},
	},
	{
		Label: "Delivered",
		Glyph: "🎉",
		Notification: StageNotification{
			Title: "Delivered! 🎉",
			Body:  "Your order has been delivered. Enjoy your meal! Thank you for ordering with ShopBot.",
		},
	},
}

// StageStatus classifies a timeline entry relative to the current stage
type StageStatus string

const (
	StageStatusCompleted StageStatus = "completed"
	StageStatusCurrent   StageStatus = "current"
	StageStatusFuture    StageStatus = "future"
)

// TimelineEntry is the view of one stage in the delivery timeline.
// Reached stages carry their actual entry time; future stages carry an
// estimate.
type TimelineEntry struct {
	Stage     int         `json:"stage"`
	Label     string      `json:"label"`
	Glyph     string      `json:"glyph"`
	Status    StageStatus `json:"status"`
	Time      time.Time   `json:"time"`
	Estimated bool        `json:"estimated"`
}
