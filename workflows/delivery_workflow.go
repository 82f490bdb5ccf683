package workflows

import (
	"fmt"
	"time"

	"shopbot/models"

	"go.temporal.io/sdk/workflow"
)

// DeliveryInput configures one delivery timeline
type DeliveryInput struct {
	OrderID       int           `json:"order_id"`
	StageInterval time.Duration `json:"stage_interval"`
}

// DeliveryState is the queryable state of the delivery timeline.
// Timestamps holds the actual entry time of every reached stage;
// Notifications accumulates the one-time message for each stage
// entered so far.
type DeliveryState struct {
	OrderID       int                        `json:"order_id"`
	Stage         int                        `json:"current_stage"`
	Timestamps    []time.Time                `json:"timestamps"`
	Notifications []models.StageNotification `json:"notifications"`
	Delivered     bool                       `json:"delivered"`
}

// DeliveryWorkflow simulates the fixed 5-stage delivery progression.
// Every stage interval it advances by exactly one stage and records the
// entry time; after Delivered it stops for good. The progression is
// purely presentational and runs on workflow timers, so cancelling the
// workflow is the only thing that stops it early and no callback can
// fire after teardown.
func DeliveryWorkflow(ctx workflow.Context, input DeliveryInput) (DeliveryState, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("DeliveryWorkflow started", "order_id", input.OrderID)

	interval := input.StageInterval
	if interval <= 0 {
		interval = 5 * time.Second
	}

	state := DeliveryState{
		OrderID:       input.OrderID,
		Stage:         models.StagePlaced,
		Timestamps:    []time.Time{workflow.Now(ctx)},
		Notifications: []models.StageNotification{models.DeliveryStages[models.StagePlaced].Notification},
	}

	err := workflow.SetQueryHandler(ctx, QueryDeliveryState, func() (DeliveryState, error) {
		return state, nil
	})
	if err != nil {
		return state, fmt.Errorf("failed to set query handler: %w", err)
	}
	err = workflow.SetQueryHandler(ctx, QueryDeliveryTimeline, func() ([]models.TimelineEntry, error) {
		return buildTimeline(state, interval), nil
	})
	if err != nil {
		return state, fmt.Errorf("failed to set query handler: %w", err)
	}

	for state.Stage < models.FinalStage {
		if err := workflow.Sleep(ctx, interval); err != nil {
			// Flow exited; leave the timeline where it stands
			logger.Info("DeliveryWorkflow cancelled", "order_id", input.OrderID, "stage", state.Stage)
			return state, err
		}
		state.Stage++
		state.Timestamps = append(state.Timestamps, workflow.Now(ctx))
		info := models.DeliveryStages[state.Stage]
		state.Notifications = append(state.Notifications, info.Notification)
		logger.Info("Delivery stage advanced",
			"order_id", input.OrderID,
			"stage", state.Stage,
			"label", info.Label)
	}

	state.Delivered = true
	logger.Info("DeliveryWorkflow completed", "order_id", input.OrderID)
	return state, nil
}

// buildTimeline renders the stage list against the current stage:
// reached stages carry their recorded entry time, future stages an
// estimate of now + stagesAhead x interval (based on the current
// stage's entry time, which is the last deterministic "now" we have).
func buildTimeline(state DeliveryState, interval time.Duration) []models.TimelineEntry {
	base := state.Timestamps[state.Stage]
	entries := make([]models.TimelineEntry, 0, len(models.DeliveryStages))
	for i, info := range models.DeliveryStages {
		entry := models.TimelineEntry{
			Stage: i,
			Label: info.Label,
			Glyph: info.Glyph,
		}
		switch {
		case i < state.Stage:
			entry.Status = models.StageStatusCompleted
			entry.Time = state.Timestamps[i]
		case i == state.Stage:
			entry.Status = models.StageStatusCurrent
			entry.Time = state.Timestamps[i]
		default:
			entry.Status = models.StageStatusFuture
			entry.Time = base.Add(time.Duration(i-state.Stage) * interval)
			entry.Estimated = true
		}
		entries = append(entries, entry)
	}
	return entries
}
