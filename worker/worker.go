package main

import (
	"math/rand"
	"os"

	"shopbot/activities"
	"shopbot/config"
	"shopbot/logging"
	"shopbot/workflows"

	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/worker"
	"go.uber.org/zap"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	configPath := os.Getenv("SHOPBOT_CONFIG")
	if configPath == "" {
		configPath = "config.yaml"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	c, err := client.Dial(client.Options{
		HostPort: cfg.Temporal.Address,
		Logger:   logging.NewZapAdapter(logger),
	})
	if err != nil {
		logger.Fatal("Unable to create Temporal client", zap.Error(err))
	}
	defer c.Close()

	w := worker.New(c, cfg.Temporal.TaskQueue, worker.Options{
		MaxConcurrentActivityExecutionSize:     100,
		MaxConcurrentWorkflowTaskExecutionSize: 50,
	})

	w.RegisterWorkflow(workflows.SessionWorkflow)
	w.RegisterWorkflow(workflows.OrderWorkflow)
	w.RegisterWorkflow(workflows.DeliveryWorkflow)

	authActivities := activities.NewAuthActivities(cfg)
	w.RegisterActivity(authActivities.Login)

	chatActivities := activities.NewChatActivities(cfg)
	w.RegisterActivity(chatActivities.Chat)

	catalogActivities := activities.NewCatalogActivities(cfg)
	w.RegisterActivity(catalogActivities.GetProducts)

	orderActivities := activities.NewOrderActivities(cfg, rand.Float64)
	w.RegisterActivity(orderActivities.CreateOrder)
	w.RegisterActivity(orderActivities.MockPayment)
	w.RegisterActivity(orderActivities.ConfirmOrder)
	w.RegisterActivity(orderActivities.CancelOrder)
	w.RegisterActivity(orderActivities.GetOrder)

	logger.Info("Starting ShopBot worker",
		zap.String("temporal_address", cfg.Temporal.Address),
		zap.String("task_queue", cfg.Temporal.TaskQueue),
		zap.Float64("payment_success_rate", cfg.Payment.SuccessRate),
		zap.Duration("stage_interval", cfg.Delivery.StageInterval.Std()))

	if err := w.Run(worker.InterruptCh()); err != nil {
		logger.Fatal("Unable to start worker", zap.Error(err))
	}
}
