// Package config loads the worker/starter configuration from an
// optional YAML file with environment-variable overrides. Every knob
// has a default matching the stock demo constants, so running with
// no config file at all behaves like the demo.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration wraps time.Duration so values can be written as "800ms" or
// "5s" in YAML.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var raw string
	if err := node.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// Std returns the wrapped time.Duration
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Config is the full application configuration
type Config struct {
	Temporal TemporalConfig `yaml:"temporal"`
	Demo     DemoConfig     `yaml:"demo"`
	Order    OrderConfig    `yaml:"order"`
	Payment  PaymentConfig  `yaml:"payment"`
	Delivery DeliveryConfig `yaml:"delivery"`
	Latency  LatencyConfig  `yaml:"latency"`
}

// TemporalConfig selects the Temporal server and task queue
type TemporalConfig struct {
	Address   string `yaml:"address"`
	TaskQueue string `yaml:"task_queue"`
}

// DemoConfig is the fixed demo credential accepted by the auth gate
type DemoConfig struct {
	UserID   int    `yaml:"user_id"`
	UserName string `yaml:"user_name"`
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
}

// OrderConfig holds order-simulator constants
type OrderConfig struct {
	DeliveryFee int `yaml:"delivery_fee"`
	CounterSeed int `yaml:"counter_seed"`
}

// PaymentConfig holds the mock payment success probability
type PaymentConfig struct {
	SuccessRate float64 `yaml:"success_rate"`
}

// DeliveryConfig holds the delivery stage machine interval
type DeliveryConfig struct {
	StageInterval Duration `yaml:"stage_interval"`
}

// LatencyConfig holds the simulated backend latencies. They exist so
// the UI layer can show loading affordances; tests set them to zero.
type LatencyConfig struct {
	Login       Duration `yaml:"login"`
	ChatBase    Duration `yaml:"chat_base"`
	ChatJitter  Duration `yaml:"chat_jitter"`
	Products    Duration `yaml:"products"`
	CreateOrder Duration `yaml:"create_order"`
	Payment     Duration `yaml:"payment"`
	GetOrder    Duration `yaml:"get_order"`
}

// Default returns the stock demo configuration.
func Default() Config {
	return Config{
		Temporal: TemporalConfig{
			Address:   "localhost:7233",
			TaskQueue: "shopbot-task-queue",
		},
		Demo: DemoConfig{
			UserID:   1,
			UserName: "Demo User",
			Email:    "demo@shopbot.com",
			Password: "demo1234",
		},
		Order: OrderConfig{
			DeliveryFee: 40,
			CounterSeed: 1040,
		},
		Payment: PaymentConfig{
			SuccessRate: 0.9,
		},
		Delivery: DeliveryConfig{
			StageInterval: Duration(5 * time.Second),
		},
		Latency: LatencyConfig{
			Login:       Duration(800 * time.Millisecond),
			ChatBase:    Duration(800 * time.Millisecond),
			ChatJitter:  Duration(700 * time.Millisecond),
			Products:    Duration(300 * time.Millisecond),
			CreateOrder: Duration(600 * time.Millisecond),
			Payment:     Duration(1500 * time.Millisecond),
			GetOrder:    Duration(400 * time.Millisecond),
		},
	}
}

// Load reads the YAML file at path on top of the defaults, then applies
// environment overrides. An empty path (or a missing file at the
// default path) is not an error; the defaults stand.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return cfg, fmt.Errorf("failed to read config file: %w", err)
			}
		} else if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	if addr := os.Getenv("TEMPORAL_ADDRESS"); addr != "" {
		cfg.Temporal.Address = addr
	}
	if queue := os.Getenv("SHOPBOT_TASK_QUEUE"); queue != "" {
		cfg.Temporal.TaskQueue = queue
	}

	return cfg, nil
}
