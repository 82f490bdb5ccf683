package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"shopbot/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := config.Default()

	assert.Equal(t, "localhost:7233", cfg.Temporal.Address)
	assert.Equal(t, "shopbot-task-queue", cfg.Temporal.TaskQueue)
	assert.Equal(t, "demo@shopbot.com", cfg.Demo.Email)
	assert.Equal(t, 40, cfg.Order.DeliveryFee)
	assert.Equal(t, 1040, cfg.Order.CounterSeed)
	assert.Equal(t, 0.9, cfg.Payment.SuccessRate)
	assert.Equal(t, 5*time.Second, cfg.Delivery.StageInterval.Std())
	assert.Equal(t, 800*time.Millisecond, cfg.Latency.Login.Std())
	assert.Equal(t, 1500*time.Millisecond, cfg.Latency.Payment.Std())
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
temporal:
  address: temporal.internal:7233
payment:
  success_rate: 0.5
delivery:
  stage_interval: 2s
latency:
  login: 10ms
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "temporal.internal:7233", cfg.Temporal.Address)
	assert.Equal(t, 0.5, cfg.Payment.SuccessRate)
	assert.Equal(t, 2*time.Second, cfg.Delivery.StageInterval.Std())
	assert.Equal(t, 10*time.Millisecond, cfg.Latency.Login.Std())

	// Untouched keys keep their defaults
	assert.Equal(t, "shopbot-task-queue", cfg.Temporal.TaskQueue)
	assert.Equal(t, 40, cfg.Order.DeliveryFee)
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestLoadInvalidDuration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("latency:\n  login: fast\n"), 0o644))

	_, err := config.Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid duration")
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("TEMPORAL_ADDRESS", "override:7233")
	t.Setenv("SHOPBOT_TASK_QUEUE", "override-queue")

	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, "override:7233", cfg.Temporal.Address)
	assert.Equal(t, "override-queue", cfg.Temporal.TaskQueue)
}
