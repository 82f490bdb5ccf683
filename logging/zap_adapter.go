// Package logging bridges zap into the Temporal SDK logger interface so
// workers, workflows, and activities all log through the same
// structured logger.
package logging

import (
	"go.temporal.io/sdk/log"
	"go.uber.org/zap"
)

// ZapAdapter implements go.temporal.io/sdk/log.Logger on top of zap
type ZapAdapter struct {
	sugared *zap.SugaredLogger
}

var _ log.Logger = (*ZapAdapter)(nil)

// NewZapAdapter wraps a zap logger for use as the Temporal client
// logger. The caller keeps ownership of the logger (and its Sync).
func NewZapAdapter(logger *zap.Logger) *ZapAdapter {
	// Skip the adapter frame so call sites are reported correctly
	return &ZapAdapter{
		sugared: logger.WithOptions(zap.AddCallerSkip(1)).Sugar(),
	}
}

// Debug implements log.Logger
func (a *ZapAdapter) Debug(msg string, keyvals ...interface{}) {
	a.sugared.Debugw(msg, keyvals...)
}

// Info implements log.Logger
func (a *ZapAdapter) Info(msg string, keyvals ...interface{}) {
	a.sugared.Infow(msg, keyvals...)
}

// Warn implements log.Logger
func (a *ZapAdapter) Warn(msg string, keyvals ...interface{}) {
	a.sugared.Warnw(msg, keyvals...)
}

// Error implements log.Logger
func (a *ZapAdapter) Error(msg string, keyvals ...interface{}) {
	a.sugared.Errorw(msg, keyvals...)
}
