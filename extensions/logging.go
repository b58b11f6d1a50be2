// Package extensions provides cross-cutting extensions for argfn chains:
// structured logging of node executions and chain visualization.
package extensions

import (
	"context"
	"log/slog"
	"time"

	argfn "github.com/argfn/argfn"
)

// LoggingExtension logs every chain-node execution through slog.
type LoggingExtension struct {
	argfn.BaseExtension
	logger *slog.Logger
}

// NewLoggingExtension creates a logging extension writing to handler.
func NewLoggingExtension(handler slog.Handler) *LoggingExtension {
	return &LoggingExtension{
		BaseExtension: argfn.NewBaseExtension("logging"),
		logger:        slog.New(handler),
	}
}

func (e *LoggingExtension) Wrap(ctx context.Context, next func() (any, error), op *argfn.Operation) (any, error) {
	start := time.Now()
	attrs := []any{
		"node", string(op.Kind),
		"fn", op.Fn,
	}
	if op.Call != nil {
		attrs = append(attrs, "call_id", op.Call.ID())
	}

	e.logger.Debug("node starting", attrs...)
	result, err := next()

	attrs = append(attrs, "duration", time.Since(start))
	if err != nil {
		e.logger.Error("node failed", append(attrs, "error", err.Error())...)
	} else {
		e.logger.Debug("node completed", attrs...)
	}

	return result, err
}

func (e *LoggingExtension) OnError(err error, op *argfn.Operation) {
	e.logger.Error("error surfaced",
		"node", string(op.Kind),
		"fn", op.Fn,
		"error", err.Error(),
	)
}
