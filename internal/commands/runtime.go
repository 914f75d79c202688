package commands

import (
	"context"
	"time"

	"github.com/goliatone/go-blogkit/internal/logging"
	"github.com/goliatone/go-blogkit/pkg/interfaces"
)

// DefaultCommandTimeout bounds a post or feed command when no timeout option
// is given. It matches the default pipeline.timeout.
const DefaultCommandTimeout = 30 * time.Second

// EnsureContext substitutes context.Background for a nil ctx.
func EnsureContext(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}

// WithCommandTimeout bounds ctx by timeout. A zero or negative timeout, or a
// parent deadline that expires first, leaves ctx as it is.
func WithCommandTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return ctx, func() {}
	}
	if deadline, ok := ctx.Deadline(); ok && time.Until(deadline) <= timeout {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}

// EnsureLogger substitutes the no-op logger for a nil logger.
func EnsureLogger(logger interfaces.Logger) interfaces.Logger {
	if logger == nil {
		return logging.NoOp()
	}
	return logger
}
