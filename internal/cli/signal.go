package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
)

// ErrInterrupted is the cancellation cause of a run stopped by a signal.
var ErrInterrupted = errors.New("interrupted")

// InterruptContext returns a context cancelled on SIGINT or SIGTERM, or on
// the given signals when any are passed. The cause wraps ErrInterrupted and
// names the signal. Calling stop releases the handler.
func InterruptContext(parent context.Context, logger *slog.Logger, sigs ...os.Signal) (ctx context.Context, stop context.CancelFunc) {
	if len(sigs) == 0 {
		sigs = []os.Signal{os.Interrupt, syscall.SIGTERM}
	}
	ctx, cancel := context.WithCancelCause(parent)
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, sigs...)

	go func() {
		defer signal.Stop(ch)
		select {
		case sig := <-ch:
			logger.Warn("received signal, stopping", "signal", sig.String())
			cancel(fmt.Errorf("%w by %s", ErrInterrupted, sig))
		case <-ctx.Done():
		}
	}()
	return ctx, func() { cancel(context.Canceled) }
}

// Interrupted returns the cause of ctx when a signal stopped it.
func Interrupted(ctx context.Context) error {
	if cause := context.Cause(ctx); errors.Is(cause, ErrInterrupted) {
		return cause
	}
	return nil
}
