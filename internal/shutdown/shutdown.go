// Package shutdown ties a context to the process termination signals.
package shutdown

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// New returns a context that is cancelled on SIGINT or SIGTERM, and its cancel function.
func New() (context.Context, func()) {
	ctx, cancel := context.WithCancel(context.Background())
	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		defer signal.Stop(signalCh)
		select {
		case <-signalCh:
		case <-ctx.Done():
		}
		cancel()
	}()
	return ctx, cancel
}
