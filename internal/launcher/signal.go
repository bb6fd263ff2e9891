package launcher

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// SignalContext returns a context for running a foreground child. It is
// cancelled when the process receives SIGTERM, which the child would not
// otherwise see. SIGINT is caught and dropped so the launcher outlives the
// child: the terminal already delivers it to the whole foreground process
// group. Cancellation of parent is not inherited.
//
// The returned stop function releases both signals.
func SignalContext(parent context.Context) (context.Context, context.CancelFunc) {
	interrupts := make(chan os.Signal, 1)
	signal.Notify(interrupts, os.Interrupt)

	ctx, stop := signal.NotifyContext(context.WithoutCancel(parent), syscall.SIGTERM)
	return ctx, func() {
		stop()
		signal.Stop(interrupts)
	}
}
