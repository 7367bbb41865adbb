package lifecycle

import (
	"context"
	"os"
	"os/signal"
	"pngme/internal/global"
	"pngme/internal/logctx"
	"syscall"
)

// Cancels the command context on the first interrupt/termination signal.
// A second signal exits immediately. Returns a stop function releasing the handler.
func SignalHandler(ctx context.Context, cancel context.CancelFunc) (stop func()) {
	sigChan := make(chan os.Signal, 2)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGQUIT, syscall.SIGTERM)

	finished := make(chan struct{})
	go func() {
		select {
		case sig := <-sigChan:
			logctx.LogEvent(ctx, global.VerbosityStandard, global.WarnLog, "Received signal: %v, cancelling\n", sig)
			cancel()
		case <-finished:
			return
		}

		select {
		case sig := <-sigChan:
			recvSignal, _ := sig.(syscall.Signal)
			os.Exit(128 + int(recvSignal))
		case <-finished:
		}
	}()

	stop = func() {
		signal.Stop(sigChan)
		close(finished)
	}
	return
}
