//go:build unix

package runner

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"golang.org/x/sys/unix"

	"github.com/fosdem/glhello/lib/api"
	"github.com/fosdem/glhello/lib/window"
)

// injectSignals turns SIGINT and SIGTERM into quit events so the loop
// exits through its normal teardown.
func injectSignals(inj api.Injector) func() {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, unix.SIGINT, unix.SIGTERM)
	done := make(chan struct{})
	go func() {
		for {
			select {
			case sig := <-sigs:
				slog.Info(fmt.Sprintf("received %s", sig), slog.String("module", "runner"))
				inj.Inject(window.Quit("signal"))
			case <-done:
				return
			}
		}
	}()
	return func() {
		signal.Stop(sigs)
		close(done)
	}
}
