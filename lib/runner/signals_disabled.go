//go:build !unix

package runner

import (
	"log/slog"

	"github.com/fosdem/glhello/lib/api"
)

func injectSignals(_ api.Injector) func() {
	slog.Debug("signal handling is only available on unix", slog.String("module", "runner"))
	return func() {}
}
