// Package runner wires a window, a GL driver and the theatre into the
// render loop. It does not depend on a particular windowing library or GL
// binding; main picks those.
package runner

import (
	"fmt"
	"log/slog"

	"github.com/fosdem/glhello/lib/api"
	"github.com/fosdem/glhello/lib/config"
	"github.com/fosdem/glhello/lib/metrics"
	"github.com/fosdem/glhello/lib/rendering/gpu"
	"github.com/fosdem/glhello/lib/renderloop"
	"github.com/fosdem/glhello/lib/shaderwatch"
	"github.com/fosdem/glhello/lib/stats"
	"github.com/fosdem/glhello/lib/theatre"
	"github.com/fosdem/glhello/lib/window"
)

// GLLoader resolves the GL entry points for a freshly opened window.
type GLLoader func(win window.Window) (gpu.Driver, error)

// MakeWindowAndRender must run on the thread locked in main's init. It
// returns once the loop terminates or setup fails, and in both cases after
// everything opened so far has been released.
func MakeWindowAndRender(cfg *config.Config, backend window.Backend, loadGL GLLoader) error {
	win, err := window.Open(backend, cfg.Window.Options())
	if err != nil {
		return err
	}
	defer func() {
		err := win.Close()
		if err != nil {
			slog.Warn(fmt.Sprintf("could not close window: %s", err), slog.String("module", "runner"))
		}
	}()

	driver, err := loadGL(win)
	if err != nil {
		return fmt.Errorf("could not initialise renderer: %w", err)
	}

	th, err := theatre.New(cfg, driver)
	if err != nil {
		return fmt.Errorf("could not init GL program: %w", err)
	}
	defer th.Delete()

	st := stats.New()
	th.AddEventListener(theatre.EventShaderReload, func(_ *theatre.Theatre, _ interface{}) {
		st.ShaderReloaded()
	})

	theApi := api.ServeInBackground(cfg.Api, win, th, st)
	if theApi != nil {
		defer func() {
			_ = theApi.Close()
		}()
	}

	stopSignals := injectSignals(win)
	defer stopSignals()

	maintenance := []func(){
		st.Update,
		metrics.FramesRendered.Inc,
	}

	if cfg.Render.Shaders != nil && cfg.Render.Shaders.Watch {
		watcher, err := shaderwatch.New(string(cfg.Render.Shaders.Vertex), string(cfg.Render.Shaders.Fragment))
		if err != nil {
			return fmt.Errorf("could not watch shaders: %w", err)
		}
		defer func() {
			err := watcher.Close()
			if err != nil {
				slog.Warn(fmt.Sprintf("shader watcher stopped with: %s", err), slog.String("module", "runner"))
			}
		}()
		maintenance = append(maintenance, func() {
			if watcher.Pending() {
				// failures are logged and the previous program stays
				_ = th.ReloadShaders()
			}
		})
	}

	th.Start()

	loop := &renderloop.Loop{
		Events:      win,
		Frame:       th,
		Present:     win,
		OnEvents:    countEvents,
		Maintenance: maintenance,
	}
	frames := loop.Run()
	slog.Info(fmt.Sprintf("render loop %s after %d frames", loop.State(), frames), slog.String("module", "runner"))
	return nil
}

func countEvents(events []window.Event) {
	for _, ev := range events {
		metrics.Events.WithLabelValues(ev.Kind.String()).Inc()
		if ev.Kind == window.EventQuit {
			slog.Info(fmt.Sprintf("quit requested by %s", ev.Origin), slog.String("module", "runner"))
		}
	}
}
