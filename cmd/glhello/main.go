package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"runtime"

	"github.com/fosdem/glhello/lib/config"
	logging "github.com/fosdem/glhello/lib/log"
	"github.com/fosdem/glhello/lib/rendering/glgpu"
	"github.com/fosdem/glhello/lib/rendering/gpu"
	"github.com/fosdem/glhello/lib/runner"
	"github.com/fosdem/glhello/lib/window"
	"github.com/fosdem/glhello/lib/window/backends"
)

func init() {
	// The OpenGL stuff must be in one thread
	runtime.LockOSThread()
}

func main() {
	backendPtr := flag.String("backend", "", "Window backend (glfw or sdl), overrides the config file")
	meshPtr := flag.String("mesh", "", "Mesh to draw (quad or triangle), overrides the config file")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] [config file]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg := config.Default()
	if flag.NArg() > 0 {
		var err error
		cfg, err = config.Parse(flag.Arg(0))
		if err != nil {
			log.Fatal(err)
		}
	}
	if *backendPtr != "" {
		cfg.Window.Backend = *backendPtr
	}
	if *meshPtr != "" {
		cfg.Render.Mesh = *meshPtr
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %s", err)
	}

	logging.Setup(cfg.Level())
	slog.Debug(fmt.Sprintf("configuration:\n%s", cfg), slog.String("module", "main"))

	backend, err := backends.ByName(cfg.Window.Backend)
	if err != nil {
		log.Fatalf("could not pick window backend: %s", err)
	}

	// the window is already released when this returns
	err = runner.MakeWindowAndRender(cfg, backend, loadGL)
	if err != nil {
		log.Fatal(err)
	}
}

func loadGL(win window.Window) (gpu.Driver, error) {
	return glgpu.Init(win.ProcAddress)
}
