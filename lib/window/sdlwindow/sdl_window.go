// Package sdlwindow opens the window and GL context with SDL2.
package sdlwindow

import (
	"fmt"
	"log/slog"
	"unsafe"

	"github.com/fosdem/glhello/lib/window"
	"github.com/veandco/go-sdl2/sdl"
)

const Name = "sdl"

type Backend struct{}

func (Backend) Name() string { return Name }

type Window struct {
	window.Queue

	Window  *sdl.Window
	Context sdl.GLContext
}

func (Backend) Open(opts window.Options) (window.Window, error) {
	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return nil, fmt.Errorf("failed to initialize sdl: %w", err)
	}

	attrs := []struct {
		attr  sdl.GLattr
		value int
	}{
		{sdl.GL_CONTEXT_PROFILE_MASK, sdl.GL_CONTEXT_PROFILE_CORE},
		{sdl.GL_CONTEXT_MAJOR_VERSION, opts.Version.Major},
		{sdl.GL_CONTEXT_MINOR_VERSION, opts.Version.Minor},
		{sdl.GL_CONTEXT_FLAGS, sdl.GL_CONTEXT_FORWARD_COMPATIBLE_FLAG},
		{sdl.GL_DOUBLEBUFFER, 1},
	}
	for _, a := range attrs {
		if err := sdl.GLSetAttribute(a.attr, a.value); err != nil {
			sdl.Quit()
			return nil, fmt.Errorf("could not set GL attribute %d: %w", a.attr, err)
		}
	}

	sw, err := sdl.CreateWindow(
		opts.Title,
		sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED,
		int32(opts.Width), int32(opts.Height),
		sdl.WINDOW_OPENGL,
	)
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("could not create window: %w", err)
	}

	ctx, err := sw.GLCreateContext()
	if err != nil {
		_ = sw.Destroy()
		sdl.Quit()
		return nil, fmt.Errorf("could not create GL context: %w", err)
	}

	interval := 0
	if opts.VSync {
		interval = 1
	}
	if err := sdl.GLSetSwapInterval(interval); err != nil {
		slog.Warn(fmt.Sprintf("could not set swap interval: %s", err), slog.String("module", Name))
	}

	return &Window{Window: sw, Context: ctx}, nil
}

func (w *Window) PollEvents() []window.Event {
	for ev := sdl.PollEvent(); ev != nil; ev = sdl.PollEvent() {
		switch e := ev.(type) {
		case *sdl.QuitEvent:
			w.Push(window.Quit("close"))
		case *sdl.KeyboardEvent:
			if e.Type == sdl.KEYDOWN && e.Keysym.Sym == sdl.K_ESCAPE {
				w.Push(window.Quit("keyboard"))
				continue
			}
			w.Push(window.Event{Kind: window.EventKey, Origin: "keyboard"})
		default:
			w.Push(window.Event{Kind: window.EventOther})
		}
	}
	return w.Drain()
}

func (w *Window) Inject(ev window.Event) {
	w.Push(ev)
}

func (w *Window) SwapBuffers() {
	w.Window.GLSwap()
}

func (w *Window) ProcAddress(name string) unsafe.Pointer {
	return sdl.GLGetProcAddress(name)
}

func (w *Window) Close() error {
	if w.Window == nil {
		return nil
	}
	sdl.GLDeleteContext(w.Context)
	err := w.Window.Destroy()
	w.Window = nil
	sdl.Quit()
	if err != nil {
		return fmt.Errorf("could not destroy window: %w", err)
	}
	return nil
}
