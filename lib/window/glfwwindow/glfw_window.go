// Package glfwwindow opens the window and GL context with GLFW.
package glfwwindow

import (
	"fmt"
	"log/slog"
	"unsafe"

	"github.com/fosdem/glhello/lib/kbdctl"
	"github.com/fosdem/glhello/lib/window"
	"github.com/go-gl/glfw/v3.3/glfw"
	gopointer "github.com/mattn/go-pointer"
)

const Name = "glfw"

type Backend struct{}

func (Backend) Name() string { return Name }

type Window struct {
	window.Queue

	Window *glfw.Window
	self   unsafe.Pointer
}

func (Backend) Open(opts window.Options) (window.Window, error) {
	w := &Window{}
	slog.Debug("Initializing window", slog.String("module", Name))

	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize glfw: %w", err)
	}

	glfw.WindowHint(glfw.Resizable, glfw.False)
	glfw.WindowHint(glfw.ContextVersionMajor, opts.Version.Major)
	glfw.WindowHint(glfw.ContextVersionMinor, opts.Version.Minor)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	gw, err := glfw.CreateWindow(opts.Width, opts.Height, opts.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("could not create window: %w", err)
	}
	w.Window = gw

	gw.MakeContextCurrent()
	if opts.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	// callbacks find their Window through the GLFW user pointer
	w.self = gopointer.Save(w)
	gw.SetUserPointer(w.self)
	gw.SetCloseCallback(onClose)
	gw.SetKeyCallback(onKey)

	return w, nil
}

func owner(gw *glfw.Window) *Window {
	ptr := gw.GetUserPointer()
	if ptr == nil {
		return nil
	}
	w, _ := gopointer.Restore(ptr).(*Window)
	return w
}

func onClose(gw *glfw.Window) {
	if w := owner(gw); w != nil {
		w.Push(window.Quit("close"))
	}
}

func onKey(gw *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	w := owner(gw)
	if w == nil {
		return
	}
	if kbdctl.IsQuitShortcut(key, action, mods) {
		slog.Info("told to quit, exiting", slog.String("module", Name))
		w.Push(window.Quit("keyboard"))
		return
	}
	w.Push(window.Event{Kind: window.EventKey, Origin: "keyboard"})
}

func (w *Window) PollEvents() []window.Event {
	kbdctl.Poll()
	return w.Drain()
}

func (w *Window) Inject(ev window.Event) {
	w.Push(ev)
}

func (w *Window) SwapBuffers() {
	w.Window.SwapBuffers()
}

func (w *Window) ProcAddress(name string) unsafe.Pointer {
	return glfw.GetProcAddress(name)
}

func (w *Window) Close() error {
	if w.Window == nil {
		return nil
	}
	w.Window.SetUserPointer(nil)
	gopointer.Unref(w.self)
	w.Window.Destroy()
	w.Window = nil
	glfw.Terminate()
	return nil
}
