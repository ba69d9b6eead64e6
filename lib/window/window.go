// Package window owns the window + GL context pair and turns the windowing
// library's input into a small queue of events.
package window

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"unsafe"
)

var (
	ErrUnsupportedVersion = errors.New("unsupported OpenGL version")
	ErrUnknownBackend     = errors.New("unknown window backend")
)

type GLVersion struct {
	Major int
	Minor int
}

// SupportedVersions are the only core profiles a context is created for.
// Anything else is refused instead of being downgraded.
var SupportedVersions = []GLVersion{
	{Major: 3, Minor: 3},
	{Major: 4, Minor: 1},
}

func (v GLVersion) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

func (v GLVersion) Supported() bool {
	for _, s := range SupportedVersions {
		if s == v {
			return true
		}
	}
	return false
}

// ParseGLVersion reads "MAJOR.MINOR".
func ParseGLVersion(s string) (GLVersion, error) {
	major, minor, ok := strings.Cut(strings.TrimSpace(s), ".")
	if !ok {
		return GLVersion{}, fmt.Errorf("%q is not of the form MAJOR.MINOR", s)
	}
	var v GLVersion
	var err error
	v.Major, err = strconv.Atoi(major)
	if err != nil {
		return GLVersion{}, fmt.Errorf("bad major version in %q: %w", s, err)
	}
	v.Minor, err = strconv.Atoi(minor)
	if err != nil {
		return GLVersion{}, fmt.Errorf("bad minor version in %q: %w", s, err)
	}
	return v, nil
}

type Options struct {
	Title   string
	Width   int
	Height  int
	Version GLVersion
	VSync   bool
}

// Window is a live window with a current GL context.
type Window interface {
	// PollEvents returns every event queued since the last call without
	// blocking.
	PollEvents() []Event
	// Inject queues an event from any goroutine.
	Inject(ev Event)
	SwapBuffers()
	// ProcAddress resolves a GL entry point for the current context.
	ProcAddress(name string) unsafe.Pointer
	// Close destroys the context and the window and shuts the windowing
	// library down. It is safe to call more than once.
	Close() error
}

// Backend is a windowing library able to produce a Window.
type Backend interface {
	Name() string
	Open(opts Options) (Window, error)
}

// Open validates the requested context version before the backend is
// touched, so an unsupported version never produces a handle.
func Open(b Backend, opts Options) (Window, error) {
	if !opts.Version.Supported() {
		return nil, fmt.Errorf("%w: %s (supported: %v)", ErrUnsupportedVersion, opts.Version, SupportedVersions)
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("invalid window size %dx%d", opts.Width, opts.Height)
	}

	slog.Debug(fmt.Sprintf("Opening %dx%d window with OpenGL %s core", opts.Width, opts.Height, opts.Version),
		slog.String("module", b.Name()))
	w, err := b.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("could not open %s window: %w", b.Name(), err)
	}
	return w, nil
}
