// Package backends maps configured backend names to window backends.
package backends

import (
	"fmt"

	"github.com/fosdem/glhello/lib/config"
	"github.com/fosdem/glhello/lib/window"
	"github.com/fosdem/glhello/lib/window/glfwwindow"
	"github.com/fosdem/glhello/lib/window/sdlwindow"
)

func ByName(name string) (window.Backend, error) {
	switch name {
	case config.BackendGLFW:
		return glfwwindow.Backend{}, nil
	case config.BackendSDL:
		return sdlwindow.Backend{}, nil
	default:
		return nil, fmt.Errorf("%w: %s", window.ErrUnknownBackend, name)
	}
}
