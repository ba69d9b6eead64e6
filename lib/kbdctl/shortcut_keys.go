package kbdctl

import (
	"github.com/go-gl/glfw/v3.3/glfw"
)

// IsQuitShortcut matches Escape on press and Ctrl+Shift+Q on release.
func IsQuitShortcut(key glfw.Key, action glfw.Action, mods glfw.ModifierKey) bool {
	if action == glfw.Press && key == glfw.KeyEscape {
		return true
	}
	if action == glfw.Release {
		if key == glfw.KeyQ &&
			mods&glfw.ModControl != 0 &&
			mods&glfw.ModShift != 0 {
			return true
		}
	}
	return false
}

func Poll() {
	glfw.PollEvents()
}
