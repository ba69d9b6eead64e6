package gpu

import (
	"fmt"
	"log/slog"

	"github.com/fosdem/glhello/lib/rendering/renderconsts"
)

// errorNames covers the codes glGetError can return in a core profile.
var errorNames = map[uint32]string{
	0x0500: "GL_INVALID_ENUM",
	0x0501: "GL_INVALID_VALUE",
	0x0502: "GL_INVALID_OPERATION",
	0x0505: "GL_OUT_OF_MEMORY",
	0x0506: "GL_INVALID_FRAMEBUFFER_OPERATION",
}

func ErrorName(code uint32) string {
	if name, ok := errorNames[code]; ok {
		return name
	}
	return fmt.Sprintf("GL error %#x", code)
}

// CheckError drains the driver's error flags and logs each one. It returns
// the number of errors that were pending.
func CheckError(d Driver, prefix string) int {
	n := 0
	for code := d.GetError(); code != renderconsts.NoError; code = d.GetError() {
		slog.Warn(fmt.Sprintf("%s: %s", prefix, ErrorName(code)), slog.String("module", "gl"))
		n++
		// a lost context keeps reporting errors forever
		if n >= 16 {
			break
		}
	}
	return n
}
