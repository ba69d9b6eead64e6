package utils

import (
	"fmt"
	"regexp"

	"github.com/go-gl/mathgl/mgl32"
)

var colourPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{8}$`)

// Colour is a linear RGBA colour with components in [0, 1].
type Colour struct {
	R, G, B, A float32
}

func ColourValidate(c string) bool {
	return colourPattern.MatchString(c)
}

// ColourParse reads a #RRGGBBAA string. Invalid input yields transparent
// black; call ColourValidate first when the input is untrusted.
func ColourParse(s string) (c Colour) {
	var r, g, b, a uint8
	_, err := fmt.Sscanf(s, "#%02x%02x%02x%02x", &r, &g, &b, &a)
	if err != nil {
		return Colour{}
	}
	return Colour{
		R: float32(r) / 255,
		G: float32(g) / 255,
		B: float32(b) / 255,
		A: float32(a) / 255,
	}
}

func (c Colour) Vec4() mgl32.Vec4 {
	return mgl32.Vec4{c.R, c.G, c.B, c.A}
}

// GLSL formats the colour as a vec4 literal for use in shader templates.
func (c Colour) GLSL() string {
	return fmt.Sprintf("vec4(%.4f, %.4f, %.4f, %.4f)", c.R, c.G, c.B, c.A)
}

func (c Colour) String() string {
	return fmt.Sprintf("#%02x%02x%02x%02x", to8(c.R), to8(c.G), to8(c.B), to8(c.A))
}

func to8(v float32) uint8 {
	return uint8(mgl32.Clamp(v, 0, 1)*255 + 0.5)
}
