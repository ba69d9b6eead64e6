package rendering

import (
	"github.com/fosdem/glhello/lib/rendering/gpu"
	"github.com/fosdem/glhello/lib/rendering/mesh"
	"github.com/fosdem/glhello/lib/rendering/renderconsts"
	"github.com/fosdem/glhello/lib/rendering/shaders"
	"github.com/fosdem/glhello/lib/utils"
)

// GLVars owns everything a frame needs: the program, the uploaded mesh and
// the clear colour.
type GLVars struct {
	Program *shaders.Program
	Mesh    *mesh.Buffers

	BGColour utils.Colour

	// CheckErrors logs pending GL errors after every frame.
	CheckErrors bool

	driver gpu.Driver
}

func NewGLVars(d gpu.Driver, program *shaders.Program, buffers *mesh.Buffers, bgColour utils.Colour) *GLVars {
	g := &GLVars{}

	g.driver = d
	g.Program = program
	g.Mesh = buffers
	g.BGColour = bgColour

	return g
}

func (g *GLVars) Start() {
	bg := g.BGColour.Vec4()
	g.driver.ClearColor(bg[0], bg[1], bg[2], bg[3])
	g.Program.Use()
}

func (g *GLVars) StartFrame() {
	g.driver.Clear(renderconsts.ColorBufferBit)
}

// DrawFrame clears, binds and issues exactly one draw call.
func (g *GLVars) DrawFrame() {
	g.StartFrame()

	g.Program.Use()
	g.Mesh.Bind(g.driver)
	g.Mesh.Draw(g.driver)

	if g.CheckErrors {
		gpu.CheckError(g.driver, "frame")
	}
}

// SetProgram swaps in a freshly built program and releases the old one.
func (g *GLVars) SetProgram(program *shaders.Program) {
	old := g.Program
	g.Program = program
	g.Program.Use()
	if old != nil && old != program {
		old.Delete()
	}
}

// Delete releases the program and the mesh buffers.
func (g *GLVars) Delete() {
	g.driver.BindVertexArray(0)
	g.driver.UseProgram(0)
	if g.Mesh != nil {
		g.Mesh.Delete(g.driver)
	}
	if g.Program != nil {
		g.Program.Delete()
	}
}
