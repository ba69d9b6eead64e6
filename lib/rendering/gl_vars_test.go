package rendering

import (
	"testing"

	"github.com/fosdem/glhello/lib/rendering/gpu/gputest"
	"github.com/fosdem/glhello/lib/rendering/mesh"
	"github.com/fosdem/glhello/lib/rendering/shaders"
	"github.com/fosdem/glhello/lib/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T, m mesh.Mesh) (*gputest.Driver, *GLVars) {
	t.Helper()
	d := gputest.New()

	shaderer, err := shaders.NewShaderer()
	require.NoError(t, err)
	program, _, err := shaders.BuildGLProgram(d, shaderer, &shaders.ShaderData{GLSLVersion: shaders.GLSLVersion(4, 1)})
	require.NoError(t, err)

	buffers, err := mesh.Upload(d, m)
	require.NoError(t, err)

	return d, NewGLVars(d, program, buffers, utils.Colour{R: 0.2, G: 0.3, B: 0.3, A: 1})
}

func TestStartSetsClearColourAndProgram(t *testing.T) {
	d, g := setup(t, mesh.DefaultQuad())

	g.Start()
	assert.Equal(t, [4]float32{0.2, 0.3, 0.3, 1}, d.ClearColour)
	assert.Equal(t, g.Program.ID, d.CurrentProgram)
}

func TestDrawFrameQuad(t *testing.T) {
	d, g := setup(t, mesh.DefaultQuad())
	g.Start()

	g.DrawFrame()

	assert.Equal(t, 1, d.Clears)
	require.Len(t, d.Draws, 1)
	draw := d.Draws[0]
	assert.True(t, draw.Indexed)
	assert.Equal(t, int32(6), draw.Count)
	assert.Equal(t, g.Program.ID, draw.Program)
	assert.Equal(t, g.Mesh.VAO, draw.VAO)
}

func TestDrawFrameTriangle(t *testing.T) {
	d, g := setup(t, mesh.DefaultTriangle())
	g.Start()

	g.DrawFrame()
	g.DrawFrame()

	assert.Equal(t, 2, d.Clears)
	require.Len(t, d.Draws, 2)
	assert.False(t, d.Draws[1].Indexed)
	assert.Equal(t, int32(3), d.Draws[1].Count)
}

func TestSetProgramReleasesOld(t *testing.T) {
	d, g := setup(t, mesh.DefaultQuad())
	g.Start()
	oldID := g.Program.ID

	shaderer, err := shaders.NewShaderer()
	require.NoError(t, err)
	program, _, err := shaders.BuildGLProgram(d, shaderer, &shaders.ShaderData{GLSLVersion: shaders.GLSLVersion(4, 1)})
	require.NoError(t, err)

	g.SetProgram(program)
	assert.True(t, d.Programs[oldID].Deleted)
	assert.Equal(t, program.ID, d.CurrentProgram)

	g.DrawFrame()
	assert.Equal(t, program.ID, d.Draws[0].Program)
}

func TestCheckErrorsAfterFrame(t *testing.T) {
	d, g := setup(t, mesh.DefaultQuad())
	g.CheckErrors = true
	d.Errors = []uint32{0x0502}

	g.DrawFrame()
	assert.Empty(t, d.Errors)
}

func TestDelete(t *testing.T) {
	d, g := setup(t, mesh.DefaultQuad())
	programID := g.Program.ID
	vbo := g.Mesh.VBO

	g.Delete()
	assert.True(t, d.Programs[programID].Deleted)
	assert.True(t, d.Buffers[vbo].Deleted)
	assert.Zero(t, d.CurrentProgram)
}
