package shaders

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fosdem/glhello/lib/rendering/gpu/gputest"
	"github.com/fosdem/glhello/lib/rendering/renderconsts"
	"github.com/fosdem/glhello/lib/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const vertexSource = `#version 410 core
layout (location = 0) in vec3 position;
void main() { gl_Position = vec4(position, 1.0); }
`

const fragmentSource = `#version 410 core
out vec4 fragColour;
void main() { fragColour = vec4(1.0); }
`

func TestCompileFailureReportsLog(t *testing.T) {
	for _, stage := range []renderconsts.ShaderStage{renderconsts.VertexShader, renderconsts.FragmentShader} {
		t.Run(stage.String(), func(t *testing.T) {
			d := gputest.New()

			id, err := CompileShader(d, stage, "#version 410 core\n#error nope\n")
			require.Error(t, err)
			assert.Zero(t, id)

			var buildErr *BuildError
			require.True(t, errors.As(err, &buildErr))
			assert.Equal(t, stage.String(), buildErr.Stage)
			assert.NotEmpty(t, buildErr.Log)
			assert.Contains(t, buildErr.Log, "0:2")

			for _, s := range d.Shaders {
				assert.False(t, s.Compiled)
				assert.True(t, s.Deleted, "failed shader should be released")
			}
		})
	}
}

func TestCompileSuccess(t *testing.T) {
	d := gputest.New()

	id, err := CompileShader(d, renderconsts.VertexShader, vertexSource)
	require.NoError(t, err)
	require.Contains(t, d.Shaders, id)
	assert.True(t, d.Shaders[id].Compiled)
	assert.False(t, d.Shaders[id].Deleted)
	assert.Equal(t, vertexSource, d.Shaders[id].Source)
}

func TestBuildProgramLinksAndReleasesShaders(t *testing.T) {
	d := gputest.New()

	program, err := BuildProgram(d, Sources{Vertex: vertexSource, Fragment: fragmentSource})
	require.NoError(t, err)
	require.NotNil(t, program)

	p := d.Programs[program.ID]
	require.NotNil(t, p)
	assert.True(t, p.Linked)
	assert.Len(t, p.Attached, 2)

	for id, s := range d.Shaders {
		assert.True(t, s.Deleted, "shader %d should be deleted after linking", id)
	}
}

func TestBuildProgramStopsAtFirstCompileFailure(t *testing.T) {
	d := gputest.New()

	program, err := BuildProgram(d, Sources{Vertex: vertexSource, Fragment: "#error broken"})
	require.Error(t, err)
	assert.Nil(t, program)

	var buildErr *BuildError
	require.ErrorAs(t, err, &buildErr)
	assert.Equal(t, "fragment", buildErr.Stage)
	assert.Empty(t, d.Programs, "no program should be created after a compile failure")
	for _, s := range d.Shaders {
		assert.True(t, s.Deleted)
	}
}

func TestLinkFailureReportsLog(t *testing.T) {
	d := gputest.New()
	d.FailLink = func(p *gputest.Program) (string, bool) {
		return "error: fragColour is not written", true
	}

	program, err := BuildProgram(d, Sources{Vertex: vertexSource, Fragment: fragmentSource})
	require.Error(t, err)
	assert.Nil(t, program)

	var buildErr *BuildError
	require.ErrorAs(t, err, &buildErr)
	assert.Equal(t, LinkStage, buildErr.Stage)
	assert.Equal(t, "error: fragColour is not written", buildErr.Log)
	assert.Contains(t, err.Error(), "failed to link program")

	for _, p := range d.Programs {
		assert.True(t, p.Deleted)
	}
	for _, s := range d.Shaders {
		assert.True(t, s.Deleted)
	}
}

func TestLongLogIsNotTruncated(t *testing.T) {
	d := gputest.New()
	long := strings.Repeat("x", 2000)
	d.FailLink = func(p *gputest.Program) (string, bool) {
		return long, true
	}

	_, err := BuildProgram(d, Sources{Vertex: vertexSource, Fragment: fragmentSource})

	var buildErr *BuildError
	require.ErrorAs(t, err, &buildErr)
	assert.Len(t, buildErr.Log, 2000)
}

func TestEmptyLogIsReplaced(t *testing.T) {
	d := gputest.New()
	d.FailLink = func(p *gputest.Program) (string, bool) {
		return "", true
	}

	_, err := BuildProgram(d, Sources{Vertex: vertexSource, Fragment: fragmentSource})

	var buildErr *BuildError
	require.ErrorAs(t, err, &buildErr)
	assert.NotEmpty(t, buildErr.Log)
}

func TestProgramUseAndDelete(t *testing.T) {
	d := gputest.New()

	program, err := BuildProgram(d, Sources{Vertex: vertexSource, Fragment: fragmentSource})
	require.NoError(t, err)
	id := program.ID

	program.Use()
	program.Use()
	assert.Equal(t, id, d.CurrentProgram)

	program.Delete()
	assert.True(t, d.Programs[id].Deleted)
	assert.Zero(t, program.ID)

	// a second delete must not reach the driver
	calls := len(d.Calls)
	program.Delete()
	assert.Len(t, d.Calls, calls)
}

func TestEmbeddedTemplatesBuild(t *testing.T) {
	shaderer, err := NewShaderer()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{DefaultVertex, DefaultFragment}, shaderer.TemplateNames())

	d := gputest.New()
	data := &ShaderData{
		GLSLVersion: GLSLVersion(3, 3),
		FillColour:  utils.ColourParse("#ff8033ff"),
	}
	program, sources, err := BuildGLProgram(d, shaderer, data)
	require.NoError(t, err)
	require.NotNil(t, program)

	assert.True(t, strings.HasPrefix(sources.Vertex, "#version 330 core\n"))
	assert.True(t, strings.HasPrefix(sources.Fragment, "#version 330 core\n"))
	assert.Contains(t, sources.Fragment, "vec4(1.0000, 0.5020, 0.2000, 1.0000)")
}

func TestShadererFromFiles(t *testing.T) {
	dir := t.TempDir()
	vert := filepath.Join(dir, "shader.vert")
	frag := filepath.Join(dir, "shader.frag")
	require.NoError(t, os.WriteFile(vert, []byte("#version {{ .GLSLVersion }}\nvoid main() {}\n"), 0o644))
	require.NoError(t, os.WriteFile(frag, []byte("#version {{ .GLSLVersion }}\nvoid main() {}\n"), 0o644))

	shaderer, err := NewShadererFromFiles(vert, frag)
	require.NoError(t, err)

	sources, err := shaderer.Sources(&ShaderData{GLSLVersion: GLSLVersion(4, 1)})
	require.NoError(t, err)
	assert.Equal(t, "#version 410 core\nvoid main() {}\n", sources.Vertex)
	assert.Equal(t, "#version 410 core\nvoid main() {}\n", sources.Fragment)
}

func TestShadererFromMissingFile(t *testing.T) {
	dir := t.TempDir()
	_, err := NewShadererFromFiles(filepath.Join(dir, "shader.vert"), filepath.Join(dir, "shader.frag"))
	assert.Error(t, err)
}

func TestShadererRejectsSameName(t *testing.T) {
	_, err := NewShadererFromFiles("a/shader.glsl", "b/shader.glsl")
	assert.Error(t, err)
}

func TestGLSLVersion(t *testing.T) {
	assert.Equal(t, "330 core", GLSLVersion(3, 3))
	assert.Equal(t, "410 core", GLSLVersion(4, 1))
	assert.Equal(t, "150", GLSLVersion(3, 2))
}
