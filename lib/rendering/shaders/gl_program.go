package shaders

import (
	"fmt"

	"github.com/fosdem/glhello/lib/rendering/gpu"
	"github.com/fosdem/glhello/lib/rendering/renderconsts"
)

// LinkStage is the BuildError stage reported for link failures.
const LinkStage = "link"

// Sources is the rendered text of both shader stages.
type Sources struct {
	Vertex   string
	Fragment string
}

// BuildError carries the driver's info log for a failed compile or link.
type BuildError struct {
	Stage string
	Log   string
}

func (e *BuildError) Error() string {
	if e.Stage == LinkStage {
		return fmt.Sprintf("failed to link program: %s", e.Log)
	}
	return fmt.Sprintf("failed to compile %s shader: %s", e.Stage, e.Log)
}

// Program is a linked shader program. The individual stage objects are
// gone once a Program exists.
type Program struct {
	ID uint32

	driver gpu.Driver
}

func (p *Program) Use() {
	p.driver.UseProgram(p.ID)
}

func (p *Program) Delete() {
	if p.ID == 0 {
		return
	}
	p.driver.DeleteProgram(p.ID)
	p.ID = 0
}

// BuildGLProgram renders the shaderer's templates and builds them.
func BuildGLProgram(d gpu.Driver, shaderer *Shaderer, shaderData *ShaderData) (*Program, Sources, error) {
	sources, err := shaderer.Sources(shaderData)
	if err != nil {
		return nil, Sources{}, fmt.Errorf("could not get shaders: %w", err)
	}

	program, err := BuildProgram(d, sources)
	if err != nil {
		return nil, sources, fmt.Errorf("could not init shader: %w", err)
	}

	return program, sources, nil
}

// BuildProgram compiles and links both stages, stopping at the first
// failure.
func BuildProgram(d gpu.Driver, sources Sources) (*Program, error) {
	vertexShader, err := CompileShader(d, renderconsts.VertexShader, sources.Vertex)
	if err != nil {
		return nil, err
	}

	fragmentShader, err := CompileShader(d, renderconsts.FragmentShader, sources.Fragment)
	if err != nil {
		d.DeleteShader(vertexShader)
		return nil, err
	}

	return LinkProgram(d, vertexShader, fragmentShader)
}

// LinkProgram links compiled shaders into a program. The shaders are
// deleted whatever the outcome.
func LinkProgram(d gpu.Driver, shaders ...uint32) (*Program, error) {
	defer func() {
		for _, shader := range shaders {
			d.DeleteShader(shader)
		}
	}()

	program := d.CreateProgram()
	for _, shader := range shaders {
		d.AttachShader(program, shader)
	}
	d.LinkProgram(program)

	if !d.ProgramLinked(program) {
		logmsg := d.ProgramInfoLog(program)
		d.DeleteProgram(program)
		return nil, &BuildError{Stage: LinkStage, Log: nonEmpty(logmsg)}
	}

	return &Program{ID: program, driver: d}, nil
}

// CompileShader returns the compiled shader's handle or a BuildError with
// the compiler log. A failed shader is deleted before returning.
func CompileShader(d gpu.Driver, stage renderconsts.ShaderStage, source string) (uint32, error) {
	shader := d.CreateShader(stage)

	d.ShaderSource(shader, source)
	d.CompileShader(shader)

	if !d.ShaderCompiled(shader) {
		clog := d.ShaderInfoLog(shader)
		d.DeleteShader(shader)
		return 0, &BuildError{Stage: stage.String(), Log: nonEmpty(clog)}
	}

	return shader, nil
}

// some drivers report failure with an empty log
func nonEmpty(log string) string {
	if log == "" {
		return "(driver returned no info log)"
	}
	return log
}
