package theatre

import (
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/fosdem/glhello/lib/config"
	"github.com/fosdem/glhello/lib/metrics"
	"github.com/fosdem/glhello/lib/rendering"
	"github.com/fosdem/glhello/lib/rendering/gpu"
	"github.com/fosdem/glhello/lib/rendering/mesh"
	"github.com/fosdem/glhello/lib/rendering/shaders"
	"github.com/fosdem/glhello/lib/utils"
)

const (
	EventShaderReload = "shader_reload"
	EventShaderError  = "shader_error"
)

// Theatre holds the GL objects of the one scene being drawn. Everything
// except CurrentSources must be called from the render thread.
type Theatre struct {
	GLVars *rendering.GLVars

	driver       gpu.Driver
	loadShaderer func() (*shaders.Shaderer, error)
	shaderData   *shaders.ShaderData

	sources atomic.Pointer[shaders.Sources]

	listener map[string][]EventListener
}

// New builds the program and uploads the mesh. A shader that fails to
// compile or link here is fatal to the caller.
func New(cfg *config.Config, d gpu.Driver) (*Theatre, error) {
	t := &Theatre{
		driver:       d,
		loadShaderer: shadererLoader(cfg.Render.Shaders),
		shaderData:   buildShaderData(cfg),
		listener:     make(map[string][]EventListener),
	}

	program, sources, err := t.buildProgram()
	if err != nil {
		return nil, err
	}

	m, err := mesh.ByName(cfg.Render.Mesh)
	if err != nil {
		program.Delete()
		return nil, err
	}
	buffers, err := mesh.Upload(d, m)
	if err != nil {
		program.Delete()
		return nil, fmt.Errorf("could not upload mesh: %w", err)
	}

	t.sources.Store(&sources)
	t.GLVars = rendering.NewGLVars(d, program, buffers, cfg.Render.ClearColourValue())
	t.GLVars.CheckErrors = cfg.Render.CheckErrors
	return t, nil
}

func shadererLoader(cfg *config.ShadersCfg) func() (*shaders.Shaderer, error) {
	if cfg == nil {
		return shaders.NewShaderer
	}
	return func() (*shaders.Shaderer, error) {
		return shaders.NewShadererFromFiles(string(cfg.Vertex), string(cfg.Fragment))
	}
}

func buildShaderData(cfg *config.Config) *shaders.ShaderData {
	v := cfg.Window.Version()
	return &shaders.ShaderData{
		GLSLVersion: shaders.GLSLVersion(v.Major, v.Minor),
		FillColour:  utils.ColourParse(cfg.Render.FillColour),
	}
}

func (t *Theatre) buildProgram() (*shaders.Program, shaders.Sources, error) {
	shaderer, err := t.loadShaderer()
	if err != nil {
		metrics.ShaderBuilds.WithLabelValues(buildResult(err)).Inc()
		return nil, shaders.Sources{}, fmt.Errorf("could not load shaders: %w", err)
	}
	program, sources, err := shaders.BuildGLProgram(t.driver, shaderer, t.shaderData)
	metrics.ShaderBuilds.WithLabelValues(buildResult(err)).Inc()
	return program, sources, err
}

func buildResult(err error) string {
	if err == nil {
		return "ok"
	}
	var buildErr *shaders.BuildError
	if errors.As(err, &buildErr) {
		if buildErr.Stage == shaders.LinkStage {
			return "link_error"
		}
		return "compile_error"
	}
	return "error"
}

// Start sets up the state that stays fixed across frames.
func (t *Theatre) Start() {
	t.GLVars.Start()
}

// DrawFrame draws the scene once.
func (t *Theatre) DrawFrame() {
	t.GLVars.DrawFrame()
}

// ReloadShaders rebuilds the program from its templates. On failure the
// program in use is kept and the error is returned.
func (t *Theatre) ReloadShaders() error {
	program, sources, err := t.buildProgram()
	if err != nil {
		slog.Error(fmt.Sprintf("shader reload failed, keeping previous program: %s", err), slog.String("module", "theatre"))
		t.invoke(EventShaderError, err)
		return err
	}
	t.GLVars.SetProgram(program)
	t.sources.Store(&sources)
	slog.Info("shaders reloaded", slog.String("module", "theatre"))
	t.invoke(EventShaderReload, sources)
	return nil
}

// CurrentSources is safe to call from any goroutine.
func (t *Theatre) CurrentSources() shaders.Sources {
	return *t.sources.Load()
}

func (t *Theatre) Delete() {
	t.GLVars.Delete()
}
