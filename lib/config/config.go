package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/fosdem/glhello/lib/rendering/mesh"
	"github.com/fosdem/glhello/lib/utils"
	"github.com/fosdem/glhello/lib/window"
	yaml "github.com/goccy/go-yaml"
	toml "github.com/pelletier/go-toml/v2"
)

const (
	BackendGLFW = "glfw"
	BackendSDL  = "sdl"
)

// DefaultClearColour is (0.2, 0.3, 0.3, 1), kept exact rather than going
// through an 8-bit hex string.
var DefaultClearColour = utils.Colour{R: 0.2, G: 0.3, B: 0.3, A: 1.0}

type Config struct {
	Window   WindowCfg `yaml:"window" toml:"window"`
	Render   RenderCfg `yaml:"render" toml:"render"`
	Api      *ApiCfg   `yaml:"api" toml:"api"`
	LogLevel string    `yaml:"log_level" toml:"log_level"`
}

type WindowCfg struct {
	Backend   string `yaml:"backend" toml:"backend"`
	Title     string `yaml:"title" toml:"title"`
	Width     int    `yaml:"width" toml:"width"`
	Height    int    `yaml:"height" toml:"height"`
	GLVersion string `yaml:"gl_version" toml:"gl_version"`
	VSync     *bool  `yaml:"vsync" toml:"vsync"`
}

type RenderCfg struct {
	Mesh        string      `yaml:"mesh" toml:"mesh"`
	ClearColour string      `yaml:"clear_colour" toml:"clear_colour"`
	FillColour  string      `yaml:"fill_colour" toml:"fill_colour"`
	CheckErrors bool        `yaml:"check_errors" toml:"check_errors"`
	Shaders     *ShadersCfg `yaml:"shaders" toml:"shaders"`
}

// ShadersCfg points at on-disk shader templates. Without it the shaders
// built into the binary are used.
type ShadersCfg struct {
	Vertex   CfgPath `yaml:"vertex" toml:"vertex"`
	Fragment CfgPath `yaml:"fragment" toml:"fragment"`
	Watch    bool    `yaml:"watch" toml:"watch"`
}

type ApiCfg struct {
	Bind           string `yaml:"bind" toml:"bind"`
	EnableProfiler bool   `yaml:"enable_profiler" toml:"enable_profiler"`
}

// Default is what runs when no config file is given.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Window.Backend == "" {
		c.Window.Backend = BackendGLFW
	}
	if c.Window.Title == "" {
		c.Window.Title = "demo"
	}
	if c.Window.Width == 0 {
		c.Window.Width = 800
	}
	if c.Window.Height == 0 {
		c.Window.Height = 600
	}
	if c.Window.GLVersion == "" {
		c.Window.GLVersion = "4.1"
	}
	if c.Window.VSync == nil {
		vsync := true
		c.Window.VSync = &vsync
	}
	if c.Render.Mesh == "" {
		c.Render.Mesh = mesh.KindQuad
	}
	if c.Render.FillColour == "" {
		c.Render.FillColour = "#ff8033ff"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

func Parse(filename string) (*Config, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("could not open %s: %s", filename, err)
	}
	defer func(f *os.File) {
		err := f.Close()
		if err != nil {
			slog.Warn(fmt.Sprintf("could not close %s: %s", filename, err), slog.String("module", "config"))
		}
	}(f)

	absFilename, err := filepath.Abs(filename)
	if err != nil {
		return nil, fmt.Errorf("somehow, %s is malformed: %w", filename, err)
	}
	UnmarshalBase = filepath.Dir(absFilename)

	cfg := &Config{}
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".toml":
		err = toml.NewDecoder(f).Decode(cfg)
	default:
		err = yaml.NewDecoder(f).Decode(cfg)
		if errors.Is(err, io.EOF) {
			err = nil
		}
	}
	if err != nil {
		return nil, fmt.Errorf("could not decode %s: %w", filename, err)
	}

	cfg.applyDefaults()
	err = cfg.Validate()
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	err := c.Window.Validate()
	if err != nil {
		return fmt.Errorf("window config is invalid: %w", err)
	}
	err = c.Render.Validate()
	if err != nil {
		return fmt.Errorf("render config is invalid: %w", err)
	}
	if c.Api != nil {
		err = c.Api.Validate()
		if err != nil {
			return fmt.Errorf("api config is invalid: %w", err)
		}
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return fmt.Errorf("%s is not a valid log level", c.LogLevel)
	}
	return nil
}

func (w *WindowCfg) Validate() error {
	switch w.Backend {
	case BackendGLFW, BackendSDL:
	default:
		return fmt.Errorf("%w: %s", window.ErrUnknownBackend, w.Backend)
	}
	if w.Width <= 0 || w.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", w.Width, w.Height)
	}
	v, err := window.ParseGLVersion(w.GLVersion)
	if err != nil {
		return err
	}
	if !v.Supported() {
		return fmt.Errorf("%w: %s", window.ErrUnsupportedVersion, v)
	}
	return nil
}

func (r *RenderCfg) Validate() error {
	if _, err := mesh.ByName(r.Mesh); err != nil {
		return err
	}
	if r.ClearColour != "" && !utils.ColourValidate(r.ClearColour) {
		return fmt.Errorf("%s is not a valid RGBA hex colour", r.ClearColour)
	}
	if !utils.ColourValidate(r.FillColour) {
		return fmt.Errorf("%s is not a valid RGBA hex colour", r.FillColour)
	}
	if r.Shaders != nil {
		return r.Shaders.Validate()
	}
	return nil
}

func (s *ShadersCfg) Validate() error {
	if s.Vertex == "" || s.Fragment == "" {
		return fmt.Errorf("both vertex and fragment shader paths must be specified")
	}
	if filepath.Base(string(s.Vertex)) == filepath.Base(string(s.Fragment)) {
		return fmt.Errorf("vertex and fragment shader files need different names")
	}
	return nil
}

func (a *ApiCfg) Validate() error {
	if a.Bind == "" {
		return fmt.Errorf("bind address must be specified")
	}
	return nil
}

func (w *WindowCfg) Version() window.GLVersion {
	v, _ := window.ParseGLVersion(w.GLVersion)
	return v
}

func (w *WindowCfg) Options() window.Options {
	return window.Options{
		Title:   w.Title,
		Width:   w.Width,
		Height:  w.Height,
		Version: w.Version(),
		VSync:   w.VSync == nil || *w.VSync,
	}
}

func (r *RenderCfg) ClearColourValue() utils.Colour {
	if r.ClearColour == "" {
		return DefaultClearColour
	}
	return utils.ColourParse(r.ClearColour)
}

func (c *Config) Level() slog.Level {
	var level slog.Level
	_ = level.UnmarshalText([]byte(c.LogLevel))
	return level
}

func (c *Config) String() string {
	var b strings.Builder
	b.WriteString("Window:\n")
	b.WriteString(fmt.Sprintf("  %s %dx%d \"%s\" (OpenGL %s core)\n",
		c.Window.Backend, c.Window.Width, c.Window.Height, c.Window.Title, c.Window.GLVersion))

	b.WriteString("\nRender:\n")
	b.WriteString(fmt.Sprintf("  mesh %s, clear %s, fill %s\n", c.Render.Mesh, c.Render.ClearColourValue(), c.Render.FillColour))
	if c.Render.Shaders != nil {
		b.WriteString(fmt.Sprintf("  shaders %s, %s (watch: %t)\n", c.Render.Shaders.Vertex, c.Render.Shaders.Fragment, c.Render.Shaders.Watch))
	} else {
		b.WriteString("  built-in shaders\n")
	}

	if c.Api != nil {
		b.WriteString("\nApi:\n")
		b.WriteString(fmt.Sprintf("  %s\n", c.Api.Bind))
	}

	return b.String()
}
