package shaders

import (
	"bytes"
	"embed"
	"fmt"
	"path/filepath"
	"text/template"

	"github.com/fosdem/glhello/lib/utils"
)

//go:embed *.frag *.vert
var templateDir embed.FS

const (
	DefaultVertex   = "triangle.vert"
	DefaultFragment = "triangle.frag"
)

type Shaderer struct {
	templates *template.Template

	VertexName   string
	FragmentName string
}

// NewShaderer uses the shaders built into the binary.
func NewShaderer() (*Shaderer, error) {
	s := &Shaderer{
		VertexName:   DefaultVertex,
		FragmentName: DefaultFragment,
	}

	var err error

	s.templates, err = template.ParseFS(templateDir, "*.frag", "*.vert")

	return s, err
}

// NewShadererFromFiles reads both stages from disk. Templates are named
// after the files' base names.
func NewShadererFromFiles(vertexPath, fragmentPath string) (*Shaderer, error) {
	s := &Shaderer{
		VertexName:   filepath.Base(vertexPath),
		FragmentName: filepath.Base(fragmentPath),
	}
	if s.VertexName == s.FragmentName {
		return nil, fmt.Errorf("vertex and fragment shader files must have different names (both are %s)", s.VertexName)
	}

	var err error
	s.templates, err = template.ParseFiles(vertexPath, fragmentPath)
	if err != nil {
		return nil, fmt.Errorf("could not read shader sources: %w", err)
	}
	return s, nil
}

// ShaderData contains stuff that gets passed to the shader
type ShaderData struct {
	// GLSLVersion is the argument of the #version directive, e.g. "410 core".
	GLSLVersion string
	FillColour  utils.Colour
}

// GLSLVersion maps a GL context version to the matching GLSL version.
func GLSLVersion(major, minor int) string {
	if major == 3 && minor < 3 {
		return fmt.Sprintf("1%d0", minor+3)
	}
	return fmt.Sprintf("%d%d0 core", major, minor)
}

func (s *Shaderer) GetShaderSource(name string, data *ShaderData) (string, error) {
	var b bytes.Buffer
	err := s.templates.ExecuteTemplate(&b, name, data)
	if err != nil {
		return "", fmt.Errorf("error while rendering template: %s", err)
	}

	return b.String(), nil
}

// Sources renders both stages.
func (s *Shaderer) Sources(data *ShaderData) (Sources, error) {
	vertexShader, err := s.GetShaderSource(s.VertexName, data)
	if err != nil {
		return Sources{}, fmt.Errorf("could not get vertex shader: %w", err)
	}

	fragmentShader, err := s.GetShaderSource(s.FragmentName, data)
	if err != nil {
		return Sources{}, fmt.Errorf("could not get fragment shader: %w", err)
	}

	return Sources{Vertex: vertexShader, Fragment: fragmentShader}, nil
}

func (s *Shaderer) TemplateNames() []string {
	var names []string
	for _, t := range s.templates.Templates() {
		names = append(names, t.Name())
	}
	return names
}
