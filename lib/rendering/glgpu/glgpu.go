// Package glgpu implements gpu.Driver on top of go-gl's 4.1 core profile
// bindings.
package glgpu

import (
	"fmt"
	"log/slog"
	"strings"
	"unsafe"

	"github.com/fosdem/glhello/lib/rendering/gpu"
	"github.com/fosdem/glhello/lib/rendering/renderconsts"
	"github.com/go-gl/gl/v4.1-core/gl"
)

var _ gpu.Driver = (*Driver)(nil)

type Driver struct {
	Vendor   string
	Renderer string
	Version  string
}

// Init resolves the GL entry points through the windowing layer's
// proc-address lookup. The context must already be current on this thread.
func Init(getProcAddr func(name string) unsafe.Pointer) (*Driver, error) {
	err := gl.InitWithProcAddrFunc(getProcAddr)
	if err != nil {
		return nil, fmt.Errorf("could not initialise OpenGL context: %w", err)
	}

	d := &Driver{
		Vendor:   gl.GoStr(gl.GetString(gl.VENDOR)),
		Renderer: gl.GoStr(gl.GetString(gl.RENDERER)),
		Version:  gl.GoStr(gl.GetString(gl.VERSION)),
	}
	slog.Info(fmt.Sprintf("OpenGL version %s / %s / %s", d.Vendor, d.Renderer, d.Version), slog.String("module", "gl"))

	return d, nil
}

func (d *Driver) CreateShader(stage renderconsts.ShaderStage) uint32 {
	return gl.CreateShader(uint32(stage))
}

func (d *Driver) ShaderSource(shader uint32, source string) {
	csources, free := gl.Strs(source)
	size := int32(len(source))
	gl.ShaderSource(shader, 1, csources, &size)
	free()
}

func (d *Driver) CompileShader(shader uint32) {
	gl.CompileShader(shader)
}

func (d *Driver) ShaderCompiled(shader uint32) bool {
	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	return status != gl.FALSE
}

func (d *Driver) ShaderInfoLog(shader uint32) string {
	var logLength int32
	gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
	if logLength == 0 {
		return ""
	}

	clog := strings.Repeat("\x00", int(logLength+1))
	gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(clog))
	return strings.TrimRight(clog, "\x00")
}

func (d *Driver) DeleteShader(shader uint32) {
	gl.DeleteShader(shader)
}

func (d *Driver) CreateProgram() uint32 {
	return gl.CreateProgram()
}

func (d *Driver) AttachShader(program, shader uint32) {
	gl.AttachShader(program, shader)
}

func (d *Driver) LinkProgram(program uint32) {
	gl.LinkProgram(program)
}

func (d *Driver) ProgramLinked(program uint32) bool {
	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	return status != gl.FALSE
}

func (d *Driver) ProgramInfoLog(program uint32) string {
	var logLength int32
	gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
	if logLength == 0 {
		return ""
	}

	logmsg := strings.Repeat("\x00", int(logLength+1))
	gl.GetProgramInfoLog(program, logLength, nil, gl.Str(logmsg))
	return strings.TrimRight(logmsg, "\x00")
}

func (d *Driver) UseProgram(program uint32) {
	gl.UseProgram(program)
}

func (d *Driver) DeleteProgram(program uint32) {
	gl.DeleteProgram(program)
}

func (d *Driver) GenVertexArray() uint32 {
	var vao uint32
	gl.GenVertexArrays(1, &vao)
	return vao
}

func (d *Driver) BindVertexArray(vao uint32) {
	gl.BindVertexArray(vao)
}

func (d *Driver) DeleteVertexArray(vao uint32) {
	gl.DeleteVertexArrays(1, &vao)
}

func (d *Driver) GenBuffer() uint32 {
	var buffer uint32
	gl.GenBuffers(1, &buffer)
	return buffer
}

func (d *Driver) BindBuffer(target renderconsts.BufferTarget, buffer uint32) {
	gl.BindBuffer(uint32(target), buffer)
}

func (d *Driver) BufferData(target renderconsts.BufferTarget, size int, data unsafe.Pointer, usage renderconsts.BufferUsage) {
	gl.BufferData(uint32(target), size, data, uint32(usage))
}

func (d *Driver) DeleteBuffer(buffer uint32) {
	gl.DeleteBuffers(1, &buffer)
}

func (d *Driver) VertexAttribPointer(index uint32, size int32, xtype renderconsts.DataType, normalized bool, stride int32, offset uintptr) {
	gl.VertexAttribPointerWithOffset(index, size, uint32(xtype), normalized, stride, offset)
}

func (d *Driver) EnableVertexAttribArray(index uint32) {
	gl.EnableVertexAttribArray(index)
}

func (d *Driver) ClearColor(r, g, b, a float32) {
	gl.ClearColor(r, g, b, a)
}

func (d *Driver) Clear(mask renderconsts.ClearMask) {
	gl.Clear(uint32(mask))
}

func (d *Driver) DrawArrays(mode renderconsts.DrawMode, first, count int32) {
	gl.DrawArrays(uint32(mode), first, count)
}

func (d *Driver) DrawElements(mode renderconsts.DrawMode, count int32, xtype renderconsts.DataType, offset uintptr) {
	gl.DrawElements(uint32(mode), count, uint32(xtype), gl.PtrOffset(int(offset)))
}

func (d *Driver) GetError() uint32 {
	return gl.GetError()
}
