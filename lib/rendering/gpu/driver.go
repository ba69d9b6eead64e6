// Package gpu describes the subset of the OpenGL core profile that the
// shader, mesh and frame code need. The real implementation lives in
// glgpu; gputest provides a recording fake.
package gpu

import (
	"unsafe"

	"github.com/fosdem/glhello/lib/rendering/renderconsts"
)

// Driver is a thin, GL-shaped interface. All calls must be made from the
// thread that owns the current GL context.
type Driver interface {
	CreateShader(stage renderconsts.ShaderStage) uint32
	ShaderSource(shader uint32, source string)
	CompileShader(shader uint32)
	// ShaderCompiled reports the shader's COMPILE_STATUS.
	ShaderCompiled(shader uint32) bool
	// ShaderInfoLog returns the whole info log, however long it is.
	ShaderInfoLog(shader uint32) string
	DeleteShader(shader uint32)

	CreateProgram() uint32
	AttachShader(program, shader uint32)
	LinkProgram(program uint32)
	// ProgramLinked reports the program's LINK_STATUS.
	ProgramLinked(program uint32) bool
	ProgramInfoLog(program uint32) string
	UseProgram(program uint32)
	DeleteProgram(program uint32)

	GenVertexArray() uint32
	BindVertexArray(vao uint32)
	DeleteVertexArray(vao uint32)

	GenBuffer() uint32
	BindBuffer(target renderconsts.BufferTarget, buffer uint32)
	BufferData(target renderconsts.BufferTarget, size int, data unsafe.Pointer, usage renderconsts.BufferUsage)
	DeleteBuffer(buffer uint32)

	VertexAttribPointer(index uint32, size int32, xtype renderconsts.DataType, normalized bool, stride int32, offset uintptr)
	EnableVertexAttribArray(index uint32)

	ClearColor(r, g, b, a float32)
	Clear(mask renderconsts.ClearMask)
	DrawArrays(mode renderconsts.DrawMode, first, count int32)
	DrawElements(mode renderconsts.DrawMode, count int32, xtype renderconsts.DataType, offset uintptr)

	GetError() uint32
}
