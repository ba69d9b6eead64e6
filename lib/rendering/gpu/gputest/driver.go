// Package gputest provides an in-memory gpu.Driver for tests that cannot
// create a GL context.
package gputest

import (
	"fmt"
	"strings"
	"unsafe"

	"github.com/fosdem/glhello/lib/rendering/gpu"
	"github.com/fosdem/glhello/lib/rendering/renderconsts"
)

var _ gpu.Driver = (*Driver)(nil)

// CompileMarker makes the fake compiler reject any source containing it.
const CompileMarker = "#error"

type Shader struct {
	Stage    renderconsts.ShaderStage
	Source   string
	Compiled bool
	Log      string
	Deleted  bool
}

type Program struct {
	Attached []uint32
	Linked   bool
	Log      string
	Deleted  bool
}

type Buffer struct {
	Target  renderconsts.BufferTarget
	Data    []byte
	Usage   renderconsts.BufferUsage
	Deleted bool
}

type Attrib struct {
	Index      uint32
	Size       int32
	Type       renderconsts.DataType
	Normalized bool
	Stride     int32
	Offset     uintptr
	Enabled    bool
	VAO        uint32
	Buffer     uint32
}

type DrawCall struct {
	Mode    renderconsts.DrawMode
	Count   int32
	Indexed bool
	Program uint32
	VAO     uint32
}

// Driver records every call. The zero value is not usable, use New.
type Driver struct {
	// FailLink, when set, decides whether linking the given program fails
	// and with which log.
	FailLink func(p *Program) (string, bool)

	Shaders  map[uint32]*Shader
	Programs map[uint32]*Program
	Buffers  map[uint32]*Buffer
	VAOs     map[uint32]bool
	Attribs  []Attrib
	Draws    []DrawCall
	Calls    []string

	ClearColour [4]float32
	Clears      int
	Errors      []uint32

	CurrentProgram uint32
	BoundVAO       uint32
	Bound          map[renderconsts.BufferTarget]uint32
	// ElementBinding holds the element buffer recorded in each VAO.
	ElementBinding map[uint32]uint32

	nextID uint32
}

func New() *Driver {
	return &Driver{
		Shaders:        make(map[uint32]*Shader),
		Programs:       make(map[uint32]*Program),
		Buffers:        make(map[uint32]*Buffer),
		VAOs:           make(map[uint32]bool),
		Bound:          make(map[renderconsts.BufferTarget]uint32),
		ElementBinding: make(map[uint32]uint32),
	}
}

func (d *Driver) id() uint32 {
	d.nextID++
	return d.nextID
}

func (d *Driver) record(format string, args ...any) {
	d.Calls = append(d.Calls, fmt.Sprintf(format, args...))
}

func (d *Driver) CreateShader(stage renderconsts.ShaderStage) uint32 {
	id := d.id()
	d.Shaders[id] = &Shader{Stage: stage}
	d.record("CreateShader(%s)", stage)
	return id
}

func (d *Driver) ShaderSource(shader uint32, source string) {
	d.Shaders[shader].Source = source
	d.record("ShaderSource(%d)", shader)
}

func (d *Driver) CompileShader(shader uint32) {
	s := d.Shaders[shader]
	d.record("CompileShader(%d)", shader)
	if i := strings.Index(s.Source, CompileMarker); i >= 0 {
		line := 1 + strings.Count(s.Source[:i], "\n")
		s.Log = fmt.Sprintf("0:%d(1): error: %s shader rejected by %s directive", line, s.Stage, CompileMarker)
		return
	}
	s.Compiled = true
}

func (d *Driver) ShaderCompiled(shader uint32) bool {
	return d.Shaders[shader].Compiled
}

func (d *Driver) ShaderInfoLog(shader uint32) string {
	return d.Shaders[shader].Log
}

func (d *Driver) DeleteShader(shader uint32) {
	d.Shaders[shader].Deleted = true
	d.record("DeleteShader(%d)", shader)
}

func (d *Driver) CreateProgram() uint32 {
	id := d.id()
	d.Programs[id] = &Program{}
	d.record("CreateProgram()")
	return id
}

func (d *Driver) AttachShader(program, shader uint32) {
	p := d.Programs[program]
	p.Attached = append(p.Attached, shader)
	d.record("AttachShader(%d, %d)", program, shader)
}

func (d *Driver) LinkProgram(program uint32) {
	p := d.Programs[program]
	d.record("LinkProgram(%d)", program)
	if d.FailLink != nil {
		if log, fail := d.FailLink(p); fail {
			p.Log = log
			return
		}
	}
	stages := make(map[renderconsts.ShaderStage]bool)
	for _, id := range p.Attached {
		s := d.Shaders[id]
		if s == nil || !s.Compiled || s.Deleted {
			p.Log = fmt.Sprintf("error: shader %d is not compiled", id)
			return
		}
		stages[s.Stage] = true
	}
	if !stages[renderconsts.VertexShader] || !stages[renderconsts.FragmentShader] {
		p.Log = "error: program needs both a vertex and a fragment shader"
		return
	}
	p.Linked = true
}

func (d *Driver) ProgramLinked(program uint32) bool {
	return d.Programs[program].Linked
}

func (d *Driver) ProgramInfoLog(program uint32) string {
	return d.Programs[program].Log
}

func (d *Driver) UseProgram(program uint32) {
	d.CurrentProgram = program
	d.record("UseProgram(%d)", program)
}

func (d *Driver) DeleteProgram(program uint32) {
	d.Programs[program].Deleted = true
	if d.CurrentProgram == program {
		d.CurrentProgram = 0
	}
	d.record("DeleteProgram(%d)", program)
}

func (d *Driver) GenVertexArray() uint32 {
	id := d.id()
	d.VAOs[id] = true
	d.record("GenVertexArray()")
	return id
}

func (d *Driver) BindVertexArray(vao uint32) {
	d.BoundVAO = vao
	d.record("BindVertexArray(%d)", vao)
}

func (d *Driver) DeleteVertexArray(vao uint32) {
	d.VAOs[vao] = false
	d.record("DeleteVertexArray(%d)", vao)
}

func (d *Driver) GenBuffer() uint32 {
	id := d.id()
	d.Buffers[id] = &Buffer{}
	d.record("GenBuffer()")
	return id
}

func (d *Driver) BindBuffer(target renderconsts.BufferTarget, buffer uint32) {
	d.Bound[target] = buffer
	if target == renderconsts.ElementArrayBuffer && d.BoundVAO != 0 {
		d.ElementBinding[d.BoundVAO] = buffer
	}
	d.record("BindBuffer(%#x, %d)", uint32(target), buffer)
}

func (d *Driver) BufferData(target renderconsts.BufferTarget, size int, data unsafe.Pointer, usage renderconsts.BufferUsage) {
	b := d.Buffers[d.Bound[target]]
	b.Target = target
	b.Usage = usage
	b.Data = append([]byte(nil), unsafe.Slice((*byte)(data), size)...)
	d.record("BufferData(%#x, %d)", uint32(target), size)
}

func (d *Driver) DeleteBuffer(buffer uint32) {
	d.Buffers[buffer].Deleted = true
	d.record("DeleteBuffer(%d)", buffer)
}

func (d *Driver) VertexAttribPointer(index uint32, size int32, xtype renderconsts.DataType, normalized bool, stride int32, offset uintptr) {
	d.Attribs = append(d.Attribs, Attrib{
		Index:      index,
		Size:       size,
		Type:       xtype,
		Normalized: normalized,
		Stride:     stride,
		Offset:     offset,
		VAO:        d.BoundVAO,
		Buffer:     d.Bound[renderconsts.ArrayBuffer],
	})
	d.record("VertexAttribPointer(%d)", index)
}

func (d *Driver) EnableVertexAttribArray(index uint32) {
	for i := range d.Attribs {
		if d.Attribs[i].Index == index && d.Attribs[i].VAO == d.BoundVAO {
			d.Attribs[i].Enabled = true
		}
	}
	d.record("EnableVertexAttribArray(%d)", index)
}

func (d *Driver) ClearColor(r, g, b, a float32) {
	d.ClearColour = [4]float32{r, g, b, a}
	d.record("ClearColor")
}

func (d *Driver) Clear(mask renderconsts.ClearMask) {
	d.Clears++
	d.record("Clear(%#x)", uint32(mask))
}

func (d *Driver) DrawArrays(mode renderconsts.DrawMode, first, count int32) {
	d.Draws = append(d.Draws, DrawCall{Mode: mode, Count: count, Program: d.CurrentProgram, VAO: d.BoundVAO})
	d.record("DrawArrays(%d, %d)", first, count)
}

func (d *Driver) DrawElements(mode renderconsts.DrawMode, count int32, xtype renderconsts.DataType, offset uintptr) {
	d.Draws = append(d.Draws, DrawCall{Mode: mode, Count: count, Indexed: true, Program: d.CurrentProgram, VAO: d.BoundVAO})
	d.record("DrawElements(%d)", count)
}

// GetError pops the oldest queued error, like glGetError.
func (d *Driver) GetError() uint32 {
	if len(d.Errors) == 0 {
		return renderconsts.NoError
	}
	e := d.Errors[0]
	d.Errors = d.Errors[1:]
	return e
}
