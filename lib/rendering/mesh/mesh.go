// Package mesh uploads the single static mesh the demo draws.
package mesh

import (
	"fmt"
	"unsafe"

	"github.com/fosdem/glhello/lib/rendering/gpu"
	"github.com/fosdem/glhello/lib/rendering/renderconsts"
	"github.com/go-gl/mathgl/mgl32"
)

const f32 = 4

// Vertex is one position. It is exactly three packed float32s.
type Vertex = mgl32.Vec3

const (
	KindTriangle = "triangle"
	KindQuad     = "quad"
)

// AttribLayout describes one vertex attribute as glVertexAttribPointer
// expects it.
type AttribLayout struct {
	Index      uint32
	Size       int32
	Type       renderconsts.DataType
	Normalized bool
	Stride     int32
	Offset     uintptr
}

// PositionLayout is the only attribute: tightly packed vec3 positions.
var PositionLayout = AttribLayout{
	Index:      0,
	Size:       3,
	Type:       renderconsts.Float,
	Normalized: false,
	Stride:     3 * f32,
	Offset:     0,
}

type Mesh interface {
	Positions() []Vertex
	// Indices returns nil for meshes drawn without an element buffer.
	Indices() []uint32
}

type Triangle struct {
	Vertices [3]Vertex
}

func (t *Triangle) Positions() []Vertex { return t.Vertices[:] }
func (t *Triangle) Indices() []uint32   { return nil }

type Quad struct {
	Vertices [4]Vertex
	Elements [6]uint32
}

func (q *Quad) Positions() []Vertex { return q.Vertices[:] }
func (q *Quad) Indices() []uint32   { return q.Elements[:] }

func DefaultTriangle() *Triangle {
	return &Triangle{
		Vertices: [3]Vertex{
			{-0.5, -0.5, 0.0},
			{0.5, -0.5, 0.0},
			{0.0, 0.5, 0.0},
		},
	}
}

// DefaultQuad is the unit quad as two triangles sharing the 1-3 diagonal.
func DefaultQuad() *Quad {
	return &Quad{
		Vertices: [4]Vertex{
			{0.5, 0.5, 0.0},   // top right
			{0.5, -0.5, 0.0},  // bottom right
			{-0.5, -0.5, 0.0}, // bottom left
			{-0.5, 0.5, 0.0},  // top left
		},
		Elements: [6]uint32{
			0, 1, 3,
			1, 2, 3,
		},
	}
}

func ByName(kind string) (Mesh, error) {
	switch kind {
	case KindTriangle:
		return DefaultTriangle(), nil
	case KindQuad:
		return DefaultQuad(), nil
	default:
		return nil, fmt.Errorf("unknown mesh %q", kind)
	}
}

// Validate checks that the mesh describes whole triangles and that every
// index refers to an existing vertex.
func Validate(m Mesh) error {
	positions := m.Positions()
	indices := m.Indices()

	if indices == nil {
		if len(positions) == 0 || len(positions)%3 != 0 {
			return fmt.Errorf("unindexed mesh needs a multiple of 3 vertices, got %d", len(positions))
		}
		return nil
	}

	if len(indices) == 0 || len(indices)%3 != 0 {
		return fmt.Errorf("indexed mesh needs a multiple of 3 indices, got %d", len(indices))
	}
	for i, idx := range indices {
		if int(idx) >= len(positions) {
			return fmt.Errorf("index %d refers to vertex %d, mesh has %d vertices", i, idx, len(positions))
		}
	}
	return nil
}

// TrianglesOf resolves the mesh into the triangles a TRIANGLES draw call
// produces.
func TrianglesOf(m Mesh) [][3]Vertex {
	positions := m.Positions()
	indices := m.Indices()

	var tris [][3]Vertex
	if indices == nil {
		for i := 0; i+2 < len(positions); i += 3 {
			tris = append(tris, [3]Vertex{positions[i], positions[i+1], positions[i+2]})
		}
		return tris
	}
	for i := 0; i+2 < len(indices); i += 3 {
		tris = append(tris, [3]Vertex{positions[indices[i]], positions[indices[i+1]], positions[indices[i+2]]})
	}
	return tris
}

// Buffers holds the GPU objects of an uploaded mesh.
type Buffers struct {
	VAO uint32
	VBO uint32
	// EBO is zero for unindexed meshes.
	EBO uint32

	Count   int32
	Indexed bool
}

// Upload describes the mesh to the GPU. Both the array buffer and the
// vertex array are unbound afterwards; the element buffer binding stays
// recorded in the vertex array.
func Upload(d gpu.Driver, m Mesh) (*Buffers, error) {
	err := Validate(m)
	if err != nil {
		return nil, fmt.Errorf("invalid mesh: %w", err)
	}

	positions := m.Positions()
	indices := m.Indices()
	b := &Buffers{}

	b.VAO = d.GenVertexArray()
	d.BindVertexArray(b.VAO)

	b.VBO = d.GenBuffer()
	d.BindBuffer(renderconsts.ArrayBuffer, b.VBO)
	d.BufferData(
		renderconsts.ArrayBuffer,
		len(positions)*int(unsafe.Sizeof(Vertex{})),
		unsafe.Pointer(&positions[0]),
		renderconsts.StaticDraw,
	)

	if indices != nil {
		b.Indexed = true
		b.Count = int32(len(indices))
		b.EBO = d.GenBuffer()
		d.BindBuffer(renderconsts.ElementArrayBuffer, b.EBO)
		d.BufferData(
			renderconsts.ElementArrayBuffer,
			len(indices)*int(unsafe.Sizeof(indices[0])),
			unsafe.Pointer(&indices[0]),
			renderconsts.StaticDraw,
		)
	} else {
		b.Count = int32(len(positions))
	}

	l := PositionLayout
	d.VertexAttribPointer(l.Index, l.Size, l.Type, l.Normalized, l.Stride, l.Offset)
	d.EnableVertexAttribArray(l.Index)

	d.BindBuffer(renderconsts.ArrayBuffer, 0)
	d.BindVertexArray(0)

	return b, nil
}

func (b *Buffers) Bind(d gpu.Driver) {
	d.BindVertexArray(b.VAO)
}

// Draw issues the single draw call. The vertex array must be bound.
func (b *Buffers) Draw(d gpu.Driver) {
	if b.Indexed {
		d.DrawElements(renderconsts.Triangles, b.Count, renderconsts.UnsignedInt, 0)
		return
	}
	d.DrawArrays(renderconsts.Triangles, 0, b.Count)
}

func (b *Buffers) Delete(d gpu.Driver) {
	if b.EBO != 0 {
		d.DeleteBuffer(b.EBO)
		b.EBO = 0
	}
	if b.VBO != 0 {
		d.DeleteBuffer(b.VBO)
		b.VBO = 0
	}
	if b.VAO != 0 {
		d.DeleteVertexArray(b.VAO)
		b.VAO = 0
	}
}
