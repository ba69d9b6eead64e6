// Package renderconsts holds the handful of GL enums the renderer passes
// through the gpu.Driver interface. Values are identical to the ones in
// github.com/go-gl/gl so the GL driver can hand them over unchanged.
package renderconsts

type ShaderStage uint32

const (
	VertexShader   ShaderStage = 0x8B31
	FragmentShader ShaderStage = 0x8B30
)

func (s ShaderStage) String() string {
	switch s {
	case VertexShader:
		return "vertex"
	case FragmentShader:
		return "fragment"
	default:
		return "unknown"
	}
}

type BufferTarget uint32

const (
	ArrayBuffer        BufferTarget = 0x8892
	ElementArrayBuffer BufferTarget = 0x8893
)

type BufferUsage uint32

const (
	StaticDraw BufferUsage = 0x88E4
)

type DataType uint32

const (
	UnsignedInt DataType = 0x1405
	Float       DataType = 0x1406
)

type DrawMode uint32

const (
	Triangles DrawMode = 0x0004
)

type ClearMask uint32

const (
	ColorBufferBit ClearMask = 0x4000
)

const NoError uint32 = 0
