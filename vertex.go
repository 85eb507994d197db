package sprite

import (
	"encoding/binary"
	"math"
)

// Vertex is one corner of a textured quad as the GPU pipeline consumes
// it. The wire layout is eight float32 values, 32 bytes per vertex:
//
//	offset  0: position x, y   (shader location 0)
//	offset  8: texture u, v    (shader location 1)
//	offset 16: color r, g, b, a (shader location 2)
//
// Position is in pixels before the world-view-projection transform.
// Texture coordinates are in [0,1] with (0,0) at the top-left of the
// texture. Color is straight (non-premultiplied) alpha; the renderer
// premultiplies colors at upload so blending happens in premultiplied
// space.
type Vertex struct {
	Pos   Vec2
	UV    Vec2
	Color RGBA
}

// Vertex wire-format constants.
const (
	// VertexStride is the byte size of one encoded vertex.
	VertexStride = 32

	// VertexPosOffset is the byte offset of the position attribute.
	VertexPosOffset = 0

	// VertexUVOffset is the byte offset of the texture coordinate attribute.
	VertexUVOffset = 8

	// VertexColorOffset is the byte offset of the color attribute.
	VertexColorOffset = 16
)

// AppendVertex appends the vertex in its little-endian wire format.
// The result grows by exactly VertexStride bytes.
func AppendVertex(buf []byte, v Vertex) []byte {
	buf = appendFloat32(buf, v.Pos.X)
	buf = appendFloat32(buf, v.Pos.Y)
	buf = appendFloat32(buf, v.UV.X)
	buf = appendFloat32(buf, v.UV.Y)
	buf = appendFloat32(buf, v.Color.R)
	buf = appendFloat32(buf, v.Color.G)
	buf = appendFloat32(buf, v.Color.B)
	buf = appendFloat32(buf, v.Color.A)
	return buf
}

func appendFloat32(buf []byte, f float32) []byte {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], math.Float32bits(f))
	return append(buf, tmp[:]...)
}
