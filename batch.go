package sprite

import (
	"errors"
	"fmt"
)

// TextureID identifies a texture registered with a Renderer.
//
// WhiteTextureID is always valid and refers to the built-in opaque
// white 1x1 texture, so untextured quads render as pure vertex color.
type TextureID uint32

// WhiteTextureID is the built-in 1x1 white texture present on every
// renderer.
const WhiteTextureID TextureID = 0

// MaxQuadsPerBatch is the quad capacity of a single batch. Indices are
// 16-bit, so a batch addresses at most 65536 vertices.
const MaxQuadsPerBatch = 65536 / 4

// ErrBatchTooLarge is returned when appending a quad would exceed
// MaxQuadsPerBatch.
var ErrBatchTooLarge = errors.New("sprite: batch too large")

// DrawCommand is one contiguous run of quads sharing a texture. A
// frame replays the command list in order against a single vertex and
// index buffer, rebinding only when the texture changes.
type DrawCommand struct {
	Texture TextureID

	// IndexOffset and IndexCount select this command's range of the
	// batch index buffer.
	IndexOffset uint32
	IndexCount  uint32
}

// Batch accumulates textured quads into vertex and index arrays plus
// a command list, ready for a renderer to upload and replay. The zero
// value is an empty batch ready for use.
//
// A Batch is not safe for concurrent use.
type Batch struct {
	vertices []Vertex
	indices  []uint16
	commands []DrawCommand

	clip    Rect
	hasClip bool
}

// NewBatch returns a batch with room for quadCapacity quads, so a
// frame of known size appends without growing. Capacities outside
// [0, MaxQuadsPerBatch] are clamped.
func NewBatch(quadCapacity int) *Batch {
	if quadCapacity < 0 {
		quadCapacity = 0
	}
	if quadCapacity > MaxQuadsPerBatch {
		quadCapacity = MaxQuadsPerBatch
	}
	return &Batch{
		vertices: make([]Vertex, 0, quadCapacity*4),
		indices:  make([]uint16, 0, quadCapacity*6),
	}
}

// Reset empties the batch while keeping its allocations for reuse.
// The clip state is cleared as well.
func (b *Batch) Reset() {
	b.vertices = b.vertices[:0]
	b.indices = b.indices[:0]
	b.commands = b.commands[:0]
	b.clip = Rect{}
	b.hasClip = false
}

// IsEmpty returns true if the batch holds no quads.
func (b *Batch) IsEmpty() bool { return len(b.indices) == 0 }

// QuadCount returns the number of quads appended so far.
func (b *Batch) QuadCount() int { return len(b.vertices) / 4 }

// Vertices returns the accumulated vertex array. The slice is owned
// by the batch and valid until the next append or Reset.
func (b *Batch) Vertices() []Vertex { return b.vertices }

// Indices returns the accumulated index array. Two triangles per quad,
// wound 0,1,2 2,3,0 relative to the quad's first vertex.
func (b *Batch) Indices() []uint16 { return b.indices }

// Commands returns the accumulated command list.
func (b *Batch) Commands() []DrawCommand { return b.commands }

// SetClip restricts subsequent rectangle draws to a pixel rectangle.
// Sprites are clipped exactly at append time: destinations shrink to
// the intersection and source coordinates shrink proportionally, so
// clipped sprites show the same texels they would with the clip off.
// Fully clipped sprites are dropped.
//
// The clip applies until changed or cleared. It affects Sprite,
// SpriteSrc, and FillRect; Quad appends its corners unmodified.
func (b *Batch) SetClip(r Rect) {
	b.clip = r.Canon()
	b.hasClip = true
}

// ClearClip removes the clip for subsequent draws.
func (b *Batch) ClearClip() {
	b.clip = Rect{}
	b.hasClip = false
}

// Quad appends one textured quad with explicit corner vertices, given
// in bottom-left, bottom-right, top-right, top-left order. Winding is
// not significant; the pipeline does not cull.
//
// Quad is the low-level escape hatch for rotated or sheared geometry
// and ignores the batch clip. Use the rectangle helpers for exact
// clipping.
func (b *Batch) Quad(tex TextureID, v0, v1, v2, v3 Vertex) error {
	quads := b.QuadCount()
	if quads >= MaxQuadsPerBatch {
		return fmt.Errorf("%w: %d quads exceeds max %d", ErrBatchTooLarge, quads+1, MaxQuadsPerBatch)
	}

	base := uint16(quads * 4)
	b.vertices = append(b.vertices, v0, v1, v2, v3)
	b.indices = append(b.indices,
		base+0, base+1, base+2,
		base+2, base+3, base+0,
	)
	b.extendCommand(tex, 6)
	return nil
}

// Sprite appends the full texture stretched over a destination
// rectangle, tinted by a single color.
func (b *Batch) Sprite(tex TextureID, dst Rect, tint RGBA) error {
	return b.SpriteSrc(tex, dst, UnitRect, tint)
}

// SpriteSrc appends a sub-region of the texture, given in unit
// coordinates, stretched over a destination rectangle.
func (b *Batch) SpriteSrc(tex TextureID, dst, src Rect, tint RGBA) error {
	dst = dst.Canon()
	if b.hasClip {
		var ok bool
		dst, src, ok = clipSprite(dst, src, b.clip)
		if !ok {
			return nil
		}
	}
	if dst.Empty() {
		return nil
	}
	return b.Quad(tex,
		Vertex{Pos: Vec2{dst.MinX, dst.MaxY}, UV: Vec2{src.MinX, src.MaxY}, Color: tint},
		Vertex{Pos: Vec2{dst.MaxX, dst.MaxY}, UV: Vec2{src.MaxX, src.MaxY}, Color: tint},
		Vertex{Pos: Vec2{dst.MaxX, dst.MinY}, UV: Vec2{src.MaxX, src.MinY}, Color: tint},
		Vertex{Pos: Vec2{dst.MinX, dst.MinY}, UV: Vec2{src.MinX, src.MinY}, Color: tint},
	)
}

// FillRect appends an untextured rectangle of solid color, drawn with
// the built-in white texture.
func (b *Batch) FillRect(dst Rect, c RGBA) error {
	return b.Sprite(WhiteTextureID, dst, c)
}

// clipSprite intersects a destination rectangle with the clip and
// remaps the source rectangle so the surviving destination shows the
// same portion of the texture. Returns false if nothing survives.
func clipSprite(dst, src Rect, clip Rect) (Rect, Rect, bool) {
	clipped := dst.Intersect(clip)
	if clipped.Empty() {
		return Rect{}, Rect{}, false
	}
	if clipped == dst {
		return dst, src, true
	}

	dw := dst.Width()
	dh := dst.Height()
	sw := src.Width()
	sh := src.Height()
	out := Rect{
		MinX: src.MinX + (clipped.MinX-dst.MinX)/dw*sw,
		MinY: src.MinY + (clipped.MinY-dst.MinY)/dh*sh,
		MaxX: src.MinX + (clipped.MaxX-dst.MinX)/dw*sw,
		MaxY: src.MinY + (clipped.MaxY-dst.MinY)/dh*sh,
	}
	return clipped, out, true
}

// extendCommand grows the current draw command by indexCount indices,
// or starts a new command when the texture differs from the run in
// progress.
func (b *Batch) extendCommand(tex TextureID, indexCount uint32) {
	if n := len(b.commands); n > 0 {
		cur := &b.commands[n-1]
		if cur.Texture == tex {
			cur.IndexCount += indexCount
			return
		}
	}
	b.commands = append(b.commands, DrawCommand{
		Texture:     tex,
		IndexOffset: uint32(len(b.indices)) - indexCount,
		IndexCount:  indexCount,
	})
}
