package text

import (
	"github.com/gogpu/sprite"
)

// Drawer shapes strings with a Face and appends the resulting glyph quads
// to sprite batches, sourcing pixels from a shared Atlas.
//
// A Drawer is bound to one renderer: its atlas texture lives there. It is
// not safe for concurrent use.
type Drawer struct {
	renderer *sprite.Renderer
	face     *Face
	atlas    *Atlas
}

// NewDrawer creates a Drawer for face on r. The atlas texture is created
// immediately so batches built before the first Sync already reference a
// valid texture ID.
func NewDrawer(r *sprite.Renderer, face *Face) (*Drawer, error) {
	if r == nil {
		return nil, ErrNilRenderer
	}
	atlas, err := NewAtlas(face, DefaultAtlasSize)
	if err != nil {
		return nil, err
	}
	if err := atlas.Sync(r); err != nil {
		atlas.Close()
		return nil, err
	}
	return &Drawer{renderer: r, face: face, atlas: atlas}, nil
}

// Face returns the drawer's face.
func (d *Drawer) Face() *Face { return d.face }

// Atlas returns the drawer's glyph atlas.
func (d *Drawer) Atlas() *Atlas { return d.atlas }

// Draw shapes s and appends one tinted quad per visible glyph to batch.
// (x, y) is the baseline origin in canvas coordinates, y-down.
//
// New glyphs are rasterized into the atlas on the CPU; call Sync before
// rendering the batch so the pixels reach the GPU.
//
// The atlas caches pixels per rune, not per glyph ID, so glyph
// substitutions from shaping (ligatures, contextual forms) render as
// the cluster's first rune. Positions and advances still come from the
// shaper.
func (d *Drawer) Draw(batch *sprite.Batch, s string, x, y float32, col sprite.RGBA) error {
	if s == "" {
		return nil
	}
	for _, g := range d.face.Layout(s) {
		ag, err := d.atlas.glyph(g.Rune)
		if err != nil {
			return err
		}
		if !ag.visible {
			continue
		}
		dst := sprite.RectXYWH(x+g.X+ag.offsetX, y+g.Y+ag.offsetY, ag.width, ag.height)
		if err := batch.SpriteSrc(d.atlas.Texture(), dst, ag.uv, col); err != nil {
			return err
		}
	}
	return nil
}

// Sync uploads glyphs rasterized since the last call.
func (d *Drawer) Sync() error {
	return d.atlas.Sync(d.renderer)
}

// Measure returns the advance width of s in pixels.
func (d *Drawer) Measure(s string) float32 {
	return d.face.Measure(s)
}

// Close releases the atlas rasterizer and destroys the atlas texture.
func (d *Drawer) Close() error {
	if d.atlas == nil {
		return nil
	}
	if d.atlas.created {
		// Ignore the error: the renderer may already be closed.
		_ = d.renderer.DestroyTexture(d.atlas.Texture())
	}
	err := d.atlas.Close()
	d.atlas = nil
	return err
}
