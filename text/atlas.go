package text

import (
	"fmt"
	"image"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/sprite"
)

// Default atlas settings.
const (
	// DefaultAtlasSize is the default atlas dimension in pixels.
	DefaultAtlasSize = 1024

	// minAtlasSize is the smallest accepted atlas dimension.
	minAtlasSize = 256

	// glyphPadding keeps one empty pixel between packed glyphs so linear
	// sampling never bleeds neighbors.
	glyphPadding = 1
)

// atlasGlyph is one packed glyph: its texture region and placement.
type atlasGlyph struct {
	uv      sprite.Rect // texture coordinates in [0,1]
	offsetX float32     // left bearing relative to the pen position
	offsetY float32     // top edge relative to the baseline, negative above
	width   float32
	height  float32
	visible bool // false for whitespace and missing glyphs
}

// shelf is one horizontal packing row.
type shelf struct {
	y      int
	height int
	nextX  int
}

// Atlas packs rasterized glyphs for one face into a single texture.
//
// Rasterization happens on demand the first time a rune is drawn. Glyph
// coverage is stored as premultiplied white, so a vertex tint recolors
// text with no extra texture state. Sync uploads accumulated pixels.
//
// An Atlas is not safe for concurrent use, same as the renderer it feeds.
type Atlas struct {
	face     *Face
	dim      int
	img      *image.RGBA
	raster   font.Face
	glyphs   map[rune]*atlasGlyph
	shelves  []shelf
	usedArea int

	texture sprite.TextureID
	created bool
	dirty   bool
}

// NewAtlas creates an empty atlas for face. Dimensions below the minimum
// fall back to DefaultAtlasSize.
func NewAtlas(face *Face, dim int) (*Atlas, error) {
	if dim < minAtlasSize {
		dim = DefaultAtlasSize
	}
	raster, err := face.newRasterFace()
	if err != nil {
		return nil, err
	}
	return &Atlas{
		face:   face,
		dim:    dim,
		img:    image.NewRGBA(image.Rect(0, 0, dim, dim)),
		raster: raster,
		glyphs: make(map[rune]*atlasGlyph),
	}, nil
}

// Face returns the face this atlas rasterizes.
func (a *Atlas) Face() *Face { return a.face }

// Size returns the atlas dimension in pixels.
func (a *Atlas) Size() int { return a.dim }

// Texture returns the sprite texture ID, valid after the first Sync.
func (a *Atlas) Texture() sprite.TextureID { return a.texture }

// Utilization returns the fraction of atlas area holding glyphs.
func (a *Atlas) Utilization() float64 {
	total := a.dim * a.dim
	if total == 0 {
		return 0
	}
	return float64(a.usedArea) / float64(total)
}

// GlyphCount returns the number of cached glyphs, including invisible ones.
func (a *Atlas) GlyphCount() int { return len(a.glyphs) }

// glyph returns the packed entry for r, rasterizing on first use.
func (a *Atlas) glyph(r rune) (*atlasGlyph, error) {
	if g, ok := a.glyphs[r]; ok {
		return g, nil
	}
	g, err := a.rasterize(r)
	if err != nil {
		return nil, err
	}
	a.glyphs[r] = g
	return g, nil
}

// rasterize renders r with the x/image face and packs its coverage.
func (a *Atlas) rasterize(r rune) (*atlasGlyph, error) {
	dr, mask, maskp, _, ok := a.raster.Glyph(fixed.Point26_6{}, r)
	if !ok || dr.Empty() {
		// Whitespace and missing glyphs take no atlas space. The shaped
		// advance still moves the pen.
		return &atlasGlyph{}, nil
	}

	w, h := dr.Dx(), dr.Dy()
	x, y, fits := a.allocate(w, h)
	if !fits {
		return nil, fmt.Errorf("%w: glyph %q needs %dx%d", ErrAtlasFull, r, w, h)
	}

	a.copyCoverage(mask, maskp, x, y, w, h)
	a.dirty = true

	d := float32(a.dim)
	return &atlasGlyph{
		uv: sprite.Rect{
			MinX: float32(x) / d,
			MinY: float32(y) / d,
			MaxX: float32(x+w) / d,
			MaxY: float32(y+h) / d,
		},
		offsetX: float32(dr.Min.X),
		offsetY: float32(dr.Min.Y),
		width:   float32(w),
		height:  float32(h),
		visible: true,
	}, nil
}

// copyCoverage writes the glyph mask into the atlas as premultiplied white.
func (a *Atlas) copyCoverage(mask image.Image, maskp image.Point, x, y, w, h int) {
	alpha, _ := mask.(*image.Alpha)
	for row := 0; row < h; row++ {
		for col := 0; col < w; col++ {
			var cov uint8
			if alpha != nil {
				cov = alpha.Pix[alpha.PixOffset(maskp.X+col, maskp.Y+row)]
			} else {
				_, _, _, a16 := mask.At(maskp.X+col, maskp.Y+row).RGBA()
				cov = uint8(a16 >> 8)
			}
			i := a.img.PixOffset(x+col, y+row)
			a.img.Pix[i+0] = cov
			a.img.Pix[i+1] = cov
			a.img.Pix[i+2] = cov
			a.img.Pix[i+3] = cov
		}
	}
}

// allocate finds space with shelf packing: fill the current shelves left
// to right, open a new shelf below when nothing fits.
func (a *Atlas) allocate(width, height int) (x, y int, ok bool) {
	paddedW := width + glyphPadding
	paddedH := height + glyphPadding
	if paddedW > a.dim || paddedH > a.dim {
		return 0, 0, false
	}

	for i := range a.shelves {
		s := &a.shelves[i]
		if s.nextX+paddedW > a.dim {
			continue
		}
		// A started shelf cannot grow taller.
		if paddedH > s.height && s.nextX > 0 {
			continue
		}
		x, y = s.nextX, s.y
		s.nextX += paddedW
		if paddedH > s.height {
			s.height = paddedH
		}
		a.usedArea += width * height
		return x, y, true
	}

	newY := 0
	if n := len(a.shelves); n > 0 {
		last := a.shelves[n-1]
		newY = last.y + last.height
	}
	if newY+paddedH > a.dim {
		return 0, 0, false
	}
	a.shelves = append(a.shelves, shelf{y: newY, height: paddedH, nextX: paddedW})
	a.usedArea += width * height
	return 0, newY, true
}

// Sync uploads pending glyph pixels. The texture is created on the first
// call; later calls re-upload only when new glyphs arrived since the last
// Sync. Call it after batching text and before rendering the batch.
func (a *Atlas) Sync(r *sprite.Renderer) error {
	if r == nil {
		return ErrNilRenderer
	}
	if !a.created {
		id, err := r.CreateTexture(a.img)
		if err != nil {
			return err
		}
		a.texture = id
		a.created = true
		a.dirty = false
		return nil
	}
	if !a.dirty {
		return nil
	}
	if err := r.UpdateTexture(a.texture, a.img); err != nil {
		return err
	}
	a.dirty = false
	return nil
}

// Reset drops every packed glyph and clears the pixels. Allocation starts
// over; the texture is overwritten on the next Sync.
func (a *Atlas) Reset() {
	clear(a.img.Pix)
	a.glyphs = make(map[rune]*atlasGlyph)
	a.shelves = a.shelves[:0]
	a.usedArea = 0
	a.dirty = a.created
}

// Close releases the rasterizer. The GPU texture belongs to the renderer
// and is released with it or via Renderer.DestroyTexture.
func (a *Atlas) Close() error {
	if a.raster == nil {
		return nil
	}
	err := a.raster.Close()
	a.raster = nil
	return err
}
