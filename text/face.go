package text

import (
	"bytes"
	"fmt"
	"sync"

	gtfont "github.com/go-text/typesetting/font"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// Face is a parsed font at a fixed pixel size.
//
// The font data is parsed once with two backends: go-text/typesetting for
// shaping (its font.Font is read-only and safe for concurrent use) and
// x/image opentype for rasterization and metrics. A Face itself is
// immutable after creation and safe to share.
type Face struct {
	shapeFont  *gtfont.Font
	rasterFont *opentype.Font
	size       float64
	metrics    Metrics
}

// Metrics are the face's vertical metrics in pixels.
type Metrics struct {
	// Ascent is the distance from the baseline to the top of a line.
	Ascent float32

	// Descent is the distance from the baseline to the bottom of a line,
	// as a positive number.
	Descent float32

	// LineGap is the recommended extra spacing between lines.
	LineGap float32
}

// LineHeight returns the recommended baseline-to-baseline distance.
func (m Metrics) LineHeight() float32 {
	return m.Ascent + m.Descent + m.LineGap
}

// NewFace parses TTF/OTF font data at the given pixel size.
func NewFace(data []byte, size float64) (*Face, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}
	if size <= 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSize, size)
	}
	shapeFace, err := gtfont.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("text: parse font for shaping: %w", err)
	}
	rasterFont, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("text: parse font for rasterization: %w", err)
	}
	return buildFace(shapeFace.Font, rasterFont, size)
}

// Cached parse of the bundled default font. ParseTTF and opentype.Parse
// both return read-only structures, so one parse serves every size.
var (
	regularOnce   sync.Once
	regularShape  *gtfont.Font
	regularRaster *opentype.Font
	regularErr    error
)

// DefaultFace returns a face for the bundled Go Regular font.
func DefaultFace(size float64) (*Face, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSize, size)
	}
	regularOnce.Do(func() {
		shapeFace, err := gtfont.ParseTTF(bytes.NewReader(goregular.TTF))
		if err != nil {
			regularErr = fmt.Errorf("text: parse bundled font: %w", err)
			return
		}
		rasterFont, err := opentype.Parse(goregular.TTF)
		if err != nil {
			regularErr = fmt.Errorf("text: parse bundled font: %w", err)
			return
		}
		regularShape = shapeFace.Font
		regularRaster = rasterFont
	})
	if regularErr != nil {
		return nil, regularErr
	}
	return buildFace(regularShape, regularRaster, size)
}

func buildFace(shapeFont *gtfont.Font, rasterFont *opentype.Font, size float64) (*Face, error) {
	f := &Face{
		shapeFont:  shapeFont,
		rasterFont: rasterFont,
		size:       size,
	}
	otFace, err := f.newRasterFace()
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = otFace.Close()
	}()

	m := otFace.Metrics()
	// Some fonts report Height < Ascent+Descent; extra spacing cannot
	// be negative.
	gap := float32(m.Height-m.Ascent-m.Descent) / 64
	if gap < 0 {
		gap = 0
	}
	f.metrics = Metrics{
		Ascent:  float32(m.Ascent) / 64,
		Descent: float32(m.Descent) / 64,
		LineGap: gap,
	}
	return f, nil
}

// newRasterFace creates an x/image face for rasterization. The returned
// face is NOT safe for concurrent use; callers own it and must Close it.
func (f *Face) newRasterFace() (font.Face, error) {
	otFace, err := opentype.NewFace(f.rasterFont, &opentype.FaceOptions{
		Size:    f.size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("text: create raster face: %w", err)
	}
	return otFace, nil
}

// Size returns the face's pixel size.
func (f *Face) Size() float64 { return f.size }

// Metrics returns the face's vertical metrics.
func (f *Face) Metrics() Metrics { return f.metrics }
