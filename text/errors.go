package text

import "errors"

// Sentinel errors for text package.
var (
	// ErrEmptyFontData is returned when font data is empty.
	ErrEmptyFontData = errors.New("text: empty font data")

	// ErrInvalidSize is returned when a font size is not positive.
	ErrInvalidSize = errors.New("text: invalid font size")

	// ErrAtlasFull is returned when the glyph atlas cannot fit another glyph.
	ErrAtlasFull = errors.New("text: glyph atlas is full")

	// ErrNilRenderer is returned when a nil renderer is passed to NewDrawer.
	ErrNilRenderer = errors.New("text: nil renderer")
)
