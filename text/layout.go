package text

import (
	"sync"

	"github.com/go-text/typesetting/di"
	gtfont "github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/unicode/bidi"
	"golang.org/x/text/unicode/norm"
)

// Glyph is one positioned glyph from shaping. Positions are pixels
// relative to the text origin (baseline left) with y growing downward.
type Glyph struct {
	// Rune is the source rune this glyph renders. For n:1 substitutions
	// (ligatures) it is the cluster's first rune.
	Rune rune

	// X and Y position the glyph's origin on the baseline, including
	// shaping offsets.
	X float32
	Y float32

	// Advance is the horizontal pen movement after this glyph.
	Advance float32
}

// shaperPool pools HarfbuzzShaper instances. HarfbuzzShaper has internal
// mutable state and is not safe for concurrent use, but reuse across
// sequential calls avoids reallocating its buffers.
var shaperPool = sync.Pool{
	New: func() any {
		return &shaping.HarfbuzzShaper{}
	},
}

// Layout shapes s into positioned glyphs. Input is NFC-normalized so
// composed and decomposed forms map to the same glyphs, then the
// paragraph is split into visual direction runs and each run is shaped
// with HarfBuzz so kerning, ligatures, and complex scripts come out
// right.
func (f *Face) Layout(s string) []Glyph {
	if s == "" {
		return nil
	}
	s = norm.NFC.String(s)
	var out []Glyph
	var penX float32
	for _, run := range splitRuns(s) {
		glyphs, advance := f.shapeRun(run.text, run.rtl, penX)
		out = append(out, glyphs...)
		penX += advance
	}
	return out
}

// Measure returns the total advance width of s in pixels. It
// normalizes the same way Layout does, so the two always agree.
func (f *Face) Measure(s string) float32 {
	var width float32
	for _, run := range splitRuns(norm.NFC.String(s)) {
		_, advance := f.shapeRun(run.text, run.rtl, 0)
		width += advance
	}
	return width
}

// bidiRun is a maximal substring with a single resolved direction.
type bidiRun struct {
	text string
	rtl  bool
}

// splitRuns orders the paragraph into visual runs. Pure-LTR text comes
// back as a single run.
func splitRuns(s string) []bidiRun {
	var p bidi.Paragraph
	p.SetString(s)
	ordering, err := p.Order()
	if err != nil {
		return []bidiRun{{text: s}}
	}
	n := ordering.NumRuns()
	if n <= 1 {
		rtl := false
		if n == 1 {
			// Run returns a value; Direction has a pointer receiver.
			r := ordering.Run(0)
			rtl = r.Direction() == bidi.RightToLeft
		}
		return []bidiRun{{text: s, rtl: rtl}}
	}
	runs := make([]bidiRun, 0, n)
	for i := 0; i < n; i++ {
		r := ordering.Run(i)
		runs = append(runs, bidiRun{
			text: r.String(),
			rtl:  r.Direction() == bidi.RightToLeft,
		})
	}
	return runs
}

// shapeRun shapes one direction run starting at pen position originX.
// It returns the positioned glyphs and the run's total advance.
func (f *Face) shapeRun(s string, rtl bool, originX float32) ([]Glyph, float32) {
	runes := []rune(s)
	if len(runes) == 0 {
		return nil, 0
	}

	dir := di.DirectionLTR
	if rtl {
		dir = di.DirectionRTL
	}

	// font.Face is not safe for concurrent use; each shaping call gets
	// its own. NewFace is cheap, it wraps the shared read-only Font.
	input := shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: dir,
		Face:      gtfont.NewFace(f.shapeFont),
		Size:      fixed.Int26_6(f.size * 64),
		Script:    detectScript(runes),
		Language:  language.NewLanguage("en"),
	}

	hb := shaperPool.Get().(*shaping.HarfbuzzShaper)
	output := hb.Shape(input)
	shaperPool.Put(hb)

	glyphs := make([]Glyph, 0, len(output.Glyphs))
	var x float32
	for _, g := range output.Glyphs {
		cluster := g.TextIndex()
		r := runes[0]
		if cluster >= 0 && cluster < len(runes) {
			r = runes[cluster]
		}
		advance := fixedToFloat(g.Advance)
		glyphs = append(glyphs, Glyph{
			Rune: r,
			X:    originX + x + fixedToFloat(g.XOffset),
			// Shaping offsets are y-up; the sprite canvas is y-down.
			Y:       -fixedToFloat(g.YOffset),
			Advance: advance,
		})
		x += advance
	}
	return glyphs, x
}

// detectScript returns the script of the first non-space rune. For
// mixed-script text the bidi run split usually separates scripts too.
func detectScript(runes []rune) language.Script {
	for _, r := range runes {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}

// fixedToFloat converts fixed.Int26_6 (6 fractional bits) to float32.
func fixedToFloat(v fixed.Int26_6) float32 {
	return float32(v) / 64
}
