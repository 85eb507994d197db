// Package text draws shaped text through sprite batches.
//
// The pipeline has three layers:
//
//   - Face: a parsed font at a fixed pixel size. Parsing happens once with
//     two backends: go-text/typesetting for HarfBuzz shaping and
//     golang.org/x/image/font/opentype for glyph rasterization and metrics.
//   - Atlas: a single texture of rasterized glyphs, packed on demand with
//     a shelf allocator. Glyph bitmaps upload as premultiplied white so a
//     vertex tint recolors them for free.
//   - Drawer: shapes a string (bidi runs, kerning, ligatures) and appends
//     one tinted textured quad per visible glyph to a sprite.Batch.
//
// # Example usage
//
//	face, err := text.DefaultFace(24)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	drawer, err := text.NewDrawer(renderer, face)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	batch := &sprite.Batch{}
//	drawer.Draw(batch, "Hello, GoGPU!", 100, 100, sprite.White)
//	drawer.Sync() // upload new glyphs before rendering
//	pix, err := renderer.Render(batch)
//
// Coordinates are y-down: the (x, y) passed to Draw is the baseline origin,
// ascenders extend to smaller y values.
//
// Like sprite.Renderer, a Drawer is not safe for concurrent use.
package text
