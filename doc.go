// Package sprite provides a textured quad batch renderer for Go.
//
// # Overview
//
// sprite is a small 2D sprite renderer for the GoGPU ecosystem. It draws
// axis-aligned textured quads with per-vertex tint colors through a single
// GPU pipeline: positions are transformed by one world-view-projection
// matrix, texture coordinates and colors pass through to the fragment
// stage unchanged, and each fragment is the sampled texel modulated by
// the interpolated vertex color.
//
// # Quick Start
//
//	import "github.com/gogpu/sprite"
//
//	// Create a renderer with its own GPU device
//	r, err := sprite.NewRenderer(nil, 512, 512)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer r.Close()
//
//	tex, _ := r.CreateTexture(img)
//
//	var b sprite.Batch
//	b.Sprite(tex, sprite.Rect{MinX: 0, MinY: 0, MaxX: 128, MaxY: 128}, sprite.White)
//
//	pix, _ := r.Render(&b)
//	pix.SavePNG("output.png")
//
// # Architecture
//
// The library is organized into:
//   - Public API: Renderer, Batch, Vertex, Mat4, RGBA, Rect
//   - render: device acquisition and capability reporting
//   - internal/gpu: pipeline, textures, render session
//   - text: font shaping, glyph atlas, text quads
//
// # Coordinate System
//
// Uses standard computer graphics coordinates:
//   - Origin (0,0) at top-left
//   - X increases right
//   - Y increases down
//   - Clip space produced by Ortho2D maps the viewport to [-1,1]
//
// # Draw Order
//
// There is no depth buffer. Quads are drawn in the order they are
// appended to a Batch; later quads cover earlier ones.
package sprite

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
