package gpu

import (
	_ "embed"
	"errors"
)

// Embedded WGSL shader sources.
// These are compiled at build time using go:embed directives.

//go:embed shaders/sprite.wgsl
var spriteShaderSource string

// Vertex wire-format constants. These match the VertexInput struct in
// sprite.wgsl and the attribute offsets declared in spriteVertexLayout().
const (
	// spriteVertexStride is the byte size of one vertex:
	// vec2 position + vec2 uv + vec4 color, all float32.
	spriteVertexStride = 32

	// spriteUniformSize is the byte size of the Uniforms struct in
	// sprite.wgsl: one column-major mat4x4<f32>.
	spriteUniformSize = 64
)

// SpriteShaderSource returns the WGSL source for the sprite shader.
func SpriteShaderSource() string {
	return spriteShaderSource
}

// validateShaderSources checks that embedded shaders are present.
// An empty source means the embed failed at build time.
func validateShaderSources() error {
	if spriteShaderSource == "" {
		return errors.New("sprite shader source is empty")
	}
	return nil
}
