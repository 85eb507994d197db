package sprite

// VertexOutput is what the vertex stage hands to rasterization: a clip
// space position plus the attributes interpolated across the triangle.
type VertexOutput struct {
	// Clip is the homogeneous clip-space position.
	Clip [4]float32

	// UV is the texture coordinate, forwarded unchanged.
	UV Vec2

	// Color is the vertex tint, forwarded unchanged.
	Color RGBA
}

// TransformVertex runs the vertex stage on the CPU. It extends the
// position to (x, y, 0, 1), multiplies by the world-view-projection
// matrix, and forwards the texture coordinate and color untouched.
//
// This mirrors vs_main in the WGSL pipeline exactly; tests use it to
// pin the shader's contract without a GPU.
func TransformVertex(m Mat4, v Vertex) VertexOutput {
	return VertexOutput{
		Clip:  m.MulVec4([4]float32{v.Pos.X, v.Pos.Y, 0, 1}),
		UV:    v.UV,
		Color: v.Color,
	}
}

// ShadeFragment runs the fragment stage on the CPU: the sampled texel
// modulated component-wise by the interpolated vertex color.
//
// This mirrors fs_main in the WGSL pipeline exactly. A white sample
// returns the tint unchanged, a white tint returns the sample
// unchanged, and a zero on either side zeroes that component.
func ShadeFragment(sample, tint RGBA) RGBA {
	return sample.Mul(tint)
}
