package sprite

// RendererOption configures a Renderer during creation.
//
// Example:
//
//	// Defaults: 4x MSAA, transparent clear
//	r, err := sprite.NewRenderer(nil, 800, 600)
//
//	// Aliased rendering with an opaque background
//	r, err := sprite.NewRenderer(nil, 800, 600,
//	    sprite.WithMSAA(1),
//	    sprite.WithClearColor(sprite.Black),
//	)
type RendererOption func(*rendererOptions)

// FilterMode selects how textures are sampled when drawn at a size
// other than their own.
type FilterMode int

const (
	// FilterLinear blends the four nearest texels. The default.
	FilterLinear FilterMode = iota
	// FilterNearest snaps to the closest texel. Keeps pixel art crisp.
	FilterNearest
)

// rendererOptions holds optional configuration for Renderer creation.
type rendererOptions struct {
	sampleCount int
	clearColor  RGBA
	filter      FilterMode
}

// defaultRendererOptions returns the default renderer options.
func defaultRendererOptions() rendererOptions {
	return rendererOptions{
		sampleCount: 4,
		clearColor:  Transparent,
		filter:      FilterLinear,
	}
}

// WithMSAA sets the multisample count for render targets. Valid values
// are 1 (no multisampling) and 4. Other values are ignored.
func WithMSAA(samples int) RendererOption {
	return func(o *rendererOptions) {
		if samples == 1 || samples == 4 {
			o.sampleCount = samples
		}
	}
}

// WithClearColor sets the color the target is cleared to before each
// frame. The default is fully transparent black.
func WithClearColor(c RGBA) RendererOption {
	return func(o *rendererOptions) {
		o.clearColor = c
	}
}

// WithTextureFilter sets the sampling filter for all textures. One
// sampler is shared across the pipeline, so the mode is fixed at
// creation.
func WithTextureFilter(f FilterMode) RendererOption {
	return func(o *rendererOptions) {
		o.filter = f
	}
}
