package sprite

import "testing"

func TestDefaultRendererOptions(t *testing.T) {
	o := defaultRendererOptions()
	if o.sampleCount != 4 {
		t.Errorf("default sampleCount = %d, want 4", o.sampleCount)
	}
	if o.clearColor != Transparent {
		t.Errorf("default clearColor = %v, want Transparent", o.clearColor)
	}
	if o.filter != FilterLinear {
		t.Errorf("default filter = %v, want FilterLinear", o.filter)
	}
}

func TestWithMSAA(t *testing.T) {
	tests := []struct {
		name    string
		samples int
		expect  int
	}{
		{"disable", 1, 1},
		{"four", 4, 4},
		{"unsupported falls back", 8, 4},
		{"zero falls back", 0, 4},
		{"negative falls back", -1, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := defaultRendererOptions()
			WithMSAA(tt.samples)(&o)
			if o.sampleCount != tt.expect {
				t.Errorf("WithMSAA(%d) sampleCount = %d, want %d", tt.samples, o.sampleCount, tt.expect)
			}
		})
	}
}

func TestWithClearColor(t *testing.T) {
	o := defaultRendererOptions()
	WithClearColor(Red)(&o)
	if o.clearColor != Red {
		t.Errorf("clearColor = %v, want %v", o.clearColor, Red)
	}
}

func TestWithTextureFilter(t *testing.T) {
	o := defaultRendererOptions()
	WithTextureFilter(FilterNearest)(&o)
	if o.filter != FilterNearest {
		t.Errorf("filter = %v, want FilterNearest", o.filter)
	}
}

func TestOptionsCompose(t *testing.T) {
	o := defaultRendererOptions()
	for _, opt := range []RendererOption{WithMSAA(1), WithClearColor(Black), WithTextureFilter(FilterNearest)} {
		opt(&o)
	}
	if o.sampleCount != 1 || o.clearColor != Black || o.filter != FilterNearest {
		t.Errorf("composed options = %+v", o)
	}
}
