package sprite

import (
	"image/color"
	"testing"
)

func approxColor(a, b RGBA, eps float32) bool {
	return abs32(a.R-b.R) < eps && abs32(a.G-b.G) < eps &&
		abs32(a.B-b.B) < eps && abs32(a.A-b.A) < eps
}

func TestRGB(t *testing.T) {
	c := RGB(0.5, 0.25, 1)
	want := RGBA{R: 0.5, G: 0.25, B: 1, A: 1}
	if c != want {
		t.Errorf("RGB(0.5, 0.25, 1) = %v, want %v", c, want)
	}
}

func TestHex(t *testing.T) {
	tests := []struct {
		name   string
		hex    string
		expect RGBA
	}{
		{"white short", "#fff", RGBA{1, 1, 1, 1}},
		{"black short", "#000", RGBA{0, 0, 0, 1}},
		{"red long", "#ff0000", RGBA{1, 0, 0, 1}},
		{"green long", "#00ff00", RGBA{0, 1, 0, 1}},
		{"no hash", "0000ff", RGBA{0, 0, 1, 1}},
		{"short rgba", "#f00f", RGBA{1, 0, 0, 1}},
		{"long rgba", "#ff000080", RGBA{1, 0, 0, 0x80 / 255.0}},
		{"mixed case", "#FfAa00", RGBA{1, 0xAA / 255.0, 0, 1}},
		{"invalid length", "#12345", RGBA{0, 0, 0, 1}},
		{"empty", "", RGBA{0, 0, 0, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Hex(tt.hex)
			if !approxColor(got, tt.expect, 1e-6) {
				t.Errorf("Hex(%q) = %v, want %v", tt.hex, got, tt.expect)
			}
		})
	}
}

func TestRGBA_Mul(t *testing.T) {
	tests := []struct {
		name   string
		a, b   RGBA
		expect RGBA
	}{
		{"white is neutral", RGBA{0.2, 0.4, 0.6, 0.8}, White, RGBA{0.2, 0.4, 0.6, 0.8}},
		{"black zeroes rgb", RGBA{0.2, 0.4, 0.6, 1}, Black, RGBA{0, 0, 0, 1}},
		{"componentwise", RGBA{0.5, 0.5, 0.5, 0.5}, RGBA{0.5, 1, 0, 0.5}, RGBA{0.25, 0.5, 0, 0.25}},
		{"commutative check", RGBA{0.3, 0.6, 0.9, 1}, RGBA{0.9, 0.6, 0.3, 1}, RGBA{0.27, 0.36, 0.27, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.a.Mul(tt.b)
			if !approxColor(got, tt.expect, 1e-6) {
				t.Errorf("%v.Mul(%v) = %v, want %v", tt.a, tt.b, got, tt.expect)
			}
			if rev := tt.b.Mul(tt.a); !approxColor(rev, got, 1e-6) {
				t.Errorf("Mul not commutative: %v vs %v", got, rev)
			}
		})
	}
}

func TestRGBA_Premultiply(t *testing.T) {
	tests := []struct {
		name   string
		c      RGBA
		expect RGBA
	}{
		{"opaque unchanged", RGBA{0.5, 0.25, 1, 1}, RGBA{0.5, 0.25, 1, 1}},
		{"half alpha", RGBA{1, 0.5, 0, 0.5}, RGBA{0.5, 0.25, 0, 0.5}},
		{"zero alpha", RGBA{1, 1, 1, 0}, RGBA{0, 0, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.c.Premultiply()
			if !approxColor(got, tt.expect, 1e-6) {
				t.Errorf("%v.Premultiply() = %v, want %v", tt.c, got, tt.expect)
			}
		})
	}
}

func TestRGBA_PremultiplyRoundTrip(t *testing.T) {
	colors := []RGBA{
		{1, 0.5, 0.25, 0.8},
		{0.2, 0.4, 0.6, 0.1},
		{1, 1, 1, 1},
	}
	for _, c := range colors {
		got := c.Premultiply().Unpremultiply()
		if !approxColor(got, c, 1e-5) {
			t.Errorf("%v round trip = %v", c, got)
		}
	}
}

func TestRGBA_Unpremultiply_ZeroAlpha(t *testing.T) {
	got := RGBA{0.5, 0.5, 0.5, 0}.Unpremultiply()
	if got != (RGBA{}) {
		t.Errorf("Unpremultiply with zero alpha = %v, want zero", got)
	}
}

func TestRGBA_PremultipliedModulation(t *testing.T) {
	// Modulating premultiplied colors equals premultiplying the
	// modulation of straight colors. This is why the fragment shader can
	// multiply sample and tint directly.
	a := RGBA{1, 0.5, 0.25, 0.5}
	b := RGBA{0.8, 0.8, 0.8, 0.75}

	viaPremul := a.Premultiply().Mul(b.Premultiply())
	viaStraight := a.Mul(b).Premultiply()
	if !approxColor(viaPremul, viaStraight, 1e-6) {
		t.Errorf("premul(a)*premul(b) = %v, premul(a*b) = %v", viaPremul, viaStraight)
	}
}

func TestRGBA_WithAlpha(t *testing.T) {
	c := Red.WithAlpha(0.25)
	want := RGBA{1, 0, 0, 0.25}
	if c != want {
		t.Errorf("Red.WithAlpha(0.25) = %v, want %v", c, want)
	}
}

func TestRGBA_Lerp(t *testing.T) {
	tests := []struct {
		name   string
		t      float32
		expect RGBA
	}{
		{"t=0", 0, Black},
		{"t=1", 1, White},
		{"t=0.5", 0.5, RGBA{0.5, 0.5, 0.5, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Black.Lerp(White, tt.t)
			if !approxColor(got, tt.expect, 1e-6) {
				t.Errorf("Black.Lerp(White, %v) = %v, want %v", tt.t, got, tt.expect)
			}
		})
	}
}

func TestHSL(t *testing.T) {
	tests := []struct {
		name    string
		h, s, l float32
		expect  RGBA
	}{
		{"red", 0, 1, 0.5, RGBA{1, 0, 0, 1}},
		{"green", 120, 1, 0.5, RGBA{0, 1, 0, 1}},
		{"blue", 240, 1, 0.5, RGBA{0, 0, 1, 1}},
		{"white", 0, 0, 1, RGBA{1, 1, 1, 1}},
		{"black", 0, 0, 0, RGBA{0, 0, 0, 1}},
		{"gray", 0, 0, 0.5, RGBA{0.5, 0.5, 0.5, 1}},
		{"hue wraps", 360, 1, 0.5, RGBA{1, 0, 0, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HSL(tt.h, tt.s, tt.l)
			if !approxColor(got, tt.expect, 1e-5) {
				t.Errorf("HSL(%v, %v, %v) = %v, want %v", tt.h, tt.s, tt.l, got, tt.expect)
			}
		})
	}
}

func TestHSV(t *testing.T) {
	tests := []struct {
		name    string
		h, s, v float32
		expect  RGBA
	}{
		{"red", 0, 1, 1, RGBA{1, 0, 0, 1}},
		{"green", 120, 1, 1, RGBA{0, 1, 0, 1}},
		{"blue", 240, 1, 1, RGBA{0, 0, 1, 1}},
		{"yellow", 60, 1, 1, RGBA{1, 1, 0, 1}},
		{"white", 0, 0, 1, RGBA{1, 1, 1, 1}},
		{"black", 0, 1, 0, RGBA{0, 0, 0, 1}},
		{"half value", 0, 1, 0.5, RGBA{0.5, 0, 0, 1}},
		{"negative hue wraps", -120, 1, 1, RGBA{0, 0, 1, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HSV(tt.h, tt.s, tt.v)
			if !approxColor(got, tt.expect, 1e-5) {
				t.Errorf("HSV(%v, %v, %v) = %v, want %v", tt.h, tt.s, tt.v, got, tt.expect)
			}
		})
	}
}

func TestHSV_AgreesWithHSL(t *testing.T) {
	// Full saturation, full value in HSV is full saturation, half
	// lightness in HSL.
	for _, h := range []float32{0, 45, 120, 200, 300} {
		hsv := HSV(h, 1, 1)
		hsl := HSL(h, 1, 0.5)
		if !approxColor(hsv, hsl, 1e-5) {
			t.Errorf("hue %v: HSV(1,1) = %v, HSL(1,0.5) = %v", h, hsv, hsl)
		}
	}
}

func TestFromColor(t *testing.T) {
	tests := []struct {
		name   string
		c      color.Color
		expect RGBA
	}{
		{"opaque white", color.NRGBA{255, 255, 255, 255}, RGBA{1, 1, 1, 1}},
		{"opaque red", color.NRGBA{255, 0, 0, 255}, RGBA{1, 0, 0, 1}},
		{"transparent", color.NRGBA{0, 0, 0, 0}, RGBA{}},
		{"half alpha green", color.NRGBA{0, 255, 0, 128}, RGBA{0, 1, 0, 128.0 / 255}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FromColor(tt.c)
			if !approxColor(got, tt.expect, 0.01) {
				t.Errorf("FromColor(%v) = %v, want %v", tt.c, got, tt.expect)
			}
		})
	}
}

func TestRGBA_ColorRoundTrip(t *testing.T) {
	colors := []RGBA{White, Red, Green, Blue, {0.5, 0.25, 0.75, 1}}
	for _, c := range colors {
		got := FromColor(c.Color())
		if !approxColor(got, c, 0.01) {
			t.Errorf("FromColor(%v.Color()) = %v", c, got)
		}
	}
}
