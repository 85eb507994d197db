package gpu

import (
	"testing"

	"github.com/gogpu/gputypes"
)

func TestConvertBGRAToRGBA(t *testing.T) {
	// Two pixels in BGRA order.
	src := []byte{
		0x10, 0x20, 0x30, 0xFF, // pixel 0: B=10 G=20 R=30 A=FF
		0xAA, 0xBB, 0xCC, 0xDD, // pixel 1: B=AA G=BB R=CC A=DD
	}
	dst := make([]byte, len(src))
	convertBGRAToRGBA(src, dst, 2)

	want := []byte{
		0x30, 0x20, 0x10, 0xFF,
		0xCC, 0xBB, 0xAA, 0xDD,
	}
	for i := range want {
		if dst[i] != want[i] {
			t.Errorf("dst[%d] = %02X, want %02X", i, dst[i], want[i])
		}
	}
}

func TestConvertBGRAToRGBA_Partial(t *testing.T) {
	// pixelCount bounds the conversion; trailing bytes stay untouched.
	src := []byte{
		0x01, 0x02, 0x03, 0x04,
		0x05, 0x06, 0x07, 0x08,
	}
	dst := make([]byte, len(src))
	convertBGRAToRGBA(src, dst, 1)

	want := []byte{0x03, 0x02, 0x01, 0x04, 0, 0, 0, 0}
	for i := range want {
		if dst[i] != want[i] {
			t.Errorf("dst[%d] = %02X, want %02X", i, dst[i], want[i])
		}
	}
}

func TestAlignRowBytes(t *testing.T) {
	tests := []struct {
		name string
		in   uint32
		want uint32
	}{
		{"zero", 0, 0},
		{"one byte", 1, 256},
		{"exact", 256, 256},
		{"just over", 257, 512},
		{"64px row", 64 * 4, 256},
		{"100px row", 100 * 4, 512},
		{"aligned width", 512 * 4, 512 * 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := alignRowBytes(tt.in); got != tt.want {
				t.Errorf("alignRowBytes(%d) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestFilterModeHal(t *testing.T) {
	if got := FilterLinear.hal(); got != gputypes.FilterModeLinear {
		t.Errorf("FilterLinear.hal() = %v, want linear", got)
	}
	if got := FilterNearest.hal(); got != gputypes.FilterModeNearest {
		t.Errorf("FilterNearest.hal() = %v, want nearest", got)
	}
}

func TestClearColor(t *testing.T) {
	got := clearColor([4]float32{0.25, 0.5, 0.75, 1})
	want := gputypes.Color{R: 0.25, G: 0.5, B: 0.75, A: 1}
	if got != want {
		t.Errorf("clearColor() = %v, want %v", got, want)
	}
}

func TestDrawZeroValue(t *testing.T) {
	var d Draw
	if d.Texture != 0 || d.IndexOffset != 0 || d.IndexCount != 0 {
		t.Errorf("zero Draw = %+v, want all zero", d)
	}
}

func TestMaxTextureDimension(t *testing.T) {
	// WebGPU default limit; CreateTexture and RenderToPixels reject above it.
	if maxTextureDimension != 8192 {
		t.Errorf("maxTextureDimension = %d, want 8192", maxTextureDimension)
	}
}
