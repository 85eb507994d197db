package sprite

import (
	"encoding/binary"
	"math"
	"testing"
)

func TestIdentity(t *testing.T) {
	m := Identity()
	points := []Vec2{
		V2(0, 0),
		V2(1, 2),
		V2(-3.5, 400),
	}
	for _, p := range points {
		if got := m.TransformPoint(p); !got.Approx(p, 1e-6) {
			t.Errorf("Identity().TransformPoint(%v) = %v, want %v", p, got, p)
		}
	}
}

func TestOrtho2D_Corners(t *testing.T) {
	const width, height = 800, 600
	m := Ortho2D(width, height)

	tests := []struct {
		name   string
		p      Vec2
		expect Vec2
	}{
		{"top-left", V2(0, 0), V2(-1, 1)},
		{"top-right", V2(width, 0), V2(1, 1)},
		{"bottom-left", V2(0, height), V2(-1, -1)},
		{"bottom-right", V2(width, height), V2(1, -1)},
		{"center", V2(width / 2, height / 2), V2(0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := m.TransformPoint(tt.p)
			if !got.Approx(tt.expect, 1e-6) {
				t.Errorf("Ortho2D(%v, %v).TransformPoint(%v) = %v, want %v",
					width, height, tt.p, got, tt.expect)
			}
		})
	}
}

func TestOrtho2D_WComponent(t *testing.T) {
	m := Ortho2D(640, 480)
	out := m.MulVec4([4]float32{100, 200, 0, 1})
	if out[3] != 1 {
		t.Errorf("w = %v, want 1 (orthographic projection is affine)", out[3])
	}
	if out[2] != 0 {
		t.Errorf("z = %v, want 0 (2D geometry stays on the near plane)", out[2])
	}
}

func TestTranslate(t *testing.T) {
	m := Translate(10, -5)
	got := m.TransformPoint(V2(1, 2))
	if !got.Approx(V2(11, -3), 1e-6) {
		t.Errorf("Translate(10, -5).TransformPoint(1, 2) = %v, want (11, -3)", got)
	}
}

func TestScale(t *testing.T) {
	m := Scale(2, 3)
	got := m.TransformPoint(V2(4, 5))
	if !got.Approx(V2(8, 15), 1e-6) {
		t.Errorf("Scale(2, 3).TransformPoint(4, 5) = %v, want (8, 15)", got)
	}
}

func TestRotate(t *testing.T) {
	tests := []struct {
		name   string
		angle  float32
		p      Vec2
		expect Vec2
	}{
		{"zero", 0, V2(1, 0), V2(1, 0)},
		{"quarter turn", math.Pi / 2, V2(1, 0), V2(0, 1)},
		{"half turn", math.Pi, V2(1, 0), V2(-1, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Rotate(tt.angle).TransformPoint(tt.p)
			if !got.Approx(tt.expect, 1e-6) {
				t.Errorf("Rotate(%v).TransformPoint(%v) = %v, want %v", tt.angle, tt.p, got, tt.expect)
			}
		})
	}
}

func TestMat4_Mul(t *testing.T) {
	t.Run("identity is neutral", func(t *testing.T) {
		m := Translate(3, 4).Mul(Scale(2, 2))
		if got := m.Mul(Identity()); !got.Approx(m, 1e-6) {
			t.Errorf("m.Mul(Identity()) = %v, want %v", got, m)
		}
		if got := Identity().Mul(m); !got.Approx(m, 1e-6) {
			t.Errorf("Identity().Mul(m) = %v, want %v", got, m)
		}
	})

	t.Run("applies right operand first", func(t *testing.T) {
		// Scale then translate: p=(1,1) -> (2,2) -> (12,2).
		m := Translate(10, 0).Mul(Scale(2, 2))
		got := m.TransformPoint(V2(1, 1))
		if !got.Approx(V2(12, 2), 1e-6) {
			t.Errorf("TransformPoint = %v, want (12, 2)", got)
		}
	})

	t.Run("matches separate application", func(t *testing.T) {
		a := Rotate(0.3)
		b := Translate(5, 7)
		p := V2(2, -3)

		combined := a.Mul(b).TransformPoint(p)
		separate := a.TransformPoint(b.TransformPoint(p))
		if !combined.Approx(separate, 1e-5) {
			t.Errorf("a.Mul(b) applied = %v, separate = %v", combined, separate)
		}
	})

	t.Run("associative", func(t *testing.T) {
		a := Ortho2D(800, 600)
		b := Translate(100, 50)
		c := Rotate(1.2)

		left := a.Mul(b).Mul(c)
		right := a.Mul(b.Mul(c))
		if !left.Approx(right, 1e-5) {
			t.Errorf("(a*b)*c = %v, a*(b*c) = %v", left, right)
		}
	})
}

func TestMat4_AppendBytes(t *testing.T) {
	m := Identity()
	buf := m.AppendBytes(nil)
	if len(buf) != 64 {
		t.Fatalf("AppendBytes length = %d, want 64", len(buf))
	}

	// Column-major little-endian: element i occupies bytes [i*4, i*4+4).
	for i, f := range m {
		bits := binary.LittleEndian.Uint32(buf[i*4:])
		if got := math.Float32frombits(bits); got != f {
			t.Errorf("element %d = %v, want %v", i, got, f)
		}
	}
}

func TestMat4_AppendBytes_Grows(t *testing.T) {
	prefix := []byte{0xAA, 0xBB}
	buf := Ortho2D(100, 100).AppendBytes(prefix)
	if len(buf) != 2+64 {
		t.Fatalf("length = %d, want 66", len(buf))
	}
	if buf[0] != 0xAA || buf[1] != 0xBB {
		t.Error("AppendBytes must preserve existing bytes")
	}
}

func BenchmarkMat4_Mul(b *testing.B) {
	m := Ortho2D(1920, 1080)
	n := Translate(100, 200).Mul(Rotate(0.5))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = m.Mul(n)
	}
}
