package common

import (
	"math"
	"testing"
)

const eps = 1e-5

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) < eps
}

func TestMul4Identity(t *testing.T) {
	id := make([]float32, 16)
	Identity(id)
	m := make([]float32, 16)
	for i := range m {
		m[i] = float32(i + 1)
	}
	out := make([]float32, 16)
	Mul4(out, id, m)
	for i := range m {
		if out[i] != m[i] {
			t.Fatalf("I*M differs at %d: %v vs %v", i, out[i], m[i])
		}
	}
	Mul4(out, m, id)
	for i := range m {
		if out[i] != m[i] {
			t.Fatalf("M*I differs at %d: %v vs %v", i, out[i], m[i])
		}
	}
}

func TestRotate(t *testing.T) {
	tests := []struct {
		name    string
		rotate  func([]float32, float32)
		degrees float32
		in      [3]float32
		want    [3]float32
	}{
		{"y 90 moves +z to +x", RotateY, 90, [3]float32{0, 0, 1}, [3]float32{1, 0, 0}},
		{"y 180 flips x", RotateY, 180, [3]float32{1, 0, 0}, [3]float32{-1, 0, 0}},
		{"y keeps the axis", RotateY, 33, [3]float32{0, 1, 0}, [3]float32{0, 1, 0}},
		{"zero is identity", RotateY, 0, [3]float32{0.3, 0.4, 0.5}, [3]float32{0.3, 0.4, 0.5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := make([]float32, 16)
			tt.rotate(m, tt.degrees)
			got := TransformPoint(m, tt.in[0], tt.in[1], tt.in[2])
			for i := 0; i < 3; i++ {
				if !near(got[i], tt.want[i]) {
					t.Fatalf("got %v, want %v", got, tt.want)
				}
			}
			if got[3] != 1 {
				t.Errorf("w = %v, want 1", got[3])
			}
		})
	}
}

func TestPerspectiveDepthRange(t *testing.T) {
	m := make([]float32, 16)
	Perspective(m, Radians(30), 4.0/3.0, 0.1, 180)

	for _, tc := range []struct {
		z    float32
		want float32
	}{
		{-0.1, 0},
		{-180, 1},
	} {
		p := TransformPoint(m, 0, 0, tc.z)
		if d := p[2] / p[3]; math.Abs(float64(d-tc.want)) > 1e-4 {
			t.Errorf("depth at z=%v: %v, want %v", tc.z, d, tc.want)
		}
	}
}

func TestLookAtMovesEyeToOrigin(t *testing.T) {
	m := make([]float32, 16)
	LookAt(m, 0, 0, 4, 0, 0, 0, 0, 1, 0)
	p := TransformPoint(m, 0, 0, 4)
	for i := 0; i < 3; i++ {
		if !near(p[i], 0) {
			t.Fatalf("eye maps to %v", p)
		}
	}
	p = TransformPoint(m, 0, 0, 0)
	if !near(p[2], -4) {
		t.Errorf("target maps to %v, want z=-4", p)
	}
}

func TestSliceToBytes(t *testing.T) {
	if SliceToBytes([]float32{}) != nil {
		t.Error("empty slice should give nil")
	}
	if got := len(SliceToBytes([]float32{1, 2, 3})); got != 12 {
		t.Errorf("len = %d, want 12", got)
	}
	if got := len(SliceToBytes([]uint32{1, 2})); got != 8 {
		t.Errorf("len = %d, want 8", got)
	}
}

func TestDigitValue(t *testing.T) {
	if d, ok := DigitValue(Key7); !ok || d != 7 {
		t.Errorf("DigitValue(Key7) = %d, %v", d, ok)
	}
	if _, ok := DigitValue(KeyEsc); ok {
		t.Error("Escape is not a digit")
	}
}

func TestCoalesce(t *testing.T) {
	if got := Coalesce("", "", "b", "c"); got != "b" {
		t.Errorf("Coalesce = %q, want b", got)
	}
	if got := Coalesce(0, 0); got != 0 {
		t.Errorf("Coalesce = %d, want 0", got)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		v, lo, hi, want float32
	}{
		{5, 1.5, 20, 5},
		{-3, 1.5, 20, 1.5},
		{40, 1.5, 20, 20},
		{1, 3, 2, 2},
	}
	for _, tt := range tests {
		if got := Clamp(tt.v, tt.lo, tt.hi); got != tt.want {
			t.Errorf("Clamp(%v, %v, %v) = %v, want %v", tt.v, tt.lo, tt.hi, got, tt.want)
		}
	}
	if got := Clamp(13, 0, 12); got != 12 {
		t.Errorf("Clamp(13, 0, 12) = %d, want 12", got)
	}
}
