package scene

import (
	"encoding/binary"
	"errors"
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-sphere/common"
	"github.com/Carmen-Shannon/oxy-sphere/engine/sphere"
)

func newTestScene(t *testing.T, options ...SceneBuilderOption) Scene {
	t.Helper()
	s, err := NewScene(options...)
	if err != nil {
		t.Fatalf("NewScene: %v", err)
	}
	return s
}

func TestNewSceneBuildsInitialMesh(t *testing.T) {
	s := newTestScene(t, WithOrder(2))
	if s.Order() != 2 {
		t.Fatalf("Order() = %d, want 2", s.Order())
	}
	if !s.Active() || !s.Sphere().Active() {
		t.Fatal("scene and sphere should be active after NewScene")
	}

	m, ok := s.TakeMesh()
	if !ok {
		t.Fatal("TakeMesh() reported no mesh after NewScene")
	}
	if m.VertexCount() != sphere.VertexCount(2) {
		t.Errorf("VertexCount() = %d, want %d", m.VertexCount(), sphere.VertexCount(2))
	}
	if _, ok := s.TakeMesh(); ok {
		t.Error("second TakeMesh() should report no change")
	}
}

func TestNewSceneRejectsOrder(t *testing.T) {
	sp := sphere.NewSphere(sphere.WithMaxOrder(2))
	if _, err := NewScene(WithSphere(sp), WithOrder(3)); !errors.Is(err, sphere.ErrOrderOutOfRange) {
		t.Fatalf("got %v, want ErrOrderOutOfRange", err)
	}
}

func TestStepOrder(t *testing.T) {
	sp := sphere.NewSphere(sphere.WithMaxOrder(2))
	s := newTestScene(t, WithSphere(sp), WithOrder(1))
	s.TakeMesh()

	tests := []struct {
		delta   int
		want    int
		wantErr bool
	}{
		{+1, 2, false},
		{+1, 2, true},
		{-1, 1, false},
		{-1, 0, false},
		{-1, 0, true},
	}
	for i, tt := range tests {
		err := s.StepOrder(tt.delta)
		if tt.wantErr != (err != nil) {
			t.Fatalf("step %d: err = %v, wantErr %v", i, err, tt.wantErr)
		}
		if tt.wantErr && !errors.Is(err, sphere.ErrOrderOutOfRange) {
			t.Fatalf("step %d: got %v, want ErrOrderOutOfRange", i, err)
		}
		if s.Order() != tt.want {
			t.Fatalf("step %d: Order() = %d, want %d", i, s.Order(), tt.want)
		}

		m, changed := s.TakeMesh()
		if changed == tt.wantErr {
			t.Fatalf("step %d: TakeMesh changed = %v", i, changed)
		}
		if changed && m.Order() != tt.want {
			t.Fatalf("step %d: mesh order %d, want %d", i, m.Order(), tt.want)
		}
	}
}

func TestTickWrapsAndPauses(t *testing.T) {
	s := newTestScene(t, WithOrder(0), WithSpin(100))
	for range 4 {
		s.Tick()
	}
	if got := s.Angle(); math.Abs(float64(got-40)) > 1e-4 {
		t.Errorf("Angle() = %v, want 40", got)
	}

	s.TogglePause()
	if !s.Paused() {
		t.Fatal("Paused() = false after toggle")
	}
	s.Tick()
	if got := s.Angle(); math.Abs(float64(got-40)) > 1e-4 {
		t.Errorf("paused Angle() = %v, want 40", got)
	}

	s.TogglePause()
	s.Tick()
	if got := s.Angle(); math.Abs(float64(got-140)) > 1e-4 {
		t.Errorf("Angle() = %v, want 140", got)
	}
}

func TestTickNegativeSpin(t *testing.T) {
	s := newTestScene(t, WithOrder(0), WithSpin(-90))
	s.Tick()
	if got := s.Angle(); got != 270 {
		t.Errorf("Angle() = %v, want 270", got)
	}
}

func TestZoomClamps(t *testing.T) {
	s := newTestScene(t, WithOrder(0))
	s.Zoom(100)
	if got := s.EyeDistance(); got != minEyeDistance {
		t.Errorf("EyeDistance() = %v, want %v", got, float32(minEyeDistance))
	}
	s.Zoom(-100)
	if got := s.EyeDistance(); got != maxEyeDistance {
		t.Errorf("EyeDistance() = %v, want %v", got, float32(maxEyeDistance))
	}
}

func TestUniform(t *testing.T) {
	color := [3]float32{0.3, 0.6, 0.9}
	s := newTestScene(t, WithOrder(0), WithSpin(90), WithColor(color))
	s.Tick()

	u := s.Uniform()
	if u.Color != color {
		t.Errorf("Color = %v, want %v", u.Color, color)
	}

	// A quarter turn carries +Z onto +X.
	p := common.TransformPoint(u.Rotate[:], 0, 0, 1)
	if math.Abs(float64(p[0]-1)) > 1e-5 || math.Abs(float64(p[2])) > 1e-5 {
		t.Errorf("rotated +Z = %v, want +X", p)
	}

	// The sphere center projects to the middle of the screen, inside the depth range.
	c := common.TransformPoint(u.ViewProj[:], 0, 0, 0)
	if c[3] <= 0 {
		t.Fatalf("center behind the eye: %v", c)
	}
	if x, y, z := c[0]/c[3], c[1]/c[3], c[2]/c[3]; math.Abs(float64(x)) > 1e-5 || math.Abs(float64(y)) > 1e-5 || z <= 0 || z >= 1 {
		t.Errorf("center in NDC = (%v, %v, %v)", x, y, z)
	}
}

func TestSetAspectIgnoresInvalid(t *testing.T) {
	s := newTestScene(t, WithOrder(0))
	before := s.Uniform()
	s.SetAspect(0)
	s.SetAspect(-2)
	if s.Uniform().ViewProj != before.ViewProj {
		t.Error("invalid aspect changed the projection")
	}
	s.SetAspect(2)
	if s.Uniform().ViewProj == before.ViewProj {
		t.Error("SetAspect(2) did not change the projection")
	}
}

func TestUniformMarshal(t *testing.T) {
	var u GPUSceneUniform
	if u.Size() != 144 {
		t.Fatalf("Size() = %d, want 144", u.Size())
	}
	for i := range 16 {
		u.ViewProj[i] = float32(i)
		u.Rotate[i] = float32(100 + i)
	}
	u.Color = [3]float32{0.25, 0.5, 0.75}

	buf := u.Marshal()
	if len(buf) != 144 {
		t.Fatalf("len = %d, want 144", len(buf))
	}
	read := func(off int) float32 {
		return math.Float32frombits(binary.LittleEndian.Uint32(buf[off:]))
	}
	if read(4*5) != 5 || read(64+4*3) != 103 {
		t.Error("matrix offsets are wrong")
	}
	if read(128) != 0.25 || read(136) != 0.75 || read(140) != 0 {
		t.Error("color offsets are wrong")
	}
}

func TestRequeueMesh(t *testing.T) {
	s := newTestScene(t, WithOrder(1))
	first, ok := s.TakeMesh()
	if !ok {
		t.Fatal("TakeMesh() reported no mesh after NewScene")
	}

	// A failed upload hands the same mesh back on the next frame.
	s.RequeueMesh()
	again, ok := s.TakeMesh()
	if !ok {
		t.Fatal("TakeMesh() after RequeueMesh reported no change")
	}
	if again != first {
		t.Error("RequeueMesh offered a different mesh")
	}
	if _, ok := s.TakeMesh(); ok {
		t.Error("requeued mesh offered twice")
	}

	s.Sphere().Release()
	s.RequeueMesh()
	if _, ok := s.TakeMesh(); ok {
		t.Error("RequeueMesh offered a mesh after Release")
	}
}
