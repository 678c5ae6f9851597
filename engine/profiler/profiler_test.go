package profiler

import (
	"testing"
	"time"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time { return c.t }

func TestTickReportsAtInterval(t *testing.T) {
	clock := &fakeClock{t: time.Unix(0, 0)}
	var reports []Stats
	p := NewProfiler(
		WithClock(clock.now),
		WithInterval(2*time.Second),
		WithReporter(func(s Stats) { reports = append(reports, s) }),
	)

	for range 3 {
		clock.t = clock.t.Add(500 * time.Millisecond)
		if p.Tick(512, 3) {
			t.Fatal("reported before the interval elapsed")
		}
	}
	if _, ok := p.Last(); ok {
		t.Fatal("Last() reported stats before the first report")
	}

	clock.t = clock.t.Add(500 * time.Millisecond)
	if !p.Tick(512, 3) {
		t.Fatal("no report after the interval elapsed")
	}
	if len(reports) != 1 {
		t.Fatalf("got %d reports, want 1", len(reports))
	}

	s := reports[0]
	if s.FramesRendered != 4 || s.FPS != 2 {
		t.Errorf("frames %d fps %v, want 4 and 2", s.FramesRendered, s.FPS)
	}
	if s.TrianglesPerS != 1024 || s.Order != 3 {
		t.Errorf("tris/s %v order %d, want 1024 and 3", s.TrianglesPerS, s.Order)
	}
	if last, ok := p.Last(); !ok || last != s {
		t.Errorf("Last() = %+v, %v", last, ok)
	}
}

func TestTickResetsCounters(t *testing.T) {
	clock := &fakeClock{t: time.Unix(0, 0)}
	var got Stats
	p := NewProfiler(WithClock(clock.now), WithReporter(func(s Stats) { got = s }))

	clock.t = clock.t.Add(time.Second)
	p.Tick(8, 0)

	clock.t = clock.t.Add(time.Second)
	p.Tick(32, 1)
	if got.FramesRendered != 1 || got.TrianglesPerS != 32 || got.Order != 1 {
		t.Errorf("second window = %+v", got)
	}
}

func TestOptionsIgnoreInvalid(t *testing.T) {
	p := NewProfiler(WithInterval(0), WithClock(nil), WithReporter(nil))
	if p.updateInterval != time.Second || p.now == nil || p.report == nil {
		t.Error("invalid options replaced defaults")
	}
}
