package sphere

import (
	"errors"
	"testing"
)

func TestTriangleSetAndRead(t *testing.T) {
	var tr Triangle
	tr.Set(10, 11, 12, 1, 2, 3)

	if got := tr.Indices(); got != [3]uint32{1, 2, 3} {
		t.Errorf("Indices() = %v", got)
	}
	if got := tr.Neighbors(); got != [3]uint32{10, 11, 12} {
		t.Errorf("Neighbors() = %v", got)
	}
	for i := 0; i < 3; i++ {
		v, err := tr.Index(i)
		if err != nil || v != uint32(i+1) {
			t.Errorf("Index(%d) = %d, %v", i, v, err)
		}
		n, err := tr.Neighbor(i)
		if err != nil || n != uint32(i+10) {
			t.Errorf("Neighbor(%d) = %d, %v", i, n, err)
		}
	}

	if err := tr.SetIndex(1, 7); err != nil {
		t.Fatal(err)
	}
	if err := tr.SetNeighbor(2, 9); err != nil {
		t.Fatal(err)
	}
	if tr.Indices() != [3]uint32{1, 7, 3} || tr.Neighbors() != [3]uint32{10, 11, 9} {
		t.Errorf("after mutation: %v %v", tr.Indices(), tr.Neighbors())
	}
}

func TestTriangleEdges(t *testing.T) {
	var tr Triangle
	tr.Set(0, 0, 0, 4, 5, 6)

	want := [3][2]uint32{{4, 6}, {5, 6}, {4, 5}}
	for e, w := range want {
		got, err := tr.Edge(e)
		if err != nil {
			t.Fatal(err)
		}
		if got != w {
			t.Errorf("Edge(%d) = %v, want %v", e, got, w)
		}
	}
}

func TestTriangleBounds(t *testing.T) {
	var tr Triangle
	checks := map[string]error{}
	_, checks["Index(3)"] = tr.Index(3)
	_, checks["Neighbor(-1)"] = tr.Neighbor(-1)
	_, checks["Edge(5)"] = tr.Edge(5)
	checks["SetIndex(3)"] = tr.SetIndex(3, 1)
	checks["SetNeighbor(4)"] = tr.SetNeighbor(4, 1)

	for name, err := range checks {
		if !errors.Is(err, ErrIndexOutOfRange) {
			t.Errorf("%s: got %v, want ErrIndexOutOfRange", name, err)
		}
	}
}

func TestSnapshotIsDetached(t *testing.T) {
	var tr Triangle
	tr.Set(1, 2, 3, 4, 5, 6)
	s := tr.snapshot()

	tr.Set(7, 8, 9, 10, 11, 12)
	for i := 0; i < 3; i++ {
		if s.Index(i) != uint32(i+4) || s.Neighbor(i) != uint32(i+1) {
			t.Fatalf("snapshot changed with the triangle: %+v", s)
		}
	}
}
