package sphere

import (
	"errors"
	"math"
	"slices"
	"testing"
)

const unitTolerance = 1e-5

func mustBuild(t *testing.T, order int) Mesh {
	t.Helper()
	m, err := Build(order)
	if err != nil {
		t.Fatalf("Build(%d): %v", order, err)
	}
	return m
}

func TestBuildBaseOctahedron(t *testing.T) {
	m := mustBuild(t, 0)

	wantVerts := []float32{
		0, 0, 1,
		0, 0, -1,
		1, 0, 0,
		0, 1, 0,
		-1, 0, 0,
		0, -1, 0,
	}
	if !slices.Equal(m.Vertices(), wantVerts) {
		t.Errorf("Vertices() = %v, want %v", m.Vertices(), wantVerts)
	}

	wantInds := []uint32{
		2, 3, 0, 3, 4, 0, 4, 5, 0, 5, 2, 0,
		2, 3, 1, 3, 4, 1, 4, 5, 1, 5, 2, 1,
	}
	if !slices.Equal(m.Indices(), wantInds) {
		t.Errorf("Indices() = %v, want %v", m.Indices(), wantInds)
	}
	if m.IndexCount() != 24 {
		t.Errorf("IndexCount() = %d, want 24", m.IndexCount())
	}
}

func TestBuildSizes(t *testing.T) {
	for order := 0; order <= DefaultMaxOrder; order++ {
		m := mustBuild(t, order)
		if m.Order() != order {
			t.Errorf("Order() = %d, want %d", m.Order(), order)
		}
		if got, want := m.VertexCount(), VertexCount(order); got != want {
			t.Errorf("order %d: VertexCount() = %d, want %d", order, got, want)
		}
		if got, want := m.TriangleCount(), TriangleCount(order); got != want {
			t.Errorf("order %d: TriangleCount() = %d, want %d", order, got, want)
		}
		if got, want := len(m.Vertices()), 3*VertexCount(order); got != want {
			t.Errorf("order %d: len(Vertices()) = %d, want %d", order, got, want)
		}
		if got, want := int(m.IndexCount()), 3*TriangleCount(order); got != want {
			t.Errorf("order %d: IndexCount() = %d, want %d", order, got, want)
		}
		for _, idx := range m.Indices() {
			if int(idx) >= m.VertexCount() {
				t.Fatalf("order %d: index %d outside %d vertices", order, idx, m.VertexCount())
			}
		}
	}
}

func TestOrderOneIndexCount(t *testing.T) {
	m := mustBuild(t, 1)
	if m.IndexCount() != 96 {
		t.Errorf("IndexCount() = %d, want 96", m.IndexCount())
	}
	if m.VertexCount() != 18 {
		t.Errorf("VertexCount() = %d, want 18", m.VertexCount())
	}
}

func TestVerticesOnUnitSphere(t *testing.T) {
	for order := 0; order <= 5; order++ {
		v := mustBuild(t, order).Vertices()
		for i := 0; i < len(v); i += 3 {
			x, y, z := float64(v[i]), float64(v[i+1]), float64(v[i+2])
			if r := math.Sqrt(x*x + y*y + z*z); math.Abs(r-1) > unitTolerance {
				t.Fatalf("order %d vertex %d: |v| = %v", order, i/3, r)
			}
		}
	}
}

func TestAdjacencySymmetric(t *testing.T) {
	for order := 0; order <= 4; order++ {
		m := mustBuild(t, order)
		for id := 0; id < m.TriangleCount(); id++ {
			tr, err := m.Triangle(id)
			if err != nil {
				t.Fatal(err)
			}
			for e := 0; e < 3; e++ {
				n, _ := tr.Neighbor(e)
				if int(n) >= m.TriangleCount() || int(n) == id {
					t.Fatalf("order %d triangle %d edge %d: bad neighbor %d", order, id, e, n)
				}
				nt, err := m.Triangle(int(n))
				if err != nil {
					t.Fatal(err)
				}

				back := sharedEdge[e]
				if got, _ := nt.Neighbor(back); int(got) != id {
					t.Fatalf("order %d: triangle %d edge %d -> %d, but %d edge %d -> %d",
						order, id, e, n, n, back, got)
				}

				mine, _ := tr.Edge(e)
				theirs, _ := nt.Edge(back)
				if !sameEdge(mine, theirs) {
					t.Fatalf("order %d: triangle %d edge %d %v does not match neighbor %d edge %d %v",
						order, id, e, mine, n, back, theirs)
				}
			}
		}
	}
}

func TestEdgesSharedOnce(t *testing.T) {
	for order := 0; order <= 4; order++ {
		m := mustBuild(t, order)
		edges := make(map[[2]uint32]int)
		inds := m.Indices()
		for i := 0; i < len(inds); i += 3 {
			a, b, c := inds[i], inds[i+1], inds[i+2]
			edges[edgeKey(a, b)]++
			edges[edgeKey(b, c)]++
			edges[edgeKey(c, a)]++
		}
		for k, n := range edges {
			if n != 2 {
				t.Fatalf("order %d: edge %v used by %d triangles", order, k, n)
			}
		}

		// Closed genus-0 surface.
		if euler := m.VertexCount() - len(edges) + m.TriangleCount(); euler != 2 {
			t.Errorf("order %d: V-E+F = %d", order, euler)
		}
		if order > 0 {
			prevEdges := 3 * TriangleCount(order-1) / 2
			if added := m.VertexCount() - VertexCount(order-1); added != prevEdges {
				t.Errorf("order %d: round added %d vertices for %d old edges", order, added, prevEdges)
			}
		}
	}
}

func TestNoDuplicateVertices(t *testing.T) {
	for order := 0; order <= 4; order++ {
		v := mustBuild(t, order).Vertices()
		seen := make(map[[3]float32]int, len(v)/3)
		for i := 0; i < len(v); i += 3 {
			p := [3]float32{v[i], v[i+1], v[i+2]}
			if prev, ok := seen[p]; ok {
				t.Fatalf("order %d: vertices %d and %d coincide at %v", order, prev, i/3, p)
			}
			seen[p] = i / 3
		}
	}
}

func TestBuildDeterministic(t *testing.T) {
	a := mustBuild(t, 4)
	b := mustBuild(t, 4)
	if !slices.Equal(a.Vertices(), b.Vertices()) {
		t.Error("vertex buffers differ between builds")
	}
	if !slices.Equal(a.Indices(), b.Indices()) {
		t.Error("index buffers differ between builds")
	}
}

func TestBuildRejectsOrder(t *testing.T) {
	for _, order := range []int{-1, MaxSupportedOrder + 1} {
		if _, err := Build(order); !errors.Is(err, ErrOrderOutOfRange) {
			t.Errorf("Build(%d): got %v, want ErrOrderOutOfRange", order, err)
		}
	}
}

func TestMeshTriangleBounds(t *testing.T) {
	m := mustBuild(t, 0)
	for _, id := range []int{-1, 8} {
		if _, err := m.Triangle(id); !errors.Is(err, ErrIndexOutOfRange) {
			t.Errorf("Triangle(%d): got %v, want ErrIndexOutOfRange", id, err)
		}
	}
}

func TestVerticesWithNormals(t *testing.T) {
	m := mustBuild(t, 2)
	pos := m.Vertices()
	vn, err := m.VerticesWithNormals()
	if err != nil {
		t.Fatal(err)
	}
	if len(vn) != 2*len(pos) {
		t.Fatalf("len = %d, want %d", len(vn), 2*len(pos))
	}
	for i := 0; i < m.VertexCount(); i++ {
		p := pos[3*i : 3*i+3]
		if !slices.Equal(vn[6*i:6*i+3], p) || !slices.Equal(vn[6*i+3:6*i+6], p) {
			t.Fatalf("vertex %d: %v, want position and normal %v", i, vn[6*i:6*i+6], p)
		}
	}
}

func TestInterleaveNormalsRejectsRaggedBuffer(t *testing.T) {
	if _, err := interleaveNormals(make([]float32, 4)); !errors.Is(err, ErrInconsistent) {
		t.Errorf("got %v, want ErrInconsistent", err)
	}
}

func TestSubdivideDetectsBrokenAdjacency(t *testing.T) {
	b := newMeshBuilder(1)
	b.buildBase()
	// Triangle 0 now claims 2 across edge 0, which 3 still believes it owns.
	b.trigs[0].neigh[0] = 2

	if err := b.subdivideOnce(); !errors.Is(err, ErrInconsistent) {
		t.Errorf("got %v, want ErrInconsistent", err)
	}
}

func TestFindChildMissingPivot(t *testing.T) {
	b := newMeshBuilder(1)
	b.buildBase()
	if _, err := b.findChild(0, 99); !errors.Is(err, ErrInconsistent) {
		t.Errorf("got %v, want ErrInconsistent", err)
	}
	if _, err := b.triangle(8); !errors.Is(err, ErrInconsistent) {
		t.Errorf("triangle(8): got %v, want ErrInconsistent", err)
	}
}

func sameEdge(a, b [2]uint32) bool {
	return edgeKey(a[0], a[1]) == edgeKey(b[0], b[1])
}

func edgeKey(a, b uint32) [2]uint32 {
	if a > b {
		a, b = b, a
	}
	return [2]uint32{a, b}
}

// The northern half of the octahedron and its descendants wind counter-clockwise seen
// from outside, the southern half clockwise. Renderers and exporters rely on this split.
func TestWindingSplitsByHemisphere(t *testing.T) {
	for _, order := range []int{0, 2} {
		m := mustBuild(t, order)
		v := m.Vertices()
		at := func(i uint32) [3]float64 {
			return [3]float64{float64(v[3*i]), float64(v[3*i+1]), float64(v[3*i+2])}
		}
		inds := m.Indices()
		clockwise := 0
		for k := 0; k < len(inds); k += 3 {
			a, b, c := at(inds[k]), at(inds[k+1]), at(inds[k+2])
			u := [3]float64{b[0] - a[0], b[1] - a[1], b[2] - a[2]}
			w := [3]float64{c[0] - a[0], c[1] - a[1], c[2] - a[2]}
			n := [3]float64{u[1]*w[2] - u[2]*w[1], u[2]*w[0] - u[0]*w[2], u[0]*w[1] - u[1]*w[0]}
			centroid := [3]float64{a[0] + b[0] + c[0], a[1] + b[1] + c[1], a[2] + b[2] + c[2]}
			if n[0]*centroid[0]+n[1]*centroid[1]+n[2]*centroid[2] < 0 {
				clockwise++
			}
		}
		if want := TriangleCount(order) / 2; clockwise != want {
			t.Errorf("order %d: %d clockwise triangles, want %d", order, clockwise, want)
		}
	}
}
