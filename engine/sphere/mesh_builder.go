package sphere

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"
)

// sharedEdge maps an edge of a triangle to the number the same edge carries in
// the neighbor across it. The labeling of the base octahedron and of every child
// pattern keeps this pairing fixed for all rounds.
var sharedEdge = [3]int{1, 0, 2}

// cornerEdges lists, for each corner slot, the two parent edges that meet at it.
var cornerEdges = [3][2]int{{0, 2}, {1, 2}, {0, 1}}

// cornerSlots lists, for each corner child, the neighbor slots that receive the
// children found across cornerEdges[k][0] and cornerEdges[k][1], then the center.
var cornerSlots = [3][3]int{{0, 2, 1}, {1, 2, 0}, {0, 1, 2}}

// meshBuilder owns the vertex and triangle arenas of one build. Everything at or
// beyond vertCntOld / triCntOld was created by the round in progress.
type meshBuilder struct {
	order int

	verts []float32
	trigs []Triangle
	snaps []snapshot

	vertCnt, vertCntOld uint32
	triCnt, triCntOld   uint32
}

// newMeshBuilder allocates every buffer a build of the given order needs, so no
// round ever grows a slice.
func newMeshBuilder(order int) *meshBuilder {
	nTri := TriangleCount(order)
	return &meshBuilder{
		order: order,
		verts: make([]float32, 3*VertexCount(order)),
		trigs: make([]Triangle, nTri),
		snaps: make([]snapshot, max(nTri/4, baseTriangleCount)),
	}
}

// run builds the octahedron and subdivides it order times.
func (b *meshBuilder) run() error {
	b.buildBase()
	for round := 0; round < b.order; round++ {
		if err := b.subdivideOnce(); err != nil {
			return fmt.Errorf("subdivision round %d: %w", round+1, err)
		}
	}
	if int(b.vertCnt)*3 != len(b.verts) || int(b.triCnt) != len(b.trigs) {
		return fmt.Errorf("built %d vertices and %d triangles, expected %d and %d: %w",
			b.vertCnt, b.triCnt, len(b.verts)/3, len(b.trigs), ErrInconsistent)
	}
	return nil
}

// buildBase writes the six axis vertices and the eight octahedron faces. Triangles
// 0-3 touch +z (vertex 0), triangles 4-7 touch -z (vertex 1); each sees its two
// ring neighbors on edges 0 and 1 and its mirror on edge 2.
func (b *meshBuilder) buildBase() {
	copy(b.verts, []float32{
		0, 0, 1,
		0, 0, -1,
		1, 0, 0,
		0, 1, 0,
		-1, 0, 0,
		0, -1, 0,
	})

	for i := uint32(0); i < 4; i++ {
		prev := (i + 3) % 4
		next := (i + 1) % 4
		v0 := i + 2
		v1 := next + 2
		b.trigs[i].Set(prev, next, i+4, v0, v1, 0)
		b.trigs[i+4].Set(prev+4, next+4, i, v0, v1, 1)
	}

	b.vertCnt, b.vertCntOld = baseVertexCount, baseVertexCount
	b.triCnt, b.triCntOld = baseTriangleCount, baseTriangleCount
}

// subdivideOnce splits every triangle of the old set into four.
//
// Phase 1 gives each old edge exactly one midpoint vertex: the lower-numbered
// triangle of the pair creates it and the higher one copies it. Phase 2 appends
// three corner children per parent, turns the parent into the center child, and
// only after every parent has its children does it link the corners across old
// edges. Both phases read parents through the snapshots taken up front.
func (b *meshBuilder) subdivideOnce() error {
	old := b.triCntOld
	snaps := b.snaps[:old]
	for i := range snaps {
		snaps[i] = b.trigs[i].snapshot()
	}

	// Phase 1: midpoints.
	for i := uint32(0); i < old; i++ {
		s := snaps[i]
		tr := &b.trigs[i]
		for e := 0; e < 3; e++ {
			n := s.Neighbor(e)
			switch {
			case n >= old || n == i:
				return fmt.Errorf("triangle %d edge %d has neighbor %d: %w", i, e, n, ErrInconsistent)
			case n < i:
				back := sharedEdge[e]
				if snaps[n].Neighbor(back) != i {
					return fmt.Errorf("triangle %d edge %d: neighbor %d does not point back on edge %d: %w",
						i, e, n, back, ErrInconsistent)
				}
				if err := tr.SetIndex(e, b.trigs[n].index[back]); err != nil {
					return err
				}
			default:
				ends := edgeEnds[e]
				v, err := b.newVertex(s.Index(ends[0]), s.Index(ends[1]))
				if err != nil {
					return err
				}
				if err := tr.SetIndex(e, v); err != nil {
					return err
				}
			}
		}
	}

	// Phase 2a: children and their vertices.
	for i := uint32(0); i < old; i++ {
		if int(b.triCnt)+3 > len(b.trigs) {
			return fmt.Errorf("triangle arena full at %d: %w", b.triCnt, ErrInconsistent)
		}
		s := snaps[i]
		tr := &b.trigs[i]
		mid := tr.index
		c0, c1, c2 := b.triCnt, b.triCnt+1, b.triCnt+2
		b.triCnt += 3

		tr.neigh = [3]uint32{c0, c1, c2}
		b.trigs[c0].index = [3]uint32{s.Index(0), mid[2], mid[0]}
		b.trigs[c1].index = [3]uint32{mid[2], s.Index(1), mid[1]}
		b.trigs[c2].index = [3]uint32{mid[0], mid[1], s.Index(2)}
	}

	// Phase 2b: corner adjacency across the old edges.
	for i := uint32(0); i < old; i++ {
		for k := 0; k < 3; k++ {
			if err := b.linkCorner(i, k, snaps[i]); err != nil {
				return err
			}
		}
	}

	b.vertCntOld = b.vertCnt
	b.triCntOld = b.triCnt
	return nil
}

// linkCorner wires the neighbors of the k-th corner child of parent. The corner
// vertex of that child is the pivot: across each old edge meeting the corner,
// the neighbor's child holding the same pivot is the new neighbor.
func (b *meshBuilder) linkCorner(parent uint32, k int, s snapshot) error {
	childID := b.trigs[parent].neigh[k]
	child, err := b.triangle(childID)
	if err != nil {
		return err
	}
	pivot := child.index[k]
	slots := cornerSlots[k]

	for j, edge := range cornerEdges[k] {
		found, err := b.findChild(s.Neighbor(edge), pivot)
		if err != nil {
			return fmt.Errorf("corner %d of triangle %d: %w", k, parent, err)
		}
		if err := child.SetNeighbor(slots[j], found); err != nil {
			return err
		}
	}
	return child.SetNeighbor(slots[2], parent)
}

// findChild returns the child of an old triangle whose corner is pivot. Child m
// of any parent keeps its corner vertex in slot m.
func (b *meshBuilder) findChild(parent, pivot uint32) (uint32, error) {
	p, err := b.triangle(parent)
	if err != nil {
		return 0, err
	}
	for m := 0; m < 3; m++ {
		id := p.neigh[m]
		c, err := b.triangle(id)
		if err != nil {
			return 0, err
		}
		if c.index[m] == pivot {
			return id, nil
		}
	}
	return 0, fmt.Errorf("no child of triangle %d has corner %d: %w", parent, pivot, ErrInconsistent)
}

// triangle is the bounds-checked handle into the triangle arena.
func (b *meshBuilder) triangle(id uint32) (*Triangle, error) {
	if id >= b.triCnt {
		return nil, fmt.Errorf("triangle %d outside arena of %d: %w", id, b.triCnt, ErrInconsistent)
	}
	return &b.trigs[id], nil
}

// position reads vertex id as an r3 vector.
func (b *meshBuilder) position(id uint32) (r3.Vec, error) {
	if id >= b.vertCnt {
		return r3.Vec{}, fmt.Errorf("vertex %d outside arena of %d: %w", id, b.vertCnt, ErrInconsistent)
	}
	i := 3 * id
	return r3.Vec{X: float64(b.verts[i]), Y: float64(b.verts[i+1]), Z: float64(b.verts[i+2])}, nil
}

// newVertex appends the unit vector halfway between vertices j and k and returns its id.
func (b *meshBuilder) newVertex(j, k uint32) (uint32, error) {
	if int(b.vertCnt)*3 >= len(b.verts) {
		return 0, fmt.Errorf("vertex arena full at %d: %w", b.vertCnt, ErrInconsistent)
	}
	p, err := b.position(j)
	if err != nil {
		return 0, err
	}
	q, err := b.position(k)
	if err != nil {
		return 0, err
	}
	mid := r3.Unit(r3.Add(p, q))

	id := b.vertCnt
	i := 3 * id
	b.verts[i] = float32(mid.X)
	b.verts[i+1] = float32(mid.Y)
	b.verts[i+2] = float32(mid.Z)
	b.vertCnt++
	return id, nil
}

// indexBuffer flattens the triangle arena into winding-ordered index triples.
func (b *meshBuilder) indexBuffer() []uint32 {
	inds := make([]uint32, 0, 3*len(b.trigs))
	for i := range b.trigs {
		inds = append(inds, b.trigs[i].index[:]...)
	}
	return inds
}
