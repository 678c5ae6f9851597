package sphere

import "fmt"

// Triangle is a fixed-topology mesh face: three vertex ids in winding order and
// the three triangles sharing its edges.
//
// Edge e is formed by the vertex pairs (0,2), (1,2) and (0,1) for e = 0, 1, 2,
// and Neighbor(e) is the triangle on the other side of edge e.
type Triangle struct {
	index [3]uint32
	neigh [3]uint32
}

// edgeEnds maps an edge number to the two vertex slots that bound it.
var edgeEnds = [3][2]int{{0, 2}, {1, 2}, {0, 1}}

// Set initializes the neighbor and vertex ids of the triangle.
//
// Parameters:
//   - t0, t1, t2: the triangles sharing edges 0, 1 and 2
//   - v0, v1, v2: the vertex ids in winding order
func (t *Triangle) Set(t0, t1, t2, v0, v1, v2 uint32) {
	t.neigh = [3]uint32{t0, t1, t2}
	t.index = [3]uint32{v0, v1, v2}
}

// Index returns the vertex id stored in slot i.
//
// Parameters:
//   - i: the slot, 0 to 2
//
// Returns:
//   - uint32: the vertex id
//   - error: ErrIndexOutOfRange if i >= 3
func (t *Triangle) Index(i int) (uint32, error) {
	if err := checkSlot(i); err != nil {
		return 0, err
	}
	return t.index[i], nil
}

// SetIndex stores a vertex id in slot i.
//
// Parameters:
//   - i: the slot, 0 to 2
//   - v: the vertex id
//
// Returns:
//   - error: ErrIndexOutOfRange if i >= 3
func (t *Triangle) SetIndex(i int, v uint32) error {
	if err := checkSlot(i); err != nil {
		return err
	}
	t.index[i] = v
	return nil
}

// Neighbor returns the triangle id sharing edge i.
//
// Parameters:
//   - i: the edge, 0 to 2
//
// Returns:
//   - uint32: the neighboring triangle id
//   - error: ErrIndexOutOfRange if i >= 3
func (t *Triangle) Neighbor(i int) (uint32, error) {
	if err := checkSlot(i); err != nil {
		return 0, err
	}
	return t.neigh[i], nil
}

// SetNeighbor stores the triangle id sharing edge i.
//
// Parameters:
//   - i: the edge, 0 to 2
//   - n: the neighboring triangle id
//
// Returns:
//   - error: ErrIndexOutOfRange if i >= 3
func (t *Triangle) SetNeighbor(i int, n uint32) error {
	if err := checkSlot(i); err != nil {
		return err
	}
	t.neigh[i] = n
	return nil
}

// Indices returns a copy of the three vertex ids.
func (t *Triangle) Indices() [3]uint32 {
	return t.index
}

// Neighbors returns a copy of the three neighbor ids.
func (t *Triangle) Neighbors() [3]uint32 {
	return t.neigh
}

// Edge returns the two vertex ids bounding edge e.
//
// Parameters:
//   - e: the edge, 0 to 2
//
// Returns:
//   - [2]uint32: the edge's end points
//   - error: ErrIndexOutOfRange if e >= 3
func (t *Triangle) Edge(e int) ([2]uint32, error) {
	if err := checkSlot(e); err != nil {
		return [2]uint32{}, err
	}
	ends := edgeEnds[e]
	return [2]uint32{t.index[ends[0]], t.index[ends[1]]}, nil
}

// snapshot captures the triangle's state before a subdivision round mutates it.
func (t *Triangle) snapshot() snapshot {
	return snapshot{index: t.index, neigh: t.neigh}
}

// snapshot is the immutable pre-round record of one triangle. A round reads
// parents through it while rewriting the live triangles into their children.
type snapshot struct {
	index [3]uint32
	neigh [3]uint32
}

// Index returns the pre-round vertex id in slot i.
func (s snapshot) Index(i int) uint32 {
	return s.index[i]
}

// Neighbor returns the pre-round neighbor across edge i.
func (s snapshot) Neighbor(i int) uint32 {
	return s.neigh[i]
}

func checkSlot(i int) error {
	if i < 0 || i >= 3 {
		return fmt.Errorf("slot %d: %w", i, ErrIndexOutOfRange)
	}
	return nil
}
