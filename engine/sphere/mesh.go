package sphere

import (
	"fmt"
	"sync"
)

// mesh is the implementation of the Mesh interface.
type mesh struct {
	order     int
	vertices  []float32
	triangles []Triangle
	indices   []uint32

	normalsOnce sync.Once
	withNormals []float32
	normalsErr  error
}

// Mesh is the result of one sphere build. It exclusively owns its vertex and triangle
// data; slices returned by its accessors are borrowed views and must not be modified.
// A Mesh is immutable once Build returns and is safe for concurrent readers.
type Mesh interface {
	// Order returns the subdivision order the mesh was built with.
	//
	// Returns:
	//   - int: the subdivision order
	Order() int

	// VertexCount returns the number of vertices in the mesh.
	//
	// Returns:
	//   - int: the vertex count
	VertexCount() int

	// TriangleCount returns the number of triangles in the mesh.
	//
	// Returns:
	//   - int: the triangle count
	TriangleCount() int

	// Vertices returns the flat vertex positions, three float32 components per vertex.
	//
	// Returns:
	//   - []float32: the position buffer, length 3 × VertexCount
	Vertices() []float32

	// VerticesWithNormals returns an interleaved position/normal buffer. On a unit sphere
	// centered at the origin the normal equals the position, so each vertex is written twice.
	//
	// Returns:
	//   - []float32: the interleaved buffer, length 6 × VertexCount
	//   - error: ErrInconsistent if the position buffer is not a multiple of 3
	VerticesWithNormals() ([]float32, error)

	// Indices returns the triangle index buffer, one winding-ordered triple per triangle.
	//
	// Returns:
	//   - []uint32: the index buffer, length 3 × TriangleCount
	Indices() []uint32

	// IndexCount returns the length of the index buffer.
	//
	// Returns:
	//   - uint32: 3 × TriangleCount
	IndexCount() uint32

	// Triangle returns a copy of triangle t, including its neighbor ids.
	//
	// Parameters:
	//   - t: the triangle id
	//
	// Returns:
	//   - Triangle: the triangle record
	//   - error: ErrIndexOutOfRange if t is not a triangle id
	Triangle(t int) (Triangle, error)
}

var _ Mesh = &mesh{}

// Build constructs a sphere mesh of the given order. This is the explicit owned
// builder: the caller holds the returned Mesh and passes it to whatever consumes it.
// The order is validated against MaxSupportedOrder before anything is allocated.
//
// Parameters:
//   - order: the subdivision order, 0 to MaxSupportedOrder
//
// Returns:
//   - Mesh: the finished mesh
//   - error: ErrOrderOutOfRange for an invalid order, ErrInconsistent if the topology breaks
func Build(order int) (Mesh, error) {
	if err := checkOrder(order, MaxSupportedOrder); err != nil {
		return nil, err
	}
	return buildMesh(order)
}

func buildMesh(order int) (*mesh, error) {
	b := newMeshBuilder(order)
	if err := b.run(); err != nil {
		return nil, fmt.Errorf("build order %d: %w", order, err)
	}
	return &mesh{
		order:     order,
		vertices:  b.verts,
		triangles: b.trigs,
		indices:   b.indexBuffer(),
	}, nil
}

func checkOrder(order, maxOrder int) error {
	if order < 0 || order > maxOrder {
		return fmt.Errorf("order %d, must be within [0, %d]: %w", order, maxOrder, ErrOrderOutOfRange)
	}
	return nil
}

func (m *mesh) Order() int {
	return m.order
}

func (m *mesh) VertexCount() int {
	return len(m.vertices) / 3
}

func (m *mesh) TriangleCount() int {
	return len(m.triangles)
}

func (m *mesh) Vertices() []float32 {
	return m.vertices
}

func (m *mesh) VerticesWithNormals() ([]float32, error) {
	m.normalsOnce.Do(func() {
		m.withNormals, m.normalsErr = interleaveNormals(m.vertices)
	})
	return m.withNormals, m.normalsErr
}

func (m *mesh) Indices() []uint32 {
	return m.indices
}

func (m *mesh) IndexCount() uint32 {
	return uint32(len(m.indices))
}

func (m *mesh) Triangle(t int) (Triangle, error) {
	if t < 0 || t >= len(m.triangles) {
		return Triangle{}, fmt.Errorf("triangle %d of %d: %w", t, len(m.triangles), ErrIndexOutOfRange)
	}
	return m.triangles[t], nil
}

// interleaveNormals duplicates each position as its own normal.
func interleaveNormals(verts []float32) ([]float32, error) {
	if len(verts)%3 != 0 {
		return nil, fmt.Errorf("vertex buffer length %d is not a multiple of 3: %w", len(verts), ErrInconsistent)
	}
	out := make([]float32, 0, 2*len(verts))
	for i := 0; i < len(verts); i += 3 {
		p := verts[i : i+3]
		out = append(out, p...)
		out = append(out, p...)
	}
	return out, nil
}
