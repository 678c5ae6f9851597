package sphere

import (
	"log"
	"sync"
)

// sphere is the implementation of the Sphere interface.
type sphere struct {
	mu       sync.RWMutex
	maxOrder int
	logging  bool
	mesh     Mesh
}

// Sphere is a handle holding at most one active sphere build. Build replaces the active
// mesh, Release drops it, and every accessor fails with ErrNotBuilt while none is active.
// Views returned before a rebuild keep pointing at the previous, unchanged mesh.
type Sphere interface {
	// Build discards the active mesh and builds a new one of the given order.
	// The order is validated first; an out-of-range order leaves the active mesh untouched.
	//
	// Parameters:
	//   - order: the subdivision order, 0 to MaxOrder
	//
	// Returns:
	//   - error: ErrOrderOutOfRange for an invalid order, ErrInconsistent if the topology breaks
	Build(order int) error

	// Release drops the active mesh.
	Release()

	// Active reports whether a build is active.
	//
	// Returns:
	//   - bool: true if a mesh is held
	Active() bool

	// MaxOrder returns the largest order Build accepts.
	//
	// Returns:
	//   - int: the configured maximum order
	MaxOrder() int

	// Mesh returns the active mesh.
	//
	// Returns:
	//   - Mesh: the active mesh
	//   - error: ErrNotBuilt if no build is active
	Mesh() (Mesh, error)

	// Vertices returns the position buffer of the active mesh.
	//
	// Returns:
	//   - []float32: three components per vertex
	//   - error: ErrNotBuilt if no build is active
	Vertices() ([]float32, error)

	// VerticesWithNormals returns the interleaved position/normal buffer of the active mesh.
	//
	// Returns:
	//   - []float32: six components per vertex
	//   - error: ErrNotBuilt if no build is active, ErrInconsistent on a malformed buffer
	VerticesWithNormals() ([]float32, error)

	// Indices returns the triangle index buffer of the active mesh.
	//
	// Returns:
	//   - []uint32: three indices per triangle
	//   - error: ErrNotBuilt if no build is active
	Indices() ([]uint32, error)

	// IndexCount returns the index buffer length of the active mesh.
	//
	// Returns:
	//   - uint32: three times the triangle count
	//   - error: ErrNotBuilt if no build is active
	IndexCount() (uint32, error)
}

var _ Sphere = &sphere{}

// NewSphere creates a Sphere handle with no active build.
//
// Parameters:
//   - options: a variadic list of SphereBuilderOption functions to configure the Sphere
//
// Returns:
//   - Sphere: the new handle
func NewSphere(options ...SphereBuilderOption) Sphere {
	s := &sphere{
		maxOrder: DefaultMaxOrder,
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

func (s *sphere) Build(order int) error {
	if err := checkOrder(order, s.maxOrder); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// The previous mesh goes first so both are never held at once.
	s.mesh = nil
	m, err := buildMesh(order)
	if err != nil {
		return err
	}
	s.mesh = m

	if s.logging {
		log.Printf("[Sphere] order %d: nverts = %d, ntri = %d", order, m.VertexCount(), m.TriangleCount())
	}
	return nil
}

func (s *sphere) Release() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mesh = nil
}

func (s *sphere) Active() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mesh != nil
}

func (s *sphere) MaxOrder() int {
	return s.maxOrder
}

func (s *sphere) Mesh() (Mesh, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.mesh == nil {
		return nil, ErrNotBuilt
	}
	return s.mesh, nil
}

func (s *sphere) Vertices() ([]float32, error) {
	m, err := s.Mesh()
	if err != nil {
		return nil, err
	}
	return m.Vertices(), nil
}

func (s *sphere) VerticesWithNormals() ([]float32, error) {
	m, err := s.Mesh()
	if err != nil {
		return nil, err
	}
	return m.VerticesWithNormals()
}

func (s *sphere) Indices() ([]uint32, error) {
	m, err := s.Mesh()
	if err != nil {
		return nil, err
	}
	return m.Indices(), nil
}

func (s *sphere) IndexCount() (uint32, error) {
	m, err := s.Mesh()
	if err != nil {
		return 0, err
	}
	return m.IndexCount(), nil
}
