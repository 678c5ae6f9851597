package model

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-sphere/common"
	"github.com/Carmen-Shannon/oxy-sphere/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-sphere/engine/sphere"
	"gonum.org/v1/gonum/spatial/r3"
)

// model is the implementation of the Model interface.
type model struct {
	name                  string
	order                 int
	meshProvider          bind_group_provider.BindGroupProvider
	boundingRadius        float32
	vertexData, indexData []byte
	vertexCount           int
	indexCount            int
}

// Model defines the interface for a GPU-ready sphere mesh.
// A Model carries the raw vertex and index bytes of one sphere build, laid out as GPUVertex
// and uint32 indices, plus the BindGroupProvider that holds them once uploaded.
type Model interface {
	// Name retrieves the model identifier.
	//
	// Returns:
	//   - string: the model name
	Name() string

	// Order returns the subdivision order of the sphere this model was made from.
	//
	// Returns:
	//   - int: the subdivision order
	Order() int

	// MeshProvider retrieves the BindGroupProvider holding GPU mesh resources.
	//
	// Returns:
	//   - bind_group_provider.BindGroupProvider: the mesh provider, or nil if not attached
	MeshProvider() bind_group_provider.BindGroupProvider

	// SetMeshProvider attaches the BindGroupProvider the renderer uploads this model into.
	//
	// Parameters:
	//   - provider: the mesh provider
	SetMeshProvider(provider bind_group_provider.BindGroupProvider)

	// VertexData returns the raw vertex data for this model's mesh.
	//
	// Returns:
	//   - []byte: the vertex data, GPUVertex packed
	VertexData() []byte

	// IndexData returns the raw index data for this model's mesh.
	//
	// Returns:
	//   - []byte: the index data, uint32 per index
	IndexData() []byte

	// VertexCount returns the number of vertices in the model's mesh.
	//
	// Returns:
	//   - int: the vertex count
	VertexCount() int

	// IndexCount returns the number of indices in the model's mesh.
	//
	// Returns:
	//   - int: the index count
	IndexCount() int

	// BoundingRadius returns the bounding sphere radius for this model, measured as
	// the maximum vertex distance from the origin.
	//
	// Returns:
	//   - float32: the bounding radius
	BoundingRadius() float32
}

var _ Model = &model{}

// NewModel creates a new Model instance with the specified options applied.
//
// Parameters:
//   - options: a variadic list of ModelBuilderOption functions to configure the Model
//
// Returns:
//   - Model: a new instance of Model configured with the provided options
func NewModel(options ...ModelBuilderOption) Model {
	m := &model{}
	for _, opt := range options {
		opt(m)
	}
	return m
}

// FromMesh creates a Model from a sphere mesh. The vertex bytes come from the mesh's
// interleaved position/normal buffer and alias it, so they must not be modified.
// Options are applied after the mesh data and may override the name or bounding radius.
//
// Parameters:
//   - mesh: the built sphere mesh
//   - options: a variadic list of ModelBuilderOption functions to configure the Model
//
// Returns:
//   - Model: the GPU-ready model
//   - error: an error if the mesh buffers are malformed
func FromMesh(mesh sphere.Mesh, options ...ModelBuilderOption) (Model, error) {
	verts, err := mesh.VerticesWithNormals()
	if err != nil {
		return nil, fmt.Errorf("model from order %d mesh: %w", mesh.Order(), err)
	}

	m := &model{
		name:           fmt.Sprintf("sphere-%d", mesh.Order()),
		order:          mesh.Order(),
		vertexData:     common.SliceToBytes(verts),
		indexData:      common.SliceToBytes(mesh.Indices()),
		vertexCount:    mesh.VertexCount(),
		indexCount:     int(mesh.IndexCount()),
		boundingRadius: ComputeBoundingRadius(mesh.Vertices()),
	}
	for _, opt := range options {
		opt(m)
	}
	return m, nil
}

// ComputeBoundingRadius returns the largest distance from the origin over a flat
// xyz position buffer.
//
// Parameters:
//   - positions: three float32 components per vertex
//
// Returns:
//   - float32: the bounding radius, 0 for an empty buffer
func ComputeBoundingRadius(positions []float32) float32 {
	var radius float64
	for i := 0; i+2 < len(positions); i += 3 {
		v := r3.Vec{X: float64(positions[i]), Y: float64(positions[i+1]), Z: float64(positions[i+2])}
		radius = max(radius, r3.Norm(v))
	}
	return float32(radius)
}

func (m *model) Name() string {
	return m.name
}

func (m *model) Order() int {
	return m.order
}

func (m *model) MeshProvider() bind_group_provider.BindGroupProvider {
	return m.meshProvider
}

func (m *model) SetMeshProvider(provider bind_group_provider.BindGroupProvider) {
	m.meshProvider = provider
}

func (m *model) VertexData() []byte {
	return m.vertexData
}

func (m *model) IndexData() []byte {
	return m.indexData
}

func (m *model) VertexCount() int {
	return m.vertexCount
}

func (m *model) IndexCount() int {
	return m.indexCount
}

func (m *model) BoundingRadius() float32 {
	return m.boundingRadius
}
