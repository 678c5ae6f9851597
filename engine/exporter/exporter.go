package exporter

import (
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/Carmen-Shannon/oxy-sphere/engine/sphere"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

// ErrEmptyMesh is returned for a mesh without vertices or triangles.
var ErrEmptyMesh = errors.New("mesh has no geometry")

// exporter is the implementation of the Exporter interface.
type exporter struct {
	name      string
	generator string
	color     [4]float32
	logging   bool
}

// Exporter writes sphere meshes as binary glTF (GLB): one mesh with POSITION, NORMAL and
// indices, one opaque material, one node.
type Exporter interface {
	// Document builds the glTF document for a mesh.
	//
	// Parameters:
	//   - mesh: the mesh to export
	//
	// Returns:
	//   - *gltf.Document: the document
	//   - error: ErrEmptyMesh
	Document(mesh sphere.Mesh) (*gltf.Document, error)

	// Write encodes the mesh as GLB to w.
	//
	// Parameters:
	//   - w: the destination
	//   - mesh: the mesh to export
	//
	// Returns:
	//   - error: a document or encoding error
	Write(w io.Writer, mesh sphere.Mesh) error

	// WriteFile saves the mesh as a GLB file.
	//
	// Parameters:
	//   - path: the output file
	//   - mesh: the mesh to export
	//
	// Returns:
	//   - error: a document or file error
	WriteFile(path string, mesh sphere.Mesh) error
}

var _ Exporter = &exporter{}

// NewExporter creates an Exporter with the provided options.
//
// Parameters:
//   - options: a variadic list of ExporterBuilderOption functions
//
// Returns:
//   - Exporter: the configured exporter
func NewExporter(options ...ExporterBuilderOption) Exporter {
	e := &exporter{
		name:      "Sphere",
		generator: "oxy-sphere",
		color:     [4]float32{0.1, 0.2, 0.5, 1},
	}
	for _, opt := range options {
		opt(e)
	}
	return e
}

func (e *exporter) Document(mesh sphere.Mesh) (*gltf.Document, error) {
	verts := mesh.Vertices()
	inds := mesh.Indices()
	if len(verts) < 3 || len(inds) < 3 {
		return nil, ErrEmptyMesh
	}

	positions := make([][3]float32, len(verts)/3)
	for i := range positions {
		positions[i] = [3]float32{verts[3*i], verts[3*i+1], verts[3*i+2]}
	}
	// Unit sphere at the origin: the normal is the position.
	normals := positions

	doc := gltf.NewDocument()
	doc.Asset.Generator = e.generator

	posAccessor := modeler.WritePosition(doc, positions)
	normalAccessor := modeler.WriteNormal(doc, normals)
	indicesAccessor := modeler.WriteIndices(doc, inds)

	prim := &gltf.Primitive{
		Attributes: map[string]uint32{
			gltf.POSITION: uint32(posAccessor),
			gltf.NORMAL:   uint32(normalAccessor),
		},
		Indices:  gltf.Index(uint32(indicesAccessor)),
		Material: gltf.Index(0),
	}

	color := e.color
	doc.Materials = []*gltf.Material{{
		Name:        e.name,
		AlphaMode:   gltf.AlphaOpaque,
		DoubleSided: true,
		PBRMetallicRoughness: &gltf.PBRMetallicRoughness{
			BaseColorFactor: &color,
			MetallicFactor:  gltf.Float(0),
			RoughnessFactor: gltf.Float(1),
		},
	}}

	doc.Meshes = []*gltf.Mesh{{
		Name:       fmt.Sprintf("%s-%d", e.name, mesh.Order()),
		Primitives: []*gltf.Primitive{prim},
	}}
	doc.Nodes = []*gltf.Node{{Name: e.name, Mesh: gltf.Index(0)}}
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, uint32(0))

	return doc, nil
}

func (e *exporter) Write(w io.Writer, mesh sphere.Mesh) error {
	doc, err := e.Document(mesh)
	if err != nil {
		return err
	}
	enc := gltf.NewEncoder(w)
	enc.AsBinary = true
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode order %d: %w", mesh.Order(), err)
	}
	return nil
}

func (e *exporter) WriteFile(path string, mesh sphere.Mesh) error {
	doc, err := e.Document(mesh)
	if err != nil {
		return err
	}
	if err := gltf.SaveBinary(doc, path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	if e.logging {
		log.Printf("[Export] order %d: %d vertices, %d triangles -> %s", mesh.Order(), mesh.VertexCount(), mesh.TriangleCount(), path)
	}
	return nil
}
