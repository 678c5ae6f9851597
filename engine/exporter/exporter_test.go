package exporter

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"

	"github.com/Carmen-Shannon/oxy-sphere/engine/sphere"
	"github.com/qmuntal/gltf"
)

func TestDocument(t *testing.T) {
	mesh, err := sphere.Build(2)
	if err != nil {
		t.Fatal(err)
	}
	doc, err := NewExporter(WithName("ball"), WithColor([3]float32{1, 0, 0})).Document(mesh)
	if err != nil {
		t.Fatal(err)
	}

	if len(doc.Meshes) != 1 || len(doc.Meshes[0].Primitives) != 1 {
		t.Fatalf("got %d meshes", len(doc.Meshes))
	}
	if doc.Meshes[0].Name != "ball-2" {
		t.Errorf("mesh name = %q", doc.Meshes[0].Name)
	}
	prim := doc.Meshes[0].Primitives[0]

	pos := doc.Accessors[prim.Attributes[gltf.POSITION]]
	if int(pos.Count) != sphere.VertexCount(2) {
		t.Errorf("POSITION count = %d, want %d", pos.Count, sphere.VertexCount(2))
	}
	norm := doc.Accessors[prim.Attributes[gltf.NORMAL]]
	if int(norm.Count) != sphere.VertexCount(2) {
		t.Errorf("NORMAL count = %d", norm.Count)
	}
	if prim.Indices == nil {
		t.Fatal("primitive has no indices")
	}
	if idx := doc.Accessors[*prim.Indices]; int(idx.Count) != 3*sphere.TriangleCount(2) {
		t.Errorf("index count = %d, want %d", idx.Count, 3*sphere.TriangleCount(2))
	}

	mat := doc.Materials[0]
	if mat.AlphaMode != gltf.AlphaOpaque || *mat.PBRMetallicRoughness.BaseColorFactor != [4]float32{1, 0, 0, 1} {
		t.Errorf("material = %+v", mat)
	}
	if !mat.DoubleSided {
		t.Error("material is single-sided; viewers would cull the clockwise southern faces")
	}
	if len(doc.Scenes[0].Nodes) != 1 {
		t.Errorf("scene has %d nodes", len(doc.Scenes[0].Nodes))
	}
}

func TestWriteFileRoundTrip(t *testing.T) {
	mesh, err := sphere.Build(1)
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "sphere.glb")
	if err := NewExporter(WithLogging(true)).WriteFile(path, mesh); err != nil {
		t.Fatal(err)
	}

	doc, err := gltf.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if doc.Asset.Generator != "oxy-sphere" {
		t.Errorf("generator = %q", doc.Asset.Generator)
	}
	prim := doc.Meshes[0].Primitives[0]
	if got := doc.Accessors[prim.Attributes[gltf.POSITION]].Count; int(got) != 18 {
		t.Errorf("POSITION count = %d, want 18", got)
	}
	if got := doc.Accessors[*prim.Indices].Count; int(got) != 96 {
		t.Errorf("index count = %d, want 96", got)
	}
	if !doc.Materials[0].DoubleSided {
		t.Error("doubleSided lost in the written file")
	}
}

func TestWriteBinary(t *testing.T) {
	mesh, err := sphere.Build(0)
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := NewExporter().Write(&buf, mesh); err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("glTF")) {
		t.Errorf("output does not start with the GLB magic: % x", buf.Bytes()[:min(4, buf.Len())])
	}
}

type emptyMesh struct{ sphere.Mesh }

func (emptyMesh) Vertices() []float32 { return nil }
func (emptyMesh) Indices() []uint32   { return nil }

func TestEmptyMesh(t *testing.T) {
	if _, err := NewExporter().Document(emptyMesh{}); !errors.Is(err, ErrEmptyMesh) {
		t.Errorf("got %v, want ErrEmptyMesh", err)
	}
}
