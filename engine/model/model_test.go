package model

import (
	"bytes"
	"encoding/binary"
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-sphere/engine/sphere"
)

func TestFromMesh(t *testing.T) {
	for _, order := range []int{0, 1, 3} {
		mesh, err := sphere.Build(order)
		if err != nil {
			t.Fatal(err)
		}
		m, err := FromMesh(mesh)
		if err != nil {
			t.Fatal(err)
		}

		if m.Order() != order {
			t.Errorf("Order() = %d, want %d", m.Order(), order)
		}
		if m.VertexCount() != sphere.VertexCount(order) {
			t.Errorf("VertexCount() = %d, want %d", m.VertexCount(), sphere.VertexCount(order))
		}
		if got, want := len(m.VertexData()), 24*sphere.VertexCount(order); got != want {
			t.Errorf("len(VertexData()) = %d, want %d", got, want)
		}
		if got, want := m.IndexCount(), 3*sphere.TriangleCount(order); got != want {
			t.Errorf("IndexCount() = %d, want %d", got, want)
		}
		if got, want := len(m.IndexData()), 4*m.IndexCount(); got != want {
			t.Errorf("len(IndexData()) = %d, want %d", got, want)
		}
		if r := m.BoundingRadius(); math.Abs(float64(r-1)) > 1e-5 {
			t.Errorf("BoundingRadius() = %v, want 1", r)
		}
		if m.MeshProvider() != nil {
			t.Error("MeshProvider() should be nil until attached")
		}
	}
}

func TestFromMeshVertexLayout(t *testing.T) {
	mesh, err := sphere.Build(1)
	if err != nil {
		t.Fatal(err)
	}
	m, err := FromMesh(mesh, WithName("ball"))
	if err != nil {
		t.Fatal(err)
	}
	if m.Name() != "ball" {
		t.Errorf("Name() = %q, want ball", m.Name())
	}

	pos := mesh.Vertices()
	data := m.VertexData()
	for i := 0; i < mesh.VertexCount(); i++ {
		v := GPUVertex{
			Position: [3]float32{pos[3*i], pos[3*i+1], pos[3*i+2]},
			Normal:   [3]float32{pos[3*i], pos[3*i+1], pos[3*i+2]},
		}
		if !bytes.Equal(data[24*i:24*i+24], v.Marshal()) {
			t.Fatalf("vertex %d bytes differ from GPUVertex layout", i)
		}
	}

	inds := mesh.Indices()
	idx := m.IndexData()
	for i, want := range inds {
		if got := binary.LittleEndian.Uint32(idx[4*i:]); got != want {
			t.Fatalf("index %d = %d, want %d", i, got, want)
		}
	}
}

func TestNewModelOptions(t *testing.T) {
	m := NewModel(
		WithName("raw"),
		WithVertexData(make([]byte, 48)),
		WithIndexData(make([]byte, 12)),
		WithBoundingRadius(2.5),
	)
	if m.Name() != "raw" || m.VertexCount() != 2 || m.IndexCount() != 3 || m.BoundingRadius() != 2.5 {
		t.Errorf("got name %q, %d vertices, %d indices, radius %v",
			m.Name(), m.VertexCount(), m.IndexCount(), m.BoundingRadius())
	}
}

func TestComputeBoundingRadius(t *testing.T) {
	tests := []struct {
		name string
		in   []float32
		want float32
	}{
		{"empty", nil, 0},
		{"single", []float32{3, 4, 0}, 5},
		{"largest wins", []float32{1, 0, 0, 0, -2, 0, 0, 0, 0.5}, 2},
		{"trailing partial vertex ignored", []float32{1, 0, 0, 9, 9}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ComputeBoundingRadius(tt.in); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGPUVertex(t *testing.T) {
	v := GPUVertex{Position: [3]float32{1, 2, 3}, Normal: [3]float32{4, 5, 6}}
	if v.Size() != 24 {
		t.Fatalf("Size() = %d, want 24", v.Size())
	}
	buf := v.Marshal()
	for i := range 6 {
		if got := math.Float32frombits(binary.LittleEndian.Uint32(buf[4*i:])); got != float32(i+1) {
			t.Errorf("component %d = %v, want %d", i, got, i+1)
		}
	}

	layout := GPUVertexLayout()
	if layout.ArrayStride != uint64(v.Size()) || len(layout.Attributes) != 2 {
		t.Errorf("layout stride %d with %d attributes", layout.ArrayStride, len(layout.Attributes))
	}
}
