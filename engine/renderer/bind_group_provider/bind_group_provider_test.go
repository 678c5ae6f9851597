package bind_group_provider

import "testing"

func TestNewBindGroupProvider(t *testing.T) {
	p := NewBindGroupProvider("Sphere Mesh")
	if p.Label() != "Sphere Mesh" {
		t.Errorf("Label() = %q", p.Label())
	}
	if p.HasMesh() {
		t.Error("HasMesh() = true on an empty provider")
	}
	if p.Buffer(0) != nil || p.BindGroup() != nil || p.BindGroupLayout() != nil {
		t.Error("fresh provider should hold no GPU objects")
	}
}

func TestReleaseWithoutResources(t *testing.T) {
	p := NewBindGroupProvider("empty")
	p.SetIndexCount(96)
	if p.HasMesh() {
		t.Error("HasMesh() = true without buffers")
	}
	p.ReleaseMesh()
	if p.IndexCount() != 0 {
		t.Errorf("IndexCount() = %d after ReleaseMesh", p.IndexCount())
	}
	p.Release()
}

func TestUniformWrite(t *testing.T) {
	p := NewBindGroupProvider("Scene Uniform")
	data := []byte{1, 2, 3, 4}
	w := UniformWrite(p, data)
	if w.Provider != p || w.Binding != 0 || w.Offset != 0 || len(w.Data) != 4 {
		t.Errorf("got %+v", w)
	}
}
