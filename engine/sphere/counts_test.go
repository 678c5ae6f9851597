package sphere

import "testing"

func TestVertexCount(t *testing.T) {
	tests := []struct {
		order int
		want  int
	}{
		{0, 6},
		{1, 18},
		{2, 66},
		{3, 258},
		{4, 1026},
		{5, 4098},
		{6, 16386},
	}
	for _, tt := range tests {
		if got := VertexCount(tt.order); got != tt.want {
			t.Errorf("VertexCount(%d) = %d, want %d", tt.order, got, tt.want)
		}

		// 6 + Σ 3·4^(i+1)
		sum, pow := 6, 4
		for i := 0; i < tt.order; i++ {
			sum += 3 * pow
			pow *= 4
		}
		if got := VertexCount(tt.order); got != sum {
			t.Errorf("VertexCount(%d) = %d, series gives %d", tt.order, got, sum)
		}
	}
}

func TestTriangleCount(t *testing.T) {
	want := 8
	for order := 0; order <= MaxSupportedOrder; order++ {
		if got := TriangleCount(order); got != want {
			t.Errorf("TriangleCount(%d) = %d, want %d", order, got, want)
		}
		want *= 4
	}
}

func TestMaxSupportedOrderFitsUint32(t *testing.T) {
	if n := uint64(3 * TriangleCount(MaxSupportedOrder)); n > 1<<32-1 {
		t.Fatalf("index buffer length %d overflows uint32", n)
	}
}
