package sphere

const (
	// DefaultMaxOrder is the largest order a Sphere accepts unless overridden with WithMaxOrder.
	DefaultMaxOrder = 6

	// MaxSupportedOrder is the hard ceiling for any build. Order 12 holds 134,217,728 triangles,
	// the last order whose index buffer length still fits a uint32.
	MaxSupportedOrder = 12

	baseVertexCount   = 6
	baseTriangleCount = 8
)

// VertexCount returns the number of vertices a sphere of the given order holds.
// Each round adds one vertex per edge of the previous round, and the closed mesh
// has 3·T/2 edges for T triangles, giving 6 + Σ 3·4^(i+1) = 4^(order+1) + 2.
//
// Parameters:
//   - order: the subdivision order (0 = octahedron)
//
// Returns:
//   - int: the final vertex count
func VertexCount(order int) int {
	count := baseVertexCount
	halfTriangles := baseTriangleCount / 2
	for i := 0; i < order; i++ {
		count += 3 * halfTriangles
		halfTriangles *= 4
	}
	return count
}

// TriangleCount returns the number of triangles a sphere of the given order holds, 8·4^order.
//
// Parameters:
//   - order: the subdivision order (0 = octahedron)
//
// Returns:
//   - int: the final triangle count
func TriangleCount(order int) int {
	count := baseTriangleCount
	for i := 0; i < order; i++ {
		count *= 4
	}
	return count
}
