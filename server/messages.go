package server

// Message types sent to clients.
const (
	MessageTypeMesh  = "mesh"
	MessageTypeError = "error"
)

// MeshRequest asks for the sphere at an order.
type MeshRequest struct {
	Order *int `json:"order"`
}

// MeshMessage carries one built sphere.
type MeshMessage struct {
	Type          string       `json:"type"`
	Order         int          `json:"order"`
	VertexCount   int          `json:"vertexCount"`
	TriangleCount int          `json:"triangleCount"`
	Vertices      [][3]float32 `json:"vertices"`
	Indices       []uint32     `json:"indices"`
}

// ErrorMessage reports a request that could not be served.
type ErrorMessage struct {
	Type  string `json:"type"`
	Error string `json:"error"`
}
