package scene

import (
	"encoding/binary"
	"math"
	"unsafe"
)

// GPUSceneUniformSource is the WGSL definition of the SceneUniform struct.
// Matches GPUSceneUniform layout exactly (144 bytes).
const GPUSceneUniformSource = `struct SceneUniform {
    view_proj: mat4x4<f32>,
    rotate: mat4x4<f32>,
    color: vec4<f32>,
}`

// GPUSceneUniform is the GPU-aligned representation of the sphere scene uniform buffer.
// Matches the WGSL SceneUniform struct layout exactly (see GPUSceneUniformSource).
// Size: 144 bytes.
type GPUSceneUniform struct {
	ViewProj [16]float32 // offset   0: projection * view (mat4x4<f32>)
	Rotate   [16]float32 // offset  64: model rotation (mat4x4<f32>)
	Color    [3]float32  // offset 128: flat surface color (vec3 of a vec4<f32>)
	_pad     float32     // offset 140: padding to 144 bytes
}

// Size returns the size of the GPUSceneUniform struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (144)
func (g *GPUSceneUniform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUSceneUniform struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: the serialized byte buffer
func (g *GPUSceneUniform) Marshal() []byte {
	buf := make([]byte, g.Size())
	for i := range 16 {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(g.ViewProj[i]))
	}
	for i := range 16 {
		binary.LittleEndian.PutUint32(buf[64+i*4:], math.Float32bits(g.Rotate[i]))
	}
	for i := range 3 {
		binary.LittleEndian.PutUint32(buf[128+i*4:], math.Float32bits(g.Color[i]))
	}
	binary.LittleEndian.PutUint32(buf[140:], 0) // _pad
	return buf
}
