package renderer

import (
	_ "embed"
	"sync"

	"github.com/Carmen-Shannon/oxy-sphere/engine/model"
	"github.com/Carmen-Shannon/oxy-sphere/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-sphere/engine/scene"
	"github.com/cogentcore/webgpu/wgpu"
)

//go:embed assets/sphere.wgsl
var sphereShaderBody string

// SphereShaderSource returns the complete WGSL module for the sphere pipeline: the scene
// uniform and vertex input declarations followed by the vertex and fragment stages.
//
// Returns:
//   - string: the WGSL source
func SphereShaderSource() string {
	return scene.GPUSceneUniformSource + "\n\n" + model.GPUVertexSource + "\n\n" + sphereShaderBody
}

// Surface is the part of a window the Renderer needs to create and size its surface.
// window.Window satisfies it.
type Surface interface {
	SurfaceDescriptor() *wgpu.SurfaceDescriptor
	Width() int
	Height() int
}

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	backendType RendererBackendType
	backend     RendererBackend

	// Pre-creation config collected from builder options
	forceFallbackAdapter bool
	presentMode          PresentMode
	msaa                 MSAASampleCount
	clearColor           [3]float64
	cullBack             bool
}

// Renderer draws the sphere viewer through a single render pipeline.
//
// The usage is per frame: WriteBuffers with the scene uniform, BeginFrame, one DrawCall
// for the sphere mesh, EndFrame, Present. When the sphere is rebuilt the engine releases
// the mesh buffers on the model's provider and uploads the new ones with InitMeshBuffers.
type Renderer interface {
	// Resize configures the underlying backend to handle a new surface size.
	// This should be called when re-sizing the window. A zero size is ignored.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	Resize(width, height int)

	// SetPresentMode sets the surface present mode which controls how frames are delivered to the display.
	// A call to Resize is required after changing this for the new mode to take effect.
	//
	// Parameters:
	//   - mode: the PresentMode to use (VSync or Uncapped)
	SetPresentMode(mode PresentMode)

	// InitMeshBuffers creates GPU vertex and index buffers from raw byte data and stores them
	// on the given BindGroupProvider for later use in draw calls.
	//
	// Parameters:
	//   - provider: the BindGroupProvider to store the created buffers on
	//   - vertexData: the interleaved position and normal bytes to upload
	//   - indexData: the uint32 index bytes to upload
	//   - indexCount: the number of indices, used for draw calls
	//
	// Returns:
	//   - error: an error if buffer creation fails
	InitMeshBuffers(provider bind_group_provider.BindGroupProvider, vertexData, indexData []byte, indexCount int) error

	// InitUniform creates the scene uniform buffer and its bind group against the sphere
	// pipeline's group 0 layout, and stores them on the given provider at binding 0.
	//
	// Parameters:
	//   - provider: the BindGroupProvider to store the buffer and bind group on
	//
	// Returns:
	//   - error: an error if buffer or bind group creation fails
	InitUniform(provider bind_group_provider.BindGroupProvider) error

	// WriteBuffers writes all staged buffer writes to the GPU queue.
	//
	// Parameters:
	//   - writes: a slice of BufferWrite structs describing the data to write
	WriteBuffers(writes []bind_group_provider.BufferWrite)

	// BeginFrame acquires the swapchain texture and begins the main render pass.
	// Must be paired with EndFrame.
	//
	// Returns:
	//   - error: an error if the swapchain texture could not be acquired
	BeginFrame() error

	// DrawCall encodes an indexed draw of the mesh within the current render pass.
	//
	// Parameters:
	//   - meshProvider: the BindGroupProvider holding vertex and index buffers
	//   - bindGroups: providers whose BindGroups are set at group 0, 1, ...
	//
	// Returns:
	//   - error: ErrNoFrame outside BeginFrame/EndFrame, ErrNoMesh if the provider holds no buffers
	DrawCall(meshProvider bind_group_provider.BindGroupProvider, bindGroups []bind_group_provider.BindGroupProvider) error

	// EndFrame ends the current render pass and submits the command buffer to the GPU.
	// Call Present afterwards to display the frame.
	EndFrame()

	// Present presents the surface to the display and releases the swapchain texture.
	Present()

	// Release releases the pipeline, surface targets and device.
	Release()
}

var _ Renderer = &renderer{}

// NewRenderer creates a new Renderer with the WGPU backend, configures the surface to the
// window size and builds the sphere pipeline. Panics if the GPU cannot be initialized.
//
// Parameters:
//   - surface: the window to render into
//   - options: variadic list of RendererBuilderOption functions to configure the Renderer
//
// Returns:
//   - Renderer: a new instance of Renderer configured with the provided options
func NewRenderer(surface Surface, options ...RendererBuilderOption) Renderer {
	// Options are applied before the backend requests a GPU adapter.
	r := newRendererConfig(options...)

	switch r.backendType {
	case BackendTypeWGPU:
		fallthrough
	default:
		r.backend = newWGPURendererBackend(surface.SurfaceDescriptor(), r.forceFallbackAdapter, r.msaa, r.clearColor)
	}

	r.backend.SetPresentMode(r.presentMode)
	r.backend.ConfigureSurface(surface.Width(), surface.Height())
	if err := r.backend.RegisterSpherePipeline(SphereShaderSource(), r.cullBack); err != nil {
		panic(err)
	}
	return r
}

// newRendererConfig returns a renderer holding the defaults and the applied options,
// with no backend yet. Culling is off: the southern faces of the sphere are wound
// clockwise seen from outside, so back-face culling would hide them.
func newRendererConfig(options ...RendererBuilderOption) *renderer {
	r := &renderer{
		mu:          &sync.Mutex{},
		backendType: BackendTypeWGPU,
		presentMode: PresentModeVSync,
		msaa:        MSAA4x,
	}
	for _, opt := range options {
		opt(r)
	}
	return r
}

func (r *renderer) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	r.backend.ConfigureSurface(width, height)
}

func (r *renderer) SetPresentMode(mode PresentMode) {
	r.backend.SetPresentMode(mode)
}

func (r *renderer) InitMeshBuffers(provider bind_group_provider.BindGroupProvider, vertexData, indexData []byte, indexCount int) error {
	return r.backend.InitMeshBuffers(provider, vertexData, indexData, indexCount)
}

func (r *renderer) InitUniform(provider bind_group_provider.BindGroupProvider) error {
	return r.backend.InitUniform(provider)
}

func (r *renderer) WriteBuffers(writes []bind_group_provider.BufferWrite) {
	r.backend.WriteBuffers(writes)
}

func (r *renderer) BeginFrame() error {
	return r.backend.BeginFrame()
}

func (r *renderer) DrawCall(meshProvider bind_group_provider.BindGroupProvider, bindGroups []bind_group_provider.BindGroupProvider) error {
	return r.backend.DrawCall(meshProvider, bindGroups)
}

func (r *renderer) EndFrame() {
	r.backend.EndFrame()
}

func (r *renderer) Present() {
	r.backend.Present()
}

func (r *renderer) Release() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.backend.Release()
}
