package scene

import (
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-sphere/common"
	"github.com/Carmen-Shannon/oxy-sphere/engine/sphere"
)

// Defaults for a scene built without options. They reproduce the classic sphere viewer:
// a 30 degree lens on a 4:3 window, the sphere turning half a degree per tick.
const (
	DefaultOrder       = 3
	DefaultSpin        = 0.5
	DefaultFieldOfView = 30
	DefaultNear        = 0.1
	DefaultFar         = 180
	DefaultEyeDistance = 4

	minEyeDistance = 1.5
	maxEyeDistance = 20
)

// DefaultColor is the flat surface color of the sphere.
var DefaultColor = [3]float32{0.1, 0.2, 0.5}

// scene is the implementation of the Scene interface.
type scene struct {
	mu sync.RWMutex

	name   string
	active bool

	sphere sphere.Sphere
	order  int
	dirty  bool

	spin   float32
	angle  float32
	paused bool

	fovY        float32
	aspect      float32
	near, far   float32
	eyeDistance float32
	homeEye     float32
	color       [3]float32
}

// Scene holds the viewer state of a single spinning sphere: the Sphere handle and its
// current order, the rotation angle, and the projection parameters. It has no GPU
// dependencies; the engine pulls a fresh mesh with TakeMesh and a frame uniform with Uniform.
// Thread-safe for concurrent access from the tick and render goroutines.
type Scene interface {
	// Name returns the scene's identifier.
	Name() string

	// Active returns whether this scene is currently active for rendering.
	Active() bool

	// SetActive sets whether this scene is active for rendering.
	SetActive(active bool)

	// Sphere returns the Sphere handle the scene builds into.
	Sphere() sphere.Sphere

	// Order returns the order of the mesh currently shown.
	Order() int

	// SetOrder rebuilds the sphere at the given order. On failure the scene keeps its order.
	//
	// Parameters:
	//   - order: the new subdivision order
	//
	// Returns:
	//   - error: sphere.ErrOrderOutOfRange for an invalid order, or the build error
	SetOrder(order int) error

	// StepOrder rebuilds the sphere at the current order plus delta.
	//
	// Parameters:
	//   - delta: the change in order, usually +1 or -1
	//
	// Returns:
	//   - error: sphere.ErrOrderOutOfRange when the step leaves the valid range
	StepOrder(delta int) error

	// TakeMesh returns the active mesh if it changed since the last call.
	//
	// Returns:
	//   - sphere.Mesh: the new mesh
	//   - bool: false if nothing changed or no mesh is active
	TakeMesh() (sphere.Mesh, bool)

	// RequeueMesh offers the active mesh to the next TakeMesh again, usually after an
	// upload of the taken mesh failed.
	RequeueMesh()

	// Tick advances the rotation by one step unless paused.
	Tick()

	// Angle returns the current rotation about Y in degrees, within [0, 360).
	Angle() float32

	// TogglePause stops or resumes the rotation.
	TogglePause()

	// Paused reports whether the rotation is stopped.
	Paused() bool

	// SetAspect updates the projection aspect ratio, usually on window resize.
	//
	// Parameters:
	//   - aspect: viewport width divided by height, ignored if not positive
	SetAspect(aspect float32)

	// Zoom moves the eye towards (positive delta) or away from the sphere.
	//
	// Parameters:
	//   - delta: the distance to move the eye
	Zoom(delta float32)

	// EyeDistance returns the distance from the eye to the sphere center.
	EyeDistance() float32

	// ResetView puts the rotation angle and eye distance back to their initial values.
	ResetView()

	// Uniform builds the uniform block for the current frame.
	//
	// Returns:
	//   - GPUSceneUniform: the projection, rotation and color for this frame
	Uniform() GPUSceneUniform
}

var _ Scene = &scene{}

// NewScene creates a Scene and builds its initial mesh.
//
// Parameters:
//   - options: a variadic list of SceneBuilderOption functions to configure the Scene
//
// Returns:
//   - Scene: the new scene, active and holding a mesh
//   - error: an error if the initial build fails
func NewScene(options ...SceneBuilderOption) (Scene, error) {
	s := &scene{
		name:        "sphere",
		active:      true,
		order:       DefaultOrder,
		spin:        DefaultSpin,
		fovY:        DefaultFieldOfView,
		aspect:      4.0 / 3.0,
		near:        DefaultNear,
		far:         DefaultFar,
		eyeDistance: DefaultEyeDistance,
		color:       DefaultColor,
	}
	for _, opt := range options {
		opt(s)
	}
	if s.sphere == nil {
		s.sphere = sphere.NewSphere()
	}
	s.homeEye = s.eyeDistance

	if err := s.SetOrder(s.order); err != nil {
		return nil, fmt.Errorf("initial sphere: %w", err)
	}
	return s, nil
}

func (s *scene) Name() string {
	return s.name
}

func (s *scene) Active() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

func (s *scene) SetActive(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = active
}

func (s *scene) Sphere() sphere.Sphere {
	return s.sphere
}

func (s *scene) Order() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.order
}

func (s *scene) SetOrder(order int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.setOrderLocked(order)
}

func (s *scene) StepOrder(delta int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.setOrderLocked(s.order + delta)
}

func (s *scene) setOrderLocked(order int) error {
	if err := s.sphere.Build(order); err != nil {
		return err
	}
	s.order = order
	s.dirty = true
	return nil
}

func (s *scene) TakeMesh() (sphere.Mesh, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.dirty {
		return nil, false
	}
	s.dirty = false
	m, err := s.sphere.Mesh()
	if err != nil {
		return nil, false
	}
	return m, true
}

func (s *scene) RequeueMesh() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sphere.Active() {
		s.dirty = true
	}
}

func (s *scene) Tick() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.paused {
		return
	}
	s.angle += s.spin
	for s.angle >= 360 {
		s.angle -= 360
	}
	for s.angle < 0 {
		s.angle += 360
	}
}

func (s *scene) Angle() float32 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.angle
}

func (s *scene) TogglePause() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.paused = !s.paused
}

func (s *scene) Paused() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.paused
}

func (s *scene) SetAspect(aspect float32) {
	if aspect <= 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.aspect = aspect
}

func (s *scene) Zoom(delta float32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.eyeDistance = common.Clamp(s.eyeDistance-delta, minEyeDistance, maxEyeDistance)
}

func (s *scene) EyeDistance() float32 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.eyeDistance
}

func (s *scene) ResetView() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.angle = 0
	s.eyeDistance = s.homeEye
}

func (s *scene) Uniform() GPUSceneUniform {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var u GPUSceneUniform
	proj := make([]float32, 16)
	view := make([]float32, 16)
	common.Perspective(proj, common.Radians(s.fovY), s.aspect, s.near, s.far)
	common.LookAt(view, 0, 0, s.eyeDistance, 0, 0, 0, 0, 1, 0)
	common.Mul4(u.ViewProj[:], proj, view)
	common.RotateY(u.Rotate[:], s.angle)
	u.Color = s.color
	return u
}
