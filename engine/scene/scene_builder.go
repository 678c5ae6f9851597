package scene

import (
	"github.com/Carmen-Shannon/oxy-sphere/common"
	"github.com/Carmen-Shannon/oxy-sphere/engine/sphere"
)

// SceneBuilderOption is a functional option for configuring a Scene via NewScene.
type SceneBuilderOption func(*scene)

// WithName is an option builder that sets the name of the Scene.
//
// Parameters:
//   - name: the scene identifier
//
// Returns:
//   - SceneBuilderOption: a function that applies the name option to a scene
func WithName(name string) SceneBuilderOption {
	return func(s *scene) {
		s.name = name
	}
}

// WithSphere is an option builder that sets the Sphere handle the scene builds into.
// Without it the scene creates a handle with default settings.
//
// Parameters:
//   - sp: the Sphere handle
//
// Returns:
//   - SceneBuilderOption: a function that applies the sphere option to a scene
func WithSphere(sp sphere.Sphere) SceneBuilderOption {
	return func(s *scene) {
		s.sphere = sp
	}
}

// WithOrder is an option builder that sets the initial subdivision order.
//
// Parameters:
//   - order: the order built by NewScene
//
// Returns:
//   - SceneBuilderOption: a function that applies the order option to a scene
func WithOrder(order int) SceneBuilderOption {
	return func(s *scene) {
		s.order = order
	}
}

// WithSpin is an option builder that sets the rotation per tick.
//
// Parameters:
//   - degrees: rotation about Y added on every tick
//
// Returns:
//   - SceneBuilderOption: a function that applies the spin option to a scene
func WithSpin(degrees float32) SceneBuilderOption {
	return func(s *scene) {
		s.spin = degrees
	}
}

// WithColor is an option builder that sets the flat surface color.
//
// Parameters:
//   - color: RGB components in [0, 1]
//
// Returns:
//   - SceneBuilderOption: a function that applies the color option to a scene
func WithColor(color [3]float32) SceneBuilderOption {
	return func(s *scene) {
		s.color = color
	}
}

// WithAspect is an option builder that sets the initial projection aspect ratio.
//
// Parameters:
//   - aspect: viewport width divided by height, ignored if not positive
//
// Returns:
//   - SceneBuilderOption: a function that applies the aspect option to a scene
func WithAspect(aspect float32) SceneBuilderOption {
	return func(s *scene) {
		if aspect > 0 {
			s.aspect = aspect
		}
	}
}

// WithFieldOfView is an option builder that sets the vertical field of view.
//
// Parameters:
//   - degrees: the vertical field of view in degrees
//
// Returns:
//   - SceneBuilderOption: a function that applies the field of view option to a scene
func WithFieldOfView(degrees float32) SceneBuilderOption {
	return func(s *scene) {
		s.fovY = degrees
	}
}

// WithClipPlanes is an option builder that sets the near and far clipping distances.
//
// Parameters:
//   - near: near plane distance, must be positive
//   - far: far plane distance, must exceed near
//
// Returns:
//   - SceneBuilderOption: a function that applies the clip plane option to a scene
func WithClipPlanes(near, far float32) SceneBuilderOption {
	return func(s *scene) {
		if near > 0 && far > near {
			s.near, s.far = near, far
		}
	}
}

// WithEyeDistance is an option builder that sets how far the eye sits from the sphere center.
//
// Parameters:
//   - distance: the eye distance, clamped to the zoom range
//
// Returns:
//   - SceneBuilderOption: a function that applies the eye distance option to a scene
func WithEyeDistance(distance float32) SceneBuilderOption {
	return func(s *scene) {
		s.eyeDistance = common.Clamp(distance, minEyeDistance, maxEyeDistance)
	}
}
