package survey

import "github.com/Carmen-Shannon/oxy-sphere/engine/sphere"

// SurveyorBuilderOption is a functional option for configuring a Surveyor via NewSurveyor.
type SurveyorBuilderOption func(*surveyor)

// WithWorkers sets the number of pool workers. Values below 1 keep the default.
//
// Parameters:
//   - n: the worker count
//
// Returns:
//   - SurveyorBuilderOption: option function to apply
func WithWorkers(n int) SurveyorBuilderOption {
	return func(s *surveyor) {
		if n > 0 {
			s.workers = n
		}
	}
}

// WithBuilder replaces the function used to build each order.
//
// Parameters:
//   - build: returns the mesh for an order
//
// Returns:
//   - SurveyorBuilderOption: option function to apply
func WithBuilder(build func(order int) (sphere.Mesh, error)) SurveyorBuilderOption {
	return func(s *surveyor) {
		if build != nil {
			s.build = build
		}
	}
}

// WithLogging enables a log line per finished order.
//
// Parameters:
//   - enabled: true to log
//
// Returns:
//   - SurveyorBuilderOption: option function to apply
func WithLogging(enabled bool) SurveyorBuilderOption {
	return func(s *surveyor) {
		s.logging = enabled
	}
}
