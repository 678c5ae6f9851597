package sphere

// SphereBuilderOption is a functional option for configuring a Sphere via NewSphere.
type SphereBuilderOption func(*sphere)

// WithMaxOrder is an option builder that sets the largest order Build accepts.
// Values below 0 fall back to DefaultMaxOrder and values above MaxSupportedOrder are clamped.
//
// Parameters:
//   - maxOrder: the maximum subdivision order
//
// Returns:
//   - SphereBuilderOption: a function that applies the max order option to a sphere
func WithMaxOrder(maxOrder int) SphereBuilderOption {
	return func(s *sphere) {
		switch {
		case maxOrder < 0:
			s.maxOrder = DefaultMaxOrder
		case maxOrder > MaxSupportedOrder:
			s.maxOrder = MaxSupportedOrder
		default:
			s.maxOrder = maxOrder
		}
	}
}

// WithLogging is an option builder that enables a log line per successful build.
//
// Parameters:
//   - enabled: if true, each build logs its vertex and triangle totals
//
// Returns:
//   - SphereBuilderOption: a function that applies the logging option to a sphere
func WithLogging(enabled bool) SphereBuilderOption {
	return func(s *sphere) {
		s.logging = enabled
	}
}
