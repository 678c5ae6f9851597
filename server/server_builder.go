package server

import "github.com/Carmen-Shannon/oxy-sphere/engine/sphere"

// ServerBuilderOption is a functional option for configuring a Server via NewServer.
type ServerBuilderOption func(*server)

// WithAddr sets the listen address used by Serve.
//
// Parameters:
//   - addr: a host:port address such as ":8080"
//
// Returns:
//   - ServerBuilderOption: option function to apply
func WithAddr(addr string) ServerBuilderOption {
	return func(s *server) {
		if addr != "" {
			s.addr = addr
		}
	}
}

// WithDefaultOrder sets the order sent to a client when it connects.
// It is clamped to [0, max order].
//
// Parameters:
//   - order: the initial order
//
// Returns:
//   - ServerBuilderOption: option function to apply
func WithDefaultOrder(order int) ServerBuilderOption {
	return func(s *server) {
		s.defaultOrder = order
	}
}

// WithMaxOrder sets the highest order clients may request. Values outside
// [0, sphere.MaxSupportedOrder] keep the default, sphere.DefaultMaxOrder.
//
// Parameters:
//   - order: the highest order served
//
// Returns:
//   - ServerBuilderOption: option function to apply
func WithMaxOrder(order int) ServerBuilderOption {
	return func(s *server) {
		if order >= 0 && order <= sphere.MaxSupportedOrder {
			s.maxOrder = order
		}
	}
}

// WithLogging enables [Server] log lines.
//
// Parameters:
//   - enabled: true to log
//
// Returns:
//   - ServerBuilderOption: option function to apply
func WithLogging(enabled bool) ServerBuilderOption {
	return func(s *server) {
		s.logging = enabled
	}
}
