package sphere

import "errors"

var (
	// ErrOrderOutOfRange is returned when a requested subdivision order exceeds the configured maximum.
	ErrOrderOutOfRange = errors.New("sphere: subdivision order out of range")
	// ErrNotBuilt is returned by accessors called before Build or after Release.
	ErrNotBuilt = errors.New("sphere: no active build")
	// ErrInconsistent is returned when an internal topology or buffer invariant is violated.
	ErrInconsistent = errors.New("sphere: mesh consistency violated")
	// ErrIndexOutOfRange is returned when a triangle field is addressed outside [0, 3).
	ErrIndexOutOfRange = errors.New("sphere: triangle slot out of range")
)
