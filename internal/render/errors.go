package render

import "errors"

var (
	// ErrNoSurface means the host has no drawing context. The engine cannot
	// run without one, so Init aborts before touching any state.
	ErrNoSurface = errors.New("render: no drawing surface")

	// ErrInitialized is returned by a second Init. Use Reseed to refill the
	// population instead.
	ErrInitialized = errors.New("render: engine already initialized")
)
