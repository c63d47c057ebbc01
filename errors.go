package shapebatch

import "errors"

var (
	// ErrNoDevice is returned when a renderer is created without a usable
	// GPU device or queue.
	ErrNoDevice = errors.New("shapebatch: no GPU device")

	// ErrNotBound is returned when pending geometry must be drawn but no
	// render target is bound.
	ErrNotBound = errors.New("shapebatch: no render target bound")

	// ErrShapeTooLarge is returned when a single reservation needs more
	// vertices than the whole vertex buffer holds.
	ErrShapeTooLarge = errors.New("shapebatch: shape exceeds vertex buffer capacity")

	// ErrInvalidConfig wraps configuration validation failures.
	ErrInvalidConfig = errors.New("shapebatch: invalid config")

	// ErrDestroyed is returned by operations on a destroyed renderer.
	ErrDestroyed = errors.New("shapebatch: renderer destroyed")
)
