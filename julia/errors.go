package julia

import "errors"

var (
	ErrInvalidDimension = errors.New("image dimensions must be at least 1x1")
	ErrInvalidThreshold = errors.New("threshold must be positive")
	ErrInvalidViewport  = errors.New("viewport maximum must be greater than its minimum on both axes")
	ErrMissingMapper    = errors.New("no coordinate mapper given")
	ErrMissingStep      = errors.New("no step function given")
	ErrWorkerPanic      = errors.New("render worker panicked")
)
