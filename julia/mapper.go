package julia

import "fmt"

// Mapper turns a pixel coordinate into the complex value sampled for that pixel.
type Mapper func(x int, y int) complex128

// Interpolate maps pixel (x, y) of a width x height image onto the viewport. The first and
// last pixel of each axis land exactly on the viewport bounds.
func Interpolate(x int, y int, width int, height int, v Viewport) complex128 {
	return complex(lerpAxis(x, width, v.MinX, v.MaxX), lerpAxis(y, height, v.MinY, v.MaxY))
}

func lerpAxis(p int, size int, min float64, max float64) float64 {
	// A single pixel has nowhere to go but the minimum
	if size <= 1 {
		return min
	}
	return min + (float64(p)/float64(size-1))*(max-min)
}

// NewStretchMapper uses the viewport as given, distorting it if its aspect ratio differs
// from the image's.
func NewStretchMapper(width int, height int, v Viewport) (Mapper, error) {
	if err := checkDimensions(width, height); err != nil {
		return nil, err
	}
	if err := v.Validate(); err != nil {
		return nil, err
	}
	return func(x int, y int) complex128 {
		return Interpolate(x, y, width, height, v)
	}, nil
}

// NewRectilinearMapper keeps pixels square by widening the viewport along its narrower
// axis. See Viewport.Rectilinear.
func NewRectilinearMapper(width int, height int, v Viewport) (Mapper, error) {
	if err := checkDimensions(width, height); err != nil {
		return nil, err
	}
	if err := v.Validate(); err != nil {
		return nil, err
	}
	return NewStretchMapper(width, height, v.Rectilinear(width, height))
}

func checkDimensions(width int, height int) error {
	if width < 1 || height < 1 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimension, width, height)
	}
	return nil
}
