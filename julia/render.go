package julia

import (
	"fmt"
	"image"
	"runtime"

	"JuliaSet/task"

	"golang.org/x/sync/errgroup"
)

// DefaultBound matches the range of a single 8-bit channel.
const DefaultBound = 255

// Options describes one render. Step and Mapper are shared by every worker.
type Options struct {
	Width     int
	Height    int
	Step      Step
	Mapper    Mapper
	Threshold float64
	// Bound caps the iteration count. Zero means DefaultBound.
	Bound int
	// Workers is the size of the worker pool used by ParallelImage. Zero means one
	// worker per CPU.
	Workers int
}

func (o Options) verify() (Options, error) {
	if err := checkDimensions(o.Width, o.Height); err != nil {
		return o, err
	}
	if o.Step == nil {
		return o, ErrMissingStep
	}
	if o.Mapper == nil {
		return o, ErrMissingMapper
	}
	if !(o.Threshold > 0) {
		return o, fmt.Errorf("%w: %f", ErrInvalidThreshold, o.Threshold)
	}
	if o.Bound <= 0 {
		o.Bound = DefaultBound
	}
	if o.Workers <= 0 {
		o.Workers = runtime.NumCPU()
	}
	return o, nil
}

func (o *Options) pixel(x int, y int) uint8 {
	count := EscapeTime(o.Mapper(x, y), o.Step, o.Threshold, o.Bound)
	if count > 255 {
		return 255
	}
	return uint8(count)
}

// SequentialImage renders the image on the calling goroutine, one row after another.
func SequentialImage(o Options) (*image.Gray, error) {
	o, err := o.verify()
	if err != nil {
		return nil, err
	}

	img := image.NewGray(image.Rect(0, 0, o.Width, o.Height))
	for y := 0; y < o.Height; y++ {
		row := img.Pix[y*img.Stride : y*img.Stride+o.Width]
		for x := range row {
			row[x] = o.pixel(x, y)
		}
	}
	return img, nil
}

// ParallelImage renders the image with a pool of o.Workers goroutines. Workers claim whole
// rows from a shared cursor, fill a private scratch row and copy it into the image at the
// row's offset. Rows are disjoint, so the copies need no lock. The result is identical to
// SequentialImage for the same options.
//
// If any worker panics the render is abandoned and the panic is returned as an error
// wrapping ErrWorkerPanic; a partially written image is never returned.
func ParallelImage(o Options) (*image.Gray, error) {
	o, err := o.verify()
	if err != nil {
		return nil, err
	}

	img := image.NewGray(image.Rect(0, 0, o.Width, o.Height))
	rows := task.NewCursor(o.Height)

	var g errgroup.Group
	for w := 0; w < o.Workers; w++ {
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					rows.Abort()
					err = fmt.Errorf("%w: worker %d after %d of %d rows: %v", ErrWorkerPanic, w, rows.Claimed(), o.Height, r)
				}
			}()

			scratch := make([]uint8, o.Width)
			for {
				y, ok := rows.Next()
				if !ok {
					return nil
				}
				for x := range scratch {
					scratch[x] = o.pixel(x, y)
				}
				copy(img.Pix[y*img.Stride:y*img.Stride+o.Width], scratch)
			}
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return img, nil
}
