package julia

import (
	"fmt"
	"image"

	"JuliaSet/task"

	"github.com/BrugadaSyndrome/bslogger"
)

// Settings are the render parameters shared by every task of a job. The coordinator hands
// them to workers so both sides render a task the same way.
type Settings struct {
	logger bslogger.Logger

	Bound       int
	Height      int
	Rectilinear bool
	Threshold   float64
	Viewport    Viewport
	Width       int
	Workers     int
}

func (s *Settings) String() string {
	output := "\nRender settings\n"
	output += fmt.Sprintf("Bound: %d\n", s.Bound)
	output += fmt.Sprintf("Height: %d\n", s.Height)
	output += fmt.Sprintf("Rectilinear: %t\n", s.Rectilinear)
	output += fmt.Sprintf("Threshold: %f\n", s.Threshold)
	output += fmt.Sprintf("Viewport: %s\n", s.Viewport)
	output += fmt.Sprintf("Width: %d\n", s.Width)
	output += fmt.Sprintf("Workers: %d\n", s.Workers)
	return output
}

func (s *Settings) Verify() error {
	s.logger = bslogger.NewLogger("RenderSettings", bslogger.Normal, nil)

	if s.Bound <= 0 {
		s.Bound = DefaultBound
	}
	if s.Height <= 0 {
		s.Height = 600
	}
	if s.Threshold <= 0 {
		s.Threshold = 2.0
	}
	if s.Viewport == (Viewport{}) {
		s.Viewport = DefaultViewport
	}
	if s.Width <= 0 {
		s.Width = 800
	}
	// s.Workers <= 0 means one worker per CPU

	if s.Bound > 255 {
		s.logger.Info(fmt.Sprintf("Bound %d is above 255; pixel values will be clamped", s.Bound))
	}

	return s.Viewport.Validate()
}

// Mapper builds the coordinate mapper for images of the configured size.
func (s *Settings) Mapper() (Mapper, error) {
	if s.Rectilinear {
		return NewRectilinearMapper(s.Width, s.Height, s.Viewport)
	}
	return NewStretchMapper(s.Width, s.Height, s.Viewport)
}

// Render draws the julia set of z*z + t.Parameter. A task without its own threshold uses
// the configured one. The settings must have been through Verify: a zero Viewport is
// rejected, not defaulted.
func (s *Settings) Render(t task.Task) (*image.Gray, error) {
	mapper, err := s.Mapper()
	if err != nil {
		return nil, err
	}

	threshold := t.Threshold
	if threshold <= 0 {
		threshold = s.Threshold
	}

	return ParallelImage(Options{
		Width:     s.Width,
		Height:    s.Height,
		Step:      NewJulia(t.Parameter),
		Mapper:    mapper,
		Threshold: threshold,
		Bound:     s.Bound,
		Workers:   s.Workers,
	})
}
