package julia

import "fmt"

// Viewport is the rectangle of the complex plane drawn onto the image.
type Viewport struct {
	MinX float64
	MaxX float64
	MinY float64
	MaxY float64
}

// DefaultViewport covers [-1, 1] on both axes, where julia sets are most interesting.
var DefaultViewport = Viewport{MinX: -1, MaxX: 1, MinY: -1, MaxY: 1}

func (v Viewport) String() string {
	return fmt.Sprintf("{Viewport X: [%f, %f] Y: [%f, %f]}", v.MinX, v.MaxX, v.MinY, v.MaxY)
}

func (v Viewport) Validate() error {
	if !(v.MaxX > v.MinX) || !(v.MaxY > v.MinY) {
		return fmt.Errorf("%w: %s", ErrInvalidViewport, v)
	}
	return nil
}

func (v Viewport) Width() float64 {
	return v.MaxX - v.MinX
}

func (v Viewport) Height() float64 {
	return v.MaxY - v.MinY
}

// Rectilinear expands the narrower axis of the viewport about its center so that its
// aspect ratio matches an image of width x height pixels.
func (v Viewport) Rectilinear(width int, height int) Viewport {
	pixelRatio := float64(width) / float64(height)
	logicalRatio := v.Width() / v.Height()

	switch {
	case pixelRatio > logicalRatio:
		centerX := v.MinX + v.Width()/2
		halfWidth := v.Width() / 2 * (pixelRatio / logicalRatio)
		v.MinX, v.MaxX = centerX-halfWidth, centerX+halfWidth
	case pixelRatio < logicalRatio:
		centerY := v.MinY + v.Height()/2
		halfHeight := v.Height() / 2 * (logicalRatio / pixelRatio)
		v.MinY, v.MaxY = centerY-halfHeight, centerY+halfHeight
	}
	return v
}
