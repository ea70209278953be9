// Package colorize maps the grayscale escape-time images onto colors.
//
// The escape time is a single number per pixel so grayscale is its only natural mapping.
// Color helps tell fine details apart, and looks nicer.
package colorize

import (
	"image"
	"image/color"

	"JuliaSet/misc"

	"github.com/lucasb-eyer/go-colorful"
)

// Colorizer maps a grayscale image to a color image of the same size.
type Colorizer interface {
	Colorize(img *image.Gray) *image.RGBA
}

// HSL is a color in the HSL cylinder: hue in [0, 360], saturation and lightness in [0, 1].
type HSL struct {
	H float64
	S float64
	L float64
}

var (
	// Deep under the dark blues, almost violet
	DefaultBegin = HSL{H: 310, S: 1, L: 0}
	// Just over the region where yellow becomes orange
	DefaultEnd = HSL{H: 30, S: 1, L: 1}
)

// HSLColorizer walks a spiral around the outside of the HSL cylinder: black maps to Begin,
// white to End, and the gray levels in between to a linear mix of the two. Hue does not
// wrap around.
// https://en.wikipedia.org/wiki/HSL_and_HSV
type HSLColorizer struct {
	palette [256]color.RGBA
}

func NewHSLColorizer() *HSLColorizer {
	return NewHSLColorizerBetween(DefaultBegin, DefaultEnd)
}

func NewHSLColorizerBetween(begin HSL, end HSL) *HSLColorizer {
	c := &HSLColorizer{}
	for i := range c.palette {
		t := float64(i) / 255
		mixed := colorful.Hsl(
			misc.LerpFloat64(begin.H, end.H, t),
			misc.LerpFloat64(begin.S, end.S, t),
			misc.LerpFloat64(begin.L, end.L, t),
		)
		r, g, b := mixed.Clamped().RGB255()
		c.palette[i] = color.RGBA{R: r, G: g, B: b, A: 255}
	}
	return c
}

// ColorAt returns the color for one gray level.
func (c *HSLColorizer) ColorAt(gray uint8) color.RGBA {
	return c.palette[gray]
}

func (c *HSLColorizer) Colorize(img *image.Gray) *image.RGBA {
	bounds := img.Bounds()
	out := image.NewRGBA(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			out.SetRGBA(x, y, c.ColorAt(img.GrayAt(x, y).Y))
		}
	}
	return out
}

// Grayscale keeps the escape times as they are, expanded to RGBA.
type Grayscale struct{}

func (Grayscale) Colorize(img *image.Gray) *image.RGBA {
	bounds := img.Bounds()
	out := image.NewRGBA(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			v := img.GrayAt(x, y).Y
			out.SetRGBA(x, y, color.RGBA{R: v, G: v, B: v, A: 255})
		}
	}
	return out
}
