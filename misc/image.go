package misc

import (
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/nfnt/resize"
)

func LerpFloat64(v1 float64, v2 float64, fraction float64) float64 {
	return v1 + (v2-v1)*fraction
}

func LerpComplex(v1 complex128, v2 complex128, fraction float64) complex128 {
	return complex(LerpFloat64(real(v1), real(v2), fraction), LerpFloat64(imag(v1), imag(v2), fraction))
}

// Resize scales img to width x height with a Lanczos3 filter.
func Resize(img image.Image, width int, height int) image.Image {
	bounds := img.Bounds()
	if bounds.Dx() == width && bounds.Dy() == height {
		return img
	}
	return resize.Resize(uint(width), uint(height), img, resize.Lanczos3)
}

func SavePNG(fileName string, img image.Image) error {
	f, err := os.Create(fileName)
	if err != nil {
		return fmt.Errorf("unable to create image %s - %w", fileName, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("unable to save image %s - %w", fileName, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("unable to close image %s - %w", fileName, err)
	}
	return nil
}
