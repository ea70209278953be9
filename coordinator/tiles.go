package coordinator

import (
	"fmt"
	"strconv"
)

// TileGrid describes a square grid of julia sets: columns vary the real part of c and rows
// its imaginary part, both evenly spaced over [Low, High]. One composite image is made per
// threshold.
type TileGrid struct {
	High       float64
	Low        float64
	Steps      uint
	Thresholds []float64
}

func (tg *TileGrid) String() string {
	output := "\nTile grid\n"
	output += fmt.Sprintf("Range: [%f, %f]\n", tg.Low, tg.High)
	output += fmt.Sprintf("Steps: %d\n", tg.Steps)
	output += fmt.Sprintf("Thresholds: %v\n", tg.Thresholds)
	return output
}

func (tg *TileGrid) Verify() error {
	if tg.Low == 0 && tg.High == 0 {
		tg.Low, tg.High = -1.5, 1.5
	}
	if tg.Steps == 0 {
		tg.Steps = 7
	}
	if len(tg.Thresholds) == 0 {
		tg.Thresholds = []float64{0.5, 1.0, 1.5, 2.0, 2.5}
	}

	if !(tg.High > tg.Low) {
		return fmt.Errorf("tile range [%f, %f] is empty", tg.Low, tg.High)
	}
	for _, threshold := range tg.Thresholds {
		if !(threshold > 0) {
			return fmt.Errorf("tile threshold %f must be positive", threshold)
		}
	}
	return nil
}

// Value is the parameter component of the given column or row.
func (tg *TileGrid) Value(index uint) float64 {
	if tg.Steps <= 1 {
		return tg.Low
	}
	interval := (tg.High - tg.Low) / float64(tg.Steps-1)
	return tg.Low + float64(index)*interval
}

// TileImageName is the file name of the composite for a threshold.
func TileImageName(threshold float64) string {
	return fmt.Sprintf("tiles_threshold_%s.png", strconv.FormatFloat(threshold, 'f', 1, 64))
}
