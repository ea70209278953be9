package task

import (
	"fmt"
)

// Task is a single julia set render: the parameter c of z*z + c, the escape threshold and
// where the result goes. Tasks travel between coordinator and workers over net/rpc.
type Task struct {
	ID            uint
	ImageNumber   uint
	Parameter     complex128
	Pixels        []uint8
	Threshold     float64
	Tile          Coordinate
	WorkerAddress string
}

func NewTask(id uint, imageNumber uint, parameter complex128, threshold float64) Task {
	return Task{
		ID:          id,
		ImageNumber: imageNumber,
		Parameter:   parameter,
		Threshold:   threshold,
	}
}

// NewTileTask is a task rendering one tile of a composite image.
func NewTileTask(id uint, imageNumber uint, parameter complex128, threshold float64, column uint, row uint) Task {
	t := NewTask(id, imageNumber, parameter, threshold)
	t.Tile = Coordinate{Column: column, Row: row}
	return t
}

func (t *Task) String() string {
	output := "{Task "
	output += fmt.Sprintf("ID: %d ", t.ID)
	output += fmt.Sprintf("Image Number: %d ", t.ImageNumber)
	output += fmt.Sprintf("Parameter: %v ", t.Parameter)
	output += fmt.Sprintf("Threshold: %f ", t.Threshold)
	output += fmt.Sprintf("Tile: %s ", t.Tile.String())
	output += fmt.Sprintf("Pixel Count: %d}", len(t.Pixels))
	return output
}

// Done reports whether the task carries a result.
func (t *Task) Done() bool {
	return len(t.Pixels) > 0
}

// AddResult records the rendered pixels for this task.
func (t *Task) AddResult(pixels []uint8) error {
	if len(pixels) == 0 {
		return fmt.Errorf("task %d: empty result", t.ID)
	}
	t.Pixels = pixels
	return nil
}
