package coordinator

import (
	"fmt"

	"JuliaSet/task"
)

// DefaultParameter is the c of the default julia set z*z - 0.221 - 0.713i.
var DefaultParameter = complex(-0.221, -0.713)

// Job is the set of tasks a coordinator works through. Every image is a grid of
// Columns x Rows tiles; each task renders one tile of one image.
type Job struct {
	Columns uint
	Names   map[uint]string
	Rows    uint
	Tasks   []task.Task
}

func (j *Job) String() string {
	output := "{Job "
	output += fmt.Sprintf("Images: %d ", len(j.Names))
	output += fmt.Sprintf("Grid: %dx%d ", j.Columns, j.Rows)
	output += fmt.Sprintf("Tasks: %d}", len(j.Tasks))
	return output
}

// TilesPerImage is how many tasks make up one image.
func (j *Job) TilesPerImage() int {
	return int(j.Columns * j.Rows)
}

// NewRenderJob renders a single image of z*z + parameter.
func NewRenderJob(name string, parameter complex128, threshold float64) Job {
	return Job{
		Columns: 1,
		Names:   map[uint]string{0: name},
		Rows:    1,
		Tasks:   []task.Task{task.NewTask(0, 0, parameter, threshold)},
	}
}

// NewAnimationJob renders one numbered image per frame along the transitions.
func NewAnimationJob(transitions []Transition, multiply int, threshold float64) Job {
	job := Job{
		Columns: 1,
		Names:   make(map[uint]string),
		Rows:    1,
	}
	for i, parameter := range AnimationFrames(transitions, multiply) {
		frame := uint(i)
		job.Names[frame] = fmt.Sprintf("julia_set_%06d.png", frame)
		job.Tasks = append(job.Tasks, task.NewTask(frame, frame, parameter, threshold))
	}
	return job
}

// NewTileJob renders one composite image per threshold of the grid.
func NewTileJob(grid TileGrid) Job {
	job := Job{
		Columns: grid.Steps,
		Names:   make(map[uint]string),
		Rows:    grid.Steps,
	}

	var id uint
	for imageNumber, threshold := range grid.Thresholds {
		job.Names[uint(imageNumber)] = TileImageName(threshold)
		for row := uint(0); row < grid.Steps; row++ {
			imaginary := grid.Value(row)
			for column := uint(0); column < grid.Steps; column++ {
				parameter := complex(grid.Value(column), imaginary)
				job.Tasks = append(job.Tasks, task.NewTileTask(id, uint(imageNumber), parameter, threshold, column, row))
				id++
			}
		}
	}
	return job
}
