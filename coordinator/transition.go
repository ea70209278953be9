package coordinator

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"math/cmplx"
	"os"
	"strconv"
	"strings"

	"JuliaSet/misc"
)

// DefaultStepsPerUnit is how many frames a transition gets per unit of distance travelled
// when its path point does not say.
const DefaultStepsPerUnit = 5

// PathPoint is one row of an animation points file: a julia parameter and, optionally,
// the number of frames used to travel from it to the next point.
type PathPoint struct {
	Position complex128
	Steps    int
	HasSteps bool
}

// Transition moves the julia parameter from Start to End over Steps frames.
type Transition struct {
	End   complex128
	Start complex128
	Steps int
}

func (t *Transition) String() string {
	return fmt.Sprintf("{Transition Start: %v End: %v Steps: %d}", t.Start, t.End, t.Steps)
}

// Frames lerps from Start towards End, including Start but not End.
func (t *Transition) Frames(multiply int) []complex128 {
	count := t.Steps * multiply
	frames := make([]complex128, 0, count)
	for i := 0; i < count; i++ {
		frames = append(frames, misc.LerpComplex(t.Start, t.End, float64(i)/float64(count)))
	}
	return frames
}

// PairPoints turns a list of path points into transitions where every start is the
// previous transition's end. The steps of the last point are never used.
func PairPoints(points []PathPoint) []Transition {
	if len(points) < 2 {
		return nil
	}

	transitions := make([]Transition, 0, len(points)-1)
	for i := 1; i < len(points); i++ {
		previous, next := points[i-1], points[i]
		transition := Transition{
			Start: previous.Position,
			End:   next.Position,
			Steps: previous.Steps,
		}
		if !previous.HasSteps {
			transition.Steps = int(math.Ceil(cmplx.Abs(next.Position-previous.Position) * DefaultStepsPerUnit))
		}
		transitions = append(transitions, transition)
	}
	return transitions
}

// AnimationFrames expands transitions into the julia parameter of every frame.
func AnimationFrames(transitions []Transition, multiply int) []complex128 {
	frames := make([]complex128, 0)
	for i := range transitions {
		frames = append(frames, transitions[i].Frames(multiply)...)
	}
	return frames
}

func LoadPathPoints(fileName string) ([]PathPoint, error) {
	file, err := os.Open(fileName)
	if err != nil {
		return nil, fmt.Errorf("unable to open points file %s - %w", fileName, err)
	}
	defer file.Close()

	points, err := ParsePathPoints(file)
	if err != nil {
		return nil, fmt.Errorf("points file %s - %w", fileName, err)
	}
	return points, nil
}

// ParsePathPoints reads CSV rows of `real, imaginary[, steps]`. A first row of three fields
// none of which is a number is taken to be a header; any other bad row is an error.
func ParsePathPoints(r io.Reader) ([]PathPoint, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	reader.Comment = '#'

	points := make([]PathPoint, 0)
	for line := 1; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		if line == 1 && isHeader(record) {
			continue
		}
		point, err := parsePathPoint(record)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		points = append(points, point)
	}
	return points, nil
}

func isHeader(record []string) bool {
	if len(record) != 3 {
		return false
	}
	for _, field := range record {
		if _, err := strconv.ParseFloat(strings.TrimSpace(field), 64); err == nil {
			return false
		}
	}
	return true
}

func parsePathPoint(record []string) (PathPoint, error) {
	if len(record) < 2 || len(record) > 3 {
		return PathPoint{}, fmt.Errorf("expected 2 or 3 fields, got %d", len(record))
	}

	re, err := strconv.ParseFloat(strings.TrimSpace(record[0]), 64)
	if err != nil {
		return PathPoint{}, fmt.Errorf("invalid real part %q", record[0])
	}
	im, err := strconv.ParseFloat(strings.TrimSpace(record[1]), 64)
	if err != nil {
		return PathPoint{}, fmt.Errorf("invalid imaginary part %q", record[1])
	}

	point := PathPoint{Position: complex(re, im)}
	if len(record) == 3 && strings.TrimSpace(record[2]) != "" {
		steps, err := strconv.ParseUint(strings.TrimSpace(record[2]), 10, 32)
		if err != nil {
			return PathPoint{}, fmt.Errorf("invalid steps %q", record[2])
		}
		point.Steps = int(steps)
		point.HasSteps = true
	}
	return point, nil
}
