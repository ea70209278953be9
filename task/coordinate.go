package task

import "fmt"

// Coordinate locates a tile inside the composite image it belongs to.
type Coordinate struct {
	Column uint
	Row    uint
}

func (c *Coordinate) String() string {
	output := "{Coordinate "
	output += fmt.Sprintf("Column: %d ", c.Column)
	output += fmt.Sprintf("Row: %d}", c.Row)
	return output
}
