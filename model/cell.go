package model

// Cell is the state of a single grid position
type Cell uint8

const (
	Dead Cell = iota
	Alive
)

// String returns "alive" or "dead"
func (c Cell) String() string {
	if c == Alive {
		return "alive"
	}
	return "dead"
}

// CellOf converts a boolean liveness into a Cell
func CellOf(alive bool) Cell {
	if alive {
		return Alive
	}
	return Dead
}
