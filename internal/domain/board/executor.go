package board

import (
	"errors"
	"fmt"
)

var (
	ErrCoordinateTaken       = errors.New("coordinate taken")
	ErrCoordinateUnreachable = errors.New("coordinate unreachable")
)

type PlacementError struct {
	Coord Coord
	Err   error
}

func (e *PlacementError) Error() string {
	return fmt.Sprintf("cannot place tile at (%d,%d): %v", e.Coord.X, e.Coord.Y, e.Err)
}

func (e *PlacementError) Unwrap() error {
	return e.Err
}

// Executor is the only writer of board cells.
type Executor struct{}

// CanPlace reports whether a tile may be placed at c: the coordinate must be
// on the frontier and not yet placed.
func (Executor) CanPlace(b *Board, c Coord) error {
	if b.IsPlaced(c) {
		return &PlacementError{Coord: c, Err: ErrCoordinateTaken}
	}
	if !b.IsUnexplored(c) {
		return &PlacementError{Coord: c, Err: ErrCoordinateUnreachable}
	}
	return nil
}

// AddTile places t and grows the frontier around it. Nothing is mutated when
// a precondition fails. The returned board is b.
func (e Executor) AddTile(b *Board, t Tile) (*Board, error) {
	c := t.Coord()
	if err := e.CanPlace(b, c); err != nil {
		return b, err
	}
	b.cells[c] = Cell{State: CellPlaced, Tile: t}
	for _, n := range Adjacent(b, c) {
		if _, known := b.cells[n]; known {
			// existing frontier stubs keep their metadata
			continue
		}
		b.cells[n] = Cell{State: CellUnexplored, Tile: NewTile(n, "")}
	}
	return b, nil
}

// Adjacent returns the north, south, east and west neighbours of c that hold
// no placed tile.
func Adjacent(b *Board, c Coord) []Coord {
	out := make([]Coord, 0, 4)
	for _, n := range c.neighbours() {
		if b.IsPlaced(n) {
			continue
		}
		out = append(out, n)
	}
	return out
}
