package board

import (
	"cmp"
	"slices"
)

var Origin = Coord{X: 0, Y: 0}

type CellState uint8

const (
	CellUnexplored CellState = iota + 1
	CellPlaced
)

type Cell struct {
	State CellState
	Tile  Tile
}

// Board holds every known coordinate in one map. A coordinate is either a
// placed tile or an unexplored frontier stub, never both.
type Board struct {
	cells map[Coord]Cell
}

// NewBoard returns a board whose only cell is the unexplored origin.
func NewBoard() *Board {
	b := &Board{cells: map[Coord]Cell{}}
	b.cells[Origin] = Cell{State: CellUnexplored, Tile: NewTile(Origin, "")}
	return b
}

func (b *Board) Cell(c Coord) (Cell, bool) {
	cell, ok := b.cells[c]
	return cell, ok
}

func (b *Board) IsPlaced(c Coord) bool {
	cell, ok := b.cells[c]
	return ok && cell.State == CellPlaced
}

func (b *Board) IsUnexplored(c Coord) bool {
	cell, ok := b.cells[c]
	return ok && cell.State == CellUnexplored
}

func (b *Board) Tile(c Coord) (Tile, bool) {
	cell, ok := b.cells[c]
	if !ok || cell.State != CellPlaced {
		return Tile{}, false
	}
	return cell.Tile, true
}

func (b *Board) Tiles() []Tile {
	return b.collect(CellPlaced)
}

func (b *Board) Unexplored() []Tile {
	return b.collect(CellUnexplored)
}

func (b *Board) PlacedCount() int {
	return b.count(CellPlaced)
}

func (b *Board) UnexploredCount() int {
	return b.count(CellUnexplored)
}

// Bounds spans the unexplored frontier. An empty frontier yields the zero value.
func (b *Board) Bounds() Bounds {
	first := true
	var out Bounds
	for c, cell := range b.cells {
		if cell.State != CellUnexplored {
			continue
		}
		if first {
			out = Bounds{WidthMin: c.X, WidthMax: c.X, HeightMin: c.Y, HeightMax: c.Y}
			first = false
			continue
		}
		out.WidthMin = min(out.WidthMin, c.X)
		out.WidthMax = max(out.WidthMax, c.X)
		out.HeightMin = min(out.HeightMin, c.Y)
		out.HeightMax = max(out.HeightMax, c.Y)
	}
	return out
}

func (b *Board) Snapshot() Snapshot {
	return Snapshot{Tiles: b.Tiles(), Unexplored: b.Unexplored()}
}

func (b *Board) Clone() *Board {
	out := &Board{cells: make(map[Coord]Cell, len(b.cells))}
	for c, cell := range b.cells {
		out.cells[c] = cell
	}
	return out
}

func (b *Board) collect(state CellState) []Tile {
	out := make([]Tile, 0, len(b.cells))
	for _, cell := range b.cells {
		if cell.State == state {
			out = append(out, cell.Tile)
		}
	}
	slices.SortFunc(out, compareTiles)
	return out
}

func (b *Board) count(state CellState) int {
	n := 0
	for _, cell := range b.cells {
		if cell.State == state {
			n++
		}
	}
	return n
}

func compareTiles(a, b Tile) int {
	if c := cmp.Compare(a.X, b.X); c != 0 {
		return c
	}
	return cmp.Compare(a.Y, b.Y)
}

type Bounds struct {
	WidthMin  int `json:"width_min"`
	WidthMax  int `json:"width_max"`
	HeightMin int `json:"height_min"`
	HeightMax int `json:"height_max"`
}

// Snapshot is a detached, ordered copy of a board suitable for events and JSON.
type Snapshot struct {
	Tiles      []Tile `json:"tiles"`
	Unexplored []Tile `json:"unexplored"`
}
