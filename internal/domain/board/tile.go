package board

type Terrain string

const (
	TerrainGrass  Terrain = "grass"
	TerrainForest Terrain = "forest"
	TerrainRock   Terrain = "rock"
	TerrainWater  Terrain = "water"
)

type Coord struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (c Coord) neighbours() [4]Coord {
	return [4]Coord{
		{X: c.X, Y: c.Y - 1},
		{X: c.X, Y: c.Y + 1},
		{X: c.X + 1, Y: c.Y},
		{X: c.X - 1, Y: c.Y},
	}
}

type Tile struct {
	X       int     `json:"x"`
	Y       int     `json:"y"`
	Terrain Terrain `json:"terrain,omitempty"`
}

func NewTile(c Coord, terrain Terrain) Tile {
	return Tile{X: c.X, Y: c.Y, Terrain: terrain}
}

func (t Tile) Coord() Coord {
	return Coord{X: t.X, Y: t.Y}
}
