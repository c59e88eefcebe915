// Package maze generates deterministic perfect mazes from string seeds.
package maze

// Tile is the state of a single grid cell. The numeric values are the wire
// format: 0 is open, 1 is wall.
type Tile int

const (
	// TileOpen is a carved, walkable cell.
	TileOpen Tile = 0
	// TileWall is an uncarved cell.
	TileWall Tile = 1
)

// IsPassable reports whether the tile can be walked on.
func (t Tile) IsPassable() bool {
	return t == TileOpen
}

// Rune returns the tile's display character.
func (t Tile) Rune() rune {
	if t == TileOpen {
		return '.'
	}
	return '#'
}

// Point is a cell coordinate, 0-indexed from the top-left corner.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type direction struct {
	dx, dy int
}

// directions lists east, west, south, north. The order is part of the
// generation contract: changing it changes every maze.
var directions = [4]direction{
	{dx: 1, dy: 0},
	{dx: -1, dy: 0},
	{dx: 0, dy: 1},
	{dx: 0, dy: -1},
}
