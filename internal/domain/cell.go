package domain

import "math"

// Cell - тип клетки лабиринта
type Cell uint8

const (
	Wall Cell = iota
	Path
)

func (c Cell) String() string {
	if c == Path {
		return "PATH"
	}
	return "WALL"
}

// TilePos - координаты клетки сетки
type TilePos struct {
	X, Y int
}

// Add возвращает соседнюю клетку со смещением
func (t TilePos) Add(dx, dy int) TilePos {
	return TilePos{X: t.X + dx, Y: t.Y + dy}
}

// Chebyshev - расстояние "по-королевски" (диагональ = 1)
func (t TilePos) Chebyshev(o TilePos) int {
	return max(abs(t.X-o.X), abs(t.Y-o.Y))
}

// Center - центр клетки в пикселях
func (t TilePos) Center() PixelPos {
	return PixelPos{
		X: float64(t.X*TileSize) + TileSize/2,
		Y: float64(t.Y*TileSize) + TileSize/2,
	}
}

// PixelPos - непрерывная позиция в пикселях
type PixelPos struct {
	X, Y float64
}

// Tile переводит пиксели в координаты клетки
func (p PixelPos) Tile() TilePos {
	return TilePos{
		X: int(math.Floor(p.X / TileSize)),
		Y: int(math.Floor(p.Y / TileSize)),
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
