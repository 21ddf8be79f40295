package systems

import (
	"goose-server/internal/domain"
)

// Walkable - то, что движению нужно знать о лабиринте
type Walkable interface {
	IsWalkable(tileX, tileY int) bool
}

// MovementResult - результат вычисления движения
type MovementResult struct {
	NewPos   domain.PixelPos
	HasMoved bool
	IsWall   bool // целевая клетка непроходима
}

// CalculateMove вычисляет новую позицию игрока за dt. Не меняет состояние!
// Скольжения вдоль стены нет: либо вся позиция меняется, либо ничего.
func CalculateMove(p *domain.Player, dx, dy float64, grid Walkable, dt float64) MovementResult {
	res := MovementResult{NewPos: p.Pos}
	if !p.Alive || (dx == 0 && dy == 0) {
		return res
	}

	step := p.Speed() * dt
	target := domain.PixelPos{X: p.Pos.X + dx*step, Y: p.Pos.Y + dy*step}
	tile := target.Tile()

	if !grid.IsWalkable(tile.X, tile.Y) {
		res.IsWall = true
		return res
	}

	res.NewPos = target
	res.HasMoved = true
	return res
}

// MovePlayer применяет CalculateMove к игроку
func MovePlayer(p *domain.Player, dx, dy float64, grid Walkable, dt float64) MovementResult {
	res := CalculateMove(p, dx, dy, grid, dt)
	if res.HasMoved {
		p.Pos = res.NewPos
		p.Facing = domain.TilePos{X: sign(dx), Y: sign(dy)}
	}
	return res
}

func sign(v float64) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
