package maze

import (
	"fmt"

	"goose-server/internal/domain"

	"github.com/zyedidia/generic/mapset"
)

// MinSize - минимальная ширина и высота, при которой DFS успевает что-то прорыть
const MinSize = 5

// Maze - сгенерированный лабиринт. После Build сетка только читается.
type Maze struct {
	Width  int
	Height int
	Seed   int64
	Grid   [][]domain.Cell // [y][x]

	Start domain.TilePos
	Exit  domain.TilePos

	Items       []*domain.Item
	Merchants   []*domain.Merchant
	SecretRooms []*domain.SecretRoom
}

// InBounds проверяет, что клетка внутри сетки
func (m *Maze) InBounds(x, y int) bool {
	return x >= 0 && x < m.Width && y >= 0 && y < m.Height
}

// At возвращает клетку. Выход за границы - ошибка программиста.
func (m *Maze) At(x, y int) domain.Cell {
	if !m.InBounds(x, y) {
		panic(fmt.Sprintf("maze: tile (%d,%d) out of bounds %dx%d", x, y, m.Width, m.Height))
	}
	return m.Grid[y][x]
}

// IsWalkable - можно ли встать на клетку. За границами всегда false.
func (m *Maze) IsWalkable(x, y int) bool {
	if !m.InBounds(x, y) {
		return false
	}
	return m.Grid[y][x] == domain.Path
}

// IsExit проверяет, что клетка - выход
func (m *Maze) IsExit(x, y int) bool {
	return x == m.Exit.X && y == m.Exit.Y
}

// ItemAt возвращает первый неподобранный предмет в клетке под точкой
func (m *Maze) ItemAt(pos domain.PixelPos) *domain.Item {
	tile := pos.Tile()
	for _, it := range m.Items {
		if it.Kind == domain.ItemSecret {
			continue
		}
		if !it.Picked && it.Tile == tile {
			return it
		}
	}
	return nil
}

// MerchantNear возвращает первого торговца в пределах radius клеток (по Чебышеву)
func (m *Maze) MerchantNear(pos domain.PixelPos, radius int) *domain.Merchant {
	tile := pos.Tile()
	for _, mr := range m.Merchants {
		if mr.Tile.Chebyshev(tile) <= radius {
			return mr
		}
	}
	return nil
}

// SecretRoomAt возвращает тайник в указанной клетке
func (m *Maze) SecretRoomAt(tile domain.TilePos) *domain.SecretRoom {
	for _, r := range m.SecretRooms {
		if r.Tile == tile {
			return r
		}
	}
	return nil
}

// SecretRoomNear ищет ненайденный тайник, соседний по стороне с клеткой игрока
func (m *Maze) SecretRoomNear(tile domain.TilePos) *domain.SecretRoom {
	for _, r := range m.SecretRooms {
		if r.Found || r.Item.Picked {
			continue
		}
		if abs(r.Tile.X-tile.X)+abs(r.Tile.Y-tile.Y) == 1 {
			return r
		}
	}
	return nil
}

// PathCount - число проходимых клеток
func (m *Maze) PathCount() int {
	n := 0
	for y := range m.Grid {
		for x := range m.Grid[y] {
			if m.Grid[y][x] == domain.Path {
				n++
			}
		}
	}
	return n
}

// EdgeCount - число пар соседних проходимых клеток. У дерева EdgeCount = PathCount - 1.
func (m *Maze) EdgeCount() int {
	n := 0
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			if m.Grid[y][x] != domain.Path {
				continue
			}
			if m.IsWalkable(x+1, y) {
				n++
			}
			if m.IsWalkable(x, y+1) {
				n++
			}
		}
	}
	return n
}

var orthogonal = [4]domain.TilePos{{X: 0, Y: 1}, {X: 1, Y: 0}, {X: 0, Y: -1}, {X: -1, Y: 0}}

// Reachable возвращает множество клеток, достижимых из from по проходимым клеткам (BFS)
func (m *Maze) Reachable(from domain.TilePos) mapset.Set[domain.TilePos] {
	visited := mapset.New[domain.TilePos]()
	if !m.IsWalkable(from.X, from.Y) {
		return visited
	}

	queue := []domain.TilePos{from}
	visited.Put(from)
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, d := range orthogonal {
			next := cur.Add(d.X, d.Y)
			if m.IsWalkable(next.X, next.Y) && !visited.Has(next) {
				visited.Put(next)
				queue = append(queue, next)
			}
		}
	}
	return visited
}

// Route - кратчайший путь по клеткам от from до to включительно, nil если пути нет
func (m *Maze) Route(from, to domain.TilePos) []domain.TilePos {
	if !m.IsWalkable(from.X, from.Y) || !m.IsWalkable(to.X, to.Y) {
		return nil
	}

	prev := map[domain.TilePos]domain.TilePos{from: from}
	queue := []domain.TilePos{from}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur == to {
			break
		}
		for _, d := range orthogonal {
			next := cur.Add(d.X, d.Y)
			if _, seen := prev[next]; seen || !m.IsWalkable(next.X, next.Y) {
				continue
			}
			prev[next] = cur
			queue = append(queue, next)
		}
	}

	if _, ok := prev[to]; !ok {
		return nil
	}
	var path []domain.TilePos
	for cur := to; cur != from; cur = prev[cur] {
		path = append(path, cur)
	}
	path = append(path, from)
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
