package maze

import (
	"fmt"

	"goose-server/internal/domain"
	"goose-server/pkg/logger"
	"goose-server/pkg/rng"

	"github.com/sirupsen/logrus"
	"github.com/zyedidia/generic/mapset"
)

// Узлы решетки стоят через клетку, между ними - стена, которую можно прорыть.
var carveDirections = [4]domain.TilePos{{X: 0, Y: 2}, {X: 2, Y: 0}, {X: 0, Y: -2}, {X: -2, Y: 0}}

// Builder собирает лабиринт: сетка -> DFS -> предметы -> торговцы -> тайники.
// Порядок проходов фиксирован, все случайные числа берутся из одного потока.
type Builder struct {
	width   int
	height  int
	balance domain.Balance
	stream  *rng.Stream
	log     *logrus.Entry

	m *Maze
}

// NewBuilder создает builder с размером по умолчанию 41x31
func NewBuilder(stream *rng.Stream) *Builder {
	return &Builder{
		width:   41,
		height:  31,
		balance: domain.DefaultBalance(),
		stream:  stream,
		log:     logger.Component("maze"),
	}
}

// WithSize устанавливает размер сетки
func (b *Builder) WithSize(width, height int) *Builder {
	b.width = width
	b.height = height
	return b
}

// WithBalance задает плотности и радиусы размещения
func (b *Builder) WithBalance(balance domain.Balance) *Builder {
	b.balance = balance
	return b
}

// Build генерирует лабиринт. Поток сбрасывается к своему зерну перед первым вызовом,
// так что одинаковое зерно дает одинаковую сетку и раскладку объектов.
func (b *Builder) Build() (*Maze, error) {
	if b.width < MinSize || b.height < MinSize {
		return nil, fmt.Errorf("build %dx%d: %w", b.width, b.height, domain.ErrGenerationDegenerate)
	}

	b.stream.Reseed(b.stream.Seed())

	grid := make([][]domain.Cell, b.height)
	for y := range grid {
		grid[y] = make([]domain.Cell, b.width) // все Wall
	}
	b.m = &Maze{
		Width:  b.width,
		Height: b.height,
		Seed:   b.stream.Seed(),
		Grid:   grid,
		Start:  domain.TilePos{X: 1, Y: 1},
		Exit:   domain.TilePos{X: b.width - 2, Y: b.height - 2},
	}

	b.carve()
	b.openExit()
	b.placeItems()
	b.placeMerchants()
	b.placeSecretRooms()

	b.log.WithFields(logrus.Fields{
		"seed":         b.m.Seed,
		"size":         fmt.Sprintf("%dx%d", b.width, b.height),
		"path_cells":   b.m.PathCount(),
		"items":        len(b.m.Items),
		"merchants":    len(b.m.Merchants),
		"secret_rooms": len(b.m.SecretRooms),
		"draws":        b.stream.Draws(),
	}).Debug("Maze generated")

	return b.m, nil
}

// carve - рандомизированный DFS с явным стеком по узлам с нечетными координатами
func (b *Builder) carve() {
	m := b.m
	start := m.Start
	visited := mapset.New[domain.TilePos]()
	visited.Put(start)
	m.Grid[start.Y][start.X] = domain.Path

	stack := []domain.TilePos{start}
	neighbors := make([]domain.TilePos, 0, len(carveDirections))

	for len(stack) > 0 {
		cur := stack[len(stack)-1]

		neighbors = neighbors[:0]
		for _, d := range carveDirections {
			n := cur.Add(d.X, d.Y)
			if n.X > 0 && n.X < m.Width-1 && n.Y > 0 && n.Y < m.Height-1 && !visited.Has(n) {
				neighbors = append(neighbors, n)
			}
		}

		if len(neighbors) == 0 {
			stack = stack[:len(stack)-1]
			continue
		}

		next := neighbors[b.stream.Intn(len(neighbors))]
		m.Grid[(cur.Y+next.Y)/2][(cur.X+next.X)/2] = domain.Path
		m.Grid[next.Y][next.X] = domain.Path
		visited.Put(next)
		stack = append(stack, next)
	}
}

// openExit принудительно открывает выход. Если DFS до него не дошел
// (обе координаты четные), прокладывает короткую перемычку к ближайшему коридору.
func (b *Builder) openExit() {
	m := b.m
	cur := m.Exit
	m.Grid[cur.Y][cur.X] = domain.Path

	chain := mapset.New[domain.TilePos]()
	chain.Put(cur)
	for !b.touchesPath(cur, chain) {
		if cur.X%2 == 0 && cur.X > 1 {
			cur = cur.Add(-1, 0)
		} else if cur.Y > 1 {
			cur = cur.Add(0, -1)
		} else {
			panic(fmt.Sprintf("maze: cannot connect exit %+v", m.Exit))
		}
		m.Grid[cur.Y][cur.X] = domain.Path
		chain.Put(cur)
	}
}

func (b *Builder) touchesPath(t domain.TilePos, skip mapset.Set[domain.TilePos]) bool {
	for _, d := range orthogonal {
		n := t.Add(d.X, d.Y)
		if b.m.IsWalkable(n.X, n.Y) && !skip.Has(n) {
			return true
		}
	}
	return false
}

// placeItems: на каждой проходимой клетке бросок плотности, затем выбор яйцо/еда
func (b *Builder) placeItems() {
	m := b.m
	for y := 1; y < m.Height-1; y++ {
		for x := 1; x < m.Width-1; x++ {
			if m.Grid[y][x] != domain.Path {
				continue
			}
			if !b.stream.Chance(b.balance.ItemDensity) {
				continue
			}
			kind := domain.ItemFood
			if b.stream.Chance(b.balance.GoldenEggShare) {
				kind = domain.ItemGoldenEgg
			}
			m.Items = append(m.Items, domain.NewItem(kind, domain.TilePos{X: x, Y: y}))
		}
	}
}

// placeMerchants: как предметы, но не ближе радиуса исключения к старту и выходу
func (b *Builder) placeMerchants() {
	m := b.m
	radius := b.balance.MerchantExclusionRadius
	for y := 1; y < m.Height-1; y++ {
		for x := 1; x < m.Width-1; x++ {
			if m.Grid[y][x] != domain.Path {
				continue
			}
			t := domain.TilePos{X: x, Y: y}
			if t.Chebyshev(m.Start) < radius || t.Chebyshev(m.Exit) < radius {
				continue
			}
			if b.stream.Chance(b.balance.MerchantDensity) {
				m.Merchants = append(m.Merchants, domain.NewMerchant(len(m.Merchants), t, b.balance))
			}
		}
	}
}

// placeSecretRooms: стены с проходом по соседству, бросок шанса, первые N по порядку обхода
func (b *Builder) placeSecretRooms() {
	m := b.m
	var candidates []domain.TilePos
	none := mapset.New[domain.TilePos]()
	for y := 2; y < m.Height-2; y++ {
		for x := 2; x < m.Width-2; x++ {
			if m.Grid[y][x] != domain.Wall {
				continue
			}
			t := domain.TilePos{X: x, Y: y}
			if !b.touchesPath(t, none) {
				continue
			}
			if b.stream.Chance(b.balance.SecretRoomChance) {
				candidates = append(candidates, t)
			}
		}
	}

	if len(candidates) > b.balance.SecretRoomCap {
		candidates = candidates[:b.balance.SecretRoomCap]
	}
	for _, t := range candidates {
		room := domain.NewSecretRoom(t)
		m.SecretRooms = append(m.SecretRooms, room)
		m.Items = append(m.Items, room.Item)
	}
}

// Generate - короткая форма для NewBuilder(rng.New(seed)).WithSize(...).Build()
func Generate(width, height int, seed int64, balance domain.Balance) (*Maze, error) {
	return NewBuilder(rng.New(seed)).WithSize(width, height).WithBalance(balance).Build()
}
