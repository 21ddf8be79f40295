package maze

import (
	"testing"

	"goose-server/internal/domain"
)

// fixture: коридор по y=1 от x=1 до x=5, выход (5,3) через (5,2)
func newFixture() *Maze {
	rows := []string{
		"#######",
		"#.....#",
		"#####.#",
		"#####.#",
		"#######",
	}
	m := &Maze{
		Width:  len(rows[0]),
		Height: len(rows),
		Start:  domain.TilePos{X: 1, Y: 1},
		Exit:   domain.TilePos{X: 5, Y: 3},
	}
	for _, row := range rows {
		cells := make([]domain.Cell, len(row))
		for x, ch := range row {
			if ch == '.' {
				cells[x] = domain.Path
			}
		}
		m.Grid = append(m.Grid, cells)
	}
	return m
}

func TestMaze_IsWalkable(t *testing.T) {
	m := newFixture()
	tests := []struct {
		x, y int
		want bool
	}{
		{1, 1, true},
		{0, 0, false},
		{5, 3, true},
		{-1, 1, false},
		{7, 1, false},
		{1, 99, false},
	}
	for _, tt := range tests {
		if got := m.IsWalkable(tt.x, tt.y); got != tt.want {
			t.Errorf("IsWalkable(%d,%d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestMaze_AtPanicsOutOfBounds(t *testing.T) {
	m := newFixture()
	defer func() {
		if recover() == nil {
			t.Error("At(-1, 0) should panic")
		}
	}()
	m.At(-1, 0)
}

func TestMaze_ItemAt(t *testing.T) {
	m := newFixture()
	egg := domain.NewItem(domain.ItemGoldenEgg, domain.TilePos{X: 3, Y: 1})
	food := domain.NewItem(domain.ItemFood, domain.TilePos{X: 3, Y: 1})
	m.Items = []*domain.Item{egg, food}

	pos := domain.PixelPos{X: 3*domain.TileSize + 5, Y: domain.TileSize + 30}
	if got := m.ItemAt(pos); got != egg {
		t.Fatalf("ItemAt = %v, want the egg", got)
	}
	egg.Picked = true
	if got := m.ItemAt(pos); got != food {
		t.Fatalf("ItemAt after pickup = %v, want the food", got)
	}
	food.Picked = true
	if got := m.ItemAt(pos); got != nil {
		t.Errorf("ItemAt on empty tile = %v, want nil", got)
	}
}

func TestMaze_MerchantNear(t *testing.T) {
	m := newFixture()
	mr := domain.NewMerchant(0, domain.TilePos{X: 4, Y: 1}, domain.DefaultBalance())
	m.Merchants = []*domain.Merchant{mr}

	if got := m.MerchantNear(domain.TilePos{X: 3, Y: 1}.Center(), 1); got != mr {
		t.Error("merchant one tile away not found")
	}
	if got := m.MerchantNear(domain.TilePos{X: 1, Y: 1}.Center(), 1); got != nil {
		t.Error("merchant three tiles away found with radius 1")
	}
	if got := m.MerchantNear(domain.TilePos{X: 5, Y: 2}.Center(), 1); got != mr {
		t.Error("diagonal neighbour should count (Chebyshev)")
	}
}

func TestMaze_SecretRoomNear(t *testing.T) {
	m := newFixture()
	room := domain.NewSecretRoom(domain.TilePos{X: 2, Y: 2})
	m.SecretRooms = []*domain.SecretRoom{room}

	if got := m.SecretRoomNear(domain.TilePos{X: 2, Y: 1}); got != room {
		t.Error("secret room directly below not found")
	}
	if got := m.SecretRoomNear(domain.TilePos{X: 1, Y: 1}); got != nil {
		t.Error("diagonal should not count for secret rooms")
	}
	room.Found = true
	if got := m.SecretRoomNear(domain.TilePos{X: 2, Y: 1}); got != nil {
		t.Error("found room returned again")
	}
}

func TestMaze_Route(t *testing.T) {
	m := newFixture()
	route := m.Route(m.Start, m.Exit)

	want := []domain.TilePos{{X: 1, Y: 1}, {X: 2, Y: 1}, {X: 3, Y: 1}, {X: 4, Y: 1}, {X: 5, Y: 1}, {X: 5, Y: 2}, {X: 5, Y: 3}}
	if len(route) != len(want) {
		t.Fatalf("route = %v, want %v", route, want)
	}
	for i := range want {
		if route[i] != want[i] {
			t.Errorf("route[%d] = %+v, want %+v", i, route[i], want[i])
		}
	}
	if m.Route(m.Start, domain.TilePos{X: 0, Y: 0}) != nil {
		t.Error("route into a wall should be nil")
	}
}

func TestMaze_Counts(t *testing.T) {
	m := newFixture()
	if m.PathCount() != 7 {
		t.Errorf("PathCount = %d, want 7", m.PathCount())
	}
	if m.EdgeCount() != 6 {
		t.Errorf("EdgeCount = %d, want 6", m.EdgeCount())
	}
}
