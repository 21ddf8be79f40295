package maze

import (
	"errors"
	"os"
	"reflect"
	"testing"

	"goose-server/internal/domain"
	"goose-server/pkg/logger"
	"goose-server/pkg/rng"

	"pgregory.net/rapid"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

func TestBuild_Basics(t *testing.T) {
	m, err := Generate(41, 31, 12345, domain.DefaultBalance())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if m.Width != 41 || m.Height != 31 || len(m.Grid) != 31 || len(m.Grid[0]) != 41 {
		t.Fatalf("unexpected dimensions %dx%d", m.Width, m.Height)
	}
	if !m.IsWalkable(m.Start.X, m.Start.Y) {
		t.Errorf("start %+v is a wall", m.Start)
	}
	if !m.IsWalkable(m.Exit.X, m.Exit.Y) {
		t.Errorf("exit %+v is a wall", m.Exit)
	}
	if !m.IsExit(39, 29) {
		t.Errorf("exit should be (39,29), got %+v", m.Exit)
	}

	// Рамка всегда стена
	for x := 0; x < m.Width; x++ {
		if m.IsWalkable(x, 0) || m.IsWalkable(x, m.Height-1) {
			t.Fatalf("border at x=%d is open", x)
		}
	}
}

func TestBuild_RejectsDegenerate(t *testing.T) {
	for _, size := range [][2]int{{4, 10}, {10, 4}, {0, 0}} {
		_, err := Generate(size[0], size[1], 1, domain.DefaultBalance())
		if !errors.Is(err, domain.ErrGenerationDegenerate) {
			t.Errorf("Generate(%d,%d) err = %v, want ErrGenerationDegenerate", size[0], size[1], err)
		}
	}
}

func TestBuild_Placement(t *testing.T) {
	b := domain.DefaultBalance()
	m, err := Generate(61, 61, 777, b)
	if err != nil {
		t.Fatal(err)
	}

	for _, it := range m.Items {
		if it.Kind == domain.ItemSecret {
			continue
		}
		if !m.IsWalkable(it.Tile.X, it.Tile.Y) {
			t.Errorf("item %v placed in a wall at %+v", it.Kind, it.Tile)
		}
	}

	for _, mr := range m.Merchants {
		if !m.IsWalkable(mr.Tile.X, mr.Tile.Y) {
			t.Errorf("merchant %d placed in a wall", mr.ID)
		}
		if mr.Tile.Chebyshev(m.Start) < b.MerchantExclusionRadius || mr.Tile.Chebyshev(m.Exit) < b.MerchantExclusionRadius {
			t.Errorf("merchant %d at %+v is inside the exclusion radius", mr.ID, mr.Tile)
		}
	}

	if len(m.SecretRooms) > b.SecretRoomCap {
		t.Errorf("got %d secret rooms, cap is %d", len(m.SecretRooms), b.SecretRoomCap)
	}
	for _, r := range m.SecretRooms {
		if m.At(r.Tile.X, r.Tile.Y) != domain.Wall {
			t.Errorf("secret room %+v is not a wall", r.Tile)
		}
		if r.Item == nil || r.Item.Kind != domain.ItemSecret {
			t.Errorf("secret room %+v has no secret item", r.Tile)
		}
		touches := false
		for _, d := range orthogonal {
			if m.IsWalkable(r.Tile.X+d.X, r.Tile.Y+d.Y) {
				touches = true
			}
		}
		if !touches {
			t.Errorf("secret room %+v has no adjacent path", r.Tile)
		}
	}
}

func TestBuild_SecretRoomsFillWithHighChance(t *testing.T) {
	b := domain.DefaultBalance()
	b.SecretRoomChance = 1
	m, err := Generate(21, 21, 3, b)
	if err != nil {
		t.Fatal(err)
	}
	if len(m.SecretRooms) != b.SecretRoomCap {
		t.Fatalf("got %d secret rooms, want %d", len(m.SecretRooms), b.SecretRoomCap)
	}
	// Порядок обхода: строка за строкой
	for i := 1; i < len(m.SecretRooms); i++ {
		a, c := m.SecretRooms[i-1].Tile, m.SecretRooms[i].Tile
		if a.Y > c.Y || (a.Y == c.Y && a.X >= c.X) {
			t.Errorf("secret rooms out of scan order: %+v then %+v", a, c)
		}
	}
}

func TestBuild_StreamReseeded(t *testing.T) {
	s := rng.New(99)
	s.Float64()
	s.Float64()

	a, err := NewBuilder(s).WithSize(21, 15).Build()
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewBuilder(rng.New(99)).WithSize(21, 15).Build()
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(a.Grid, b.Grid) {
		t.Error("builder must reseed the stream before generating")
	}
}

func TestBuild_DifferentSeedsDiffer(t *testing.T) {
	a, _ := Generate(41, 31, 1, domain.DefaultBalance())
	b, _ := Generate(41, 31, 2, domain.DefaultBalance())
	if reflect.DeepEqual(a.Grid, b.Grid) {
		t.Error("seeds 1 and 2 produced the same maze")
	}
}

func TestBuild_Properties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		w := rapid.IntRange(MinSize, 45).Draw(t, "width")
		h := rapid.IntRange(MinSize, 45).Draw(t, "height")
		seed := rapid.Int64Range(0, 1<<31-1).Draw(t, "seed")

		m, err := Generate(w, h, seed, domain.DefaultBalance())
		if err != nil {
			t.Fatalf("Generate(%d,%d,%d): %v", w, h, seed, err)
		}

		// Связность: каждая проходимая клетка достижима со старта
		reach := m.Reachable(m.Start)
		if reach.Size() != m.PathCount() {
			t.Fatalf("reachable %d of %d path cells", reach.Size(), m.PathCount())
		}
		if !reach.Has(m.Exit) {
			t.Fatalf("exit %+v unreachable", m.Exit)
		}

		// Дерево: ровно одна дорога между любыми двумя клетками
		if m.EdgeCount() != m.PathCount()-1 {
			t.Fatalf("edges %d, path cells %d: maze has a loop", m.EdgeCount(), m.PathCount())
		}

		// Детерминизм
		again, _ := Generate(w, h, seed, domain.DefaultBalance())
		if !reflect.DeepEqual(m, again) {
			t.Fatalf("seed %d is not reproducible", seed)
		}
	})
}
