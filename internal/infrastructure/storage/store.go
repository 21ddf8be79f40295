package storage

import (
	"context"
	"fmt"
	"maps"
	"path/filepath"

	"goose-server/internal/domain"
)

// Snapshot - агрегированные рекорды, переживающие забеги
type Snapshot struct {
	Endings      map[domain.EndingKind]int     `yaml:"endings"`
	Achievements map[domain.AchievementID]bool `yaml:"achievements"`
}

// NewSnapshot - пустые рекорды
func NewSnapshot() Snapshot {
	return Snapshot{
		Endings:      make(map[domain.EndingKind]int),
		Achievements: make(map[domain.AchievementID]bool),
	}
}

// Clone - глубокая копия, чтобы хранилище не держало чужие карты
func (s Snapshot) Clone() Snapshot {
	out := NewSnapshot()
	maps.Copy(out.Endings, s.Endings)
	maps.Copy(out.Achievements, s.Achievements)
	return out
}

//go:generate go tool mockgen -destination=./mocks/store_mock.go -package=mocks . Store

// Store - хранилище рекордов. Пишет один поток, блокировки не нужны.
type Store interface {
	Load(ctx context.Context) (Snapshot, error)
	Save(ctx context.Context, snap Snapshot) error
	Close() error
}

// Виды хранилищ
const (
	KindYAML   = "yaml"
	KindSQLite = "sqlite"
)

// Open создает хранилище нужного вида в каталоге dir
func Open(kind, dir string) (Store, error) {
	switch kind {
	case KindYAML, "":
		return NewYAMLStore(filepath.Join(dir, "records.yaml")), nil
	case KindSQLite:
		return NewSQLiteStore(filepath.Join(dir, "records.db"))
	}
	return nil, fmt.Errorf("unknown store kind %q", kind)
}
