package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"goose-server/internal/domain"

	_ "modernc.org/sqlite"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS endings (
		kind  TEXT PRIMARY KEY,
		count INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS achievements (
		id       TEXT PRIMARY KEY,
		unlocked INTEGER NOT NULL
	)`,
}

// SQLiteStore хранит рекорды в двух таблицах SQLite
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore открывает (или создает) базу и применяет схему
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	// SQLite - один писатель
	db.SetMaxOpenConns(1)

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("migrate %s: %w", path, err)
		}
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Load(ctx context.Context) (Snapshot, error) {
	snap := NewSnapshot()

	rows, err := s.db.QueryContext(ctx, `SELECT kind, count FROM endings`)
	if err != nil {
		return Snapshot{}, fmt.Errorf("query endings: %w", err)
	}
	for rows.Next() {
		var kind string
		var count int
		if err := rows.Scan(&kind, &count); err != nil {
			rows.Close()
			return Snapshot{}, fmt.Errorf("scan ending: %w", err)
		}
		snap.Endings[domain.EndingKind(kind)] = count
	}
	if err := rows.Close(); err != nil {
		return Snapshot{}, err
	}

	rows, err = s.db.QueryContext(ctx, `SELECT id, unlocked FROM achievements`)
	if err != nil {
		return Snapshot{}, fmt.Errorf("query achievements: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var id string
		var unlocked int
		if err := rows.Scan(&id, &unlocked); err != nil {
			return Snapshot{}, fmt.Errorf("scan achievement: %w", err)
		}
		snap.Achievements[domain.AchievementID(id)] = unlocked != 0
	}
	return snap, rows.Err()
}

// Save делает upsert всех строк одной транзакцией
func (s *SQLiteStore) Save(ctx context.Context, snap Snapshot) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // после Commit это no-op

	for kind, count := range snap.Endings {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO endings (kind, count) VALUES (?, ?)
			 ON CONFLICT(kind) DO UPDATE SET count = excluded.count`,
			string(kind), count); err != nil {
			return fmt.Errorf("upsert ending %s: %w", kind, err)
		}
	}
	for id, unlocked := range snap.Achievements {
		flag := 0
		if unlocked {
			flag = 1
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO achievements (id, unlocked) VALUES (?, ?)
			 ON CONFLICT(id) DO UPDATE SET unlocked = excluded.unlocked`,
			string(id), flag); err != nil {
			return fmt.Errorf("upsert achievement %s: %w", id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
