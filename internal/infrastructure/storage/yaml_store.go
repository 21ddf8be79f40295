package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const recordsVersion = 1

// persistedRecords - формат файла на диске
type persistedRecords struct {
	Version  int `yaml:"version"`
	Snapshot `yaml:",inline"`
}

// YAMLStore хранит рекорды одним YAML-файлом
type YAMLStore struct {
	path string
}

func NewYAMLStore(path string) *YAMLStore {
	return &YAMLStore{path: path}
}

// Path - путь к файлу
func (s *YAMLStore) Path() string {
	return s.path
}

// Load читает рекорды. Отсутствующий файл - это пустые рекорды, не ошибка.
func (s *YAMLStore) Load(ctx context.Context) (Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return Snapshot{}, err
	}

	b, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return NewSnapshot(), nil
		}
		return Snapshot{}, fmt.Errorf("read %s: %w", s.path, err)
	}

	var data persistedRecords
	if err := yaml.Unmarshal(b, &data); err != nil {
		return Snapshot{}, fmt.Errorf("decode %s: %w", s.path, err)
	}

	// nil-карты после пустого файла
	return data.Snapshot.Clone(), nil
}

// Save переписывает файл целиком через временный файл и rename
func (s *YAMLStore) Save(ctx context.Context, snap Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	out, err := yaml.Marshal(persistedRecords{Version: recordsVersion, Snapshot: snap})
	if err != nil {
		return fmt.Errorf("encode records: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, out, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace %s: %w", s.path, err)
	}
	return nil
}

func (s *YAMLStore) Close() error { return nil }
