package storage

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"goose-server/internal/domain"
)

const (
	MagicHeader string = `GSRH` // 4 байта
	Version1    uint32 = 1
)

// HistoryFileHeader пишется один раз в начале файла
type HistoryFileHeader struct {
	Magic   [4]byte // 4 байта
	Version uint32  // 4 байта
}

// EntryHeader - фиксированная часть записи. Строки (run id, концовка) идут следом.
type EntryHeader struct {
	Seed       int64 // 8
	Timestamp  int64 // 8
	PlayTimeMs int64 // 8
	Score      int32 // 4
	TotalEggs  int32 // 4
	Trades     int32 // 4
	BadEffects int32 // 4
	Secrets    uint8 // 1
	Difficulty uint8 // 1
	Challenge  uint8 // 1
	Rank       uint8 // 1, буква ранга
	RunIDLen   uint8 // 1
	EndingLen  uint8 // 1
}

// RunEntry - итог одного завершенного забега
type RunEntry struct {
	RunID      string
	Seed       int64
	Timestamp  time.Time
	PlayTime   time.Duration
	Ending     domain.EndingKind
	Rank       domain.Rank
	Score      int
	TotalEggs  int
	Trades     int
	BadEffects int
	Secrets    int
	Difficulty domain.Difficulty
	Challenge  domain.Challenge
}

// RunHistory - журнал завершенных забегов в бинарном файле (только дописывается)
type RunHistory struct {
	path string
}

func NewRunHistory(dir string) *RunHistory {
	return &RunHistory{path: filepath.Join(dir, "history.gsrh")}
}

// Append дописывает запись, создавая файл с заголовком при первом вызове
func (h *RunHistory) Append(e RunEntry) error {
	if err := os.MkdirAll(filepath.Dir(h.path), 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	f, err := os.OpenFile(h.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return err
	}
	if info.Size() == 0 {
		header := HistoryFileHeader{Version: Version1}
		copy(header.Magic[:], MagicHeader)
		if err := binary.Write(f, binary.LittleEndian, &header); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
	}

	return writeEntry(f, e)
}

func writeEntry(w io.Writer, e RunEntry) error {
	if len(e.RunID) > 255 || len(e.Ending) > 255 {
		return fmt.Errorf("entry strings too long")
	}
	var rank uint8
	if len(e.Rank) > 0 {
		rank = e.Rank[0]
	}

	eh := EntryHeader{
		Seed:       e.Seed,
		Timestamp:  e.Timestamp.Unix(),
		PlayTimeMs: e.PlayTime.Milliseconds(),
		Score:      int32(e.Score),
		TotalEggs:  int32(e.TotalEggs),
		Trades:     int32(e.Trades),
		BadEffects: int32(e.BadEffects),
		Secrets:    uint8(e.Secrets),
		Difficulty: uint8(e.Difficulty),
		Challenge:  uint8(e.Challenge),
		Rank:       rank,
		RunIDLen:   uint8(len(e.RunID)),
		EndingLen:  uint8(len(e.Ending)),
	}
	if err := binary.Write(w, binary.LittleEndian, &eh); err != nil {
		return fmt.Errorf("failed to write entry header: %w", err)
	}
	if _, err := io.WriteString(w, e.RunID); err != nil {
		return err
	}
	if _, err := io.WriteString(w, string(e.Ending)); err != nil {
		return err
	}
	return nil
}

// Load читает весь журнал. Нет файла - пустой журнал.
func (h *RunHistory) Load() ([]RunEntry, error) {
	f, err := os.Open(h.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	return readHistory(f)
}

func readHistory(r io.Reader) ([]RunEntry, error) {
	var header HistoryFileHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	if string(header.Magic[:]) != MagicHeader {
		return nil, fmt.Errorf("invalid magic")
	}
	if header.Version != Version1 {
		return nil, fmt.Errorf("unsupported version: %d (expected %d)", header.Version, Version1)
	}

	var entries []RunEntry
	for {
		var eh EntryHeader
		if err := binary.Read(r, binary.LittleEndian, &eh); err != nil {
			if errors.Is(err, io.EOF) {
				return entries, nil
			}
			return entries, fmt.Errorf("failed to read entry %d: %w", len(entries), err)
		}

		buf := make([]byte, int(eh.RunIDLen)+int(eh.EndingLen))
		if _, err := io.ReadFull(r, buf); err != nil {
			return entries, fmt.Errorf("failed to read entry %d strings: %w", len(entries), err)
		}

		e := RunEntry{
			RunID:      string(buf[:eh.RunIDLen]),
			Ending:     domain.EndingKind(buf[eh.RunIDLen:]),
			Seed:       eh.Seed,
			Timestamp:  time.Unix(eh.Timestamp, 0),
			PlayTime:   time.Duration(eh.PlayTimeMs) * time.Millisecond,
			Score:      int(eh.Score),
			TotalEggs:  int(eh.TotalEggs),
			Trades:     int(eh.Trades),
			BadEffects: int(eh.BadEffects),
			Secrets:    int(eh.Secrets),
			Difficulty: domain.Difficulty(eh.Difficulty),
			Challenge:  domain.Challenge(eh.Challenge),
		}
		if eh.Rank != 0 {
			e.Rank = domain.Rank(string(rune(eh.Rank)))
		}
		entries = append(entries, e)
	}
}
