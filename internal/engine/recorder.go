package engine

import (
	"context"
	"fmt"
	"time"

	"goose-server/internal/domain"
	"goose-server/internal/infrastructure/storage"
	"goose-server/internal/systems"
	"goose-server/pkg/logger"

	"github.com/sirupsen/logrus"
)

// Recorder держит рекорды в памяти и переписывает хранилище при каждом изменении.
// Если хранилище недоступно, работает на пустых рекордах и пробует снова при следующей записи.
type Recorder struct {
	store   storage.Store
	history *storage.RunHistory
	snap    storage.Snapshot
	log     *logrus.Entry
}

// NewRecorder загружает рекорды. Ошибка загрузки не фатальна.
func NewRecorder(ctx context.Context, store storage.Store, history *storage.RunHistory) *Recorder {
	r := &Recorder{
		store:   store,
		history: history,
		snap:    storage.NewSnapshot(),
		log:     logger.Component("recorder"),
	}

	snap, err := store.Load(ctx)
	if err != nil {
		r.log.WithError(fmt.Errorf("%w: %w", domain.ErrPersistenceUnavailable, err)).
			Warn("Records unavailable, starting from empty state")
		return r
	}
	r.snap = snap.Clone()
	return r
}

// Snapshot - копия текущих рекордов
func (r *Recorder) Snapshot() storage.Snapshot {
	return r.snap.Clone()
}

// EndingCount - сколько раз получена концовка
func (r *Recorder) EndingCount(kind domain.EndingKind) int {
	return r.snap.Endings[kind]
}

// IsUnlocked - открыто ли достижение
func (r *Recorder) IsUnlocked(id domain.AchievementID) bool {
	return r.snap.Achievements[id]
}

// RecordEnding увеличивает счетчик концовки и сохраняет
func (r *Recorder) RecordEnding(ctx context.Context, kind domain.EndingKind) error {
	r.snap.Endings[kind]++
	r.log.WithFields(logrus.Fields{"ending": kind, "count": r.snap.Endings[kind]}).Info("Ending recorded")
	return r.save(ctx)
}

// Unlock открывает достижения и сохраняет, если что-то изменилось
func (r *Recorder) Unlock(ctx context.Context, ids ...domain.AchievementID) error {
	changed := false
	for _, id := range ids {
		if !r.snap.Achievements[id] {
			r.snap.Achievements[id] = true
			changed = true
			r.log.WithField("achievement", id).Info("Achievement unlocked")
		}
	}
	if !changed {
		return nil
	}
	return r.save(ctx)
}

// History - журнал прошлых забегов
func (r *Recorder) History() ([]storage.RunEntry, error) {
	if r.history == nil {
		return nil, nil
	}
	entries, err := r.history.Load()
	if err != nil {
		return entries, fmt.Errorf("%w: %w", domain.ErrPersistenceUnavailable, err)
	}
	return entries, nil
}

// FinishRun записывает концовку, проверяет достижения и дописывает журнал.
// Ошибки хранилища логируются и не мешают показать концовку.
func (r *Recorder) FinishRun(ctx context.Context, res *RunResult) {
	_ = r.RecordEnding(ctx, res.Ending)

	fresh := systems.CheckAchievements(&res.Stats, res.Ending, r.snap.Achievements, r.EndingCount(domain.EndingHell))
	if len(fresh) > 0 {
		_ = r.Unlock(ctx, fresh...)
	}
	res.NewAchievements = fresh

	if r.history == nil {
		return
	}
	entry := storage.RunEntry{
		RunID:      res.RunID,
		Seed:       res.Stats.Seed,
		Timestamp:  time.Now(),
		PlayTime:   time.Duration(res.Stats.PlayTime * float64(time.Second)),
		Ending:     res.Ending,
		Rank:       res.Rank,
		Score:      res.Score,
		TotalEggs:  res.Stats.TotalEggs,
		Trades:     res.Stats.TraderCount,
		BadEffects: res.Stats.BadEffectsCount,
		Secrets:    res.Stats.SecretRoomsFound,
		Difficulty: res.Stats.Difficulty,
		Challenge:  res.Stats.Challenge,
	}
	if err := r.history.Append(entry); err != nil {
		r.log.WithError(err).Warn("Run history not written")
	}
}

func (r *Recorder) save(ctx context.Context) error {
	if err := r.store.Save(ctx, r.snap.Clone()); err != nil {
		err = fmt.Errorf("%w: %w", domain.ErrPersistenceUnavailable, err)
		r.log.WithError(err).Warn("Records not saved, keeping in memory")
		return err
	}
	return nil
}
