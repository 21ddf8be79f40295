package engine

import (
	"context"
	"fmt"

	"goose-server/internal/infrastructure/storage"
	"goose-server/pkg/logger"

	"github.com/sirupsen/logrus"
)

// AppContext - общий контекст процесса. Создается один раз при старте
// и явно передается тем, кому он нужен.
type AppContext struct {
	Config   Config
	Recorder *Recorder
	Log      *logrus.Entry

	store storage.Store
}

// NewAppContext проверяет конфиг, открывает хранилище и загружает рекорды
func NewAppContext(ctx context.Context, cfg Config) (*AppContext, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	store, err := storage.Open(cfg.StoreKind, cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", cfg.StoreKind, err)
	}

	return NewAppContextWithStore(ctx, cfg, store, storage.NewRunHistory(cfg.DataDir)), nil
}

// NewAppContextWithStore - то же с готовым хранилищем (тесты, другие бэкенды)
func NewAppContextWithStore(ctx context.Context, cfg Config, store storage.Store, history *storage.RunHistory) *AppContext {
	return &AppContext{
		Config:   cfg,
		Recorder: NewRecorder(ctx, store, history),
		Log:      logger.Component("app"),
		store:    store,
	}
}

// Close освобождает хранилище
func (a *AppContext) Close() error {
	return a.store.Close()
}
