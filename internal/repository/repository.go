package repository

import (
	"context"
	"fmt"

	"translator/internal/config"
	"translator/internal/domain"
	"translator/internal/repository/file"
	"translator/internal/repository/postgres"

	"go.uber.org/zap"
)

// VocabularyRepository persists whole entry stores under a base name
type VocabularyRepository interface {
	Save(ctx context.Context, baseName string, store *domain.EntryStore) error
	Load(ctx context.Context, baseName string, opts ...domain.StoreOption) (*domain.EntryStore, error)
}

// Open builds the repository selected by cfg.Storage. The returned close
// function releases whatever the repository holds and is never nil.
func Open(cfg *config.Config, logger *zap.Logger) (VocabularyRepository, func() error, error) {
	switch cfg.Storage {
	case config.StorageFile:
		return file.NewVocabularyRepo(cfg.VocabDir, logger), func() error { return nil }, nil

	case config.StoragePostgres:
		db, err := postgres.Connect(cfg.DSN(), logger)
		if err != nil {
			return nil, nil, err
		}
		if err := postgres.Migrate(db, cfg.MigrationsPath, logger); err != nil {
			db.Close()
			return nil, nil, err
		}
		return postgres.NewVocabularyRepo(db, logger), db.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown storage %q", cfg.Storage)
	}
}
