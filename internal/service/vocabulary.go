package service

import (
	"context"
	"errors"
	"fmt"

	"translator/internal/domain"
	"translator/internal/repository"

	"go.uber.org/zap"
)

// VocabularyService is one editing session: an entry store, the name it
// was opened from or last saved to, and whether it has unsaved changes.
//
// It is not safe for concurrent use.
type VocabularyService struct {
	repo     repository.VocabularyRepository
	store    *domain.EntryStore
	opts     []domain.StoreOption
	baseName string
	dirty    bool
	logger   *zap.Logger
}

// ImportResult counts what an import did with each incoming entry
type ImportResult struct {
	Added   int
	Skipped int
}

// NewVocabularyService creates a session with an empty store built with opts
func NewVocabularyService(repo repository.VocabularyRepository, logger *zap.Logger, opts ...domain.StoreOption) *VocabularyService {
	return &VocabularyService{
		repo:   repo,
		store:  domain.NewEntryStore(opts...),
		opts:   opts,
		logger: logger,
	}
}

// AddEntry adds word with its translations. Either the whole entry is added
// or, when any translation is rejected, nothing is.
func (s *VocabularyService) AddEntry(word string, translations ...string) (domain.Entry, error) {
	entry, err := s.store.AddEntry(word)
	if err != nil {
		return domain.Entry{}, err
	}

	for _, translation := range translations {
		if err := s.store.AddTranslation(entry.Word, translation); err != nil {
			if rmErr := s.store.RemoveEntry(entry.Word); rmErr != nil {
				s.logger.Error("Failed to roll back entry", zap.String("word", entry.Word), zap.Error(rmErr))
			}
			return domain.Entry{}, err
		}
	}

	s.dirty = true
	return s.store.FindByWord(entry.Word)
}

// AddTranslation appends a translation to an existing entry
func (s *VocabularyService) AddTranslation(word, translation string) error {
	if err := s.store.AddTranslation(word, translation); err != nil {
		return err
	}
	s.dirty = true
	return nil
}

// RemoveEntry deletes an entry
func (s *VocabularyService) RemoveEntry(word string) error {
	if err := s.store.RemoveEntry(word); err != nil {
		return err
	}
	s.dirty = true
	return nil
}

// RemoveTranslation deletes one translation, and the entry with its last one
func (s *VocabularyService) RemoveTranslation(word, translation string) error {
	if err := s.store.RemoveTranslation(word, translation); err != nil {
		return err
	}
	s.dirty = true
	return nil
}

func (s *VocabularyService) FindByWord(word string) (domain.Entry, error) {
	return s.store.FindByWord(word)
}

func (s *VocabularyService) FindByTranslation(translation string) ([]domain.Entry, error) {
	return s.store.FindByTranslation(translation)
}

// Entries returns every entry in insertion order, or ErrNoEntriesPresent
func (s *VocabularyService) Entries() ([]domain.Entry, error) {
	if s.store.IsEmpty() {
		return nil, domain.ErrNoEntriesPresent
	}
	return s.store.Entries(), nil
}

func (s *VocabularyService) Count() int       { return s.store.Count() }
func (s *VocabularyService) IsDirty() bool    { return s.dirty }
func (s *VocabularyService) BaseName() string { return s.baseName }

// Open replaces the session with the vocabulary stored under baseName.
// When loading fails the session continues with an empty store and the
// error is returned for reporting.
func (s *VocabularyService) Open(ctx context.Context, baseName string) error {
	store, err := s.repo.Load(ctx, baseName, s.opts...)
	if err != nil {
		s.store = domain.NewEntryStore(s.opts...)
		s.baseName = ""
		s.dirty = false
		if errors.Is(err, domain.ErrInvalidInput) {
			return err
		}
		s.baseName = baseName
		s.logger.Warn("Starting with an empty vocabulary", zap.String("name", baseName), zap.Error(err))
		return err
	}

	s.store = store
	s.baseName = baseName
	s.dirty = false
	s.logger.Info("Vocabulary opened", zap.String("name", baseName), zap.Int("entries", store.Count()))
	return nil
}

// Import merges the vocabulary stored under baseName into the session.
// When the session already holds entries, confirm is asked about each
// incoming entry. Entries whose word is already present are skipped.
func (s *VocabularyService) Import(ctx context.Context, baseName string, confirm func(domain.Entry) bool) (ImportResult, error) {
	var result ImportResult

	incoming, err := s.repo.Load(ctx, baseName, s.opts...)
	if err != nil {
		return result, err
	}

	ask := !s.store.IsEmpty()
	entries := incoming.Entries()
	for i, entry := range entries {
		if s.store.IsFull() {
			return result, fmt.Errorf("%w: %d entries not imported", domain.ErrMaxedEntries, len(entries)-i)
		}

		if _, err := s.store.FindByWord(entry.Word); err == nil {
			result.Skipped++
			continue
		}

		if ask && !confirm(entry) {
			result.Skipped++
			continue
		}

		if _, err := s.AddEntry(entry.Word, entry.Translations...); err != nil {
			return result, err
		}
		result.Added++
	}

	s.logger.Info("Vocabulary imported",
		zap.String("name", baseName),
		zap.Int("added", result.Added),
		zap.Int("skipped", result.Skipped),
	)
	return result, nil
}

// Save exports the session under baseName. An empty session is refused.
func (s *VocabularyService) Save(ctx context.Context, baseName string) error {
	if s.store.IsEmpty() {
		return domain.ErrNoEntriesPresent
	}

	if err := s.repo.Save(ctx, baseName, s.store); err != nil {
		return err
	}

	s.baseName = baseName
	s.dirty = false
	return nil
}

// Flush saves unsaved changes under the current base name. It reports
// whether anything was written.
func (s *VocabularyService) Flush(ctx context.Context) (bool, error) {
	if !s.dirty || s.baseName == "" {
		return false, nil
	}

	if err := s.repo.Save(ctx, s.baseName, s.store); err != nil {
		return false, err
	}

	s.dirty = false
	return true, nil
}
