package testutil

import (
	"context"

	"translator/internal/domain"

	"github.com/stretchr/testify/mock"
)

// MockVocabularyRepository is a mock for VocabularyRepository.
// Store options are not recorded: the mock returns whatever store it was given.
type MockVocabularyRepository struct {
	mock.Mock
}

func (m *MockVocabularyRepository) Save(ctx context.Context, baseName string, store *domain.EntryStore) error {
	args := m.Called(ctx, baseName, store)
	return args.Error(0)
}

func (m *MockVocabularyRepository) Load(ctx context.Context, baseName string, opts ...domain.StoreOption) (*domain.EntryStore, error) {
	args := m.Called(ctx, baseName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EntryStore), args.Error(1)
}
