package testutil

import (
	"translator/internal/domain"

	"go.uber.org/zap"
)

// NewTestLogger creates a no-op logger for tests
func NewTestLogger() *zap.Logger {
	return zap.NewNop()
}

// NewTestEntry creates a test entry
func NewTestEntry(word string, translations ...string) domain.Entry {
	if translations == nil {
		translations = []string{}
	}
	return domain.Entry{Word: word, Translations: translations}
}

// NewTestStore creates a store holding entries, panicking on any rejection
func NewTestStore(entries ...domain.Entry) *domain.EntryStore {
	store := domain.NewEntryStore()
	if rejected := store.Fill(entries); len(rejected) > 0 {
		panic(rejected[0].Err)
	}
	return store
}
