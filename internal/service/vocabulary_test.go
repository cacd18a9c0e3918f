package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"translator/internal/domain"
	"translator/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestService(repo *testutil.MockVocabularyRepository, opts ...domain.StoreOption) *VocabularyService {
	return NewVocabularyService(repo, testutil.NewTestLogger(), opts...)
}

func TestVocabularyService_AddEntry(t *testing.T) {
	tests := []struct {
		name          string
		word          string
		translations  []string
		expectedError error
		expectedCount int
	}{
		{
			name:          "word with translations",
			word:          "hello",
			translations:  []string{"hola", "bonjour"},
			expectedCount: 1,
		},
		{
			name:          "word without translations",
			word:          "hello",
			expectedCount: 1,
		},
		{
			name:          "invalid translation rolls back",
			word:          "hello",
			translations:  []string{"hola", ""},
			expectedError: domain.ErrInvalidInput,
			expectedCount: 0,
		},
		{
			name:          "duplicate translation rolls back",
			word:          "hello",
			translations:  []string{"hola", "hola"},
			expectedError: domain.ErrDuplicateTranslation,
			expectedCount: 0,
		},
		{
			name:          "invalid word",
			word:          "",
			expectedError: domain.ErrInvalidInput,
			expectedCount: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(new(testutil.MockVocabularyRepository))

			entry, err := svc.AddEntry(tt.word, tt.translations...)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.False(t, svc.IsDirty())
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.word, entry.Word)
				assert.Len(t, entry.Translations, len(tt.translations))
				assert.True(t, svc.IsDirty())
			}
			assert.Equal(t, tt.expectedCount, svc.Count())
		})
	}
}

func TestVocabularyService_MutationsMarkDirty(t *testing.T) {
	repo := new(testutil.MockVocabularyRepository)
	store := testutil.NewTestStore(
		testutil.NewTestEntry("hello", "hola", "bonjour"),
		testutil.NewTestEntry("cat", "gato"),
	)
	repo.On("Load", mock.Anything, "words").Return(store, nil)

	svc := newTestService(repo)
	require.NoError(t, svc.Open(context.Background(), "words"))
	assert.False(t, svc.IsDirty())

	assert.ErrorIs(t, svc.RemoveEntry("dog"), domain.ErrNoEntriesWithWord)
	assert.False(t, svc.IsDirty())

	require.NoError(t, svc.RemoveTranslation("hello", "hola"))
	assert.True(t, svc.IsDirty())

	entry, err := svc.FindByWord("hello")
	require.NoError(t, err)
	assert.Equal(t, []string{"bonjour"}, entry.Translations)

	require.NoError(t, svc.AddTranslation("cat", "chat"))
	require.NoError(t, svc.RemoveEntry("hello"))

	entries, err := svc.Entries()
	require.NoError(t, err)
	assert.Equal(t, []domain.Entry{testutil.NewTestEntry("cat", "gato", "chat")}, entries)

	found, err := svc.FindByTranslation("chat")
	require.NoError(t, err)
	assert.Len(t, found, 1)
}

func TestVocabularyService_EntriesEmpty(t *testing.T) {
	svc := newTestService(new(testutil.MockVocabularyRepository))

	entries, err := svc.Entries()

	assert.Nil(t, entries)
	assert.ErrorIs(t, err, domain.ErrNoEntriesPresent)
}

func TestVocabularyService_Open(t *testing.T) {
	tests := []struct {
		name             string
		loadStore        *domain.EntryStore
		loadError        error
		expectedError    error
		expectedCount    int
		expectedBaseName string
	}{
		{
			name:             "existing vocabulary",
			loadStore:        testutil.NewTestStore(testutil.NewTestEntry("hello", "hola")),
			expectedCount:    1,
			expectedBaseName: "words",
		},
		{
			name:             "unreadable file starts empty",
			loadError:        domain.ErrFileReadingFailed,
			expectedError:    domain.ErrFileReadingFailed,
			expectedCount:    0,
			expectedBaseName: "words",
		},
		{
			name:             "invalid name starts empty and unnamed",
			loadError:        domain.ErrInvalidFileName,
			expectedError:    domain.ErrInvalidInput,
			expectedCount:    0,
			expectedBaseName: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(testutil.MockVocabularyRepository)
			if tt.loadStore != nil {
				repo.On("Load", mock.Anything, "words").Return(tt.loadStore, nil)
			} else {
				repo.On("Load", mock.Anything, "words").Return(nil, tt.loadError)
			}

			svc := newTestService(repo)
			_, err := svc.AddEntry("stale", "old")
			require.NoError(t, err)

			err = svc.Open(context.Background(), "words")

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.expectedCount, svc.Count())
			assert.Equal(t, tt.expectedBaseName, svc.BaseName())
			assert.False(t, svc.IsDirty())
			repo.AssertExpectations(t)
		})
	}
}

func TestVocabularyService_ImportIntoEmptyStoreAddsAll(t *testing.T) {
	repo := new(testutil.MockVocabularyRepository)
	repo.On("Load", mock.Anything, "more").Return(testutil.NewTestStore(
		testutil.NewTestEntry("hello", "hola"),
		testutil.NewTestEntry("cat", "gato"),
	), nil)

	svc := newTestService(repo)
	confirm := func(domain.Entry) bool {
		t.Fatal("confirm must not be called for an empty store")
		return false
	}

	result, err := svc.Import(context.Background(), "more", confirm)

	require.NoError(t, err)
	assert.Equal(t, ImportResult{Added: 2}, result)
	assert.Equal(t, 2, svc.Count())
	assert.True(t, svc.IsDirty())
}

func TestVocabularyService_ImportAsksAndSkipsDuplicates(t *testing.T) {
	repo := new(testutil.MockVocabularyRepository)
	repo.On("Load", mock.Anything, "more").Return(testutil.NewTestStore(
		testutil.NewTestEntry("hello", "hallo"),
		testutil.NewTestEntry("cat", "gato"),
		testutil.NewTestEntry("dog", "perro"),
	), nil)

	svc := newTestService(repo)
	_, err := svc.AddEntry("hello", "hola")
	require.NoError(t, err)

	var asked []string
	confirm := func(entry domain.Entry) bool {
		asked = append(asked, entry.Word)
		return entry.Word == "dog"
	}

	result, err := svc.Import(context.Background(), "more", confirm)

	require.NoError(t, err)
	assert.Equal(t, ImportResult{Added: 1, Skipped: 2}, result)
	assert.Equal(t, []string{"cat", "dog"}, asked)

	entry, err := svc.FindByWord("hello")
	require.NoError(t, err)
	assert.Equal(t, []string{"hola"}, entry.Translations)
}

func TestVocabularyService_ImportStopsAtCapacity(t *testing.T) {
	repo := new(testutil.MockVocabularyRepository)
	repo.On("Load", mock.Anything, "more").Return(testutil.NewTestStore(
		testutil.NewTestEntry("hello", "hola"),
		testutil.NewTestEntry("cat", "gato"),
		testutil.NewTestEntry("dog", "perro"),
	), nil)

	svc := newTestService(repo, domain.WithCapacity(2))

	result, err := svc.Import(context.Background(), "more", nil)

	assert.ErrorIs(t, err, domain.ErrMaxedEntries)
	assert.Equal(t, ImportResult{Added: 2}, result)
	assert.Equal(t, 2, svc.Count())
}

func TestVocabularyService_ImportLoadFails(t *testing.T) {
	repo := new(testutil.MockVocabularyRepository)
	repo.On("Load", mock.Anything, "more").Return(nil, domain.ErrFileReadingFailed)

	svc := newTestService(repo)
	_, err := svc.AddEntry("hello", "hola")
	require.NoError(t, err)

	result, err := svc.Import(context.Background(), "more", nil)

	assert.ErrorIs(t, err, domain.ErrFileReadingFailed)
	assert.Equal(t, ImportResult{}, result)
	assert.Equal(t, 1, svc.Count())
}

func TestVocabularyService_Save(t *testing.T) {
	t.Run("empty store refused", func(t *testing.T) {
		repo := new(testutil.MockVocabularyRepository)
		svc := newTestService(repo)

		err := svc.Save(context.Background(), "words")

		assert.ErrorIs(t, err, domain.ErrNoEntriesPresent)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("saves and clears dirty", func(t *testing.T) {
		repo := new(testutil.MockVocabularyRepository)
		repo.On("Save", mock.Anything, "words", mock.AnythingOfType("*domain.EntryStore")).Return(nil)
		svc := newTestService(repo)
		_, err := svc.AddEntry("hello", "hola")
		require.NoError(t, err)

		err = svc.Save(context.Background(), "words")

		assert.NoError(t, err)
		assert.False(t, svc.IsDirty())
		assert.Equal(t, "words", svc.BaseName())
		repo.AssertExpectations(t)
	})

	t.Run("failure keeps dirty", func(t *testing.T) {
		repo := new(testutil.MockVocabularyRepository)
		repo.On("Save", mock.Anything, "words", mock.Anything).Return(domain.ErrFileCreationFailed)
		svc := newTestService(repo)
		_, err := svc.AddEntry("hello", "hola")
		require.NoError(t, err)

		err = svc.Save(context.Background(), "words")

		assert.ErrorIs(t, err, domain.ErrFileCreationFailed)
		assert.True(t, svc.IsDirty())
		assert.Equal(t, "", svc.BaseName())
	})
}

func TestVocabularyService_Flush(t *testing.T) {
	repo := new(testutil.MockVocabularyRepository)
	repo.On("Save", mock.Anything, "words", mock.Anything).Return(nil)
	svc := newTestService(repo)

	_, err := svc.AddEntry("hello", "hola")
	require.NoError(t, err)

	saved, err := svc.Flush(context.Background())
	require.NoError(t, err)
	assert.False(t, saved, "no base name yet")

	require.NoError(t, svc.Save(context.Background(), "words"))

	saved, err = svc.Flush(context.Background())
	require.NoError(t, err)
	assert.False(t, saved, "nothing changed")

	require.NoError(t, svc.RemoveEntry("hello"))

	saved, err = svc.Flush(context.Background())
	require.NoError(t, err)
	assert.True(t, saved, "empty store is still flushed")
	assert.False(t, svc.IsDirty())

	repo.AssertNumberOfCalls(t, "Save", 2)
}

func TestVocabularyService_Stats(t *testing.T) {
	svc := newTestService(new(testutil.MockVocabularyRepository), domain.WithCapacity(5))
	_, err := svc.AddEntry("hello", "hola", "bonjour")
	require.NoError(t, err)
	_, err = svc.AddEntry("cat", "gato")
	require.NoError(t, err)

	stats := svc.Stats()

	assert.Equal(t, 2, stats.Entries)
	assert.Equal(t, 5, stats.Capacity)
	assert.Equal(t, 3, stats.Translations)
	assert.Equal(t, domain.DefaultTranslationCapacity, stats.TranslationCapacity)
	assert.Equal(t, 3, stats.Free())
	assert.True(t, stats.Dirty)
}

func TestRunAutosave(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := make(chan struct{}, 16)
	flush := func(context.Context) (bool, error) {
		select {
		case calls <- struct{}{}:
		default:
		}
		return false, errors.New("disk full")
	}

	done := make(chan struct{})
	go func() {
		RunAutosave(ctx, time.Millisecond, flush, testutil.NewTestLogger())
		close(done)
	}()

	<-calls
	cancel()
	<-done

	assert.GreaterOrEqual(t, len(calls), 1, "final flush on shutdown")
}
