package domain

import (
	"fmt"
	"slices"

	"golang.org/x/text/cases"
)

// StoreOption configures an EntryStore
type StoreOption func(*EntryStore)

// WithCapacity sets the maximum number of entries. Non-positive values are ignored.
func WithCapacity(n int) StoreOption {
	return func(s *EntryStore) {
		if n > 0 {
			s.capacity = n
		}
	}
}

// WithTranslationCapacity sets the maximum number of translations per entry.
// Non-positive values are ignored.
func WithTranslationCapacity(n int) StoreOption {
	return func(s *EntryStore) {
		if n > 0 {
			s.translationCapacity = n
		}
	}
}

// WithCaseFolding makes word uniqueness and both searches case-insensitive
func WithCaseFolding() StoreOption {
	return func(s *EntryStore) {
		s.foldCase = true
		s.folder = cases.Fold()
	}
}

// EntryStore is a bounded, insertion-ordered collection of entries keyed by word.
//
// An EntryStore is not safe for concurrent use. Callers sharing one
// between goroutines must serialize access themselves.
type EntryStore struct {
	entries             []Entry
	capacity            int
	translationCapacity int

	foldCase bool
	folder   cases.Caser
}

// NewEntryStore creates an empty store
func NewEntryStore(opts ...StoreOption) *EntryStore {
	s := &EntryStore{
		capacity:            DefaultCapacity,
		translationCapacity: DefaultTranslationCapacity,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *EntryStore) Capacity() int            { return s.capacity }
func (s *EntryStore) TranslationCapacity() int { return s.translationCapacity }
func (s *EntryStore) Count() int               { return len(s.entries) }
func (s *EntryStore) IsEmpty() bool            { return len(s.entries) == 0 }
func (s *EntryStore) IsFull() bool             { return len(s.entries) >= s.capacity }

// AddEntry inserts an entry with no translations and returns a copy of it
func (s *EntryStore) AddEntry(word string) (Entry, error) {
	word, err := NormalizeWord(word)
	if err != nil {
		return Entry{}, err
	}

	if s.IsFull() {
		return Entry{}, ErrMaxedEntries
	}

	if s.indexOf(word) >= 0 {
		return Entry{}, fmt.Errorf("%w: %q", ErrDuplicateWord, word)
	}

	entry := Entry{Word: word, Translations: []string{}}
	s.entries = append(s.entries, entry)
	return entry.clone(), nil
}

// AddTranslation appends a translation to the entry holding word
func (s *EntryStore) AddTranslation(word, translation string) error {
	word, err := NormalizeWord(word)
	if err != nil {
		return err
	}
	translation, err = NormalizeTranslation(translation)
	if err != nil {
		return err
	}

	if s.IsEmpty() {
		return ErrNoEntriesPresent
	}

	i := s.indexOf(word)
	if i < 0 {
		return fmt.Errorf("%w: %q", ErrNoEntriesWithWord, word)
	}

	entry := &s.entries[i]
	if len(entry.Translations) >= s.translationCapacity {
		return fmt.Errorf("%w: %q has %d translations", ErrMaxedTranslations, entry.Word, len(entry.Translations))
	}

	if s.translationIndex(*entry, translation) >= 0 {
		return fmt.Errorf("%w: %q already has %q", ErrDuplicateTranslation, entry.Word, translation)
	}

	entry.Translations = append(entry.Translations, translation)
	return nil
}

// FindByWord returns the entry holding word
func (s *EntryStore) FindByWord(word string) (Entry, error) {
	if s.IsEmpty() {
		return Entry{}, ErrNoEntriesPresent
	}

	word, err := NormalizeWord(word)
	if err != nil {
		return Entry{}, err
	}

	i := s.indexOf(word)
	if i < 0 {
		return Entry{}, fmt.Errorf("%w: %q", ErrNoEntriesWithWord, word)
	}
	return s.entries[i].clone(), nil
}

// FindByTranslation returns every entry containing translation, in insertion order
func (s *EntryStore) FindByTranslation(translation string) ([]Entry, error) {
	if s.IsEmpty() {
		return nil, ErrNoEntriesPresent
	}

	translation, err := NormalizeTranslation(translation)
	if err != nil {
		return nil, err
	}

	var found []Entry
	for _, entry := range s.entries {
		if s.translationIndex(entry, translation) >= 0 {
			found = append(found, entry.clone())
		}
	}

	if len(found) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrNoEntriesWithTranslation, translation)
	}
	return found, nil
}

// RemoveEntry deletes the entry holding word, keeping the order of the others
func (s *EntryStore) RemoveEntry(word string) error {
	if s.IsEmpty() {
		return ErrNoEntriesPresent
	}

	word, err := NormalizeWord(word)
	if err != nil {
		return err
	}

	i := s.indexOf(word)
	if i < 0 {
		return fmt.Errorf("%w: %q", ErrNoEntriesWithWord, word)
	}

	s.entries = slices.Delete(s.entries, i, i+1)
	return nil
}

// RemoveTranslation deletes one translation from the entry holding word.
// Removing the last translation removes the entry.
func (s *EntryStore) RemoveTranslation(word, translation string) error {
	if s.IsEmpty() {
		return ErrNoEntriesPresent
	}

	word, err := NormalizeWord(word)
	if err != nil {
		return err
	}
	translation, err = NormalizeTranslation(translation)
	if err != nil {
		return err
	}

	i := s.indexOf(word)
	if i < 0 {
		return fmt.Errorf("%w: %q", ErrNoEntriesWithWord, word)
	}

	entry := &s.entries[i]
	j := s.translationIndex(*entry, translation)
	if j < 0 {
		return fmt.Errorf("%w: %q in %q", ErrNoEntriesWithTranslation, translation, entry.Word)
	}

	if len(entry.Translations) == 1 {
		s.entries = slices.Delete(s.entries, i, i+1)
		return nil
	}

	entry.Translations = slices.Delete(entry.Translations, j, j+1)
	return nil
}

// Entries returns copies of all entries in insertion order
func (s *EntryStore) Entries() []Entry {
	entries := make([]Entry, len(s.entries))
	for i, entry := range s.entries {
		entries[i] = entry.clone()
	}
	return entries
}

// Rejected describes a record, or a single translation of it, dropped by Fill
type Rejected struct {
	Record      int
	Word        string
	Translation string
	Err         error
}

// Fill adds records in order and drops whatever does not fit: records past
// the entry capacity, translations past the translation capacity, and
// invalid or duplicate words and translations. Record numbers start at 1.
func (s *EntryStore) Fill(records []Entry) []Rejected {
	var rejected []Rejected

	for i, record := range records {
		if s.IsFull() {
			rejected = append(rejected, Rejected{
				Record: i + 1,
				Word:   record.Word,
				Err:    fmt.Errorf("%w: %d records dropped", ErrMaxedEntries, len(records)-i),
			})
			break
		}

		entry, err := s.AddEntry(record.Word)
		if err != nil {
			rejected = append(rejected, Rejected{Record: i + 1, Word: record.Word, Err: err})
			continue
		}

		for j, translation := range record.Translations {
			err := s.AddTranslation(entry.Word, translation)
			if err == nil {
				continue
			}

			if Classify(err) == ErrMaxedTranslations {
				rejected = append(rejected, Rejected{
					Record:      i + 1,
					Word:        entry.Word,
					Translation: translation,
					Err:         fmt.Errorf("%w: %d translations dropped", ErrMaxedTranslations, len(record.Translations)-j),
				})
				break
			}
			rejected = append(rejected, Rejected{Record: i + 1, Word: entry.Word, Translation: translation, Err: err})
		}
	}

	return rejected
}

func (s *EntryStore) key(text string) string {
	if s.foldCase {
		return s.folder.String(text)
	}
	return text
}

func (s *EntryStore) indexOf(word string) int {
	word = s.key(word)
	for i, entry := range s.entries {
		if s.key(entry.Word) == word {
			return i
		}
	}
	return -1
}

func (s *EntryStore) translationIndex(entry Entry, translation string) int {
	translation = s.key(translation)
	for i, t := range entry.Translations {
		if s.key(t) == translation {
			return i
		}
	}
	return -1
}
