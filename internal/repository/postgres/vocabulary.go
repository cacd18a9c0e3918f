package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"translator/internal/domain"

	"go.uber.org/zap"
)

// VocabularyRepo stores each vocabulary as a set of rows keyed by base name
type VocabularyRepo struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewVocabularyRepo creates a new PostgreSQL vocabulary repository
func NewVocabularyRepo(db *sql.DB, logger *zap.Logger) *VocabularyRepo {
	return &VocabularyRepo{db: db, logger: logger}
}

// Save replaces the vocabulary stored under baseName in one transaction
func (r *VocabularyRepo) Save(ctx context.Context, baseName string, store *domain.EntryStore) error {
	name, err := vocabularyName(baseName)
	if err != nil {
		return err
	}

	if err := r.save(ctx, name, store.Entries()); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrFileCreationFailed, err)
	}

	r.logger.Info("Vocabulary saved",
		zap.String("vocabulary", name),
		zap.Int("entries", store.Count()),
	)
	return nil
}

func (r *VocabularyRepo) save(ctx context.Context, name string, entries []domain.Entry) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM vocabularies WHERE name = $1`, name); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `INSERT INTO vocabularies (name) VALUES ($1)`, name); err != nil {
		return err
	}

	for i, entry := range entries {
		query := `
			INSERT INTO vocabulary_entries (vocabulary, position, word)
			VALUES ($1, $2, $3)
		`
		if _, err := tx.ExecContext(ctx, query, name, i, entry.Word); err != nil {
			return err
		}

		for j, translation := range entry.Translations {
			query := `
				INSERT INTO vocabulary_translations (vocabulary, entry_position, position, translation)
				VALUES ($1, $2, $3, $4)
			`
			if _, err := tx.ExecContext(ctx, query, name, i, j, translation); err != nil {
				return err
			}
		}
	}

	return tx.Commit()
}

// Load reads the vocabulary stored under baseName into a new store built with opts.
// Records that do not fit or fail validation are skipped and logged.
func (r *VocabularyRepo) Load(ctx context.Context, baseName string, opts ...domain.StoreOption) (*domain.EntryStore, error) {
	name, err := vocabularyName(baseName)
	if err != nil {
		return nil, err
	}

	records, err := r.load(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrFileReadingFailed, err)
	}

	store := domain.NewEntryStore(opts...)
	for _, rejected := range store.Fill(records) {
		r.logger.Warn("Skipped vocabulary record",
			zap.String("vocabulary", name),
			zap.Int("record", rejected.Record),
			zap.String("word", rejected.Word),
			zap.String("translation", rejected.Translation),
			zap.Error(rejected.Err),
		)
	}

	r.logger.Info("Vocabulary loaded",
		zap.String("vocabulary", name),
		zap.Int("records", len(records)),
		zap.Int("entries", store.Count()),
	)
	return store, nil
}

func (r *VocabularyRepo) load(ctx context.Context, name string) ([]domain.Entry, error) {
	var found string
	err := r.db.QueryRowContext(ctx, `SELECT name FROM vocabularies WHERE name = $1`, name).Scan(&found)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("vocabulary %q does not exist", name)
	}
	if err != nil {
		return nil, err
	}

	query := `
		SELECT e.position, e.word, t.translation
		FROM vocabulary_entries e
		LEFT JOIN vocabulary_translations t
			ON t.vocabulary = e.vocabulary AND t.entry_position = e.position
		WHERE e.vocabulary = $1
		ORDER BY e.position, t.position
	`
	rows, err := r.db.QueryContext(ctx, query, name)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []domain.Entry
	last := -1
	for rows.Next() {
		var position int
		var word string
		var translation sql.NullString
		if err := rows.Scan(&position, &word, &translation); err != nil {
			return nil, err
		}

		if position != last {
			records = append(records, domain.Entry{Word: word, Translations: []string{}})
			last = position
		}
		if translation.Valid {
			record := &records[len(records)-1]
			record.Translations = append(record.Translations, translation.String)
		}
	}

	return records, rows.Err()
}

// vocabularyName validates baseName the same way file names are validated
func vocabularyName(baseName string) (string, error) {
	name, err := domain.FileName(baseName)
	if err != nil {
		return "", err
	}
	return strings.TrimSuffix(name, domain.FileExtension), nil
}
