package file

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"translator/internal/domain"

	"go.uber.org/zap"
)

const separator = "\t"

// maxLineLength bounds a record line in bytes. Longer lines are skipped.
const maxLineLength = 64 * 1024

// VocabularyRepo stores each vocabulary as <dir>/<baseName>.txt,
// one entry per line: the word followed by its translations, tab separated.
type VocabularyRepo struct {
	dir    string
	logger *zap.Logger
}

// NewVocabularyRepo creates a new file-backed vocabulary repository
func NewVocabularyRepo(dir string, logger *zap.Logger) *VocabularyRepo {
	if dir == "" {
		dir = "."
	}
	return &VocabularyRepo{dir: dir, logger: logger}
}

// Path returns the file a base name is stored in
func (r *VocabularyRepo) Path(baseName string) (string, error) {
	name, err := domain.FileName(baseName)
	if err != nil {
		return "", err
	}
	return filepath.Join(r.dir, name), nil
}

// Save creates or overwrites the file for baseName with every entry in store
func (r *VocabularyRepo) Save(ctx context.Context, baseName string, store *domain.EntryStore) error {
	path, err := r.Path(baseName)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrFileCreationFailed, err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrFileCreationFailed, err)
	}

	w := bufio.NewWriter(f)
	for _, entry := range store.Entries() {
		line := strings.Join(append([]string{entry.Word}, entry.Translations...), separator)
		if _, err := w.WriteString(line + "\n"); err != nil {
			f.Close()
			return fmt.Errorf("%w: %w", domain.ErrFileCreationFailed, err)
		}
	}

	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("%w: %w", domain.ErrFileCreationFailed, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrFileCreationFailed, err)
	}

	r.logger.Info("Vocabulary saved",
		zap.String("path", path),
		zap.Int("entries", store.Count()),
	)
	return nil
}

// Load reads the file for baseName into a new store built with opts.
// Records that do not fit or fail validation are skipped and logged.
func (r *VocabularyRepo) Load(ctx context.Context, baseName string, opts ...domain.StoreOption) (*domain.EntryStore, error) {
	path, err := r.Path(baseName)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrFileReadingFailed, err)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrFileReadingFailed, err)
	}
	defer f.Close()

	records, lines, err := parse(f, func(line int) {
		r.logger.Warn("Skipped vocabulary record",
			zap.String("path", path),
			zap.Int("line", line),
			zap.Error(fmt.Errorf("%w: line is longer than %d bytes", domain.ErrInvalidInput, maxLineLength)),
		)
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrFileReadingFailed, err)
	}

	store := domain.NewEntryStore(opts...)
	for _, rejected := range store.Fill(records) {
		r.logger.Warn("Skipped vocabulary record",
			zap.String("path", path),
			zap.Int("line", lines[rejected.Record-1]),
			zap.String("word", rejected.Word),
			zap.String("translation", rejected.Translation),
			zap.Error(rejected.Err),
		)
	}

	r.logger.Info("Vocabulary loaded",
		zap.String("path", path),
		zap.Int("records", len(records)),
		zap.Int("entries", store.Count()),
	)
	return store, nil
}

// parse splits the file into records, returning the line number of each.
// Lines longer than maxLineLength are reported to skip and left out.
func parse(r io.Reader, skip func(line int)) ([]domain.Entry, []int, error) {
	var records []domain.Entry
	var lines []int

	reader := bufio.NewReader(r)
	for n := 1; ; n++ {
		line, tooLong, err := readLine(reader)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, err
		}

		if tooLong {
			skip(n)
			continue
		}

		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		fields := strings.Split(line, separator)
		records = append(records, domain.Entry{Word: fields[0], Translations: fields[1:]})
		lines = append(lines, n)
	}

	return records, lines, nil
}

// readLine reads one line without its terminator. A line past maxLineLength
// is consumed entirely and reported as too long.
func readLine(r *bufio.Reader) (string, bool, error) {
	var buf []byte
	tooLong := false

	for {
		fragment, isPrefix, err := r.ReadLine()
		if err != nil {
			return "", false, err
		}

		if !tooLong {
			if len(buf)+len(fragment) > maxLineLength {
				tooLong = true
				buf = nil
			} else {
				buf = append(buf, fragment...)
			}
		}

		if !isPrefix {
			return string(buf), tooLong, nil
		}
	}
}
