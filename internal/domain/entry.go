package domain

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

const (
	MaxWordLength        = 20
	MaxTranslationLength = 30

	DefaultCapacity            = 150
	DefaultTranslationCapacity = 10

	// FileExtension is appended to every vocabulary base name
	FileExtension = ".txt"
	// MaxFileNameLength bounds base name plus extension
	MaxFileNameLength = 31
)

// Entry is a word with its translations in insertion order
type Entry struct {
	Word         string
	Translations []string
}

func (e Entry) clone() Entry {
	translations := make([]string, len(e.Translations))
	copy(translations, e.Translations)
	return Entry{Word: e.Word, Translations: translations}
}

// NormalizeWord validates a word and returns its canonical form
func NormalizeWord(word string) (string, error) {
	return normalize("word", word, MaxWordLength)
}

// NormalizeTranslation validates a translation and returns its canonical form
func NormalizeTranslation(translation string) (string, error) {
	return normalize("translation", translation, MaxTranslationLength)
}

// normalize trims and NFC-normalizes text, then enforces the length bound.
// Control characters are rejected because the file format reserves them.
func normalize(field, text string, maxLength int) (string, error) {
	if !utf8.ValidString(text) {
		return "", fmt.Errorf("%w: %s is not valid UTF-8", ErrInvalidInput, field)
	}

	text = norm.NFC.String(strings.TrimSpace(text))
	if text == "" {
		return "", fmt.Errorf("%w: %s is empty", ErrInvalidInput, field)
	}

	if n := utf8.RuneCountInString(text); n > maxLength {
		return "", fmt.Errorf("%w: %s is %d characters long, maximum is %d", ErrInvalidInput, field, n, maxLength)
	}

	for _, r := range text {
		if unicode.IsControl(r) {
			return "", fmt.Errorf("%w: %s contains a control character", ErrInvalidInput, field)
		}
	}

	return text, nil
}

// FileName validates a vocabulary base name and returns it with FileExtension appended
func FileName(baseName string) (string, error) {
	if !utf8.ValidString(baseName) {
		return "", fmt.Errorf("%w: name is not valid UTF-8", ErrInvalidFileName)
	}

	baseName = strings.TrimSpace(baseName)
	if baseName == "" || baseName == "." || baseName == ".." {
		return "", fmt.Errorf("%w: %q", ErrInvalidFileName, baseName)
	}

	if strings.ContainsAny(baseName, `/\`) || filepath.Base(baseName) != baseName {
		return "", fmt.Errorf("%w: %q contains a path separator", ErrInvalidFileName, baseName)
	}

	for _, r := range baseName {
		if unicode.IsControl(r) {
			return "", fmt.Errorf("%w: %q contains a control character", ErrInvalidFileName, baseName)
		}
	}

	name := baseName + FileExtension
	if n := utf8.RuneCountInString(name); n > MaxFileNameLength {
		return "", fmt.Errorf("%w: %q is %d characters long, maximum is %d", ErrInvalidFileName, name, n, MaxFileNameLength)
	}

	return name, nil
}
