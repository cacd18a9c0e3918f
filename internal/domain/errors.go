package domain

import (
	"errors"
	"fmt"
)

// Severity tells whether an outcome aborted an operation or only hit a soft limit
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
)

// String returns the severity name
func (s Severity) String() string {
	if s == SeverityWarning {
		return "warning"
	}
	return "error"
}

// Outcome is one member of the closed set of failures the entry store
// and its persistence adapters report to callers.
type Outcome struct {
	Name     string
	Severity Severity
	text     string
}

func (o *Outcome) Error() string {
	return o.text
}

// Errors: the operation was not performed.
var (
	ErrInvalidInput       = &Outcome{Name: "INVALID_ACTION_ID", Severity: SeverityError, text: "invalid input"}
	ErrFileCreationFailed = &Outcome{Name: "FILE_CREATION_FAILED", Severity: SeverityError, text: "file cannot be created or overwritten"}
	ErrFileReadingFailed  = &Outcome{Name: "FILE_READING_FAILED", Severity: SeverityError, text: "file cannot be opened and read"}
	ErrNoEntriesPresent   = &Outcome{Name: "NO_ENTRIES_PRESENT", Severity: SeverityError, text: "no entries present"}
)

// Warnings: a capacity limit was reached or a search came up empty.
var (
	ErrMaxedEntries             = &Outcome{Name: "MAXED_ENTRIES", Severity: SeverityWarning, text: "maximum number of entries reached"}
	ErrMaxedTranslations        = &Outcome{Name: "MAXED_TRANSLATIONS", Severity: SeverityWarning, text: "maximum number of translations reached"}
	ErrNoEntriesWithTranslation = &Outcome{Name: "NO_ENTRIES_WITH_TRANSLATION", Severity: SeverityWarning, text: "no entry contains the translation"}
	ErrNoEntriesWithWord        = &Outcome{Name: "NO_ENTRIES_WITH_WORD", Severity: SeverityWarning, text: "no entry contains the word"}
)

// Refinements of ErrInvalidInput
var (
	ErrDuplicateWord        = fmt.Errorf("%w: word already exists", ErrInvalidInput)
	ErrDuplicateTranslation = fmt.Errorf("%w: translation already exists in the entry", ErrInvalidInput)
	ErrInvalidFileName      = fmt.Errorf("%w: invalid file name", ErrInvalidInput)
	ErrUnknownAction        = fmt.Errorf("%w: unknown action id", ErrInvalidInput)
)

// Outcomes lists every taxonomy member, errors first.
var Outcomes = []*Outcome{
	ErrInvalidInput,
	ErrFileCreationFailed,
	ErrFileReadingFailed,
	ErrNoEntriesPresent,
	ErrMaxedEntries,
	ErrMaxedTranslations,
	ErrNoEntriesWithTranslation,
	ErrNoEntriesWithWord,
}

// Classify returns the taxonomy member err maps to, or nil when err
// did not originate from the core.
func Classify(err error) *Outcome {
	var outcome *Outcome
	if errors.As(err, &outcome) {
		return outcome
	}
	return nil
}

// IsWarning reports whether err maps to a warning member
func IsWarning(err error) bool {
	outcome := Classify(err)
	return outcome != nil && outcome.Severity == SeverityWarning
}
