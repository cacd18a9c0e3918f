package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"unicode"

	"translator/internal/domain"
	"translator/internal/report"
	"translator/internal/service"

	"go.uber.org/zap"
)

const menu = `What would you like to do?
 [1] Add Entry
 [2] Add Translations
 [3] Delete Entry
 [4] Delete Translations
 [5] Display All Entries
 [6] Search Word
 [7] Search Translation
 [8] Export
 [9] Import

 [X] Exit
`

var errExit = errors.New("exit")

// BrowseFunc shows a list of entries to the user
type BrowseFunc func([]domain.Entry) error

// Session runs the menu loop of the terminal front end
type Session struct {
	svc      *service.VocabularyService
	prompter *Prompter
	reporter *report.Reporter
	browse   BrowseFunc
	logger   *zap.Logger
}

// NewSession creates a menu session. Entries are listed through browse,
// or printed one after another when browse is nil.
func NewSession(svc *service.VocabularyService, prompter *Prompter, reporter *report.Reporter, browse BrowseFunc, logger *zap.Logger) *Session {
	s := &Session{
		svc:      svc,
		prompter: prompter,
		reporter: reporter,
		browse:   browse,
		logger:   logger,
	}
	if s.browse == nil {
		s.browse = func(entries []domain.Entry) error {
			reporter.Entries(entries)
			return nil
		}
	}
	return s
}

// Run shows the menu until the user exits or input ends
func (s *Session) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		s.reporter.Println(menu)
		id, err := s.prompter.ReadChar("> ")
		if err == nil {
			s.reporter.Println("")
			err = s.dispatch(ctx, unicode.ToUpper(id))
		}

		switch {
		case errors.Is(err, errExit):
			return nil
		case errors.Is(err, io.EOF):
			if s.svc.IsDirty() {
				s.logger.Warn("Input closed with unsaved changes", zap.Int("entries", s.svc.Count()))
			}
			return nil
		case err != nil:
			s.reporter.Report(err)
		}
		s.reporter.Println("")
	}
}

func (s *Session) dispatch(ctx context.Context, id rune) error {
	s.logger.Debug("Action chosen", zap.String("id", string(id)))

	switch id {
	case '1':
		return s.addEntries()
	case '2':
		return s.addTranslations()
	case '3':
		return s.deleteEntry()
	case '4':
		return s.deleteTranslations()
	case '5':
		return s.displayEntries()
	case '6':
		return s.searchWord()
	case '7':
		return s.searchTranslation()
	case '8':
		return s.export(ctx)
	case '9':
		return s.importEntries(ctx)
	case 'X':
		return s.exit()
	default:
		return fmt.Errorf("%w: %q", domain.ErrUnknownAction, id)
	}
}

func (s *Session) addEntries() error {
	for {
		word, err := s.prompter.ReadString20("Input the word of the entry")
		if err != nil {
			return err
		}
		translation, err := s.prompter.ReadString30("Input the first translation of the entry")
		if err != nil {
			return err
		}

		entry, err := s.svc.AddEntry(word, translation)
		if err != nil {
			return err
		}

		s.reporter.Println("")
		s.reporter.Entry(entry)
		s.reporter.Success("Added the entry into the stored list!")

		if s.svc.Stats().Free() == 0 {
			return nil
		}
		more, err := s.prompter.Confirm("Add another entry?")
		if err != nil || !more {
			return err
		}
	}
}

func (s *Session) addTranslations() error {
	word, err := s.prompter.ReadString20("Input the word of the entry")
	if err != nil {
		return err
	}

	entry, err := s.svc.FindByWord(word)
	if err != nil {
		return err
	}
	s.reporter.Entry(entry)

	for {
		translation, err := s.prompter.ReadString30("Input the new translation")
		if err != nil {
			return err
		}
		if err := s.svc.AddTranslation(entry.Word, translation); err != nil {
			return err
		}
		s.reporter.Success("Added the translation into the entry!")

		more, err := s.prompter.Confirm("Add another translation?")
		if err != nil || !more {
			return err
		}
	}
}

func (s *Session) deleteEntry() error {
	word, err := s.prompter.ReadString20("Input the word of the entry to delete")
	if err != nil {
		return err
	}

	entry, err := s.svc.FindByWord(word)
	if err != nil {
		return err
	}
	s.reporter.Entry(entry)

	ok, err := s.prompter.Confirm("Delete this entry?")
	if err != nil || !ok {
		return err
	}
	if err := s.svc.RemoveEntry(entry.Word); err != nil {
		return err
	}
	s.reporter.Success("Deleted the entry from the stored list!")
	return nil
}

func (s *Session) deleteTranslations() error {
	word, err := s.prompter.ReadString20("Input the word of the entry")
	if err != nil {
		return err
	}

	for {
		entry, err := s.svc.FindByWord(word)
		if err != nil {
			return err
		}
		s.reporter.Entry(entry)

		translation, err := s.prompter.ReadString30("Input the translation to delete")
		if err != nil {
			return err
		}
		if err := s.svc.RemoveTranslation(entry.Word, translation); err != nil {
			return err
		}

		if _, err := s.svc.FindByWord(entry.Word); errors.Is(err, domain.ErrNoEntriesWithWord) || errors.Is(err, domain.ErrNoEntriesPresent) {
			s.reporter.Success("Deleted the last translation and its entry!")
			return nil
		}
		s.reporter.Success("Deleted the translation from the entry!")

		more, err := s.prompter.Confirm("Delete another translation?")
		if err != nil || !more {
			return err
		}
	}
}

func (s *Session) displayEntries() error {
	entries, err := s.svc.Entries()
	if err != nil {
		return err
	}
	return s.browse(entries)
}

func (s *Session) searchWord() error {
	word, err := s.prompter.ReadString20("Input the word to search for")
	if err != nil {
		return err
	}

	entry, err := s.svc.FindByWord(word)
	if err != nil {
		return err
	}
	s.reporter.Println("")
	s.reporter.Entry(entry)
	return nil
}

func (s *Session) searchTranslation() error {
	translation, err := s.prompter.ReadString30("Input the translation to search for")
	if err != nil {
		return err
	}

	entries, err := s.svc.FindByTranslation(translation)
	if err != nil {
		return err
	}
	return s.browse(entries)
}

func (s *Session) export(ctx context.Context) error {
	name, err := s.prompter.ReadString30("Input the name of the file, without extension")
	if err != nil {
		return err
	}

	if err := s.svc.Save(ctx, name); err != nil {
		return err
	}
	s.reporter.Success(fmt.Sprintf("Exported %d entries to %s%s!", s.svc.Count(), name, domain.FileExtension))
	return nil
}

func (s *Session) importEntries(ctx context.Context) error {
	name, err := s.prompter.ReadString30("Input the name of the file, without extension")
	if err != nil {
		return err
	}

	confirm := func(entry domain.Entry) bool {
		s.reporter.Println("")
		s.reporter.Entry(entry)
		ok, err := s.prompter.Confirm("Add this entry?")
		return err == nil && ok
	}

	result, err := s.svc.Import(ctx, name, confirm)
	if result.Added > 0 || result.Skipped > 0 {
		s.reporter.Success(fmt.Sprintf("Imported %d entries, skipped %d.", result.Added, result.Skipped))
	}
	return err
}

func (s *Session) exit() error {
	if !s.svc.IsDirty() {
		return errExit
	}

	s.reporter.Println("You have unsaved changes. Use the \"Export\" action to keep them.")
	ok, err := s.prompter.Confirm("Exit anyway?")
	if err != nil {
		return err
	}
	if ok {
		return errExit
	}
	return nil
}
