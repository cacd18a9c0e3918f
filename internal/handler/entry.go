package handler

import (
	"context"
	"errors"
	"strings"

	"translator/internal/domain"
	"translator/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// handleText handles all text messages based on state
func (h *Handler) handleText(c tele.Context) error {
	userID := c.Sender().ID
	text := strings.TrimSpace(c.Text())

	// Ignore commands (starting with /)
	if strings.HasPrefix(text, "/") {
		return nil
	}

	// If not authorized, check password
	if !h.authService.IsAuthorized(userID) {
		if h.authService.CheckPassword(text) {
			h.authService.AuthorizeUser(userID)

			h.logger.Info("User authorized", zap.Int64("user_id", userID))
			h.ResetState(userID)
			return c.Send("✅ Access granted!\n\n"+mainMenuText, mainMenuMarkup())
		}

		h.logger.Warn("Wrong password", zap.Int64("user_id", userID))
		return c.Send("Wrong password.")
	}

	state := h.GetState(userID)

	switch state.State {
	case domain.StateWaitingTranslation:
		word := state.CurrentWord
		var entry domain.Entry
		err := h.withVocab(func(v *service.VocabularyService) error {
			var err error
			if _, findErr := v.FindByWord(word); findErr == nil {
				err = v.AddTranslation(word, text)
			} else {
				_, err = v.AddEntry(word, text)
			}
			if err != nil {
				return err
			}
			entry, err = v.FindByWord(word)
			return err
		})
		if err != nil {
			h.logger.Info("Translation rejected",
				zap.Int64("user_id", userID),
				zap.String("word", word),
				zap.Error(err),
			)
			return c.Send(outcomeText(err)+"\n\nSend another translation or cancel.", cancelMarkup())
		}

		h.logger.Info("Translation saved",
			zap.Int64("user_id", userID),
			zap.String("word", word),
			zap.String("translation", text),
		)

		h.ResetState(userID)
		return c.Send("✅ Saved!\n\n" + formatEntry(entry) + "\n\nSend the next word or go back to /start")

	default:
		// Idle state - start word input flow
		word, err := domain.NormalizeWord(text)
		if err != nil {
			return c.Send(outcomeText(err))
		}

		h.SetState(userID, &domain.StateData{
			State:       domain.StateWaitingTranslation,
			CurrentWord: word,
		})

		return c.Send("Send the translation of \""+word+"\"", cancelMarkup())
	}
}

// handleAdd handles /add word
func (h *Handler) handleAdd(c tele.Context) error {
	var entry domain.Entry
	err := h.withVocab(func(v *service.VocabularyService) error {
		var err error
		entry, err = v.AddEntry(c.Message().Payload)
		return err
	})
	if err != nil {
		return c.Send(outcomeText(err))
	}
	return c.Send("✅ Added!\n\n" + formatEntry(entry) + "\n\nAdd translations with /translate " + entry.Word + " <translation>")
}

// handleTranslate handles /translate word translation
func (h *Handler) handleTranslate(c tele.Context) error {
	word, translation, err := parseTranslateArgs(c.Message().Payload)
	if err != nil {
		return c.Send(outcomeText(err) + "\n\nUsage: /translate word translation")
	}

	var entry domain.Entry
	err = h.withVocab(func(v *service.VocabularyService) error {
		word, translation = splitEntryArgs(v, word, translation)
		if err := v.AddTranslation(word, translation); err != nil {
			return err
		}
		var err error
		entry, err = v.FindByWord(word)
		return err
	})
	if err != nil {
		return c.Send(outcomeText(err))
	}
	return c.Send("✅ Saved!\n\n" + formatEntry(entry))
}

// handleWord handles /word word
func (h *Handler) handleWord(c tele.Context) error {
	var entry domain.Entry
	err := h.withVocab(func(v *service.VocabularyService) error {
		var err error
		entry, err = v.FindByWord(c.Message().Payload)
		return err
	})
	if err != nil {
		return c.Send(outcomeText(err))
	}
	return c.Send(formatEntry(entry))
}

// handleSearch handles /search translation
func (h *Handler) handleSearch(c tele.Context) error {
	var entries []domain.Entry
	err := h.withVocab(func(v *service.VocabularyService) error {
		var err error
		entries, err = v.FindByTranslation(c.Message().Payload)
		return err
	})
	if err != nil {
		return c.Send(outcomeText(err))
	}
	return c.Send(formatEntries(entries))
}

// handleRemove handles /remove word and /remove word translation
func (h *Handler) handleRemove(c tele.Context) error {
	payload := strings.TrimSpace(c.Message().Payload)

	err := h.withVocab(func(v *service.VocabularyService) error {
		if _, err := v.FindByWord(payload); err == nil {
			return v.RemoveEntry(payload)
		}
		if word, translation, err := parseTranslateArgs(payload); err == nil {
			word, translation = splitEntryArgs(v, word, translation)
			return v.RemoveTranslation(word, translation)
		}
		return v.RemoveEntry(payload)
	})
	if err != nil {
		return c.Send(outcomeText(err))
	}
	return c.Send("🗑 Deleted.")
}

// handleStats handles /stats and the stats button
func (h *Handler) handleStats(c tele.Context) error {
	text := formatStats(h.vocabStats())
	if c.Callback() != nil {
		if err := c.Send(text); err != nil {
			return err
		}
		return c.Respond()
	}
	return c.Send(text)
}

// handleSave handles /save
func (h *Handler) handleSave(c tele.Context) error {
	err := h.withVocab(func(v *service.VocabularyService) error {
		return v.Save(context.Background(), h.vocabName)
	})
	if err != nil {
		if !errors.Is(err, domain.ErrNoEntriesPresent) {
			h.logger.Error("Failed to save vocabulary", zap.String("name", h.vocabName), zap.Error(err))
		}
		return c.Send(outcomeText(err))
	}
	return c.Send("💾 Saved.")
}

// splitEntryArgs moves the split between word and translation to the longest
// leading run of words naming an existing entry, so entries like "ice cream"
// can be addressed. Without such an entry the first-space split is kept.
func splitEntryArgs(v *service.VocabularyService, word, translation string) (string, string) {
	payload := word + " " + translation
	for i := strings.LastIndex(payload, " "); i > len(word); i = strings.LastIndex(payload[:i], " ") {
		if _, err := v.FindByWord(payload[:i]); err == nil {
			return payload[:i], strings.TrimSpace(payload[i+1:])
		}
	}
	return word, translation
}
