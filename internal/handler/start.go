package handler

import (
	"translator/internal/domain"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const passwordPrompt = "Hi! Send the password to continue:"

const helpText = `Send any word to add it, then its translation.

/add word - add an entry without translations
/translate word translation - add a translation
/word word - show an entry
/search translation - find entries by translation
/remove word [translation] - delete an entry or one translation
/list - browse all entries
/stats - show vocabulary usage
/save - save the vocabulary now`

// handleStart handles /start command
func (h *Handler) handleStart(c tele.Context) error {
	userID := c.Sender().ID

	h.logger.Info("User started bot",
		zap.Int64("user_id", userID),
		zap.String("username", c.Sender().Username),
	)

	h.ResetState(userID)

	if !h.authService.IsAuthorized(userID) {
		h.SetState(userID, &domain.StateData{State: domain.StateWaitingPassword})
		return c.Send(passwordPrompt)
	}

	if c.Callback() != nil {
		if err := c.Edit(mainMenuText, mainMenuMarkup()); err != nil {
			if handleErr := h.handleEditError(err, c, userID); handleErr == nil {
				return nil
			}
			return c.Send(mainMenuText, mainMenuMarkup())
		}
		return c.Respond()
	}
	return c.Send(mainMenuText, mainMenuMarkup())
}

// handleHelp handles /help command
func (h *Handler) handleHelp(c tele.Context) error {
	return c.Send(helpText)
}
