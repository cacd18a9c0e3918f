package handler

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"translator/internal/domain"
	"translator/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// cleanCallbackData removes all non-printable characters from callback data
func cleanCallbackData(data string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) {
			return r
		}
		return -1
	}, strings.TrimSpace(data))
}

// handleEditError handles errors from c.Edit() - if message is not modified, just acknowledge callback
// Otherwise, acknowledge callback and return error so caller can send new message
func (h *Handler) handleEditError(err error, c tele.Context, userID int64) error {
	if err == nil {
		return nil
	}

	// Another callback already produced the same message
	if strings.Contains(err.Error(), "message is not modified") {
		h.logger.Debug("Message already modified by another callback, acknowledging",
			zap.Int64("user_id", userID),
			zap.String("callback_id", c.Callback().ID),
		)
		c.Respond()
		return nil
	}

	h.logger.Warn("Failed to edit message, sending new",
		zap.Error(err),
		zap.Int64("user_id", userID),
		zap.String("callback_id", c.Callback().ID),
	)
	// Always acknowledge callback before sending new message
	if ackErr := c.Respond(); ackErr != nil {
		h.logger.Warn("Failed to acknowledge callback", zap.Error(ackErr))
	}
	return err
}

// handleCallback handles ALL callback queries
func (h *Handler) handleCallback(c tele.Context) error {
	callback := c.Callback()
	if callback == nil {
		h.logger.Warn("handleCallback: callback is nil")
		return nil
	}

	// Clean data from all non-printable characters
	data := cleanCallbackData(callback.Data)
	h.logger.Debug("handleCallback: Processing callback",
		zap.String("data", data),
		zap.String("id", callback.ID),
		zap.String("unique", callback.Unique),
		zap.Int64("user_id", c.Sender().ID),
	)

	// Buttons without a registered handler arrive with an empty Unique
	// and the raw "\f<unique>" as data
	key := callback.Unique
	if key == "" {
		key = data
	}
	switch key {
	case "list":
		return h.handleList(c)
	case "stats":
		return h.handleStats(c)
	case "cancel":
		return h.handleCancel(c)
	case "main_menu":
		return h.handleStart(c)
	}

	// Handle by Data prefix (dynamic buttons)
	if strings.HasPrefix(key, "page_") {
		return h.handlePagination(c, key)
	}

	h.logger.Warn("Unhandled callback in handleCallback",
		zap.String("data", data),
		zap.String("unique", callback.Unique),
	)
	return c.Respond()
}

// handleList shows the first page of entries
func (h *Handler) handleList(c tele.Context) error {
	return h.showPage(c, 1)
}

// handlePagination handles page navigation
func (h *Handler) handlePagination(c tele.Context, data string) error {
	page, err := strconv.Atoi(strings.TrimPrefix(strings.TrimSpace(data), "page_"))
	if err != nil {
		return c.Respond(&tele.CallbackResponse{Text: "Invalid page"})
	}
	return h.showPage(c, page)
}

func (h *Handler) showPage(c tele.Context, page int) error {
	userID := c.Sender().ID

	var entries []domain.Entry
	err := h.withVocab(func(v *service.VocabularyService) error {
		var err error
		entries, err = v.Entries()
		return err
	})
	if err != nil {
		if c.Callback() != nil {
			return c.Respond(&tele.CallbackResponse{Text: outcomeText(err), ShowAlert: true})
		}
		return c.Send(outcomeText(err))
	}

	shown, page, totalPages := pageSlice(entries, page)
	text := fmt.Sprintf("📖 Entries, page %d of %d:\n\n%s", page, totalPages, formatEntries(shown))

	markup := &tele.ReplyMarkup{}
	rows := []tele.Row{}
	if totalPages > 1 {
		navRow := tele.Row{}
		if page > 1 {
			navRow = append(navRow, markup.Data("⬅️", fmt.Sprintf("page_%d", page-1)))
		}
		if page < totalPages {
			navRow = append(navRow, markup.Data("➡️", fmt.Sprintf("page_%d", page+1)))
		}
		rows = append(rows, navRow)
	}
	rows = append(rows, markup.Row(btnMainMenu))
	markup.Inline(rows...)

	// Edit message if callback, send new if command
	if c.Callback() != nil {
		if err := c.Edit(text, markup); err != nil {
			if handleErr := h.handleEditError(err, c, userID); handleErr == nil {
				return nil
			}
			return c.Send(text, markup)
		}
		return c.Respond()
	}
	return c.Send(text, markup)
}

// handleCancel cancels current operation and resets state
func (h *Handler) handleCancel(c tele.Context) error {
	userID := c.Sender().ID

	h.ResetState(userID)

	if err := c.Edit(mainMenuText, mainMenuMarkup()); err != nil {
		if handleErr := h.handleEditError(err, c, userID); handleErr == nil {
			return nil
		}
		return c.Send(mainMenuText, mainMenuMarkup())
	}
	return c.Respond()
}
