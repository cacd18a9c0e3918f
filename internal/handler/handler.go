package handler

import (
	"context"
	"sync"

	"translator/internal/domain"
	"translator/internal/middleware"
	"translator/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// Handler manages all bot interactions
type Handler struct {
	bot         *tele.Bot
	authService *service.AuthService
	logger      *zap.Logger

	// One vocabulary shared by every chat; the service is not goroutine safe
	vocab     *service.VocabularyService
	vocabName string
	vocabMux  sync.Mutex

	// User states (in-memory state machine)
	states   map[int64]*domain.StateData
	stateMux sync.RWMutex
}

// NewHandler creates a new handler instance
func NewHandler(
	bot *tele.Bot,
	authService *service.AuthService,
	vocab *service.VocabularyService,
	vocabName string,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		bot:         bot,
		authService: authService,
		vocab:       vocab,
		vocabName:   vocabName,
		logger:      logger,
		states:      make(map[int64]*domain.StateData),
	}
}

// RegisterHandlers registers all bot handlers
func (h *Handler) RegisterHandlers() {
	auth := middleware.AuthMiddleware(h.authService, h.logger)

	// Commands
	h.bot.Handle("/start", h.handleStart)
	h.bot.Handle("/help", h.handleHelp, auth)
	h.bot.Handle("/add", h.handleAdd, auth)
	h.bot.Handle("/translate", h.handleTranslate, auth)
	h.bot.Handle("/word", h.handleWord, auth)
	h.bot.Handle("/search", h.handleSearch, auth)
	h.bot.Handle("/remove", h.handleRemove, auth)
	h.bot.Handle("/list", h.handleList, auth)
	h.bot.Handle("/stats", h.handleStats, auth)
	h.bot.Handle("/save", h.handleSave, auth)

	// Text messages
	h.bot.Handle(tele.OnText, h.handleText)

	// Callback queries (inline buttons)
	h.bot.Handle(&btnList, h.handleList, auth)
	h.bot.Handle(&btnStats, h.handleStats, auth)
	h.bot.Handle(&btnCancel, h.handleCancel, auth)
	h.bot.Handle(&btnMainMenu, h.handleStart)

	// Generic callback handler for dynamic data
	h.bot.Handle(tele.OnCallback, h.handleCallback, auth)
}

// withVocab runs fn while holding the vocabulary lock
func (h *Handler) withVocab(fn func(v *service.VocabularyService) error) error {
	h.vocabMux.Lock()
	defer h.vocabMux.Unlock()
	return fn(h.vocab)
}

// vocabStats returns the vocabulary stats under the vocabulary lock
func (h *Handler) vocabStats() service.Stats {
	h.vocabMux.Lock()
	defer h.vocabMux.Unlock()
	return h.vocab.Stats()
}

// Flush saves unsaved vocabulary changes
func (h *Handler) Flush(ctx context.Context) (bool, error) {
	var saved bool
	err := h.withVocab(func(v *service.VocabularyService) error {
		var err error
		saved, err = v.Flush(ctx)
		return err
	})
	return saved, err
}

// GetState returns user's current state
func (h *Handler) GetState(userID int64) *domain.StateData {
	h.stateMux.RLock()
	defer h.stateMux.RUnlock()

	state, exists := h.states[userID]
	if !exists {
		return &domain.StateData{State: domain.StateIdle}
	}
	return state
}

// SetState sets user's state
func (h *Handler) SetState(userID int64, state *domain.StateData) {
	h.stateMux.Lock()
	defer h.stateMux.Unlock()
	h.states[userID] = state
}

// ResetState resets user to idle state
func (h *Handler) ResetState(userID int64) {
	h.SetState(userID, &domain.StateData{State: domain.StateIdle})
}

// Inline keyboard buttons
var (
	btnList = tele.Btn{
		Unique: "list",
		Text:   "📖 Entries",
	}
	btnStats = tele.Btn{
		Unique: "stats",
		Text:   "📊 Stats",
	}
	btnCancel = tele.Btn{
		Unique: "cancel",
		Text:   "❌ Cancel",
	}
	btnMainMenu = tele.Btn{
		Unique: "main_menu",
		Text:   "🏠 Main menu",
	}
)

const mainMenuText = "🏠 Main menu\n\nSend a word to add it, or choose an action:"

// mainMenuMarkup returns the main menu keyboard
func mainMenuMarkup() *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}
	menu.Inline(
		menu.Row(btnList),
		menu.Row(btnStats),
	)
	return menu
}

// cancelMarkup returns a keyboard with a single cancel button
func cancelMarkup() *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	markup.Inline(markup.Row(btnCancel))
	return markup
}
