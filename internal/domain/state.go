package domain

// UserState represents a chat user's current interaction state
type UserState string

const (
	StateIdle               UserState = "idle"
	StateWaitingTranslation UserState = "waiting_translation"
	StateWaitingPassword    UserState = "waiting_password"
)

// StateData holds temporary data for a user's current state
type StateData struct {
	State       UserState
	CurrentWord string
	MessageID   int // For editing messages
}
