package service

import (
	"crypto/subtle"
	"sync"
)

// AuthService gates chat users behind a shared password
type AuthService struct {
	botPassword string

	mu         sync.RWMutex
	authorized map[int64]bool
}

// NewAuthService creates a new auth service
func NewAuthService(botPassword string) *AuthService {
	return &AuthService{
		botPassword: botPassword,
		authorized:  make(map[int64]bool),
	}
}

// CheckPassword verifies if provided password matches
func (s *AuthService) CheckPassword(password string) bool {
	return subtle.ConstantTimeCompare([]byte(password), []byte(s.botPassword)) == 1
}

// IsAuthorized checks if user is authorized
func (s *AuthService) IsAuthorized(userID int64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.authorized[userID]
}

// AuthorizeUser authorizes a user
func (s *AuthService) AuthorizeUser(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.authorized[userID] = true
}
