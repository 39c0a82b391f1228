package gallery

import (
	"sync"

	"github.com/desertthunder/pictx/internal/shared"
)

// SessionFlags is volatile per-session flag storage; it lives as long as the process.
type SessionFlags struct {
	id     string
	mu     sync.Mutex
	values map[string]bool
}

var _ FlagStore = (*SessionFlags)(nil)

// NewSessionFlags starts a new session with a fresh id.
func NewSessionFlags() *SessionFlags {
	return &SessionFlags{id: shared.GenerateID(), values: make(map[string]bool)}
}

// ID identifies the session in logs.
func (s *SessionFlags) ID() string { return s.id }

func (s *SessionFlags) Get(key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.values[key], nil
}

func (s *SessionFlags) Set(key string, value bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}
