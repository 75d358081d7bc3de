package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Level is the severity of a toast.
type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Toast is one transient notification.
type Toast struct {
	ID        string
	Level     Level
	Message   string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Store holds active toasts. Identifiers are random UUIDs so concurrent
// producers never need to coordinate.
type Store struct {
	mu     sync.Mutex
	ttl    time.Duration
	now    func() time.Time
	toasts []Toast
}

// NewStore returns a store whose toasts live for ttl (4s when ttl <= 0).
func NewStore(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = 4 * time.Second
	}
	return &Store{ttl: ttl, now: time.Now}
}

// Push adds a toast and returns its id.
func (s *Store) Push(level Level, message string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	t := Toast{ID: uuid.NewString(), Level: level, Message: message, CreatedAt: now, ExpiresAt: now.Add(s.ttl)}
	s.toasts = append(s.toasts, t)
	return t.ID
}

// Dismiss removes the toast with id; unknown ids are ignored.
func (s *Store) Dismiss(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, t := range s.toasts {
		if t.ID == id {
			s.toasts = append(s.toasts[:i], s.toasts[i+1:]...)
			return true
		}
	}
	return false
}

// Active prunes expired toasts and returns the rest, oldest first.
func (s *Store) Active(now time.Time) []Toast {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.toasts[:0]
	for _, t := range s.toasts {
		if now.Before(t.ExpiresAt) {
			kept = append(kept, t)
		}
	}
	s.toasts = kept
	return append([]Toast(nil), kept...)
}

// Latest returns the newest active toast.
func (s *Store) Latest(now time.Time) (Toast, bool) {
	active := s.Active(now)
	if len(active) == 0 {
		return Toast{}, false
	}
	return active[len(active)-1], true
}
