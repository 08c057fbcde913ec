package session

import (
	"errors"
	"net/mail"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/mathsheet/internal/entitlement"
	"github.com/abhisek/mathsheet/internal/questiongen"
	"github.com/abhisek/mathsheet/internal/store"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrInvalidEmail    = errors.New("a valid email address is required")
)

// Session is one logged-in user and their worksheet controller.
type Session struct {
	ID         string
	CreatedAt  time.Time
	Controller *Controller
}

// User returns a snapshot of the session's user.
func (s *Session) User() entitlement.User {
	return s.Controller.View().User
}

// ManagerConfig configures a Manager.
type ManagerConfig struct {
	// MaxFreeWorksheets is each new user's free allowance. Zero is valid
	// and means no free worksheets.
	MaxFreeWorksheets int

	// Events receives generation events. May be nil.
	Events store.EventRepo
}

// DefaultManagerConfig returns the standard allowance and no event log.
func DefaultManagerConfig() ManagerConfig {
	return ManagerConfig{MaxFreeWorksheets: entitlement.DefaultMaxFreeWorksheets}
}

// Manager is the in-memory mock login store. There is no credential check
// and nothing outlives the process.
type Manager struct {
	mu        sync.RWMutex
	sessions  map[string]*Session
	generator questiongen.Generator
	config    ManagerConfig
	now       func() time.Time
}

// NewManager creates an empty Manager whose sessions generate with gen.
func NewManager(gen questiongen.Generator, cfg ManagerConfig) *Manager {
	return &Manager{
		sessions:  make(map[string]*Session),
		generator: gen,
		config:    cfg,
		now:       time.Now,
	}
}

// Login creates a fresh unpaid user for email and a session for them.
// Logging in twice with the same email yields two independent sessions.
func (m *Manager) Login(email string) (*Session, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return nil, err
	}

	user := entitlement.NewUser(uuid.NewString(), email, m.config.MaxFreeWorksheets)
	id := uuid.NewString()
	s := &Session{
		ID:         id,
		CreatedAt:  m.now(),
		Controller: NewController(id, user, m.generator, m.config.Events),
	}

	m.mu.Lock()
	m.sessions[id] = s
	m.mu.Unlock()

	return s, nil
}

// Get returns the session with the given id.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// Logout destroys the session and its user.
func (m *Manager) Logout(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(m.sessions, id)
	return nil
}

// FreeAllowance returns the free worksheet count given to new users.
func (m *Manager) FreeAllowance() int {
	return m.config.MaxFreeWorksheets
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// normalizeEmail accepts a bare address like "ann@example.com".
func normalizeEmail(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	addr, err := mail.ParseAddress(raw)
	if err != nil || addr.Address != raw || addr.Name != "" {
		return "", ErrInvalidEmail
	}
	return strings.ToLower(addr.Address), nil
}
