package game

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
)

const defaultSessionTTL = 30 * time.Minute

// Manager owns the live sessions. Sessions idle past the TTL are closed
// and dropped by a background janitor so abandoned games cannot leak
// their timers.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	source      QuestionSource
	sink        PointsSink
	logger      *log.Logger
	ttl         time.Duration
	sessionOpts []Option
	stop        chan struct{}
	stopOnce    sync.Once
}

type ManagerOption func(*Manager)

func WithSessionTTL(d time.Duration) ManagerOption {
	return func(m *Manager) { m.ttl = d }
}

// WithSessionOptions sets options applied to every created session.
func WithSessionOptions(opts ...Option) ManagerOption {
	return func(m *Manager) { m.sessionOpts = opts }
}

func NewManager(source QuestionSource, sink PointsSink, logger *log.Logger, opts ...ManagerOption) *Manager {
	m := &Manager{
		sessions: make(map[string]*Session),
		source:   source,
		sink:     sink,
		logger:   logger,
		ttl:      defaultSessionTTL,
		stop:     make(chan struct{}),
	}
	if m.logger == nil {
		m.logger = log.Default()
	}
	for _, opt := range opts {
		opt(m)
	}
	go m.janitor()
	return m
}

// Create performs the one-shot question load and registers a ready
// session. An unreachable store or an empty result is a load-time
// failure: no session is created and the caller shows the empty state.
func (m *Manager) Create(ctx context.Context, userID, subjectID uint, f Filter) (*Session, error) {
	questions, err := m.source.Load(ctx, subjectID, f)
	if err != nil {
		return nil, fmt.Errorf("load questions: %w", err)
	}
	if len(questions) == 0 {
		return nil, ErrNoQuestions
	}

	opts := append([]Option{WithLogger(m.logger)}, m.sessionOpts...)
	s := NewSession(uuid.NewString(), userID, subjectID, questions, m.sink, opts...)

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()

	return s, nil
}

func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	return s, ok
}

// Remove closes a session and drops it from the registry.
func (m *Manager) Remove(id string) {
	m.mu.Lock()
	s, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()

	if ok {
		s.Close()
	}
}

// Close stops the janitor and closes every live session.
func (m *Manager) Close() {
	m.stopOnce.Do(func() { close(m.stop) })

	m.mu.Lock()
	sessions := m.sessions
	m.sessions = make(map[string]*Session)
	m.mu.Unlock()

	for _, s := range sessions {
		s.Close()
	}
}

func (m *Manager) janitor() {
	interval := m.ttl / 2
	if interval > time.Minute {
		interval = time.Minute
	}
	if interval <= 0 {
		interval = time.Minute
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-m.stop:
			return
		case <-ticker.C:
			m.sweep()
		}
	}
}

func (m *Manager) sweep() {
	var expired []*Session

	m.mu.Lock()
	for id, s := range m.sessions {
		if s.idleFor() > m.ttl {
			delete(m.sessions, id)
			expired = append(expired, s)
		}
	}
	m.mu.Unlock()

	for _, s := range expired {
		s.Close()
		m.logger.Printf("expired idle game session %s (user %d)", s.ID, s.UserID)
	}
}
