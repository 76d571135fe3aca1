package game

import (
	"context"
	"errors"
	"log"
	"math/rand"
	"sync"
	"time"
)

type State string

const (
	StateIdle   State = "idle"
	StateReady  State = "ready"
	StateActive State = "active"
	StateEnded  State = "ended"
)

type Mode string

const (
	ModePractice  Mode = "practice"
	ModeTimed     Mode = "timed"
	ModeChallenge Mode = "challenge"
)

func (m Mode) Valid() bool {
	return m == ModePractice || m == ModeTimed || m == ModeChallenge
}

const (
	// TimedBudgetSeconds is the countdown budget for timed mode.
	TimedBudgetSeconds = 300
	// DefaultAdvanceDelay is how long the answer reveal stays on screen
	// before the session moves to the next question on its own.
	DefaultAdvanceDelay = 2 * time.Second
	// DefaultQuestionLimit bounds the question page loaded per session.
	DefaultQuestionLimit = 20

	pointsAwardDivisor = 10
)

var (
	ErrNoQuestions = errors.New("no questions available")
	ErrInvalidMode = errors.New("invalid game mode")
	ErrNotReady    = errors.New("session is not ready to start")
	ErrClosed      = errors.New("session is closed")
)

// Question is the engine's flattened view of a quiz question.
type Question struct {
	ID              uint     `json:"id"`
	Text            string   `json:"text"`
	Type            string   `json:"type"`
	Options         []string `json:"options"`
	CorrectAnswer   string   `json:"correct_answer"`
	Explanation     string   `json:"explanation"`
	DifficultyLevel int      `json:"difficulty_level"`
	Points          int      `json:"points"`
}

// PointsSink receives the fire-and-forget award issued when a session ends.
type PointsSink interface {
	AddPoints(ctx context.Context, userID uint, points int) error
}

// QuestionSource performs the one-shot question load for a new session.
type QuestionSource interface {
	Load(ctx context.Context, subjectID uint, f Filter) ([]Question, error)
}

// Filter narrows the question page loaded for a session.
type Filter struct {
	Difficulty int
	Search     string
	Limit      int
}

// Session is one quiz playthrough. All mutation happens under mu:
// user-driven calls, the per-second clock and the auto-advance callback
// land on the same mutex, so "at most one scoring per question" holds
// as an atomic check-and-set.
type Session struct {
	ID        string
	UserID    uint
	SubjectID uint

	mu            sync.Mutex
	loaded        []Question // fetched once, never mutated
	questions     []Question // shuffled copy for the current run
	state         State
	mode          Mode
	current       int
	score         int
	correctCount  int
	timeRemaining int
	selected      string
	hasSelected   bool
	revealed      bool
	closed        bool
	lastTouched   time.Time

	// gen invalidates scheduled callbacks from a previous sub-state.
	gen          uint64
	advanceTimer *time.Timer
	tickStop     chan struct{}

	sink         PointsSink
	logger       *log.Logger
	advanceDelay time.Duration
	tickInterval time.Duration
}

type Option func(*Session)

// WithAdvanceDelay overrides the reveal delay. Zero disables the
// auto-advance timer entirely; the caller then drives Advance itself.
func WithAdvanceDelay(d time.Duration) Option {
	return func(s *Session) { s.advanceDelay = d }
}

// WithTickInterval overrides the timed-mode clock rate. Zero disables
// the internal clock; the caller then drives Tick itself.
func WithTickInterval(d time.Duration) Option {
	return func(s *Session) { s.tickInterval = d }
}

func WithLogger(l *log.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// NewSession builds a session over an already-loaded question set. With
// no questions the session stays idle and can never start.
func NewSession(id string, userID, subjectID uint, questions []Question, sink PointsSink, opts ...Option) *Session {
	s := &Session{
		ID:           id,
		UserID:       userID,
		SubjectID:    subjectID,
		loaded:       append([]Question(nil), questions...),
		state:        StateIdle,
		sink:         sink,
		logger:       log.Default(),
		advanceDelay: DefaultAdvanceDelay,
		tickInterval: time.Second,
		lastTouched:  time.Now(),
	}
	if len(s.loaded) > 0 {
		s.state = StateReady
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start begins a run in the given mode. The question order is a fresh
// unbiased permutation of the loaded set on every call.
func (s *Session) Start(mode Mode) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastTouched = time.Now()

	if s.closed {
		return ErrClosed
	}
	if !mode.Valid() {
		return ErrInvalidMode
	}
	if s.state != StateReady {
		return ErrNotReady
	}
	if len(s.loaded) == 0 {
		return ErrNoQuestions
	}

	s.gen++
	s.cancelAdvanceLocked()
	s.stopClockLocked()

	s.questions = append([]Question(nil), s.loaded...)
	rand.Shuffle(len(s.questions), func(i, j int) {
		s.questions[i], s.questions[j] = s.questions[j], s.questions[i]
	})

	s.mode = mode
	s.current = 0
	s.score = 0
	s.correctCount = 0
	s.selected = ""
	s.hasSelected = false
	s.revealed = false
	s.state = StateActive

	if mode == ModeTimed {
		s.timeRemaining = TimedBudgetSeconds
		if s.tickInterval > 0 {
			s.tickStop = make(chan struct{})
			go s.runClock(s.tickStop)
		}
	} else {
		s.timeRemaining = 0
	}

	return nil
}

// SelectAnswer records the answer for the current question and reveals
// the result. Repeated calls before the next advance are silent no-ops,
// which is what makes double-submission from the UI harmless.
func (s *Session) SelectAnswer(answer string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastTouched = time.Now()

	if s.state != StateActive || s.revealed || s.hasSelected || s.current >= len(s.questions) {
		return
	}

	q := s.questions[s.current]
	s.selected = answer
	s.hasSelected = true
	s.revealed = true

	if answer == q.CorrectAnswer {
		s.score += q.Points
		s.correctCount++
	}

	if s.advanceDelay > 0 {
		gen := s.gen
		s.advanceTimer = time.AfterFunc(s.advanceDelay, func() {
			s.autoAdvance(gen)
		})
	}
}

// Advance moves past a revealed answer. Outside the reveal phase it is
// a silent no-op.
func (s *Session) Advance() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastTouched = time.Now()

	if s.state != StateActive || !s.revealed {
		return
	}
	s.advanceLocked()
}

func (s *Session) autoAdvance(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// The session moved on (explicit advance, reset, close) since this
	// callback was scheduled.
	if s.gen != gen {
		return
	}
	if s.state != StateActive || !s.revealed {
		return
	}
	s.advanceLocked()
}

func (s *Session) advanceLocked() {
	s.gen++
	s.cancelAdvanceLocked()

	if s.current+1 >= len(s.questions) {
		s.current = len(s.questions)
		s.endLocked()
		return
	}

	s.current++
	s.selected = ""
	s.hasSelected = false
	s.revealed = false
}

// Tick decrements the timed-mode clock by one second. At zero the
// session ends immediately, answered or not. Never goes negative.
func (s *Session) Tick() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tickLocked()
}

// clockTick is the internal clock's entry. A goroutine from a stopped
// clock can still be waiting on the mutex when the run restarts; the
// channel identity check drops its tick.
func (s *Session) clockTick(stop chan struct{}) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.tickStop != stop {
		return
	}
	s.tickLocked()
}

func (s *Session) tickLocked() {
	if s.state != StateActive || s.mode != ModeTimed || s.timeRemaining <= 0 {
		return
	}

	s.timeRemaining--
	if s.timeRemaining <= 0 {
		s.timeRemaining = 0
		s.endLocked()
	}
}

func (s *Session) runClock(stop chan struct{}) {
	ticker := time.NewTicker(s.tickInterval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			s.clockTick(stop)
		}
	}
}

// End finalizes the run from any active sub-state.
func (s *Session) End() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastTouched = time.Now()

	if s.state != StateActive {
		return
	}
	s.endLocked()
}

func (s *Session) endLocked() {
	s.gen++
	s.cancelAdvanceLocked()
	s.stopClockLocked()
	s.state = StateEnded

	// Fire-and-forget: the round is over whether or not the award
	// lands, so a sink failure is logged and nothing else.
	if s.score > 0 && s.sink != nil {
		userID := s.UserID
		award := s.score / pointsAwardDivisor
		sink := s.sink
		logger := s.logger
		go func() {
			if err := sink.AddPoints(context.Background(), userID, award); err != nil {
				logger.Printf("points award failed for user %d: %v", userID, err)
			}
		}()
	}
}

// Reset returns an ended session to ready. The loaded question set is
// kept and reshuffled on the next Start.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastTouched = time.Now()

	if s.state != StateEnded || s.closed {
		return
	}

	s.gen++
	s.cancelAdvanceLocked()
	s.state = StateReady
	s.mode = ""
	s.questions = nil
	s.current = 0
	s.score = 0
	s.correctCount = 0
	s.timeRemaining = 0
	s.selected = ""
	s.hasSelected = false
	s.revealed = false
}

// Close tears the session down and cancels any pending auto-advance or
// clock callback. No points are awarded on close.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.closed = true
	s.gen++
	s.cancelAdvanceLocked()
	s.stopClockLocked()
	if s.state == StateActive {
		s.state = StateEnded
	}
}

func (s *Session) cancelAdvanceLocked() {
	if s.advanceTimer != nil {
		s.advanceTimer.Stop()
		s.advanceTimer = nil
	}
}

func (s *Session) stopClockLocked() {
	if s.tickStop != nil {
		close(s.tickStop)
		s.tickStop = nil
	}
}

func (s *Session) idleFor() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return time.Since(s.lastTouched)
}
