package game

// QuestionView is the client-facing shape of the current question. The
// correct answer and explanation appear only during the reveal phase.
type QuestionView struct {
	ID              uint     `json:"id"`
	Text            string   `json:"text"`
	Type            string   `json:"type"`
	Options         []string `json:"options"`
	DifficultyLevel int      `json:"difficulty_level"`
	Points          int      `json:"points"`
	CorrectAnswer   string   `json:"correct_answer,omitempty"`
	Explanation     string   `json:"explanation,omitempty"`
	WasCorrect      *bool    `json:"was_correct,omitempty"`
}

type Snapshot struct {
	ID             string        `json:"id"`
	State          State         `json:"state"`
	Mode           Mode          `json:"mode,omitempty"`
	SubjectID      uint          `json:"subject_id"`
	TotalQuestions int           `json:"total_questions"`
	CurrentIndex   int           `json:"current_index"`
	Score          int           `json:"score"`
	CorrectCount   int           `json:"correct_count"`
	Percentage     float64       `json:"percentage"`
	TimeRemaining  int           `json:"time_remaining"`
	SelectedAnswer string        `json:"selected_answer,omitempty"`
	Revealed       bool          `json:"revealed"`
	Ended          bool          `json:"ended"`
	PointsAwarded  int           `json:"points_awarded"`
	Question       *QuestionView `json:"question,omitempty"`
}

// Snapshot returns a consistent copy of the session state for rendering.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := len(s.questions)
	if s.state == StateReady || s.state == StateIdle {
		total = len(s.loaded)
	}

	snap := Snapshot{
		ID:             s.ID,
		State:          s.state,
		Mode:           s.mode,
		SubjectID:      s.SubjectID,
		TotalQuestions: total,
		CurrentIndex:   s.current,
		Score:          s.score,
		CorrectCount:   s.correctCount,
		TimeRemaining:  s.timeRemaining,
		SelectedAnswer: s.selected,
		Revealed:       s.revealed,
		Ended:          s.state == StateEnded,
	}

	// Guard the division even though an active session is never empty.
	if total > 0 {
		snap.Percentage = float64(s.correctCount) / float64(total) * 100
	}

	if snap.Ended && s.score > 0 {
		snap.PointsAwarded = s.score / pointsAwardDivisor
	}

	if s.state == StateActive && s.current < len(s.questions) {
		q := s.questions[s.current]
		view := &QuestionView{
			ID:              q.ID,
			Text:            q.Text,
			Type:            q.Type,
			Options:         q.Options,
			DifficultyLevel: q.DifficultyLevel,
			Points:          q.Points,
		}
		if s.revealed {
			view.CorrectAnswer = q.CorrectAnswer
			view.Explanation = q.Explanation
			correct := s.selected == q.CorrectAnswer
			view.WasCorrect = &correct
		}
		snap.Question = view
	}

	return snap
}

// QuestionIDs lists the ids of the session's current question order.
func (s *Session) QuestionIDs() []uint {
	s.mu.Lock()
	defer s.mu.Unlock()

	source := s.questions
	if len(source) == 0 {
		source = s.loaded
	}
	ids := make([]uint, len(source))
	for i, q := range source {
		ids[i] = q.ID
	}
	return ids
}
