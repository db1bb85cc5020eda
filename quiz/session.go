package quiz

import (
	"errors"
	"fmt"
	"sync"
)

// ErrNoSuchOption is returned when an answer index is out of range.
var ErrNoSuchOption = errors.New("quiz: no such option")

// Feedback messages.
const (
	MessageCorrect   = "Correct!"
	MessageIncorrect = "Incorrect. Try again!"
)

// Feedback is the verdict on one answer.
type Feedback struct {
	Option  int    `json:"option"`
	Correct bool   `json:"correct"`
	Message string `json:"message"`
}

// State is the render-ready snapshot of a quiz session.
type State struct {
	Current     int       `json:"current"`
	Total       int       `json:"total"`
	CanPrevious bool      `json:"can_previous"`
	CanNext     bool      `json:"can_next"`
	Question    Question  `json:"question"`
	Feedback    *Feedback `json:"feedback,omitempty"`
}

// Session walks a bank one question at a time. Question numbers are 1-based.
type Session struct {
	bank *Bank

	mu       sync.Mutex
	current  int
	feedback map[int]Feedback
}

// NewSession starts at the first question of b.
func NewSession(b *Bank) *Session {
	return &Session{
		bank:     b,
		current:  1,
		feedback: make(map[int]Feedback),
	}
}

// Next moves forward and reports whether it moved. It stays put on the last
// question.
func (s *Session) Next() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current >= s.bank.Len() {
		return false
	}
	s.current++
	return true
}

// Previous moves back and reports whether it moved. It stays put on the
// first question.
func (s *Session) Previous() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current <= 1 {
		return false
	}
	s.current--
	return true
}

// Check answers the current question with the option at index (0-based).
// A later answer replaces the earlier feedback.
func (s *Session) Check(option int) (Feedback, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	q := s.bank.Questions[s.current-1]
	if option < 0 || option >= len(q.Options) {
		return Feedback{}, fmt.Errorf("%w: %d of question %d",
			ErrNoSuchOption, option, s.current)
	}

	fb := Feedback{Option: option, Correct: q.Options[option].Correct}
	fb.Message = MessageIncorrect
	if fb.Correct {
		fb.Message = MessageCorrect
	}

	s.feedback[s.current] = fb
	return fb, nil
}

// State returns a snapshot of the session.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := State{
		Current:     s.current,
		Total:       s.bank.Len(),
		CanPrevious: s.current > 1,
		CanNext:     s.current < s.bank.Len(),
		Question:    s.bank.Questions[s.current-1],
	}

	if fb, ok := s.feedback[s.current]; ok {
		st.Feedback = &fb
	}

	return st
}
