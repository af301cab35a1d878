package roulette

import (
	"errors"

	"github.com/google/uuid"
	"github.com/johanforsgren/reporoulette/internal/logger"
)

var ErrFetchInProgress = errors.New("a fetch is already in progress")

// Request identifies one triggered fetch. Results are matched back to the
// session by ID so that late results can be recognised and dropped.
type Request struct {
	ID       string
	Username string
}

// Session is the state owned by one roulette screen: the input, the
// FetchState and the in-flight request. It is not safe for concurrent use;
// the UI loop drives it from a single goroutine.
type Session struct {
	input     *InputController
	state     FetchState
	pendingID string
	newID     func() string

	// OnChange, when set, observes every FetchState transition.
	OnChange func(prev, next FetchState)
}

func NewSession() *Session {
	return &Session{
		input: NewInputController(),
		state: Idle(),
		newID: uuid.NewString,
	}
}

func (s *Session) State() FetchState {
	return s.state
}

func (s *Session) Username() string {
	return s.input.Username()
}

func (s *Session) Error() string {
	return s.input.Error()
}

func (s *Session) IsLoading() bool {
	return s.state.IsLoading()
}

// SetUsername records an edit. It clears the error message and leaves the
// FetchState untouched.
func (s *Session) SetUsername(text string) {
	s.input.SetUsername(text)
}

// Trigger starts a fetch for the current username. An invalid username
// attaches MsgEmptyUsername and returns ErrEmptyUsername without leaving the
// current state. Triggers while loading are rejected with ErrFetchInProgress.
func (s *Session) Trigger() (Request, error) {
	if s.state.IsLoading() {
		return Request{}, ErrFetchInProgress
	}

	username, err := Validate(s.input.Username())
	if err != nil {
		s.input.SetError(MsgEmptyUsername)
		return Request{}, err
	}

	s.input.ClearError()
	s.pendingID = s.newID()
	s.transition(s.state.Begin())

	logger.Log("Roulette: fetch %s started for %s", s.pendingID, username)
	return Request{ID: s.pendingID, Username: username}, nil
}

// Resolve applies the outcome of the request with the given id and reports
// whether it was accepted. Outcomes for any other request, or arriving
// after Dismiss, are ignored.
func (s *Session) Resolve(id string, outcome Outcome) bool {
	if id == "" || id != s.pendingID || !s.state.IsLoading() {
		logger.Log("Roulette: ignoring stale result for fetch %s", id)
		return false
	}

	s.pendingID = ""
	next := s.state.Resolve(outcome)
	if next.Status == StatusFailure {
		s.input.SetError(next.Message)
	}
	s.transition(next)
	return true
}

// Dismiss resets the session as if the screen was unmounted. A request
// still in flight will have its result ignored.
func (s *Session) Dismiss() {
	if s.pendingID != "" {
		logger.Log("Roulette: dismissing in-flight fetch %s", s.pendingID)
	}
	s.pendingID = ""
	s.input.Reset()
	if s.state.Status != StatusIdle {
		s.transition(Idle())
	}
}

func (s *Session) transition(next FetchState) {
	prev := s.state
	s.state = next
	if s.OnChange != nil {
		s.OnChange(prev, next)
	}
}
