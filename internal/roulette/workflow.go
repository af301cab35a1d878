package roulette

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/johanforsgren/reporoulette/internal/domain"
	"github.com/johanforsgren/reporoulette/internal/logger"
	"github.com/johanforsgren/reporoulette/internal/provider/common"
)

// Picker returns an index in [0, n).
type Picker interface {
	IntN(n int) int
}

type uniformPicker struct{}

func (uniformPicker) IntN(n int) int {
	return rand.IntN(n)
}

type Option func(*Workflow)

// WithTimeout bounds each fetch. Zero disables the bound.
func WithTimeout(timeout time.Duration) Option {
	return func(w *Workflow) {
		w.timeout = timeout
	}
}

func WithPicker(picker Picker) Option {
	return func(w *Workflow) {
		w.picker = picker
	}
}

type Workflow struct {
	provider domain.RepositoryProvider
	picker   Picker
	timeout  time.Duration
}

func NewWorkflow(provider domain.RepositoryProvider, opts ...Option) *Workflow {
	w := &Workflow{
		provider: provider,
		picker:   uniformPicker{},
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// FetchRandomRepository lists username's repositories with a single request
// and picks one uniformly at random. ErrEmptyUsername is returned, without
// any request, when username is blank; every other result is an Outcome.
func (w *Workflow) FetchRandomRepository(ctx context.Context, username string) (Outcome, error) {
	username, err := Validate(username)
	if err != nil {
		return Outcome{}, err
	}

	if w.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, w.timeout)
		defer cancel()
	}

	repos, err := w.provider.ListUserRepositories(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrUpstreamStatus) {
			logger.Log("Roulette: %s rejected by upstream: %v", username, err)
			return Outcome{Kind: OutcomeUserNotFoundOrEmpty, Err: err}, nil
		}
		logger.LogError("FETCH_REPOS", username, err)
		return Outcome{Kind: OutcomeNetworkFailure, Err: err}, nil
	}

	if len(repos) == 0 {
		logger.Log("Roulette: %s has no repositories", username)
		return Outcome{Kind: OutcomeNoRepositories}, nil
	}

	idx := w.picker.IntN(len(repos))
	if idx < 0 || idx >= len(repos) {
		err := fmt.Errorf("picker returned index %d for %d repositories", idx, len(repos))
		logger.LogError("FETCH_REPOS", username, err)
		return Outcome{Kind: OutcomeNetworkFailure, Err: err}, nil
	}

	repo := repos[idx]
	logger.Log("Roulette: picked %s (%d of %d)", repo.FullName, idx+1, len(repos))
	return Outcome{Kind: OutcomeRandomRepo, Repository: &repo}, nil
}

// Execute runs the fetch for an already triggered request. It always
// returns an Outcome: a panic in the provider is reported as a network
// failure so the caller can still clear its loading state.
func (w *Workflow) Execute(ctx context.Context, req Request) (outcome Outcome) {
	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("fetch panicked: %v", r)
			logger.LogError("FETCH_REPOS", req.Username, err)
			outcome = Outcome{Kind: OutcomeNetworkFailure, Err: err}
		}
	}()

	result, err := w.FetchRandomRepository(ctx, req.Username)
	if err != nil {
		return Outcome{Kind: OutcomeNetworkFailure, Err: err}
	}
	return result
}

// Run performs one complete invocation against session: trigger, fetch and
// resolve. The resolve step is deferred so the session always leaves the
// loading state.
func (w *Workflow) Run(ctx context.Context, session *Session) (Outcome, error) {
	req, err := session.Trigger()
	if err != nil {
		return Outcome{}, err
	}

	outcome := Outcome{Kind: OutcomeNetworkFailure}
	defer func() {
		session.Resolve(req.ID, outcome)
	}()

	outcome = w.Execute(ctx, req)
	return outcome, nil
}
