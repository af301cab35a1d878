package roulette

import "github.com/johanforsgren/reporoulette/internal/domain"

type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusSuccess
	StatusFailure
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "Idle"
	case StatusLoading:
		return "Loading"
	case StatusSuccess:
		return "Success"
	case StatusFailure:
		return "Failure"
	default:
		return "Unknown"
	}
}

// FetchState is the lifecycle of the roulette screen. Repository is set
// only in StatusSuccess and Message only in StatusFailure.
type FetchState struct {
	Status     Status
	Repository *domain.Repository
	Message    string
}

func Idle() FetchState {
	return FetchState{Status: StatusIdle}
}

// Begin discards any previous result or failure.
func (s FetchState) Begin() FetchState {
	return FetchState{Status: StatusLoading}
}

func (s FetchState) Resolve(outcome Outcome) FetchState {
	if outcome.IsSuccess() {
		repo := *outcome.Repository
		return FetchState{Status: StatusSuccess, Repository: &repo}
	}
	return FetchState{Status: StatusFailure, Message: outcome.Message()}
}

func (s FetchState) IsLoading() bool {
	return s.Status == StatusLoading
}
