package roulette

import "github.com/johanforsgren/reporoulette/internal/domain"

const (
	MsgEmptyUsername       = "Please enter a GitHub username"
	MsgUserNotFoundOrEmpty = "User not found or has no repositories"
	MsgNoRepositories      = "This user has no repositories"
	MsgNetworkFailure      = "Failed to fetch repositories. Please try again."
)

type OutcomeKind int

const (
	OutcomeRandomRepo OutcomeKind = iota
	OutcomeNoRepositories
	OutcomeUserNotFoundOrEmpty
	OutcomeNetworkFailure
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeRandomRepo:
		return "RandomRepo"
	case OutcomeNoRepositories:
		return "NoRepositories"
	case OutcomeUserNotFoundOrEmpty:
		return "UserNotFoundOrEmpty"
	case OutcomeNetworkFailure:
		return "NetworkFailure"
	default:
		return "Unknown"
	}
}

// Outcome is the result of one fetch-and-select invocation. Repository is
// set only for OutcomeRandomRepo; Err keeps the diagnostic cause of a
// failure and is never shown to the user.
type Outcome struct {
	Kind       OutcomeKind
	Repository *domain.Repository
	Err        error
}

func (o Outcome) IsSuccess() bool {
	return o.Kind == OutcomeRandomRepo && o.Repository != nil
}

// Message is the user-facing text for failure outcomes. It is empty on
// success.
func (o Outcome) Message() string {
	switch o.Kind {
	case OutcomeRandomRepo:
		if o.Repository != nil {
			return ""
		}
		return MsgNetworkFailure
	case OutcomeNoRepositories:
		return MsgNoRepositories
	case OutcomeUserNotFoundOrEmpty:
		return MsgUserNotFoundOrEmpty
	default:
		return MsgNetworkFailure
	}
}
