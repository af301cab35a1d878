package domain

import "context"

type RepositoryProvider interface {
	// ListUserRepositories returns the first page of username's public
	// repositories. The slice is empty, never nil, when the user has none.
	ListUserRepositories(ctx context.Context, username string) ([]Repository, error)
}
