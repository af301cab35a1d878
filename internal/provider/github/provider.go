package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/google/go-github/v57/github"
	"github.com/johanforsgren/reporoulette/internal/domain"
	"github.com/johanforsgren/reporoulette/internal/logger"
	"github.com/johanforsgren/reporoulette/internal/provider/common"
)

type Provider struct {
	client *Client
}

func NewProvider(opts ClientOptions) (*Provider, error) {
	client, err := NewClient(opts)
	if err != nil {
		return nil, err
	}
	return &Provider{client: client}, nil
}

// ListUserRepositories returns a *common.StatusError for non-2xx responses
// and errors wrapping common.ErrTransport or common.ErrMalformedPayload
// otherwise.
func (p *Provider) ListUserRepositories(ctx context.Context, username string) ([]domain.Repository, error) {
	logger.Log("GitHub: Listing repositories for user %s", username)
	ghRepos, resp, err := p.client.ListRepositories(ctx, username)

	if resp != nil && !isSuccessStatus(resp.StatusCode) {
		statusErr := &common.StatusError{StatusCode: resp.StatusCode, Err: err}
		logger.LogError("GITHUB_LIST_REPOS", username, statusErr)
		return nil, statusErr
	}

	if err != nil {
		if isDecodeError(err) {
			return nil, fmt.Errorf("%w: %w", common.ErrMalformedPayload, err)
		}
		return nil, fmt.Errorf("%w: %w", common.ErrTransport, err)
	}

	// A JSON null or an empty body decodes without error but is not a list.
	if ghRepos == nil {
		return nil, fmt.Errorf("%w: response body is not a repository list", common.ErrMalformedPayload)
	}

	repos := make([]domain.Repository, 0, len(ghRepos))
	for i, ghRepo := range ghRepos {
		repo, err := convertRepository(ghRepo)
		if err != nil {
			return nil, fmt.Errorf("%w: element %d: %w", common.ErrMalformedPayload, i, err)
		}
		repos = append(repos, repo)
	}

	logger.Log("GitHub: Found %d repositories for %s", len(repos), username)
	return repos, nil
}

func convertRepository(ghRepo *github.Repository) (domain.Repository, error) {
	if ghRepo == nil {
		return domain.Repository{}, errors.New("null repository")
	}
	if ghRepo.Name == nil || ghRepo.GetName() == "" {
		return domain.Repository{}, errors.New("missing name")
	}
	if ghRepo.FullName == nil || ghRepo.GetFullName() == "" {
		return domain.Repository{}, errors.New("missing full_name")
	}
	if ghRepo.GetOwner().GetLogin() == "" {
		return domain.Repository{}, errors.New("missing owner.login")
	}

	repo := domain.Repository{
		ID:           ghRepo.GetID(),
		Name:         ghRepo.GetName(),
		FullName:     ghRepo.GetFullName(),
		OwnerLogin:   ghRepo.GetOwner().GetLogin(),
		Description:  ghRepo.GetDescription(),
		Language:     ghRepo.GetLanguage(),
		URL:          ghRepo.GetHTMLURL(),
		StarCount:    ghRepo.GetStargazersCount(),
		ForkCount:    ghRepo.GetForksCount(),
		WatcherCount: ghRepo.GetWatchersCount(),
	}

	if repo.StarCount < 0 || repo.ForkCount < 0 || repo.WatcherCount < 0 {
		return domain.Repository{}, fmt.Errorf("negative count on %s", repo.FullName)
	}

	return repo, nil
}

func isSuccessStatus(code int) bool {
	return code >= 200 && code <= 299
}

func isDecodeError(err error) bool {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	return errors.As(err, &syntaxErr) || errors.As(err, &typeErr) || errors.Is(err, io.ErrUnexpectedEOF)
}
