package roulette

import (
	"context"
	"fmt"

	"github.com/johanforsgren/reporoulette/internal/domain"
	"github.com/johanforsgren/reporoulette/internal/provider/common"
)

type mockProvider struct {
	repos        []domain.Repository
	err          error
	panicWith    any
	waitForCtx   bool
	calls        int
	lastUsername string
}

func (m *mockProvider) ListUserRepositories(ctx context.Context, username string) ([]domain.Repository, error) {
	m.calls++
	m.lastUsername = username

	if m.panicWith != nil {
		panic(m.panicWith)
	}
	if m.waitForCtx {
		<-ctx.Done()
		return nil, fmt.Errorf("%w: %w", common.ErrTransport, ctx.Err())
	}
	if m.err != nil {
		return nil, m.err
	}
	return m.repos, nil
}

type fixedPicker struct {
	index int
}

func (p fixedPicker) IntN(n int) int {
	return p.index
}

func testRepos(names ...string) []domain.Repository {
	repos := make([]domain.Repository, 0, len(names))
	for i, name := range names {
		repos = append(repos, domain.Repository{
			ID:         int64(i + 1),
			Name:       name,
			FullName:   "octocat/" + name,
			OwnerLogin: "octocat",
			StarCount:  i * 10,
		})
	}
	return repos
}
