package github

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/go-github/v57/github"
	"github.com/johanforsgren/reporoulette/internal/provider/common"
)

type ClientOptions struct {
	// BaseURL overrides https://api.github.com/, e.g. for GitHub Enterprise.
	BaseURL   string
	UserAgent string
	// HTTPDebug records full request and response exchanges in the session log.
	HTTPDebug bool
	Transport http.RoundTripper
}

type Client struct {
	client *github.Client
}

func NewClient(opts ClientOptions) (*Client, error) {
	transport := opts.Transport
	if opts.HTTPDebug {
		transport = common.NewLoggingTransport(transport)
	}

	client := github.NewClient(&http.Client{Transport: transport})

	if opts.BaseURL != "" {
		baseURL := opts.BaseURL
		if !strings.HasSuffix(baseURL, "/") {
			baseURL += "/"
		}
		parsed, err := url.Parse(baseURL)
		if err != nil {
			return nil, fmt.Errorf("invalid base URL %q: %w", opts.BaseURL, err)
		}
		client.BaseURL = parsed
	}

	if opts.UserAgent != "" {
		client.UserAgent = opts.UserAgent
	}

	return &Client{client: client}, nil
}

// ListRepositories fetches the first page of a user's public repositories
// with GitHub's default page size.
func (c *Client) ListRepositories(ctx context.Context, username string) ([]*github.Repository, *github.Response, error) {
	repos, resp, err := c.client.Repositories.List(ctx, url.PathEscape(username), nil)
	if err != nil {
		return nil, resp, fmt.Errorf("failed to list repositories: %w", err)
	}
	return repos, resp, nil
}
