package github

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	gh "github.com/google/go-github/v68/github"
	"golang.org/x/oauth2"
)

// MediaType is sent as the Accept header on every API request.
const MediaType = "application/vnd.github+json"

// Client defines the GitHub API methods used by this application.
type Client interface {
	SearchRepositories(ctx context.Context, query string, opts *gh.SearchOptions) (*gh.RepositoriesSearchResult, *gh.Response, error)
}

// ClientOptions configures NewClient.
type ClientOptions struct {
	// Token is an optional static credential sent as a bearer token.
	Token string
	// BaseURL overrides the API root, e.g. for GitHub Enterprise.
	BaseURL string
	Timeout time.Duration
}

// realClient wraps the go-github client to implement Client.
type realClient struct {
	inner *gh.Client
}

// NewClient creates a GitHub API client, authenticated when a token is set.
func NewClient(opts ClientOptions) (Client, error) {
	var transport http.RoundTripper = http.DefaultTransport
	if opts.Token != "" {
		transport = &oauth2.Transport{
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: opts.Token}),
			Base:   transport,
		}
	}
	httpClient := &http.Client{
		Transport: &acceptTransport{base: transport},
		Timeout:   opts.Timeout,
	}

	inner := gh.NewClient(httpClient)
	if opts.BaseURL != "" {
		u, err := url.Parse(opts.BaseURL)
		if err != nil {
			return nil, fmt.Errorf("parsing base URL %q: %w", opts.BaseURL, err)
		}
		if !strings.HasSuffix(u.Path, "/") {
			u.Path += "/"
		}
		inner.BaseURL = u
	}
	return &realClient{inner: inner}, nil
}

func (c *realClient) SearchRepositories(ctx context.Context, query string, opts *gh.SearchOptions) (*gh.RepositoriesSearchResult, *gh.Response, error) {
	return c.inner.Search.Repositories(ctx, query, opts)
}

// acceptTransport replaces go-github's default Accept header.
type acceptTransport struct {
	base http.RoundTripper
}

func (t *acceptTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	r := req.Clone(req.Context())
	r.Header.Set("Accept", MediaType)
	return t.base.RoundTrip(r)
}
