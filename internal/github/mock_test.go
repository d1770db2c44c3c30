package github

import (
	"context"
	"net/http"
	"time"

	gh "github.com/google/go-github/v68/github"
)

// mockClient implements Client for testing.
type mockClient struct {
	searchRepositoriesFn func(ctx context.Context, query string, opts *gh.SearchOptions) (*gh.RepositoriesSearchResult, *gh.Response, error)
}

func (m *mockClient) SearchRepositories(ctx context.Context, query string, opts *gh.SearchOptions) (*gh.RepositoriesSearchResult, *gh.Response, error) {
	return m.searchRepositoriesFn(ctx, query, opts)
}

// okResponse returns a *gh.Response for a successful call.
func okResponse() *gh.Response {
	return &gh.Response{
		Response: &http.Response{StatusCode: 200},
	}
}

// makeRepository builds an API repository for owner/name.
func makeRepository(id int64, owner, name string, stars int) *gh.Repository {
	return &gh.Repository{
		ID:              gh.Ptr(id),
		Name:            gh.Ptr(name),
		FullName:        gh.Ptr(owner + "/" + name),
		HTMLURL:         gh.Ptr("https://github.com/" + owner + "/" + name),
		StargazersCount: gh.Ptr(stars),
		ForksCount:      gh.Ptr(stars / 10),
		Owner:           &gh.User{Login: gh.Ptr(owner)},
		UpdatedAt:       &gh.Timestamp{Time: time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)},
	}
}
