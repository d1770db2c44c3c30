package github

import (
	gh "github.com/google/go-github/v68/github"
	"github.com/stahnma/gh-reposearch/internal/search"
)

// ToRepository converts an API repository into the search domain type.
func ToRepository(r *gh.Repository) search.Repository {
	return search.Repository{
		ID:          r.GetID(),
		FullName:    r.GetFullName(),
		Description: r.GetDescription(),
		URL:         r.GetHTMLURL(),
		Stars:       r.GetStargazersCount(),
		Forks:       r.GetForksCount(),
		Language:    r.GetLanguage(),
		Owner:       r.GetOwner().GetLogin(),
		UpdatedAt:   r.GetUpdatedAt().Time,
	}
}
