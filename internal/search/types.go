package search

import (
	"fmt"
	"strings"
	"time"
)

// PerPage is the fixed page size for every search request.
const PerPage = 10

// MaxResults is the number of results the search API will page through.
const MaxResults = 1000

// SortMode selects the result ordering.
type SortMode string

const (
	SortStars     SortMode = "stars"
	SortRelevance SortMode = "relevance"
)

// ParseSortMode parses a user supplied sort mode.
func ParseSortMode(s string) (SortMode, error) {
	switch SortMode(strings.ToLower(strings.TrimSpace(s))) {
	case SortStars, "":
		return SortStars, nil
	case SortRelevance, "best-match":
		return SortRelevance, nil
	}
	return "", fmt.Errorf("unknown sort mode %q (want stars or relevance)", s)
}

// Toggle returns the other sort mode.
func (m SortMode) Toggle() SortMode {
	if m == SortStars {
		return SortRelevance
	}
	return SortStars
}

// Query is one immutable search request.
type Query struct {
	Term string
	Sort SortMode
	Page int
}

// Repository is a single search hit.
type Repository struct {
	ID          int64     `json:"id"`
	FullName    string    `json:"full_name"`
	Description string    `json:"description,omitempty"`
	URL         string    `json:"html_url"`
	Stars       int       `json:"stargazers_count"`
	Forks       int       `json:"forks_count"`
	Language    string    `json:"language,omitempty"`
	Owner       string    `json:"owner"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Result is one page of search hits plus the total match count.
type Result struct {
	Items      []Repository `json:"items"`
	TotalCount int          `json:"total_count"`
}

// TotalPages returns how many pages of PerPage items can be requested for
// the given match count.
func TotalPages(totalCount int) int {
	if totalCount <= 0 {
		return 0
	}
	if totalCount > MaxResults {
		totalCount = MaxResults
	}
	return (totalCount + PerPage - 1) / PerPage
}

// Status is the lifecycle state of the current request.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusSucceeded
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusSucceeded:
		return "succeeded"
	case StatusFailed:
		return "failed"
	}
	return fmt.Sprintf("status(%d)", int(s))
}

// Snapshot is what presenters render.
type Snapshot struct {
	Status Status
	Query  Query
	Result Result
	// Err is set for StatusFailed, and for StatusIdle after an empty term.
	Err *Error
}

// TotalCount returns the match count of the current result.
func (s Snapshot) TotalCount() int {
	return s.Result.TotalCount
}

// TotalPages returns the number of requestable pages of the current result.
func (s Snapshot) TotalPages() int {
	return TotalPages(s.Result.TotalCount)
}

// CurrentPage returns the page of the current query.
func (s Snapshot) CurrentPage() int {
	return s.Query.Page
}

// HasPrev reports whether a previous page can be requested.
func (s Snapshot) HasPrev() bool {
	return s.Status == StatusSucceeded && s.Query.Page > 1
}

// HasNext reports whether a next page can be requested.
func (s Snapshot) HasNext() bool {
	return s.Status == StatusSucceeded && s.Query.Page < s.TotalPages()
}

// Message returns the user facing error text, if any.
func (s Snapshot) Message() string {
	if s.Err == nil {
		return ""
	}
	return s.Err.Message
}
