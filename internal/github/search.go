package github

import (
	"context"
	"errors"
	"strings"

	gh "github.com/google/go-github/v68/github"
	"github.com/stahnma/gh-reposearch/internal/search"
	"go.uber.org/zap"
)

// Searcher runs repository searches against the GitHub API. It implements
// search.Fetcher.
type Searcher struct {
	client     Client
	classifier *Classifier
	logger     *zap.Logger
}

// NewSearcher creates a Searcher. A nil classifier classifies as if no token
// were configured and the network were always up.
func NewSearcher(client Client, classifier *Classifier, logger *zap.Logger) *Searcher {
	if classifier == nil {
		classifier = &Classifier{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Searcher{client: client, classifier: classifier, logger: logger}
}

// SearchOptionsFor returns the API options for q. Sort parameters are only
// sent for star ordering; relevance is the API default.
func SearchOptionsFor(q search.Query) *gh.SearchOptions {
	page := q.Page
	if page < 1 {
		page = 1
	}
	opts := &gh.SearchOptions{ListOptions: gh.ListOptions{Page: page, PerPage: search.PerPage}}
	if q.Sort == search.SortStars {
		opts.Sort = "stars"
		opts.Order = "desc"
	}
	return opts
}

// Search fetches one page of repositories. A cancelled ctx yields the
// context error unclassified; every other failure is a *search.Error.
func (s *Searcher) Search(ctx context.Context, q search.Query) (search.Result, error) {
	term := strings.TrimSpace(q.Term)
	if term == "" {
		return search.Result{}, &search.Error{Kind: search.KindValidation, Message: search.MsgEmptyTerm}
	}

	res, _, err := s.client.SearchRepositories(ctx, term, SearchOptionsFor(q))
	if err != nil {
		if ctxErr := ctx.Err(); errors.Is(ctxErr, context.Canceled) {
			return search.Result{}, ctxErr
		}
		se := s.classifier.Classify(err)
		s.logger.Debug("classified search failure",
			zap.String("term", term),
			zap.Stringer("kind", se.Kind),
			zap.Int("status", se.Status),
			zap.Error(err))
		return search.Result{}, se
	}

	if len(res.Repositories) == 0 {
		return search.Result{}, &search.Error{Kind: search.KindEmptyResult, Message: search.MsgNoResults}
	}
	items := make([]search.Repository, 0, len(res.Repositories))
	for _, r := range res.Repositories {
		items = append(items, ToRepository(r))
	}
	return search.Result{Items: items, TotalCount: res.GetTotal()}, nil
}
