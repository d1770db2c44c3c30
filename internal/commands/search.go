package commands

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/stahnma/gh-reposearch/internal/format"
	"github.com/stahnma/gh-reposearch/internal/search"
)

// SearchPage is the JSON form of one page of results.
type SearchPage struct {
	Term       string              `json:"term"`
	Sort       search.SortMode     `json:"sort"`
	Page       int                 `json:"page"`
	TotalPages int                 `json:"total_pages"`
	TotalCount int                 `json:"total_count"`
	Items      []search.Repository `json:"items"`
}

// NewSearchPage converts a settled snapshot.
func NewSearchPage(s search.Snapshot) SearchPage {
	items := s.Result.Items
	if items == nil {
		items = []search.Repository{}
	}
	return SearchPage{
		Term:       s.Query.Term,
		Sort:       s.Query.Sort,
		Page:       s.CurrentPage(),
		TotalPages: s.TotalPages(),
		TotalCount: s.TotalCount(),
		Items:      items,
	}
}

func (a *App) newSearchCommand() *cobra.Command {
	var (
		sortFlag string
		page     int
		asJSON   bool
	)
	cmd := &cobra.Command{
		Use:   "search <term...>",
		Short: "Search repositories and print one page of results",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sort, err := search.ParseSortMode(sortFlag)
			if err != nil {
				return err
			}
			q := search.Query{Term: strings.Join(args, " "), Sort: sort, Page: page}
			snap, err := a.Search(cmd.Context(), q)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if asJSON {
				return format.WriteJSON(w, NewSearchPage(snap), a.Config.SlackMode)
			}
			return format.WriteResults(w, snap, time.Now())
		},
	}
	cmd.Flags().StringVarP(&sortFlag, "sort", "s", string(search.SortStars), "Sort order: stars or relevance")
	cmd.Flags().IntVarP(&page, "page", "p", 1, "Result page to show")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON instead of cards")
	return cmd
}

// Search runs one query to completion through a search controller. Any page
// other than the first is requested after page 1 settles, so it is checked
// against the real page count. Failures are returned as *search.Error.
func (a *App) Search(ctx context.Context, q search.Query) (search.Snapshot, error) {
	ctrl, err := a.NewController(q.Sort)
	if err != nil {
		return search.Snapshot{}, err
	}
	defer ctrl.Close()

	if err := ctrl.Submit(q.Term); err != nil {
		return search.Snapshot{}, err
	}
	snap, err := ctrl.Await(ctx)
	if err != nil {
		return snap, err
	}
	if snap.Err != nil {
		return snap, snap.Err
	}

	if q.Page != 1 {
		if err := ctrl.RequestPage(q.Page); err != nil {
			return snap, fmt.Errorf("requesting page %d: %w", q.Page, err)
		}
		if snap, err = ctrl.Await(ctx); err != nil {
			return snap, err
		}
		if snap.Err != nil {
			return snap, snap.Err
		}
	}
	return snap, nil
}

// SearchJSON runs q and writes the page as JSON to w.
func (a *App) SearchJSON(ctx context.Context, w io.Writer, q search.Query) error {
	snap, err := a.Search(ctx, q)
	if err != nil {
		return err
	}
	return format.WriteJSON(w, NewSearchPage(snap), a.Config.SlackMode)
}
