package format

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/stahnma/gh-reposearch/internal/search"
)

var printer = message.NewPrinter(language.English)

// Number formats n with thousands separators.
func Number(n int) string {
	return printer.Sprintf("%d", n)
}

// Header is the summary line shown above a page of results.
func Header(s search.Snapshot) string {
	return fmt.Sprintf("Found %s repositories (page %d of %d)",
		Number(s.TotalCount()), s.CurrentPage(), s.TotalPages())
}

// Updated renders t relative to now, e.g. "3 days ago".
func Updated(t, now time.Time) string {
	if t.IsZero() {
		return "unknown"
	}
	return humanize.RelTime(t, now, "ago", "from now")
}

// WriteResults writes a plain text rendering of snapshot s. now anchors the
// relative update times.
func WriteResults(w io.Writer, s search.Snapshot, now time.Time) error {
	switch s.Status {
	case search.StatusFailed, search.StatusIdle:
		if msg := s.Message(); msg != "" {
			_, err := fmt.Fprintln(w, msg)
			return err
		}
		return nil
	case search.StatusLoading:
		_, err := fmt.Fprintln(w, "Searching…")
		return err
	}

	var b strings.Builder
	fmt.Fprintln(&b, Header(s))
	for _, r := range s.Result.Items {
		b.WriteString("\n")
		writeCard(&b, r, now)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func writeCard(b *strings.Builder, r search.Repository, now time.Time) {
	fmt.Fprintf(b, "%s  ★ %s\n", r.FullName, Number(r.Stars))
	if r.Description != "" {
		fmt.Fprintf(b, "  %s\n", r.Description)
	}
	var meta []string
	if r.Language != "" {
		meta = append(meta, r.Language)
	}
	meta = append(meta, fmt.Sprintf("%s forks", Number(r.Forks)))
	meta = append(meta, "updated "+Updated(r.UpdatedAt, now))
	fmt.Fprintf(b, "  %s\n", strings.Join(meta, " · "))
	fmt.Fprintf(b, "  %s\n", r.URL)
}
