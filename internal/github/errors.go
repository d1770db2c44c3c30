package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"regexp"
	"strings"

	gh "github.com/google/go-github/v68/github"
	"github.com/stahnma/gh-reposearch/internal/search"
)

const (
	MsgRateLimitWithToken = "GitHub API rate limit reached, even with a token. Try again later."
	MsgRateLimitNoToken   = "GitHub API rate limit reached. Add a GitHub Personal Access Token."
	MsgServerError        = "GitHub server error (5xx). Try again later."
	MsgOffline            = "Network appears to be offline."
	MsgConnectivity       = "Network error: failed to reach the GitHub API. Check connectivity or proxy settings."
)

// maxBodyMessage bounds how much of a raw error body is shown.
const maxBodyMessage = 300

var rateLimitRe = regexp.MustCompile(`(?i)rate limit`)

// Connectivity reports whether the host appears to be online.
type Connectivity interface {
	Online() bool
}

// Classifier turns API and transport failures into user facing errors.
type Classifier struct {
	TokenConfigured bool
	// Connectivity is consulted after transport failures. Nil means online.
	Connectivity Connectivity
}

// Classify converts err into a *search.Error. It never returns nil for a
// non-nil err.
func (c *Classifier) Classify(err error) *search.Error {
	if err == nil {
		return nil
	}
	var se *search.Error
	if errors.As(err, &se) {
		return se
	}

	var rle *gh.RateLimitError
	if errors.As(err, &rle) {
		return c.rateLimited(statusOf(rle.Response), err)
	}
	var arle *gh.AbuseRateLimitError
	if errors.As(err, &arle) {
		return c.rateLimited(statusOf(arle.Response), err)
	}
	var er *gh.ErrorResponse
	if errors.As(err, &er) && er.Response != nil {
		msg := er.Message
		if msg == "" {
			msg = readBodyMessage(er.Response.Body)
		}
		return c.classifyStatus(er.Response.StatusCode, msg, err)
	}

	return c.classifyTransport(err)
}

func (c *Classifier) classifyStatus(status int, msg string, cause error) *search.Error {
	switch {
	case (status == http.StatusForbidden || status == http.StatusTooManyRequests) && rateLimitRe.MatchString(msg):
		return c.rateLimited(status, cause)
	case status >= 500:
		return &search.Error{Kind: search.KindServer, Status: status, Message: MsgServerError, Err: cause}
	}
	if msg == "" {
		msg = fmt.Sprintf("Request failed with status %d", status)
	}
	return &search.Error{Kind: search.KindClient, Status: status, Message: msg, Err: cause}
}

func (c *Classifier) rateLimited(status int, cause error) *search.Error {
	msg := MsgRateLimitNoToken
	if c.TokenConfigured {
		msg = MsgRateLimitWithToken
	}
	return &search.Error{Kind: search.KindRateLimit, Status: status, Message: msg, Err: cause}
}

func (c *Classifier) classifyTransport(err error) *search.Error {
	if c.Connectivity != nil && !c.Connectivity.Online() {
		return &search.Error{Kind: search.KindNetworkOffline, Message: MsgOffline, Err: err}
	}
	var ne net.Error
	if errors.As(err, &ne) || errors.Is(err, context.DeadlineExceeded) {
		return &search.Error{Kind: search.KindNetworkConnectivity, Message: MsgConnectivity, Err: err}
	}
	msg := err.Error()
	if msg == "" {
		msg = search.MsgUnknownError
	}
	return &search.Error{Kind: search.KindUnknown, Message: msg, Err: err}
}

// readBodyMessage extracts {"message": ...} from body, falling back to the
// raw text and then to the empty string.
func readBodyMessage(body io.Reader) string {
	if body == nil {
		return ""
	}
	data, err := io.ReadAll(io.LimitReader(body, 64<<10))
	if err != nil || len(data) == 0 {
		return ""
	}
	var payload struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(data, &payload) == nil && payload.Message != "" {
		return payload.Message
	}
	text := strings.TrimSpace(string(data))
	if len(text) > maxBodyMessage {
		text = strings.ToValidUTF8(text[:maxBodyMessage], "")
	}
	return text
}

func statusOf(resp *http.Response) int {
	if resp == nil {
		return 0
	}
	return resp.StatusCode
}
