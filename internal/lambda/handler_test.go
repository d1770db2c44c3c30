package lambda

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	gh "github.com/google/go-github/v68/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stahnma/gh-reposearch/internal/commands"
	"github.com/stahnma/gh-reposearch/internal/config"
	"github.com/stahnma/gh-reposearch/internal/netstate"
	"github.com/stahnma/gh-reposearch/internal/search"
)

type mockClient struct {
	opts  *gh.SearchOptions
	query string
}

func (m *mockClient) SearchRepositories(_ context.Context, query string, opts *gh.SearchOptions) (*gh.RepositoriesSearchResult, *gh.Response, error) {
	m.query, m.opts = query, opts
	return &gh.RepositoriesSearchResult{
		Total: gh.Ptr(1),
		Repositories: []*gh.Repository{{
			ID:       gh.Ptr(int64(1)),
			FullName: gh.Ptr("golang/go"),
			HTMLURL:  gh.Ptr("https://github.com/golang/go"),
		}},
	}, &gh.Response{Response: &http.Response{StatusCode: 200}}, nil
}

type recordingUploader struct {
	input *s3.PutObjectInput
	body  []byte
	err   error
}

func (u *recordingUploader) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	u.input = in
	u.body, _ = io.ReadAll(in.Body)
	return &s3.PutObjectOutput{}, u.err
}

func newTestHandler(cfg config.Config, client *mockClient, up *recordingUploader) *Handler {
	app := commands.NewApp(cfg, nil, "", "")
	app.GHClient = client
	app.Connectivity = netstate.Static(true)
	h := NewHandler(app)
	h.now = func() time.Time { return time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC) }
	h.newUploader = func(context.Context, string) (Uploader, error) { return up, nil }
	return h
}

func TestHandle_ReturnsJSON(t *testing.T) {
	client := &mockClient{}
	up := &recordingUploader{}
	h := newTestHandler(config.Config{}, client, up)

	out, err := h.Handle(context.Background(), Event{Term: "go", Sort: "relevance"})
	require.NoError(t, err)

	var page commands.SearchPage
	require.NoError(t, json.Unmarshal([]byte(out), &page))
	assert.Equal(t, "go", page.Term)
	assert.Equal(t, search.SortRelevance, page.Sort)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, "golang/go", page.Items[0].FullName)

	assert.Equal(t, "go", client.query)
	assert.Empty(t, client.opts.Sort)
	assert.Nil(t, up.input, "no upload without bucket configuration")
}

func TestHandle_UploadsToS3(t *testing.T) {
	up := &recordingUploader{}
	cfg := config.Config{S3Bucket: "results", S3ObjectKey: "search-%s.json"}
	h := newTestHandler(cfg, &mockClient{}, up)

	out, err := h.Handle(context.Background(), Event{Term: "go"})
	require.NoError(t, err)

	require.NotNil(t, up.input)
	assert.Equal(t, "results", aws.ToString(up.input.Bucket))
	assert.Equal(t, "search-2024-Mar-05.json", aws.ToString(up.input.Key))
	assert.Equal(t, out, string(up.body))
}

func TestHandle_UploadFailure(t *testing.T) {
	up := &recordingUploader{err: errors.New("access denied")}
	cfg := config.Config{S3Bucket: "results", S3ObjectKey: "latest.json"}
	h := newTestHandler(cfg, &mockClient{}, up)

	_, err := h.Handle(context.Background(), Event{Term: "go"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "access denied")
	assert.Equal(t, "latest.json", aws.ToString(up.input.Key))
}

func TestHandle_InvalidEvent(t *testing.T) {
	client := &mockClient{}
	h := newTestHandler(config.Config{}, client, &recordingUploader{})

	_, err := h.Handle(context.Background(), Event{Term: "go", Sort: "forks"})
	require.Error(t, err)

	_, err = h.Handle(context.Background(), Event{Term: "  "})
	require.Error(t, err)
	assert.Contains(t, err.Error(), search.MsgEmptyTerm)
	assert.Nil(t, client.opts, "no request for invalid events")
}

func TestEvent_Query(t *testing.T) {
	q, err := Event{Term: " react ", Page: 0}.Query()
	require.NoError(t, err)
	assert.Equal(t, search.Query{Term: "react", Sort: search.SortStars, Page: 1}, q)
}
