package lambda

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"

	"github.com/stahnma/gh-reposearch/internal/commands"
	"github.com/stahnma/gh-reposearch/internal/search"
)

// Event is the invocation payload.
type Event struct {
	Term string `json:"term"`
	Sort string `json:"sort"`
	Page int    `json:"page"`
}

// Query validates e and converts it to a search query.
func (e Event) Query() (search.Query, error) {
	sort, err := search.ParseSortMode(e.Sort)
	if err != nil {
		return search.Query{}, err
	}
	page := e.Page
	if page < 1 {
		page = 1
	}
	return search.Query{Term: strings.TrimSpace(e.Term), Sort: sort, Page: page}, nil
}

// Uploader stores the rendered page.
type Uploader interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Handler runs one search per invocation.
type Handler struct {
	app *commands.App
	now func() time.Time

	// newUploader is replaced in tests.
	newUploader func(ctx context.Context, region string) (Uploader, error)
}

// NewHandler returns a Handler that searches through app.
func NewHandler(app *commands.App) *Handler {
	return &Handler{app: app, now: time.Now, newUploader: newS3Uploader}
}

func newS3Uploader(ctx context.Context, region string) (Uploader, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return s3.NewFromConfig(cfg), nil
}

// Handle runs the search in event and returns the page as JSON. When an S3
// bucket and object key are configured the JSON is uploaded as well; the
// key may contain one %s verb, replaced with the date.
func (h *Handler) Handle(ctx context.Context, event Event) (string, error) {
	q, err := event.Query()
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := h.app.SearchJSON(ctx, &buf, q); err != nil {
		return "", fmt.Errorf("search %q: %w", q.Term, err)
	}
	if buf.Len() == 0 {
		return "", fmt.Errorf("search produced no output")
	}

	cfg := h.app.Config
	if cfg.S3Bucket == "" || cfg.S3ObjectKey == "" {
		return buf.String(), nil
	}

	key := cfg.S3ObjectKey
	if strings.Contains(key, "%s") {
		key = fmt.Sprintf(key, h.now().Format("2006-Jan-02"))
	}

	svc, err := h.newUploader(ctx, cfg.AWSRegion)
	if err != nil {
		return "", err
	}
	_, err = svc.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(cfg.S3Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(buf.Bytes()),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file to S3: %w", err)
	}
	h.app.Logger.Info("uploaded search results",
		zap.String("bucket", cfg.S3Bucket),
		zap.String("key", key),
		zap.String("term", q.Term))

	return buf.String(), nil
}
