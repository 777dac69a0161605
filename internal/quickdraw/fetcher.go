package quickdraw

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	qdhttp "github.com/ligustah/qdfetch/internal/http"
)

// DefaultPreviewBytes is the last byte offset requested in preview mode.
const DefaultPreviewBytes = 100000

// ErrEmptyLabel is returned when fetching an empty label.
var ErrEmptyLabel = errors.New("quickdraw: empty label")

// Getter performs a single GET, optionally limited to a byte range.
type Getter interface {
	Get(ctx context.Context, url string, rng *qdhttp.ByteRange) (*qdhttp.Response, error)
}

// Fetcher downloads example batches for labels.
type Fetcher struct {
	getter       Getter
	root         string
	previewBytes int64
	logger       *slog.Logger
}

// NewFetcher creates a Fetcher reading <root>/<label>.ndjson. A
// non-positive previewBytes selects DefaultPreviewBytes.
func NewFetcher(getter Getter, root string, previewBytes int64, logger *slog.Logger) *Fetcher {
	if previewBytes <= 0 {
		previewBytes = DefaultPreviewBytes
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Fetcher{
		getter:       getter,
		root:         strings.TrimRight(root, "/"),
		previewBytes: previewBytes,
		logger:       logger,
	}
}

// URL returns the location of the label's data file.
func (f *Fetcher) URL(label Label) string {
	return fmt.Sprintf("%s/%s.ndjson", f.root, url.PathEscape(string(label)))
}

// Fetch downloads the label's data file and returns its complete lines.
// In preview mode only bytes 0 through PreviewBytes are requested.
func (f *Fetcher) Fetch(ctx context.Context, label Label, preview bool) (string, error) {
	data, _, err := f.fetch(ctx, label, preview)
	return data, err
}

// FetchResult is Fetch with the outcome captured in a Result.
func (f *Fetcher) FetchResult(ctx context.Context, label Label, preview bool) Result {
	data, n, err := f.fetch(ctx, label, preview)
	if err != nil {
		return Result{Label: label, Err: err}
	}
	return Result{Label: label, Data: data, Examples: n}
}

func (f *Fetcher) fetch(ctx context.Context, label Label, preview bool) (string, int, error) {
	if label == "" {
		return "", 0, ErrEmptyLabel
	}

	var rng *qdhttp.ByteRange
	if preview {
		rng = &qdhttp.ByteRange{Start: 0, End: f.previewBytes}
	}

	resp, err := f.getter.Get(ctx, f.URL(label), rng)
	if err != nil {
		return "", 0, fmt.Errorf("fetch %s: %w", label, err)
	}

	if resp.ContentRange != "" {
		if _, _, total, err := qdhttp.ParseContentRange(resp.ContentRange); err == nil {
			f.logger.Debug("received range", "label", label, "bytes", len(resp.Body), "object_size", total)
		}
	}

	data, n := TrimLastLine(string(resp.Body))
	f.logger.Info(fmt.Sprintf("Found %d examples of %s.", n, label))
	return data, n, nil
}

// TrimLastLine splits body on newlines, drops the final segment and joins
// the rest. It returns the kept text and the number of kept lines.
func TrimLastLine(body string) (string, int) {
	lines := strings.Split(body, "\n")
	lines = lines[:len(lines)-1]
	return strings.Join(lines, "\n"), len(lines)
}
