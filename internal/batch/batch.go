package batch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/ligustah/qdfetch/internal/output"
	"github.com/ligustah/qdfetch/internal/progress"
	"github.com/ligustah/qdfetch/internal/quickdraw"
	"github.com/ligustah/qdfetch/internal/storage"
)

// Fetcher fetches the example batch of a label.
type Fetcher interface {
	Fetch(ctx context.Context, label quickdraw.Label, preview bool) (string, error)
	FetchResult(ctx context.Context, label quickdraw.Label, preview bool) quickdraw.Result
}

// Options configures the runner.
type Options struct {
	// Prefix is the listing prefix inside the bucket.
	Prefix string

	// DataDir receives one <label>.ndjson per label.
	DataDir string

	// Manifest is the path of the labels manifest.
	Manifest string

	// Full fetches whole files instead of previews.
	Full bool

	// SummaryOutput receives the run summary.
	// Default: os.Stderr
	SummaryOutput io.Writer
}

// Runner runs probes and batch downloads.
type Runner struct {
	lister  quickdraw.ObjectLister
	fetcher Fetcher
	writer  *output.Writer
	logger  *slog.Logger
	opts    Options
}

// NewRunner creates a Runner.
func NewRunner(lister quickdraw.ObjectLister, fetcher Fetcher, writer *output.Writer, logger *slog.Logger, opts Options) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.SummaryOutput == nil {
		opts.SummaryOutput = os.Stderr
	}
	return &Runner{
		lister:  lister,
		fetcher: fetcher,
		writer:  writer,
		logger:  logger,
		opts:    opts,
	}
}

// Probe fetches label and prints its batch to w.
func (r *Runner) Probe(ctx context.Context, label quickdraw.Label, w io.Writer) error {
	data, err := r.fetcher.Fetch(ctx, label, !r.opts.Full)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, data); err != nil {
		return fmt.Errorf("print batch: %w", err)
	}
	return nil
}

// Run downloads every label. Only failures to prepare the data directory,
// list labels or write the manifest are returned; per-label failures are
// logged and reported in the summary.
func (r *Runner) Run(ctx context.Context) (progress.Summary, error) {
	if err := r.writer.EnsureDir(r.opts.DataDir); err != nil {
		return progress.Summary{}, err
	}

	labels, err := quickdraw.ListLabels(ctx, r.lister, storage.ListPrefix(r.opts.Prefix), r.logger)
	if err != nil {
		return progress.Summary{}, err
	}

	if err := r.writer.WriteManifest(r.opts.Manifest, labels); err != nil {
		return progress.Summary{}, fmt.Errorf("write manifest: %w", err)
	}

	reporter := progress.NewReporter(progress.Options{
		TotalLabels: len(labels),
		Output:      r.opts.SummaryOutput,
	})

	for _, label := range labels {
		if err := ctx.Err(); err != nil {
			return reporter.Summary(), err
		}

		res := r.fetcher.FetchResult(ctx, label, !r.opts.Full)
		if res.OK() {
			res.Err = r.writer.WriteFile(output.DataPath(r.opts.DataDir, label), res.Data)
		}

		if !res.OK() {
			r.logger.Error(fmt.Sprintf("failed to load label %q", label), "label", label, "error", res.Err)
			reporter.LabelFailed(string(label))
			continue
		}
		reporter.LabelCompleted(res.Examples, int64(len(res.Data)))
	}

	if err := r.writer.OpenPermissions(r.opts.DataDir); err != nil {
		r.logger.Warn("could not open permissions on data directory", "dir", r.opts.DataDir, "error", err)
	}

	reporter.PrintSummary()
	return reporter.Summary(), nil
}
