package main

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/ligustah/qdfetch/internal/batch"
	"github.com/ligustah/qdfetch/internal/config"
	qdhttp "github.com/ligustah/qdfetch/internal/http"
	"github.com/ligustah/qdfetch/internal/output"
	"github.com/ligustah/qdfetch/internal/progress"
	"github.com/ligustah/qdfetch/internal/quickdraw"
	"github.com/ligustah/qdfetch/internal/storage"
)

// Version is set at build time.
var Version = "0.1.0"

type rootFlags struct {
	configPath   string
	bucket       string
	prefix       string
	root         string
	previewBytes string
	full         bool
	dataDir      string
	manifest     string
	anonymous    bool
	logFile      string
	verbose      bool
	timeout      string
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var flags rootFlags

	cmd := &cobra.Command{
		Use:   "qdfetch [label]",
		Short: "Download preview batches of the Quick, Draw! dataset",
		Long: `qdfetch downloads the first examples of every Quick, Draw! label.

With no arguments it lists all labels, writes public/labels.json and one
data/<label>.ndjson per label. With a single label it prints that label's
batch to stdout and writes nothing.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 1 {
				return &usageError{fmt.Errorf("expected at most one label, got %d arguments", len(args))}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return &usageError{err}
			}

			logger, cleanup := config.SetupLogger(stderr, cfg.LogFile, config.LogLevel(cfg.Verbose))
			defer cleanup()

			ctx := cmd.Context()
			client := qdhttp.NewClient(qdhttp.Options{
				Timeout:   cfg.HTTP.Timeout,
				UserAgent: cfg.HTTP.UserAgent,
			})
			fetcher := quickdraw.NewFetcher(client, cfg.Root, cfg.PreviewBytes, logger)
			writer := output.NewWriter(logger)
			opts := batch.Options{
				Prefix:        cfg.Prefix,
				DataDir:       cfg.DataDir,
				Manifest:      cfg.Manifest,
				Full:          cfg.Full,
				SummaryOutput: stderr,
			}

			if len(args) == 1 {
				runner := batch.NewRunner(nil, fetcher, writer, logger, opts)
				if err := runner.Probe(ctx, quickdraw.Label(args[0]), stdout); err != nil {
					logger.Error("probe failed", "label", args[0], "error", err)
					return err
				}
				return nil
			}

			bucket, err := storage.OpenBucket(ctx, cfg.Bucket, cfg.Anonymous)
			if err != nil {
				logger.Error("open bucket failed", "bucket", cfg.Bucket, "error", err)
				return err
			}
			defer bucket.Close()

			runner := batch.NewRunner(&quickdraw.BucketLister{Bucket: bucket}, fetcher, writer, logger, opts)
			if _, err := runner.Run(ctx); err != nil {
				logger.Error("batch run failed", "error", err, "code", storage.Describe(err))
				return err
			}
			return nil
		},
	}

	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return &usageError{err}
	})

	f := cmd.Flags()
	f.StringVarP(&flags.configPath, "config", "c", "", "YAML configuration file")
	f.StringVar(&flags.bucket, "bucket", "", "Bucket URL to list labels from (default "+config.DefaultBucket+")")
	f.StringVar(&flags.prefix, "prefix", "", "Listing prefix inside the bucket (default "+config.DefaultPrefix+")")
	f.StringVar(&flags.root, "root", "", "HTTPS base URL of the label files (default "+config.DefaultRoot+")")
	f.StringVar(&flags.previewBytes, "preview-bytes", "", "Last byte requested per label in preview mode, e.g. 100KB (default 100000)")
	f.BoolVar(&flags.full, "full", false, "Download whole label files instead of previews")
	f.StringVar(&flags.dataDir, "data-dir", "", "Directory for <label>.ndjson files (default "+config.DefaultDataDir+")")
	f.StringVar(&flags.manifest, "manifest", "", "Path of the labels manifest (default "+config.DefaultManifest+")")
	f.BoolVar(&flags.anonymous, "anonymous", false, "Open gs:// buckets without credentials")
	f.StringVar(&flags.logFile, "log-file", "", "Also write JSON logs to this file")
	f.BoolVarP(&flags.verbose, "verbose", "v", false, "Enable debug logging")
	f.StringVar(&flags.timeout, "timeout", "", "Per-request HTTP timeout, e.g. 30s (default none)")

	return cmd
}

// loadConfig layers defaults, the config file, environment variables and
// flags, in that order.
func loadConfig(flags rootFlags) (config.Config, error) {
	cfg := config.Default()
	if flags.configPath != "" {
		var err error
		cfg, err = config.LoadFromFile(flags.configPath)
		if err != nil {
			return config.Config{}, err
		}
	}

	if err := cfg.LoadFromEnv(); err != nil {
		return config.Config{}, err
	}

	override := config.Config{
		Bucket:    flags.bucket,
		Prefix:    flags.prefix,
		Root:      flags.root,
		Full:      flags.full,
		DataDir:   flags.dataDir,
		Manifest:  flags.manifest,
		Anonymous: flags.anonymous,
		LogFile:   flags.logFile,
		Verbose:   flags.verbose,
	}
	if flags.previewBytes != "" {
		size, err := progress.ParseBytes(flags.previewBytes)
		if err != nil {
			return config.Config{}, fmt.Errorf("parse --preview-bytes: %w", err)
		}
		override.PreviewBytes = size
	}
	if flags.timeout != "" {
		d, err := time.ParseDuration(flags.timeout)
		if err != nil {
			return config.Config{}, fmt.Errorf("parse --timeout: %w", err)
		}
		override.HTTP.Timeout = d
	}

	cfg = cfg.Merge(override)
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}
