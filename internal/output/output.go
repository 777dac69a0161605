// Package output writes the label manifest and per-label data files.
package output

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ligustah/qdfetch/internal/progress"
	"github.com/ligustah/qdfetch/internal/quickdraw"
)

// Writer persists run artifacts to the local filesystem.
type Writer struct {
	logger *slog.Logger
}

// NewWriter creates a Writer that reports each written path to logger.
func NewWriter(logger *slog.Logger) *Writer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Writer{logger: logger}
}

// EnsureDir creates dir and any missing parents.
func (w *Writer) EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create directory %s: %w", dir, err)
	}
	return nil
}

// WriteFile creates or truncates path and writes data verbatim.
func (w *Writer) WriteFile(path, data string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}

	if _, err := f.WriteString(data); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}

	w.logger.Info(fmt.Sprintf("Wrote %s to disk.", path), "size", progress.FormatBytes(int64(len(data))))
	return nil
}

// WriteManifest writes labels as a JSON array of strings to path, creating
// the parent directory if needed.
func (w *Writer) WriteManifest(path string, labels []quickdraw.Label) error {
	if labels == nil {
		labels = []quickdraw.Label{}
	}
	data, err := json.Marshal(labels)
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := w.EnsureDir(dir); err != nil {
			return err
		}
	}
	return w.WriteFile(path, string(data))
}

// ReadManifest reads a manifest written by WriteManifest.
func ReadManifest(path string) ([]quickdraw.Label, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	var labels []quickdraw.Label
	if err := json.Unmarshal(data, &labels); err != nil {
		return nil, fmt.Errorf("unmarshal manifest: %w", err)
	}
	return labels, nil
}

// DataPath returns the data file path for label inside dir.
func DataPath(dir string, label quickdraw.Label) string {
	return filepath.Join(dir, string(label)+".ndjson")
}

// OpenPermissions makes dir traversable by everyone and every entry
// directly inside it readable by everyone. All entries are attempted; the
// returned error joins the individual failures.
func (w *Writer) OpenPermissions(dir string) error {
	var errs []error

	if err := addMode(dir, 0o111); err != nil {
		errs = append(errs, err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		errs = append(errs, fmt.Errorf("read directory %s: %w", dir, err))
		return errors.Join(errs...)
	}
	for _, e := range entries {
		if err := addMode(filepath.Join(dir, e.Name()), 0o444); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

func addMode(path string, bits fs.FileMode) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if err := os.Chmod(path, info.Mode().Perm()|bits); err != nil {
		return fmt.Errorf("chmod %s: %w", path, err)
	}
	return nil
}
