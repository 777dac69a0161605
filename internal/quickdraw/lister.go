package quickdraw

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"

	"gocloud.dev/blob"
)

// Label names one dataset category.
type Label string

// ObjectLister lists the object keys directly under a prefix.
type ObjectLister interface {
	List(ctx context.Context, prefix string) ([]string, error)
}

// BucketLister lists objects in a gocloud bucket.
type BucketLister struct {
	Bucket *blob.Bucket
}

// List returns the keys of the objects one level below prefix, in listing
// order. Sub-directories are skipped.
func (l *BucketLister) List(ctx context.Context, prefix string) ([]string, error) {
	iter := l.Bucket.List(&blob.ListOptions{
		Prefix:    prefix,
		Delimiter: "/",
	})

	var keys []string
	for {
		obj, err := iter.Next(ctx)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if obj.IsDir {
			continue
		}
		keys = append(keys, obj.Key)
	}
	return keys, nil
}

// LabelFromPath derives a label from an object path: the final path segment
// up to its first dot.
func LabelFromPath(p string) Label {
	base := path.Base(strings.TrimRight(p, "/"))
	if base == "." || base == "/" {
		return ""
	}
	if i := strings.IndexByte(base, '.'); i >= 0 {
		base = base[:i]
	}
	return Label(base)
}

// ListLabels lists the labels available under prefix. Labels keep the
// listing order; empty and repeated labels are dropped.
func ListLabels(ctx context.Context, lister ObjectLister, prefix string, logger *slog.Logger) ([]Label, error) {
	keys, err := lister.List(ctx, prefix)
	if err != nil {
		return nil, fmt.Errorf("list labels under %q: %w", prefix, err)
	}

	seen := make(map[Label]bool, len(keys))
	labels := make([]Label, 0, len(keys))
	for _, key := range keys {
		label := LabelFromPath(key)
		if label == "" || seen[label] {
			continue
		}
		seen[label] = true
		labels = append(labels, label)
	}

	if logger != nil {
		logger.Info(fmt.Sprintf("Found %d labels.", len(labels)), "prefix", prefix)
	}
	return labels, nil
}
