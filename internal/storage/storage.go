// Package storage opens the object storage bucket that holds the dataset.
//
// Buckets are addressed by gocloud URLs. The drivers for gs://, s3:// and
// file:// are registered here; tests register mem:// themselves.
package storage

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"gocloud.dev/blob"
	"gocloud.dev/blob/gcsblob"
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/s3blob"
	"gocloud.dev/gcerrors"
	"gocloud.dev/gcp"
)

// OpenBucket opens the bucket at bucketURL.
//
// When anonymous is true and the URL uses the gs scheme, the bucket is opened
// without credentials. This works for public buckets such as the Quick, Draw!
// dataset. Otherwise credentials come from the environment.
func OpenBucket(ctx context.Context, bucketURL string, anonymous bool) (*blob.Bucket, error) {
	u, err := url.Parse(bucketURL)
	if err != nil {
		return nil, fmt.Errorf("storage: parse bucket url: %w", err)
	}

	if anonymous && u.Scheme == gcsblob.Scheme {
		client := gcp.NewAnonymousHTTPClient(gcp.DefaultTransport())
		bucket, err := gcsblob.OpenBucket(ctx, client, u.Host, nil)
		if err != nil {
			return nil, fmt.Errorf("storage: open %s: %w", bucketURL, err)
		}
		return bucket, nil
	}

	bucket, err := blob.OpenBucket(ctx, bucketURL)
	if err != nil {
		return nil, fmt.Errorf("storage: open %s: %w", bucketURL, err)
	}
	return bucket, nil
}

// ListPrefix normalizes a listing prefix to end in exactly one slash so
// that only objects inside the directory are returned. An empty prefix lists
// the bucket root.
func ListPrefix(prefix string) string {
	prefix = strings.Trim(prefix, "/")
	if prefix == "" {
		return ""
	}
	return prefix + "/"
}

// Describe returns a short classification of a storage error for logging,
// e.g. "NotFound" or "PermissionDenied".
func Describe(err error) string {
	return gcerrors.Code(err).String()
}
