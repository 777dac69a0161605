// Package http provides the HTTP client used to fetch label files.
//
// This package handles:
//   - A single GET per call, no retries
//   - Optional Range header for preview downloads
//   - Mapping of non-success status codes to sentinel errors
//
// # Usage
//
//	client := http.NewClient(http.DefaultOptions())
//
//	// Fetch the first 100001 bytes
//	resp, err := client.Get(ctx, url, &http.ByteRange{Start: 0, End: 100000})
//	// resp.StatusCode, resp.Body, resp.ContentRange
//
//	// Fetch the whole object
//	resp, err := client.Get(ctx, url, nil)
package http
