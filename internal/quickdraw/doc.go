// Package quickdraw lists dataset labels and fetches their example batches.
//
// A label names one drawing category ("cat", "The Eiffel Tower"). Each label
// has one NDJSON file in the dataset, one drawing per line.
//
// # Listing
//
// [ListLabels] asks an [ObjectLister] for the object keys under a prefix and
// derives one label per key from its base name:
//
//	full/simplified/cat.ndjson -> cat
//
// [BucketLister] adapts a gocloud bucket to [ObjectLister].
//
// # Fetching
//
// [Fetcher.Fetch] downloads <root>/<label>.ndjson through a [Getter]. In
// preview mode only the first PreviewBytes+1 bytes are requested, so the last
// line is usually cut off. The last newline-separated segment is therefore
// always dropped, in full mode too:
//
//	"line1\nline2\nline3" -> "line1\nline2"
//	"a\nb\nc\n"           -> "a\nb\nc"
//
// A full download of a file that ends without a trailing newline loses its
// last record. This matches what earlier versions of the tool produced.
package quickdraw
