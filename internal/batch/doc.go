// Package batch runs label downloads end to end.
//
// It coordinates the label listing, the fetcher and the output writer.
// Labels are processed one after another.
//
// # Probe
//
// [Runner.Probe] fetches a single label and prints its batch. Nothing is
// written to disk and any failure is returned.
//
// # Run
//
// [Runner.Run] downloads every label:
//   - Create the data directory
//   - List labels and write the manifest (failures abort the run)
//   - Fetch each label and write data/<label>.ndjson; a failed label is
//     logged and skipped
//   - Open up permissions on the data directory (best effort)
//
// Cancelling the context stops the run before the next label.
package batch
