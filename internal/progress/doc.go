// Package progress tracks a batch run and prints its summary.
//
// # Usage
//
//	reporter := progress.NewReporter(Options{
//	    TotalLabels: len(labels),
//	    Output:      os.Stderr,
//	})
//
//	reporter.LabelCompleted(examples, bytes)
//	reporter.LabelFailed(label)
//
//	summary := reporter.Summary()
//	reporter.PrintSummary()
//
// # Output Format
//
//	[qdfetch] Labels: 343 completed | 2 failed | 345 total
//	[qdfetch] Examples: 51234 | Written: 33.12 MB | Time: 2m 10s
//	[qdfetch] Failed: dog, The Eiffel Tower
package progress
