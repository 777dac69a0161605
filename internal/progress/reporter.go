package progress

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

// Options configures the progress reporter.
type Options struct {
	// TotalLabels is the number of labels the run will process.
	TotalLabels int

	// Output is where the summary is written.
	// Default: os.Stderr
	Output io.Writer

	// Now returns the current time. Default: time.Now
	Now func() time.Time
}

// Summary describes a finished batch run.
type Summary struct {
	TotalLabels  int
	Completed    int
	Failed       []string
	Examples     int
	BytesWritten int64
	Duration     time.Duration
}

// Reporter counts per-label outcomes of a batch run. Runs are sequential,
// so Reporter is not safe for concurrent use.
type Reporter struct {
	opts Options

	startTime time.Time
	completed int
	failed    []string
	examples  int
	bytes     int64
}

// NewReporter creates a new progress reporter and starts its clock.
func NewReporter(opts Options) *Reporter {
	if opts.Output == nil {
		opts.Output = os.Stderr
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	return &Reporter{
		opts:      opts,
		startTime: opts.Now(),
	}
}

// LabelCompleted records a label whose data file was written.
func (r *Reporter) LabelCompleted(examples int, size int64) {
	r.completed++
	r.examples += examples
	r.bytes += size
}

// LabelFailed records a label that was skipped.
func (r *Reporter) LabelFailed(label string) {
	r.failed = append(r.failed, label)
}

// Summary returns the counts recorded so far.
func (r *Reporter) Summary() Summary {
	failed := make([]string, len(r.failed))
	copy(failed, r.failed)
	return Summary{
		TotalLabels:  r.opts.TotalLabels,
		Completed:    r.completed,
		Failed:       failed,
		Examples:     r.examples,
		BytesWritten: r.bytes,
		Duration:     r.opts.Now().Sub(r.startTime),
	}
}

// PrintSummary writes the run summary to the configured output.
func (r *Reporter) PrintSummary() {
	s := r.Summary()

	fmt.Fprintf(r.opts.Output, "[qdfetch] Labels: %d completed | %d failed | %d total\n",
		s.Completed,
		len(s.Failed),
		s.TotalLabels,
	)
	fmt.Fprintf(r.opts.Output, "[qdfetch] Examples: %d | Written: %s | Time: %s\n",
		s.Examples,
		formatBytes(s.BytesWritten),
		formatDuration(s.Duration),
	)
	if len(s.Failed) > 0 {
		fmt.Fprintf(r.opts.Output, "[qdfetch] Failed: %s\n", strings.Join(s.Failed, ", "))
	}
}

// formatBytes formats bytes as a human-readable string.
func formatBytes(b int64) string {
	const (
		KB = 1000
		MB = KB * 1000
		GB = MB * 1000
	)

	switch {
	case b >= GB:
		return fmt.Sprintf("%.2f GB", float64(b)/float64(GB))
	case b >= MB:
		return fmt.Sprintf("%.2f MB", float64(b)/float64(MB))
	case b >= KB:
		return fmt.Sprintf("%.2f KB", float64(b)/float64(KB))
	default:
		return fmt.Sprintf("%d B", b)
	}
}

// formatDuration formats a duration as a human-readable string.
func formatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%.0fs", d.Seconds())
	}
	if d < time.Hour {
		m := int(d.Minutes())
		s := int(d.Seconds()) % 60
		return fmt.Sprintf("%dm %ds", m, s)
	}
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%dh %dm %ds", h, m, s)
}

// FormatBytes formats a byte count with decimal units, e.g. "2.00 KB".
func FormatBytes(b int64) string {
	return formatBytes(b)
}

// ParseBytes parses a human-readable byte string (e.g., "100KB", "64KiB").
// KB, MB and GB are decimal; KiB, MiB and GiB are binary.
func ParseBytes(s string) (int64, error) {
	var multiplier int64 = 1
	s = strings.TrimSpace(s)

	units := []struct {
		suffix string
		mult   int64
	}{
		{"KiB", 1 << 10},
		{"MiB", 1 << 20},
		{"GiB", 1 << 30},
		{"KB", 1000},
		{"MB", 1000 * 1000},
		{"GB", 1000 * 1000 * 1000},
		{"B", 1},
	}
	for _, u := range units {
		if strings.HasSuffix(s, u.suffix) {
			multiplier = u.mult
			s = strings.TrimSpace(strings.TrimSuffix(s, u.suffix))
			break
		}
	}

	var value float64
	_, err := fmt.Sscanf(s, "%f", &value)
	if err != nil || value < 0 {
		return 0, fmt.Errorf("invalid byte string: %s", s)
	}

	return int64(value * float64(multiplier)), nil
}
