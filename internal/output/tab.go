// Package output provides score-row and table formatters.
package output

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/lbarbosa/codonstat/internal/score"
)

// TabWriter writes score rows in tab-delimited format.
type TabWriter struct {
	w       *bufio.Writer
	columns []string
}

// NewTabWriter creates a new tab-delimited score writer.
func NewTabWriter(w io.Writer) *TabWriter {
	return &TabWriter{
		w: bufio.NewWriter(w),
		columns: []string{
			"ICU score",
			"CC score",
			"CAI score",
			"Hidden",
			"GC content",
			"GC3 content",
			"Excluseq",
			"Repeat",
		},
	}
}

// WriteHeader writes the header line.
func (tw *TabWriter) WriteHeader() error {
	_, err := tw.w.WriteString(strings.Join(tw.columns, "\t") + "\n")
	return err
}

// Write writes a single score row.
func (tw *TabWriter) Write(res *score.Result) error {
	_, err := fmt.Fprintf(tw.w, "%s\t%s\t%s\t%d\t%s\t%s\t%d\t%d\n",
		formatScore(res.ICU),
		formatScore(res.CC),
		formatScore(res.CAI),
		res.HiddenStops,
		formatScore(res.GC),
		formatScore(res.GC3),
		res.Exclusion,
		res.Repeats)
	return err
}

// Flush flushes buffered output.
func (tw *TabWriter) Flush() error {
	return tw.w.Flush()
}

// formatScore renders a score with six-digit precision; an undefined score
// renders as NA.
func formatScore(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "NA"
	}
	return fmt.Sprintf("%.6f", f)
}
