// Package report renders ranked deal lists: console tables, the append-only
// markdown run log, and chart output. Formatting lives entirely here; the
// core only guarantees the deal sequence's content and order.
package report

import (
	"fmt"
	"io"
	"text/tabwriter"

	domain "github.com/pip3-kill-me/ebay-scraper/pkg/types"
)

// tabWriter wraps tabwriter with error tracking.
type tabWriter struct {
	*tabwriter.Writer
	err error
}

func newTabWriter(w io.Writer) *tabWriter {
	return &tabWriter{Writer: tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)}
}

func (tw *tabWriter) writef(format string, args ...any) {
	if tw.err != nil {
		return
	}
	_, tw.err = fmt.Fprintf(tw.Writer, format, args...)
}

func (tw *tabWriter) finish() error {
	if tw.err != nil {
		return tw.err
	}
	return tw.Flush()
}

// PrintDealsTable writes the ranked deals as an aligned console table.
func PrintDealsTable(w io.Writer, deals []domain.Deal) error {
	tw := newTabWriter(w)
	tw.writef("#\tTITLE\tCAPACITY\tPRICE\tPRICE/TB\tURL\n")
	for i := range deals {
		d := &deals[i]
		tw.writef("%d\t%s\t%.2f TB\t$%.2f\t$%.2f\t%s\n",
			i+1,
			truncate(d.Title, 60),
			d.CapacityTB,
			d.Price,
			d.PricePerTB,
			d.ItemURL,
		)
	}
	return tw.finish()
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
