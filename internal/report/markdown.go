package report

import (
	"fmt"
	"os"
	"strings"
	"time"

	domain "github.com/pip3-kill-me/ebay-scraper/pkg/types"
)

// RunInfo is the per-run metadata heading a markdown log section.
type RunInfo struct {
	RunID         string
	Query         string
	MinPerTB      float64
	MaxPerTB      float64
	Wanted        int
	StartedAt     time.Time
	StoppedAt     string
	PagesWalked   int
	TotalAnalyzed int
}

// MarkdownLog appends one human-readable section per run to a log file.
// The log is the only persistence the tool has; it is never read back.
type MarkdownLog struct {
	path string
}

// NewMarkdownLog creates a MarkdownLog writing to the given path.
func NewMarkdownLog(path string) *MarkdownLog {
	return &MarkdownLog{path: path}
}

// Append writes a run section with the accepted deals and every rejection
// with its reason.
func (m *MarkdownLog) Append(
	info RunInfo,
	accepted []domain.Deal,
	drops []domain.Drop,
) error {
	f, err := os.OpenFile(m.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644) //nolint:gosec // log path from trusted config
	if err != nil {
		return fmt.Errorf("opening run log: %w", err)
	}
	defer f.Close()

	var b strings.Builder
	writeRunHeader(&b, info)
	writeAccepted(&b, accepted)
	writeDrops(&b, drops)

	if _, err := f.WriteString(b.String()); err != nil {
		return fmt.Errorf("appending run log: %w", err)
	}
	return nil
}

func writeRunHeader(b *strings.Builder, info RunInfo) {
	fmt.Fprintf(b, "## Run %s (%s)\n\n", info.RunID, info.StartedAt.UTC().Format(time.RFC3339))
	fmt.Fprintf(b, "**Search:** `%s`\n\n", info.Query)
	fmt.Fprintf(b, "**Criteria:**\n")
	fmt.Fprintf(b, "- Price/TB range: $%.2f to $%.2f\n", info.MinPerTB, info.MaxPerTB)
	fmt.Fprintf(b, "- Desired results: %d\n", info.Wanted)
	fmt.Fprintf(b, "- Pages walked: %d, listings analyzed: %d, stopped: %s\n\n",
		info.PagesWalked, info.TotalAnalyzed, info.StoppedAt)
}

func writeAccepted(b *strings.Builder, accepted []domain.Deal) {
	fmt.Fprintf(b, "| Status | Title | Capacity | Price | Price/TB |\n")
	fmt.Fprintf(b, "|:---|:---|---:|---:|---:|\n")
	for i := range accepted {
		d := &accepted[i]
		fmt.Fprintf(b, "| SUCCESS | `%s` | %.2f TB | $%.2f | **$%.2f** |\n",
			escapePipes(d.Title), d.CapacityTB, d.Price, d.PricePerTB)
	}
}

func writeDrops(b *strings.Builder, drops []domain.Drop) {
	for i := range drops {
		d := &drops[i]
		detail := string(d.Reason)
		if d.Detail != "" {
			detail += ": " + d.Detail
		}
		fmt.Fprintf(b, "| SKIPPED | `%s` | - | - | %s |\n",
			escapePipes(d.Title), escapePipes(detail))
	}
	fmt.Fprintf(b, "\n")
}

// escapePipes keeps seller-controlled text from breaking table rows.
func escapePipes(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}
