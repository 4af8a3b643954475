package output

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"

	"github.com/logivex/l4scan/internal/portscan"
)

// ─── colors ───────────────────────────────────────────────────────────────────

var (
	colorOpen     = color.New(color.FgGreen, color.Bold)
	colorClosed   = color.New(color.FgRed)
	colorFiltered = color.New(color.FgYellow)
	colorMuted    = color.New(color.FgHiBlack)
	colorBold     = color.New(color.Bold)
)

// ─── text ─────────────────────────────────────────────────────────────────────

type textWriter struct {
	w       io.Writer
	colored bool
}

func newText(w io.Writer, colored bool) *textWriter {
	return &textWriter{w: w, colored: colored}
}

// Write prints one "<address> <port> <protocol> <state>" line per verdict.
func (t *textWriter) Write(results []portscan.Result) error {
	for _, r := range results {
		state := string(r.State)
		if t.colored {
			state = stateColor(r.State).Sprint(state)
		}
		if _, err := fmt.Fprintf(t.w, "%s %d %s %s\n", r.Address, r.Port, r.Proto, state); err != nil {
			return err
		}
	}
	return nil
}

// Flush is a no-op: text lines are written as each run completes.
func (t *textWriter) Flush(Meta) error {
	return nil
}

func stateColor(s portscan.PortState) *color.Color {
	switch s {
	case portscan.StateOpen:
		return colorOpen
	case portscan.StateFiltered:
		return colorFiltered
	default:
		return colorClosed
	}
}

// ─── summary ──────────────────────────────────────────────────────────────────

// PrintSummary prints the verdict totals to w. Callers only do this on a
// terminal so piped output stays line-exact.
func PrintSummary(w io.Writer, m Meta) {
	fmt.Fprintln(w)
	colorMuted.Fprintln(w, "─────────────────────────────")
	colorMuted.Fprintf(w, "  target  : ")
	colorBold.Fprintf(w, "%s\n", m.Target)
	colorMuted.Fprintf(w, "  scanned : ")
	colorBold.Fprintf(w, "%d probes\n", m.Scanned)
	colorMuted.Fprintf(w, "  open    : ")
	colorOpen.Fprintf(w, "%d\n", m.Open)
	colorMuted.Fprintf(w, "  closed  : ")
	colorClosed.Fprintf(w, "%d\n", m.Closed)
	colorMuted.Fprintf(w, "  filtered: ")
	colorFiltered.Fprintf(w, "%d\n", m.Filtered)
	colorMuted.Fprintf(w, "  time    : ")
	fmt.Fprintf(w, "%s\n", m.Duration.Round(time.Millisecond))
	colorMuted.Fprintln(w, "─────────────────────────────")
}
