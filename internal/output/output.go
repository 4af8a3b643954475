// Package output renders scan verdicts on stdout as text, JSON or CSV.
package output

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"

	"github.com/logivex/l4scan/internal/errors"
	"github.com/logivex/l4scan/internal/portscan"
)

const (
	FormatText = "text"
	FormatJSON = "json"
	FormatCSV  = "csv"
)

// Meta describes a finished scan.
type Meta struct {
	Target   string
	Scanned  int
	Open     int
	Closed   int
	Filtered int
	Duration time.Duration
}

// Writer receives the verdicts of each completed run, then the scan
// metadata once all runs are done.
type Writer interface {
	Write(results []portscan.Result) error
	Flush(meta Meta) error
}

// New returns the Writer for format. colored enables state colouring and
// applies to the text format only.
func New(format string, w io.Writer, colored bool) (Writer, error) {
	switch format {
	case "", FormatText:
		return newText(w, colored), nil
	case FormatJSON:
		return newJSON(w), nil
	case FormatCSV:
		return newCSV(w), nil
	}
	return nil, errors.Input("output", fmt.Sprintf("unknown format %q (want text, json or csv)", format))
}

// Stdout returns a stdout writer that translates ANSI escapes on Windows.
func Stdout() io.Writer {
	return colorable.NewColorableStdout()
}

// IsTerminal reports whether w is a terminal rather than a pipe or file.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
