package output

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/logivex/l4scan/internal/portscan"
)

// ─── csv ──────────────────────────────────────────────────────────────────────

var csvHeader = []string{"address", "port", "protocol", "state"}

type csvWriter struct {
	w           *csv.Writer
	wroteHeader bool
}

func newCSV(w io.Writer) *csvWriter {
	return &csvWriter{w: csv.NewWriter(w)}
}

// Write emits one row per verdict, preceded by the header on first use.
func (c *csvWriter) Write(results []portscan.Result) error {
	if !c.wroteHeader {
		if err := c.w.Write(csvHeader); err != nil {
			return err
		}
		c.wroteHeader = true
	}
	for _, r := range results {
		row := []string{r.Address, strconv.Itoa(r.Port), r.Proto, string(r.State)}
		if err := c.w.Write(row); err != nil {
			return err
		}
	}
	c.w.Flush()
	return c.w.Error()
}

// Flush writes the header if no run produced rows.
func (c *csvWriter) Flush(Meta) error {
	return c.Write(nil)
}
