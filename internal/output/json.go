package output

import (
	"encoding/json"
	"io"
	"time"

	"github.com/logivex/l4scan/internal/portscan"
)

// ─── json ─────────────────────────────────────────────────────────────────────

type JSONPort struct {
	Address  string `json:"address"`
	Port     int    `json:"port"`
	Protocol string `json:"protocol"`
	State    string `json:"state"`
}

type JSONMeta struct {
	Scanned  int    `json:"scanned"`
	Open     int    `json:"open"`
	Closed   int    `json:"closed"`
	Filtered int    `json:"filtered"`
	Duration string `json:"duration"`
}

type JSONResult struct {
	Target string     `json:"target"`
	Ports  []JSONPort `json:"ports"`
	Meta   JSONMeta   `json:"meta"`
}

// jsonWriter buffers every run and emits a single document on Flush.
type jsonWriter struct {
	w     io.Writer
	ports []JSONPort
}

func newJSON(w io.Writer) *jsonWriter {
	return &jsonWriter{w: w, ports: []JSONPort{}}
}

func (j *jsonWriter) Write(results []portscan.Result) error {
	for _, r := range results {
		j.ports = append(j.ports, JSONPort{
			Address:  r.Address,
			Port:     r.Port,
			Protocol: r.Proto,
			State:    string(r.State),
		})
	}
	return nil
}

func (j *jsonWriter) Flush(m Meta) error {
	res := JSONResult{
		Target: m.Target,
		Ports:  j.ports,
		Meta: JSONMeta{
			Scanned:  m.Scanned,
			Open:     m.Open,
			Closed:   m.Closed,
			Filtered: m.Filtered,
			Duration: m.Duration.Round(time.Millisecond).String(),
		},
	}
	enc := json.NewEncoder(j.w)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}
