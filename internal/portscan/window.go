package portscan

// PortWindow hands out source ports from [start, end), advancing after every
// probe and wrapping back to start.
type PortWindow struct {
	start int
	end   int
	next  int
}

// NewPortWindow returns a window positioned at start. An empty or inverted
// range collapses to the single port start.
func NewPortWindow(start, end int) *PortWindow {
	if end <= start {
		end = start + 1
	}
	return &PortWindow{start: start, end: end, next: start}
}

// Next returns the current port and advances the window.
func (w *PortWindow) Next() int {
	p := w.next
	w.next++
	if w.next >= w.end {
		w.next = w.start
	}
	return p
}
