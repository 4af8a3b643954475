package portscan

// Tracker records the verdicts of one run in probe order.
type Tracker struct {
	results []Result
	counts  map[PortState]int
}

// NewTracker returns an initialized Tracker sized for n verdicts.
func NewTracker(n int) *Tracker {
	return &Tracker{
		results: make([]Result, 0, n),
		counts:  make(map[PortState]int),
	}
}

// Add records a verdict.
func (t *Tracker) Add(r Result) {
	t.results = append(t.results, r)
	t.counts[r.State]++
}

// Count returns how many verdicts of state were recorded.
func (t *Tracker) Count(state PortState) int {
	return t.counts[state]
}

// Results returns the recorded verdicts in the order they were added.
func (t *Tracker) Results() []Result {
	return t.results
}
