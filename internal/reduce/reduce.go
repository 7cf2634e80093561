// Package reduce tracks the single best cycle-length result seen across all
// (claim_id, status_code) groups and buckets, for concurrent bucket workers
// to report into.
package reduce

import "sync"

// Candidate is one group's cycle-search outcome, ready to compete for the
// global best.
type Candidate struct {
	ClaimID    string
	StatusCode string
	Length     int
	Exact      bool
	// Seq is the candidate's discovery order (bucket index, then group
	// index within the bucket), used only to break ties deterministically
	// in favor of whichever candidate was seen first.
	Seq int
}

// Best accumulates the best Candidate seen so far. The zero value is ready
// to use and holds "no candidate yet". Safe for concurrent Report calls.
type Best struct {
	mu      sync.Mutex
	has     bool
	current Candidate
}

// Report offers c as a new candidate, replacing the current best if c's
// length is strictly greater, or if the lengths are equal and c's Seq is
// lower (first-seen wins on ties, independent of the order concurrent
// workers happen to call Report in).
func (b *Best) Report(c Candidate) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.has || c.Length > b.current.Length ||
		(c.Length == b.current.Length && c.Seq < b.current.Seq) {
		b.current = c
		b.has = true
	}
}

// Result returns the current best candidate and whether any has been
// reported yet.
func (b *Best) Result() (Candidate, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.current, b.has
}
