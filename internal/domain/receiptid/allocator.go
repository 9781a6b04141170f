// Package receiptid allocates the stable, human-sortable identifiers
// stamped on confirmed matches, e.g. "REC-2023-07000001".
package receiptid

import (
	"fmt"
	"time"
)

// Allocator hands out sequential identifiers keyed by year-month. It
// owns its counters; create one per run so re-running identical inputs
// reproduces identical identifiers. Not safe for concurrent use, which
// the single-threaded pipeline never needs.
type Allocator struct {
	counters map[string]int
}

// NewAllocator returns an allocator with all counters at zero.
func NewAllocator() *Allocator {
	return &Allocator{counters: make(map[string]int)}
}

// Next composes prefix-YYYY-MM plus the month's next sequence number,
// zero-padded to six digits (wider counters print unpadded). The
// counter for each year-month starts at 1 and is incremented exactly
// once per allocation, so identifiers are strictly increasing within a
// month and never reused within a run.
func (a *Allocator) Next(prefix string, ts time.Time) string {
	key := ts.Format("2006-01")
	a.counters[key]++
	return fmt.Sprintf("%s-%s%06d", prefix, key, a.counters[key])
}
