package index

import (
	"sync/atomic"
	"time"
)

// Snapshot is a published index together with its build metadata.
type Snapshot struct {
	Index      *Index
	Generation uint64
	BuiltAt    time.Time
}

// Active holds the one index visible to queries. Readers Load without locking;
// the single writer publishes complete indexes with Swap.
type Active struct {
	current atomic.Pointer[Snapshot]
}

// NewActive returns a holder publishing an empty generation-0 index.
func NewActive() *Active {
	a := &Active{}
	a.current.Store(&Snapshot{Index: Empty()})
	return a
}

// Load returns the currently published snapshot.
func (a *Active) Load() *Snapshot {
	return a.current.Load()
}

// Swap publishes ix as the next generation and returns the new snapshot.
// Callers must serialize Swap; concurrent readers are unaffected.
func (a *Active) Swap(ix *Index, builtAt time.Time) *Snapshot {
	prev := a.current.Load()
	next := &Snapshot{Index: ix, Generation: prev.Generation + 1, BuiltAt: builtAt}
	a.current.Store(next)
	return next
}
