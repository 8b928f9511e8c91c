package client

import (
	"sync/atomic"
)

// RefreshBus is the coalescing change signal between sibling views.
// Triggering it bumps a generation; a consumer remembers the last
// generation it acted on and re-fetches when the two differ. Any
// number of triggers between two observations collapse into a single
// re-fetch, which is safe because the only consumer action is
// "re-fetch everything for the current view".
type RefreshBus struct {
	gen atomic.Uint64
}

func NewRefreshBus() *RefreshBus { return &RefreshBus{} }

// TriggerRefresh marks all views' meal data as stale.
func (b *RefreshBus) TriggerRefresh() {
	b.gen.Add(1)
}

// Generation returns the current signal value, used to seed a
// consumer's last-observed marker.
func (b *RefreshBus) Generation() uint64 {
	return b.gen.Load()
}

// Changed reports whether the signal moved since last, returning the
// generation the caller should remember.
func (b *RefreshBus) Changed(last uint64) (uint64, bool) {
	g := b.gen.Load()
	return g, g != last
}
