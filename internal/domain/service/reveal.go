package service

import (
	"sync"
)

// DefaultRevealThreshold matches the intersection ratio the site sections
// reveal at.
const DefaultRevealThreshold = 0.1

type RevealState int

const (
	RevealHidden RevealState = iota
	RevealVisible
)

func (s RevealState) String() string {
	if s == RevealVisible {
		return "visible"
	}
	return "hidden"
}

// RevealTracker is the one-shot Hidden→Visible machine behind a section's
// entrance animation. The first observation at or above the threshold flips
// it to Visible and detaches it; everything after that is a no-op. There is
// no way back to Hidden short of building a new tracker.
type RevealTracker struct {
	mu        sync.Mutex
	threshold float64
	state     RevealState
	detached  bool
}

func NewRevealTracker(threshold float64) *RevealTracker {
	if threshold <= 0 {
		threshold = DefaultRevealThreshold
	}
	return &RevealTracker{threshold: threshold}
}

// Observe feeds one intersection ratio into the tracker and reports whether
// this observation caused the Hidden→Visible transition.
func (t *RevealTracker) Observe(ratio float64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.detached || ratio < t.threshold {
		return false
	}

	t.state = RevealVisible
	t.detached = true
	return true
}

func (t *RevealTracker) State() RevealState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}
