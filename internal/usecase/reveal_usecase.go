package usecase

import (
	"context"
	"sync"

	"sunstone/internal/domain/service"
	"sunstone/pkg/errors"
)

// Site sections with an entrance reveal, in page order.
var revealSections = []string{
	"hero",
	"about",
	"gallery",
	"characters",
	"features",
	"developer",
	"download",
	"contact",
}

// RevealUseCase holds one reveal tracker per visitor and section so a
// returning client can be told which sections already played their entrance
// animation. Trackers are in-memory only; a server restart is a remount.
type RevealUseCase struct {
	threshold float64

	mu       sync.Mutex
	visitors map[string]map[string]*service.RevealTracker
}

func NewRevealUseCase(threshold float64) *RevealUseCase {
	return &RevealUseCase{
		threshold: threshold,
		visitors:  make(map[string]map[string]*service.RevealTracker),
	}
}

func (uc *RevealUseCase) tracker(visitorID, section string) (*service.RevealTracker, error) {
	known := false
	for _, s := range revealSections {
		if s == section {
			known = true
			break
		}
	}
	if !known {
		return nil, errors.BadRequest("Unknown section", nil)
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	sections, ok := uc.visitors[visitorID]
	if !ok {
		sections = make(map[string]*service.RevealTracker)
		uc.visitors[visitorID] = sections
	}

	t, ok := sections[section]
	if !ok {
		t = service.NewRevealTracker(uc.threshold)
		sections[section] = t
	}

	return t, nil
}

// Observe records one intersection ratio for a visitor's section and returns
// whether that observation revealed it.
func (uc *RevealUseCase) Observe(ctx context.Context, visitorID, section string, ratio float64) (bool, service.RevealState, error) {
	if visitorID == "" {
		return false, service.RevealHidden, errors.BadRequest("Visitor id is required", nil)
	}

	t, err := uc.tracker(visitorID, section)
	if err != nil {
		return false, service.RevealHidden, err
	}

	fired := t.Observe(ratio)
	return fired, t.State(), nil
}

// States reports every section's reveal state for a visitor.
func (uc *RevealUseCase) States(ctx context.Context, visitorID string) map[string]string {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	sections := uc.visitors[visitorID]
	states := make(map[string]string, len(revealSections))
	for _, s := range revealSections {
		state := service.RevealHidden
		if t, ok := sections[s]; ok {
			state = t.State()
		}
		states[s] = state.String()
	}

	return states
}
