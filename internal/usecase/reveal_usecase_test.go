package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"sunstone/internal/domain/service"
)

func TestObserveRevealsSectionOnce(t *testing.T) {
	uc := NewRevealUseCase(0.1)

	fired, state, err := uc.Observe(context.Background(), "v1", "hero", 0.5)
	assert.NoError(t, err)
	assert.True(t, fired)
	assert.Equal(t, service.RevealVisible, state)

	// Scrolling away and back never re-fires the entrance.
	fired, state, err = uc.Observe(context.Background(), "v1", "hero", 0.9)
	assert.NoError(t, err)
	assert.False(t, fired)
	assert.Equal(t, service.RevealVisible, state)
}

func TestObserveBelowThreshold(t *testing.T) {
	uc := NewRevealUseCase(0.1)

	fired, state, err := uc.Observe(context.Background(), "v1", "about", 0.05)
	assert.NoError(t, err)
	assert.False(t, fired)
	assert.Equal(t, service.RevealHidden, state)
}

func TestObserveUnknownSection(t *testing.T) {
	uc := NewRevealUseCase(0.1)

	_, _, err := uc.Observe(context.Background(), "v1", "footer", 0.5)
	assert.Error(t, err)

	_, _, err = uc.Observe(context.Background(), "", "hero", 0.5)
	assert.Error(t, err)
}

func TestStatesArePerVisitor(t *testing.T) {
	uc := NewRevealUseCase(0.1)

	_, _, err := uc.Observe(context.Background(), "v1", "hero", 0.5)
	assert.NoError(t, err)
	_, _, err = uc.Observe(context.Background(), "v1", "gallery", 0.02)
	assert.NoError(t, err)

	states := uc.States(context.Background(), "v1")
	assert.Len(t, states, len(revealSections))
	assert.Equal(t, "visible", states["hero"])
	assert.Equal(t, "hidden", states["gallery"])
	assert.Equal(t, "hidden", states["contact"])

	// A visitor with no observations sees everything hidden.
	fresh := uc.States(context.Background(), "v2")
	for _, state := range fresh {
		assert.Equal(t, "hidden", state)
	}
}
