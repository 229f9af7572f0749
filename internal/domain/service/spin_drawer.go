package service

import (
	"errors"
	"math/rand"
	"time"

	"sunstone/internal/domain/entity"
)

// Animation geometry of the wheel strip. The strip is a row of 128px tiles
// with 8px margin on each side; the pointer sits at the horizontal middle of
// the viewport and the strip slides until the center slot is under it.
const (
	SpinSlotCount   = 60
	SpinCenterIndex = SpinSlotCount / 2
	SpinItemWidth   = 128 + 16
	SpinDurationMs  = 4000
	SpinEasing      = "cubic-bezier(0.1, 0.9, 0.2, 1)"
)

var ErrNoAvailableItems = errors.New("no merch items available to draw")

// SpinDrawer picks the winning item and lays out the decoy strip. The random
// source is swappable so draws are deterministic under test.
type SpinDrawer struct {
	intn func(n int) int
}

func NewSpinDrawer() *SpinDrawer {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	return &SpinDrawer{intn: rng.Intn}
}

func NewSpinDrawerWithRand(intn func(n int) int) *SpinDrawer {
	return &SpinDrawer{intn: intn}
}

// Draw selects one winner uniformly from available (no weighting by stock
// level) and builds the animation: SpinSlotCount random decoys with the
// winner overwritten at the fixed center index. The slot shown under the
// pointer at rest is always the returned winner.
func (d *SpinDrawer) Draw(available []entity.MerchItem, viewportWidth float64) (entity.MerchItem, entity.SpinAnimation, error) {
	if len(available) == 0 {
		return entity.MerchItem{}, entity.SpinAnimation{}, ErrNoAvailableItems
	}

	winner := available[d.intn(len(available))]

	slots := make([]entity.MerchItem, SpinSlotCount)
	for i := range slots {
		slots[i] = available[d.intn(len(available))]
	}
	slots[SpinCenterIndex] = winner

	translateX := viewportWidth/2 - (float64(SpinCenterIndex)*SpinItemWidth + SpinItemWidth/2)

	animation := entity.SpinAnimation{
		Slots:       slots,
		CenterIndex: SpinCenterIndex,
		ItemWidth:   SpinItemWidth,
		TranslateX:  translateX,
		DurationMs:  SpinDurationMs,
		Easing:      SpinEasing,
	}

	return winner, animation, nil
}
