package usecase

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"sunstone/internal/domain/entity"
	"sunstone/internal/domain/repository"
	"sunstone/internal/domain/service"
	"sunstone/pkg/errors"
	"sunstone/pkg/logger"
)

// MerchUseCase runs the gacha wheel: catalog reads, the spin draw, and the
// settle step that decrements stock after the animation has played.
type MerchUseCase struct {
	merchRepo  repository.MerchRepository
	drawer     *service.SpinDrawer
	catalogIDs []string

	mu       sync.Mutex
	inflight map[string]*pendingSpin
}

// pendingSpin is the continuation between Spin and Settle for one widget.
type pendingSpin struct {
	spinID string
	itemID string
}

func NewMerchUseCase(merchRepo repository.MerchRepository, drawer *service.SpinDrawer, catalogIDs []string) *MerchUseCase {
	return &MerchUseCase{
		merchRepo:  merchRepo,
		drawer:     drawer,
		catalogIDs: catalogIDs,
		inflight:   make(map[string]*pendingSpin),
	}
}

// Catalog returns every catalog item, including sold-out ones, for display.
func (uc *MerchUseCase) Catalog(ctx context.Context) ([]*entity.MerchItem, error) {
	return uc.merchRepo.ListItems(ctx, uc.catalogIDs)
}

// Spin draws a winner and returns the animation to play. Stock is re-read
// from the store on every call; nothing is cached between spins. While a
// spin on the same widget has not settled, further calls are refused; the
// in-flight entry is the only mutual exclusion there is.
func (uc *MerchUseCase) Spin(ctx context.Context, widgetID string, viewportWidth float64) (*entity.SpinResult, error) {
	uc.mu.Lock()
	if _, busy := uc.inflight[widgetID]; busy {
		uc.mu.Unlock()
		return nil, errors.SpinInProgress("A spin is already in progress")
	}
	// Reserve the slot before the stock reads so a concurrent call can't
	// start a second draw for the same widget.
	uc.inflight[widgetID] = &pendingSpin{}
	uc.mu.Unlock()

	result, err := uc.draw(ctx, widgetID, viewportWidth)
	if err != nil {
		uc.clear(widgetID)
		return nil, err
	}

	return result, nil
}

func (uc *MerchUseCase) draw(ctx context.Context, widgetID string, viewportWidth float64) (*entity.SpinResult, error) {
	items, err := uc.merchRepo.ListItems(ctx, uc.catalogIDs)
	if err != nil {
		return nil, err
	}

	available := make([]entity.MerchItem, 0, len(items))
	for _, item := range items {
		if item.Stock > 0 {
			available = append(available, *item)
		}
	}

	if len(available) == 0 {
		return nil, errors.StockExhausted("All merch items are out of stock")
	}

	winner, animation, err := uc.drawer.Draw(available, viewportWidth)
	if err != nil {
		return nil, errors.Internal("Failed to draw a merch item", err)
	}

	spinID := uuid.New().String()

	uc.mu.Lock()
	uc.inflight[widgetID] = &pendingSpin{spinID: spinID, itemID: winner.ID}
	uc.mu.Unlock()

	logger.Info("Spin %s on widget %s selected %s", spinID, widgetID, winner.ID)

	return &entity.SpinResult{
		SpinID:    spinID,
		Item:      winner,
		Animation: animation,
	}, nil
}

// Settle is the post-animation continuation: re-check the winner's stock and
// decrement it. A stale or unknown spin id is rejected without touching
// stock, which also guards the continuation of a widget that was torn down
// mid-animation. Each spin settles at most once.
func (uc *MerchUseCase) Settle(ctx context.Context, widgetID, spinID string) (*entity.MerchItem, error) {
	uc.mu.Lock()
	pending, ok := uc.inflight[widgetID]
	if !ok || pending.spinID != spinID {
		uc.mu.Unlock()
		return nil, errors.NotFound("Spin", nil)
	}
	delete(uc.inflight, widgetID)
	uc.mu.Unlock()

	err := uc.merchRepo.DecrementStock(ctx, pending.itemID)
	if err != nil {
		if err == repository.ErrStockDepleted {
			// The win was already shown; reported as-is rather than
			// re-rolled. See DESIGN.md on the stock race.
			return nil, errors.StockRace("The item ran out of stock before the spin settled")
		}
		return nil, err
	}

	return uc.merchRepo.GetItem(ctx, pending.itemID)
}

// Abandon drops the in-flight spin for a widget without settling, for
// widgets torn down before the animation completed.
func (uc *MerchUseCase) Abandon(widgetID string) {
	uc.clear(widgetID)
}

func (uc *MerchUseCase) clear(widgetID string) {
	uc.mu.Lock()
	delete(uc.inflight, widgetID)
	uc.mu.Unlock()
}
