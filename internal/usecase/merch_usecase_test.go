package usecase

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"sunstone/internal/domain/entity"
	"sunstone/internal/domain/repository"
	"sunstone/internal/domain/service"
	"sunstone/pkg/errors"
)

type fakeMerchRepo struct {
	mu         sync.Mutex
	items      map[string]*entity.MerchItem
	decrements int
}

func newFakeMerchRepo(items ...entity.MerchItem) *fakeMerchRepo {
	repo := &fakeMerchRepo{items: make(map[string]*entity.MerchItem)}
	for _, item := range items {
		copied := item
		repo.items[item.ID] = &copied
	}
	return repo
}

func (r *fakeMerchRepo) GetItem(ctx context.Context, id string) (*entity.MerchItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[id]
	if !ok {
		return nil, errors.NotFound("Merch item", nil)
	}
	copied := *item
	return &copied, nil
}

func (r *fakeMerchRepo) ListItems(ctx context.Context, ids []string) ([]*entity.MerchItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.MerchItem, 0, len(ids))
	for _, id := range ids {
		if item, ok := r.items[id]; ok {
			copied := *item
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeMerchRepo) DecrementStock(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[id]
	if !ok {
		return errors.NotFound("Merch item", nil)
	}
	if item.Stock <= 0 {
		return repository.ErrStockDepleted
	}
	item.Stock--
	r.decrements++
	return nil
}

func (r *fakeMerchRepo) stock(id string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.items[id].Stock
}

var testCatalogIDs = []string{"m_kartuNama", "m_stickerA", "m_stickerB", "m_coklat"}

func fixedDrawer() *service.SpinDrawer {
	return service.NewSpinDrawerWithRand(func(n int) int { return 0 })
}

func TestSpinSettleDecrementsWinner(t *testing.T) {
	repo := newFakeMerchRepo(
		entity.MerchItem{ID: "m_kartuNama", Name: "Kartu Nama", Stock: 2},
		entity.MerchItem{ID: "m_stickerA", Name: "Stiker 1", Stock: 1},
	)
	uc := NewMerchUseCase(repo, fixedDrawer(), testCatalogIDs)

	result, err := uc.Spin(context.Background(), "w1", 1280)
	assert.NoError(t, err)
	assert.NotEmpty(t, result.SpinID)

	// The item under the pointer is the item that gets decremented.
	winner := result.Animation.Slots[result.Animation.CenterIndex]
	assert.Equal(t, result.Item.ID, winner.ID)

	settled, err := uc.Settle(context.Background(), "w1", result.SpinID)
	assert.NoError(t, err)
	assert.Equal(t, winner.ID, settled.ID)
	assert.Equal(t, 1, settled.Stock)
	assert.Equal(t, 1, repo.decrements)
}

func TestSpinAllOutOfStock(t *testing.T) {
	repo := newFakeMerchRepo(
		entity.MerchItem{ID: "m_stickerA", Stock: 0},
		entity.MerchItem{ID: "m_coklat", Stock: 0},
	)
	uc := NewMerchUseCase(repo, fixedDrawer(), testCatalogIDs)

	_, err := uc.Spin(context.Background(), "w1", 1280)

	assert.True(t, errors.Is(err, "STOCK_EXHAUSTED"))
	assert.Equal(t, 0, repo.decrements)

	// The failed spin must not leave the widget locked.
	repo2 := newFakeMerchRepo(entity.MerchItem{ID: "m_stickerA", Stock: 1})
	uc2 := NewMerchUseCase(repo2, fixedDrawer(), testCatalogIDs)
	_, err = uc2.Spin(context.Background(), "w1", 1280)
	assert.NoError(t, err)
}

func TestSpinWhileInFlight(t *testing.T) {
	repo := newFakeMerchRepo(entity.MerchItem{ID: "m_stickerA", Stock: 5})
	uc := NewMerchUseCase(repo, fixedDrawer(), testCatalogIDs)

	first, err := uc.Spin(context.Background(), "w1", 1280)
	assert.NoError(t, err)

	_, err = uc.Spin(context.Background(), "w1", 1280)
	assert.True(t, errors.Is(err, "SPIN_IN_PROGRESS"))

	// A different widget is unaffected.
	_, err = uc.Spin(context.Background(), "w2", 1280)
	assert.NoError(t, err)

	// Settling releases the widget for the next spin.
	_, err = uc.Settle(context.Background(), "w1", first.SpinID)
	assert.NoError(t, err)
	_, err = uc.Spin(context.Background(), "w1", 1280)
	assert.NoError(t, err)
}

func TestSettleStaleSpinID(t *testing.T) {
	repo := newFakeMerchRepo(entity.MerchItem{ID: "m_stickerA", Stock: 3})
	uc := NewMerchUseCase(repo, fixedDrawer(), testCatalogIDs)

	result, err := uc.Spin(context.Background(), "w1", 1280)
	assert.NoError(t, err)

	_, err = uc.Settle(context.Background(), "w1", "not-the-spin")
	assert.True(t, errors.Is(err, "NOT_FOUND"))
	assert.Equal(t, 0, repo.decrements)

	// The real spin id still settles.
	_, err = uc.Settle(context.Background(), "w1", result.SpinID)
	assert.NoError(t, err)
}

func TestSettleAtMostOnce(t *testing.T) {
	repo := newFakeMerchRepo(entity.MerchItem{ID: "m_stickerA", Stock: 3})
	uc := NewMerchUseCase(repo, fixedDrawer(), testCatalogIDs)

	result, err := uc.Spin(context.Background(), "w1", 1280)
	assert.NoError(t, err)

	_, err = uc.Settle(context.Background(), "w1", result.SpinID)
	assert.NoError(t, err)

	_, err = uc.Settle(context.Background(), "w1", result.SpinID)
	assert.True(t, errors.Is(err, "NOT_FOUND"))
	assert.Equal(t, 1, repo.decrements)
}

func TestSettleStockRace(t *testing.T) {
	repo := newFakeMerchRepo(entity.MerchItem{ID: "m_stickerA", Stock: 1})
	uc := NewMerchUseCase(repo, fixedDrawer(), testCatalogIDs)

	result, err := uc.Spin(context.Background(), "w1", 1280)
	assert.NoError(t, err)

	// Stock drains between the draw and the settle.
	assert.NoError(t, repo.DecrementStock(context.Background(), "m_stickerA"))

	_, err = uc.Settle(context.Background(), "w1", result.SpinID)
	assert.True(t, errors.Is(err, "STOCK_RACE"))
	assert.Equal(t, 0, repo.stock("m_stickerA"))
}

func TestSpinSkipsSoldOutItems(t *testing.T) {
	repo := newFakeMerchRepo(
		entity.MerchItem{ID: "m_stickerA", Stock: 1},
		entity.MerchItem{ID: "m_stickerB", Stock: 0},
	)
	uc := NewMerchUseCase(repo, service.NewSpinDrawer(), testCatalogIDs)

	result, err := uc.Spin(context.Background(), "w1", 1280)
	assert.NoError(t, err)
	assert.Equal(t, "m_stickerA", result.Item.ID)
	for _, slot := range result.Animation.Slots {
		assert.Equal(t, "m_stickerA", slot.ID)
	}

	_, err = uc.Settle(context.Background(), "w1", result.SpinID)
	assert.NoError(t, err)
	assert.Equal(t, 0, repo.stock("m_stickerA"))

	// With the last item gone the next spin reports exhaustion.
	_, err = uc.Spin(context.Background(), "w1", 1280)
	assert.True(t, errors.Is(err, "STOCK_EXHAUSTED"))
}

func TestAbandonReleasesWidget(t *testing.T) {
	repo := newFakeMerchRepo(entity.MerchItem{ID: "m_stickerA", Stock: 2})
	uc := NewMerchUseCase(repo, fixedDrawer(), testCatalogIDs)

	result, err := uc.Spin(context.Background(), "w1", 1280)
	assert.NoError(t, err)

	uc.Abandon("w1")

	// The abandoned spin can no longer settle and nothing was decremented.
	_, err = uc.Settle(context.Background(), "w1", result.SpinID)
	assert.True(t, errors.Is(err, "NOT_FOUND"))
	assert.Equal(t, 2, repo.stock("m_stickerA"))

	_, err = uc.Spin(context.Background(), "w1", 1280)
	assert.NoError(t, err)
}
