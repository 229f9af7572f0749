package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"sunstone/internal/domain/entity"
)

func TestResolveKnownRole(t *testing.T) {
	uc := NewRoleUseCase(&fakeRoleRepo{roles: map[string]string{
		"alice": entity.RoleWebDev,
	}})

	assert.Equal(t, entity.RoleWebDev, uc.Resolve(context.Background(), "alice"))
	assert.Equal(t, "", uc.Resolve(context.Background(), "nobody"))
	assert.Equal(t, "", uc.Resolve(context.Background(), ""))
}

func TestResolveSwallowsLookupFailures(t *testing.T) {
	uc := NewRoleUseCase(&fakeRoleRepo{fail: true})

	// A dead role store degrades to "no badge", never an error.
	assert.Equal(t, "", uc.Resolve(context.Background(), "alice"))
}

func TestResolveCachesResults(t *testing.T) {
	repo := &fakeRoleRepo{roles: map[string]string{"alice": entity.RoleGameDev}}
	uc := NewRoleUseCase(repo)

	uc.Resolve(context.Background(), "alice")
	uc.Resolve(context.Background(), "alice")
	uc.Resolve(context.Background(), "alice")
	assert.Equal(t, 1, repo.calls)

	// Misses are cached too.
	uc.Resolve(context.Background(), "nobody")
	uc.Resolve(context.Background(), "nobody")
	assert.Equal(t, 2, repo.calls)
}

func TestResolveManyDeduplicates(t *testing.T) {
	repo := &fakeRoleRepo{roles: map[string]string{
		"alice": entity.RoleWebDev,
		"bob":   entity.RoleGameDev,
	}}
	uc := NewRoleUseCase(repo)

	roles := uc.ResolveMany(context.Background(), []string{"alice", "bob", "alice", "", "bob", "carol"})

	assert.Equal(t, 3, repo.calls)
	assert.Equal(t, map[string]string{
		"alice": entity.RoleWebDev,
		"bob":   entity.RoleGameDev,
		"carol": "",
	}, roles)
}

func TestBadgeLabels(t *testing.T) {
	assert.Equal(t, "Web Dev", entity.BadgeLabel(entity.RoleWebDev))
	assert.Equal(t, "Game Dev", entity.BadgeLabel(entity.RoleGameDev))
	assert.Equal(t, "", entity.BadgeLabel(entity.RoleAdmin))
	assert.Equal(t, "", entity.BadgeLabel(""))
	assert.Equal(t, "", entity.BadgeLabel("moderator"))
}
