package usecase

import (
	"context"
	"sync"

	"sunstone/internal/domain/repository"
	"sunstone/pkg/errors"
	"sunstone/pkg/logger"
)

// RoleUseCase resolves cosmetic role tags. Lookups are attempt-once and any
// failure degrades to "no role"; a missing badge is never worth an error.
type RoleUseCase struct {
	roleRepo repository.RoleRepository

	mu    sync.RWMutex
	cache map[string]string
}

func NewRoleUseCase(roleRepo repository.RoleRepository) *RoleUseCase {
	return &RoleUseCase{
		roleRepo: roleRepo,
		cache:    make(map[string]string),
	}
}

// Resolve returns the role tag for a uid, or "" when the record is missing
// or the lookup fails.
func (uc *RoleUseCase) Resolve(ctx context.Context, uid string) string {
	if uid == "" {
		return ""
	}

	uc.mu.RLock()
	role, cached := uc.cache[uid]
	uc.mu.RUnlock()
	if cached {
		return role
	}

	record, err := uc.roleRepo.GetByUID(ctx, uid)
	if err != nil {
		if !errors.Is(err, "NOT_FOUND") {
			logger.Debug("Role lookup failed for %s: %v", uid, err)
		}
		role = ""
	} else {
		role = record.Role
	}

	uc.mu.Lock()
	uc.cache[uid] = role
	uc.mu.Unlock()

	return role
}

// ResolveMany resolves the distinct uids in one pass and returns a
// uid→role map. Cached entries are not re-fetched.
func (uc *RoleUseCase) ResolveMany(ctx context.Context, uids []string) map[string]string {
	roles := make(map[string]string, len(uids))
	seen := make(map[string]bool, len(uids))

	for _, uid := range uids {
		if uid == "" || seen[uid] {
			continue
		}
		seen[uid] = true
		roles[uid] = uc.Resolve(ctx, uid)
	}

	return roles
}
