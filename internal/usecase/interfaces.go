package usecase

import (
	"context"

	"sunstone/internal/domain/entity"
)

// FirebaseAuthClient is the slice of the Firebase Auth admin client the use
// cases need.
type FirebaseAuthClient interface {
	VerifyToken(ctx context.Context, token string) (string, error)
	GetIdentity(ctx context.Context, uid string) (*entity.Identity, error)
	GenerateToken(ctx context.Context, uid string) (string, error)
}
