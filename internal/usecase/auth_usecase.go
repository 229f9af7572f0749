package usecase

import (
	"context"

	"sunstone/internal/domain/entity"
	"sunstone/pkg/errors"
)

// AuthUseCase exposes the signed-in identity to the site. Sign-in itself is
// the browser's popup flow against Firebase; this side only verifies tokens
// and describes who they belong to.
type AuthUseCase struct {
	firebaseAuth FirebaseAuthClient
	roleUseCase  *RoleUseCase
}

func NewAuthUseCase(firebaseAuth FirebaseAuthClient, roleUseCase *RoleUseCase) *AuthUseCase {
	return &AuthUseCase{
		firebaseAuth: firebaseAuth,
		roleUseCase:  roleUseCase,
	}
}

type Me struct {
	UID         string `json:"uid"`
	DisplayName string `json:"display_name"`
	PhotoURL    string `json:"photo_url"`
	Role        string `json:"role,omitempty"`
	Badge       string `json:"badge,omitempty"`
}

func (uc *AuthUseCase) CurrentUser(ctx context.Context, uid string) (*Me, error) {
	identity, err := uc.firebaseAuth.GetIdentity(ctx, uid)
	if err != nil {
		return nil, errors.Internal("Failed to resolve identity", err)
	}

	role := uc.roleUseCase.Resolve(ctx, uid)

	return &Me{
		UID:         identity.UID,
		DisplayName: identity.DisplayName,
		PhotoURL:    identity.PhotoURL,
		Role:        role,
		Badge:       entity.BadgeLabel(role),
	}, nil
}

// DevToken mints a custom token for local testing, where the sign-in popup
// is unavailable.
func (uc *AuthUseCase) DevToken(ctx context.Context, uid string) (string, error) {
	if uid == "" {
		return "", errors.BadRequest("uid is required", nil)
	}

	token, err := uc.firebaseAuth.GenerateToken(ctx, uid)
	if err != nil {
		return "", errors.Internal("Failed to generate token", err)
	}

	return token, nil
}
