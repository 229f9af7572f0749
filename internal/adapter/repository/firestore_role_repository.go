package repository

import (
	"context"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"sunstone/internal/domain/entity"
	"sunstone/internal/domain/repository"
	"sunstone/pkg/errors"
)

type firestoreRoleRepository struct {
	client *firestore.Client
}

func NewFirestoreRoleRepository(client *firestore.Client) repository.RoleRepository {
	return &firestoreRoleRepository{
		client: client,
	}
}

func (r *firestoreRoleRepository) GetByUID(ctx context.Context, uid string) (*entity.UserRole, error) {
	doc, err := r.client.Collection("user-role").Doc(uid).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("User role", err)
		}
		return nil, errors.Internal("Failed to get user role", err)
	}

	var role entity.UserRole
	if err := doc.DataTo(&role); err != nil {
		return nil, errors.Internal("Failed to parse user role data", err)
	}
	role.UID = doc.Ref.ID

	return &role, nil
}
