package repository

import (
	"context"

	"unisell/internal/domain/entity"
)

// ProfileUpdate is the set of profile fields replaced by UserRepository.UpdateProfile.
type ProfileUpdate struct {
	Username        string
	Name            string
	Email           string
	ProfileImageURL string
	Bio             string
}

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	// GetByUsername returns a NOT_FOUND error when no user has the name.
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	UpdateProfile(ctx context.Context, id string, update ProfileUpdate) error
	UpdatePasswordHash(ctx context.Context, id, hash string) error
	SetSuperAdmin(ctx context.Context, id string, isSuperAdmin bool) error
	AppendRating(ctx context.Context, userID string, rating entity.Rating) error
}
