package repository

import (
	"context"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"unisell/internal/domain/entity"
	"unisell/internal/domain/repository"
	"unisell/pkg/errors"
)

const usersCollection = "users"

type firestoreUserRepository struct {
	client *firestore.Client
}

func NewFirestoreUserRepository(client *firestore.Client) repository.UserRepository {
	return &firestoreUserRepository{
		client: client,
	}
}

func (r *firestoreUserRepository) Create(ctx context.Context, user *entity.User) error {
	if user.Ratings == nil {
		user.Ratings = []entity.Rating{}
	}
	_, err := r.client.Collection(usersCollection).Doc(user.ID).Create(ctx, user)
	if err != nil {
		return errors.Persistence("could not add user", err)
	}
	return nil
}

func (r *firestoreUserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	doc, err := r.client.Collection(usersCollection).Doc(id).Get(ctx)
	if err != nil {
		return nil, getErr("User", err)
	}

	var user entity.User
	if err := doc.DataTo(&user); err != nil {
		return nil, errors.Persistence("failed to decode user", err)
	}
	return &user, nil
}

func (r *firestoreUserRepository) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	iter := r.client.Collection(usersCollection).Where("username", "==", username).Limit(1).Documents(ctx)
	defer iter.Stop()

	doc, err := iter.Next()
	if err == iterator.Done {
		return nil, errors.NotFound("User", nil)
	}
	if err != nil {
		return nil, errors.Persistence("failed to find user", err)
	}

	var user entity.User
	if err := doc.DataTo(&user); err != nil {
		return nil, errors.Persistence("failed to decode user", err)
	}
	return &user, nil
}

func (r *firestoreUserRepository) UpdateProfile(ctx context.Context, id string, update repository.ProfileUpdate) error {
	_, err := r.client.Collection(usersCollection).Doc(id).Update(ctx, []firestore.Update{
		{Path: "username", Value: update.Username},
		{Path: "name", Value: update.Name},
		{Path: "email", Value: update.Email},
		{Path: "profileImageUrl", Value: update.ProfileImageURL},
		{Path: "bio", Value: update.Bio},
	})
	return updateErr("update user", err)
}

func (r *firestoreUserRepository) UpdatePasswordHash(ctx context.Context, id, hash string) error {
	_, err := r.client.Collection(usersCollection).Doc(id).Update(ctx, []firestore.Update{
		{Path: "passwordHash", Value: hash},
	})
	return updateErr("update password", err)
}

func (r *firestoreUserRepository) SetSuperAdmin(ctx context.Context, id string, isSuperAdmin bool) error {
	_, err := r.client.Collection(usersCollection).Doc(id).Update(ctx, []firestore.Update{
		{Path: "isSuperAdmin", Value: isSuperAdmin},
	})
	return updateErr("update super admin flag", err)
}

func (r *firestoreUserRepository) AppendRating(ctx context.Context, userID string, rating entity.Rating) error {
	_, err := r.client.Collection(usersCollection).Doc(userID).Update(ctx, []firestore.Update{
		{Path: "ratings", Value: firestore.ArrayUnion(rating)},
	})
	return updateErr("add rating", err)
}
