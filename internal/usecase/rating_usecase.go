package usecase

import (
	"context"

	"unisell/internal/domain/entity"
	"unisell/internal/domain/repository"
	"unisell/pkg/ids"
	"unisell/pkg/validation"
)

// RatingUseCase appends ratings and aggregates them. Whether a rater may rate a
// ratee is decided by the caller through BidUseCase.HasAcceptedBidFor.
type RatingUseCase struct {
	userRepo repository.UserRepository
}

func NewRatingUseCase(userRepo repository.UserRepository) *RatingUseCase {
	return &RatingUseCase{
		userRepo: userRepo,
	}
}

func (uc *RatingUseCase) AverageRating(ctx context.Context, userID string) (float64, error) {
	userID, err := ids.Parse("userId", userID)
	if err != nil {
		return 0, err
	}
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return 0, err
	}
	return user.AverageRating(), nil
}

func (uc *RatingUseCase) CreateRating(ctx context.Context, raterID, rateeID string, value int) (entity.Rating, error) {
	raterID, err := ids.Parse("raterId", raterID)
	if err != nil {
		return entity.Rating{}, err
	}
	rateeID, err = ids.Parse("rateeId", rateeID)
	if err != nil {
		return entity.Rating{}, err
	}
	if err := validation.RatingValue(value); err != nil {
		return entity.Rating{}, err
	}

	if _, err := uc.userRepo.GetByID(ctx, rateeID); err != nil {
		return entity.Rating{}, err
	}
	rating := entity.Rating{ID: ids.New(), RaterUserID: raterID, Value: value}
	if err := uc.userRepo.AppendRating(ctx, rateeID, rating); err != nil {
		return entity.Rating{}, err
	}
	return rating, nil
}
