package usecase

import (
	"context"

	"unisell/internal/domain/entity"
	"unisell/internal/domain/repository"
	"unisell/internal/domain/service"
	"unisell/pkg/errors"
	"unisell/pkg/ids"
	"unisell/pkg/validation"
)

type UserUseCase struct {
	userRepo       repository.UserRepository
	universityRepo repository.UniversityRepository
	itemRepo       repository.ItemRepository
	hasher         service.PasswordHasher
}

func NewUserUseCase(
	userRepo repository.UserRepository,
	universityRepo repository.UniversityRepository,
	itemRepo repository.ItemRepository,
	hasher service.PasswordHasher,
) *UserUseCase {
	return &UserUseCase{
		userRepo:       userRepo,
		universityRepo: universityRepo,
		itemRepo:       itemRepo,
		hasher:         hasher,
	}
}

type CreateUserInput struct {
	UniversityID         string
	Username             string
	Password             string
	PasswordConfirmation string
	Name                 string
	Email                string
	ImageURL             string
	Bio                  string
}

type UpdateProfileInput struct {
	Username string
	Name     string
	Email    string
	ImageURL string
	Bio      string
}

// Create registers a user and returns the new user id. The password hash never
// leaves this method.
func (uc *UserUseCase) Create(ctx context.Context, input CreateUserInput) (string, error) {
	universityID, err := ids.Parse("universityId", input.UniversityID)
	if err != nil {
		return "", err
	}
	username, err := validation.Username(input.Username)
	if err != nil {
		return "", err
	}
	password, err := validation.Password("password", input.Password)
	if err != nil {
		return "", err
	}
	if err := validation.PasswordConfirmation(password, input.PasswordConfirmation); err != nil {
		return "", err
	}
	name, err := validation.String("name", input.Name)
	if err != nil {
		return "", err
	}
	email, err := validation.Email(input.Email)
	if err != nil {
		return "", err
	}
	bio, err := validation.String("bio", input.Bio)
	if err != nil {
		return "", err
	}

	university, err := uc.university(ctx, universityID)
	if err != nil {
		return "", err
	}
	if validation.EmailDomain(email) != university.EmailDomain {
		return "", errors.DomainMismatch()
	}
	if err := uc.ensureUsernameFree(ctx, username); err != nil {
		return "", err
	}

	hash, err := uc.hasher.Hash(password)
	if err != nil {
		return "", errors.Internal("failed to hash password", err)
	}

	user := &entity.User{
		ID:              ids.New(),
		UniversityID:    university.ID,
		Username:        username,
		PasswordHash:    hash,
		Name:            name,
		Email:           email,
		ProfileImageURL: validation.OptionalImageURL(input.ImageURL, ""),
		Bio:             bio,
		IsSuperAdmin:    false,
		Ratings:         []entity.Rating{},
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return "", err
	}
	return user.ID, nil
}

// Authenticate checks credentials against the stored hash. Every failure,
// including a hasher error, is reported as UNAUTHORIZED.
func (uc *UserUseCase) Authenticate(ctx context.Context, universityID, username, password string) (*entity.User, error) {
	universityID, err := ids.Parse("universityId", universityID)
	if err != nil {
		return nil, err
	}
	username, err = validation.String("username", username)
	if err != nil {
		return nil, err
	}
	if password == "" {
		return nil, errors.Validation("password", "password is empty")
	}

	university, err := uc.university(ctx, universityID)
	if err != nil {
		return nil, err
	}
	user, err := uc.userRepo.GetByUsername(ctx, normalizeUsername(username))
	if err != nil {
		if errors.Is(err, errors.CodeNotFound) {
			return nil, errors.Unauthorized("Either the username or password is invalid", nil)
		}
		return nil, err
	}
	if validation.EmailDomain(user.Email) != university.EmailDomain {
		return nil, errors.Unauthorized("User does not belong to that university", nil)
	}

	ok, err := uc.hasher.Compare(password, user.PasswordHash)
	if err != nil {
		return nil, errors.Unauthorized("Either the username or password is invalid", err)
	}
	if !ok {
		return nil, errors.Unauthorized("Either the username or password is invalid", nil)
	}
	return user, nil
}

func (uc *UserUseCase) GetByID(ctx context.Context, id string) (*entity.User, error) {
	id, err := ids.Parse("userId", id)
	if err != nil {
		return nil, err
	}
	return uc.userRepo.GetByID(ctx, id)
}

func (uc *UserUseCase) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	username, err := validation.String("username", username)
	if err != nil {
		return nil, err
	}
	return uc.userRepo.GetByUsername(ctx, normalizeUsername(username))
}

// UpdateProfile replaces the profile of currentUsername. The image URL is best
// effort: an invalid or empty value keeps the stored image.
func (uc *UserUseCase) UpdateProfile(ctx context.Context, currentUsername string, input UpdateProfileInput) (*entity.User, error) {
	username, err := validation.Username(input.Username)
	if err != nil {
		return nil, err
	}
	name, err := validation.String("name", input.Name)
	if err != nil {
		return nil, err
	}
	email, err := validation.Email(input.Email)
	if err != nil {
		return nil, err
	}
	bio, err := validation.String("bio", input.Bio)
	if err != nil {
		return nil, err
	}

	user, err := uc.GetByUsername(ctx, currentUsername)
	if err != nil {
		return nil, err
	}
	if username != user.Username {
		if err := uc.ensureUsernameFree(ctx, username); err != nil {
			return nil, err
		}
	}
	university, err := uc.university(ctx, user.UniversityID)
	if err != nil {
		return nil, err
	}
	if validation.EmailDomain(email) != university.EmailDomain {
		return nil, errors.DomainMismatch()
	}

	update := repository.ProfileUpdate{
		Username:        username,
		Name:            name,
		Email:           email,
		ProfileImageURL: validation.OptionalImageURL(input.ImageURL, user.ProfileImageURL),
		Bio:             bio,
	}
	if err := uc.userRepo.UpdateProfile(ctx, user.ID, update); err != nil {
		return nil, err
	}

	user.Username = update.Username
	user.Name = update.Name
	user.Email = update.Email
	user.ProfileImageURL = update.ProfileImageURL
	user.Bio = update.Bio
	return user, nil
}

func (uc *UserUseCase) UpdatePassword(ctx context.Context, username, currentPassword, newPassword, confirmation string) error {
	if currentPassword == "" {
		return errors.Validation("currentPassword", "currentPassword is empty")
	}
	newPassword, err := validation.Password("newPassword", newPassword)
	if err != nil {
		return err
	}
	if err := validation.PasswordConfirmation(newPassword, confirmation); err != nil {
		return err
	}

	user, err := uc.GetByUsername(ctx, username)
	if err != nil {
		return err
	}
	ok, err := uc.hasher.Compare(currentPassword, user.PasswordHash)
	if err != nil {
		return errors.Unauthorized("Current password is invalid", err)
	}
	if !ok {
		return errors.Unauthorized("Current password is invalid", nil)
	}

	hash, err := uc.hasher.Hash(newPassword)
	if err != nil {
		return errors.Internal("failed to hash password", err)
	}
	return uc.userRepo.UpdatePasswordHash(ctx, user.ID, hash)
}

func (uc *UserUseCase) MakeSuperAdmin(ctx context.Context, username string) error {
	user, err := uc.GetByUsername(ctx, username)
	if err != nil {
		return err
	}
	return uc.userRepo.SetSuperAdmin(ctx, user.ID, true)
}

// HasAcceptedBids lists the unsold items on which userID holds an accepted bid.
func (uc *UserUseCase) HasAcceptedBids(ctx context.Context, userID string) (entity.PendingRatings, error) {
	userID, err := ids.Parse("userId", userID)
	if err != nil {
		return entity.PendingRatings{}, err
	}
	unsold := false
	items, err := uc.itemRepo.List(ctx, repository.ItemFilter{Sold: &unsold, AcceptedBidderID: userID})
	if err != nil {
		return entity.PendingRatings{}, err
	}

	pending := entity.PendingRatings{Items: []entity.AcceptedBidRecord{}}
	for _, item := range items {
		for _, bid := range item.Bids {
			if !bid.Accepted || bid.BidderUserID != userID {
				continue
			}
			owner, err := uc.userRepo.GetByID(ctx, item.OwnerUserID)
			if err != nil {
				return entity.PendingRatings{}, err
			}
			pending.Items = append(pending.Items, acceptedBidRecord(item, owner, bid))
		}
	}
	return pending, nil
}

func (uc *UserUseCase) university(ctx context.Context, id string) (*entity.University, error) {
	university, err := uc.universityRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, errors.CodeNotFound) {
			return nil, errors.NotFoundMessage("University does not exist!")
		}
		return nil, err
	}
	return university, nil
}

func (uc *UserUseCase) ensureUsernameFree(ctx context.Context, username string) error {
	_, err := uc.userRepo.GetByUsername(ctx, username)
	switch {
	case err == nil:
		return errors.DuplicateUsername()
	case errors.Is(err, errors.CodeNotFound):
		return nil
	default:
		return err
	}
}

func acceptedBidRecord(item *entity.Item, owner *entity.User, bid entity.Bid) entity.AcceptedBidRecord {
	return entity.AcceptedBidRecord{
		ItemID:             item.ID,
		ItemTitle:          item.Title,
		OwnerUsername:      owner.Username,
		OwnerEmail:         owner.Email,
		UserGettingRatedID: owner.ID,
		UserGivingRatingID: bid.BidderUserID,
		Price:              bid.Price,
	}
}
