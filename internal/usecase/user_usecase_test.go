package usecase

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"unisell/internal/adapter/repository"
	"unisell/internal/domain/entity"
	"unisell/internal/domain/service/mocks"
	"unisell/pkg/errors"
)

type UserUseCaseSuite struct {
	marketSuite
	stevens *entity.University
}

func TestUserUseCaseSuite(t *testing.T) {
	suite.Run(t, new(UserUseCaseSuite))
}

func (s *UserUseCaseSuite) SetupTest() {
	s.marketSuite.SetupTest()
	s.stevens = s.university("Stevens Institute", "stevens.edu")
}

func (s *UserUseCaseSuite) input(username, email string) CreateUserInput {
	return CreateUserInput{
		UniversityID:         s.stevens.ID,
		Username:             username,
		Password:             "secret1",
		PasswordConfirmation: "secret1",
		Name:                 "Test User",
		Email:                email,
		ImageURL:             "not a url",
		Bio:                  "hello",
	}
}

func (s *UserUseCaseSuite) TestCreateStoresHashAndDefaults() {
	id, err := s.users.Create(s.ctx, s.input("JSmith", "jsmith@stevens.edu"))
	s.Require().NoError(err)

	user, err := s.users.GetByID(s.ctx, id)
	s.Require().NoError(err)
	s.Equal("jsmith", user.Username)
	s.Equal("hashed:secret1", user.PasswordHash)
	s.Equal(s.stevens.ID, user.UniversityID)
	s.False(user.IsSuperAdmin)
	s.Empty(user.Ratings)
	s.Empty(user.ProfileImageURL)
}

func (s *UserUseCaseSuite) TestCreateDomainMismatch() {
	_, err := s.users.Create(s.ctx, s.input("jsmith", "foo@bar.edu"))
	s.True(errors.Is(err, errors.CodeDomainMismatch))

	bar := s.university("Bar College", "bar.edu")
	in := s.input("jsmith", "foo@bar.edu")
	in.UniversityID = bar.ID
	_, err = s.users.Create(s.ctx, in)
	s.NoError(err)
}

func (s *UserUseCaseSuite) TestCreateDuplicateUsername() {
	s.user(s.stevens, "jsmith")

	_, err := s.users.Create(s.ctx, s.input("JSMITH", "other@stevens.edu"))
	s.True(errors.Is(err, errors.CodeDuplicateUsername))
}

func (s *UserUseCaseSuite) TestCreateValidation() {
	in := s.input("jsmith", "jsmith@stevens.edu")
	in.PasswordConfirmation = "different"
	_, err := s.users.Create(s.ctx, in)
	s.True(errors.Is(err, errors.CodeValidation))

	in = s.input("js", "jsmith@stevens.edu")
	_, err = s.users.Create(s.ctx, in)
	s.True(errors.Is(err, errors.CodeValidation))

	in = s.input("jsmith", "jsmith@stevens.edu")
	in.UniversityID = "bad"
	_, err = s.users.Create(s.ctx, in)
	s.True(errors.Is(err, errors.CodeInvalidID))
}

func (s *UserUseCaseSuite) TestAuthenticate() {
	s.user(s.stevens, "jsmith")

	user, err := s.users.Authenticate(s.ctx, s.stevens.ID, "jsmith", "secret1")
	s.Require().NoError(err)
	s.Equal("jsmith", user.Username)

	_, err = s.users.Authenticate(s.ctx, s.stevens.ID, "jsmith", "wrong!!")
	s.True(errors.Is(err, errors.CodeUnauthorized))

	_, err = s.users.Authenticate(s.ctx, s.stevens.ID, "nobody", "secret1")
	s.True(errors.Is(err, errors.CodeUnauthorized))

	fit := s.university("FIT", "fit.edu")
	_, err = s.users.Authenticate(s.ctx, fit.ID, "jsmith", "secret1")
	s.True(errors.Is(err, errors.CodeUnauthorized))
}

func (s *UserUseCaseSuite) TestUpdateProfileKeepsImageOnInvalidURL() {
	s.user(s.stevens, "jsmith")
	s.user(s.stevens, "alice")

	updated, err := s.users.UpdateProfile(s.ctx, "jsmith", UpdateProfileInput{
		Username: "jsmith",
		Name:     "John Smith",
		Email:    "john@stevens.edu",
		ImageURL: "https://cdn.stevens.edu/me.png",
		Bio:      "senior",
	})
	s.Require().NoError(err)
	s.Equal("https://cdn.stevens.edu/me.png", updated.ProfileImageURL)

	updated, err = s.users.UpdateProfile(s.ctx, "jsmith", UpdateProfileInput{
		Username: "jsmith",
		Name:     "John Smith",
		Email:    "john@stevens.edu",
		ImageURL: "::::",
		Bio:      "senior",
	})
	s.Require().NoError(err)
	s.Equal("https://cdn.stevens.edu/me.png", updated.ProfileImageURL)

	stored, err := s.users.GetByUsername(s.ctx, "jsmith")
	s.Require().NoError(err)
	s.Equal("https://cdn.stevens.edu/me.png", stored.ProfileImageURL)
	s.Equal("senior", stored.Bio)
}

func (s *UserUseCaseSuite) TestUpdateProfileChecks() {
	s.user(s.stevens, "jsmith")
	s.user(s.stevens, "alice")

	base := UpdateProfileInput{Username: "alice", Name: "J", Email: "j@stevens.edu", Bio: "b"}
	_, err := s.users.UpdateProfile(s.ctx, "jsmith", base)
	s.True(errors.Is(err, errors.CodeDuplicateUsername))

	base.Username = "johnny"
	base.Email = "j@fit.edu"
	_, err = s.users.UpdateProfile(s.ctx, "jsmith", base)
	s.True(errors.Is(err, errors.CodeDomainMismatch))

	base.Email = "j@stevens.edu"
	renamed, err := s.users.UpdateProfile(s.ctx, "jsmith", base)
	s.Require().NoError(err)
	s.Equal("johnny", renamed.Username)

	_, err = s.users.GetByUsername(s.ctx, "jsmith")
	s.True(errors.Is(err, errors.CodeNotFound))
}

func (s *UserUseCaseSuite) TestUpdatePassword() {
	s.user(s.stevens, "jsmith")

	err := s.users.UpdatePassword(s.ctx, "jsmith", "wrong!!", "newpass1", "newpass1")
	s.True(errors.Is(err, errors.CodeUnauthorized))

	err = s.users.UpdatePassword(s.ctx, "jsmith", "secret1", "newpass1", "newpass2")
	s.True(errors.Is(err, errors.CodeValidation))

	s.Require().NoError(s.users.UpdatePassword(s.ctx, "jsmith", "secret1", "newpass1", "newpass1"))
	_, err = s.users.Authenticate(s.ctx, s.stevens.ID, "jsmith", "newpass1")
	s.NoError(err)
}

func (s *UserUseCaseSuite) TestMakeSuperAdmin() {
	s.user(s.stevens, "jsmith")
	s.Require().NoError(s.users.MakeSuperAdmin(s.ctx, "jsmith"))

	user, err := s.users.GetByUsername(s.ctx, "jsmith")
	s.Require().NoError(err)
	s.True(user.IsSuperAdmin)
}

func (s *UserUseCaseSuite) TestHasAcceptedBids() {
	seller := s.user(s.stevens, "seller")
	buyer := s.user(s.stevens, "buyer")
	item := s.item(seller, "Desk", "furniture")
	sold := s.item(seller, "Chair", "furniture")

	pending, err := s.users.HasAcceptedBids(s.ctx, buyer.ID)
	s.Require().NoError(err)
	s.False(pending.Any())

	bidID := s.bid(item, buyer, 30)
	s.bid(item, seller, 10)
	s.Require().NoError(s.bids.AcceptBid(s.ctx, item.ID, bidID))

	soldBid := s.bid(sold, buyer, 20)
	s.Require().NoError(s.bids.AcceptBid(s.ctx, sold.ID, soldBid))
	_, err = s.items.Update(s.ctx, sold.ID, UpdateItemInput{
		Title: "Chair", Description: "d", Keywords: "furniture", Price: "40", PickUpMethod: "p", Sold: "true",
	})
	s.Require().NoError(err)

	pending, err = s.users.HasAcceptedBids(s.ctx, buyer.ID)
	s.Require().NoError(err)
	s.Require().Len(pending.Items, 1)
	s.Equal(item.ID, pending.Items[0].ItemID)
	s.Equal(seller.ID, pending.Items[0].UserGettingRatedID)
	s.Equal(buyer.ID, pending.Items[0].UserGivingRatingID)
	s.Equal(30, pending.Items[0].Price)

	pending, err = s.users.HasAcceptedBids(s.ctx, seller.ID)
	s.Require().NoError(err)
	s.False(pending.Any())
}

func TestAuthenticateWrapsHasherFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	hasher := mocks.NewMockPasswordHasher(ctrl)
	ctx := context.Background()
	store := repository.NewMemoryStore()
	uc := NewUserUseCase(store.Users(), store.Universities(), store.Items(), hasher)

	university := &entity.University{ID: "64b7f0c2a1b2c3d4e5f60718", Name: "Stevens", EmailDomain: "stevens.edu"}
	require.NoError(t, store.Universities().Create(ctx, university))

	hasher.EXPECT().Hash("secret1").Return("digest", nil)
	_, err := uc.Create(ctx, CreateUserInput{
		UniversityID: university.ID, Username: "jsmith", Password: "secret1", PasswordConfirmation: "secret1",
		Name: "J", Email: "j@stevens.edu", Bio: "b",
	})
	require.NoError(t, err)

	cause := stderrors.New("bcrypt: hashedSecret too short")
	hasher.EXPECT().Compare("secret1", "digest").Return(false, cause)

	_, err = uc.Authenticate(ctx, university.ID, "jsmith", "secret1")
	assert.True(t, errors.Is(err, errors.CodeUnauthorized))
	assert.ErrorIs(t, err, cause)
}

func TestCreateNeverHashesWhenValidationFails(t *testing.T) {
	ctrl := gomock.NewController(t)
	hasher := mocks.NewMockPasswordHasher(ctrl)
	store := repository.NewMemoryStore()
	uc := NewUserUseCase(store.Users(), store.Universities(), store.Items(), hasher)

	hasher.EXPECT().Hash(gomock.Any()).Times(0)

	_, err := uc.Create(context.Background(), CreateUserInput{
		UniversityID: "64b7f0c2a1b2c3d4e5f60718", Username: "jsmith", Password: "secret1", PasswordConfirmation: "secret1",
		Name: "J", Email: "j@stevens.edu", Bio: "b",
	})
	assert.True(t, errors.Is(err, errors.CodeNotFound))
}
