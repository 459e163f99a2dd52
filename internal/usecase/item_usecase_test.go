package usecase

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"unisell/internal/domain/entity"
	"unisell/pkg/errors"
)

type ItemUseCaseSuite struct {
	marketSuite
	stevens *entity.University
	fit     *entity.University
	seller  *entity.User
	buyer   *entity.User
}

func TestItemUseCaseSuite(t *testing.T) {
	suite.Run(t, new(ItemUseCaseSuite))
}

func (s *ItemUseCaseSuite) SetupTest() {
	s.marketSuite.SetupTest()
	s.stevens = s.university("Stevens Institute", "stevens.edu")
	s.fit = s.university("FIT", "fit.edu")
	s.seller = s.user(s.stevens, "seller")
	s.buyer = s.user(s.stevens, "buyer")
}

func (s *ItemUseCaseSuite) TestCreateThenGetRoundTrips() {
	created, err := s.items.Create(s.ctx, CreateItemInput{
		Title:        " Calculus textbook ",
		Description:  "Stewart, 8th edition",
		Keywords:     " books, math ,calculus",
		Price:        " 25 ",
		Username:     "Seller",
		PickUpMethod: "library",
	})
	s.Require().NoError(err)

	got, err := s.items.GetByID(s.ctx, created.ID)
	s.Require().NoError(err)
	s.Equal("Calculus textbook", got.Title)
	s.Equal("Stewart, 8th edition", got.Description)
	s.Equal([]string{"books", "math", "calculus"}, got.Keywords)
	s.Equal("25", got.Price)
	s.Equal("library", got.PickUpMethod)
	s.Equal(s.seller.ID, got.OwnerUserID)
	s.Equal(s.stevens.ID, got.UniversityID)
	s.False(got.Sold)
	s.Empty(got.Photos)
	s.Empty(got.Bids)
	s.Empty(got.Comments)
}

func (s *ItemUseCaseSuite) TestCreateWithPhotosAndErrors() {
	item, err := s.items.Create(s.ctx, CreateItemInput{
		Title: "Lamp", Description: "d", Keywords: "lamp", Price: "0", Username: "seller", PickUpMethod: "p",
		Photos: []PhotoInput{{Description: "front", ImageURL: "https://img.stevens.edu/1.jpg"}},
	})
	s.Require().NoError(err)
	s.Require().Len(item.Photos, 1)
	s.Equal("https://img.stevens.edu/1.jpg", item.DisplayImageURL())

	_, err = s.items.Create(s.ctx, CreateItemInput{
		Title: "Lamp", Description: "d", Keywords: "lamp", Price: "-5", Username: "seller", PickUpMethod: "p",
	})
	s.True(errors.Is(err, errors.CodeInvalidPrice))

	_, err = s.items.Create(s.ctx, CreateItemInput{
		Title: "Lamp", Description: "d", Keywords: "lamp", Price: "ten", Username: "seller", PickUpMethod: "p",
	})
	s.True(errors.Is(err, errors.CodeInvalidPrice))

	_, err = s.items.Create(s.ctx, CreateItemInput{
		Title: "Lamp", Description: "d", Keywords: "lamp,,", Price: "1", Username: "seller", PickUpMethod: "p",
	})
	s.True(errors.Is(err, errors.CodeValidation))

	_, err = s.items.Create(s.ctx, CreateItemInput{
		Title: "Lamp", Description: "d", Keywords: "lamp", Price: "1", Username: "ghost", PickUpMethod: "p",
	})
	s.True(errors.Is(err, errors.CodeNotFound))
}

func (s *ItemUseCaseSuite) TestListByUniversityHidesSoldAndForeignItems() {
	desk := s.item(s.seller, "Desk", "furniture")
	sold := s.item(s.seller, "Chair", "furniture")
	foreign := s.user(s.fit, "fitstudent")
	s.item(foreign, "Bike", "furniture")

	_, err := s.items.Update(s.ctx, sold.ID, UpdateItemInput{
		Title: "Chair", Description: "d", Keywords: "furniture", Price: "5", PickUpMethod: "p", Sold: "true",
	})
	s.Require().NoError(err)

	list, err := s.items.ListByUniversity(s.ctx, s.stevens.ID)
	s.Require().NoError(err)
	s.Require().Len(list, 1)
	s.Equal(desk.ID, list[0].ID)
	s.Equal(entity.NoImageURL, list[0].ImageURL)
	for _, summary := range list {
		s.False(summary.Sold)
		s.Equal(s.stevens.ID, summary.UniversityID)
	}
}

func (s *ItemUseCaseSuite) TestKeywordSearchIsExactToken() {
	books := s.item(s.seller, "Books", "books,math")
	s.item(s.seller, "Notebook", "notebooks")

	list, err := s.items.ListByUniversityAndKeyword(s.ctx, s.stevens.ID, "books")
	s.Require().NoError(err)
	s.Require().Len(list, 1)
	s.Equal(books.ID, list[0].ID)

	list, err = s.items.ListByUniversityAndKeyword(s.ctx, s.stevens.ID, "book")
	s.Require().NoError(err)
	s.Empty(list)

	_, err = s.items.ListByUniversityAndKeyword(s.ctx, s.stevens.ID, "  ")
	s.True(errors.Is(err, errors.CodeValidation))
}

func (s *ItemUseCaseSuite) TestUpdateReplacesFields() {
	item := s.item(s.seller, "Desk", "furniture")

	updated, err := s.items.Update(s.ctx, item.ID, UpdateItemInput{
		Title:        "Standing desk",
		Description:  "Adjustable",
		Keywords:     "desk, office",
		Price:        "120",
		PickUpMethod: "dorm lobby",
		Sold:         "false",
	})
	s.Require().NoError(err)
	s.Equal("Standing desk", updated.Title)
	s.Equal([]string{"desk", "office"}, updated.Keywords)
	s.Equal("120", updated.Price)
	s.Equal(s.seller.ID, updated.OwnerUserID)
	s.Equal(s.stevens.ID, updated.UniversityID)

	_, err = s.items.Update(s.ctx, item.ID, UpdateItemInput{
		Title: "t", Description: "d", Keywords: "k", Price: "1", PickUpMethod: "p", Sold: "yes",
	})
	s.True(errors.Is(err, errors.CodeInvalidSoldValue))
}

func (s *ItemUseCaseSuite) TestVisibility() {
	item := s.item(s.seller, "Desk", "furniture")
	outsider := s.user(s.fit, "outsider")

	got, err := s.items.GetVisibleItem(s.ctx, item.ID, s.buyer)
	s.Require().NoError(err)
	s.Equal(item.ID, got.ID)

	_, err = s.items.GetVisibleItem(s.ctx, item.ID, outsider)
	s.True(errors.Is(err, errors.CodeForbidden))
}

func (s *ItemUseCaseSuite) TestComments() {
	item := s.item(s.seller, "Desk", "furniture")

	view, err := s.items.AddComment(s.ctx, item.ID, "buyer", "  Is it still available?  ")
	s.Require().NoError(err)
	s.Equal("buyer", view.Username)
	s.Equal(entity.BlankProfileURL, view.Photo)
	s.Equal("Is it still available?", view.Text)

	_, err = s.items.AddComment(s.ctx, item.ID, "seller", "Yes")
	s.Require().NoError(err)

	comments, err := s.items.ListComments(s.ctx, item.ID)
	s.Require().NoError(err)
	s.Require().Len(comments, 2)
	s.Equal("buyer", comments[0].Username)
	s.Equal("seller", comments[1].Username)

	_, err = s.items.AddComment(s.ctx, "64b7f0c2a1b2c3d4e5f60718", "buyer", "hi")
	s.True(errors.Is(err, errors.CodePersistence))
}

func (s *ItemUseCaseSuite) TestPhotos() {
	item := s.item(s.seller, "Desk", "furniture")

	first, err := s.items.AddPhoto(s.ctx, item.ID, PhotoInput{Description: "front", ImageURL: "https://img.edu/1.jpg"})
	s.Require().NoError(err)
	second, err := s.items.AddPhoto(s.ctx, item.ID, PhotoInput{Description: "side", ImageURL: "https://img.edu/2.jpg"})
	s.Require().NoError(err)

	photos, err := s.items.ListPhotos(s.ctx, item.ID)
	s.Require().NoError(err)
	s.Equal([]entity.Photo{first, second}, photos)

	edited, err := s.items.EditPhoto(s.ctx, item.ID, second.ID, PhotoInput{Description: "back", ImageURL: "https://img.edu/3.jpg"})
	s.Require().NoError(err)
	s.Equal(second.ID, edited.ID)

	got, err := s.items.GetPhoto(s.ctx, item.ID, second.ID)
	s.Require().NoError(err)
	s.Equal("back", got.Description)

	list, err := s.items.ListByUniversity(s.ctx, s.stevens.ID)
	s.Require().NoError(err)
	s.Equal("https://img.edu/1.jpg", list[0].ImageURL)

	_, err = s.items.GetPhoto(s.ctx, item.ID, "64b7f0c2a1b2c3d4e5f60718")
	s.True(errors.Is(err, errors.CodeNotFound))

	_, err = s.items.EditPhoto(s.ctx, item.ID, "64b7f0c2a1b2c3d4e5f60718", PhotoInput{Description: "x", ImageURL: "/x.jpg"})
	s.True(errors.Is(err, errors.CodeNotFound))

	_, err = s.items.AddPhoto(s.ctx, item.ID, PhotoInput{Description: "bad", ImageURL: "nope nope"})
	s.True(errors.Is(err, errors.CodeValidation))
}
