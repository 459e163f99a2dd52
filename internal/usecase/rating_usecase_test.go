package usecase

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"unisell/internal/domain/entity"
	"unisell/pkg/errors"
)

type RatingUseCaseSuite struct {
	marketSuite
	rater *entity.User
	ratee *entity.User
}

func TestRatingUseCaseSuite(t *testing.T) {
	suite.Run(t, new(RatingUseCaseSuite))
}

func (s *RatingUseCaseSuite) SetupTest() {
	s.marketSuite.SetupTest()
	stevens := s.university("Stevens Institute", "stevens.edu")
	s.rater = s.user(stevens, "rater")
	s.ratee = s.user(stevens, "ratee")
}

func (s *RatingUseCaseSuite) rate(values ...int) {
	for _, v := range values {
		_, err := s.ratings.CreateRating(s.ctx, s.rater.ID, s.ratee.ID, v)
		s.Require().NoError(err)
	}
}

func (s *RatingUseCaseSuite) average() float64 {
	avg, err := s.ratings.AverageRating(s.ctx, s.ratee.ID)
	s.Require().NoError(err)
	return avg
}

func (s *RatingUseCaseSuite) TestAverageWithoutRatings() {
	s.Equal(float64(0), s.average())
}

func (s *RatingUseCaseSuite) TestAverageOfWholeNumbers() {
	s.rate(4, 5, 3)
	s.Equal(float64(4), s.average())
}

func (s *RatingUseCaseSuite) TestAverageOfEqualRatings() {
	s.rate(5, 5)
	s.Equal(float64(5), s.average())
}

func (s *RatingUseCaseSuite) TestAverageRoundsToOneDecimal() {
	s.rate(5, 4, 4)
	s.Equal(4.3, s.average())
}

func (s *RatingUseCaseSuite) TestRatingsAreVisibleImmediately() {
	s.rate(2)
	s.Equal(float64(2), s.average())
	s.rate(4)
	s.Equal(float64(3), s.average())
}

func (s *RatingUseCaseSuite) TestRejectsOutOfRange() {
	for _, v := range []int{0, 6, -1} {
		_, err := s.ratings.CreateRating(s.ctx, s.rater.ID, s.ratee.ID, v)
		s.True(errors.Is(err, errors.CodeValidation), v)
	}
	s.Equal(float64(0), s.average())
}

func (s *RatingUseCaseSuite) TestUnknownRatee() {
	_, err := s.ratings.CreateRating(s.ctx, s.rater.ID, "64b7f0c2a1b2c3d4e5f60718", 3)
	s.True(errors.Is(err, errors.CodeNotFound))

	_, err = s.ratings.CreateRating(s.ctx, "bad", s.ratee.ID, 3)
	s.True(errors.Is(err, errors.CodeInvalidID))
}
