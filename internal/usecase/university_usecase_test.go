package usecase

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"unisell/pkg/errors"
)

type UniversityUseCaseSuite struct {
	marketSuite
}

func TestUniversityUseCaseSuite(t *testing.T) {
	suite.Run(t, new(UniversityUseCaseSuite))
}

func (s *UniversityUseCaseSuite) TestCreateNormalizesDomain() {
	u, err := s.universities.Create(s.ctx, "  Stevens Institute ", " Stevens.EDU ")
	s.Require().NoError(err)
	s.Equal("Stevens Institute", u.Name)
	s.Equal("stevens.edu", u.EmailDomain)

	got, err := s.universities.GetByID(s.ctx, u.ID)
	s.Require().NoError(err)
	s.Equal(u, got)
}

func (s *UniversityUseCaseSuite) TestCreateRejectsInvalidDomain() {
	_, err := s.universities.Create(s.ctx, "Acme", "acme.com")
	s.True(errors.Is(err, errors.CodeInvalidDomain))
}

func (s *UniversityUseCaseSuite) TestDuplicateDomainIsCaseInsensitive() {
	s.university("Stevens Institute", "stevens.edu")

	_, err := s.universities.Create(s.ctx, "Other School", "STEVENS.edu")
	s.True(errors.Is(err, errors.CodeDuplicateUniversity))

	_, err = s.universities.Create(s.ctx, "Stevens Institute", "other.edu")
	s.True(errors.Is(err, errors.CodeDuplicateUniversity))
}

func (s *UniversityUseCaseSuite) TestUpdateExcludesSelfFromUniqueness() {
	stevens := s.university("Stevens Institute", "stevens.edu")
	s.university("FIT", "fit.edu")

	updated, err := s.universities.Update(s.ctx, stevens.ID, "Stevens Institute", "stevens.edu")
	s.Require().NoError(err)
	s.Equal(stevens.Name, updated.Name)

	_, err = s.universities.Update(s.ctx, stevens.ID, "FIT", "stevens.edu")
	s.True(errors.Is(err, errors.CodeDuplicateUniversity))

	renamed, err := s.universities.Update(s.ctx, stevens.ID, "Stevens Institute of Technology", "stevens.edu")
	s.Require().NoError(err)
	s.Equal("Stevens Institute of Technology", renamed.Name)
}

func (s *UniversityUseCaseSuite) TestGetByIDErrors() {
	_, err := s.universities.GetByID(s.ctx, "nope")
	s.True(errors.Is(err, errors.CodeInvalidID))

	_, err = s.universities.GetByID(s.ctx, "64b7f0c2a1b2c3d4e5f60718")
	s.True(errors.Is(err, errors.CodeNotFound))

	_, err = s.universities.Update(s.ctx, "64b7f0c2a1b2c3d4e5f60718", "X", "x.edu")
	s.True(errors.Is(err, errors.CodeNotFound))
}

func (s *UniversityUseCaseSuite) TestListAll() {
	s.university("FIT", "fit.edu")
	s.university("Stevens Institute", "stevens.edu")

	all, err := s.universities.ListAll(s.ctx)
	s.Require().NoError(err)
	s.Len(all, 2)
	s.Equal("FIT", all[0].Name)
}
