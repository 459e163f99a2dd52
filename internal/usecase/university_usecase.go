package usecase

import (
	"context"

	"unisell/internal/domain/entity"
	"unisell/internal/domain/repository"
	"unisell/pkg/errors"
	"unisell/pkg/ids"
	"unisell/pkg/validation"
)

type UniversityUseCase struct {
	universityRepo repository.UniversityRepository
}

func NewUniversityUseCase(universityRepo repository.UniversityRepository) *UniversityUseCase {
	return &UniversityUseCase{
		universityRepo: universityRepo,
	}
}

func (uc *UniversityUseCase) ListAll(ctx context.Context) ([]*entity.University, error) {
	return uc.universityRepo.List(ctx)
}

func (uc *UniversityUseCase) GetByID(ctx context.Context, id string) (*entity.University, error) {
	id, err := ids.Parse("universityId", id)
	if err != nil {
		return nil, err
	}
	university, err := uc.universityRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, errors.CodeNotFound) {
			return nil, errors.NotFoundMessage("University does not exist!")
		}
		return nil, err
	}
	return university, nil
}

func (uc *UniversityUseCase) Create(ctx context.Context, name, emailDomain string) (*entity.University, error) {
	name, domain, err := validateUniversity(name, emailDomain)
	if err != nil {
		return nil, err
	}
	if err := uc.checkUnique(ctx, "", name, domain); err != nil {
		return nil, err
	}

	university := &entity.University{
		ID:          ids.New(),
		Name:        name,
		EmailDomain: domain,
	}
	if err := uc.universityRepo.Create(ctx, university); err != nil {
		return nil, err
	}
	return university, nil
}

func (uc *UniversityUseCase) Update(ctx context.Context, id, name, emailDomain string) (*entity.University, error) {
	id, err := ids.Parse("universityId", id)
	if err != nil {
		return nil, err
	}
	name, domain, err := validateUniversity(name, emailDomain)
	if err != nil {
		return nil, err
	}
	if _, err := uc.GetByID(ctx, id); err != nil {
		return nil, err
	}
	if err := uc.checkUnique(ctx, id, name, domain); err != nil {
		return nil, err
	}

	university := &entity.University{
		ID:          id,
		Name:        name,
		EmailDomain: domain,
	}
	if err := uc.universityRepo.Update(ctx, university); err != nil {
		return nil, err
	}
	return university, nil
}

func validateUniversity(name, emailDomain string) (string, string, error) {
	name, err := validation.String("name", name)
	if err != nil {
		return "", "", err
	}
	domain, err := validation.Domain(emailDomain)
	if err != nil {
		return "", "", err
	}
	return name, domain, nil
}

// checkUnique scans every university except selfID for a clashing name or domain.
func (uc *UniversityUseCase) checkUnique(ctx context.Context, selfID, name, domain string) error {
	universities, err := uc.universityRepo.List(ctx)
	if err != nil {
		return err
	}
	for _, u := range universities {
		if u.ID == selfID {
			continue
		}
		if u.Name == name {
			return errors.DuplicateUniversity("University with that name already exists")
		}
		if u.EmailDomain == domain {
			return errors.DuplicateUniversity("University with that email domain already exists")
		}
	}
	return nil
}
