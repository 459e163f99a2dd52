package repository

import (
	"context"

	"unisell/internal/domain/entity"
)

type UniversityRepository interface {
	Create(ctx context.Context, university *entity.University) error
	GetByID(ctx context.Context, id string) (*entity.University, error)
	List(ctx context.Context) ([]*entity.University, error)
	Update(ctx context.Context, university *entity.University) error
}
