package port

import (
	"context"

	"petstore/internal/core/domain"
)

type PetRepository interface {
	List(ctx context.Context) ([]domain.Pet, error)
	GetByID(ctx context.Context, id int) (domain.Pet, error)
	Create(ctx context.Context, pet domain.Pet) (domain.Pet, error)
	Update(ctx context.Context, pet domain.Pet) (domain.Pet, error)
	Delete(ctx context.Context, id int) error
	Statistics(ctx context.Context) (domain.Statistics, error)
}

type PetService interface {
	List(ctx context.Context) ([]domain.Pet, error)
	Get(ctx context.Context, id int) (domain.Pet, error)
	Create(ctx context.Context, pet domain.Pet) (domain.Pet, error)
	Update(ctx context.Context, pet domain.Pet) (domain.Pet, error)
	Delete(ctx context.Context, id int) (string, error)
	Statistics(ctx context.Context) (domain.Statistics, error)
}
