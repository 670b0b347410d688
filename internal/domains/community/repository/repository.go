package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"tourismrelay/infras/otel"
	"tourismrelay/infras/postgres"
	"tourismrelay/internal/domains/community/model"
	"tourismrelay/shared"
	gRepo "tourismrelay/shared/repository"
)

type Community interface {
	GetByID(ctx context.Context, id string) (model.Community, error)
	GetByName(ctx context.Context, name string) (model.Community, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Community]
}

func New(db *postgres.Connection, otel otel.Otel) Community {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Community](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}

func (r *repositoryImpl) GetByID(ctx context.Context, id string) (model.Community, error) {
	return r.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
}

func (r *repositoryImpl) GetByName(ctx context.Context, name string) (model.Community, error) {
	return r.Get(ctx, shared.FilterByID(name, model.FieldName, model.TableName))
}
