package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"time"

	"tourismrelay/infras/otel"
	"tourismrelay/infras/postgres"
	"tourismrelay/internal/domains/booking/model"
	"tourismrelay/shared"
	"tourismrelay/shared/constant"
	gDto "tourismrelay/shared/dto"
	gModel "tourismrelay/shared/model"
	gRepo "tourismrelay/shared/repository"
)

type Booking interface {
	Insert(ctx context.Context, booking model.Booking) error
	// GetByCode returns the zero Booking when code is unknown.
	GetByCode(ctx context.Context, code string) (model.Booking, error)
	// Confirm records the services a steward accepted. It reports false when
	// the booking was already confirmed by an earlier reply.
	Confirm(ctx context.Context, code string, services []string, actor string, at time.Time) (bool, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Booking]
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldCode, db, otel),
	}
}

func (r *repositoryImpl) GetByCode(ctx context.Context, code string) (model.Booking, error) {
	return r.Get(ctx, shared.FilterByID(code, model.FieldCode, model.TableName))
}

func (r *repositoryImpl) Confirm(ctx context.Context, code string, services []string, actor string, at time.Time) (bool, error) {
	confirmed := gModel.StringList(services)
	if confirmed == nil {
		confirmed = gModel.StringList{}
	}

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldCode, Value: code, Operator: gDto.FilterOperatorEq, Table: model.TableName},
			gDto.Filter{Field: model.FieldStatus, Value: model.StatusPending, Operator: gDto.FilterOperatorEq, Table: model.TableName},
		},
	}

	affected, err := r.Update(ctx, map[string]any{
		model.FieldStatus:            model.StatusConfirmed,
		model.FieldConfirmedServices: confirmed,
		constant.FieldModifiedAt:     at,
		constant.FieldModifiedBy:     actor,
	}, filter)
	if err != nil {
		return false, err
	}

	return affected > 0, nil
}
