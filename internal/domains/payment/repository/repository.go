package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tourismrelay/infras/otel"
	"tourismrelay/infras/postgres"
	bookingModel "tourismrelay/internal/domains/booking/model"
	"tourismrelay/internal/domains/payment/model"
	"tourismrelay/shared"
	"tourismrelay/shared/constant"
	gDto "tourismrelay/shared/dto"
	gRepo "tourismrelay/shared/repository"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

var errDuplicateReference = errors.New("provider reference already recorded")

// Payment is the store port of the reconciliation engine. Lookups return the
// zero Booking when nothing matches.
type Payment interface {
	GetBooking(ctx context.Context, code string) (bookingModel.Booking, error)
	TransactionExists(ctx context.Context, providerReference string) (bool, error)
	// FindPushCandidate prefers the pending_push or paid booking holding
	// sessionID and otherwise takes the newest pending_push booking whose
	// tourist or push phone ends in phoneSuffix. A booking reverted to
	// pending no longer matches its old session.
	FindPushCandidate(ctx context.Context, sessionID, phoneSuffix string) (bookingModel.Booking, error)
	// MarkPushPending moves an unpaid booking to pending_push. It reports
	// false when the booking is paid or missing.
	MarkPushPending(ctx context.Context, code, sessionID, phoneSuffix string, at time.Time) (bool, error)
	// Settle records tx and marks its booking paid in one transaction.
	Settle(ctx context.Context, tx model.Transaction) (model.SettleResult, error)
	// RevertPush moves a pending_push booking back to pending.
	RevertPush(ctx context.Context, code string, at time.Time) (bool, error)
	ListTransactions(ctx context.Context, bookingCode string) ([]model.Transaction, error)
}

type repositoryImpl struct {
	bookings     gRepo.Repository[bookingModel.Booking]
	transactions gRepo.Repository[model.Transaction]
}

func New(db *postgres.Connection, otel otel.Otel) Payment {
	return &repositoryImpl{
		bookings:     gRepo.NewRepository[bookingModel.Booking](bookingModel.EntityName, bookingModel.TableName, bookingModel.FieldCode, db, otel),
		transactions: gRepo.NewRepository[model.Transaction](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}

func byCode(code string) gDto.FilterGroup {
	return shared.FilterByID(code, bookingModel.FieldCode, bookingModel.TableName)
}

func (r *repositoryImpl) GetBooking(ctx context.Context, code string) (bookingModel.Booking, error) {
	return r.bookings.Get(ctx, byCode(code))
}

func (r *repositoryImpl) TransactionExists(ctx context.Context, providerReference string) (bool, error) {
	if providerReference == "" {
		return false, nil
	}

	return r.transactions.Exist(ctx, shared.FilterByID(providerReference, model.FieldProviderReference, model.TableName))
}

func (r *repositoryImpl) FindPushCandidate(ctx context.Context, sessionID, phoneSuffix string) (bookingModel.Booking, error) {
	if sessionID != "" {
		filter := gDto.FilterGroup{
			Operator: gDto.FilterGroupOperatorAnd,
			Filters: []any{
				gDto.Filter{Field: bookingModel.FieldPushSessionID, Value: sessionID, Operator: gDto.FilterOperatorEq, Table: bookingModel.TableName},
				gDto.Filter{
					Field:    bookingModel.FieldPaymentStatus,
					Value:    []string{bookingModel.PaymentStatusPendingPush, bookingModel.PaymentStatusPaid},
					Operator: gDto.FilterOperatorIn,
					Table:    bookingModel.TableName,
				},
			},
		}

		booking, err := r.bookings.Get(ctx, filter)
		if err != nil || booking.Exists() {
			return booking, err
		}
	}

	if phoneSuffix == "" {
		return bookingModel.Booking{}, nil
	}

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    bookingModel.FieldPaymentStatus,
				Value:    bookingModel.PaymentStatusPendingPush,
				Operator: gDto.FilterOperatorEq,
				Table:    bookingModel.TableName,
			},
			gDto.FilterGroup{
				Operator: gDto.FilterGroupOperatorOr,
				Filters: []any{
					gDto.Filter{
						Field:    bookingModel.FieldTouristPhoneSuffix,
						Value:    phoneSuffix,
						Operator: gDto.FilterOperatorEq,
						Table:    bookingModel.TableName,
					},
					gDto.Filter{
						Field:    bookingModel.FieldPushPhoneSuffix,
						Value:    phoneSuffix,
						Operator: gDto.FilterOperatorEq,
						Table:    bookingModel.TableName,
					},
				},
			},
		},
	}

	params := gDto.QueryParams{Limit: 1, SortBy: bookingModel.FieldCreatedAt, SortDir: gDto.SortDirDesc}

	bookings, err := r.bookings.GetAll(ctx, params, filter)
	if err != nil || len(bookings) == 0 {
		return bookingModel.Booking{}, err
	}

	return bookings[0], nil
}

func (r *repositoryImpl) MarkPushPending(ctx context.Context, code, sessionID, phoneSuffix string, at time.Time) (bool, error) {
	affected, err := r.bookings.Update(ctx, map[string]any{
		bookingModel.FieldPaymentStatus:   bookingModel.PaymentStatusPendingPush,
		bookingModel.FieldPushSessionID:   sessionID,
		bookingModel.FieldPushPhoneSuffix: phoneSuffix,
		constant.FieldModifiedAt:          at,
		constant.FieldModifiedBy:          constant.ContextSystem,
	}, unpaid(code))

	return affected > 0, err
}

func (r *repositoryImpl) Settle(ctx context.Context, tx model.Transaction) (res model.SettleResult, err error) {
	err = r.bookings.Transaction(ctx, func(sqlTx *sqlx.Tx) error {
		booking, err := r.bookings.GetForUpdateTx(ctx, sqlTx, byCode(tx.BookingCode))
		if err != nil {
			return err
		}

		if !booking.Exists() {
			return nil
		}

		res.BookingFound = true
		res.Booking = booking

		recorded, err := r.transactions.InsertIgnoreTx(ctx, sqlTx, tx, model.FieldProviderReference, model.FieldProviderReference+" <> ''")
		if err != nil {
			if gRepo.IsUniqueViolation(err) {
				return errDuplicateReference
			}

			return err
		}

		if !recorded {
			return nil
		}

		res.Recorded = true

		if booking.IsPaid() {
			return nil
		}

		affected, err := r.bookings.UpdateTx(ctx, sqlTx, paidUpdate(tx.Amount, tx.Timestamp), unpaid(tx.BookingCode))
		if err != nil {
			return err
		}

		res.Applied = affected > 0

		return nil
	})
	if errors.Is(err, errDuplicateReference) {
		return model.SettleResult{BookingFound: true, Booking: res.Booking}, nil
	}

	if err != nil {
		return model.SettleResult{}, fmt.Errorf("failed to settle booking %s: %w", tx.BookingCode, err)
	}

	return res, nil
}

// unpaid matches code only while it is not yet paid.
func unpaid(code string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: bookingModel.FieldCode, Value: code, Operator: gDto.FilterOperatorEq, Table: bookingModel.TableName},
			gDto.Filter{
				Field:    bookingModel.FieldPaymentStatus,
				Value:    []string{bookingModel.PaymentStatusPending, bookingModel.PaymentStatusPendingPush},
				Operator: gDto.FilterOperatorIn,
				Table:    bookingModel.TableName,
			},
		},
	}
}

func paidUpdate(amount decimal.Decimal, at time.Time) map[string]any {
	return map[string]any{
		bookingModel.FieldPaymentStatus: bookingModel.PaymentStatusPaid,
		bookingModel.FieldAmountPaid:    amount,
		constant.FieldModifiedAt:        at,
		constant.FieldModifiedBy:        constant.ContextSystem,
	}
}

func (r *repositoryImpl) RevertPush(ctx context.Context, code string, at time.Time) (bool, error) {
	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: bookingModel.FieldCode, Value: code, Operator: gDto.FilterOperatorEq, Table: bookingModel.TableName},
			gDto.Filter{
				Field:    bookingModel.FieldPaymentStatus,
				Value:    bookingModel.PaymentStatusPendingPush,
				Operator: gDto.FilterOperatorEq,
				Table:    bookingModel.TableName,
			},
		},
	}

	affected, err := r.bookings.Update(ctx, map[string]any{
		bookingModel.FieldPaymentStatus: bookingModel.PaymentStatusPending,
		constant.FieldModifiedAt:        at,
		constant.FieldModifiedBy:        constant.ContextSystem,
	}, filter)

	return affected > 0, err
}

func (r *repositoryImpl) ListTransactions(ctx context.Context, bookingCode string) ([]model.Transaction, error) {
	params := gDto.QueryParams{SortBy: model.FieldTimestamp, SortDir: gDto.SortDirAsc}

	return r.transactions.GetAll(ctx, params, shared.FilterByID(bookingCode, model.FieldBookingCode, model.TableName))
}
