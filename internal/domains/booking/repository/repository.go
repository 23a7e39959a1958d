package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"hotel/infras/otel"
	"hotel/infras/postgres"
	"hotel/internal/domains/booking/model"
	roomModel "hotel/internal/domains/room/model"
	"hotel/shared"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/logger"
	gRepo "hotel/shared/repository"
	"hotel/shared/timezone"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var bookingColumns = []string{
	model.FieldID,
	model.FieldCustomerName,
	model.FieldCustomerPhone,
	model.FieldRoomID,
	model.FieldCheckInDate,
	model.FieldCheckOutDate,
	model.FieldReleasedAt,
	constant.FieldCreatedAt,
	constant.FieldModifiedAt,
	constant.FieldCreatedBy,
	constant.FieldModifiedBy,
}

// Booking is the booking store. Every write keeps the status of the rooms it
// touches in step with the bookings holding them, inside one transaction.
type Booking interface {
	Create(ctx context.Context, booking model.Booking) error
	Update(ctx context.Context, booking model.Booking) error
	Delete(ctx context.Context, id, actor string) (model.Booking, error)
	ReleaseElapsed(ctx context.Context, today time.Time, actor string) ([]model.Booking, error)
	GetByID(ctx context.Context, id string) (model.Booking, error)
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.ListItem, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.ListItem, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.ListItem]
	bookings gRepo.Repository[model.Booking]
	db       *postgres.Connection
	otel     otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.ListItem](model.EntityName, model.TableName, model.FieldID, db, otel),
		bookings:   gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

func (r *repositoryImpl) withTx(ctx context.Context, fn func(tx *sqlx.Tx) error) (err error) {
	tx, err := r.db.Write.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if err == nil {
			return
		}

		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			log.Error().Err(rbErr).Msg("failed to rollback booking transaction")
		}
	}()

	if err = fn(tx); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// lockRoom reads the room status and holds its row until the transaction ends.
func lockRoom(ctx context.Context, tx *sqlx.Tx, roomID string) (string, error) {
	query, args, err := psql.
		Select(roomModel.FieldStatus).
		From(roomModel.TableName).
		Where(sq.Eq{roomModel.FieldID: roomID}).
		Suffix("FOR UPDATE").
		ToSql()
	if err != nil {
		return constant.Empty, fmt.Errorf("failed to build room lock query: %w", err)
	}

	var status string

	err = tx.GetContext(ctx, &status, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return constant.Empty, model.ErrRoomNotFound
	}

	if err != nil {
		return constant.Empty, fmt.Errorf("failed to lock room: %w", err)
	}

	return status, nil
}

func lockBooking(ctx context.Context, tx *sqlx.Tx, id string) (model.Booking, error) {
	query, args, err := psql.
		Select(bookingColumns...).
		From(model.TableName).
		Where(sq.Eq{model.FieldID: id}).
		Suffix("FOR UPDATE").
		ToSql()
	if err != nil {
		return model.Booking{}, fmt.Errorf("failed to build booking lock query: %w", err)
	}

	var booking model.Booking

	err = tx.GetContext(ctx, &booking, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Booking{}, model.ErrBookingNotFound
	}

	if err != nil {
		return model.Booking{}, fmt.Errorf("failed to lock booking: %w", err)
	}

	return booking, nil
}

func setRoomStatus(ctx context.Context, tx *sqlx.Tx, status, actor string, roomIDs ...string) error {
	query, args, err := psql.
		Update(roomModel.TableName).
		Set(roomModel.FieldStatus, status).
		Set(constant.FieldModifiedAt, timezone.Now()).
		Set(constant.FieldModifiedBy, actor).
		Where(sq.Eq{roomModel.FieldID: roomIDs}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build room status query: %w", err)
	}

	if _, err = tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to set room status to %s: %w", status, err)
	}

	return nil
}

// Create books a free room. A missing room and a reserved room are both rejected.
func (r *repositoryImpl) Create(ctx context.Context, booking model.Booking) (err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttributes(map[string]any{"booking_id": booking.ID, "room_id": booking.RoomID})

	return r.withTx(ctx, func(tx *sqlx.Tx) error {
		status, err := lockRoom(ctx, tx, booking.RoomID)
		if err != nil {
			return err
		}

		if status != roomModel.StatusNotReserved {
			return model.ErrRoomUnavailable
		}

		if err := r.bookings.InsertTx(ctx, tx, booking); err != nil {
			if gRepo.IsUniqueViolation(err) {
				return model.ErrRoomUnavailable
			}

			return err //nolint:wrapcheck
		}

		return setRoomStatus(ctx, tx, roomModel.StatusReserved, booking.CreatedBy, booking.RoomID)
	})
}

// Update rewrites the booking fields. Moving an active booking to another room
// frees the old room and reserves the new one.
func (r *repositoryImpl) Update(ctx context.Context, booking model.Booking) (err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttributes(map[string]any{"booking_id": booking.ID, "room_id": booking.RoomID})

	return r.withTx(ctx, func(tx *sqlx.Tx) error {
		current, err := lockBooking(ctx, tx, booking.ID)
		if err != nil {
			return err
		}

		if current.RoomID != booking.RoomID {
			status, err := lockRoom(ctx, tx, booking.RoomID)
			if err != nil {
				return err
			}

			if current.Active() {
				if status != roomModel.StatusNotReserved {
					return model.ErrRoomUnavailable
				}

				if err := setRoomStatus(ctx, tx, roomModel.StatusNotReserved, booking.ModifiedBy, current.RoomID); err != nil {
					return err
				}

				if err := setRoomStatus(ctx, tx, roomModel.StatusReserved, booking.ModifiedBy, booking.RoomID); err != nil {
					return err
				}
			}
		}

		query, args, err := psql.
			Update(model.TableName).
			Set(model.FieldCustomerName, booking.CustomerName).
			Set(model.FieldCustomerPhone, booking.CustomerPhone).
			Set(model.FieldRoomID, booking.RoomID).
			Set(model.FieldCheckInDate, booking.CheckInDate).
			Set(model.FieldCheckOutDate, booking.CheckOutDate).
			Set(constant.FieldModifiedAt, booking.ModifiedAt).
			Set(constant.FieldModifiedBy, booking.ModifiedBy).
			Where(sq.Eq{model.FieldID: booking.ID}).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build booking update query: %w", err)
		}

		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			if gRepo.IsUniqueViolation(err) {
				return model.ErrRoomUnavailable
			}

			logger.ErrorWithStack(err)

			return fmt.Errorf("failed to update booking: %w", err)
		}

		return nil
	})
}

// Delete removes the booking and frees its room when the booking was still active.
func (r *repositoryImpl) Delete(ctx context.Context, id, actor string) (deleted model.Booking, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	err = r.withTx(ctx, func(tx *sqlx.Tx) error {
		current, err := lockBooking(ctx, tx, id)
		if err != nil {
			return err
		}

		query, args, err := psql.Delete(model.TableName).Where(sq.Eq{model.FieldID: id}).ToSql()
		if err != nil {
			return fmt.Errorf("failed to build booking delete query: %w", err)
		}

		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			logger.ErrorWithStack(err)

			return fmt.Errorf("failed to delete booking: %w", err)
		}

		if current.Active() {
			if err := setRoomStatus(ctx, tx, roomModel.StatusNotReserved, actor, current.RoomID); err != nil {
				return err
			}
		}

		deleted = current

		return nil
	})

	return deleted, err
}

// ReleaseElapsed marks every active booking whose check-out date is on or
// before today as released and frees the rooms they held.
func (r *repositoryImpl) ReleaseElapsed(ctx context.Context, today time.Time, actor string) (released []model.Booking, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.ReleaseElapsed")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	now := timezone.Now()

	err = r.withTx(ctx, func(tx *sqlx.Tx) error {
		query, args, err := psql.
			Update(model.TableName).
			Set(model.FieldReleasedAt, now).
			Set(constant.FieldModifiedAt, now).
			Set(constant.FieldModifiedBy, actor).
			Where(sq.LtOrEq{model.FieldCheckOutDate: today.Format(constant.DateOnlyFormat)}).
			Where(sq.Eq{model.FieldReleasedAt: nil}).
			Suffix("RETURNING " + strings.Join(bookingColumns, ", ")).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build release query: %w", err)
		}

		if err := tx.SelectContext(ctx, &released, query, args...); err != nil {
			logger.ErrorWithStack(err)

			return fmt.Errorf("failed to release bookings: %w", err)
		}

		if len(released) == 0 {
			return nil
		}

		roomIDs := make([]string, 0, len(released))
		for _, booking := range released {
			roomIDs = append(roomIDs, booking.RoomID)
		}

		return setRoomStatus(ctx, tx, roomModel.StatusNotReserved, actor, roomIDs...)
	})
	if err != nil {
		return nil, err
	}

	scope.SetAttribute("released", len(released))

	return released, nil
}

// GetByID reads the stored booking without the room join.
func (r *repositoryImpl) GetByID(ctx context.Context, id string) (model.Booking, error) {
	booking, err := r.bookings.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		return booking, err //nolint:wrapcheck
	}

	if booking.ID == constant.Empty {
		return booking, model.ErrBookingNotFound
	}

	return booking, nil
}
