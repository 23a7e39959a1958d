package repository_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel/infras/otel/mocks"
	"hotel/infras/postgres"
	"hotel/internal/domains/booking/model"
	"hotel/internal/domains/booking/repository"
	gModel "hotel/shared/model"
)

const (
	bookingID = "0b8d7c3e-4f43-4a64-9f38-6b2d0d2b9a11"
	roomID    = "8a6e0804-2bd0-4672-b79d-d97027f9071a"
	otherRoom = "5c1f2a8e-9d3b-4e7a-8c6f-1a2b3c4d5e6f"
)

var (
	lockRoomQuery    = regexp.QuoteMeta("SELECT status FROM rooms WHERE id = $1 FOR UPDATE")
	lockBookingQuery = regexp.QuoteMeta("SELECT id, customer_name, customer_phone, room_id, check_in_date, check_out_date, released_at, created_at, modified_at, created_by, modified_by FROM bookings WHERE id = $1 FOR UPDATE")
	roomStatusQuery  = regexp.QuoteMeta("UPDATE rooms SET status = $1, modified_at = $2, modified_by = $3 WHERE id IN ($4)")
	bookingColumns   = []string{
		"id", "customer_name", "customer_phone", "room_id", "check_in_date", "check_out_date",
		"released_at", "created_at", "modified_at", "created_by", "modified_by",
	}
)

func newRepository(t *testing.T) (repository.Booking, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	t.Cleanup(func() { _ = db.Close() })

	sqlxDB := sqlx.NewDb(db, "postgres")

	return repository.New(&postgres.Connection{Read: sqlxDB, Write: sqlxDB}, mocks.NewOtel()), mock
}

func newBooking() model.Booking {
	now := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

	return model.Booking{
		ID:            bookingID,
		CustomerName:  "Jane Doe",
		CustomerPhone: "0812345678",
		RoomID:        roomID,
		CheckInDate:   time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC),
		CheckOutDate:  time.Date(2024, 6, 12, 0, 0, 0, 0, time.UTC),
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  "front-desk",
			ModifiedBy: "front-desk",
		},
	}
}

func bookingRows(b model.Booking, releasedAt any) *sqlmock.Rows {
	return sqlmock.NewRows(bookingColumns).AddRow(
		b.ID, b.CustomerName, b.CustomerPhone, b.RoomID, b.CheckInDate, b.CheckOutDate,
		releasedAt, b.CreatedAt, b.ModifiedAt, b.CreatedBy, b.ModifiedBy,
	)
}

func TestCreate(t *testing.T) {
	t.Run("reserves a free room", func(t *testing.T) {
		repo, mock := newRepository(t)

		mock.ExpectBegin()
		mock.ExpectQuery(lockRoomQuery).WithArgs(roomID).
			WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("not_reserved"))
		mock.ExpectExec("INSERT INTO bookings").WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(roomStatusQuery).WithArgs("reserved", sqlmock.AnyArg(), "front-desk", roomID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		require.NoError(t, repo.Create(context.Background(), newBooking()))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("reserved room is unavailable", func(t *testing.T) {
		repo, mock := newRepository(t)

		mock.ExpectBegin()
		mock.ExpectQuery(lockRoomQuery).WithArgs(roomID).
			WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("reserved"))
		mock.ExpectRollback()

		err := repo.Create(context.Background(), newBooking())

		assert.ErrorIs(t, err, model.ErrRoomUnavailable)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing room", func(t *testing.T) {
		repo, mock := newRepository(t)

		mock.ExpectBegin()
		mock.ExpectQuery(lockRoomQuery).WithArgs(roomID).WillReturnRows(sqlmock.NewRows([]string{"status"}))
		mock.ExpectRollback()

		err := repo.Create(context.Background(), newBooking())

		assert.ErrorIs(t, err, model.ErrRoomNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("concurrent booking hits the active booking index", func(t *testing.T) {
		repo, mock := newRepository(t)

		mock.ExpectBegin()
		mock.ExpectQuery(lockRoomQuery).WithArgs(roomID).
			WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("not_reserved"))
		mock.ExpectExec("INSERT INTO bookings").WillReturnError(&pq.Error{Code: "23505"})
		mock.ExpectRollback()

		err := repo.Create(context.Background(), newBooking())

		assert.ErrorIs(t, err, model.ErrRoomUnavailable)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUpdate(t *testing.T) {
	updateBookingQuery := regexp.QuoteMeta("UPDATE bookings SET customer_name = $1, customer_phone = $2, room_id = $3, check_in_date = $4, check_out_date = $5, modified_at = $6, modified_by = $7 WHERE id = $8")

	t.Run("moving rooms swaps their status", func(t *testing.T) {
		repo, mock := newRepository(t)

		current := newBooking()
		next := newBooking()
		next.RoomID = otherRoom
		next.ModifiedBy = "night-audit"

		mock.ExpectBegin()
		mock.ExpectQuery(lockBookingQuery).WithArgs(bookingID).WillReturnRows(bookingRows(current, nil))
		mock.ExpectQuery(lockRoomQuery).WithArgs(otherRoom).
			WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("not_reserved"))
		mock.ExpectExec(roomStatusQuery).WithArgs("not_reserved", sqlmock.AnyArg(), "night-audit", roomID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(roomStatusQuery).WithArgs("reserved", sqlmock.AnyArg(), "night-audit", otherRoom).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(updateBookingQuery).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		require.NoError(t, repo.Update(context.Background(), next))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("same room only rewrites the booking", func(t *testing.T) {
		repo, mock := newRepository(t)

		next := newBooking()
		next.CustomerName = "Jane Smith"

		mock.ExpectBegin()
		mock.ExpectQuery(lockBookingQuery).WithArgs(bookingID).WillReturnRows(bookingRows(newBooking(), nil))
		mock.ExpectExec(updateBookingQuery).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		require.NoError(t, repo.Update(context.Background(), next))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("target room already reserved", func(t *testing.T) {
		repo, mock := newRepository(t)

		next := newBooking()
		next.RoomID = otherRoom

		mock.ExpectBegin()
		mock.ExpectQuery(lockBookingQuery).WithArgs(bookingID).WillReturnRows(bookingRows(newBooking(), nil))
		mock.ExpectQuery(lockRoomQuery).WithArgs(otherRoom).
			WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("reserved"))
		mock.ExpectRollback()

		err := repo.Update(context.Background(), next)

		assert.ErrorIs(t, err, model.ErrRoomUnavailable)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("released booking leaves room status alone", func(t *testing.T) {
		repo, mock := newRepository(t)

		next := newBooking()
		next.RoomID = otherRoom

		mock.ExpectBegin()
		mock.ExpectQuery(lockBookingQuery).WithArgs(bookingID).
			WillReturnRows(bookingRows(newBooking(), time.Date(2024, 6, 12, 1, 0, 0, 0, time.UTC)))
		mock.ExpectQuery(lockRoomQuery).WithArgs(otherRoom).
			WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("reserved"))
		mock.ExpectExec(updateBookingQuery).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		require.NoError(t, repo.Update(context.Background(), next))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing booking", func(t *testing.T) {
		repo, mock := newRepository(t)

		mock.ExpectBegin()
		mock.ExpectQuery(lockBookingQuery).WithArgs(bookingID).WillReturnRows(sqlmock.NewRows(bookingColumns))
		mock.ExpectRollback()

		err := repo.Update(context.Background(), newBooking())

		assert.ErrorIs(t, err, model.ErrBookingNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestDelete(t *testing.T) {
	deleteQuery := regexp.QuoteMeta("DELETE FROM bookings WHERE id = $1")

	t.Run("active booking frees its room", func(t *testing.T) {
		repo, mock := newRepository(t)

		mock.ExpectBegin()
		mock.ExpectQuery(lockBookingQuery).WithArgs(bookingID).WillReturnRows(bookingRows(newBooking(), nil))
		mock.ExpectExec(deleteQuery).WithArgs(bookingID).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(roomStatusQuery).WithArgs("not_reserved", sqlmock.AnyArg(), "front-desk", roomID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		deleted, err := repo.Delete(context.Background(), bookingID, "front-desk")

		require.NoError(t, err)
		assert.Equal(t, roomID, deleted.RoomID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("released booking is just removed", func(t *testing.T) {
		repo, mock := newRepository(t)

		mock.ExpectBegin()
		mock.ExpectQuery(lockBookingQuery).WithArgs(bookingID).
			WillReturnRows(bookingRows(newBooking(), time.Date(2024, 6, 12, 1, 0, 0, 0, time.UTC)))
		mock.ExpectExec(deleteQuery).WithArgs(bookingID).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		deleted, err := repo.Delete(context.Background(), bookingID, "front-desk")

		require.NoError(t, err)
		assert.False(t, deleted.Active())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing booking", func(t *testing.T) {
		repo, mock := newRepository(t)

		mock.ExpectBegin()
		mock.ExpectQuery(lockBookingQuery).WithArgs(bookingID).WillReturnRows(sqlmock.NewRows(bookingColumns))
		mock.ExpectRollback()

		_, err := repo.Delete(context.Background(), bookingID, "front-desk")

		assert.ErrorIs(t, err, model.ErrBookingNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestReleaseElapsed(t *testing.T) {
	releaseQuery := regexp.QuoteMeta("UPDATE bookings SET released_at = $1, modified_at = $2, modified_by = $3 WHERE check_out_date <= $4 AND released_at IS NULL RETURNING id,")
	today := time.Date(2024, 6, 12, 0, 0, 0, 0, time.UTC)

	t.Run("frees the rooms of elapsed bookings", func(t *testing.T) {
		repo, mock := newRepository(t)

		first := newBooking()
		second := newBooking()
		second.ID = "c3b2a1d0-0000-4000-8000-000000000001"
		second.RoomID = otherRoom

		rows := bookingRows(first, today).AddRow(
			second.ID, second.CustomerName, second.CustomerPhone, second.RoomID, second.CheckInDate, second.CheckOutDate,
			today, second.CreatedAt, second.ModifiedAt, second.CreatedBy, second.ModifiedBy,
		)

		mock.ExpectBegin()
		mock.ExpectQuery(releaseQuery).
			WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), "system", "2024-06-12").
			WillReturnRows(rows)
		mock.ExpectExec(regexp.QuoteMeta("UPDATE rooms SET status = $1, modified_at = $2, modified_by = $3 WHERE id IN ($4,$5)")).
			WithArgs("not_reserved", sqlmock.AnyArg(), "system", roomID, otherRoom).
			WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectCommit()

		released, err := repo.ReleaseElapsed(context.Background(), today, "system")

		require.NoError(t, err)
		require.Len(t, released, 2)
		assert.False(t, released[0].Active())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("nothing to release", func(t *testing.T) {
		repo, mock := newRepository(t)

		mock.ExpectBegin()
		mock.ExpectQuery(releaseQuery).WillReturnRows(sqlmock.NewRows(bookingColumns))
		mock.ExpectCommit()

		released, err := repo.ReleaseElapsed(context.Background(), today, "system")

		require.NoError(t, err)
		assert.Empty(t, released)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGetByID(t *testing.T) {
	repo, mock := newRepository(t)

	mock.ExpectPrepare("SELECT (.+) FROM bookings").
		ExpectQuery().
		WillReturnRows(sqlmock.NewRows(bookingColumns))

	_, err := repo.GetByID(context.Background(), bookingID)

	assert.ErrorIs(t, err, model.ErrBookingNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
