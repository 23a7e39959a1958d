package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"hotel/config"
	"hotel/infras/otel/mocks"
	bookingMocks "hotel/internal/domains/booking/mocks"
	"hotel/internal/domains/booking/event"
	"hotel/internal/domains/booking/listing"
	"hotel/internal/domains/booking/model"
	"hotel/internal/domains/booking/model/dto"
	"hotel/internal/domains/booking/repository"
	"hotel/internal/domains/booking/service"
	"hotel/internal/domains/booking/validation"
	roomMocks "hotel/internal/domains/room/mocks"
	roomDto "hotel/internal/domains/room/model/dto"
	cacheMocks "hotel/shared/cache/mocks"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	"hotel/shared/timezone"
)

const (
	bookingID = "0b8d7c3e-4f43-4a64-9f38-6b2d0d2b9a11"
	roomID    = "8a6e0804-2bd0-4672-b79d-d97027f9071a"
)

// the store and service mocks share a package and must stay distinct types
var (
	_ repository.Booking = (*bookingMocks.MockBooking)(nil)
	_ service.Booking    = (*bookingMocks.MockBookingService)(nil)
)

type deps struct {
	store     *bookingMocks.MockBooking
	rooms     *roomMocks.MockRoomService
	cache     *cacheMocks.MockRedisCache
	publisher *bookingMocks.MockPublisher
}

func newService(t *testing.T) (service.Booking, deps) {
	t.Helper()

	ctrl := gomock.NewController(t)

	d := deps{
		store:     bookingMocks.NewMockBooking(ctrl),
		rooms:     roomMocks.NewMockRoomService(ctrl),
		cache:     cacheMocks.NewMockRedisCache(ctrl),
		publisher: bookingMocks.NewMockPublisher(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 300
	cfg.Booking.PageSize = 10

	d.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	d.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	d.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	return service.New(d.store, d.rooms, cfg, d.cache, mocks.NewOtel(), d.publisher), d
}

func actorContext() context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyActor, "front-desk")
}

func day(offset int) string {
	return validation.FormatDate(timezone.Now().AddDate(0, 0, offset))
}

func date(offset int) time.Time {
	return validation.DateOf(timezone.Now().AddDate(0, 0, offset))
}

func storedBooking() model.Booking {
	return model.Booking{
		ID:            bookingID,
		CustomerName:  "Jane Doe",
		CustomerPhone: "0812345678",
		RoomID:        roomID,
		CheckInDate:   date(-1),
		CheckOutDate:  date(2),
	}
}

func validRequest() dto.CreateBookingRequest {
	return dto.CreateBookingRequest{
		CustomerName:  "Jane Doe",
		CustomerPhone: "0812345678",
		RoomID:        roomID,
		CheckInDate:   day(0),
		CheckOutDate:  day(2),
	}
}

func TestBookingService_Create(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(req *dto.CreateBookingRequest)
		setupMock func(d deps)
		wantErr   error
	}{
		{
			name:   "books a free room",
			mutate: func(*dto.CreateBookingRequest) {},
			setupMock: func(d deps) {
				d.store.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, b model.Booking) error {
					assert.Equal(t, roomID, b.RoomID)
					assert.Equal(t, "front-desk", b.CreatedBy)
					assert.True(t, b.Active())

					return nil
				})
				d.store.EXPECT().Get(gomock.Any(), gomock.Any()).
					Return(model.ListItem{ID: bookingID, RoomID: roomID, RoomNumber: 101, RoomStatus: "reserved"}, nil)
				d.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, events ...event.Event) error {
						assert.Equal(t, event.TypeCreated, events[0].Type)

						return nil
					})
			},
		},
		{
			name:      "missing phone",
			mutate:    func(req *dto.CreateBookingRequest) { req.CustomerPhone = "" },
			setupMock: func(deps) {},
			wantErr:   validation.ErrMissingCustomerInfo,
		},
		{
			name:      "no room",
			mutate:    func(req *dto.CreateBookingRequest) { req.RoomID = "" },
			setupMock: func(deps) {},
			wantErr:   validation.ErrNoRoomSelected,
		},
		{
			name:      "inverted dates",
			mutate:    func(req *dto.CreateBookingRequest) { req.CheckOutDate = day(-1) },
			setupMock: func(deps) {},
			wantErr:   validation.ErrInvalidDateRange,
		},
		{
			name: "check-in yesterday",
			mutate: func(req *dto.CreateBookingRequest) {
				req.CheckInDate = day(-1)
			},
			setupMock: func(deps) {},
			wantErr:   validation.ErrCheckInInPast,
		},
		{
			name:      "malformed room id",
			mutate:    func(req *dto.CreateBookingRequest) { req.RoomID = "room-101" },
			setupMock: func(deps) {},
			wantErr:   model.ErrRoomNotFound,
		},
		{
			name:   "room already reserved",
			mutate: func(*dto.CreateBookingRequest) {},
			setupMock: func(d deps) {
				d.store.EXPECT().Create(gomock.Any(), gomock.Any()).Return(model.ErrRoomUnavailable)
			},
			wantErr: model.ErrRoomUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, d := newService(t)
			tt.setupMock(d)

			req := validRequest()
			tt.mutate(&req)

			res, err := svc.Create(actorContext(), req)

			time.Sleep(10 * time.Millisecond)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, bookingID, res.ID)
			assert.Equal(t, "reserved", res.RoomStatus)
		})
	}
}

func TestBookingService_List(t *testing.T) {
	items := make([]model.ListItem, 25)
	for i := range items {
		items[i] = model.ListItem{ID: string(rune('a' + i)), CustomerName: "Guest", RoomNumber: 100 + i}
	}

	t.Run("pages the stored list", func(t *testing.T) {
		svc, d := newService(t)

		d.cache.EXPECT().Get(gomock.Any(), "booking:list", gomock.Any()).Return(errors.New("cache miss"))
		d.store.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, params gDto.QueryParams, _ gDto.FilterGroup, _ ...string) ([]model.ListItem, error) {
				assert.Equal(t, "bookings.created_at", params.SortBy)

				return items, nil
			})

		res, err := svc.List(context.Background(), listing.NewState("", 3))

		time.Sleep(10 * time.Millisecond)

		require.NoError(t, err)
		assert.Equal(t, 3, res.Page)
		assert.Equal(t, 3, res.TotalPages)
		assert.Equal(t, 25, res.TotalItems)
		assert.Len(t, res.Bookings, 5)
	})

	t.Run("search with no match is empty", func(t *testing.T) {
		svc, d := newService(t)

		d.cache.EXPECT().Get(gomock.Any(), "booking:list", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, value any) error {
				list, ok := value.(*[]model.ListItem)
				require.True(t, ok)
				*list = items

				return nil
			})

		res, err := svc.List(context.Background(), listing.NewState("999", 1))

		require.NoError(t, err)
		assert.True(t, res.Empty)
		assert.Equal(t, 0, res.TotalPages)
		assert.Empty(t, res.Bookings)
	})

	t.Run("store failure", func(t *testing.T) {
		svc, d := newService(t)

		d.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
		d.store.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("db down"))

		_, err := svc.List(context.Background(), listing.NewState("", 1))

		assert.Equal(t, http.StatusInternalServerError, failure.GetCode(err))
	})
}

func TestBookingService_Get(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		svc, d := newService(t)

		d.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
		d.store.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.ListItem{}, nil)

		_, err := svc.Get(context.Background(), bookingID)

		assert.ErrorIs(t, err, model.ErrBookingNotFound)
	})

	t.Run("malformed id", func(t *testing.T) {
		svc, _ := newService(t)

		_, err := svc.Get(context.Background(), "42")

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("found", func(t *testing.T) {
		svc, d := newService(t)

		d.cache.EXPECT().Get(gomock.Any(), "booking:get:"+bookingID, gomock.Any()).Return(errors.New("cache miss"))
		d.store.EXPECT().Get(gomock.Any(), gomock.Any()).
			Return(model.ListItem{ID: bookingID, CheckInDate: date(1), CheckOutDate: date(3)}, nil)

		res, err := svc.Get(context.Background(), bookingID)

		time.Sleep(10 * time.Millisecond)

		require.NoError(t, err)
		assert.Equal(t, day(1), res.CheckInDate)
		assert.True(t, res.Active)
	})
}

func TestBookingService_Options(t *testing.T) {
	t.Run("no rooms left disables submit", func(t *testing.T) {
		svc, d := newService(t)

		d.rooms.EXPECT().Available(gomock.Any()).Return([]roomDto.RoomResponse{}, nil)

		res, err := svc.Options(context.Background())

		require.NoError(t, err)
		assert.False(t, res.CanSubmit)
		assert.Equal(t, dto.NoRoomsAvailableMessage, res.Message)
		assert.Equal(t, day(0), res.MinCheckInDate)
	})

	t.Run("free rooms are offered", func(t *testing.T) {
		svc, d := newService(t)

		d.rooms.EXPECT().Available(gomock.Any()).Return([]roomDto.RoomResponse{{ID: roomID, RoomNumber: 101}}, nil)

		res, err := svc.Options(context.Background())

		require.NoError(t, err)
		assert.True(t, res.CanSubmit)
		assert.Len(t, res.Rooms, 1)
	})
}

func TestBookingService_Update(t *testing.T) {
	t.Run("stay already started keeps its check-in", func(t *testing.T) {
		svc, d := newService(t)

		name := "Jane Smith"

		d.store.EXPECT().GetByID(gomock.Any(), bookingID).Return(storedBooking(), nil)
		d.store.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, b model.Booking) error {
			assert.Equal(t, "Jane Smith", b.CustomerName)
			assert.Equal(t, date(-1), b.CheckInDate)
			assert.Equal(t, "front-desk", b.ModifiedBy)

			return nil
		})
		d.store.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.ListItem{ID: bookingID, CustomerName: name}, nil)
		d.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)

		res, err := svc.Update(actorContext(), dto.UpdateBookingRequest{CustomerName: &name}, bookingID)

		time.Sleep(10 * time.Millisecond)

		require.NoError(t, err)
		assert.Equal(t, name, res.CustomerName)
	})

	t.Run("moving check-in into the past", func(t *testing.T) {
		svc, d := newService(t)

		checkIn := day(-2)

		d.store.EXPECT().GetByID(gomock.Any(), bookingID).Return(storedBooking(), nil)

		_, err := svc.Update(actorContext(), dto.UpdateBookingRequest{CheckInDate: &checkIn}, bookingID)

		assert.ErrorIs(t, err, validation.ErrCheckInInPast)
	})

	t.Run("clearing the customer name", func(t *testing.T) {
		svc, d := newService(t)

		blank := ""

		d.store.EXPECT().GetByID(gomock.Any(), bookingID).Return(storedBooking(), nil)

		_, err := svc.Update(actorContext(), dto.UpdateBookingRequest{CustomerName: &blank}, bookingID)

		assert.ErrorIs(t, err, validation.ErrMissingCustomerInfo)
	})

	t.Run("target room taken", func(t *testing.T) {
		svc, d := newService(t)

		other := "5c1f2a8e-9d3b-4e7a-8c6f-1a2b3c4d5e6f"

		d.store.EXPECT().GetByID(gomock.Any(), bookingID).Return(storedBooking(), nil)
		d.store.EXPECT().Update(gomock.Any(), gomock.Any()).Return(model.ErrRoomUnavailable)

		_, err := svc.Update(actorContext(), dto.UpdateBookingRequest{RoomID: &other}, bookingID)

		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})

	t.Run("missing booking", func(t *testing.T) {
		svc, d := newService(t)

		d.store.EXPECT().GetByID(gomock.Any(), bookingID).Return(model.Booking{}, model.ErrBookingNotFound)

		_, err := svc.Update(actorContext(), dto.UpdateBookingRequest{}, bookingID)

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestBookingService_Delete(t *testing.T) {
	t.Run("requires confirmation", func(t *testing.T) {
		svc, _ := newService(t)

		err := svc.Delete(actorContext(), bookingID, false)

		assert.Equal(t, http.StatusPreconditionRequired, failure.GetCode(err))
	})

	t.Run("confirmed delete publishes", func(t *testing.T) {
		svc, d := newService(t)

		d.store.EXPECT().Delete(gomock.Any(), bookingID, "front-desk").Return(storedBooking(), nil)
		d.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, events ...event.Event) error {
				assert.Equal(t, event.TypeDeleted, events[0].Type)
				assert.Equal(t, roomID, events[0].RoomID)

				return nil
			})

		err := svc.Delete(actorContext(), bookingID, true)

		time.Sleep(10 * time.Millisecond)

		assert.NoError(t, err)
	})

	t.Run("publish failure does not fail the delete", func(t *testing.T) {
		svc, d := newService(t)

		d.store.EXPECT().Delete(gomock.Any(), bookingID, gomock.Any()).Return(storedBooking(), nil)
		d.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(errors.New("broker down"))

		err := svc.Delete(actorContext(), bookingID, true)

		time.Sleep(10 * time.Millisecond)

		assert.NoError(t, err)
	})

	t.Run("missing booking", func(t *testing.T) {
		svc, d := newService(t)

		d.store.EXPECT().Delete(gomock.Any(), bookingID, gomock.Any()).Return(model.Booking{}, model.ErrBookingNotFound)

		err := svc.Delete(actorContext(), bookingID, true)

		assert.ErrorIs(t, err, model.ErrBookingNotFound)
	})
}

func TestBookingService_ReleaseElapsed(t *testing.T) {
	t.Run("announces every released booking", func(t *testing.T) {
		svc, d := newService(t)

		d.store.EXPECT().ReleaseElapsed(gomock.Any(), date(0), constant.ContextSystem).
			Return([]model.Booking{storedBooking(), storedBooking()}, nil)
		d.publisher.EXPECT().Publish(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		released, err := svc.ReleaseElapsed(context.Background())

		time.Sleep(10 * time.Millisecond)

		require.NoError(t, err)
		assert.Equal(t, 2, released)
	})

	t.Run("nothing elapsed", func(t *testing.T) {
		svc, d := newService(t)

		d.store.EXPECT().ReleaseElapsed(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)

		released, err := svc.ReleaseElapsed(context.Background())

		require.NoError(t, err)
		assert.Zero(t, released)
	})
}
