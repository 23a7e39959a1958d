package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Booking=MockBookingService

import (
	"context"
	"fmt"
	"time"

	"hotel/config"
	"hotel/infras/otel"
	"hotel/internal/domains/booking/event"
	"hotel/internal/domains/booking/listing"
	"hotel/internal/domains/booking/model"
	"hotel/internal/domains/booking/model/dto"
	"hotel/internal/domains/booking/repository"
	"hotel/internal/domains/booking/validation"
	roomModel "hotel/internal/domains/room/model"
	roomService "hotel/internal/domains/room/service"
	"hotel/shared"
	"hotel/shared/cache"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/timezone"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetBooking  = model.CachePrefix + ":get"
	cacheListBooking = model.CachePrefix + ":list"
)

var listParams = gDto.QueryParams{
	SortBy:  model.TableName + "." + constant.DefaultValueSortBy,
	SortDir: constant.DefaultValueSortDir,
}

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.BookingResponse, error)
	List(ctx context.Context, state listing.State) (dto.BookingListResponse, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	Options(ctx context.Context) (dto.BookingOptionsResponse, error)
	Update(ctx context.Context, req dto.UpdateBookingRequest, id string) (dto.BookingResponse, error)
	Delete(ctx context.Context, id string, confirmed bool) error
	ReleaseElapsed(ctx context.Context) (int, error)
}

type serviceImpl struct {
	store     repository.Booking
	rooms     roomService.Room
	cfg       *config.Config
	cache     cache.RedisCache
	otel      otel.Otel
	publisher event.Publisher
}

func New(
	store repository.Booking,
	rooms roomService.Room,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
	publisher event.Publisher,
) Booking {
	return &serviceImpl{
		store:     store,
		rooms:     rooms,
		cfg:       cfg,
		cache:     cache,
		otel:      otel,
		publisher: publisher,
	}
}

// afterWrite drops every cached read the change may have touched and announces it.
func (s *serviceImpl) afterWrite(ctx context.Context, events ...event.Event) {
	go func() {
		c := context.WithoutCancel(ctx)

		for _, e := range events {
			if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetBooking, e.BookingID)); err != nil {
				log.Error().Err(err).Str("booking_id", e.BookingID).Msg("failed to delete booking cache")
			}
		}

		shared.InvalidateCaches(c, s.cache, cacheListBooking)
		shared.InvalidateCaches(c, s.cache, roomModel.CachePrefix)

		if err := s.publisher.Publish(c, events...); err != nil {
			log.Error().Err(err).Int("count", len(events)).Msg("failed to publish booking events")
		}
	}()
}

// fetch reads the joined booking straight from the store.
func (s *serviceImpl) fetch(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	item, err := s.store.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if item.ID == constant.Empty {
		return res, model.ErrBookingNotFound
	}

	res.FromModel(item)

	return res, nil
}

func checkRoomID(valid validation.Booking) error {
	if uuid.Validate(valid.RoomID) != nil {
		return model.ErrRoomNotFound
	}

	return nil
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	valid, err := validation.Validate(req.Input(), timezone.Now())
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	if err = checkRoomID(valid); err != nil {
		return res, err
	}

	actor := shared.ActorFromContext(ctx)
	booking := dto.ToModel(valid, actor)

	if err = s.store.Create(ctx, booking); err != nil {
		log.Error().Err(err).Str("room_id", booking.RoomID).Msg("failed to create booking")

		return res, err //nolint:wrapcheck
	}

	s.afterWrite(ctx, event.FromBooking(event.TypeCreated, booking, actor))

	return s.fetch(ctx, booking.ID)
}

// List searches and pages every booking. The joined list is cached as a whole.
func (s *serviceImpl) List(ctx context.Context, state listing.State) (res dto.BookingListResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".List")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	var items []model.ListItem

	if err = s.cache.Get(ctx, cacheListBooking, &items); err != nil {
		items, err = s.store.GetAll(ctx, listParams, gDto.FilterGroup{})
		if err != nil {
			log.Error().Err(err).Msg("failed to get bookings")

			return res, fmt.Errorf("failed to get bookings: %w", err)
		}

		go func() {
			if err := s.cache.Save(context.WithoutCancel(ctx), cacheListBooking, items, s.cfg.Cache.TTL); err != nil {
				log.Error().Err(err).Msg("failed to save bookings to cache")
			}
		}()
	}

	res.FromPage(state.Apply(items, s.cfg.Booking.PageSize), state.Term)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if uuid.Validate(id) != nil {
		return res, model.ErrBookingNotFound
	}

	cacheKey := shared.BuildCacheKey(cacheGetBooking, id)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	res, err = s.fetch(ctx, id)
	if err != nil {
		return res, err
	}

	go func() {
		if err := s.cache.Save(context.WithoutCancel(ctx), cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking to cache")
		}
	}()

	return res, nil
}

// Options lists the rooms a new booking may pick. With none left, submitting is disabled.
func (s *serviceImpl) Options(ctx context.Context) (res dto.BookingOptionsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Options")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	rooms, err := s.rooms.Available(ctx)
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	return dto.NewBookingOptions(rooms, validation.FormatDate(timezone.Now())), nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateBookingRequest, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if uuid.Validate(id) != nil {
		return res, model.ErrBookingNotFound
	}

	current, err := s.store.GetByID(ctx, id)
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	// A stay that already started keeps its check-in date valid.
	today := time.Time{}
	if req.MovesCheckIn(current) {
		today = timezone.Now()
	}

	valid, err := validation.Validate(req.Merge(current), today)
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	if err = checkRoomID(valid); err != nil {
		return res, err
	}

	actor := shared.ActorFromContext(ctx)
	updated := dto.ApplyTo(current, valid, actor)

	if err = s.store.Update(ctx, updated); err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to update booking")

		return res, err //nolint:wrapcheck
	}

	s.afterWrite(ctx, event.FromBooking(event.TypeUpdated, updated, actor))

	return s.fetch(ctx, id)
}

// Delete removes a booking once the caller confirmed it, freeing the room it held.
func (s *serviceImpl) Delete(ctx context.Context, id string, confirmed bool) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if !confirmed {
		return model.ErrNotConfirmed
	}

	if uuid.Validate(id) != nil {
		return model.ErrBookingNotFound
	}

	actor := shared.ActorFromContext(ctx)

	deleted, err := s.store.Delete(ctx, id, actor)
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to delete booking")

		return err //nolint:wrapcheck
	}

	s.afterWrite(ctx, event.FromBooking(event.TypeDeleted, deleted, actor))

	return nil
}

// ReleaseElapsed frees the rooms of bookings whose check-out date has come.
func (s *serviceImpl) ReleaseElapsed(ctx context.Context) (released int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ReleaseElapsed")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	bookings, err := s.store.ReleaseElapsed(ctx, validation.DateOf(timezone.Now()), constant.ContextSystem)
	if err != nil {
		log.Error().Err(err).Msg("failed to release elapsed bookings")

		return 0, err //nolint:wrapcheck
	}

	if len(bookings) == 0 {
		return 0, nil
	}

	events := make([]event.Event, len(bookings))
	for i, booking := range bookings {
		events[i] = event.FromBooking(event.TypeReleased, booking, constant.ContextSystem)
	}

	s.afterWrite(ctx, events...)

	log.Info().Int("released", len(bookings)).Msg("released elapsed bookings")

	return len(bookings), nil
}
