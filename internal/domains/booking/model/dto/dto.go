package dto

import (
	"hotel/internal/domains/booking/listing"
	"hotel/internal/domains/booking/model"
	"hotel/internal/domains/booking/validation"
	roomDto "hotel/internal/domains/room/model/dto"
	gDto "hotel/shared/dto"
	gModel "hotel/shared/model"
	"hotel/shared/timezone"

	"github.com/google/uuid"
)

const NoRoomsAvailableMessage = "no rooms available"

// CreateBookingRequest is the booking form. Presence and date rules are checked
// by the validation package so that they are reported in a fixed order.
type CreateBookingRequest struct {
	CustomerName  string `json:"customer_name"  validate:"max=100"`
	CustomerPhone string `json:"customer_phone" validate:"max=20"`
	RoomID        string `json:"room_id"`
	CheckInDate   string `json:"check_in_date"`
	CheckOutDate  string `json:"check_out_date"`
}

func (c *CreateBookingRequest) Input() validation.Input {
	return validation.Input{
		CustomerName:  c.CustomerName,
		CustomerPhone: c.CustomerPhone,
		RoomID:        c.RoomID,
		CheckInDate:   c.CheckInDate,
		CheckOutDate:  c.CheckOutDate,
	}
}

func ToModel(valid validation.Booking, user string) model.Booking {
	now := timezone.Now()

	return model.Booking{
		ID:            uuid.NewString(),
		CustomerName:  valid.CustomerName,
		CustomerPhone: valid.CustomerPhone,
		RoomID:        valid.RoomID,
		CheckInDate:   valid.CheckIn,
		CheckOutDate:  valid.CheckOut,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

// UpdateBookingRequest is a partial edit. Omitted fields keep their stored value.
type UpdateBookingRequest struct {
	CustomerName  *string `json:"customer_name"  validate:"omitempty,max=100"`
	CustomerPhone *string `json:"customer_phone" validate:"omitempty,max=20"`
	RoomID        *string `json:"room_id"`
	CheckInDate   *string `json:"check_in_date"`
	CheckOutDate  *string `json:"check_out_date"`
}

// Merge overlays the request on the stored booking.
func (u *UpdateBookingRequest) Merge(current model.Booking) validation.Input {
	return validation.Input{
		CustomerName:  valueOr(u.CustomerName, current.CustomerName),
		CustomerPhone: valueOr(u.CustomerPhone, current.CustomerPhone),
		RoomID:        valueOr(u.RoomID, current.RoomID),
		CheckInDate:   valueOr(u.CheckInDate, validation.FormatDate(current.CheckInDate)),
		CheckOutDate:  valueOr(u.CheckOutDate, validation.FormatDate(current.CheckOutDate)),
	}
}

// MovesCheckIn reports whether the request sets a check-in date other than the stored one.
func (u *UpdateBookingRequest) MovesCheckIn(current model.Booking) bool {
	return u.CheckInDate != nil && *u.CheckInDate != validation.FormatDate(current.CheckInDate)
}

func valueOr(value *string, fallback string) string {
	if value == nil {
		return fallback
	}

	return *value
}

// ApplyTo returns current with the validated values and the editor recorded.
func ApplyTo(current model.Booking, valid validation.Booking, user string) model.Booking {
	current.CustomerName = valid.CustomerName
	current.CustomerPhone = valid.CustomerPhone
	current.RoomID = valid.RoomID
	current.CheckInDate = valid.CheckIn
	current.CheckOutDate = valid.CheckOut
	current.ModifiedAt = timezone.Now()
	current.ModifiedBy = user

	return current
}

// BookingResponse shows the literal room status held by the booked room.
type BookingResponse struct {
	ID            string `json:"id"`
	CustomerName  string `json:"customer_name"`
	CustomerPhone string `json:"customer_phone"`
	RoomID        string `json:"room_id"`
	RoomNumber    int    `json:"room_number"`
	RoomStatus    string `json:"room_status"`
	CheckInDate   string `json:"check_in_date"`
	CheckOutDate  string `json:"check_out_date"`
	Active        bool   `json:"active"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(item model.ListItem) {
	r.ID = item.ID
	r.CustomerName = item.CustomerName
	r.CustomerPhone = item.CustomerPhone
	r.RoomID = item.RoomID
	r.RoomNumber = item.RoomNumber
	r.RoomStatus = item.RoomStatus
	r.CheckInDate = validation.FormatDate(item.CheckInDate)
	r.CheckOutDate = validation.FormatDate(item.CheckOutDate)
	r.Active = !item.ReleasedAt.Valid
	r.Metadata.FromModel(item.Metadata)
}

type BookingListResponse struct {
	Bookings   []BookingResponse `json:"bookings"`
	Search     string            `json:"search"`
	Page       int               `json:"page"`
	TotalPages int               `json:"total_pages"`
	TotalItems int               `json:"total_items"`
	PageSize   int               `json:"page_size"`
	Empty      bool              `json:"empty"`
}

func (r *BookingListResponse) FromPage(page listing.Page, term string) {
	r.Search = term
	r.Page = page.Page
	r.TotalPages = page.TotalPages
	r.TotalItems = page.TotalItems
	r.PageSize = page.PageSize
	r.Empty = page.Empty

	r.Bookings = make([]BookingResponse, len(page.Items))
	for i, item := range page.Items {
		r.Bookings[i].FromModel(item)
	}
}

// BookingOptionsResponse is what a new booking form needs: the rooms it may pick
// and whether submitting is possible at all.
type BookingOptionsResponse struct {
	Rooms          []roomDto.RoomResponse `json:"rooms"`
	CanSubmit      bool                   `json:"can_submit"`
	Message        string                 `json:"message,omitempty"`
	MinCheckInDate string                 `json:"min_check_in_date"`
}

func NewBookingOptions(rooms []roomDto.RoomResponse, today string) BookingOptionsResponse {
	res := BookingOptionsResponse{
		Rooms:          rooms,
		CanSubmit:      len(rooms) > 0,
		MinCheckInDate: today,
	}

	if res.Rooms == nil {
		res.Rooms = []roomDto.RoomResponse{}
	}

	if !res.CanSubmit {
		res.Message = NoRoomsAvailableMessage
	}

	return res
}
