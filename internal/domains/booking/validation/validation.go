// Package validation checks a booking form before anything touches storage.
package validation

import (
	"net/http"
	"strings"
	"time"

	"hotel/shared/constant"
	"hotel/shared/failure"
)

// Rules are checked in declaration order and the first failing rule is reported.
var (
	ErrMissingCustomerInfo = &failure.Failure{Code: http.StatusBadRequest, Message: "customer name and phone are required"}
	ErrNoRoomSelected      = &failure.Failure{Code: http.StatusBadRequest, Message: "a room must be selected"}
	ErrInvalidDateRange    = &failure.Failure{Code: http.StatusBadRequest, Message: "check-out date must be after check-in date"}
	ErrCheckInInPast       = &failure.Failure{Code: http.StatusBadRequest, Message: "check-in date cannot be in the past"}
)

// Input is the raw booking form. Dates are YYYY-MM-DD strings.
type Input struct {
	CustomerName  string
	CustomerPhone string
	RoomID        string
	CheckInDate   string
	CheckOutDate  string
}

// Booking is a form that passed every rule, with its dates parsed.
type Booking struct {
	CustomerName  string
	CustomerPhone string
	RoomID        string
	CheckIn       time.Time
	CheckOut      time.Time
}

// Validate applies the booking rules to input. A zero today skips the
// check-in-in-the-past rule.
func Validate(input Input, today time.Time) (Booking, error) {
	name := strings.TrimSpace(input.CustomerName)
	phone := strings.TrimSpace(input.CustomerPhone)

	if name == constant.Empty || phone == constant.Empty {
		return Booking{}, ErrMissingCustomerInfo
	}

	roomID := strings.TrimSpace(input.RoomID)
	if roomID == constant.Empty {
		return Booking{}, ErrNoRoomSelected
	}

	checkIn, err := ParseDate(input.CheckInDate)
	if err != nil {
		return Booking{}, ErrInvalidDateRange
	}

	checkOut, err := ParseDate(input.CheckOutDate)
	if err != nil || !checkOut.After(checkIn) {
		return Booking{}, ErrInvalidDateRange
	}

	if !today.IsZero() && checkIn.Before(DateOf(today)) {
		return Booking{}, ErrCheckInInPast
	}

	return Booking{
		CustomerName:  name,
		CustomerPhone: phone,
		RoomID:        roomID,
		CheckIn:       checkIn,
		CheckOut:      checkOut,
	}, nil
}

// ParseDate reads a YYYY-MM-DD calendar date as midnight UTC.
func ParseDate(value string) (time.Time, error) {
	return time.Parse(constant.DateOnlyFormat, strings.TrimSpace(value)) //nolint:wrapcheck
}

// DateOf drops the clock from t, keeping the calendar date t shows in its own location.
func DateOf(t time.Time) time.Time {
	year, month, day := t.Date()

	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// FormatDate renders a calendar date as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return DateOf(t).Format(constant.DateOnlyFormat)
}
