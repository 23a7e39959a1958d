package model

import "hotel/shared/failure"

var (
	ErrBookingNotFound = failure.NotFound("booking not found")
	ErrRoomNotFound    = failure.BadRequestFromString("selected room does not exist")
	ErrRoomUnavailable = failure.Conflict("selected room is already reserved")
	ErrNotConfirmed    = failure.PreconditionRequired("booking deletion must be confirmed")
)
