package model

import (
	"database/sql"
	"hotel/shared/model"
	"time"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID            = "id"
	FieldCustomerName  = "customer_name"
	FieldCustomerPhone = "customer_phone"
	FieldRoomID        = "room_id"
	FieldCheckInDate   = "check_in_date"
	FieldCheckOutDate  = "check_out_date"
	FieldReleasedAt    = "released_at"
)

// CachePrefix namespaces every cached booking read.
const CachePrefix = "booking"

type Booking struct {
	ID            string       `db:"id"`
	CustomerName  string       `db:"customer_name"`
	CustomerPhone string       `db:"customer_phone"`
	RoomID        string       `db:"room_id"`
	CheckInDate   time.Time    `db:"check_in_date"`
	CheckOutDate  time.Time    `db:"check_out_date"`
	ReleasedAt    sql.NullTime `db:"released_at"`
	model.Metadata
}

// Active reports whether the booking still holds its room.
func (b Booking) Active() bool {
	return !b.ReleasedAt.Valid
}

// ListItem is a booking joined with the room it holds, as shown in the booking list.
type ListItem struct {
	ID            string       `db:"id"`
	CustomerName  string       `db:"customer_name"`
	CustomerPhone string       `db:"customer_phone"`
	RoomID        string       `db:"room_id"`
	RoomNumber    int          `db:"room_number"    table:"rooms"`
	RoomStatus    string       `db:"room_status"    table:"rooms" column:"status"`
	CheckInDate   time.Time    `db:"check_in_date"`
	CheckOutDate  time.Time    `db:"check_out_date"`
	ReleasedAt    sql.NullTime `db:"released_at"`
	model.Metadata
}

func (ListItem) GetJoinQuery() string {
	return "INNER JOIN rooms ON rooms.id = bookings.room_id"
}
