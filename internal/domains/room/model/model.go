package model

import "hotel/shared/model"

const (
	TableName  = "rooms"
	EntityName = "room"

	FieldID         = "id"
	FieldRoomTypeID = "room_type_id"
	FieldRoomNumber = "room_number"
	FieldStatus     = "status"
	FieldImage      = "image"

	RoomTypeTableName = "room_types"
)

const (
	StatusNotReserved = "not_reserved"
	StatusReserved    = "reserved"
)

// CachePrefix namespaces every cached room read. Booking mutations clear it too.
const CachePrefix = "room"

type Room struct {
	ID           string `db:"id"`
	RoomTypeID   int    `db:"room_type_id"`
	RoomTypeName string `db:"room_type_name" table:"room_types" column:"name"`
	RoomNumber   int    `db:"room_number"`
	Status       string `db:"status"`
	Image        string `db:"image"`
	model.Metadata
}

func (Room) GetJoinQuery() string {
	return "LEFT JOIN room_types ON room_types.id = rooms.room_type_id"
}

func (r Room) IsAvailable() bool {
	return r.Status == StatusNotReserved
}

// AvailableRooms keeps the rooms that can take a new booking, in their original order.
func AvailableRooms(rooms []Room) []Room {
	available := make([]Room, 0, len(rooms))

	for _, room := range rooms {
		if room.IsAvailable() {
			available = append(available, room)
		}
	}

	return available
}
