package model_test

import (
	"hotel/internal/domains/room/model"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAvailableRooms(t *testing.T) {
	rooms := []model.Room{
		{ID: "r1", RoomNumber: 101, Status: model.StatusReserved},
		{ID: "r2", RoomNumber: 102, Status: model.StatusNotReserved},
		{ID: "r3", RoomNumber: 103, Status: model.StatusNotReserved},
	}

	available := model.AvailableRooms(rooms)

	assert.Equal(t, []model.Room{rooms[1], rooms[2]}, available)
	assert.Len(t, rooms, 3, "input must not be modified")
}

func TestAvailableRooms_Idempotent(t *testing.T) {
	rooms := []model.Room{
		{ID: "r1", Status: model.StatusNotReserved},
		{ID: "r2", Status: model.StatusReserved},
		{ID: "r3", Status: model.StatusNotReserved},
		{ID: "r4", Status: model.StatusReserved},
	}

	once := model.AvailableRooms(rooms)
	twice := model.AvailableRooms(once)

	assert.Equal(t, once, twice)
}

func TestAvailableRooms_Empty(t *testing.T) {
	assert.Empty(t, model.AvailableRooms(nil))
	assert.Empty(t, model.AvailableRooms([]model.Room{{ID: "r1", Status: model.StatusReserved}}))
}

func TestAvailableRooms_SubsetInvariant(t *testing.T) {
	rooms := []model.Room{
		{ID: "a", Status: model.StatusNotReserved},
		{ID: "b", Status: model.StatusReserved},
		{ID: "c", Status: model.StatusNotReserved},
	}

	for _, room := range model.AvailableRooms(rooms) {
		assert.Contains(t, rooms, room)
		assert.Equal(t, model.StatusNotReserved, room.Status)
	}
}
