package factory_test

import (
	"math/rand/v2"
	"testing"

	"hotel/internal/domains/room/factory"
	"hotel/internal/domains/room/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	types := []int{1, 2, 3}

	rooms, err := factory.Generate(rng, 50, types, []int{100, 101})
	require.NoError(t, err)
	require.Len(t, rooms, 50)

	seen := map[int]bool{}

	for _, room := range rooms {
		assert.Equal(t, model.StatusNotReserved, room.Status)
		assert.Contains(t, types, room.RoomTypeID)
		assert.GreaterOrEqual(t, room.RoomNumber, factory.MinRoomNumber)
		assert.LessOrEqual(t, room.RoomNumber, factory.MaxRoomNumber)
		assert.NotContains(t, []int{100, 101}, room.RoomNumber)
		assert.False(t, seen[room.RoomNumber], "room number %d generated twice", room.RoomNumber)

		seen[room.RoomNumber] = true
	}
}

func TestGenerate_Exhausted(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))

	rooms, err := factory.Generate(rng, 900, []int{1}, nil)
	require.NoError(t, err)
	assert.Len(t, rooms, 900)

	_, err = factory.Generate(rng, 1, []int{1}, []int{100})
	assert.NoError(t, err)

	_, err = factory.Generate(rng, 900, []int{1}, []int{100})
	assert.Error(t, err)
}

func TestGenerate_NoRoomTypes(t *testing.T) {
	_, err := factory.Generate(rand.New(rand.NewPCG(1, 2)), 1, nil, nil)

	assert.ErrorIs(t, err, factory.ErrNoRoomTypes)
}
