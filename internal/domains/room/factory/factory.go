// Package factory builds batches of rooms for seeding a fresh database.
package factory

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"hotel/internal/domains/room/model"
	gModel "hotel/shared/model"
	"hotel/shared/timezone"

	"github.com/google/uuid"
)

const (
	MinRoomNumber = 100
	MaxRoomNumber = 999

	seedActor = "seeder"
)

var ErrNoRoomTypes = errors.New("no room types to seed from")

// Generate returns count rooms with distinct numbers in [MinRoomNumber, MaxRoomNumber],
// skipping numbers already taken. Every generated room starts as not reserved.
func Generate(rng *rand.Rand, count int, roomTypeIDs []int, taken []int) ([]model.Room, error) {
	if len(roomTypeIDs) == 0 {
		return nil, ErrNoRoomTypes
	}

	used := make(map[int]struct{}, len(taken)+count)
	for _, number := range taken {
		used[number] = struct{}{}
	}

	free := make([]int, 0, MaxRoomNumber-MinRoomNumber+1)
	for number := MinRoomNumber; number <= MaxRoomNumber; number++ {
		if _, ok := used[number]; !ok {
			free = append(free, number)
		}
	}

	if count > len(free) {
		return nil, fmt.Errorf("cannot seed %d rooms, only %d room numbers left", count, len(free))
	}

	rng.Shuffle(len(free), func(i, j int) { free[i], free[j] = free[j], free[i] })

	now := timezone.Now()
	rooms := make([]model.Room, count)

	for i := range rooms {
		rooms[i] = model.Room{
			ID:         uuid.NewString(),
			RoomTypeID: roomTypeIDs[rng.IntN(len(roomTypeIDs))],
			RoomNumber: free[i],
			Status:     model.StatusNotReserved,
			Metadata: gModel.Metadata{
				CreatedAt:  now,
				ModifiedAt: now,
				CreatedBy:  seedActor,
				ModifiedBy: seedActor,
			},
		}
	}

	return rooms, nil
}
