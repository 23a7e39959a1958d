package main

import (
	"context"
	"math/rand/v2"
	"os"
	"strconv"

	"hotel/config"
	"hotel/di"
	"hotel/internal/domains/room/factory"
	"hotel/shared/dto"
	"hotel/shared/logger"

	"github.com/rs/zerolog/log"
)

const defaultRoomCount = 20

// seed adds rooms with random free numbers to the configured database.
// Usage: seed [count]
func main() {
	cfg := config.Get()

	logger.InitLogger(cfg.Server.Env)

	logger.SetLogLevel(cfg)

	count := defaultRoomCount

	if len(os.Args) > 1 {
		n, err := strconv.Atoi(os.Args[1])
		if err != nil || n < 1 {
			log.Fatal().Str("count", os.Args[1]).Msg("Room count must be a positive number")
		}

		count = n
	}

	ctx := context.Background()
	repo := di.InitializeRoomRepository()

	roomTypeIDs, err := repo.GetRoomTypeIDs(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load room types")
	}

	existing, err := repo.GetAll(ctx, dto.QueryParams{}, dto.FilterGroup{})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load existing rooms")
	}

	taken := make([]int, len(existing))
	for i, room := range existing {
		taken[i] = room.RoomNumber
	}

	rooms, err := factory.Generate(rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())), count, roomTypeIDs, taken) //nolint:gosec
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to generate rooms")
	}

	if err := repo.InsertBulk(ctx, rooms); err != nil {
		log.Fatal().Err(err).Msg("Failed to insert rooms")
	}

	log.Info().Int("count", len(rooms)).Msg("Rooms seeded")
}
