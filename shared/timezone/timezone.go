// Package timezone pins wall-clock reads to APP_TIMEZONE. The location is
// resolved from config on first use and falls back to UTC.
package timezone

import (
	"sync"
	"time"

	"hotel/config"

	"github.com/rs/zerolog/log"
)

var location = sync.OnceValue(func() *time.Location {
	return Load(config.Get().App.Timezone)
})

// Load resolves an IANA zone name such as "Asia/Jakarta". Empty or unknown
// names resolve to UTC.
func Load(name string) *time.Location {
	if name == "" {
		log.Warn().Msg("No timezone configured, using UTC")

		return time.UTC
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Error().Err(err).Str("timezone", name).Msg("Unknown timezone, using UTC")

		return time.UTC
	}

	log.Info().Str("timezone", loc.String()).Msg("Application timezone loaded")

	return loc
}

func GetLocation() *time.Location {
	return location()
}

func Now() time.Time {
	return time.Now().In(location())
}

func ToAppTime(t time.Time) time.Time {
	return t.In(location())
}

func Format(t time.Time, layout string) string {
	return ToAppTime(t).Format(layout)
}
