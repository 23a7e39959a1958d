package helper

//nolint:revive
import (
	"errors"
	"fmt"
	"net/url"

	"hotel/config"
	"hotel/infras/postgres"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog/log"
)

// MigrationDSN points migrate at the write database, recording applied
// versions in the configured migrations table.
func MigrationDSN(cfg *config.Config) string {
	pg := cfg.DB.Postgres
	dsn := postgres.DSN(pg.Write, pg.Prefix)

	if pg.MigrationTable == "" {
		return dsn
	}

	return dsn + "&x-migrations-table=" + url.QueryEscape(pg.MigrationTable)
}

func run(cfg *config.Config, name string, step func(*migrate.Migrate) error) error {
	mig, err := migrate.New(cfg.DB.Postgres.MigrationPath, MigrationDSN(cfg))
	if err != nil {
		return fmt.Errorf("error creating migrate instance: %w", err)
	}
	defer mig.Close()

	if err = step(mig); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration %s failed: %w", name, err)
	}

	version, dirty, _ := mig.Version()
	log.Info().Str("action", name).Uint("version", version).Bool("dirty", dirty).Msg("Database migration finished")

	return nil
}

// Up applies every pending migration.
func Up(cfg *config.Config) error {
	return run(cfg, "up", (*migrate.Migrate).Up)
}

func StepUp(cfg *config.Config) error {
	return run(cfg, "step-up", func(m *migrate.Migrate) error { return m.Steps(1) })
}

// Down rolls back the latest migration only.
func Down(cfg *config.Config) error {
	return run(cfg, "down", func(m *migrate.Migrate) error { return m.Steps(-1) })
}

// Drop rolls back every migration.
func Drop(cfg *config.Config) error {
	return run(cfg, "drop", (*migrate.Migrate).Down)
}
