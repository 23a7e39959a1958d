package postgres

//nolint:revive
import (
	"fmt"
	"net"
	"net/url"
	"time"

	"hotel/config"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	driverName         = "postgres"
	maxIdleConnections = 10
	maxOpenConnections = 10
)

// Connection holds the read and write pools. Tests may point both at one pool.
type Connection struct {
	Read  *sqlx.DB
	Write *sqlx.DB
}

func New(cfg *config.Config) *Connection {
	pg := cfg.DB.Postgres

	conn := &Connection{
		Read:  connect("read", DSN(pg.Read, pg.Prefix), pg.MaxRetry, pg.RetryWaitTime),
		Write: connect("write", DSN(pg.Write, pg.Prefix), pg.MaxRetry, pg.RetryWaitTime),
	}

	if conn.Read == nil || conn.Write == nil {
		log.Fatal().Int("maxRetry", pg.MaxRetry).Msg("Could not connect to database")
	}

	return conn
}

func (c *Connection) Close() error {
	if err := c.Write.Close(); err != nil {
		return fmt.Errorf("closing write connection: %w", err)
	}

	if c.Read == c.Write {
		return nil
	}

	if err := c.Read.Close(); err != nil {
		return fmt.Errorf("closing read connection: %w", err)
	}

	return nil
}

// DSN renders node as a lib/pq URL. The database name is prefixed, and a node
// timezone is passed on as the session TimeZone.
func DSN(node config.PostgresNode, prefix string) string {
	query := url.Values{}
	query.Set("sslmode", node.SSLMode)

	if node.Timezone != "" {
		query.Set("timezone", node.Timezone)
	}

	dsn := url.URL{
		Scheme:   driverName,
		User:     url.UserPassword(node.Username, node.Password),
		Host:     net.JoinHostPort(node.Host, node.Port),
		Path:     prefix + node.Name,
		RawQuery: query.Encode(),
	}

	return dsn.String()
}

// connect retries until the database answers or attempts run out. It returns
// nil when every attempt failed.
func connect(name, dsn string, attempts, waitSeconds int) *sqlx.DB {
	var lastErr error

	for attempt := 1; attempt <= max(attempts, 1); attempt++ {
		db, err := sqlx.Connect(driverName, dsn)
		if err == nil {
			db.SetMaxIdleConns(maxIdleConnections)
			db.SetMaxOpenConns(maxOpenConnections)

			log.Info().Str("name", name).Int("attempt", attempt).Msg("Connected to database")

			return db
		}

		lastErr = err

		log.Error().Err(err).Str("name", name).Int("attempt", attempt).Msg("Failed connecting to database, retrying")
		time.Sleep(time.Duration(waitSeconds) * time.Second)
	}

	log.Error().Err(lastErr).Str("name", name).Msg("Giving up on database")

	return nil
}
