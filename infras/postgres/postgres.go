package postgres

//nolint:revive
import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"roombook/config"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	defaultMaxIdleConnection = 10
	defaultMaxOpenConnection = 10
	defaultMaxRetry          = 1
)

var ErrNoConnection = errors.New("postgres connection could not be established")

// Connection holds the read replica and the primary used for writes.
type Connection struct {
	Read  *sqlx.DB
	Write *sqlx.DB
}

// Endpoint is one postgres server as described by the DB_POSTGRES_READ_* or DB_POSTGRES_WRITE_* variables.
type Endpoint struct {
	Name     string
	Host     string
	Port     string
	Username string
	Password string
	Database string
	SSLMode  string
	Timezone string
}

// URL renders the endpoint as a postgres:// connection URL. Credentials are escaped.
func (e Endpoint) URL() *url.URL {
	query := url.Values{}

	if e.SSLMode != "" {
		query.Set("sslmode", e.SSLMode)
	}

	if e.Timezone != "" {
		query.Set("timezone", e.Timezone)
	}

	return &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(e.Username, e.Password),
		Host:     net.JoinHostPort(e.Host, e.Port),
		Path:     "/" + e.Database,
		RawQuery: query.Encode(),
	}
}

// New opens both pools and exits the process when either cannot be reached.
func New(config *config.Config) *Connection {
	read, err := Connect(ReadEndpoint(config), config)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to read database")
	}

	write, err := Connect(WriteEndpoint(config), config)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to write database")
	}

	return &Connection{
		Read:  read,
		Write: write,
	}
}

func databaseName(config *config.Config, baseName string) string {
	return config.DB.Postgres.Prefix + baseName
}

func WriteEndpoint(config *config.Config) Endpoint {
	write := config.DB.Postgres.Write

	return Endpoint{
		Name:     "write",
		Host:     write.Host,
		Port:     write.Port,
		Username: write.Username,
		Password: write.Password,
		Database: databaseName(config, write.Name),
		SSLMode:  write.SSLMode,
		Timezone: write.Timezone,
	}
}

func ReadEndpoint(config *config.Config) Endpoint {
	read := config.DB.Postgres.Read

	return Endpoint{
		Name:     "read",
		Host:     read.Host,
		Port:     read.Port,
		Username: read.Username,
		Password: read.Password,
		Database: databaseName(config, read.Name),
		SSLMode:  read.SSLMode,
		Timezone: read.Timezone,
	}
}

// Connect dials the endpoint, retrying DB_POSTGRES_MAX_RETRY times, and applies the pool limits.
func Connect(endpoint Endpoint, config *config.Config) (*sqlx.DB, error) {
	maxRetry := config.DB.Postgres.MaxRetry
	if maxRetry < defaultMaxRetry {
		maxRetry = defaultMaxRetry
	}

	logger := log.With().
		Str("name", endpoint.Name).
		Str("host", endpoint.Host).
		Str("port", endpoint.Port).
		Str("dbName", endpoint.Database).
		Logger()

	dsn := endpoint.URL().String()

	var lastErr error

	for attempt := range maxRetry {
		sqlDB, err := sqlx.Connect("postgres", dsn)
		if err == nil {
			configurePool(sqlDB, config)
			logger.Info().Msg("Connected to database")

			return sqlDB, nil
		}

		lastErr = err

		logger.Error().Err(err).Int("attempt", attempt+1).Msg("Failed connecting to database, retrying")

		if attempt < maxRetry-1 {
			time.Sleep(time.Duration(config.DB.Postgres.RetryWaitTime) * time.Second)
		}
	}

	return nil, fmt.Errorf("%w: %s: %w", ErrNoConnection, endpoint.Name, lastErr)
}

func configurePool(db *sqlx.DB, config *config.Config) {
	pool := config.DB.Postgres.Pool

	maxOpen := pool.MaxOpen
	if maxOpen <= 0 {
		maxOpen = defaultMaxOpenConnection
	}

	maxIdle := pool.MaxIdle
	if maxIdle <= 0 {
		maxIdle = defaultMaxIdleConnection
	}

	db.SetMaxOpenConns(maxOpen)
	db.SetMaxIdleConns(min(maxIdle, maxOpen))

	if pool.MaxLifetimeMinutes > 0 {
		db.SetConnMaxLifetime(time.Duration(pool.MaxLifetimeMinutes) * time.Minute)
	}
}
