package postgres

//nolint:revive
import (
	"fmt"
	"net"
	"time"

	"tourismrelay/config"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	postgresMaxIdleConnection = 10
	postgresMaxOpenConnection = 20
	postgresConnMaxLifetime   = 30 * time.Minute
)

// Connection splits reads from writes. Settlement always goes through Write.
type Connection struct {
	Read  *sqlx.DB
	Write *sqlx.DB
}

// Endpoint describes one postgres server.
type Endpoint struct {
	Username string
	Password string
	Host     string
	Port     string
	Name     string
	SSLMode  string
}

func New(config *config.Config) *Connection {
	pg := config.DB.Postgres

	return &Connection{
		Read:  Connect("read", ReadEndpoint(config), pg.MaxRetry, pg.RetryWaitTime),
		Write: Connect("write", WriteEndpoint(config), pg.MaxRetry, pg.RetryWaitTime),
	}
}

func dbName(config *config.Config, baseName string) string {
	return config.DB.Postgres.Prefix + baseName
}

func ReadEndpoint(config *config.Config) Endpoint {
	read := config.DB.Postgres.Read

	return Endpoint{
		Username: read.Username,
		Password: read.Password,
		Host:     read.Host,
		Port:     read.Port,
		Name:     dbName(config, read.Name),
		SSLMode:  read.SSLMode,
	}
}

func WriteEndpoint(config *config.Config) Endpoint {
	write := config.DB.Postgres.Write

	return Endpoint{
		Username: write.Username,
		Password: write.Password,
		Host:     write.Host,
		Port:     write.Port,
		Name:     dbName(config, write.Name),
		SSLMode:  write.SSLMode,
	}
}

// DSN renders the endpoint as a postgres URL.
func (e Endpoint) DSN() string {
	sslMode := e.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	return fmt.Sprintf(
		"postgres://%s:%s@%s/%s?sslmode=%s",
		e.Username,
		e.Password,
		net.JoinHostPort(e.Host, e.Port),
		e.Name,
		sslMode,
	)
}

// Connect dials the endpoint, retrying maxRetry times before giving up fatally.
func Connect(name string, endpoint Endpoint, maxRetry, waitTime int) *sqlx.DB {
	for retry := range max(maxRetry, 1) {
		sqlDB, err := sqlx.Connect("postgres", endpoint.DSN())
		if err == nil {
			log.
				Info().
				Str("name", name).
				Str("host", endpoint.Host).
				Str("dbName", endpoint.Name).
				Msg("Connected to database")

			sqlDB.SetMaxIdleConns(postgresMaxIdleConnection)
			sqlDB.SetMaxOpenConns(postgresMaxOpenConnection)
			sqlDB.SetConnMaxLifetime(postgresConnMaxLifetime)

			return sqlDB
		}

		log.
			Error().
			Err(err).
			Str("name", name).
			Str("host", endpoint.Host).
			Str("dbName", endpoint.Name).
			Int("attempt", retry+1).
			Msg("Failed connecting to database, retrying")

		time.Sleep(time.Duration(waitTime) * time.Second)
	}

	log.Fatal().Str("name", name).Str("host", endpoint.Host).Msg("Giving up connecting to database")

	return nil
}
