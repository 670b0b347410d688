package postgres_test

import (
	"testing"

	"tourismrelay/config"
	"tourismrelay/infras/postgres"

	"github.com/stretchr/testify/assert"
)

func TestEndpoint_DSN(t *testing.T) {
	cfg := &config.Config{}
	cfg.DB.Postgres.Prefix = "dev_"
	cfg.DB.Postgres.Write.Username = "relay"
	cfg.DB.Postgres.Write.Password = "secret"
	cfg.DB.Postgres.Write.Host = "db"
	cfg.DB.Postgres.Write.Port = "5432"
	cfg.DB.Postgres.Write.Name = "bookings"
	cfg.DB.Postgres.Write.SSLMode = "require"
	cfg.DB.Postgres.Read.Host = "replica"
	cfg.DB.Postgres.Read.Port = "5433"
	cfg.DB.Postgres.Read.Name = "bookings"

	assert.Equal(t, "postgres://relay:secret@db:5432/dev_bookings?sslmode=require", postgres.WriteEndpoint(cfg).DSN())
	assert.Equal(t, "postgres://:@replica:5433/dev_bookings?sslmode=disable", postgres.ReadEndpoint(cfg).DSN())
}
