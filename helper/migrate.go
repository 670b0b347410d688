package helper

//nolint:revive
import (
	"errors"
	"fmt"
	"net/url"

	"tourismrelay/config"
	"tourismrelay/infras/postgres"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog/log"
)

const (
	migrationSource = "file://migrations/postgres"

	ActionUp     = "up"
	ActionDown   = "down"
	ActionStepUp = "step-up"
	ActionDrop   = "drop"
)

var ErrUnknownAction = errors.New("unknown migration action")

// MigrationURL is the write DSN plus the migration bookkeeping table.
func MigrationURL(config *config.Config) string {
	dsn := postgres.WriteEndpoint(config).DSN()

	table := config.DB.Postgres.MigrationTable
	if table == "" {
		return dsn
	}

	return dsn + "&x-migrations-table=" + url.QueryEscape(table)
}

func Runner(config *config.Config, action string) error {
	mig, err := migrate.New(migrationSource, MigrationURL(config))
	if err != nil {
		return fmt.Errorf("error creating migrate instance: %w", err)
	}

	defer mig.Close()

	switch action {
	case ActionUp:
		err = mig.Up()
	case ActionDown:
		err = mig.Steps(-1)
	case ActionStepUp:
		err = mig.Steps(1)
	case ActionDrop:
		err = mig.Down()
	default:
		return fmt.Errorf("%w: %s", ErrUnknownAction, action)
	}

	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("error running migrations (%s): %w", action, err)
	}

	log.Info().Str("action", action).Msg("Database migrations completed successfully")

	return nil
}

func Up(config *config.Config) error {
	return Runner(config, ActionUp)
}
