package helper

//nolint:revive
import (
	"errors"
	"fmt"
	"roombook/config"
	"roombook/infras/postgres"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog/log"
)

const migrationSource = "file://migrations/postgres"

const (
	ActionUp      = "up"
	ActionDown    = "down"
	ActionDrop    = "drop"
	ActionStepUp  = "step-up"
	ActionVersion = "version"
)

var ErrUnknownAction = errors.New("unknown migration action")

// ConnectionString builds the golang-migrate database URL for the write database.
func ConnectionString(config *config.Config) string {
	dsn := postgres.WriteEndpoint(config).URL()

	if table := config.DB.Postgres.MigrationTable; table != "" {
		query := dsn.Query()
		query.Set("x-migrations-table", table)
		dsn.RawQuery = query.Encode()
	}

	return dsn.String()
}

func getConnection(config *config.Config) (*migrate.Migrate, error) {
	mig, err := migrate.New(migrationSource, ConnectionString(config))
	if err != nil {
		return nil, fmt.Errorf("error creating migrate instance: %w", err)
	}

	return mig, nil
}

func Runner(config *config.Config, action string) error {
	mig, err := getConnection(config)
	if err != nil {
		return err
	}

	defer func() {
		if srcErr, dbErr := mig.Close(); srcErr != nil || dbErr != nil {
			log.Warn().AnErr("source", srcErr).AnErr("database", dbErr).Msg("failed to close migrate instance")
		}
	}()

	switch action {
	case ActionUp:
		err = ignoreNoChange(mig.Up())
	case ActionStepUp:
		err = ignoreNoChange(mig.Steps(1))
	case ActionDown:
		err = ignoreNoChange(mig.Steps(-1))
	case ActionDrop:
		err = ignoreNoChange(mig.Down())
	case ActionVersion:
		return logVersion(mig)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownAction, action)
	}

	if err != nil {
		return fmt.Errorf("error running %s migration: %w", action, err)
	}

	log.Info().Str("action", action).Msg("Database migrations completed successfully")

	return logVersion(mig)
}

// Force marks version as applied and clears the dirty flag left by a failed migration.
func Force(config *config.Config, version int) error {
	mig, err := getConnection(config)
	if err != nil {
		return err
	}

	defer mig.Close()

	if err = mig.Force(version); err != nil {
		return fmt.Errorf("error forcing migration version %d: %w", version, err)
	}

	log.Info().Int("version", version).Msg("Database migration version forced")

	return nil
}

func ignoreNoChange(err error) error {
	if errors.Is(err, migrate.ErrNoChange) {
		return nil
	}

	return err
}

func logVersion(mig *migrate.Migrate) error {
	version, dirty, err := mig.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		log.Info().Msg("Database has no migrations applied")

		return nil
	}

	if err != nil {
		return fmt.Errorf("error reading migration version: %w", err)
	}

	log.Info().Uint("version", version).Bool("dirty", dirty).Msg("Database migration version")

	return nil
}

func Up(config *config.Config) error {
	return Runner(config, ActionUp)
}

func StepUp(config *config.Config) error {
	return Runner(config, ActionStepUp)
}

func Down(config *config.Config) error {
	return Runner(config, ActionDown)
}

func Drop(config *config.Config) error {
	return Runner(config, ActionDrop)
}
