package helper

//nolint:revive
import (
	"errors"
	"fmt"
	"net"
	"kosan/config"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog/log"
)

const migrationSource = "file://migrations/postgres"

// Runner executes a migration action against the write database. Supported
// actions are "up", "step-up", "down" (one step back), and "drop" (all the
// way down). ErrNoChange is treated as success everywhere.
func Runner(config *config.Config, action string) error {
	mig, err := newMigrator(config)
	if err != nil {
		return fmt.Errorf("error creating migrate instance: %w", err)
	}

	defer mig.Close()

	var runErr error
	switch action {
	case "up":
		runErr = mig.Up()
	case "step-up":
		runErr = mig.Steps(1)
	case "down":
		runErr = mig.Steps(-1)
	case "drop":
		runErr = mig.Down()
	default:
		return nil
	}

	if runErr != nil && !errors.Is(runErr, migrate.ErrNoChange) {
		return fmt.Errorf("error running migrations: %w", runErr)
	}

	log.Info().Str("action", action).Msg("Database migration completed")

	return nil
}

func Up(config *config.Config) error {
	return Runner(config, "up")
}

func StepUp(config *config.Config) error {
	return Runner(config, "step-up")
}

func Down(config *config.Config) error {
	return Runner(config, "down")
}

func Drop(config *config.Config) error {
	return Runner(config, "drop")
}

func newMigrator(config *config.Config) (*migrate.Migrate, error) {
	dbName := config.DB.Postgres.Write.Name
	if config.DB.Postgres.Prefix != "" {
		dbName = config.DB.Postgres.Prefix + dbName
	}

	connectionString := fmt.Sprintf("postgres://%s:%s@%s/%s?sslmode=%s&x-migrations-table=%s",
		config.DB.Postgres.Write.Username,
		config.DB.Postgres.Write.Password,
		net.JoinHostPort(config.DB.Postgres.Write.Host, config.DB.Postgres.Write.Port),
		dbName,
		config.DB.Postgres.Write.SSLMode,
		config.DB.Postgres.MigrationTable,
	)

	mig, err := migrate.New(migrationSource, connectionString)
	if err != nil {
		return nil, fmt.Errorf("error creating migrate instance: %w", err)
	}

	return mig, nil
}
