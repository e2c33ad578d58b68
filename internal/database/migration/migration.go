package migration

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"go.uber.org/zap"

	_ "github.com/golang-migrate/migrate/v4/database/postgres" // register postgres DB and SQL
	_ "github.com/golang-migrate/migrate/v4/source/file"       // register postgres File
)

func Migrate(dbURL string, migrationsPath string, verbose bool, log *zap.Logger) error {
	log.Info("Running database migration", zap.String("source", migrationsPath))

	dbMigrate, err := migrate.New(migrationsPath, dbURL)
	if err != nil {
		return fmt.Errorf("failed to initialise migrations: %w", err)
	}
	defer dbMigrate.Close()
	dbMigrate.Log = NewLogger(log, verbose)

	if err := dbMigrate.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			log.Info("Database migration: no change needed")
			return nil
		}
		log.Error("Database migration failed", zap.Error(err))
		return err
	}

	version, dirty, err := dbMigrate.Version()
	if err == nil {
		log.Info("Database migrated", zap.Uint("version", version), zap.Bool("dirty", dirty))
	}

	return nil
}

// Logger adapts zap to the migrate.Logger interface.
type Logger struct {
	logger  *zap.Logger
	verbose bool
}

func (l *Logger) Printf(format string, v ...any) {
	l.logger.Sugar().Infof("DB Migration: "+format, v...)
}

func (l *Logger) Verbose() bool {
	return l.verbose
}

func NewLogger(logger *zap.Logger, verbose bool) *Logger {
	return &Logger{
		logger:  logger,
		verbose: verbose,
	}
}
