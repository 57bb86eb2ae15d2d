package postgres

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"

	"bank-records/internal/config"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"go.nhat.io/otelsql"
	semconv "go.opentelemetry.io/otel/semconv/v1.20.0"
)

const migrationTableName = "schema_migrations"

//go:embed migrations/*.sql
var migrationsFS embed.FS

// slogGooseLogger forwards goose output to slog. Fatalf does not exit.
type slogGooseLogger struct {
	logger *slog.Logger
}

func (l *slogGooseLogger) Printf(format string, v ...any) {
	l.logger.Info(fmt.Sprintf(format, v...))
}

func (l *slogGooseLogger) Fatalf(format string, v ...any) {
	l.logger.Error(fmt.Sprintf(format, v...))
}

// MigrationFiles lists the embedded migration scripts in apply order.
func MigrationFiles() ([]string, error) {
	return fs.Glob(migrationsFS, "migrations/*.sql")
}

// RunMigrations applies the embedded schema through an instrumented database/sql handle.
func RunMigrations(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) error {
	if cfg.URL == "" {
		return fmt.Errorf("database URL is empty in configuration")
	}
	migrationLogger := logger.With("component", "migrations")

	db, err := openInstrumentedDB(cfg.URL)
	if err != nil {
		return err
	}
	defer db.Close()

	goose.SetBaseFS(migrationsFS)
	goose.SetLogger(&slogGooseLogger{logger: migrationLogger})
	goose.SetTableName(migrationTableName)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set dialect: %w", err)
	}

	migrationLogger.InfoContext(ctx, "Applying database migrations")
	if err := goose.UpContext(ctx, db, "migrations"); err != nil {
		migrationLogger.ErrorContext(ctx, "Migration failed", slog.Any("error", err))
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	version, err := goose.GetDBVersionContext(ctx, db)
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	migrationLogger.InfoContext(ctx, "Database schema is up to date", slog.Int64("version", version))
	return nil
}

func openInstrumentedDB(dsn string) (*sql.DB, error) {
	driverName, err := otelsql.Register("pgx",
		otelsql.AllowRoot(),
		otelsql.TraceQueryWithoutArgs(),
		otelsql.WithSystem(semconv.DBSystemPostgreSQL),
		otelsql.WithInstanceName("migrations"),
	)
	if err != nil {
		return nil, fmt.Errorf("could not register otelsql: %w", err)
	}

	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("could not init db: %w", err)
	}

	if err := otelsql.RecordStats(db, otelsql.WithSystem(semconv.DBSystemPostgreSQL)); err != nil {
		db.Close()
		return nil, fmt.Errorf("could not record db stats: %w", err)
	}
	return db, nil
}
