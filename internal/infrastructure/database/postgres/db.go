package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"bank-records/internal/infrastructure/monitoring"
	"bank-records/internal/pkg/apperrors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pashagolub/pgxmock/v4"
)

const pgUniqueViolation = "23505"

// Querier is satisfied by the pool and by an open transaction.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

type DBPool interface {
	Querier
	Begin(ctx context.Context) (pgx.Tx, error)
	Close()
}

var (
	_ DBPool  = (*pgxpool.Pool)(nil)
	_ DBPool  = (pgxmock.PgxPoolIface)(nil)
	_ Querier = (pgx.Tx)(nil)
)

var errMsgFormat = "%w: %w"

func translateDBError(err error, contextLogger *slog.Logger) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == pgUniqueViolation {
			contextLogger.Warn("Database unique constraint violation", "detail", pgErr.Detail, "constraint", pgErr.ConstraintName)
			return fmt.Errorf("%w: %s", apperrors.ErrAlreadyExists, pgErr.ConstraintName)
		}

		contextLogger.Error("PostgreSQL specific error", "code", pgErr.Code, "message", pgErr.Message, "detail", pgErr.Detail)
		return fmt.Errorf("%w: db error code %s: %w", apperrors.ErrDatabase, pgErr.Code, err)
	}

	contextLogger.Error("Generic database error", "error", err)
	return fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
}

// observe starts timing a named query. Call the returned func with the query's final error.
func observe(queryName string) func(errp *error) {
	start := time.Now()
	return func(errp *error) {
		monitoring.RecordDBQuery(queryName, *errp, time.Since(start))
	}
}
