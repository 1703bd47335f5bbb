package pg

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrFailedToParseConfig     = errors.New("pg.parse_config_failed")
	ErrFailedToOpenConnection  = errors.New("pg.open_connection_failed")
	ErrHealthcheckFailed       = errors.New("pg.healthcheck_failed")
	ErrFailedToApplyMigrations = errors.New("pg.apply_migrations_failed")
	ErrMigrationsDirNotFound   = errors.New("pg.migrations_dir_not_found")
)

// IsNotFoundError reports whether err is pgx's no-rows result.
func IsNotFoundError(err error) bool {
	return err != nil && errors.Is(err, pgx.ErrNoRows)
}

// IsDuplicateKeyError reports a unique constraint violation (SQLSTATE 23505),
// which the session store maps to a token hash collision.
func IsDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
