package dao

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
	"github.com/ignisVeneficus/bistro/logging"
	"github.com/rs/zerolog"
)

//go:embed schema.sql
var schema string

type DBTX interface {
	ExecContext(context.Context, string, ...interface{}) (sql.Result, error)
	PrepareContext(context.Context, string) (*sql.Stmt, error)
	QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...interface{}) *sql.Row
}

// Queries runs the viewport statements on a connection pool or inside a transaction.
type Queries struct {
	db DBTX
}

func NewQueries(db DBTX) *Queries {
	return &Queries{db: db}
}

var (
	ErrDataNotFound     = errors.New("data not found")
	ErrDataDuplicateKey = errors.New("duplicate key")
	// ErrTxConflict means the transaction lost a lock race and may be run again.
	ErrTxConflict = errors.New("transaction conflict")
)

func GetDataNotFoundError(table string) error {
	return fmt.Errorf("%w, table: %s", ErrDataNotFound, table)
}

// MySQL / MariaDB error numbers
const (
	errDupEntry        = 1062
	errLockWaitTimeout = 1205
	errLockDeadlock    = 1213
	errNoReferencedRow = 1452
)

// NormalizeSQLError maps driver errors onto the package sentinels. Others pass through.
func NormalizeSQLError(err error) error {
	var mysqlErr *mysql.MySQLError
	if !errors.As(err, &mysqlErr) {
		return err
	}
	switch mysqlErr.Number {
	case errDupEntry:
		return ErrDataDuplicateKey
	case errLockWaitTimeout, errLockDeadlock:
		return fmt.Errorf("%w: %s", ErrTxConflict, mysqlErr.Message)
	case errNoReferencedRow:
		return GetDataNotFoundError("image_sources")
	}
	return err
}

const txAttempts = 2

// inTx runs fn in a serializable transaction and runs it once more when it loses a lock race.
func inTx(db *sql.DB, ctx context.Context, logg zerolog.Logger, fn func(q *Queries) error) error {
	return retryConflict(logg, func() error {
		tx, err := db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
		if err != nil {
			return err
		}
		defer tx.Rollback()
		if err := fn(NewQueries(tx)); err != nil {
			return err
		}
		return NormalizeSQLError(tx.Commit())
	})
}

func retryConflict(logg zerolog.Logger, fn func() error) error {
	var err error
	for attempt := 1; attempt <= txAttempts; attempt++ {
		if err = fn(); !errors.Is(err, ErrTxConflict) {
			return err
		}
		logging.ErrorContinue(logg, err, map[string]any{"attempt": attempt})
	}
	return err
}

// CreateDatabase runs the embedded schema; db must allow multiple statements.
func CreateDatabase(db *sql.DB, ctx context.Context) error {
	logg := logging.Enter(ctx, "dao.database.create", nil)
	if _, err := db.ExecContext(ctx, schema); err != nil {
		logging.ExitErr(logg, err)
		return err
	}
	logging.Exit(logg, "ok", nil)
	return nil
}

func returnWrapNotFound(logg zerolog.Logger, err error, entity string) error {
	if err == nil {
		logging.Exit(logg, "ok", nil)
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		logging.Exit(logg, "not found", nil)
		return GetDataNotFoundError(entity)
	}
	logging.ExitErr(logg, err)
	return err
}
