package models

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"
)

func oneRowAffected(observed int64) bool {
	return observed == 1
}

func atMostOneRowAffected(observed int64) bool {
	return observed <= 1
}

type mysqlQueryInput struct {
	Ctx          context.Context
	Db           *sql.DB
	Stmt         string
	Args         []any
	RowsAffected func(int64) bool
	FnSource     string
	ProcessRows  func(*sql.Rows) error
	ProcessRow   func(*sql.Row) error
}

func (o mysqlQueryInput) context() context.Context {
	if o.Ctx == nil {
		return context.Background()
	}
	return o.Ctx
}

func prepareMysqlStmt(opts mysqlQueryInput, op string) (*sql.Stmt, error) {
	if opts.Db == nil {
		return nil, fmt.Errorf("%s: missing db input: %w", opts.FnSource, ErrorDatabaseUndefined)
	}
	inputStmt := strings.TrimSpace(opts.Stmt)
	inputOp := strings.SplitN(strings.ReplaceAll(inputStmt, "\n", " "), " ", 2)
	if strings.ToLower(inputOp[0]) != op {
		return nil, fmt.Errorf("%s: only '%s' statements are allowed: %w", opts.FnSource, op, ErrorInvalidInput)
	}
	stmt, err := opts.Db.PrepareContext(opts.context(), inputStmt)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to prepare %s statement: %w (%w)", opts.FnSource, op, ErrorStmtPreparationFailed, err)
	}
	return stmt, nil
}

// executeMysqlInsert returns the number of rows inserted, which is zero
// for an `ON DUPLICATE KEY UPDATE` that left an existing row unchanged
func executeMysqlInsert(opts mysqlQueryInput) (int64, error) {
	stmt, err := prepareMysqlStmt(opts, "insert")
	if err != nil {
		return 0, err
	}
	defer stmt.Close()
	results, err := stmt.ExecContext(opts.context(), opts.Args...)
	if err != nil {
		if isMysqlDuplicateError(err) {
			return 0, fmt.Errorf("%s: duplicate detected: %w: %w", opts.FnSource, ErrorDuplicateEntry, err)
		}
		return 0, fmt.Errorf("%s: failed to execute insert statement: %w (%w)", opts.FnSource, ErrorInsertFailed, err)
	}
	rowsAffected, err := results.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: failed to get n(rows) inserted: %w (%w)", opts.FnSource, ErrorRowsAffectedCheckFailed, err)
	}
	if opts.RowsAffected != nil && !opts.RowsAffected(rowsAffected) {
		return rowsAffected, fmt.Errorf("%s: n(rows) inserted was wrong (got %v): %w", opts.FnSource, rowsAffected, ErrorRowsAffectedCheckFailed)
	}
	return rowsAffected, nil
}

func executeMysqlSelect(opts mysqlQueryInput) error {
	if opts.ProcessRow == nil {
		return fmt.Errorf("%s: ProcessRow is undefined: %w", opts.FnSource, ErrorInvalidInput)
	}
	stmt, err := prepareMysqlStmt(opts, "select")
	if err != nil {
		return err
	}
	defer stmt.Close()
	row := stmt.QueryRowContext(opts.context(), opts.Args...)
	if row.Err() != nil {
		return fmt.Errorf("%s: failed to execute select statement: %w (%w)", opts.FnSource, ErrorSelectFailed, row.Err())
	}
	if err := opts.ProcessRow(row); err != nil {
		if isMysqlNotFoundError(err) {
			return fmt.Errorf("%s: no rows: %w: %w", opts.FnSource, ErrorNotFound, err)
		}
		return fmt.Errorf("%s: failed to process result: %w", opts.FnSource, err)
	}
	return nil
}

func executeMysqlSelects(opts mysqlQueryInput) error {
	if opts.ProcessRows == nil {
		return fmt.Errorf("%s: ProcessRows is undefined: %w", opts.FnSource, ErrorInvalidInput)
	}
	stmt, err := prepareMysqlStmt(opts, "select")
	if err != nil {
		return err
	}
	defer stmt.Close()
	rows, err := stmt.QueryContext(opts.context(), opts.Args...)
	if err != nil {
		return fmt.Errorf("%s: failed to execute select statement: %w (%w)", opts.FnSource, ErrorSelectsFailed, err)
	}
	defer rows.Close()
	counter := 0
	for rows.Next() {
		if err := opts.ProcessRows(rows); err != nil {
			return fmt.Errorf("%s: failed to process row[%v]: %w", opts.FnSource, counter, err)
		}
		counter++
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("%s: failed to iterate rows: %w (%w)", opts.FnSource, ErrorSelectsFailed, err)
	}
	return nil
}

func isMysqlNotFoundError(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

func isMysqlDuplicateError(err error) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == mysqlErrorDuplicateEntryCode
	}
	return false
}
