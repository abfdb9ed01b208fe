package models

import "errors"

var (
	ErrorDatabaseUndefined       = errors.New("database_undefined")
	ErrorDuplicateEntry          = errors.New("duplicate_entry")
	ErrorInsertFailed            = errors.New("insert_failed")
	ErrorInvalidInput            = errors.New("invalid_input")
	ErrorNotFound                = errors.New("not_found")
	ErrorRowsAffectedCheckFailed = errors.New("rows_affected_check_failed")
	ErrorSelectFailed            = errors.New("select_failed")
	ErrorSelectsFailed           = errors.New("selects_failed")
	ErrorStmtPreparationFailed   = errors.New("stmt_preparation_failed")

	mysqlErrorDuplicateEntryCode uint16 = 1062
)
