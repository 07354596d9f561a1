package database

import (
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// mysqlDuplicateEntry ER_DUP_ENTRY
const mysqlDuplicateEntry = 1062

// uniqueViolation 判断是否为唯一约束冲突,并返回能识别冲突列的提示
// - PostgreSQL: SQLSTATE 23505,提示为约束名(如account_username_key)
// - MySQL: 1062 Duplicate entry '...' for key 'account.account_username_key'
// - SQLite: UNIQUE constraint failed: account.username
func uniqueViolation(err error) (hint string, ok bool) {
	if err == nil {
		return "", false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.ConstraintName, pgErr.Code == pgerrcode.UniqueViolation
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Message, myErr.Number == mysqlDuplicateEntry
	}

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return err.Error(), true
	}

	msg := err.Error()
	if strings.Contains(msg, "Duplicate entry") || strings.Contains(msg, "UNIQUE constraint failed") {
		return msg, true
	}
	return "", false
}
