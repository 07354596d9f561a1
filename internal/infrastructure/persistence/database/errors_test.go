package database

import (
	"errors"
	"fmt"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/xiebiao/booksapi/internal/domain/account"
	apperrors "github.com/xiebiao/booksapi/pkg/errors"
)

func TestClassifyAccountInsert(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want *apperrors.AppError
	}{
		{
			name: "postgres username",
			err:  &pgconn.PgError{Code: "23505", ConstraintName: "account_username_key"},
			want: account.ErrUsernameExists,
		},
		{
			name: "postgres email",
			err:  fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505", ConstraintName: "account_email_key"}),
			want: account.ErrEmailExists,
		},
		{
			name: "postgres other constraint",
			err:  &pgconn.PgError{Code: "23502", ConstraintName: "account_phone_not_null"},
			want: account.ErrAccountInsert,
		},
		{
			name: "mysql duplicate entry",
			err:  &mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'ada' for key 'account.account_username_key'"},
			want: account.ErrUsernameExists,
		},
		{
			name: "sqlite unique",
			err:  errors.New("UNIQUE constraint failed: account.email"),
			want: account.ErrEmailExists,
		},
		{
			name: "unknown",
			err:  errors.New("connection reset"),
			want: account.ErrAccountInsert,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifyAccountInsert(tt.err)
			assert.ErrorIs(t, got, tt.want)
			assert.ErrorIs(t, got, tt.err)
		})
	}
}
