package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	cases := map[int]int{
		ErrCodeInvalidParams:  http.StatusBadRequest,
		ErrCodeDuplicateEntry: http.StatusBadRequest,
		ErrCodeUnauthorized:   http.StatusUnauthorized,
		ErrCodeInvalidToken:   http.StatusForbidden,
		ErrCodeNotFound:       http.StatusNotFound,
		ErrCodeDataIntegrity:  http.StatusInternalServerError,
		ErrCodeStorage:        http.StatusInternalServerError,
		42:                    http.StatusInternalServerError,
	}
	for code, want := range cases {
		assert.Equal(t, want, New(code, "x").HTTPStatus(), "code %d", code)
	}
}

func TestStorageKeepsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := fmt.Errorf("rate: %w", Storage(cause))

	assert.ErrorIs(t, err, ErrStorage)
	assert.ErrorIs(t, err, cause)
	assert.True(t, IsCode(err, ErrCodeStorage))
	assert.Equal(t, "server error - contact support", GetAppError(err).Message)
}

func TestIsComparesMessage(t *testing.T) {
	bookMissing := New(ErrCodeNotFound, "Book not found")
	nameMissing := New(ErrCodeNotFound, "Name not found")

	assert.ErrorIs(t, bookMissing.WithCause(errors.New("x")), bookMissing)
	assert.NotErrorIs(t, bookMissing, nameMissing)
}

func TestGetAppErrorWrapsUnknown(t *testing.T) {
	appErr := GetAppError(errors.New("boom"))

	assert.Equal(t, ErrCodeInternal, appErr.Code)
	assert.Equal(t, http.StatusInternalServerError, appErr.HTTPStatus())
	assert.False(t, IsAppError(errors.New("plain")))
}
