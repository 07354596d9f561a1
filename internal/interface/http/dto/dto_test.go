package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/booksapi/internal/domain/account"
	"github.com/xiebiao/booksapi/internal/domain/book"
	"github.com/xiebiao/booksapi/internal/domain/message"
)

func TestParseStar(t *testing.T) {
	tests := []struct {
		body   string
		want   int
		wantOK bool
	}{
		{`{"star": 5}`, 5, true},
		{`{"star": 1}`, 1, true},
		{`{"star": "3"}`, 3, true},
		{`{"star": 4.0}`, 4, true},
		{`{"star": 0}`, 0, true},
		{`{"star": 6}`, 6, true},
		{`{"star": 3.5}`, 0, false},
		{`{"star": "abc"}`, 0, false},
		{`{"star": ""}`, 0, false},
		{`{"star": null}`, 0, false},
		{`{"star": true}`, 0, false},
		{`{"star": [5]}`, 0, false},
		{`{"star": 1e300}`, 0, false},
		{`{}`, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.body, func(t *testing.T) {
			var req RateBookRequest
			require.NoError(t, json.Unmarshal([]byte(tt.body), &req))

			got, ok := req.ParseStar()
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestParsePriorityQuery(t *testing.T) {
	p, err := ParsePriorityQuery("2")
	require.NoError(t, err)
	assert.Equal(t, 2, p)

	for _, raw := range []string{"", "0", "4", "x", "1.5"} {
		_, err := ParsePriorityQuery(raw)
		assert.ErrorIs(t, err, message.ErrInvalidPriority, raw)
	}
}

func TestNewBookRow(t *testing.T) {
	b := book.NewBook(7, "9780441172719", "Dune", "Frank Herbert", 1965)
	b.Rating = book.RatingCounters{0, 0, 0, 1, 1}.Aggregate()

	raw, err := json.Marshal(BookResponse{Book: NewBookRow(b)})
	require.NoError(t, err)

	var body map[string]map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &body))
	row := body["book"]
	assert.Equal(t, "9780441172719", row["isbn13"])
	assert.Equal(t, 4.5, row["rating_avg"])
	assert.Equal(t, float64(2), row["rating_count"])
	assert.Equal(t, float64(1), row["rating_5_star"])
	assert.Equal(t, "Dune", row["original_title"])
}

func TestNewBookRowWithoutRatings(t *testing.T) {
	raw, err := json.Marshal(NewBookRow(book.NewBook(1, "9780000000001", "Empty", "", 2000)))
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"rating_avg":null`)
}

func TestMaskedUsers(t *testing.T) {
	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	users := NewMaskedUsers([]*account.Account{{ID: 3, Username: "ada", CreatedAt: created}})

	require.Len(t, users, 1)
	assert.Equal(t, "nope", users[0].Password)
	assert.Equal(t, int64(3), users[0].ID)
	assert.Equal(t, created, users[0].CreateDt)

	raw, err := json.Marshal(NewUserResponse(&account.Account{ID: 3}))
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "password")
}
