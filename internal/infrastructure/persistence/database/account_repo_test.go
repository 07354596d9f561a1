package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/booksapi/internal/domain/account"
)

func newAccount(username, email string) *account.Account {
	return &account.Account{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Username:  username,
		Email:     email,
		Phone:     "555-0100",
		Role:      1,
	}
}

func TestAccountRepository_CreateAndFind(t *testing.T) {
	db := newTestDB(t)
	repo := NewAccountRepository(db)
	ctx := context.Background()

	acc := newAccount("ada", "ada@example.com")
	require.NoError(t, repo.Create(ctx, acc))
	assert.NotZero(t, acc.ID)
	assert.False(t, acc.CreatedAt.IsZero())

	require.NoError(t, repo.SaveCredential(ctx, &account.Credential{AccountID: acc.ID, SaltedHash: "h", Salt: "s"}))

	got, cred, err := repo.FindByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, acc.ID, got.ID)
	assert.Equal(t, "h", cred.SaltedHash)
	assert.Equal(t, "s", cred.Salt)

	_, _, err = repo.FindByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, account.ErrUserNotFound)

	byID, err := repo.FindByID(ctx, acc.ID)
	require.NoError(t, err)
	assert.Equal(t, "ada", byID.Username)

	_, err = repo.FindByID(ctx, 999)
	assert.ErrorIs(t, err, account.ErrUserNotFound)
}

func TestAccountRepository_DuplicateClassification(t *testing.T) {
	db := newTestDB(t)
	repo := NewAccountRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newAccount("ada", "ada@example.com")))

	err := repo.Create(ctx, newAccount("ada", "other@example.com"))
	assert.ErrorIs(t, err, account.ErrUsernameExists)

	err = repo.Create(ctx, newAccount("grace", "ada@example.com"))
	assert.ErrorIs(t, err, account.ErrEmailExists)
}

func TestAccountRepository_UpdateDetails(t *testing.T) {
	db := newTestDB(t)
	repo := NewAccountRepository(db)
	ctx := context.Background()

	acc := newAccount("ada", "ada@example.com")
	require.NoError(t, repo.Create(ctx, acc))

	updated, err := repo.UpdateDetails(ctx, acc.ID, account.Details{
		FirstName: "Augusta", LastName: "King", Username: "countess", Phone: "555-0199",
	})
	require.NoError(t, err)
	assert.Equal(t, "Augusta", updated.FirstName)
	assert.Equal(t, "countess", updated.Username)
	assert.Equal(t, "ada@example.com", updated.Email)

	_, err = repo.UpdateDetails(ctx, 999, account.Details{FirstName: "a", LastName: "b", Username: "c", Phone: "d"})
	assert.ErrorIs(t, err, account.ErrNameNotFound)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
