package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetUserByEmail(t *testing.T) {
	db := &fakeDB{rows: [][]any{{"u-1", "User", "user@nextmail.com", "$2a$10$hash"}}}
	repo := NewPostgresUserRepository(db)

	user, err := repo.GetUserByEmail(context.Background(), "user@nextmail.com")

	require.NoError(t, err)
	assert.Equal(t, "u-1", user.ID)
	assert.Equal(t, "$2a$10$hash", user.PasswordHash)
	assert.Equal(t, []any{"user@nextmail.com"}, db.execs[0].args)
}

func TestGetUserByEmail_NotFound(t *testing.T) {
	repo := NewPostgresUserRepository(&fakeDB{})

	_, err := repo.GetUserByEmail(context.Background(), "nobody@example.com")

	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestGetUserByEmail_StoreError(t *testing.T) {
	cause := errors.New("timeout")
	repo := NewPostgresUserRepository(&fakeDB{rowErr: cause})

	_, err := repo.GetUserByEmail(context.Background(), "user@nextmail.com")

	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrUserNotFound)
}
