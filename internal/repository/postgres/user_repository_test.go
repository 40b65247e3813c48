package postgres

import (
	"context"
	"testing"

	"ozeanLicht/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_CreateAndFind(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := &domain.User{Email: " Anna@Example.com ", FullName: "Anna"}
	require.NoError(t, repo.Create(ctx, user))
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "anna@example.com", user.Email)

	byEmail, err := repo.FindByEmail(ctx, "ANNA@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)

	byID, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Anna", byID.FullName)

	_, err = repo.FindByID(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUserRepository_CreateDuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &domain.User{Email: "anna@example.com"}))

	err := repo.Create(ctx, &domain.User{Email: "ANNA@example.com"})
	assert.ErrorIs(t, err, domain.ErrEmailExists)
}

func TestUserRepository_UpdateEmailVerification(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := &domain.User{Email: "anna@example.com", FullName: "Anna"}
	require.NoError(t, repo.Create(ctx, user))

	require.NoError(t, repo.UpdateEmailVerification(ctx, user.ID, true))

	stored, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Anna", stored.FullName)
	assert.True(t, stored.IsVerified)
}
