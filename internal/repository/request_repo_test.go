package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amoryapp/amory-backend/internal/repository"
)

func TestRequestCreateDuplicate(t *testing.T) {
	ctx := context.Background()
	dbase := setupTestDB(t)
	repo := repository.NewRequestRepository(dbase)

	created, err := repo.Create(ctx, 1, 2)
	require.NoError(t, err)
	assert.True(t, created)

	// same ordered pair → duplicate
	created, err = repo.Create(ctx, 1, 2)
	require.NoError(t, err)
	assert.False(t, created)

	// reverse direction is a distinct ordered pair
	created, err = repo.Create(ctx, 2, 1)
	require.NoError(t, err)
	assert.True(t, created)
}

func TestRequestGetAndGetBetween(t *testing.T) {
	ctx := context.Background()
	dbase := setupTestDB(t)
	repo := repository.NewRequestRepository(dbase)

	req, err := repo.Get(ctx, 1, 2)
	require.NoError(t, err)
	assert.Nil(t, req)

	_, err = repo.Create(ctx, 1, 2)
	require.NoError(t, err)

	req, err = repo.Get(ctx, 1, 2)
	require.NoError(t, err)
	require.NotNil(t, req)
	assert.False(t, req.Accepted)

	// direction-agnostic lookup finds it from either side
	req, err = repo.GetBetween(ctx, 2, 1)
	require.NoError(t, err)
	require.NotNil(t, req)
	assert.Equal(t, uint64(1), req.SenderID)
}

func TestRequestAcceptNeverReverts(t *testing.T) {
	ctx := context.Background()
	dbase := setupTestDB(t)
	repo := repository.NewRequestRepository(dbase)

	_, err := repo.Create(ctx, 1, 2)
	require.NoError(t, err)

	first := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Accept(ctx, 1, 2, first))

	req, err := repo.Get(ctx, 1, 2)
	require.NoError(t, err)
	require.NotNil(t, req)
	assert.True(t, req.Accepted)
	require.NotNil(t, req.AcceptedAt)

	// accepting again keeps the original timestamp
	require.NoError(t, repo.Accept(ctx, 1, 2, first.Add(time.Hour)))

	req, err = repo.Get(ctx, 1, 2)
	require.NoError(t, err)
	assert.True(t, req.AcceptedAt.Equal(first))
}
