package repository_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amoryapp/amory-backend/internal/db"
	"github.com/amoryapp/amory-backend/internal/repository"
)

func TestSwipeUpsertOverwrites(t *testing.T) {
	ctx := context.Background()
	dbase := setupTestDB(t)
	repo := repository.NewSwipeRepository(dbase)

	// insert like
	require.NoError(t, repo.Upsert(ctx, 1, 2, true))

	// overwrite with dislike: same ordered pair, single row
	require.NoError(t, repo.Upsert(ctx, 1, 2, false))

	var swipes []db.Swipe
	require.NoError(t, dbase.Find(&swipes).Error)
	require.Len(t, swipes, 1)
	assert.False(t, swipes[0].Liked)
}

func TestSwipeRemove(t *testing.T) {
	ctx := context.Background()
	dbase := setupTestDB(t)
	repo := repository.NewSwipeRepository(dbase)

	require.NoError(t, repo.Upsert(ctx, 1, 2, true))

	// removing the dislike kind misses the like row
	removed, err := repo.Remove(ctx, 1, 2, false)
	require.NoError(t, err)
	assert.False(t, removed)

	removed, err = repo.Remove(ctx, 1, 2, true)
	require.NoError(t, err)
	assert.True(t, removed)

	// second undo is a no-op
	removed, err = repo.Remove(ctx, 1, 2, true)
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestHasLiked(t *testing.T) {
	ctx := context.Background()
	dbase := setupTestDB(t)
	repo := repository.NewSwipeRepository(dbase)

	_ = repo.Upsert(ctx, 1, 2, true)
	_ = repo.Upsert(ctx, 2, 3, false)

	liked, err := repo.HasLiked(ctx, 1, 2)
	require.NoError(t, err)
	assert.True(t, liked)

	liked, err = repo.HasLiked(ctx, 2, 1)
	require.NoError(t, err)
	assert.False(t, liked)

	// a dislike row never reads as a like
	liked, err = repo.HasLiked(ctx, 2, 3)
	require.NoError(t, err)
	assert.False(t, liked)
}

func TestCountNewLikers(t *testing.T) {
	ctx := context.Background()
	dbase := setupTestDB(t)
	repo := repository.NewSwipeRepository(dbase)

	// 2 and 3 liked 1; 1 liked 3 back (mutual), so only 2 counts
	_ = repo.Upsert(ctx, 2, 1, true)
	_ = repo.Upsert(ctx, 3, 1, true)
	_ = repo.Upsert(ctx, 1, 3, true)

	count, err := repo.CountNewLikers(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	// 1 dislikes 2 → suppressed as well
	_ = repo.Upsert(ctx, 1, 2, false)

	count, err = repo.CountNewLikers(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}
