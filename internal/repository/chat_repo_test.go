package repository_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amoryapp/amory-backend/internal/db"
	"github.com/amoryapp/amory-backend/internal/repository"
)

func TestChatGetOrCreate(t *testing.T) {
	ctx := context.Background()
	dbase := setupTestDB(t)
	repo := repository.NewChatRepository(dbase)

	chat, err := repo.GetOrCreate(ctx, 9, 4)
	require.NoError(t, err)
	assert.Equal(t, uint64(4), chat.UserAID)
	assert.Equal(t, uint64(9), chat.UserBID)

	// same pair from the other side returns the same chat
	again, err := repo.GetOrCreate(ctx, 4, 9)
	require.NoError(t, err)
	assert.Equal(t, chat.ID, again.ID)

	var count int64
	dbase.Model(&db.Chat{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestAppendMessageAndMarkRead(t *testing.T) {
	ctx := context.Background()
	dbase := setupTestDB(t)
	repo := repository.NewChatRepository(dbase)

	chat, err := repo.GetOrCreate(ctx, 1, 2)
	require.NoError(t, err)

	_, err = repo.AppendMessage(ctx, chat.ID, 2, "hello")
	require.NoError(t, err)
	_, err = repo.AppendMessage(ctx, chat.ID, 2, "anyone there?")
	require.NoError(t, err)
	_, err = repo.AppendMessage(ctx, chat.ID, 1, "hi!")
	require.NoError(t, err)

	// viewer 1 reads: both of 2's messages flip, own message untouched
	updated, err := repo.MarkRead(ctx, chat.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), updated)

	var unread int64
	dbase.Model(&db.Message{}).
		Where("chat_id = ? AND `read` = ?", chat.ID, false).
		Count(&unread)
	assert.Equal(t, int64(1), unread) // only viewer 1's own message

	// marking again changes nothing
	updated, err = repo.MarkRead(ctx, chat.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(0), updated)
}

func TestDeleteForPairRemovesMessages(t *testing.T) {
	ctx := context.Background()
	dbase := setupTestDB(t)
	repo := repository.NewChatRepository(dbase)

	chat, err := repo.GetOrCreate(ctx, 1, 2)
	require.NoError(t, err)
	_, err = repo.AppendMessage(ctx, chat.ID, 1, "bye")
	require.NoError(t, err)

	require.NoError(t, repo.DeleteForPair(ctx, 2, 1))

	var chats, msgs int64
	dbase.Model(&db.Chat{}).Count(&chats)
	dbase.Model(&db.Message{}).Count(&msgs)
	assert.Equal(t, int64(0), chats)
	assert.Equal(t, int64(0), msgs)

	// deleting a missing chat is a no-op
	require.NoError(t, repo.DeleteForPair(ctx, 1, 2))
}
