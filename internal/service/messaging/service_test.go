package messaging_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/amoryapp/amory-backend/internal/app"
	"github.com/amoryapp/amory-backend/internal/cache"
	"github.com/amoryapp/amory-backend/internal/config"
	"github.com/amoryapp/amory-backend/internal/db"
	apperr "github.com/amoryapp/amory-backend/internal/errors"
	"github.com/amoryapp/amory-backend/internal/realtime"
	"github.com/amoryapp/amory-backend/internal/service/messaging"
)

func setupService(t *testing.T) (*messaging.Service, *gorm.DB) {
	t.Helper()

	dbName := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	dbase, err := gorm.Open(sqlite.Open(dbName), &gorm.Config{
		NowFunc:                func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) },
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	sqlDB, err := dbase.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.Migrate(dbase))

	users := []db.User{
		{ID: 1, Name: "user1", Email: "u1@test.com", PasswordHash: "x", Gender: "male", Age: 30},
		{ID: 2, Name: "user2", Email: "u2@test.com", PasswordHash: "x", Gender: "female", Age: 28},
	}
	require.NoError(t, dbase.Create(&users).Error)

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(func() { mr.Close() })

	cfg := config.New()
	cfg.Redis.Addr = mr.Addr()
	redisCache := cache.NewRedisCache(cfg)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	appCtx := app.New(dbase, redisCache, logger)
	broker := realtime.NewBroker(redisCache.Client, logger)

	return messaging.NewService(appCtx, broker), dbase
}

func TestSendRequestCreatesChatAndMessage(t *testing.T) {
	ctx := context.Background()
	svc, dbase := setupService(t)

	msg, err := svc.SendRequest(ctx, 1, 2, "we both love hiking!")
	require.NoError(t, err)
	assert.Equal(t, uint64(1), msg.SenderID)
	assert.Equal(t, "we both love hiking!", msg.Content)

	var req db.MessageRequest
	require.NoError(t, dbase.First(&req).Error)
	assert.Equal(t, uint64(1), req.SenderID)
	assert.Equal(t, uint64(2), req.ReceiverID)
	assert.False(t, req.Accepted)

	var chats, msgs int64
	dbase.Model(&db.Chat{}).Count(&chats)
	dbase.Model(&db.Message{}).Count(&msgs)
	assert.Equal(t, int64(1), chats)
	assert.Equal(t, int64(1), msgs)
}

func TestSendRequestValidation(t *testing.T) {
	ctx := context.Background()
	svc, dbase := setupService(t)

	_, err := svc.SendRequest(ctx, 1, 1, "hi")
	assert.ErrorIs(t, err, apperr.ErrSelfAction)

	_, err = svc.SendRequest(ctx, 1, 2, "   ")
	assert.ErrorIs(t, err, apperr.ErrInvalidArgument)

	_, err = svc.SendRequest(ctx, 1, 2, "hi")
	require.NoError(t, err)

	// same ordered pair again
	_, err = svc.SendRequest(ctx, 1, 2, "hi again")
	assert.ErrorIs(t, err, apperr.ErrDuplicateRequest)

	// a matched pair can't use requests
	require.NoError(t, dbase.Create(&db.Match{UserAID: 1, UserBID: 2}).Error)
	_, err = svc.SendRequest(ctx, 2, 1, "hello")
	assert.ErrorIs(t, err, apperr.ErrAlreadyMatched)
}

func TestRespondAcceptsRequest(t *testing.T) {
	ctx := context.Background()
	svc, dbase := setupService(t)

	_, err := svc.SendRequest(ctx, 1, 2, "hey")
	require.NoError(t, err)

	msg, err := svc.Respond(ctx, 2, 1, "hey yourself")
	require.NoError(t, err)
	assert.Equal(t, uint64(2), msg.SenderID)

	var req db.MessageRequest
	require.NoError(t, dbase.First(&req).Error)
	assert.True(t, req.Accepted)
	require.NotNil(t, req.AcceptedAt)

	var msgs int64
	dbase.Model(&db.Message{}).Count(&msgs)
	assert.Equal(t, int64(2), msgs)
}

func TestRespondWithoutRequest(t *testing.T) {
	ctx := context.Background()
	svc, _ := setupService(t)

	_, err := svc.Respond(ctx, 2, 1, "hello?")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestSendMessageBlockedWhilePending(t *testing.T) {
	ctx := context.Background()
	svc, dbase := setupService(t)

	_, err := svc.SendRequest(ctx, 1, 2, "hey")
	require.NoError(t, err)

	var chat db.Chat
	require.NoError(t, dbase.First(&chat).Error)

	// the single allowed ice-breaker has been used; the sender must wait
	_, err = svc.SendMessage(ctx, 1, chat.ID, "and another thing")
	assert.ErrorIs(t, err, apperr.ErrRequestPending)

	_, err = svc.Respond(ctx, 2, 1, "hi!")
	require.NoError(t, err)

	_, err = svc.SendMessage(ctx, 1, chat.ID, "great to hear back")
	require.NoError(t, err)
}

func TestSendMessageMatchedPair(t *testing.T) {
	ctx := context.Background()
	svc, dbase := setupService(t)

	require.NoError(t, dbase.Create(&db.Match{UserAID: 1, UserBID: 2}).Error)
	chat := db.Chat{UserAID: 1, UserBID: 2}
	require.NoError(t, dbase.Create(&chat).Error)

	msg, err := svc.SendMessage(ctx, 2, chat.ID, "we matched!")
	require.NoError(t, err)
	assert.Equal(t, chat.ID, msg.ChatID)
}

func TestSendMessageRejectsOutsiderAndOrphan(t *testing.T) {
	ctx := context.Background()
	svc, dbase := setupService(t)

	chat := db.Chat{UserAID: 1, UserBID: 2}
	require.NoError(t, dbase.Create(&chat).Error)

	// not a participant
	_, err := svc.SendMessage(ctx, 3, chat.ID, "let me in")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	// participant, but no match and no request backs this chat
	_, err = svc.SendMessage(ctx, 1, chat.ID, "anyone?")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	// missing chat entirely
	_, err = svc.SendMessage(ctx, 1, 999, "hello?")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestMarkRead(t *testing.T) {
	ctx := context.Background()
	svc, dbase := setupService(t)

	require.NoError(t, dbase.Create(&db.Match{UserAID: 1, UserBID: 2}).Error)
	chat := db.Chat{UserAID: 1, UserBID: 2}
	require.NoError(t, dbase.Create(&chat).Error)

	_, err := svc.SendMessage(ctx, 2, chat.ID, "one")
	require.NoError(t, err)
	_, err = svc.SendMessage(ctx, 2, chat.ID, "two")
	require.NoError(t, err)

	updated, err := svc.MarkRead(ctx, 1, chat.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), updated)

	// outsiders can't mark a chat read
	_, err = svc.MarkRead(ctx, 3, chat.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
