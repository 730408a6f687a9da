package inbox

import (
	"context"
	"strconv"
	"time"

	"github.com/amoryapp/amory-backend/internal/app"
	"github.com/amoryapp/amory-backend/internal/cache"
	"github.com/amoryapp/amory-backend/internal/engine"
	"github.com/amoryapp/amory-backend/internal/repository"
	"github.com/amoryapp/amory-backend/internal/utils/pagination"
)

// Service computes the three inbox views. Each call loads a fresh
// snapshot and runs the projector; the only cache is the liked-you
// counter, which always falls back to the DB.
type Service struct {
	appCtx *app.AppContext
	loader *repository.SnapshotLoader
	swipes *repository.SwipeRepository
}

func NewService(appCtx *app.AppContext) *Service {
	return &Service{
		appCtx: appCtx,
		loader: repository.NewSnapshotLoader(appCtx.DB),
		swipes: repository.NewSwipeRepository(appCtx.DB),
	}
}

func (s *Service) project(ctx context.Context, viewer uint64) (engine.Inbox, error) {
	snap, err := s.loader.Load(ctx, viewer)
	if err != nil {
		return engine.Inbox{}, err
	}
	return engine.Project(snap), nil
}

// MatchStrip returns the viewer's matches that have no conversation yet,
// most recent first.
func (s *Service) MatchStrip(ctx context.Context, viewer uint64) ([]engine.MatchEntry, error) {
	inbox, err := s.project(ctx, viewer)
	if err != nil {
		return nil, err
	}
	return inbox.MatchStrip, nil
}

// LikedBy returns one page of the liked-by grid plus the pending request
// strip. The strip is only attached to the first page.
//
// Pagination is cursor-based over (liked_at, user_id) descending, the
// same opaque-token scheme the rest of the API uses.
func (s *Service) LikedBy(
	ctx context.Context,
	viewer uint64,
	paginationToken *string,
	limit int,
) (grid []engine.LikedByEntry, requests []engine.RequestEntry, nextToken *string, err error) {
	cursor, err := pagination.Decode(getString(paginationToken))
	if err != nil {
		return nil, nil, nil, err
	}

	inbox, err := s.project(ctx, viewer)
	if err != nil {
		return nil, nil, nil, err
	}

	entries := inbox.LikedBy
	if cursor.UserID > 0 && cursor.LikedUnix > 0 {
		ts := time.UnixMilli(cursor.LikedUnix)
		filtered := entries[:0:0]
		for _, e := range entries {
			if e.LikedAt.Before(ts) || (e.LikedAt.Equal(ts) && e.User.ID < cursor.UserID) {
				filtered = append(filtered, e)
			}
		}
		entries = filtered
	} else {
		requests = inbox.Requests
	}

	if len(entries) > limit {
		last := entries[limit-1]
		token, _ := pagination.Encode(pagination.Cursor{
			UserID:    last.User.ID,
			LikedUnix: last.LikedAt.UnixMilli(),
		})
		nextToken = &token
		entries = entries[:limit]
	}

	return entries, requests, nextToken, nil
}

// CountLikedYou returns how many users currently like the viewer one-way.
// Cache-first strategy:
//  1. Attempts to read from Redis (likes:count:userID).
//  2. On a miss, falls back to the DB count.
//  3. On DB fetch, updates Redis with a TTL.
func (s *Service) CountLikedYou(ctx context.Context, viewer uint64) (int64, error) {
	if n, ok, err := s.appCtx.RedisCache.GetLikeCount(ctx, viewer); err == nil && ok {
		return n, nil
	}

	count, err := s.swipes.CountNewLikers(ctx, viewer)
	if err != nil {
		return 0, err
	}

	key := s.appCtx.RedisCache.KeyForLikeCount(viewer)
	_ = s.appCtx.RedisCache.Set(ctx, key, strconv.FormatInt(count, 10), cache.LikeCountTTL)

	return count, nil
}

// Chats returns the viewer's chat list, newest activity first.
func (s *Service) Chats(ctx context.Context, viewer uint64) ([]engine.ChatEntry, error) {
	inbox, err := s.project(ctx, viewer)
	if err != nil {
		return nil, err
	}
	return inbox.Chats, nil
}

// getString safely dereferences a string pointer for pagination tokens.
func getString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
