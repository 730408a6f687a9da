package relationship

import (
	"context"

	"github.com/amoryapp/amory-backend/internal/app"
	"github.com/amoryapp/amory-backend/internal/cache"
	"github.com/amoryapp/amory-backend/internal/engine"
	apperr "github.com/amoryapp/amory-backend/internal/errors"
	"github.com/amoryapp/amory-backend/internal/repository"
)

// Service implements the affinity operations: swipes, undo, unmatch.
// It contains the business logic on top of repository and cache layers.
type Service struct {
	appCtx  *app.AppContext
	swipes  *repository.SwipeRepository
	matches *repository.MatchRepository
	chats   *repository.ChatRepository
}

// NewService creates the relationship service with dependencies from AppContext.
func NewService(appCtx *app.AppContext) *Service {
	return &Service{
		appCtx:  appCtx,
		swipes:  repository.NewSwipeRepository(appCtx.DB),
		matches: repository.NewMatchRepository(appCtx.DB),
		chats:   repository.NewChatRepository(appCtx.DB),
	}
}

// Swipe records a like or dislike from actor to recipient and reports
// whether the swipe completed a mutual like.
//
// Behavior:
//   - Single upsert per ordered pair, so a like clears a previous dislike
//     and vice versa.
//   - Updates the recipient's cached liked-you count (+1/-1, TTL refresh).
//   - On a like, checks the reverse edge; when mutual, materializes the
//     Match (canonical pair, insert-once) and its Chat. A lost race on the
//     Match insert still reports matched=true.
func (s *Service) Swipe(ctx context.Context, actorID, recipientID uint64, liked bool) (matched bool, err error) {
	if actorID == recipientID {
		return false, apperr.ErrSelfAction
	}

	if err := s.swipes.Upsert(ctx, actorID, recipientID, liked); err != nil {
		return false, err
	}

	// update cache
	key := s.appCtx.RedisCache.KeyForLikeCount(recipientID)
	if liked {
		_, _ = s.appCtx.RedisCache.Incr(ctx, key)
	} else {
		_, _ = s.appCtx.RedisCache.Decr(ctx, key)
	}
	_ = s.appCtx.RedisCache.Client.Expire(ctx, key, cache.LikeCountTTL).Err()

	if !liked {
		// dislike never creates a match and never destroys an existing one
		return false, nil
	}

	mutual, err := s.swipes.HasLiked(ctx, recipientID, actorID)
	if err != nil {
		return false, err
	}
	if !mutual {
		return false, nil
	}

	created, err := s.matches.Create(ctx, actorID, recipientID)
	if err != nil {
		return false, err
	}
	if created {
		s.appCtx.Logger.Info("match created", "user_a", actorID, "user_b", recipientID)
	}
	if _, err := s.chats.GetOrCreate(ctx, actorID, recipientID); err != nil {
		return false, err
	}

	return true, nil
}

// Undo removes the actor's like or dislike against the target.
//
// Behavior:
//   - Removing a missing edge is a no-op, not an error.
//   - Undoing a like that already formed a Match leaves the Match in
//     place: matches are durable once formed, only Unmatch destroys them.
func (s *Service) Undo(ctx context.Context, actorID, targetID uint64, kind engine.SwipeKind) error {
	if !kind.Valid() {
		return apperr.Invalid("kind must be like or dislike")
	}
	removed, err := s.swipes.Remove(ctx, actorID, targetID, kind == engine.KindLike)
	if err != nil {
		return err
	}
	if removed && kind == engine.KindLike {
		key := s.appCtx.RedisCache.KeyForLikeCount(targetID)
		_, _ = s.appCtx.RedisCache.Decr(ctx, key)
		_ = s.appCtx.RedisCache.Client.Expire(ctx, key, cache.LikeCountTTL).Err()
	}
	return nil
}

// Unmatch deletes the Match for the pair and, transitively, the pair's
// chat and messages. The only operation that can destroy a Match.
func (s *Service) Unmatch(ctx context.Context, viewerID, otherID uint64) error {
	if viewerID == otherID {
		return apperr.ErrSelfAction
	}
	if err := s.matches.Delete(ctx, viewerID, otherID); err != nil {
		return err
	}
	if err := s.chats.DeleteForPair(ctx, viewerID, otherID); err != nil {
		return err
	}
	s.appCtx.Logger.Info("unmatched", "viewer", viewerID, "other", otherID)
	return nil
}
