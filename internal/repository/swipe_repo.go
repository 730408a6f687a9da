package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/amoryapp/amory-backend/internal/db"
)

// SwipeRepository provides data access for the Swipe model: the directed
// like/dislike edges between users.
type SwipeRepository struct {
	db *gorm.DB
}

// NewSwipeRepository creates a new repository bound to the given DB connection.
func NewSwipeRepository(database *gorm.DB) *SwipeRepository {
	return &SwipeRepository{db: database}
}

// Upsert inserts or overwrites the actor -> recipient edge.
//
// The composite (actor_id, recipient_id) PK guarantees a single row per
// ordered pair, so recording a like clears a previous dislike and vice
// versa in the same write.
func (r *SwipeRepository) Upsert(
	ctx context.Context,
	actorID, recipientID uint64,
	liked bool,
) error {
	swipe := db.Swipe{
		ActorID:     actorID,
		RecipientID: recipientID,
		Liked:       liked,
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "actor_id"}, {Name: "recipient_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"liked", "updated_at"}),
		}).
		Create(&swipe).Error
}

// Remove deletes the actor -> recipient edge of the given kind. Returns
// whether a row was actually removed; removing a missing edge is a no-op.
func (r *SwipeRepository) Remove(
	ctx context.Context,
	actorID, recipientID uint64,
	liked bool,
) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("actor_id = ? AND recipient_id = ? AND liked = ?", actorID, recipientID, liked).
		Delete(&db.Swipe{})
	return res.RowsAffected > 0, res.Error
}

// HasLiked checks whether an actor has liked a recipient. Used for the
// mutual-like check when a swipe lands.
func (r *SwipeRepository) HasLiked(
	ctx context.Context,
	actorID, recipientID uint64,
) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&db.Swipe{}).
		Where("actor_id = ? AND recipient_id = ? AND liked = ?", actorID, recipientID, true).
		Count(&count).Error
	return count > 0, err
}

// CountNewLikers returns how many users liked the recipient without being
// liked back, excluding anyone the recipient disliked. This mirrors the
// liked-by grid rules so the cached count and the grid agree.
func (r *SwipeRepository) CountNewLikers(
	ctx context.Context,
	recipientID uint64,
) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("swipes s").
		Where("s.recipient_id = ? AND s.liked = ?", recipientID, true).
		Where(`
			NOT EXISTS (
				SELECT 1 FROM swipes s2
				WHERE s2.actor_id = ?
				  AND s2.recipient_id = s.actor_id
			)`, recipientID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}
