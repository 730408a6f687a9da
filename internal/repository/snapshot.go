package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/amoryapp/amory-backend/internal/db"
	"github.com/amoryapp/amory-backend/internal/engine"
)

// SnapshotLoader reads the full relationship state around one viewer so
// the projector can recompute the inbox from scratch. Every fetch is a
// fresh read; there is no cross-call caching here.
type SnapshotLoader struct {
	db *gorm.DB
}

func NewSnapshotLoader(database *gorm.DB) *SnapshotLoader {
	return &SnapshotLoader{db: database}
}

// Load gathers the viewer's swipes (both directions), matches, message
// requests, chats, the messages of those chats, and the profiles of every
// counterpart referenced.
func (l *SnapshotLoader) Load(ctx context.Context, viewer uint64) (engine.Snapshot, error) {
	snap := engine.Snapshot{Viewer: viewer}
	tx := l.db.WithContext(ctx)

	if err := tx.Where("actor_id = ? OR recipient_id = ?", viewer, viewer).
		Find(&snap.Swipes).Error; err != nil {
		return snap, err
	}
	if err := tx.Where("user_a_id = ? OR user_b_id = ?", viewer, viewer).
		Find(&snap.Matches).Error; err != nil {
		return snap, err
	}
	if err := tx.Where("sender_id = ? OR receiver_id = ?", viewer, viewer).
		Find(&snap.Requests).Error; err != nil {
		return snap, err
	}
	if err := tx.Where("user_a_id = ? OR user_b_id = ?", viewer, viewer).
		Find(&snap.Chats).Error; err != nil {
		return snap, err
	}

	chatIDs := make([]uint64, 0, len(snap.Chats))
	for _, ch := range snap.Chats {
		chatIDs = append(chatIDs, ch.ID)
	}
	if len(chatIDs) > 0 {
		if err := tx.Where("chat_id IN ?", chatIDs).
			Order("sent_at ASC, id ASC").
			Find(&snap.Messages).Error; err != nil {
			return snap, err
		}
	}

	ids := make(map[uint64]bool)
	for _, sw := range snap.Swipes {
		ids[sw.ActorID] = true
		ids[sw.RecipientID] = true
	}
	for _, m := range snap.Matches {
		ids[m.UserAID] = true
		ids[m.UserBID] = true
	}
	for _, r := range snap.Requests {
		ids[r.SenderID] = true
		ids[r.ReceiverID] = true
	}
	for _, ch := range snap.Chats {
		ids[ch.UserAID] = true
		ids[ch.UserBID] = true
	}
	delete(ids, viewer)

	snap.Users = make(map[uint64]db.User, len(ids))
	if len(ids) > 0 {
		userIDs := make([]uint64, 0, len(ids))
		for id := range ids {
			userIDs = append(userIDs, id)
		}
		var users []db.User
		err := tx.Where("id IN ?", userIDs).
			Preload("Images", func(q *gorm.DB) *gorm.DB {
				return q.Order("position ASC")
			}).
			Find(&users).Error
		if err != nil {
			return snap, err
		}
		for _, u := range users {
			snap.Users[u.ID] = u
		}
	}

	return snap, nil
}
