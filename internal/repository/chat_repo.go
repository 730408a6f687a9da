package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/amoryapp/amory-backend/internal/db"
	"github.com/amoryapp/amory-backend/internal/engine"
)

// ChatRepository provides data access for chats and their messages.
type ChatRepository struct {
	db *gorm.DB
}

func NewChatRepository(database *gorm.DB) *ChatRepository {
	return &ChatRepository{db: database}
}

// GetOrCreate returns the chat for the pair (x, y), creating it if absent.
// The unique canonical-pair index keeps concurrent creators from producing
// duplicates; the loser of the race reads the winner's row.
func (r *ChatRepository) GetOrCreate(ctx context.Context, x, y uint64) (db.Chat, error) {
	a, b := engine.CanonicalPair(x, y)

	chat := db.Chat{UserAID: a, UserBID: b}
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_a_id"}, {Name: "user_b_id"}},
			DoNothing: true,
		}).
		Create(&chat)
	if res.Error != nil {
		return db.Chat{}, res.Error
	}
	if res.RowsAffected > 0 {
		return chat, nil
	}

	var existing db.Chat
	err := r.db.WithContext(ctx).
		Where("user_a_id = ? AND user_b_id = ?", a, b).
		First(&existing).Error
	return existing, err
}

// GetByID fetches one chat.
func (r *ChatRepository) GetByID(ctx context.Context, chatID uint64) (db.Chat, error) {
	var chat db.Chat
	err := r.db.WithContext(ctx).First(&chat, chatID).Error
	return chat, err
}

// DeleteForPair removes the pair's chat together with its messages.
// Used by unmatch; a missing chat is a no-op.
func (r *ChatRepository) DeleteForPair(ctx context.Context, x, y uint64) error {
	a, b := engine.CanonicalPair(x, y)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var chat db.Chat
		err := tx.Where("user_a_id = ? AND user_b_id = ?", a, b).First(&chat).Error
		if err == gorm.ErrRecordNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		if err := tx.Where("chat_id = ?", chat.ID).Delete(&db.Message{}).Error; err != nil {
			return err
		}
		return tx.Delete(&chat).Error
	})
}

// AppendMessage persists a new message in the chat.
func (r *ChatRepository) AppendMessage(
	ctx context.Context,
	chatID, senderID uint64,
	content string,
) (db.Message, error) {
	msg := db.Message{
		ChatID:   chatID,
		SenderID: senderID,
		Content:  content,
	}
	err := r.db.WithContext(ctx).Create(&msg).Error
	return msg, err
}

// MarkRead flags every message the counterpart sent in the chat as read.
// Returns how many messages changed state.
func (r *ChatRepository) MarkRead(ctx context.Context, chatID, viewerID uint64) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&db.Message{}).
		Where("chat_id = ? AND sender_id <> ? AND `read` = ?", chatID, viewerID, false).
		Update("read", true)
	return res.RowsAffected, res.Error
}
