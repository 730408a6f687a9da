package db

import (
	"time"
)

// User is a member profile. Preference attributes that are multi-valued
// (ethnicities, relationship intents, substance use) are stored as
// comma-separated tags; clients treat them as opaque sets.
type User struct {
	ID           uint64 `gorm:"primaryKey;autoIncrement"`
	Name         string `gorm:"size:64;not null"`
	Email        string `gorm:"uniqueIndex;size:128;not null"`
	PasswordHash string `gorm:"size:255;not null"`
	Active       bool   `gorm:"default:true"`
	Gender       string `gorm:"size:16;not null"`
	Age          int    `gorm:"not null"`
	City         string `gorm:"size:64"`
	Country      string `gorm:"size:64"`
	Bio          string `gorm:"size:1024"`
	Religion     string `gorm:"size:32"`
	HasKids      bool
	WantsKids    bool
	Ethnicities  string `gorm:"size:255"`
	Intents      string `gorm:"size:255"`
	SubstanceUse string `gorm:"size:255"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`

	Images []UserImage `gorm:"foreignKey:UserID"`
}

// UserImage is one profile photo. Position 0 is the primary photo.
type UserImage struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement"`
	UserID    uint64    `gorm:"not null;index:idx_user_position,priority:1"`
	ObjectKey string    `gorm:"uniqueIndex;size:64;not null"`
	URL       string    `gorm:"size:512;not null"`
	Position  int       `gorm:"not null;index:idx_user_position,priority:2"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// Swipe represents an actor's like/dislike decision on a recipient.
//
// Composite PK: (ActorID, RecipientID)
//   - Ensures a single row per ordered pair (overwrite guarantee), which
//     also makes like and dislike mutually exclusive per ordered pair.
//
// Indexes:
//   - idx_recipient_liked_updated_actor(recipient_id, liked, updated_at DESC, actor_id)
//     Optimizes "who liked me" lists with pagination.
//   - idx_actor_recipient_liked(actor_id, recipient_id, liked)
//     Optimizes O(1) lookup for mutual like checks.
type Swipe struct {
	ActorID     uint64    `gorm:"primaryKey;index:idx_actor_recipient_liked,priority:1"`
	RecipientID uint64    `gorm:"primaryKey;index:idx_recipient_liked_updated_actor,priority:1;index:idx_actor_recipient_liked,priority:2"`
	Liked       bool      `gorm:"not null;type:tinyint(1);index:idx_recipient_liked_updated_actor,priority:2;index:idx_actor_recipient_liked,priority:3"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime;index:idx_recipient_liked_updated_actor,priority:3,sort:desc"`
}

// Match is the materialized mutual-like fact for a canonical pair
// (UserAID < UserBID). The composite PK makes the insert idempotent no
// matter which side's like completes the pair.
type Match struct {
	UserAID   uint64    `gorm:"primaryKey"`
	UserBID   uint64    `gorm:"primaryKey"`
	CreatedAt time.Time `gorm:"autoCreateTime;index"`
}

// MessageRequest is a pre-match ice-breaker from sender to receiver.
// One row per ordered pair; Accepted never reverts to false.
type MessageRequest struct {
	SenderID   uint64 `gorm:"primaryKey"`
	ReceiverID uint64 `gorm:"primaryKey"`
	Accepted   bool   `gorm:"not null;type:tinyint(1);default:false"`
	AcceptedAt *time.Time
	CreatedAt  time.Time `gorm:"autoCreateTime"`
}

// Chat is the conversation container for a canonical pair
// (UserAID < UserBID). Exactly one chat per pair.
type Chat struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement"`
	UserAID   uint64    `gorm:"not null;uniqueIndex:idx_chat_pair,priority:1"`
	UserBID   uint64    `gorm:"not null;uniqueIndex:idx_chat_pair,priority:2"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// Message is append-only. Ordering is SentAt, ties broken by ID.
type Message struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement"`
	ChatID    uint64    `gorm:"not null;index:idx_chat_sent,priority:1"`
	SenderID  uint64    `gorm:"not null"`
	Content   string    `gorm:"size:2048;not null"`
	SentAt    time.Time `gorm:"autoCreateTime;index:idx_chat_sent,priority:2"`
	Read      bool      `gorm:"not null;type:tinyint(1);default:false"`
}
