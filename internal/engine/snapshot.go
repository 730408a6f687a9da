package engine

import (
	"github.com/amoryapp/amory-backend/internal/db"
)

// Snapshot is everything the projector needs to compute a viewer's inbox:
// the viewer's swipe edges (both directions), their matches, message
// requests, chats and the messages of those chats, plus the profiles of
// every counterpart referenced.
//
// A Snapshot is a point-in-time read; the projector never mutates it and
// every view is recomputed from scratch on each load.
type Snapshot struct {
	Viewer   uint64
	Users    map[uint64]db.User
	Swipes   []db.Swipe
	Matches  []db.Match
	Requests []db.MessageRequest
	Chats    []db.Chat
	Messages []db.Message
}

// UnreadCount returns how many of msgs are unread from viewer's
// perspective: sent by someone else and not yet marked read.
func UnreadCount(msgs []db.Message, viewer uint64) int {
	n := 0
	for _, m := range msgs {
		if m.SenderID != viewer && !m.Read {
			n++
		}
	}
	return n
}
