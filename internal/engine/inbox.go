package engine

import (
	"sort"
	"time"

	"github.com/amoryapp/amory-backend/internal/db"
)

// MatchEntry is one card in the match strip: a matched counterpart the
// viewer has not exchanged any messages with yet.
type MatchEntry struct {
	User      db.User
	MatchedAt time.Time
}

// LikedByEntry is one card in the liked-by grid: a user who liked the
// viewer without being liked back.
type LikedByEntry struct {
	User    db.User
	LikedAt time.Time
}

// RequestEntry is one pending ice-breaker addressed to the viewer.
type RequestEntry struct {
	Sender db.User
	Text   string
	SentAt time.Time
}

// ChatEntry is one row of the chat list.
type ChatEntry struct {
	ChatID      uint64
	Counterpart db.User
	LastMessage db.Message
	Unread      int
}

// Inbox is the projector output for one viewer.
type Inbox struct {
	MatchStrip []MatchEntry
	LikedBy    []LikedByEntry
	Requests   []RequestEntry
	Chats      []ChatEntry
}

// Project computes the three inbox views from a snapshot.
//
// Rules:
//   - Match strip: matched counterparts whose chat has no messages,
//     most recent match first. A match with any conversation history
//     belongs to the chat list instead.
//   - Liked-by grid: one-way likes toward the viewer. Mutual likes are
//     matches, not grid entries; a dislike in either direction suppresses
//     the entry; senders of pending requests move to the request strip.
//   - Request strip: pending requests addressed to the viewer, with the
//     ice-breaker text.
//   - Chat list: chats with at least one message, excluding pairs whose
//     only conversation path is a still-pending request. Sorted by last
//     message time descending.
//
// Counterparts missing from the user set are omitted rather than failing:
// a dangling edge is an empty-result condition, not an error.
func Project(s Snapshot) Inbox {
	likedMe := make(map[uint64]db.Swipe)
	iLiked := make(map[uint64]bool)
	dislikeBetween := make(map[uint64]bool)
	for _, sw := range s.Swipes {
		switch {
		case sw.RecipientID == s.Viewer && sw.Liked:
			likedMe[sw.ActorID] = sw
		case sw.RecipientID == s.Viewer && !sw.Liked:
			dislikeBetween[sw.ActorID] = true
		case sw.ActorID == s.Viewer && sw.Liked:
			iLiked[sw.RecipientID] = true
		case sw.ActorID == s.Viewer && !sw.Liked:
			dislikeBetween[sw.RecipientID] = true
		}
	}

	matchedWith := make(map[uint64]time.Time)
	for _, m := range s.Matches {
		if c, ok := Counterpart(m.UserAID, m.UserBID, s.Viewer); ok {
			matchedWith[c] = m.CreatedAt
		}
	}

	type pairKey struct{ a, b uint64 }
	chatByPair := make(map[pairKey]db.Chat)
	for _, ch := range s.Chats {
		chatByPair[pairKey{ch.UserAID, ch.UserBID}] = ch
	}

	msgsByChat := make(map[uint64][]db.Message)
	for _, m := range s.Messages {
		msgsByChat[m.ChatID] = append(msgsByChat[m.ChatID], m)
	}
	for id := range msgsByChat {
		msgs := msgsByChat[id]
		sort.Slice(msgs, func(i, j int) bool {
			if msgs[i].SentAt.Equal(msgs[j].SentAt) {
				return msgs[i].ID < msgs[j].ID
			}
			return msgs[i].SentAt.Before(msgs[j].SentAt)
		})
	}

	pendingToViewer := make(map[uint64]db.MessageRequest)
	pendingWith := make(map[uint64]bool)
	for _, r := range s.Requests {
		if r.Accepted {
			continue
		}
		if r.ReceiverID == s.Viewer {
			pendingToViewer[r.SenderID] = r
			pendingWith[r.SenderID] = true
		} else if r.SenderID == s.Viewer {
			pendingWith[r.ReceiverID] = true
		}
	}

	var out Inbox

	// Match strip: matched, zero conversation history.
	for c, at := range matchedWith {
		user, ok := s.Users[c]
		if !ok {
			continue
		}
		a, b := CanonicalPair(s.Viewer, c)
		if ch, ok := chatByPair[pairKey{a, b}]; ok && len(msgsByChat[ch.ID]) > 0 {
			continue
		}
		out.MatchStrip = append(out.MatchStrip, MatchEntry{User: user, MatchedAt: at})
	}
	sort.Slice(out.MatchStrip, func(i, j int) bool {
		if out.MatchStrip[i].MatchedAt.Equal(out.MatchStrip[j].MatchedAt) {
			return out.MatchStrip[i].User.ID > out.MatchStrip[j].User.ID
		}
		return out.MatchStrip[i].MatchedAt.After(out.MatchStrip[j].MatchedAt)
	})

	// Liked-by grid: one-way likes, dislike-suppressed, requests split out.
	for actor, sw := range likedMe {
		if iLiked[actor] || dislikeBetween[actor] {
			continue
		}
		if _, ok := pendingToViewer[actor]; ok {
			continue
		}
		user, ok := s.Users[actor]
		if !ok {
			continue
		}
		out.LikedBy = append(out.LikedBy, LikedByEntry{User: user, LikedAt: sw.UpdatedAt})
	}
	sort.Slice(out.LikedBy, func(i, j int) bool {
		if out.LikedBy[i].LikedAt.Equal(out.LikedBy[j].LikedAt) {
			return out.LikedBy[i].User.ID > out.LikedBy[j].User.ID
		}
		return out.LikedBy[i].LikedAt.After(out.LikedBy[j].LikedAt)
	})

	// Request strip: pending ice-breakers addressed to the viewer.
	for sender, req := range pendingToViewer {
		if dislikeBetween[sender] {
			continue
		}
		user, ok := s.Users[sender]
		if !ok {
			continue
		}
		entry := RequestEntry{Sender: user, SentAt: req.CreatedAt}
		a, b := CanonicalPair(s.Viewer, sender)
		if ch, ok := chatByPair[pairKey{a, b}]; ok {
			if msgs := msgsByChat[ch.ID]; len(msgs) > 0 {
				entry.Text = msgs[0].Content
			}
		}
		out.Requests = append(out.Requests, entry)
	}
	sort.Slice(out.Requests, func(i, j int) bool {
		if out.Requests[i].SentAt.Equal(out.Requests[j].SentAt) {
			return out.Requests[i].Sender.ID > out.Requests[j].Sender.ID
		}
		return out.Requests[i].SentAt.After(out.Requests[j].SentAt)
	})

	// Chat list: at least one message, request-pending pairs held back
	// until accepted unless the pair matched in the meantime.
	for _, ch := range s.Chats {
		msgs := msgsByChat[ch.ID]
		if len(msgs) == 0 {
			continue
		}
		c, ok := Counterpart(ch.UserAID, ch.UserBID, s.Viewer)
		if !ok {
			continue
		}
		if pendingWith[c] {
			if _, matched := matchedWith[c]; !matched {
				continue
			}
		}
		user, ok := s.Users[c]
		if !ok {
			continue
		}
		out.Chats = append(out.Chats, ChatEntry{
			ChatID:      ch.ID,
			Counterpart: user,
			LastMessage: msgs[len(msgs)-1],
			Unread:      UnreadCount(msgs, s.Viewer),
		})
	}
	sort.Slice(out.Chats, func(i, j int) bool {
		li, lj := out.Chats[i].LastMessage, out.Chats[j].LastMessage
		if li.SentAt.Equal(lj.SentAt) {
			return li.ID > lj.ID
		}
		return li.SentAt.After(lj.SentAt)
	})

	return out
}
