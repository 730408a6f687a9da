package messaging

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/amoryapp/amory-backend/internal/app"
	"github.com/amoryapp/amory-backend/internal/db"
	"github.com/amoryapp/amory-backend/internal/engine"
	apperr "github.com/amoryapp/amory-backend/internal/errors"
	"github.com/amoryapp/amory-backend/internal/realtime"
	"github.com/amoryapp/amory-backend/internal/repository"
)

// Service implements the message-request lifecycle and chat messaging.
type Service struct {
	appCtx   *app.AppContext
	requests *repository.RequestRepository
	matches  *repository.MatchRepository
	chats    *repository.ChatRepository
	broker   *realtime.Broker
}

func NewService(appCtx *app.AppContext, broker *realtime.Broker) *Service {
	return &Service{
		appCtx:   appCtx,
		requests: repository.NewRequestRepository(appCtx.DB),
		matches:  repository.NewMatchRepository(appCtx.DB),
		chats:    repository.NewChatRepository(appCtx.DB),
		broker:   broker,
	}
}

// SendRequest creates a pre-match ice-breaker from sender to receiver and
// appends its text as the first message of the pair's chat.
//
// Fails with ErrAlreadyMatched when the pair is matched (requests are
// only for pre-match contact) and ErrDuplicateRequest when this ordered
// pair already has a request.
func (s *Service) SendRequest(ctx context.Context, senderID, receiverID uint64, text string) (db.Message, error) {
	if senderID == receiverID {
		return db.Message{}, apperr.ErrSelfAction
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return db.Message{}, apperr.Invalid("message text must not be empty")
	}

	matched, err := s.matches.Exists(ctx, senderID, receiverID)
	if err != nil {
		return db.Message{}, err
	}
	if matched {
		return db.Message{}, apperr.ErrAlreadyMatched
	}

	created, err := s.requests.Create(ctx, senderID, receiverID)
	if err != nil {
		return db.Message{}, err
	}
	if !created {
		return db.Message{}, apperr.ErrDuplicateRequest
	}

	chat, err := s.chats.GetOrCreate(ctx, senderID, receiverID)
	if err != nil {
		return db.Message{}, err
	}
	msg, err := s.chats.AppendMessage(ctx, chat.ID, senderID, text)
	if err != nil {
		return db.Message{}, err
	}
	s.broker.PublishMessage(ctx, msg)

	s.appCtx.Logger.Debug("message request sent", "sender", senderID, "receiver", receiverID)
	return msg, nil
}

// Respond accepts a pending request addressed to the receiver by replying
// to it. The acceptance never reverts; afterwards the pair behaves like a
// normal chat whether or not a match ever forms.
func (s *Service) Respond(ctx context.Context, receiverID, senderID uint64, text string) (db.Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return db.Message{}, apperr.Invalid("message text must not be empty")
	}

	req, err := s.requests.Get(ctx, senderID, receiverID)
	if err != nil {
		return db.Message{}, err
	}
	if req == nil {
		return db.Message{}, gorm.ErrRecordNotFound
	}
	if !req.Accepted {
		if err := s.requests.Accept(ctx, senderID, receiverID, time.Now()); err != nil {
			return db.Message{}, err
		}
	}

	chat, err := s.chats.GetOrCreate(ctx, senderID, receiverID)
	if err != nil {
		return db.Message{}, err
	}
	msg, err := s.chats.AppendMessage(ctx, chat.ID, receiverID, text)
	if err != nil {
		return db.Message{}, err
	}
	s.broker.PublishMessage(ctx, msg)

	return msg, nil
}

// SendMessage appends a message to an established chat: the pair is
// matched, or an accepted request exists between them. A still-pending
// request blocks further messages from either side until the receiver
// responds.
func (s *Service) SendMessage(ctx context.Context, senderID, chatID uint64, text string) (db.Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return db.Message{}, apperr.Invalid("message text must not be empty")
	}

	chat, err := s.chats.GetByID(ctx, chatID)
	if err != nil {
		return db.Message{}, err
	}
	if _, ok := engine.Counterpart(chat.UserAID, chat.UserBID, senderID); !ok {
		return db.Message{}, gorm.ErrRecordNotFound
	}

	matched, err := s.matches.Exists(ctx, chat.UserAID, chat.UserBID)
	if err != nil {
		return db.Message{}, err
	}
	if !matched {
		req, err := s.requests.GetBetween(ctx, chat.UserAID, chat.UserBID)
		if err != nil {
			return db.Message{}, err
		}
		switch {
		case req == nil:
			// chat without a match or request is an orphan; nothing to send into
			return db.Message{}, gorm.ErrRecordNotFound
		case !req.Accepted:
			return db.Message{}, apperr.ErrRequestPending
		}
	}

	msg, err := s.chats.AppendMessage(ctx, chat.ID, senderID, text)
	if err != nil {
		return db.Message{}, err
	}
	s.broker.PublishMessage(ctx, msg)

	return msg, nil
}

// MarkRead flags all counterpart messages in the chat as read for the
// viewer.
func (s *Service) MarkRead(ctx context.Context, viewerID, chatID uint64) (int64, error) {
	chat, err := s.chats.GetByID(ctx, chatID)
	if err != nil {
		return 0, err
	}
	if _, ok := engine.Counterpart(chat.UserAID, chat.UserBID, viewerID); !ok {
		return 0, gorm.ErrRecordNotFound
	}
	return s.chats.MarkRead(ctx, chatID, viewerID)
}
