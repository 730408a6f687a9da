// Package realtime delivers newly inserted messages to connected clients
// over Redis Pub/Sub, one channel per chat. Delivery is at-least-once and
// unordered; clients reconcile against persisted history on the next full
// inbox fetch, so nothing here retries or buffers.
package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/amoryapp/amory-backend/internal/db"
)

// ChannelForChat is the Pub/Sub channel carrying a chat's new messages.
func ChannelForChat(chatID uint64) string {
	return fmt.Sprintf("chat:%d:messages", chatID)
}

type Broker struct {
	client *redis.Client
	log    *slog.Logger
}

func NewBroker(client *redis.Client, log *slog.Logger) *Broker {
	return &Broker{client: client, log: log}
}

// PublishMessage fans out a freshly persisted message to subscribers of
// its chat. Publish failures are logged, not returned: the message is
// already durable and will surface on the next fetch.
func (b *Broker) PublishMessage(ctx context.Context, msg db.Message) {
	payload, err := json.Marshal(msg)
	if err != nil {
		b.log.Error("failed to encode realtime message", "chat_id", msg.ChatID, "err", err)
		return
	}
	if err := b.client.Publish(ctx, ChannelForChat(msg.ChatID), payload).Err(); err != nil {
		b.log.Warn("failed to publish realtime message", "chat_id", msg.ChatID, "err", err)
	}
}

// Subscribe delivers new messages for one chat until ctx is done or the
// returned stop function is called.
func (b *Broker) Subscribe(ctx context.Context, chatID uint64) (<-chan db.Message, func()) {
	sub := b.client.Subscribe(ctx, ChannelForChat(chatID))
	out := make(chan db.Message)

	go func() {
		defer close(out)
		ch := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case raw, ok := <-ch:
				if !ok {
					return
				}
				var msg db.Message
				if err := json.Unmarshal([]byte(raw.Payload), &msg); err != nil {
					b.log.Warn("dropping malformed realtime payload", "chat_id", chatID, "err", err)
					continue
				}
				select {
				case out <- msg:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	stop := func() { _ = sub.Close() }
	return out, stop
}
