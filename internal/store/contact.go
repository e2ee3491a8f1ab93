package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-redis/redis/v8"
)

const messagesKey = "contact:messages"

// Messages keeps contact-form submissions in a Redis list, newest first.
type Messages struct {
	rdb *redis.Client
}

// NewMessages builds a contact-message store over the given Redis client.
func NewMessages(rdb *redis.Client) *Messages {
	return &Messages{rdb: rdb}
}

// Add prepends a submission to the list.
func (s *Messages) Add(ctx context.Context, msg Message) error {
	raw, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("encode contact message: %w", err)
	}
	if err := s.rdb.LPush(ctx, messagesKey, raw).Err(); err != nil {
		return fmt.Errorf("persist contact message: %w", err)
	}
	return nil
}

// List returns all submissions, newest first.
func (s *Messages) List(ctx context.Context) ([]Message, error) {
	entries, err := s.rdb.LRange(ctx, messagesKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("load contact messages: %w", err)
	}

	messages := make([]Message, 0, len(entries))
	for _, raw := range entries {
		var msg Message
		if err := json.Unmarshal([]byte(raw), &msg); err != nil {
			return nil, fmt.Errorf("malformed contact message: %w", err)
		}
		messages = append(messages, msg)
	}
	return messages, nil
}
