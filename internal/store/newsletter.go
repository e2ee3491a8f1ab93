package store

import (
	"context"
	"fmt"
	"sort"

	"github.com/go-redis/redis/v8"
)

const subscribersKey = "newsletter:subscribers"

// Subscribers keeps newsletter addresses in a Redis set, which gives
// duplicate detection for free.
type Subscribers struct {
	rdb *redis.Client
}

// NewSubscribers builds a subscriber store over the given Redis client.
func NewSubscribers(rdb *redis.Client) *Subscribers {
	return &Subscribers{rdb: rdb}
}

// Subscribe adds an address and reports whether it was new.
func (s *Subscribers) Subscribe(ctx context.Context, email string) (bool, error) {
	added, err := s.rdb.SAdd(ctx, subscribersKey, email).Result()
	if err != nil {
		return false, fmt.Errorf("subscribe %s: %w", email, err)
	}
	return added == 1, nil
}

// List returns all subscribed addresses in lexicographic order.
func (s *Subscribers) List(ctx context.Context) ([]string, error) {
	emails, err := s.rdb.SMembers(ctx, subscribersKey).Result()
	if err != nil {
		return nil, fmt.Errorf("load subscribers: %w", err)
	}
	sort.Strings(emails)
	return emails, nil
}
