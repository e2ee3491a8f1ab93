package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
)

const (
	orderKeyPrefix = "order:"

	fieldAmount    = "amount"
	fieldItems     = "items"
	fieldCreatedAt = "created_at"
	fieldPaidAt    = "paid_at"
)

// Orders persists orders as Redis hashes, one hash per order. Presence of
// the paid_at field is the paid flag, which keeps the paid transition a
// single conditional write.
type Orders struct {
	rdb *redis.Client
}

// NewOrders builds an order store over the given Redis client.
func NewOrders(rdb *redis.Client) *Orders {
	return &Orders{rdb: rdb}
}

func orderKey(id string) string {
	return orderKeyPrefix + id
}

// Create persists a new, unpaid order.
func (s *Orders) Create(ctx context.Context, order *Order) error {
	fields := map[string]interface{}{
		fieldAmount:    strconv.FormatInt(order.Amount, 10),
		fieldCreatedAt: order.CreatedAt.UTC().Format(time.RFC3339),
	}
	if len(order.Items) > 0 {
		items, err := json.Marshal(order.Items)
		if err != nil {
			return fmt.Errorf("encode order items: %w", err)
		}
		fields[fieldItems] = string(items)
	}

	if err := s.rdb.HSet(ctx, orderKey(order.ID), fields).Err(); err != nil {
		return fmt.Errorf("persist order %s: %w", order.ID, err)
	}
	return nil
}

// FindByID loads an order, returning ErrOrderNotFound on misses.
func (s *Orders) FindByID(ctx context.Context, id string) (*Order, error) {
	fields, err := s.rdb.HGetAll(ctx, orderKey(id)).Result()
	if err != nil {
		return nil, fmt.Errorf("load order %s: %w", id, err)
	}
	if len(fields) == 0 {
		return nil, ErrOrderNotFound
	}

	order := &Order{ID: id}
	if raw, ok := fields[fieldAmount]; ok {
		if order.Amount, err = strconv.ParseInt(raw, 10, 64); err != nil {
			return nil, fmt.Errorf("order %s has malformed amount %q: %w", id, raw, err)
		}
	}
	if raw, ok := fields[fieldCreatedAt]; ok {
		if order.CreatedAt, err = time.Parse(time.RFC3339, raw); err != nil {
			return nil, fmt.Errorf("order %s has malformed created_at %q: %w", id, raw, err)
		}
	}
	if raw, ok := fields[fieldItems]; ok {
		if err := json.Unmarshal([]byte(raw), &order.Items); err != nil {
			return nil, fmt.Errorf("order %s has malformed items: %w", id, err)
		}
	}
	if raw, ok := fields[fieldPaidAt]; ok {
		paidAt, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return nil, fmt.Errorf("order %s has malformed paid_at %q: %w", id, raw, err)
		}
		order.PaidAt = &paidAt
		order.IsPaid = true
	}
	return order, nil
}

// MarkPaid flips the order to paid. HSETNX makes the transition atomic:
// only the first of any concurrent duplicate callbacks writes paid_at, so
// replays can never move the timestamp or double-credit. Returns whether
// this call performed the transition. Callers must have confirmed the
// order exists; HSETNX on a missing key would create a ghost hash.
func (s *Orders) MarkPaid(ctx context.Context, id string, paidAt time.Time) (bool, error) {
	first, err := s.rdb.HSetNX(ctx, orderKey(id), fieldPaidAt, paidAt.UTC().Format(time.RFC3339)).Result()
	if err != nil {
		return false, fmt.Errorf("mark order %s paid: %w", id, err)
	}
	return first, nil
}
