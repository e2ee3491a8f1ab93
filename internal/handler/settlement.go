package handler

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/url"
	"os"
	"time"

	"github.com/berniyo/vnpay-lambda/internal/store"
	"github.com/berniyo/vnpay-lambda/internal/vnpay"
)

// OrderStore defines the subset of the order store used by the handlers.
type OrderStore interface {
	Create(ctx context.Context, order *store.Order) error
	FindByID(ctx context.Context, id string) (*store.Order, error)
	MarkPaid(ctx context.Context, id string, paidAt time.Time) (bool, error)
}

// Notifier delivers settlement outcomes to downstream systems.
type Notifier interface {
	Send(ctx context.Context, notice PaymentNotice) error
}

// Settler is the only component that mutates payment state. Given a
// verified callback outcome it performs the idempotent paid transition
// and picks the frontend page the customer is redirected to.
type Settler struct {
	orders      OrderStore
	frontendURL string
	logger      *log.Logger
	notifier    Notifier
	now         func() time.Time
}

// SettlerOption customizes the settler.
type SettlerOption func(*Settler)

// WithSettlerLogger lets callers supply a custom logger.
func WithSettlerLogger(l *log.Logger) SettlerOption {
	return func(s *Settler) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithSettlerNotifier wires a destination for settlement notices.
func WithSettlerNotifier(n Notifier) SettlerOption {
	return func(s *Settler) {
		s.notifier = n
	}
}

// WithSettlerClock overrides the paid-at timestamp source.
func WithSettlerClock(now func() time.Time) SettlerOption {
	return func(s *Settler) {
		if now != nil {
			s.now = now
		}
	}
}

// NewSettler builds a Settler with sane defaults.
func NewSettler(orders OrderStore, frontendURL string, opts ...SettlerOption) *Settler {
	s := &Settler{
		orders:      orders,
		frontendURL: frontendURL,
		logger:      log.New(os.Stdout, "vnpay-lambda ", log.LstdFlags),
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Apply maps a verified outcome to a redirect target, mutating the order
// on success. Unauthenticated callbacks never touch the store.
func (s *Settler) Apply(ctx context.Context, outcome vnpay.Outcome) string {
	switch outcome.Status {
	case vnpay.PaymentSucceeded:
		return s.settle(ctx, outcome)
	case vnpay.PaymentFailed:
		s.logger.Printf("payment failed for order %s: gateway code %s", outcome.OrderID, outcome.ResponseCode)
		s.emitNotice(ctx, outcome)
		return s.failureURL(outcome.OrderID)
	default:
		s.logger.Printf("rejected payment callback: signature invalid")
		return s.failureURL("")
	}
}

func (s *Settler) settle(ctx context.Context, outcome vnpay.Outcome) string {
	order, err := s.orders.FindByID(ctx, outcome.OrderID)
	if errors.Is(err, store.ErrOrderNotFound) {
		// Money moved at the gateway but we have no matching order. Not an
		// ordinary payment failure; needs operator attention.
		s.logger.Printf("anomaly: confirmed payment for unknown order %s", outcome.OrderID)
		return s.failureURL(outcome.OrderID)
	}
	if err != nil {
		s.logger.Printf("order %s lookup failed during settlement: %v", outcome.OrderID, err)
		return s.failureURL(outcome.OrderID)
	}

	if order.IsPaid {
		// Replay of an already-settled callback; succeed without writing.
		s.logger.Printf("order %s already paid, ignoring duplicate callback", order.ID)
		return s.successURL(order.ID)
	}

	first, err := s.orders.MarkPaid(ctx, order.ID, s.now())
	if err != nil {
		// The gateway considers this paid but we could not record it.
		s.logger.Printf("reconciliation needed: order %s confirmed by gateway but not persisted: %v", order.ID, err)
		return s.failureURL(order.ID)
	}
	if !first {
		s.logger.Printf("order %s settled by a concurrent callback", order.ID)
		return s.successURL(order.ID)
	}

	s.logger.Printf("order %s marked paid", order.ID)
	s.emitNotice(ctx, outcome)
	return s.successURL(order.ID)
}

func (s *Settler) successURL(orderID string) string {
	return fmt.Sprintf("%s/order/%s", s.frontendURL, url.PathEscape(orderID))
}

func (s *Settler) failureURL(orderID string) string {
	target := s.frontendURL + "/checkout?payment=fail"
	if orderID != "" {
		target += "&orderId=" + url.QueryEscape(orderID)
	}
	return target
}

func (s *Settler) emitNotice(ctx context.Context, outcome vnpay.Outcome) {
	if s.notifier == nil {
		return
	}
	notice := PaymentNotice{
		OrderID:      outcome.OrderID,
		Status:       outcome.Status.String(),
		ResponseCode: outcome.ResponseCode,
		OccurredAt:   s.now().UTC(),
	}
	if err := s.notifier.Send(ctx, notice); err != nil {
		s.logger.Printf("payment notice delivery failed: %v", err)
	}
}
