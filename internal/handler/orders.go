package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/google/uuid"

	"github.com/berniyo/vnpay-lambda/internal/store"
)

// OrderHandler serves order creation and lookup. It never touches
// payment state; that is the settler's job.
type OrderHandler struct {
	orders OrderStore
	logger *log.Logger
	now    func() time.Time
	newID  func() string
}

// NewOrderHandler builds an OrderHandler.
func NewOrderHandler(orders OrderStore, logger *log.Logger) *OrderHandler {
	if logger == nil {
		logger = log.New(os.Stdout, "vnpay-lambda ", log.LstdFlags)
	}
	return &OrderHandler{
		orders: orders,
		logger: logger,
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

type createOrderRequest struct {
	Amount int64        `json:"amount"`
	Items  []store.Item `json:"items,omitempty"`
}

// Create persists a new unpaid order and returns it.
func (h *OrderHandler) Create(ctx context.Context, req events.APIGatewayProxyRequest) events.APIGatewayProxyResponse {
	var body createOrderRequest
	if err := json.Unmarshal([]byte(req.Body), &body); err != nil {
		return errorResponse(http.StatusBadRequest, "invalid request body")
	}
	if body.Amount <= 0 {
		return errorResponse(http.StatusBadRequest, "amount must be positive")
	}

	order := &store.Order{
		ID:        h.newID(),
		Amount:    body.Amount,
		Items:     body.Items,
		CreatedAt: h.now().UTC(),
	}
	if err := h.orders.Create(ctx, order); err != nil {
		h.logger.Printf("order create failed: %v", err)
		return errorResponse(http.StatusInternalServerError, "failed to create order")
	}

	h.logger.Printf("created order %s", order.ID)
	return jsonResponse(http.StatusCreated, order)
}

// Get returns one order by id.
func (h *OrderHandler) Get(ctx context.Context, id string) events.APIGatewayProxyResponse {
	order, err := h.orders.FindByID(ctx, id)
	if errors.Is(err, store.ErrOrderNotFound) {
		return errorResponse(http.StatusNotFound, "order not found")
	}
	if err != nil {
		h.logger.Printf("order %s lookup failed: %v", id, err)
		return errorResponse(http.StatusInternalServerError, "failed to load order")
	}
	return jsonResponse(http.StatusOK, order)
}
