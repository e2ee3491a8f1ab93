package handler

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/aws/aws-lambda-go/events"
)

// SubscriberStore defines the newsletter access used by the handlers.
type SubscriberStore interface {
	Subscribe(ctx context.Context, email string) (bool, error)
	List(ctx context.Context) ([]string, error)
}

// NewsletterHandler serves newsletter subscriptions.
type NewsletterHandler struct {
	subscribers SubscriberStore
	logger      *log.Logger
}

// NewNewsletterHandler builds a NewsletterHandler.
func NewNewsletterHandler(subscribers SubscriberStore, logger *log.Logger) *NewsletterHandler {
	if logger == nil {
		logger = log.New(os.Stdout, "vnpay-lambda ", log.LstdFlags)
	}
	return &NewsletterHandler{subscribers: subscribers, logger: logger}
}

type subscribeRequest struct {
	Email string `json:"email"`
}

// Subscribe adds an address to the newsletter list.
func (h *NewsletterHandler) Subscribe(ctx context.Context, req events.APIGatewayProxyRequest) events.APIGatewayProxyResponse {
	var body subscribeRequest
	if err := json.Unmarshal([]byte(req.Body), &body); err != nil {
		return errorResponse(http.StatusBadRequest, "invalid request body")
	}

	email := strings.ToLower(strings.TrimSpace(body.Email))
	if !strings.Contains(email, "@") {
		return errorResponse(http.StatusBadRequest, "a valid email is required")
	}

	added, err := h.subscribers.Subscribe(ctx, email)
	if err != nil {
		h.logger.Printf("subscribe failed: %v", err)
		return errorResponse(http.StatusInternalServerError, "failed to subscribe")
	}
	if !added {
		return jsonResponse(http.StatusOK, map[string]string{"message": "already subscribed"})
	}
	return jsonResponse(http.StatusCreated, map[string]string{"message": "subscribed"})
}

// List returns all subscribed addresses.
func (h *NewsletterHandler) List(ctx context.Context) events.APIGatewayProxyResponse {
	emails, err := h.subscribers.List(ctx)
	if err != nil {
		h.logger.Printf("subscriber list failed: %v", err)
		return errorResponse(http.StatusInternalServerError, "failed to load subscribers")
	}
	return jsonResponse(http.StatusOK, emails)
}
