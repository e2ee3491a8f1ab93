package handler

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/google/uuid"

	"github.com/berniyo/vnpay-lambda/internal/store"
)

// ContactStore defines the contact-message access used by the handlers.
type ContactStore interface {
	Add(ctx context.Context, msg store.Message) error
	List(ctx context.Context) ([]store.Message, error)
}

// ContactHandler serves the contact form.
type ContactHandler struct {
	messages ContactStore
	logger   *log.Logger
	now      func() time.Time
	newID    func() string
}

// NewContactHandler builds a ContactHandler.
func NewContactHandler(messages ContactStore, logger *log.Logger) *ContactHandler {
	if logger == nil {
		logger = log.New(os.Stdout, "vnpay-lambda ", log.LstdFlags)
	}
	return &ContactHandler{
		messages: messages,
		logger:   logger,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

type contactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// Submit stores a contact-form submission.
func (h *ContactHandler) Submit(ctx context.Context, req events.APIGatewayProxyRequest) events.APIGatewayProxyResponse {
	var body contactRequest
	if err := json.Unmarshal([]byte(req.Body), &body); err != nil {
		return errorResponse(http.StatusBadRequest, "invalid request body")
	}

	body.Name = strings.TrimSpace(body.Name)
	body.Email = strings.TrimSpace(body.Email)
	body.Message = strings.TrimSpace(body.Message)
	if body.Name == "" || body.Message == "" {
		return errorResponse(http.StatusBadRequest, "name and message are required")
	}
	if !strings.Contains(body.Email, "@") {
		return errorResponse(http.StatusBadRequest, "a valid email is required")
	}

	msg := store.Message{
		ID:        h.newID(),
		Name:      body.Name,
		Email:     body.Email,
		Message:   body.Message,
		CreatedAt: h.now().UTC(),
	}
	if err := h.messages.Add(ctx, msg); err != nil {
		h.logger.Printf("contact message store failed: %v", err)
		return errorResponse(http.StatusInternalServerError, "failed to store message")
	}

	return jsonResponse(http.StatusCreated, map[string]string{"message": "message received"})
}

// List returns all submissions, newest first.
func (h *ContactHandler) List(ctx context.Context) events.APIGatewayProxyResponse {
	messages, err := h.messages.List(ctx)
	if err != nil {
		h.logger.Printf("contact list failed: %v", err)
		return errorResponse(http.StatusInternalServerError, "failed to load messages")
	}
	return jsonResponse(http.StatusOK, messages)
}
