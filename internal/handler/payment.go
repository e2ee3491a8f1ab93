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

	"github.com/berniyo/vnpay-lambda/internal/vnpay"
)

// Gateway signs outbound payment URLs and verifies return callbacks.
type Gateway interface {
	BuildPaymentURL(req vnpay.PaymentRequest) (string, error)
	VerifyReturn(params map[string]string) vnpay.Outcome
}

// PaymentHandler serves the two payment routes: creating a signed
// redirect URL for a checkout attempt and settling the gateway's return
// callback.
type PaymentHandler struct {
	gateway Gateway
	settler *Settler
	logger  *log.Logger
	now     func() time.Time
}

// PaymentOption customizes the payment handler.
type PaymentOption func(*PaymentHandler)

// WithPaymentLogger lets callers supply a custom logger.
func WithPaymentLogger(l *log.Logger) PaymentOption {
	return func(h *PaymentHandler) {
		if l != nil {
			h.logger = l
		}
	}
}

// WithPaymentClock overrides the request timestamp source.
func WithPaymentClock(now func() time.Time) PaymentOption {
	return func(h *PaymentHandler) {
		if now != nil {
			h.now = now
		}
	}
}

// NewPaymentHandler builds a PaymentHandler with sane defaults.
func NewPaymentHandler(gateway Gateway, settler *Settler, opts ...PaymentOption) *PaymentHandler {
	h := &PaymentHandler{
		gateway: gateway,
		settler: settler,
		logger:  log.New(os.Stdout, "vnpay-lambda ", log.LstdFlags),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

type createPaymentURLRequest struct {
	OrderID  string `json:"orderId"`
	Amount   int64  `json:"amount"`
	Language string `json:"language,omitempty"`
	BankCode string `json:"bankCode,omitempty"`
}

type createPaymentURLResponse struct {
	PaymentURL string `json:"paymentUrl"`
}

// CreatePaymentURL builds the signed gateway redirect for one checkout
// attempt. Nothing is persisted; the redirect itself is stateless.
func (h *PaymentHandler) CreatePaymentURL(ctx context.Context, req events.APIGatewayProxyRequest) events.APIGatewayProxyResponse {
	var body createPaymentURLRequest
	if err := json.Unmarshal([]byte(req.Body), &body); err != nil {
		return errorResponse(http.StatusBadRequest, "invalid request body")
	}

	paymentURL, err := h.gateway.BuildPaymentURL(vnpay.PaymentRequest{
		OrderID:   body.OrderID,
		Amount:    body.Amount,
		Locale:    body.Language,
		BankCode:  body.BankCode,
		ClientIP:  clientIP(req),
		CreatedAt: h.now(),
	})
	if errors.Is(err, vnpay.ErrInvalidRequest) {
		return errorResponse(http.StatusBadRequest, err.Error())
	}
	if err != nil {
		h.logger.Printf("payment URL build failed: %v", err)
		return errorResponse(http.StatusInternalServerError, "failed to create payment URL")
	}

	h.logger.Printf("created payment URL for order %s", body.OrderID)
	return jsonResponse(http.StatusOK, createPaymentURLResponse{PaymentURL: paymentURL})
}

// Return handles the gateway's redirect back after the customer pays or
// cancels. The callback is verified before anything else happens and the
// customer always ends up on a frontend page, never a JSON error.
func (h *PaymentHandler) Return(ctx context.Context, req events.APIGatewayProxyRequest) events.APIGatewayProxyResponse {
	outcome := h.gateway.VerifyReturn(req.QueryStringParameters)
	return redirectResponse(h.settler.Apply(ctx, outcome))
}
