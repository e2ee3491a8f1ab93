package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/aws/aws-lambda-go/events"
)

// Router dispatches API Gateway proxy requests to the storefront
// handlers. Paths mirror the frontend's API contract.
type Router struct {
	payments   *PaymentHandler
	orders     *OrderHandler
	catalog    *CatalogHandler
	contact    *ContactHandler
	newsletter *NewsletterHandler
}

// NewRouter wires the handlers into a Router.
func NewRouter(payments *PaymentHandler, orders *OrderHandler, catalog *CatalogHandler, contact *ContactHandler, newsletter *NewsletterHandler) *Router {
	return &Router{
		payments:   payments,
		orders:     orders,
		catalog:    catalog,
		contact:    contact,
		newsletter: newsletter,
	}
}

// Handle implements the AWS Lambda handler entry point.
func (rt *Router) Handle(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	path := strings.TrimSuffix(req.Path, "/")

	switch {
	case path == "/api/payment/create-vnpay-url" && req.HTTPMethod == http.MethodPost:
		return rt.payments.CreatePaymentURL(ctx, req), nil
	case path == "/api/payment/vnpay-return" && req.HTTPMethod == http.MethodGet:
		return rt.payments.Return(ctx, req), nil

	case path == "/api/orders" && req.HTTPMethod == http.MethodPost:
		return rt.orders.Create(ctx, req), nil
	case strings.HasPrefix(path, "/api/orders/") && req.HTTPMethod == http.MethodGet:
		return rt.orders.Get(ctx, strings.TrimPrefix(path, "/api/orders/")), nil

	case path == "/api/products" && req.HTTPMethod == http.MethodGet:
		return rt.catalog.List(ctx), nil
	case strings.HasPrefix(path, "/api/products/") && req.HTTPMethod == http.MethodGet:
		return rt.catalog.Get(ctx, strings.TrimPrefix(path, "/api/products/")), nil

	case path == "/api/contact" && req.HTTPMethod == http.MethodPost:
		return rt.contact.Submit(ctx, req), nil
	case path == "/api/contact" && req.HTTPMethod == http.MethodGet:
		return rt.contact.List(ctx), nil

	case path == "/api/newsletter/subscribe" && req.HTTPMethod == http.MethodPost:
		return rt.newsletter.Subscribe(ctx, req), nil
	case path == "/api/newsletter" && req.HTTPMethod == http.MethodGet:
		return rt.newsletter.List(ctx), nil
	}

	return errorResponse(http.StatusNotFound, "not found"), nil
}
