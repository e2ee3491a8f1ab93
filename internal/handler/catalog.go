package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"

	"github.com/aws/aws-lambda-go/events"

	"github.com/berniyo/vnpay-lambda/internal/store"
)

// ProductStore defines the read-only catalog access used by the handlers.
type ProductStore interface {
	List(ctx context.Context) ([]store.Product, error)
	FindByID(ctx context.Context, id string) (*store.Product, error)
}

// CatalogHandler serves product listings.
type CatalogHandler struct {
	products ProductStore
	logger   *log.Logger
}

// NewCatalogHandler builds a CatalogHandler.
func NewCatalogHandler(products ProductStore, logger *log.Logger) *CatalogHandler {
	if logger == nil {
		logger = log.New(os.Stdout, "vnpay-lambda ", log.LstdFlags)
	}
	return &CatalogHandler{products: products, logger: logger}
}

// List returns the full catalog.
func (h *CatalogHandler) List(ctx context.Context) events.APIGatewayProxyResponse {
	products, err := h.products.List(ctx)
	if err != nil {
		h.logger.Printf("catalog list failed: %v", err)
		return errorResponse(http.StatusInternalServerError, "failed to load products")
	}
	return jsonResponse(http.StatusOK, products)
}

// Get returns one product by id.
func (h *CatalogHandler) Get(ctx context.Context, id string) events.APIGatewayProxyResponse {
	product, err := h.products.FindByID(ctx, id)
	if errors.Is(err, store.ErrProductNotFound) {
		return errorResponse(http.StatusNotFound, "product not found")
	}
	if err != nil {
		h.logger.Printf("product %s lookup failed: %v", id, err)
		return errorResponse(http.StatusInternalServerError, "failed to load product")
	}
	return jsonResponse(http.StatusOK, product)
}
