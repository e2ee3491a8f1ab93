package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/stretchr/testify/require"

	"github.com/berniyo/vnpay-lambda/internal/store"
	"github.com/berniyo/vnpay-lambda/internal/vnpay"
)

type fakeProductStore struct {
	products []store.Product
	err      error
}

func (f *fakeProductStore) List(ctx context.Context) ([]store.Product, error) {
	return f.products, f.err
}

func (f *fakeProductStore) FindByID(ctx context.Context, id string) (*store.Product, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, p := range f.products {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, store.ErrProductNotFound
}

type fakeContactStore struct {
	messages []store.Message
	err      error
}

func (f *fakeContactStore) Add(ctx context.Context, msg store.Message) error {
	if f.err != nil {
		return f.err
	}
	f.messages = append([]store.Message{msg}, f.messages...)
	return nil
}

func (f *fakeContactStore) List(ctx context.Context) ([]store.Message, error) {
	return f.messages, f.err
}

type fakeSubscriberStore struct {
	emails map[string]bool
	err    error
}

func (f *fakeSubscriberStore) Subscribe(ctx context.Context, email string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	if f.emails == nil {
		f.emails = make(map[string]bool)
	}
	if f.emails[email] {
		return false, nil
	}
	f.emails[email] = true
	return true, nil
}

func (f *fakeSubscriberStore) List(ctx context.Context) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	emails := make([]string, 0, len(f.emails))
	for email := range f.emails {
		emails = append(emails, email)
	}
	return emails, nil
}

func TestOrderHandlerCreate(t *testing.T) {
	orders := newFakeOrderStore()
	h := NewOrderHandler(orders, nil)
	h.now = func() time.Time { return time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC) }
	h.newID = func() string { return "ORD1" }

	resp := h.Create(context.Background(), events.APIGatewayProxyRequest{
		Body: `{"amount":100000,"items":[{"name":"Ao thun","price":50000,"quantity":2}]}`,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var order store.Order
	require.NoError(t, json.Unmarshal([]byte(resp.Body), &order))
	require.Equal(t, "ORD1", order.ID)
	require.False(t, order.IsPaid)

	persisted := orders.orders["ORD1"]
	require.NotNil(t, persisted)
	require.Equal(t, int64(100000), persisted.Amount)
	require.Len(t, persisted.Items, 1)
}

func TestOrderHandlerCreateValidatesAmount(t *testing.T) {
	h := NewOrderHandler(newFakeOrderStore(), nil)

	resp := h.Create(context.Background(), events.APIGatewayProxyRequest{Body: `{"amount":0}`})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestOrderHandlerGet(t *testing.T) {
	orders := newFakeOrderStore(&store.Order{ID: "ORD1", Amount: 100000})
	h := NewOrderHandler(orders, nil)

	resp := h.Get(context.Background(), "ORD1")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = h.Get(context.Background(), "missing")
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCatalogHandler(t *testing.T) {
	products := &fakeProductStore{products: []store.Product{
		{ID: "p1", Name: "Ao thun", Price: 150000},
		{ID: "p2", Name: "Quan jean", Price: 450000},
	}}
	h := NewCatalogHandler(products, nil)

	resp := h.List(context.Background())
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var listed []store.Product
	require.NoError(t, json.Unmarshal([]byte(resp.Body), &listed))
	require.Len(t, listed, 2)

	resp = h.Get(context.Background(), "p2")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = h.Get(context.Background(), "missing")
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestContactHandlerSubmit(t *testing.T) {
	messages := &fakeContactStore{}
	h := NewContactHandler(messages, nil)

	resp := h.Submit(context.Background(), events.APIGatewayProxyRequest{
		Body: `{"name":"Linh","email":"linh@example.com","message":"Ship time?"}`,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.Len(t, messages.messages, 1)
	require.NotEmpty(t, messages.messages[0].ID)
}

func TestContactHandlerSubmitValidation(t *testing.T) {
	h := NewContactHandler(&fakeContactStore{}, nil)

	tests := []struct {
		name string
		body string
	}{
		{"malformed body", "{"},
		{"missing name", `{"email":"a@b.c","message":"hi"}`},
		{"missing message", `{"name":"Linh","email":"a@b.c"}`},
		{"bad email", `{"name":"Linh","email":"not-an-email","message":"hi"}`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			resp := h.Submit(context.Background(), events.APIGatewayProxyRequest{Body: tc.body})
			require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		})
	}
}

func TestNewsletterHandlerSubscribe(t *testing.T) {
	subscribers := &fakeSubscriberStore{}
	h := NewNewsletterHandler(subscribers, nil)

	resp := h.Subscribe(context.Background(), events.APIGatewayProxyRequest{
		Body: `{"email":"Linh@Example.com"}`,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.True(t, subscribers.emails["linh@example.com"], "addresses are lowercased")

	// Subscribing twice is reported, not an error.
	resp = h.Subscribe(context.Background(), events.APIGatewayProxyRequest{
		Body: `{"email":"linh@example.com"}`,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, resp.Body, "already subscribed")
}

func TestNewsletterHandlerSubscribeValidation(t *testing.T) {
	h := NewNewsletterHandler(&fakeSubscriberStore{}, nil)

	resp := h.Subscribe(context.Background(), events.APIGatewayProxyRequest{Body: `{"email":"nope"}`})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestNewsletterHandlerStoreFailure(t *testing.T) {
	h := NewNewsletterHandler(&fakeSubscriberStore{err: errors.New("redis down")}, nil)

	resp := h.Subscribe(context.Background(), events.APIGatewayProxyRequest{Body: `{"email":"a@b.c"}`})
	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func testRouter(orders *fakeOrderStore) *Router {
	gateway := &fakeGateway{
		buildFn: func(req vnpay.PaymentRequest) (string, error) {
			return "https://example.com?signed", nil
		},
		verifyFn: func(params map[string]string) vnpay.Outcome {
			return vnpay.Outcome{Status: vnpay.SignatureInvalid}
		},
	}
	settler := NewSettler(orders, testFrontendURL)
	return NewRouter(
		NewPaymentHandler(gateway, settler),
		NewOrderHandler(orders, nil),
		NewCatalogHandler(&fakeProductStore{}, nil),
		NewContactHandler(&fakeContactStore{}, nil),
		NewNewsletterHandler(&fakeSubscriberStore{}, nil),
	)
}

func TestRouterDispatch(t *testing.T) {
	orders := newFakeOrderStore(&store.Order{ID: "ORD1", Amount: 100000})
	router := testRouter(orders)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		status int
	}{
		{"create payment url", http.MethodPost, "/api/payment/create-vnpay-url", `{"orderId":"ORD1","amount":100000}`, http.StatusOK},
		{"payment return", http.MethodGet, "/api/payment/vnpay-return", "", http.StatusFound},
		{"get order", http.MethodGet, "/api/orders/ORD1", "", http.StatusOK},
		{"get order trailing slash", http.MethodGet, "/api/orders/ORD1/", "", http.StatusOK},
		{"list products", http.MethodGet, "/api/products", "", http.StatusOK},
		{"subscribe", http.MethodPost, "/api/newsletter/subscribe", `{"email":"a@b.c"}`, http.StatusCreated},
		{"list subscribers", http.MethodGet, "/api/newsletter", "", http.StatusOK},
		{"unknown path", http.MethodGet, "/api/unknown", "", http.StatusNotFound},
		{"wrong method", http.MethodDelete, "/api/orders", "", http.StatusNotFound},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			resp, err := router.Handle(context.Background(), events.APIGatewayProxyRequest{
				HTTPMethod: tc.method,
				Path:       tc.path,
				Body:       tc.body,
			})
			require.NoError(t, err)
			require.Equal(t, tc.status, resp.StatusCode)
		})
	}
}
