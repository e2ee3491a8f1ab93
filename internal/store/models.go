package store

import (
	"errors"
	"time"
)

// ErrOrderNotFound marks an order lookup miss.
var ErrOrderNotFound = errors.New("order not found")

// ErrProductNotFound marks a catalog lookup miss.
var ErrProductNotFound = errors.New("product not found")

// Order is the slice of an order that payment settlement cares about.
// Orders are created unpaid; the paid flag is flipped at most once.
type Order struct {
	ID        string     `json:"id"`
	Amount    int64      `json:"amount"`
	Items     []Item     `json:"items,omitempty"`
	IsPaid    bool       `json:"isPaid"`
	PaidAt    *time.Time `json:"paidAt,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}

// Item is a single order line.
type Item struct {
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	Quantity int    `json:"quantity"`
}

// Product is a catalog entry.
type Product struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description,omitempty"`
	Price        int64  `json:"price"`
	Image        string `json:"image,omitempty"`
	CountInStock int    `json:"countInStock"`
}

// Message is a contact-form submission.
type Message struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}
