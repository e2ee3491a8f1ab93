package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/go-redis/redis/v8"
)

const catalogKey = "products"

// Catalog serves read-only product data from a single Redis hash mapping
// product id to a JSON document. The hash is loaded out of band.
type Catalog struct {
	rdb *redis.Client
}

// NewCatalog builds a catalog store over the given Redis client.
func NewCatalog(rdb *redis.Client) *Catalog {
	return &Catalog{rdb: rdb}
}

// List returns every product, ordered by id for stable output.
func (c *Catalog) List(ctx context.Context) ([]Product, error) {
	entries, err := c.rdb.HGetAll(ctx, catalogKey).Result()
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	products := make([]Product, 0, len(entries))
	for id, raw := range entries {
		var p Product
		if err := json.Unmarshal([]byte(raw), &p); err != nil {
			return nil, fmt.Errorf("product %s has malformed data: %w", id, err)
		}
		p.ID = id
		products = append(products, p)
	}
	sort.Slice(products, func(i, j int) bool { return products[i].ID < products[j].ID })
	return products, nil
}

// FindByID loads one product, returning ErrProductNotFound on misses.
func (c *Catalog) FindByID(ctx context.Context, id string) (*Product, error) {
	raw, err := c.rdb.HGet(ctx, catalogKey, id).Result()
	if err == redis.Nil {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load product %s: %w", id, err)
	}

	var p Product
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return nil, fmt.Errorf("product %s has malformed data: %w", id, err)
	}
	p.ID = id
	return &p, nil
}
