package client

import (
	"context"
	"net/url"

	"github.com/joao-fontenele/handix-orderview/internal/domain"
)

// InventoryClient talks to the inventory service, which also serves product
// details.
type InventoryClient struct {
	*Client
}

func NewInventoryClient(c *Client) *InventoryClient {
	return &InventoryClient{Client: c}
}

func (c *InventoryClient) InventoryProduct(ctx context.Context, productID string) (*domain.InventoryRecord, error) {
	var rec domain.InventoryRecord
	if err := c.getJSON(ctx, "/inventory/product/"+url.PathEscape(productID), &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (c *InventoryClient) Product(ctx context.Context, productID string) (*domain.ProductRecord, error) {
	var rec domain.ProductRecord
	if err := c.getJSON(ctx, "/products/"+url.PathEscape(productID), &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}
