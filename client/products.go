package client

import (
	"context"

	"github.com/easybar-app/gateway/models"
)

func (c *Client) ListProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := c.get(ctx, "/produtos", &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *Client) GetProduct(ctx context.Context, productID string) (*models.Product, error) {
	var product models.Product
	if err := c.get(ctx, "/produtos/"+productID, &product); err != nil {
		return nil, err
	}
	return &product, nil
}
