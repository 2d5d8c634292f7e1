package client

import (
	"context"
	"net/http"

	"github.com/easybar-app/gateway/models"
)

func (c *Client) ListOrders(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	if err := c.get(ctx, "/pedidos", &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (c *Client) SetOrderStatus(ctx context.Context, orderID string, status models.OrderStatus) error {
	body := map[string]models.OrderStatus{"status": status}
	return c.do(ctx, http.MethodPatch, "/pedidos/"+orderID+"/status", body, nil)
}
