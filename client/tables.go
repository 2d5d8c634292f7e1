package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/easybar-app/gateway/models"
)

func (c *Client) ListTables(ctx context.Context) ([]models.Table, error) {
	var tables []models.Table
	if err := c.get(ctx, "/mesas", &tables); err != nil {
		return nil, err
	}
	return tables, nil
}

func (c *Client) GetTableByNumber(ctx context.Context, number int) (*models.Table, error) {
	var table models.Table
	if err := c.get(ctx, fmt.Sprintf("/mesas/numero/%d", number), &table); err != nil {
		return nil, err
	}
	return &table, nil
}

func (c *Client) UpdateTableStatus(ctx context.Context, tableID string, status models.TableStatus) error {
	body := map[string]models.TableStatus{"status": status}
	return c.do(ctx, http.MethodPut, "/mesas/"+tableID, body, nil)
}
