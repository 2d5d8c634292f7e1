package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/easybar-app/gateway/models"
)

type NewTab struct {
	TableNumber int              `json:"mesa"`
	OwnerID     string           `json:"dono"`
	Status      models.TabStatus `json:"status"`
	Total       float64          `json:"valorTotal"`
}

type TabUpdate struct {
	Status        *models.TabStatus `json:"status,omitempty"`
	PaymentMethod *string           `json:"formaPagamento,omitempty"`
}

type NewTabItem struct {
	ProductID string  `json:"produto"`
	Quantity  int     `json:"quantidade"`
	Value     float64 `json:"valor"`
	Notes     string  `json:"observacoes"`
	Status    string  `json:"status"`
}

// The owner-scoped endpoint wraps its payload, unlike the rest of the API.
type tabListEnvelope struct {
	Success bool         `json:"success"`
	Data    []models.Tab `json:"data"`
}

func (c *Client) ListTabs(ctx context.Context) ([]models.TabSummary, error) {
	var tabs []models.TabSummary
	if err := c.get(ctx, "/comandas", &tabs); err != nil {
		return nil, err
	}
	return tabs, nil
}

func (c *Client) GetTab(ctx context.Context, tabID string) (*models.Tab, error) {
	var tab models.Tab
	if err := c.get(ctx, "/comandas/"+tabID, &tab); err != nil {
		return nil, err
	}
	return &tab, nil
}

// ListTabsByOwner returns every tab the user has ever held, open or not.
// ErrNotFound means the user has no tabs yet.
func (c *Client) ListTabsByOwner(ctx context.Context, userID string) ([]models.Tab, error) {
	var envelope tabListEnvelope
	if err := c.get(ctx, "/comandas/dono/"+userID, &envelope); err != nil {
		return nil, err
	}
	if !envelope.Success {
		return nil, fmt.Errorf("backend refused tab listing for owner %s", userID)
	}
	return envelope.Data, nil
}

func (c *Client) ListTabsByTable(ctx context.Context, tableID string) ([]models.Tab, error) {
	var envelope tabListEnvelope
	if err := c.get(ctx, "/comandas/mesa/"+tableID, &envelope); err != nil {
		return nil, err
	}
	return envelope.Data, nil
}

func (c *Client) CreateTab(ctx context.Context, req NewTab) (*models.Tab, error) {
	var tab models.Tab
	if err := c.do(ctx, http.MethodPost, "/comandas", req, &tab); err != nil {
		return nil, err
	}
	return &tab, nil
}

func (c *Client) UpdateTab(ctx context.Context, tabID string, req TabUpdate) (*models.Tab, error) {
	var tab models.Tab
	if err := c.do(ctx, http.MethodPut, "/comandas/"+tabID, req, &tab); err != nil {
		return nil, err
	}
	return &tab, nil
}

// AppendTabItem adds a line item to the owner's open tab.
func (c *Client) AppendTabItem(ctx context.Context, ownerID string, item NewTabItem) (*models.Tab, error) {
	var tab models.Tab
	if err := c.do(ctx, http.MethodPost, "/comandas/dono/"+ownerID+"/items", item, &tab); err != nil {
		return nil, err
	}
	return &tab, nil
}
