package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/easybar-app/gateway/client"
	"github.com/easybar-app/gateway/models"
	"github.com/easybar-app/gateway/utils"
)

// ServiceChargeRate is the house service charge applied on top of the
// subtotal. Fixed at 10%.
const ServiceChargeRate = 0.10

var (
	ErrNoOpenTab   = errors.New("no open tab")
	ErrTabNotOpen  = errors.New("tab is not open")
	ErrNoTableHint = errors.New("no table bound for this user")
)

type Totals struct {
	Subtotal float64 `json:"subtotal"`
	Service  float64 `json:"service_charge"`
	Total    float64 `json:"total"`
}

// ComputeTotals derives the bill from the line items. Pure; an empty list
// yields zeros across the board.
func ComputeTotals(items []models.TabItem) Totals {
	var subtotal float64
	for _, item := range items {
		subtotal += item.Value * float64(item.Quantity)
	}
	service := subtotal * ServiceChargeRate
	return Totals{
		Subtotal: subtotal,
		Service:  service,
		Total:    subtotal + service,
	}
}

type TabService struct {
	API      *client.Client
	Sessions *SessionStore
}

func NewTabService(api *client.Client, sessions *SessionStore) *TabService {
	return &TabService{API: api, Sessions: sessions}
}

// EnsureOpenTab finds the user's single open tab, creating one bound to
// tableNumber when none exists. Calling it twice without an intervening
// close returns the same tab.
func (s *TabService) EnsureOpenTab(ctx context.Context, userID string, tableNumber int) (*models.Tab, error) {
	tabs, err := s.API.ListTabsByOwner(ctx, userID)
	if err != nil && !errors.Is(err, client.ErrNotFound) {
		return nil, fmt.Errorf("list tabs for %s: %w", userID, err)
	}

	for i := range tabs {
		if tabs[i].Status == models.TabOpen {
			return &tabs[i], nil
		}
	}

	// Opening a tab needs to know where the customer sits.
	if tableNumber < 1 {
		return nil, ErrNoTableHint
	}

	tab, err := s.API.CreateTab(ctx, client.NewTab{
		TableNumber: tableNumber,
		OwnerID:     userID,
		Status:      models.TabOpen,
		Total:       0,
	})
	if err != nil {
		var statusErr *client.StatusError
		if errors.As(err, &statusErr) {
			return nil, fmt.Errorf("tab creation rejected: %w", err)
		}
		return nil, fmt.Errorf("create tab for %s: %w", userID, err)
	}

	utils.InfoLogger.Printf("Opened tab %s for user %s at table %d", tab.ID, userID, tableNumber)
	return tab, nil
}

// RequestClose records the customer's closing request. The tab stays open
// on the backend until a staff member confirms.
func (s *TabService) RequestClose(tab *models.Tab, userID string) (*models.ClosingRequest, error) {
	if tab.Status != models.TabOpen {
		return nil, ErrTabNotOpen
	}
	return s.Sessions.MarkClosing(tab.ID, userID)
}

// CloseTab is the staff confirmation: flips the backend status to closed
// and clears any pending closing request. Closed and cancelled tabs are
// terminal.
func (s *TabService) CloseTab(ctx context.Context, tabID string) (*models.Tab, error) {
	current, err := s.API.GetTab(ctx, tabID)
	if err != nil {
		return nil, fmt.Errorf("fetch tab %s: %w", tabID, err)
	}
	if current.Status != models.TabOpen {
		return nil, ErrTabNotOpen
	}

	closed := models.TabClosed
	tab, err := s.API.UpdateTab(ctx, tabID, client.TabUpdate{Status: &closed})
	if err != nil {
		return nil, fmt.Errorf("close tab %s: %w", tabID, err)
	}

	if err := s.Sessions.ClearClosing(tabID); err != nil {
		// The tab is closed on the backend; a stale closing entry only
		// lingers in the staff queue until pruned.
		utils.ErrorLogger.Printf("Failed to clear closing request for tab %s: %v", tabID, err)
	}

	utils.InfoLogger.Printf("Tab %s closed", tabID)
	return tab, nil
}

// AddItem appends a pending line item to the user's open tab. Fails with
// ErrNoOpenTab when there is nothing to append to.
func (s *TabService) AddItem(ctx context.Context, userID string, product *models.Product, quantity int, notes string) (*models.Tab, error) {
	if quantity < 1 {
		return nil, fmt.Errorf("quantity must be at least 1")
	}

	tabs, err := s.API.ListTabsByOwner(ctx, userID)
	if err != nil && !errors.Is(err, client.ErrNotFound) {
		return nil, fmt.Errorf("list tabs for %s: %w", userID, err)
	}

	var open *models.Tab
	for i := range tabs {
		if tabs[i].Status == models.TabOpen {
			open = &tabs[i]
			break
		}
	}
	if open == nil {
		return nil, ErrNoOpenTab
	}

	tab, err := s.API.AppendTabItem(ctx, userID, client.NewTabItem{
		ProductID: product.ID,
		Quantity:  quantity,
		Value:     product.Value,
		Notes:     notes,
		Status:    models.ItemPendente,
	})
	if err != nil {
		return nil, fmt.Errorf("append item to tab %s: %w", open.ID, err)
	}
	return tab, nil
}
