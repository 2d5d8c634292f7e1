package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/easybar-app/gateway/client"
	"github.com/easybar-app/gateway/models"
	"github.com/easybar-app/gateway/utils"
)

type TableService struct {
	API *client.Client
}

func NewTableService(api *client.Client) *TableService {
	return &TableService{API: api}
}

// TableView is a table with its display status derived from open tabs.
type TableView struct {
	models.Table
	DisplayStatus models.TableStatus `json:"display_status"`
	OpenTabID     string             `json:"open_tab_id,omitempty"`
}

// AnnotateOccupancy derives each table's display status: any table
// referenced by an open tab shows occupied, whatever its stored status
// says. The stored field is treated as a cache of this derivation, never as
// ground truth on its own.
func AnnotateOccupancy(tables []models.Table, tabs []models.TabSummary) []TableView {
	openByTable := make(map[string]string, len(tabs))
	for _, tab := range tabs {
		if tab.Status == models.TabOpen {
			openByTable[tab.Table.ID] = tab.ID
		}
	}

	views := make([]TableView, 0, len(tables))
	for _, table := range tables {
		view := TableView{Table: table, DisplayStatus: table.Status}
		if tabID, ok := openByTable[table.ID]; ok {
			view.DisplayStatus = models.TableOccupied
			view.OpenTabID = tabID
		}
		views = append(views, view)
	}
	return views
}

// ListAnnotated fetches tables and tabs and cross-references them.
func (s *TableService) ListAnnotated(ctx context.Context) ([]TableView, []models.TabSummary, error) {
	tables, err := s.API.ListTables(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("list tables: %w", err)
	}
	tabs, err := s.API.ListTabs(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("list tabs: %w", err)
	}
	return AnnotateOccupancy(tables, tabs), tabs, nil
}

// OpenTabForTable marks the table occupied, then creates an open tab for
// the given user. The two writes are sequential with no atomicity; if the
// second fails the table is left occupied with no tab, which the occupancy
// derivation reconciles on the next load.
func (s *TableService) OpenTabForTable(ctx context.Context, table *models.Table, userID string) (*models.Tab, error) {
	if err := s.API.UpdateTableStatus(ctx, table.ID, models.TableOccupied); err != nil {
		return nil, fmt.Errorf("occupy table %s: %w", table.ID, err)
	}

	tab, err := s.API.CreateTab(ctx, client.NewTab{
		TableNumber: table.Number,
		OwnerID:     userID,
		Status:      models.TabOpen,
		Total:       0,
	})
	if err != nil {
		utils.ErrorLogger.Printf("Table %s occupied but tab creation failed: %v", table.ID, err)
		return nil, fmt.Errorf("create tab for table %s: %w", table.ID, err)
	}

	utils.InfoLogger.Printf("Staff opened tab %s for user %s at table %d", tab.ID, userID, table.Number)
	return tab, nil
}

// TabHistory returns every tab ever held at a table, the open one included.
func (s *TableService) TabHistory(ctx context.Context, tableID string) ([]models.Tab, error) {
	tabs, err := s.API.ListTabsByTable(ctx, tableID)
	if err != nil {
		if errors.Is(err, client.ErrNotFound) {
			return []models.Tab{}, nil
		}
		return nil, fmt.Errorf("list tabs for table %s: %w", tableID, err)
	}
	return tabs, nil
}

// FindTable resolves a table by its backend ID from the full listing; the
// backend only exposes lookup by number.
func (s *TableService) FindTable(ctx context.Context, tableID string) (*models.Table, error) {
	tables, err := s.API.ListTables(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}
	for i := range tables {
		if tables[i].ID == tableID {
			return &tables[i], nil
		}
	}
	return nil, client.ErrNotFound
}
