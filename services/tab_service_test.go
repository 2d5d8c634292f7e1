package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/easybar-app/gateway/client"
	"github.com/easybar-app/gateway/models"
	"github.com/easybar-app/gateway/utils"
)

func init() {
	utils.InitLogger()
}

func setupSessionDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&models.TableBinding{}, &models.ClosingRequest{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

// fakeTabBackend serves the tab endpoints with in-memory state.
type fakeTabBackend struct {
	srv     *httptest.Server
	tabs    []models.Tab
	created int
}

func newFakeTabBackend(t *testing.T, tabs []models.Tab) *fakeTabBackend {
	t.Helper()
	backend := &fakeTabBackend{tabs: tabs}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /comandas/dono/{user}", func(w http.ResponseWriter, r *http.Request) {
		user := r.PathValue("user")
		var owned []models.Tab
		for _, tab := range backend.tabs {
			if tab.OwnerID == user {
				owned = append(owned, tab)
			}
		}
		if owned == nil {
			http.NotFound(w, r)
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{"success": true, "data": owned})
	})
	mux.HandleFunc("POST /comandas", func(w http.ResponseWriter, r *http.Request) {
		var req client.NewTab
		json.NewDecoder(r.Body).Decode(&req)
		backend.created++
		tab := models.Tab{
			ID:          fmt.Sprintf("tab-%d", backend.created),
			Status:      req.Status,
			OwnerID:     req.OwnerID,
			TableNumber: req.TableNumber,
			Total:       req.Total,
			Items:       []models.TabItem{},
		}
		backend.tabs = append(backend.tabs, tab)
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(tab)
	})
	mux.HandleFunc("GET /comandas/{id}", func(w http.ResponseWriter, r *http.Request) {
		for _, tab := range backend.tabs {
			if tab.ID == r.PathValue("id") {
				json.NewEncoder(w).Encode(tab)
				return
			}
		}
		http.NotFound(w, r)
	})
	mux.HandleFunc("PUT /comandas/{id}", func(w http.ResponseWriter, r *http.Request) {
		var req client.TabUpdate
		json.NewDecoder(r.Body).Decode(&req)
		for i := range backend.tabs {
			if backend.tabs[i].ID == r.PathValue("id") {
				if req.Status != nil {
					backend.tabs[i].Status = *req.Status
				}
				json.NewEncoder(w).Encode(backend.tabs[i])
				return
			}
		}
		http.NotFound(w, r)
	})
	mux.HandleFunc("POST /comandas/dono/{user}/items", func(w http.ResponseWriter, r *http.Request) {
		var item client.NewTabItem
		json.NewDecoder(r.Body).Decode(&item)
		user := r.PathValue("user")
		for i := range backend.tabs {
			if backend.tabs[i].OwnerID == user && backend.tabs[i].Status == models.TabOpen {
				backend.tabs[i].Items = append(backend.tabs[i].Items, models.TabItem{
					Product:  models.Product{ID: item.ProductID, Value: item.Value},
					Quantity: item.Quantity,
					Value:    item.Value,
					Notes:    item.Notes,
					Status:   item.Status,
				})
				json.NewEncoder(w).Encode(backend.tabs[i])
				return
			}
		}
		http.NotFound(w, r)
	})

	backend.srv = httptest.NewServer(mux)
	t.Cleanup(backend.srv.Close)
	return backend
}

func (b *fakeTabBackend) service(t *testing.T) *TabService {
	t.Helper()
	api := client.New(b.srv.URL, "")
	return NewTabService(api, NewSessionStore(setupSessionDB(t)))
}

func TestComputeTotalsEmpty(t *testing.T) {
	totals := ComputeTotals(nil)
	assert.Equal(t, 0.0, totals.Subtotal)
	assert.Equal(t, 0.0, totals.Service)
	assert.Equal(t, 0.0, totals.Total)
}

func TestComputeTotals(t *testing.T) {
	items := []models.TabItem{
		{Value: 8.00, Quantity: 2},
		{Value: 4.00, Quantity: 1},
	}
	totals := ComputeTotals(items)
	assert.InDelta(t, 20.00, totals.Subtotal, 0.0001)
	assert.InDelta(t, 2.00, totals.Service, 0.0001)
	assert.InDelta(t, 22.00, totals.Total, 0.0001)
}

func TestEnsureOpenTabReturnsExisting(t *testing.T) {
	backend := newFakeTabBackend(t, []models.Tab{
		{ID: "tab-closed", Status: models.TabClosed, OwnerID: "user-1"},
		{ID: "tab-open", Status: models.TabOpen, OwnerID: "user-1"},
	})
	svc := backend.service(t)

	tab, err := svc.EnsureOpenTab(context.Background(), "user-1", 4)
	assert.NoError(t, err)
	assert.Equal(t, "tab-open", tab.ID)
	assert.Equal(t, 0, backend.created)
}

func TestEnsureOpenTabCreatesWhenMissing(t *testing.T) {
	backend := newFakeTabBackend(t, nil)
	svc := backend.service(t)

	tab, err := svc.EnsureOpenTab(context.Background(), "user-2", 7)
	assert.NoError(t, err)
	assert.Equal(t, models.TabOpen, tab.Status)
	assert.Equal(t, 7, tab.TableNumber)
	assert.Equal(t, 0.0, tab.Total)
	assert.Nil(t, tab.PaymentMethod)
}

func TestEnsureOpenTabIdempotent(t *testing.T) {
	backend := newFakeTabBackend(t, nil)
	svc := backend.service(t)

	first, err := svc.EnsureOpenTab(context.Background(), "user-3", 2)
	assert.NoError(t, err)
	second, err := svc.EnsureOpenTab(context.Background(), "user-3", 2)
	assert.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 1, backend.created)
}

func TestEnsureOpenTabNeedsTableHint(t *testing.T) {
	backend := newFakeTabBackend(t, nil)
	svc := backend.service(t)

	_, err := svc.EnsureOpenTab(context.Background(), "user-9", 0)
	assert.ErrorIs(t, err, ErrNoTableHint)
	assert.Equal(t, 0, backend.created)
}

func TestAddItemWithoutOpenTab(t *testing.T) {
	backend := newFakeTabBackend(t, []models.Tab{
		{ID: "tab-closed", Status: models.TabClosed, OwnerID: "user-4"},
	})
	svc := backend.service(t)

	product := &models.Product{ID: "prod-1", Value: 8.0}
	_, err := svc.AddItem(context.Background(), "user-4", product, 1, "")
	assert.ErrorIs(t, err, ErrNoOpenTab)
}

func TestAddItemAppendsPending(t *testing.T) {
	backend := newFakeTabBackend(t, []models.Tab{
		{ID: "tab-open", Status: models.TabOpen, OwnerID: "user-5", Items: []models.TabItem{}},
	})
	svc := backend.service(t)

	product := &models.Product{ID: "prod-1", Value: 8.0}
	tab, err := svc.AddItem(context.Background(), "user-5", product, 2, "sem gelo")
	assert.NoError(t, err)
	assert.Len(t, tab.Items, 1)
	assert.Equal(t, models.ItemPendente, tab.Items[0].Status)
	assert.Equal(t, 2, tab.Items[0].Quantity)
	assert.Equal(t, "sem gelo", tab.Items[0].Notes)
}

func TestCloseTabClearsClosingRequest(t *testing.T) {
	backend := newFakeTabBackend(t, []models.Tab{
		{ID: "tab-open", Status: models.TabOpen, OwnerID: "user-6"},
	})
	svc := backend.service(t)

	request, err := svc.RequestClose(&backend.tabs[0], "user-6")
	assert.NoError(t, err)
	assert.Equal(t, "tab-open", request.TabID)

	closing, err := svc.Sessions.IsClosing("tab-open")
	assert.NoError(t, err)
	assert.True(t, closing)

	closed, err := svc.CloseTab(context.Background(), "tab-open")
	assert.NoError(t, err)
	assert.Equal(t, models.TabClosed, closed.Status)

	closing, err = svc.Sessions.IsClosing("tab-open")
	assert.NoError(t, err)
	assert.False(t, closing)
}

func TestCloseTabIsTerminal(t *testing.T) {
	backend := newFakeTabBackend(t, []models.Tab{
		{ID: "tab-done", Status: models.TabClosed, OwnerID: "user-7"},
	})
	svc := backend.service(t)

	_, err := svc.CloseTab(context.Background(), "tab-done")
	assert.ErrorIs(t, err, ErrTabNotOpen)
}

func TestRequestCloseRejectsCancelledTab(t *testing.T) {
	backend := newFakeTabBackend(t, nil)
	svc := backend.service(t)

	tab := &models.Tab{ID: "tab-x", Status: models.TabCancelled}
	_, err := svc.RequestClose(tab, "user-8")
	assert.ErrorIs(t, err, ErrTabNotOpen)
}
