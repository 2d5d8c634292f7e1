package services

import (
	"context"
	"time"

	"github.com/easybar-app/gateway/client"
	"github.com/easybar-app/gateway/live"
	"github.com/easybar-app/gateway/models"
	"github.com/easybar-app/gateway/utils"
)

// OrderMonitor polls the backend order collection on a fixed interval and
// pushes status changes to connected views, the same cadence the browser
// views used to refetch on. Stop closes the ticker goroutine; nothing keeps
// running after teardown.
type OrderMonitor struct {
	API      *client.Client
	Hub      *live.Hub
	StopChan chan struct{}
	Interval time.Duration

	lastStatus map[string]models.OrderStatus
}

func NewOrderMonitor(api *client.Client, hub *live.Hub) *OrderMonitor {
	return &OrderMonitor{
		API:      api,
		Hub:      hub,
		StopChan: make(chan struct{}),
		Interval: 10 * time.Second,
	}
}

func (m *OrderMonitor) Start() {
	go func() {
		ticker := time.NewTicker(m.Interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				m.poll()
			case <-m.StopChan:
				return
			}
		}
	}()
}

func (m *OrderMonitor) Stop() {
	close(m.StopChan)
}

func (m *OrderMonitor) poll() {
	ctx, cancel := context.WithTimeout(context.Background(), m.Interval)
	defer cancel()

	orders, err := m.API.ListOrders(ctx)
	if err != nil {
		// One-shot fetch; the next tick tries again.
		utils.ErrorLogger.Printf("Order poll failed: %v", err)
		return
	}

	current := make(map[string]models.OrderStatus, len(orders))
	for _, order := range orders {
		current[order.ID] = order.Status
		previous, seen := m.lastStatus[order.ID]
		if m.lastStatus != nil && (!seen || previous != order.Status) {
			m.Hub.BroadcastOrderUpdate(order)
		}
	}
	m.lastStatus = current
}
