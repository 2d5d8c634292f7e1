package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/easybar-app/gateway/client"
	"github.com/easybar-app/gateway/models"
	"github.com/easybar-app/gateway/utils"
)

type OrderService struct {
	API *client.Client
}

func NewOrderService(api *client.Client) *OrderService {
	return &OrderService{API: api}
}

// ListOrders fetches every order and applies the role filter: clientes see
// only their own, staff see everything.
func (s *OrderService) ListOrders(ctx context.Context, role, userID string) ([]models.Order, error) {
	orders, err := s.API.ListOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	if role == models.RoleCliente {
		own := make([]models.Order, 0, len(orders))
		for _, order := range orders {
			if order.OwnerID == userID {
				own = append(own, order)
			}
		}
		return own, nil
	}
	return orders, nil
}

type OrderBuckets struct {
	Pending       []models.Order `json:"pending"`
	InPreparation []models.Order `json:"in_preparation"`
	Ready         []models.Order `json:"ready"`
	Delivered     []models.Order `json:"delivered"`
}

// GroupByStatus partitions orders into the four status buckets. Every input
// order lands in exactly one bucket; within a bucket newest first.
func GroupByStatus(orders []models.Order) OrderBuckets {
	buckets := OrderBuckets{
		Pending:       []models.Order{},
		InPreparation: []models.Order{},
		Ready:         []models.Order{},
		Delivered:     []models.Order{},
	}

	for _, order := range orders {
		switch order.Status {
		case models.OrderInPreparation:
			buckets.InPreparation = append(buckets.InPreparation, order)
		case models.OrderReady:
			buckets.Ready = append(buckets.Ready, order)
		case models.OrderDelivered:
			buckets.Delivered = append(buckets.Delivered, order)
		default:
			buckets.Pending = append(buckets.Pending, order)
		}
	}

	for _, bucket := range [][]models.Order{buckets.Pending, buckets.InPreparation, buckets.Ready, buckets.Delivered} {
		sort.SliceStable(bucket, func(i, j int) bool {
			return bucket[i].CreatedAt.After(bucket[j].CreatedAt)
		})
	}
	return buckets
}

// SetStatus advances an order. Staff only; transitions are permissive the
// way the status selector always was, but a backward move gets logged.
func (s *OrderService) SetStatus(ctx context.Context, actor *models.User, orderID string, status models.OrderStatus) error {
	if !actor.IsStaff() {
		return ErrForbidden
	}
	if !status.Valid() {
		return fmt.Errorf("unknown order status %d", status)
	}

	previous, known := s.currentStatus(ctx, orderID)
	if err := s.API.SetOrderStatus(ctx, orderID, status); err != nil {
		return fmt.Errorf("update order %s: %w", orderID, err)
	}

	if known && status < previous {
		utils.InfoLogger.Warnf("Order %s moved backwards: %s -> %s", orderID, previous.Label(), status.Label())
	} else {
		utils.InfoLogger.Printf("Order %s set to %s by %s", orderID, status.Label(), actor.ExternalID)
	}
	return nil
}

func (s *OrderService) currentStatus(ctx context.Context, orderID string) (models.OrderStatus, bool) {
	orders, err := s.API.ListOrders(ctx)
	if err != nil {
		return 0, false
	}
	for _, order := range orders {
		if order.ID == orderID {
			return order.Status, true
		}
	}
	return 0, false
}
