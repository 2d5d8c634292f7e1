package models

import "time"

type OrderStatus int

const (
	OrderPending       OrderStatus = 0
	OrderInPreparation OrderStatus = 1
	OrderReady         OrderStatus = 2
	OrderDelivered     OrderStatus = 3
)

func (s OrderStatus) Valid() bool {
	return s >= OrderPending && s <= OrderDelivered
}

func (s OrderStatus) Label() string {
	switch s {
	case OrderPending:
		return "Pendente"
	case OrderInPreparation:
		return "Em preparo"
	case OrderReady:
		return "Pronto"
	case OrderDelivered:
		return "Entregue"
	}
	return "Desconhecido"
}

// Order is a kitchen-facing record, fetched as its own collection rather
// than joined through the tab's line items.
type Order struct {
	ID        string      `json:"_id"`
	Status    OrderStatus `json:"status"`
	Value     float64     `json:"valor"`
	Quantity  int         `json:"quantidade"`
	Product   Product     `json:"produto"`
	TabID     string      `json:"comanda"`
	OwnerID   string      `json:"dono"`
	Notes     string      `json:"observacoes"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}
