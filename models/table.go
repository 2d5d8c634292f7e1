package models

import "time"

type TableStatus int

const (
	TableAvailable TableStatus = 0
	TableOccupied  TableStatus = 1
	TableReserved  TableStatus = 2
)

func (s TableStatus) Label() string {
	switch s {
	case TableAvailable:
		return "Disponível"
	case TableOccupied:
		return "Ocupada"
	case TableReserved:
		return "Reservada"
	}
	return "Desconhecido"
}

type Table struct {
	ID        string      `json:"_id"`
	Number    int         `json:"numero"`
	Status    TableStatus `json:"status"`
	Capacity  int         `json:"capacidade"`
	Active    bool        `json:"ativo"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}
