package models

import "time"

type TabStatus int

const (
	TabClosed    TabStatus = 0
	TabOpen      TabStatus = 1
	TabCancelled TabStatus = 2
)

func (s TabStatus) Label() string {
	switch s {
	case TabClosed:
		return "Fechada"
	case TabOpen:
		return "Aberta"
	case TabCancelled:
		return "Cancelada"
	}
	return "Desconhecido"
}

// Line item statuses follow the kitchen flow.
const (
	ItemPendente   = "pendente"
	ItemPreparando = "preparando"
	ItemPronto     = "pronto"
	ItemEntregue   = "entregue"
)

// Payment methods accepted by the backend. A tab carries nil until the
// customer settles.
const (
	PaymentDinheiro      = "dinheiro"
	PaymentCartaoCredito = "cartao_credito"
	PaymentCartaoDebito  = "cartao_debito"
	PaymentPix           = "pix"
)

type TabItem struct {
	Product  Product `json:"produto"`
	Quantity int     `json:"quantidade"`
	Value    float64 `json:"valor"`
	Notes    string  `json:"observacoes"`
	Status   string  `json:"status"`
}

// Tab is the shape returned by the owner-scoped tab endpoints, where the
// table reference is just the table number.
type Tab struct {
	ID            string    `json:"_id"`
	Status        TabStatus `json:"status"`
	OwnerID       string    `json:"dono"`
	TableNumber   int       `json:"mesa"`
	Total         float64   `json:"valorTotal"`
	PaymentMethod *string   `json:"formaPagamento"`
	Active        bool      `json:"ativo"`
	Items         []TabItem `json:"produtos"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

type OwnerRef struct {
	ID   string `json:"_id"`
	Name string `json:"nome"`
}

type TableRef struct {
	ID     string `json:"_id"`
	Number int    `json:"numero"`
}

// TabSummary is the shape returned by the collection endpoint, where owner
// and table come populated as references.
type TabSummary struct {
	ID            string    `json:"_id"`
	Status        TabStatus `json:"status"`
	Owner         OwnerRef  `json:"dono"`
	Table         TableRef  `json:"mesa"`
	Total         float64   `json:"valorTotal"`
	PaymentMethod *string   `json:"formaPagamento"`
	Active        bool      `json:"ativo"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}
