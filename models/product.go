package models

type Product struct {
	ID          string  `json:"_id"`
	Name        string  `json:"nome"`
	Description string  `json:"descricao"`
	Category    string  `json:"categoria"`
	Value       float64 `json:"valor"`
	Active      bool    `json:"ativo"`
}
