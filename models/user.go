package models

// Roles as stored on the backend user record. The identity provider knows
// nothing about roles; they are mutated only through the role endpoint.
const (
	RoleCliente = "cliente"
	RoleGarcom  = "garcom"
	RoleAdmin   = "admin"
)

type User struct {
	ID         string `json:"_id"`
	ExternalID string `json:"clerkId"`
	Name       string `json:"nome"`
	Email      string `json:"email"`
	Phone      string `json:"telefone"`
	Role       string `json:"tipo"`
	Active     bool   `json:"ativo"`
}

func (u User) IsStaff() bool {
	return u.Role == RoleGarcom || u.Role == RoleAdmin
}

func ValidRole(role string) bool {
	switch role {
	case RoleCliente, RoleGarcom, RoleAdmin:
		return true
	}
	return false
}
