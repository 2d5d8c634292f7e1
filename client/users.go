package client

import (
	"context"
	"net/http"

	"github.com/easybar-app/gateway/models"
)

type NewUser struct {
	ExternalID string `json:"clerkId"`
	Name       string `json:"nome"`
	Email      string `json:"email"`
	Phone      string `json:"telefone"`
	Role       string `json:"tipo"`
	Active     bool   `json:"ativo"`
}

type UserUpdate struct {
	Name  string `json:"nome"`
	Phone string `json:"telefone"`
}

// GetUser fetches the backend record keyed by the identity-provider ID.
// Returns ErrNotFound for users that have never visited.
func (c *Client) GetUser(ctx context.Context, userID string) (*models.User, error) {
	var user models.User
	if err := c.get(ctx, "/usuarios/"+userID, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := c.get(ctx, "/usuarios", &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (c *Client) CreateUser(ctx context.Context, req NewUser) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodPost, "/usuarios", req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) UpdateUser(ctx context.Context, userID string, req UserUpdate) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodPut, "/usuarios/"+userID, req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) SetUserRole(ctx context.Context, userID, role string) error {
	body := map[string]string{"tipo": role}
	return c.do(ctx, http.MethodPatch, "/usuarios/"+userID+"/tipo", body, nil)
}
