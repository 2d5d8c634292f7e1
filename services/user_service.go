package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/easybar-app/gateway/client"
	"github.com/easybar-app/gateway/models"
	"github.com/easybar-app/gateway/utils"
)

// Principal is the authenticated identity extracted from the session token.
type Principal struct {
	ID    string
	Name  string
	Email string
	Phone string
}

var ErrForbidden = errors.New("operation not allowed for this role")

type UserService struct {
	API *client.Client
}

func NewUserService(api *client.Client) *UserService {
	return &UserService{API: api}
}

// ResolveUser returns the backend record for an authenticated principal,
// creating it on first visit. Creation happens before any tab lookup, so a
// brand-new visitor can open a tab in the same request.
func (s *UserService) ResolveUser(ctx context.Context, p Principal) (*models.User, error) {
	user, err := s.API.GetUser(ctx, p.ID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, client.ErrNotFound) {
		return nil, fmt.Errorf("lookup user %s: %w", p.ID, err)
	}

	created, err := s.API.CreateUser(ctx, client.NewUser{
		ExternalID: p.ID,
		Name:       p.Name,
		Email:      p.Email,
		Phone:      p.Phone,
		Role:       models.RoleCliente,
		Active:     true,
	})
	if err != nil {
		return nil, fmt.Errorf("create user %s: %w", p.ID, err)
	}

	utils.InfoLogger.Printf("Created backend user for %s (%s)", p.ID, p.Email)
	return created, nil
}

func (s *UserService) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.API.ListUsers(ctx)
}

// ChangeRole mutates a user's role. Admin only.
func (s *UserService) ChangeRole(ctx context.Context, actor *models.User, targetID, role string) error {
	if actor.Role != models.RoleAdmin {
		return ErrForbidden
	}
	if !models.ValidRole(role) {
		return fmt.Errorf("unknown role %q", role)
	}
	if err := s.API.SetUserRole(ctx, targetID, role); err != nil {
		return err
	}
	utils.InfoLogger.Printf("Role of user %s set to %s by %s", targetID, role, actor.ExternalID)
	return nil
}

func (s *UserService) UpdateProfile(ctx context.Context, userID, name, phone string) (*models.User, error) {
	return s.API.UpdateUser(ctx, userID, client.UserUpdate{Name: name, Phone: phone})
}
