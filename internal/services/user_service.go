package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/Adilzhan2201/Friendship_Manager/internal/models"
	"github.com/Adilzhan2201/Friendship_Manager/internal/repository"
	"github.com/Adilzhan2201/Friendship_Manager/pkg/apperr"
)

// UserNodes is the user-node repository consumed by UserService.
type UserNodes interface {
	EnsureUser(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

// UserService mirrors externally-managed identities into graph user nodes.
type UserService struct {
	users UserNodes
}

// NewUserService creates a new UserService.
func NewUserService(users UserNodes) *UserService {
	return &UserService{users: users}
}

// EnsureUser idempotently provisions a user node.
func (s *UserService) EnsureUser(ctx context.Context, user *models.User) (*models.User, error) {
	if user.ID == "" {
		return nil, fmt.Errorf("user id is required: %w", apperr.ErrInvalidInput)
	}
	return s.users.EnsureUser(ctx, user)
}

// GetUser fetches a user node by id.
func (s *UserService) GetUser(ctx context.Context, id string) (*models.User, error) {
	if id == "" {
		return nil, fmt.Errorf("user id is required: %w", apperr.ErrInvalidInput)
	}

	user, err := s.users.GetUserByID(ctx, id)
	if errors.Is(err, repository.ErrNoMatch) {
		return nil, fmt.Errorf("user not found: %w", apperr.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}
