package services

import (
	"context"
	"testing"

	"github.com/Adilzhan2201/Friendship_Manager/internal/models"
	"github.com/Adilzhan2201/Friendship_Manager/internal/repository"
	"github.com/Adilzhan2201/Friendship_Manager/pkg/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUserNodes struct {
	nodes map[string]models.User
}

func (f *fakeUserNodes) EnsureUser(_ context.Context, user *models.User) (*models.User, error) {
	if existing, ok := f.nodes[user.ID]; ok {
		return &existing, nil
	}
	f.nodes[user.ID] = *user
	out := *user
	return &out, nil
}

func (f *fakeUserNodes) GetUserByID(_ context.Context, id string) (*models.User, error) {
	u, ok := f.nodes[id]
	if !ok {
		return nil, repository.ErrNoMatch
	}
	return &u, nil
}

func TestEnsureUserIsIdempotent(t *testing.T) {
	nodes := &fakeUserNodes{nodes: make(map[string]models.User)}
	svc := NewUserService(nodes)
	ctx := context.Background()

	first, err := svc.EnsureUser(ctx, &models.User{ID: "alice", Email: "alice@example.com"})
	require.NoError(t, err)

	second, err := svc.EnsureUser(ctx, &models.User{ID: "alice", Email: "changed@example.com"})
	require.NoError(t, err)
	assert.Equal(t, first.Email, second.Email, "ensure must not overwrite an existing node")
}

func TestEnsureUserRequiresID(t *testing.T) {
	svc := NewUserService(&fakeUserNodes{nodes: make(map[string]models.User)})

	_, err := svc.EnsureUser(context.Background(), &models.User{Email: "x@example.com"})
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)
}

func TestGetUserNotFound(t *testing.T) {
	svc := NewUserService(&fakeUserNodes{nodes: make(map[string]models.User)})

	_, err := svc.GetUser(context.Background(), "ghost")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}
