package repository

import (
	"context"
	"time"

	"github.com/Adilzhan2201/Friendship_Manager/internal/database"
	"github.com/Adilzhan2201/Friendship_Manager/internal/models"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j/db"
	"github.com/sirupsen/logrus"
)

// UserRepository handles graph operations on user nodes. Identity itself is
// owned by an external service; this repository only matches nodes and keeps
// an idempotent provisioning hook for them.
type UserRepository struct {
	graph *database.Graph
}

// NewUserRepository creates a new instance of UserRepository.
func NewUserRepository(graph *database.Graph) *UserRepository {
	return &UserRepository{graph: graph}
}

// EnsureUser merges a user node by id, creating it with the given properties
// when absent. Called when the identity service provisions an account.
func (r *UserRepository) EnsureUser(ctx context.Context, user *models.User) (*models.User, error) {
	out, err := r.graph.ExecuteWrite(ctx, func(ctx context.Context, tx neo4j.ExplicitTransaction) (any, error) {
		return runSingle(ctx, tx, opEnsureUser, map[string]any{
			"id":       user.ID,
			"email":    user.Email,
			"username": user.Username,
			"now":      time.Now().UTC(),
		})
	})
	if err != nil {
		return nil, infraErr("ensure user", err)
	}
	rec := out.(*db.Record)
	if rec == nil {
		return nil, ErrNoMatch
	}

	logrus.WithField("userID", user.ID).Info("User node ensured")
	return decodeUser(rec), nil
}

// GetUserByID fetches a user node. Returns ErrNoMatch when the node does not
// exist.
func (r *UserRepository) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	out, err := r.graph.ExecuteRead(ctx, func(ctx context.Context, tx neo4j.ExplicitTransaction) (any, error) {
		return runSingle(ctx, tx, opFetchUser, map[string]any{"id": id})
	})
	if err != nil {
		return nil, infraErr("fetch user", err)
	}
	rec := out.(*db.Record)
	if rec == nil {
		return nil, ErrNoMatch
	}
	return decodeUser(rec), nil
}

// UsersExist reports whether every one of the given ids matches a user node.
func (r *UserRepository) UsersExist(ctx context.Context, ids ...string) (bool, error) {
	distinct := make(map[string]struct{}, len(ids))
	unique := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, seen := distinct[id]; !seen {
			distinct[id] = struct{}{}
			unique = append(unique, id)
		}
	}

	out, err := r.graph.ExecuteRead(ctx, func(ctx context.Context, tx neo4j.ExplicitTransaction) (any, error) {
		rec, err := runSingle(ctx, tx, opUsersExist, map[string]any{"ids": unique})
		if err != nil {
			return nil, err
		}
		return recordInt(rec, "found") == int64(len(unique)), nil
	})
	if err != nil {
		return false, infraErr("check users", err)
	}
	return out.(bool), nil
}

func decodeUser(rec *db.Record) *models.User {
	return &models.User{
		ID:       recordString(rec, "id"),
		Email:    recordString(rec, "email"),
		Username: recordString(rec, "username"),
	}
}
