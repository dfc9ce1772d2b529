package database

import (
	"context"
	"fmt"

	"github.com/Adilzhan2201/Friendship_Manager/internal/config"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/sirupsen/logrus"
)

// TxWork is a unit of work executed inside one graph transaction. A logical
// operation may run several queries through tx; they commit or roll back
// together.
type TxWork func(ctx context.Context, tx neo4j.ExplicitTransaction) (any, error)

// Graph owns the Neo4j driver and hands out one session per logical
// operation. It executes each operation in a single explicit transaction
// with no retry; retry policy belongs to callers.
type Graph struct {
	driver neo4j.DriverWithContext
}

// ConnectGraph creates the driver and verifies connectivity.
func ConnectGraph(ctx context.Context, cfg *config.Config) (*Graph, error) {
	driver, err := neo4j.NewDriverWithContext(cfg.Neo4jURI, neo4j.BasicAuth(cfg.Neo4jUser, cfg.Neo4jPassword, ""))
	if err != nil {
		return nil, fmt.Errorf("failed to create neo4j driver: %v", err)
	}

	if err := driver.VerifyConnectivity(ctx); err != nil {
		return nil, fmt.Errorf("failed to reach neo4j at %s: %v", cfg.Neo4jURI, err)
	}

	logrus.WithField("uri", cfg.Neo4jURI).Info("Connected to Neo4j")
	return &Graph{driver: driver}, nil
}

// Close releases the driver and its connection pool.
func (g *Graph) Close(ctx context.Context) error {
	return g.driver.Close(ctx)
}

// ExecuteWrite runs work inside one write transaction on a fresh session.
// The session is released on every exit path; the transaction rolls back
// unless work succeeds and the commit goes through.
func (g *Graph) ExecuteWrite(ctx context.Context, work TxWork) (any, error) {
	return g.execute(ctx, neo4j.AccessModeWrite, work)
}

// ExecuteRead runs work inside one read transaction on a fresh session.
func (g *Graph) ExecuteRead(ctx context.Context, work TxWork) (any, error) {
	return g.execute(ctx, neo4j.AccessModeRead, work)
}

func (g *Graph) execute(ctx context.Context, mode neo4j.AccessMode, work TxWork) (any, error) {
	session := g.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: mode})
	defer session.Close(ctx)

	tx, err := session.BeginTransaction(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %v", err)
	}
	// Close rolls the transaction back when Commit was never reached.
	defer tx.Close(ctx)

	out, err := work(ctx, tx)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %v", err)
	}
	return out, nil
}
