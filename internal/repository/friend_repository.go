package repository

import (
	"context"
	"time"

	"github.com/Adilzhan2201/Friendship_Manager/internal/database"
	"github.com/Adilzhan2201/Friendship_Manager/internal/models"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j/db"
)

// FriendRepository translates friend-relationship operations into graph
// queries and decodes the result rows. It carries no business rules; the
// conditional guards in the Cypher are the transaction-level half of the
// state machine, the service layer owns the rest.
type FriendRepository struct {
	graph *database.Graph
}

// NewFriendRepository creates a new FriendRepository.
func NewFriendRepository(graph *database.Graph) *FriendRepository {
	return &FriendRepository{graph: graph}
}

// CreateRequest conditionally creates a pending REQUESTED_FRIENDSHIP edge.
// It reports false when one of the query guards (node existence, no existing
// friendship, no pending request between the pair) rejected the write.
func (r *FriendRepository) CreateRequest(ctx context.Context, req *models.FriendRequest) (bool, error) {
	out, err := r.graph.ExecuteWrite(ctx, func(ctx context.Context, tx neo4j.ExplicitTransaction) (any, error) {
		rec, err := runSingle(ctx, tx, opCreateRequest, map[string]any{
			"senderId":   req.SenderID,
			"receiverId": req.ReceiverID,
			"id":         req.ID,
			"now":        req.CreatedAt,
		})
		if err != nil {
			return nil, err
		}
		return rec != nil, nil
	})
	if err != nil {
		return false, infraErr("create request", err)
	}
	return out.(bool), nil
}

// GetRequestByID fetches a request edge regardless of its status. Returns
// ErrNoMatch when no edge carries the id.
func (r *FriendRepository) GetRequestByID(ctx context.Context, requestID string) (*models.FriendRequest, error) {
	out, err := r.graph.ExecuteRead(ctx, func(ctx context.Context, tx neo4j.ExplicitTransaction) (any, error) {
		return runSingle(ctx, tx, opFetchRequest, map[string]any{"requestId": requestID})
	})
	if err != nil {
		return nil, infraErr("fetch request", err)
	}
	rec := out.(*db.Record)
	if rec == nil {
		return nil, ErrNoMatch
	}
	return decodeRequest(rec), nil
}

// ResolveRequest conditionally transitions a pending request addressed to
// receiverID into the given terminal decision. Accepting also creates both
// FRIENDS edges inside the same transaction. Returns ErrNoMatch when no
// pending edge matched, leaving diagnosis to the caller.
func (r *FriendRepository) ResolveRequest(ctx context.Context, requestID, receiverID string, decision models.FriendRequestStatus, at time.Time) (*models.FriendRequest, error) {
	op := opResolveRejected
	if decision == models.StatusAccepted {
		op = opResolveAccepted
	}

	out, err := r.graph.ExecuteWrite(ctx, func(ctx context.Context, tx neo4j.ExplicitTransaction) (any, error) {
		return runSingle(ctx, tx, op, map[string]any{
			"requestId":  requestID,
			"receiverId": receiverID,
			"now":        at,
		})
	})
	if err != nil {
		return nil, infraErr("resolve request", err)
	}
	rec := out.(*db.Record)
	if rec == nil {
		return nil, ErrNoMatch
	}
	return decodeRequest(rec), nil
}

// CancelRequest deletes a pending request owned by senderID and reports how
// many edges were removed (0 or 1).
func (r *FriendRepository) CancelRequest(ctx context.Context, requestID, senderID string) (int64, error) {
	out, err := r.graph.ExecuteWrite(ctx, func(ctx context.Context, tx neo4j.ExplicitTransaction) (any, error) {
		rec, err := runSingle(ctx, tx, opCancelRequest, map[string]any{
			"requestId": requestID,
			"senderId":  senderID,
		})
		if err != nil {
			return nil, err
		}
		return recordInt(rec, "deleted"), nil
	})
	if err != nil {
		return 0, infraErr("cancel request", err)
	}
	return out.(int64), nil
}

// RemoveFriendship deletes the FRIENDS edges between the pair in both
// directions and reports the number of edges deleted (0 or 2).
func (r *FriendRepository) RemoveFriendship(ctx context.Context, userID, friendID string) (int64, error) {
	out, err := r.graph.ExecuteWrite(ctx, func(ctx context.Context, tx neo4j.ExplicitTransaction) (any, error) {
		rec, err := runSingle(ctx, tx, opRemoveFriendship, map[string]any{
			"userId":   userID,
			"friendId": friendID,
		})
		if err != nil {
			return nil, err
		}
		return recordInt(rec, "deleted"), nil
	})
	if err != nil {
		return 0, infraErr("remove friendship", err)
	}
	return out.(int64), nil
}

// AreFriends reports whether a FRIENDS edge exists between the pair in
// either direction.
func (r *FriendRepository) AreFriends(ctx context.Context, userID, otherID string) (bool, error) {
	out, err := r.graph.ExecuteRead(ctx, func(ctx context.Context, tx neo4j.ExplicitTransaction) (any, error) {
		rec, err := runSingle(ctx, tx, opAreFriends, map[string]any{
			"userId":  userID,
			"otherId": otherID,
		})
		if err != nil {
			return nil, err
		}
		return recordBool(rec, "friends"), nil
	})
	if err != nil {
		return false, infraErr("check friendship", err)
	}
	return out.(bool), nil
}

// HasPendingBetween reports whether a pending request exists between the
// pair, in either direction.
func (r *FriendRepository) HasPendingBetween(ctx context.Context, userID, otherID string) (bool, error) {
	out, err := r.graph.ExecuteRead(ctx, func(ctx context.Context, tx neo4j.ExplicitTransaction) (any, error) {
		rec, err := runSingle(ctx, tx, opPendingBetween, map[string]any{
			"userId":  userID,
			"otherId": otherID,
		})
		if err != nil {
			return nil, err
		}
		return recordBool(rec, "pending"), nil
	})
	if err != nil {
		return false, infraErr("check pending request", err)
	}
	return out.(bool), nil
}

// ListFriends returns the friend list of a user.
func (r *FriendRepository) ListFriends(ctx context.Context, userID string) ([]models.Friend, error) {
	out, err := r.graph.ExecuteRead(ctx, func(ctx context.Context, tx neo4j.ExplicitTransaction) (any, error) {
		recs, err := runAll(ctx, tx, opListFriends, map[string]any{"userId": userID})
		if err != nil {
			return nil, err
		}
		friends := make([]models.Friend, 0, len(recs))
		for _, rec := range recs {
			friends = append(friends, models.Friend{
				ID:    recordString(rec, "id"),
				Email: recordString(rec, "email"),
			})
		}
		return friends, nil
	})
	if err != nil {
		return nil, infraErr("list friends", err)
	}
	return out.([]models.Friend), nil
}

// ListIncoming returns requests addressed to receiverID with the given
// status.
func (r *FriendRepository) ListIncoming(ctx context.Context, receiverID string, status models.FriendRequestStatus) ([]models.IncomingRequest, error) {
	out, err := r.graph.ExecuteRead(ctx, func(ctx context.Context, tx neo4j.ExplicitTransaction) (any, error) {
		recs, err := runAll(ctx, tx, opListIncoming, map[string]any{
			"userId": receiverID,
			"status": string(status),
		})
		if err != nil {
			return nil, err
		}
		requests := make([]models.IncomingRequest, 0, len(recs))
		for _, rec := range recs {
			requests = append(requests, models.IncomingRequest{
				ID:          recordString(rec, "id"),
				Status:      models.FriendRequestStatus(recordString(rec, "status")),
				CreatedAt:   recordTime(rec, "createdAt"),
				SenderID:    recordString(rec, "senderId"),
				SenderEmail: recordString(rec, "senderEmail"),
			})
		}
		return requests, nil
	})
	if err != nil {
		return nil, infraErr("list incoming requests", err)
	}
	return out.([]models.IncomingRequest), nil
}

// ListOutgoing returns requests sent by senderID. An empty status lists all
// of them.
func (r *FriendRepository) ListOutgoing(ctx context.Context, senderID string, status models.FriendRequestStatus) ([]models.OutgoingRequest, error) {
	out, err := r.graph.ExecuteRead(ctx, func(ctx context.Context, tx neo4j.ExplicitTransaction) (any, error) {
		recs, err := runAll(ctx, tx, opListOutgoing, map[string]any{
			"userId": senderID,
			"status": string(status),
		})
		if err != nil {
			return nil, err
		}
		requests := make([]models.OutgoingRequest, 0, len(recs))
		for _, rec := range recs {
			requests = append(requests, models.OutgoingRequest{
				ID:            recordString(rec, "id"),
				Status:        models.FriendRequestStatus(recordString(rec, "status")),
				CreatedAt:     recordTime(rec, "createdAt"),
				ReceiverID:    recordString(rec, "receiverId"),
				ReceiverEmail: recordString(rec, "receiverEmail"),
			})
		}
		return requests, nil
	})
	if err != nil {
		return nil, infraErr("list outgoing requests", err)
	}
	return out.([]models.OutgoingRequest), nil
}

func decodeRequest(rec *db.Record) *models.FriendRequest {
	return &models.FriendRequest{
		ID:         recordString(rec, "id"),
		SenderID:   recordString(rec, "senderId"),
		ReceiverID: recordString(rec, "receiverId"),
		Status:     models.FriendRequestStatus(recordString(rec, "status")),
		CreatedAt:  recordTime(rec, "createdAt"),
		UpdatedAt:  recordTimePtr(rec, "updatedAt"),
	}
}

// runSingle executes a registered statement and returns its first record, or
// nil when the query matched nothing.
func runSingle(ctx context.Context, tx neo4j.ExplicitTransaction, op string, params map[string]any) (*db.Record, error) {
	result, err := tx.Run(ctx, stmt(op), params)
	if err != nil {
		return nil, err
	}
	if !result.Next(ctx) {
		return nil, result.Err()
	}
	return result.Record(), nil
}

// runAll executes a registered statement and collects every record.
func runAll(ctx context.Context, tx neo4j.ExplicitTransaction, op string, params map[string]any) ([]*db.Record, error) {
	result, err := tx.Run(ctx, stmt(op), params)
	if err != nil {
		return nil, err
	}
	return result.Collect(ctx)
}
