package services

import (
	"context"
	"sync"
	"time"

	"github.com/Adilzhan2201/Friendship_Manager/internal/models"
	"github.com/Adilzhan2201/Friendship_Manager/internal/repository"
)

// fakeGraph is an in-memory stand-in for the Neo4j-backed repositories. Each
// method holds the mutex for its whole duration, mirroring the transactional
// guards of the real conditional Cypher writes.
type fakeGraph struct {
	mu       sync.Mutex
	users    map[string]models.User
	requests map[string]*models.FriendRequest
	friends  map[string]map[string]bool // directed edges

	createCalls int
}

func newFakeGraph(users ...models.User) *fakeGraph {
	g := &fakeGraph{
		users:    make(map[string]models.User),
		requests: make(map[string]*models.FriendRequest),
		friends:  make(map[string]map[string]bool),
	}
	for _, u := range users {
		g.users[u.ID] = u
	}
	return g
}

func (g *fakeGraph) addEdge(from, to string) {
	if g.friends[from] == nil {
		g.friends[from] = make(map[string]bool)
	}
	g.friends[from][to] = true
}

func (g *fakeGraph) eitherDirection(a, b string) bool {
	return g.friends[a][b] || g.friends[b][a]
}

func (g *fakeGraph) pendingBetween(a, b string) bool {
	for _, req := range g.requests {
		if req.Status != models.StatusPending {
			continue
		}
		if (req.SenderID == a && req.ReceiverID == b) || (req.SenderID == b && req.ReceiverID == a) {
			return true
		}
	}
	return false
}

func (g *fakeGraph) CreateRequest(_ context.Context, req *models.FriendRequest) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.createCalls++

	if _, ok := g.users[req.SenderID]; !ok {
		return false, nil
	}
	if _, ok := g.users[req.ReceiverID]; !ok {
		return false, nil
	}
	if g.eitherDirection(req.SenderID, req.ReceiverID) {
		return false, nil
	}
	if g.pendingBetween(req.SenderID, req.ReceiverID) {
		return false, nil
	}

	stored := *req
	g.requests[req.ID] = &stored
	return true, nil
}

func (g *fakeGraph) GetRequestByID(_ context.Context, requestID string) (*models.FriendRequest, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	req, ok := g.requests[requestID]
	if !ok {
		return nil, repository.ErrNoMatch
	}
	out := *req
	return &out, nil
}

func (g *fakeGraph) ResolveRequest(_ context.Context, requestID, receiverID string, decision models.FriendRequestStatus, at time.Time) (*models.FriendRequest, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	req, ok := g.requests[requestID]
	if !ok || req.ReceiverID != receiverID || req.Status != models.StatusPending {
		return nil, repository.ErrNoMatch
	}

	req.Status = decision
	req.UpdatedAt = &at
	if decision == models.StatusAccepted {
		g.addEdge(req.SenderID, req.ReceiverID)
		g.addEdge(req.ReceiverID, req.SenderID)
	}
	out := *req
	return &out, nil
}

func (g *fakeGraph) CancelRequest(_ context.Context, requestID, senderID string) (int64, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	req, ok := g.requests[requestID]
	if !ok || req.SenderID != senderID || req.Status != models.StatusPending {
		return 0, nil
	}
	delete(g.requests, requestID)
	return 1, nil
}

func (g *fakeGraph) RemoveFriendship(_ context.Context, userID, friendID string) (int64, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	var deleted int64
	if g.friends[userID][friendID] {
		delete(g.friends[userID], friendID)
		deleted++
	}
	if g.friends[friendID][userID] {
		delete(g.friends[friendID], userID)
		deleted++
	}
	return deleted, nil
}

func (g *fakeGraph) AreFriends(_ context.Context, userID, otherID string) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.eitherDirection(userID, otherID), nil
}

func (g *fakeGraph) HasPendingBetween(_ context.Context, userID, otherID string) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.pendingBetween(userID, otherID), nil
}

func (g *fakeGraph) ListFriends(_ context.Context, userID string) ([]models.Friend, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	friends := make([]models.Friend, 0)
	for id := range g.friends[userID] {
		friends = append(friends, models.Friend{ID: id, Email: g.users[id].Email})
	}
	return friends, nil
}

func (g *fakeGraph) ListIncoming(_ context.Context, receiverID string, status models.FriendRequestStatus) ([]models.IncomingRequest, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	out := make([]models.IncomingRequest, 0)
	for _, req := range g.requests {
		if req.ReceiverID != receiverID || req.Status != status {
			continue
		}
		out = append(out, models.IncomingRequest{
			ID:          req.ID,
			Status:      req.Status,
			CreatedAt:   req.CreatedAt,
			SenderID:    req.SenderID,
			SenderEmail: g.users[req.SenderID].Email,
		})
	}
	return out, nil
}

func (g *fakeGraph) ListOutgoing(_ context.Context, senderID string, status models.FriendRequestStatus) ([]models.OutgoingRequest, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	out := make([]models.OutgoingRequest, 0)
	for _, req := range g.requests {
		if req.SenderID != senderID {
			continue
		}
		if status != "" && req.Status != status {
			continue
		}
		out = append(out, models.OutgoingRequest{
			ID:            req.ID,
			Status:        req.Status,
			CreatedAt:     req.CreatedAt,
			ReceiverID:    req.ReceiverID,
			ReceiverEmail: g.users[req.ReceiverID].Email,
		})
	}
	return out, nil
}

func (g *fakeGraph) UsersExist(_ context.Context, ids ...string) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	for _, id := range ids {
		if _, ok := g.users[id]; !ok {
			return false, nil
		}
	}
	return true, nil
}

func (g *fakeGraph) GetUserByID(_ context.Context, id string) (*models.User, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	u, ok := g.users[id]
	if !ok {
		return nil, repository.ErrNoMatch
	}
	return &u, nil
}

// recordingNotifier captures transition events and can simulate a failing
// collaborator.
type recordingNotifier struct {
	mu       sync.Mutex
	received []string
	accepted []string
	fail     error
}

func (n *recordingNotifier) FriendRequestReceived(_ context.Context, req *models.FriendRequest) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.received = append(n.received, req.ID)
	return n.fail
}

func (n *recordingNotifier) FriendRequestAccepted(_ context.Context, req *models.FriendRequest) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.accepted = append(n.accepted, req.ID)
	return n.fail
}
