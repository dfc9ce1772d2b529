package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Adilzhan2201/Friendship_Manager/internal/models"
	"github.com/Adilzhan2201/Friendship_Manager/internal/repository"
	"github.com/Adilzhan2201/Friendship_Manager/pkg/apperr"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// FriendService enforces the friend-request state machine: preconditions,
// transitions, and authorization of transitions. It is the only place where
// multi-step check-then-act sequences occur; the conditional writes in the
// repository close the races, and this service translates their misses into
// precise business errors.
type FriendService struct {
	friends  FriendGraph
	users    UserGraph
	notifier Notifier

	now   func() time.Time
	newID func() string
}

// NewFriendService creates a new FriendService. notifier may be nil when no
// notification collaborator is configured.
func NewFriendService(friends FriendGraph, users UserGraph, notifier Notifier) *FriendService {
	return &FriendService{
		friends:  friends,
		users:    users,
		notifier: notifier,
		now:      func() time.Time { return time.Now().UTC() },
		newID:    uuid.NewString,
	}
}

// SendFriendRequest creates a pending request from sender to receiver.
// A pending request in either direction between the pair blocks the send.
func (s *FriendService) SendFriendRequest(ctx context.Context, senderID, receiverID string) (*models.FriendRequest, error) {
	if senderID == "" || receiverID == "" {
		return nil, fmt.Errorf("sender and receiver ids are required: %w", apperr.ErrInvalidInput)
	}
	if senderID == receiverID {
		return nil, fmt.Errorf("cannot send a friend request to yourself: %w", apperr.ErrInvalidInput)
	}

	request := &models.FriendRequest{
		ID:         s.newID(),
		SenderID:   senderID,
		ReceiverID: receiverID,
		Status:     models.StatusPending,
		CreatedAt:  s.now(),
	}

	created, err := s.friends.CreateRequest(ctx, request)
	if err != nil {
		return nil, err
	}
	if !created {
		return nil, s.explainRejectedSend(ctx, senderID, receiverID)
	}

	if s.notifier != nil {
		if err := s.notifier.FriendRequestReceived(ctx, request); err != nil {
			logrus.WithError(err).Warnf("Failed to notify user %s of friend request", receiverID)
		}
	}

	return request, nil
}

// explainRejectedSend runs the diagnostic reads after the conditional create
// matched nothing, to report which precondition failed.
func (s *FriendService) explainRejectedSend(ctx context.Context, senderID, receiverID string) error {
	exist, err := s.users.UsersExist(ctx, senderID, receiverID)
	if err != nil {
		return err
	}
	if !exist {
		return fmt.Errorf("sender or receiver does not exist: %w", apperr.ErrNotFound)
	}

	friends, err := s.friends.AreFriends(ctx, senderID, receiverID)
	if err != nil {
		return err
	}
	if friends {
		return fmt.Errorf("already friends: %w", apperr.ErrConflict)
	}

	pending, err := s.friends.HasPendingBetween(ctx, senderID, receiverID)
	if err != nil {
		return err
	}
	if pending {
		return fmt.Errorf("friend request already exists: %w", apperr.ErrConflict)
	}
	// The blocking state was gone by the time we diagnosed; a concurrent
	// transition raced the create.
	return fmt.Errorf("friend request could not be created: %w", apperr.ErrConflict)
}

// RespondToRequest resolves a pending request with the given decision.
// Only the receiver may resolve; resolving an already-resolved request is a
// conflict, never a silent no-op.
func (s *FriendService) RespondToRequest(ctx context.Context, actorID, requestID, decision string) (*models.FriendRequest, error) {
	parsed, err := models.ParseDecision(decision)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, apperr.ErrInvalidInput)
	}
	if actorID == "" || requestID == "" {
		return nil, fmt.Errorf("actor and request ids are required: %w", apperr.ErrInvalidInput)
	}

	resolved, err := s.friends.ResolveRequest(ctx, requestID, actorID, parsed, s.now())
	if errors.Is(err, repository.ErrNoMatch) {
		return nil, s.explainFailedResolution(ctx, actorID, requestID)
	}
	if err != nil {
		return nil, err
	}

	if parsed == models.StatusAccepted && s.notifier != nil {
		if err := s.notifier.FriendRequestAccepted(ctx, resolved); err != nil {
			logrus.WithError(err).Warnf("Failed to notify user %s of accepted request", resolved.SenderID)
		}
	}

	return resolved, nil
}

func (s *FriendService) explainFailedResolution(ctx context.Context, actorID, requestID string) error {
	request, err := s.friends.GetRequestByID(ctx, requestID)
	if errors.Is(err, repository.ErrNoMatch) {
		return fmt.Errorf("friend request not found: %w", apperr.ErrNotFound)
	}
	if err != nil {
		return err
	}
	if request.ReceiverID != actorID {
		return fmt.Errorf("only the receiver may resolve a friend request: %w", apperr.ErrUnauthorized)
	}
	// The request was pending when the conditional write ran and is not
	// anymore: a concurrent resolution won.
	return fmt.Errorf("friend request already processed: %w", apperr.ErrConflict)
}

// CancelRequest deletes a pending request; only its sender may cancel.
func (s *FriendService) CancelRequest(ctx context.Context, actorID, requestID string) error {
	if actorID == "" || requestID == "" {
		return fmt.Errorf("actor and request ids are required: %w", apperr.ErrInvalidInput)
	}

	deleted, err := s.friends.CancelRequest(ctx, requestID, actorID)
	if err != nil {
		return err
	}
	if deleted > 0 {
		return nil
	}

	request, err := s.friends.GetRequestByID(ctx, requestID)
	if errors.Is(err, repository.ErrNoMatch) {
		return fmt.Errorf("friend request not found: %w", apperr.ErrNotFound)
	}
	if err != nil {
		return err
	}
	if request.SenderID != actorID {
		return fmt.Errorf("only the sender may cancel a friend request: %w", apperr.ErrUnauthorized)
	}
	return fmt.Errorf("friend request already processed: %w", apperr.ErrConflict)
}

// RemoveFriend deletes the friendship between the pair. The conditional
// delete reports how many directed edges were removed; 0 means the pair was
// not friends (or a concurrent removal won), and the expected count is 2.
func (s *FriendService) RemoveFriend(ctx context.Context, userID, friendID string) (int64, error) {
	if userID == "" || friendID == "" {
		return 0, fmt.Errorf("user and friend ids are required: %w", apperr.ErrInvalidInput)
	}
	if userID == friendID {
		return 0, fmt.Errorf("cannot remove yourself: %w", apperr.ErrInvalidInput)
	}

	deleted, err := s.friends.RemoveFriendship(ctx, userID, friendID)
	if err != nil {
		return 0, err
	}
	if deleted == 0 {
		return 0, fmt.Errorf("not friends: %w", apperr.ErrConflict)
	}
	if deleted != 2 {
		// Symmetry invariant breach: FRIENDS edges are always created in
		// pairs.
		logrus.Errorf("Friendship between %s and %s had %d directed edges", userID, friendID, deleted)
	}
	return deleted, nil
}

// GetFriends returns the user's friend list.
func (s *FriendService) GetFriends(ctx context.Context, userID string) ([]models.Friend, error) {
	if userID == "" {
		return nil, fmt.Errorf("user id is required: %w", apperr.ErrInvalidInput)
	}
	return s.friends.ListFriends(ctx, userID)
}

// GetIncomingRequests lists requests addressed to the user. An empty status
// defaults to pending.
func (s *FriendService) GetIncomingRequests(ctx context.Context, userID, status string) ([]models.IncomingRequest, error) {
	if userID == "" {
		return nil, fmt.Errorf("user id is required: %w", apperr.ErrInvalidInput)
	}

	filter := models.StatusPending
	if status != "" {
		filter = models.FriendRequestStatus(status)
		switch filter {
		case models.StatusPending, models.StatusAccepted, models.StatusRejected, models.StatusCancelled:
		default:
			return nil, fmt.Errorf("invalid status %q: %w", status, apperr.ErrInvalidInput)
		}
	}

	return s.friends.ListIncoming(ctx, userID, filter)
}

// GetOutgoingRequests lists every request the user has sent.
func (s *FriendService) GetOutgoingRequests(ctx context.Context, userID string) ([]models.OutgoingRequest, error) {
	if userID == "" {
		return nil, fmt.Errorf("user id is required: %w", apperr.ErrInvalidInput)
	}
	return s.friends.ListOutgoing(ctx, userID, "")
}
