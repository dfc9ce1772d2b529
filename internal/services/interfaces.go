package services

import (
	"context"
	"time"

	"github.com/Adilzhan2201/Friendship_Manager/internal/models"
)

// FriendGraph is the relationship repository consumed by FriendService.
// Conditional writes report misses via repository.ErrNoMatch or a zero
// count; the service turns those into business errors.
type FriendGraph interface {
	CreateRequest(ctx context.Context, req *models.FriendRequest) (bool, error)
	GetRequestByID(ctx context.Context, requestID string) (*models.FriendRequest, error)
	ResolveRequest(ctx context.Context, requestID, receiverID string, decision models.FriendRequestStatus, at time.Time) (*models.FriendRequest, error)
	CancelRequest(ctx context.Context, requestID, senderID string) (int64, error)
	RemoveFriendship(ctx context.Context, userID, friendID string) (int64, error)
	AreFriends(ctx context.Context, userID, otherID string) (bool, error)
	HasPendingBetween(ctx context.Context, userID, otherID string) (bool, error)
	ListFriends(ctx context.Context, userID string) ([]models.Friend, error)
	ListIncoming(ctx context.Context, receiverID string, status models.FriendRequestStatus) ([]models.IncomingRequest, error)
	ListOutgoing(ctx context.Context, senderID string, status models.FriendRequestStatus) ([]models.OutgoingRequest, error)
}

// UserGraph exposes the user-node lookups the service needs.
type UserGraph interface {
	UsersExist(ctx context.Context, ids ...string) (bool, error)
}

// Notifier is informed of relationship transitions after they commit.
// Notification failure never rolls a transition back; the service only logs
// it.
type Notifier interface {
	FriendRequestReceived(ctx context.Context, req *models.FriendRequest) error
	FriendRequestAccepted(ctx context.Context, req *models.FriendRequest) error
}
