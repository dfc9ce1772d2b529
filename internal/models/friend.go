package models

import (
	"fmt"
	"time"
)

// FriendRequestStatus is the lifecycle state of a friend request edge.
type FriendRequestStatus string

const (
	StatusPending   FriendRequestStatus = "pending"
	StatusAccepted  FriendRequestStatus = "accepted"
	StatusRejected  FriendRequestStatus = "rejected"
	StatusCancelled FriendRequestStatus = "cancelled"
)

// Terminal reports whether no further transitions are allowed from s.
func (s FriendRequestStatus) Terminal() bool {
	return s == StatusAccepted || s == StatusRejected || s == StatusCancelled
}

// ParseDecision validates a resolution decision supplied by a caller.
// Only "accepted" and "rejected" are valid decisions; cancellation has its
// own endpoint.
func ParseDecision(raw string) (FriendRequestStatus, error) {
	switch FriendRequestStatus(raw) {
	case StatusAccepted:
		return StatusAccepted, nil
	case StatusRejected:
		return StatusRejected, nil
	default:
		return "", fmt.Errorf("invalid decision %q, expected %q or %q", raw, StatusAccepted, StatusRejected)
	}
}

// FriendRequest is a directed REQUESTED_FRIENDSHIP edge between two user
// nodes. ID and CreatedAt are immutable; UpdatedAt is set on the transition
// away from pending.
type FriendRequest struct {
	ID         string              `json:"id"`
	SenderID   string              `json:"sender_id"`
	ReceiverID string              `json:"receiver_id"`
	Status     FriendRequestStatus `json:"status"`
	CreatedAt  time.Time           `json:"created_at"`
	UpdatedAt  *time.Time          `json:"updated_at,omitempty"`
}

// IncomingRequest is a request listed from the receiver's side.
type IncomingRequest struct {
	ID          string              `json:"id"`
	Status      FriendRequestStatus `json:"status"`
	CreatedAt   time.Time           `json:"created_at"`
	SenderID    string              `json:"sender_id"`
	SenderEmail string              `json:"sender_email"`
}

// OutgoingRequest is a request listed from the sender's side.
type OutgoingRequest struct {
	ID            string              `json:"id"`
	Status        FriendRequestStatus `json:"status"`
	CreatedAt     time.Time           `json:"created_at"`
	ReceiverID    string              `json:"receiver_id"`
	ReceiverEmail string              `json:"receiver_email"`
}

// Friend is one entry of a user's friend list.
type Friend struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}
