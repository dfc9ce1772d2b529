package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Notification types emitted by friend relationship transitions.
const (
	NotificationFriendRequestReceived = "friend_request_received"
	NotificationFriendRequestAccepted = "friend_request_accepted"
)

// Notification is one append-only record in the per-recipient notification
// store. UserID is the graph user id of the recipient; TargetID optionally
// references the friend request that caused the record.
type Notification struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    string             `bson:"user_id" json:"user_id"`
	Type      string             `bson:"type" json:"type"`
	Title     string             `bson:"title" json:"title"`
	Message   string             `bson:"message" json:"message"`
	Read      bool               `bson:"read" json:"read"`
	TargetID  string             `bson:"target_id,omitempty" json:"target_id,omitempty"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	ExpiresAt time.Time          `bson:"expires_at" json:"expires_at"` // For auto-deletion after 7 days
}
