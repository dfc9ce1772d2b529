package services

import (
	"context"
	"fmt"

	"github.com/Adilzhan2201/Friendship_Manager/internal/models"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NotificationStore is the append-only record store behind the notification
// collaborator.
type NotificationStore interface {
	CreateNotification(ctx context.Context, notif *models.Notification) error
	GetUserNotifications(ctx context.Context, userID string) ([]models.Notification, error)
	MarkAsRead(ctx context.Context, id primitive.ObjectID) error
	DeleteNotification(ctx context.Context, id primitive.ObjectID) error
	DeleteExpiredNotifications(ctx context.Context) error
}

// UserDirectory resolves user nodes to their contact properties.
type UserDirectory interface {
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

// Mailer delivers an out-of-band copy of a notification. Delivery is
// best-effort everywhere it is used.
type Mailer interface {
	Send(to, subject, body string) error
}

// MailerFunc adapts a plain function to the Mailer interface.
type MailerFunc func(to, subject, body string) error

func (f MailerFunc) Send(to, subject, body string) error { return f(to, subject, body) }

// NotificationService records friend-relationship events for their
// recipients and optionally mirrors them to email.
type NotificationService struct {
	store  NotificationStore
	users  UserDirectory
	mailer Mailer
}

// NewNotificationService creates a new NotificationService. mailer may be
// nil when SMTP is not configured.
func NewNotificationService(store NotificationStore, users UserDirectory, mailer Mailer) *NotificationService {
	return &NotificationService{
		store:  store,
		users:  users,
		mailer: mailer,
	}
}

// FriendRequestReceived records a "friend request received" event for the
// request's receiver.
func (s *NotificationService) FriendRequestReceived(ctx context.Context, req *models.FriendRequest) error {
	sender, err := s.users.GetUserByID(ctx, req.SenderID)
	if err != nil {
		return fmt.Errorf("failed to resolve sender %s: %v", req.SenderID, err)
	}

	notif := &models.Notification{
		UserID:   req.ReceiverID,
		Type:     models.NotificationFriendRequestReceived,
		Title:    "New friend request",
		Message:  fmt.Sprintf("%s sent you a friend request.", sender.Email),
		TargetID: req.ID,
	}
	if err := s.store.CreateNotification(ctx, notif); err != nil {
		return err
	}

	s.sendEmail(ctx, req.ReceiverID, notif.Title, notif.Message)
	return nil
}

// FriendRequestAccepted records a "friend request accepted" event for the
// request's sender.
func (s *NotificationService) FriendRequestAccepted(ctx context.Context, req *models.FriendRequest) error {
	receiver, err := s.users.GetUserByID(ctx, req.ReceiverID)
	if err != nil {
		return fmt.Errorf("failed to resolve receiver %s: %v", req.ReceiverID, err)
	}

	notif := &models.Notification{
		UserID:   req.SenderID,
		Type:     models.NotificationFriendRequestAccepted,
		Title:    "Friend request accepted",
		Message:  fmt.Sprintf("%s accepted your friend request.", receiver.Email),
		TargetID: req.ID,
	}
	if err := s.store.CreateNotification(ctx, notif); err != nil {
		return err
	}

	s.sendEmail(ctx, req.SenderID, notif.Title, notif.Message)
	return nil
}

func (s *NotificationService) sendEmail(ctx context.Context, userID, subject, body string) {
	if s.mailer == nil {
		return
	}
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil || user.Email == "" {
		logrus.Warnf("Skipping email notification for user %s: no address", userID)
		return
	}
	if err := s.mailer.Send(user.Email, subject, body); err != nil {
		logrus.WithError(err).Warnf("Failed to email notification to user %s", userID)
	}
}

// GetUserNotifications returns all notifications for a user
func (s *NotificationService) GetUserNotifications(ctx context.Context, userID string) ([]models.Notification, error) {
	return s.store.GetUserNotifications(ctx, userID)
}

// MarkNotificationAsRead sets the "read" status of a notification to true
func (s *NotificationService) MarkNotificationAsRead(ctx context.Context, notifID primitive.ObjectID) error {
	return s.store.MarkAsRead(ctx, notifID)
}

// DeleteNotification deletes a specific notification
func (s *NotificationService) DeleteNotification(ctx context.Context, notifID primitive.ObjectID) error {
	return s.store.DeleteNotification(ctx, notifID)
}

// DeleteExpiredNotifications is called periodically by the scheduler.
func (s *NotificationService) DeleteExpiredNotifications(ctx context.Context) error {
	return s.store.DeleteExpiredNotifications(ctx)
}
