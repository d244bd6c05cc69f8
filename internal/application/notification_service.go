package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/artflow-api/internal/domain/entity"
	repo "github.com/oksasatya/artflow-api/internal/domain/repository"
)

type NotificationService struct {
	Notifications repo.NotificationRepository
	Posts         repo.PostRepository
	Chats         repo.ChatRepository
	Logger        *logrus.Logger
	Now           func() time.Time
}

func NewNotificationService(n repo.NotificationRepository, posts repo.PostRepository, chats repo.ChatRepository, logger *logrus.Logger) *NotificationService {
	return &NotificationService{Notifications: n, Posts: posts, Chats: chats, Logger: logger, Now: time.Now}
}

// UnseenCount is the badge count shown to a user.
type UnseenCount struct {
	Count         int `json:"count"`
	MessagesCount int `json:"messagesCount"`
}

// Create persists an unseen notification.
func (s *NotificationService) Create(ctx context.Context, receiverID, senderID, message, relatedPostID string) (*entity.Notification, error) {
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	n := &entity.Notification{
		ReceiverID:    receiverID,
		SenderID:      senderID,
		RelatedPostID: relatedPostID,
		Message:       message,
		Date:          now().UTC(),
	}
	if err := s.Notifications.Create(ctx, n); err != nil {
		return nil, fmt.Errorf("create notification: %w", err)
	}
	return n, nil
}

// Notify is the fire-and-forget form of Create used after social and feed
// writes. Failures are logged and counted, never returned.
func (s *NotificationService) Notify(ctx context.Context, receiverID, senderID, message, relatedPostID string) {
	if s == nil {
		return
	}
	if _, err := s.Create(ctx, receiverID, senderID, message, relatedPostID); err != nil {
		notifyFailures.Add(1)
		if s.Logger != nil {
			s.Logger.WithError(err).WithFields(logrus.Fields{
				"receiver_id": receiverID,
				"sender_id":   senderID,
			}).Warn("notification write failed")
		}
	}
}

// ListForUser marks everything seen, then returns the user's notifications
// newest first with related posts resolved.
func (s *NotificationService) ListForUser(ctx context.Context, userID string) ([]entity.Notification, error) {
	if err := s.Notifications.MarkAllSeen(ctx, userID); err != nil {
		return nil, fmt.Errorf("mark notifications seen: %w", err)
	}
	list, err := s.Notifications.ListByReceiver(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}

	var ids []string
	seen := map[string]bool{}
	for _, n := range list {
		if n.RelatedPostID != "" && !seen[n.RelatedPostID] {
			seen[n.RelatedPostID] = true
			ids = append(ids, n.RelatedPostID)
		}
	}
	if len(ids) == 0 {
		return list, nil
	}
	posts, err := s.Posts.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("resolve notification posts: %w", err)
	}
	byID := make(map[string]*entity.Post, len(posts))
	for i := range posts {
		byID[posts[i].ID] = &posts[i]
	}
	for i := range list {
		list[i].RelatedPost = byID[list[i].RelatedPostID]
	}
	return list, nil
}

func (s *NotificationService) CountUnseen(ctx context.Context, userID string) (UnseenCount, error) {
	n, err := s.Notifications.CountUnseen(ctx, userID)
	if err != nil {
		return UnseenCount{}, fmt.Errorf("count notifications: %w", err)
	}
	out := UnseenCount{Count: n}
	if s.Chats != nil {
		m, err := s.Chats.CountUnseenByUser(ctx, userID)
		if err != nil {
			return UnseenCount{}, fmt.Errorf("count chat messages: %w", err)
		}
		out.MessagesCount = m
	}
	return out, nil
}

// ClearSeen deletes only seen notifications of userID.
func (s *NotificationService) ClearSeen(ctx context.Context, userID string) (int64, error) {
	n, err := s.Notifications.DeleteSeen(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("clear notifications: %w", err)
	}
	return n, nil
}

// DeleteOne removes a notification of userID. Someone else's notification
// reads as not found.
func (s *NotificationService) DeleteOne(ctx context.Context, userID, id string) error {
	err := s.Notifications.Delete(ctx, id, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return ErrNotificationNotFound
	}
	if err != nil {
		return fmt.Errorf("delete notification: %w", err)
	}
	return nil
}
