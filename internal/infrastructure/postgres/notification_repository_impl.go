package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/oksasatya/artflow-api/internal/domain/entity"
	"github.com/oksasatya/artflow-api/internal/domain/repository"
)

type NotificationRepository struct {
	db DB
}

func NewNotificationRepository(db DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Create(ctx context.Context, n *entity.Notification) error {
	var related *string
	if n.RelatedPostID != "" {
		related = &n.RelatedPostID
	}
	err := r.db.QueryRow(ctx, `
		INSERT INTO notifications (receiver_id, sender_id, related_post_id, message, seen, date)
		VALUES ($1, $2, $3, $4, FALSE, $5)
		RETURNING id::text
	`, n.ReceiverID, n.SenderID, related, n.Message, n.Date).Scan(&n.ID)
	if err != nil {
		return fmt.Errorf("create notification: %w", err)
	}
	n.Seen = false
	return nil
}

func (r *NotificationRepository) MarkAllSeen(ctx context.Context, receiverID string) error {
	if _, err := r.db.Exec(ctx, `
		UPDATE notifications SET seen = TRUE
		WHERE receiver_id = $1 AND seen = FALSE
	`, receiverID); err != nil {
		return fmt.Errorf("mark notifications seen: %w", err)
	}
	return nil
}

func (r *NotificationRepository) ListByReceiver(ctx context.Context, receiverID string) ([]entity.Notification, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id::text, receiver_id::text, sender_id::text, COALESCE(related_post_id::text, ''), message, seen, date
		FROM notifications
		WHERE receiver_id = $1
		ORDER BY date DESC
	`, receiverID)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (entity.Notification, error) {
		var n entity.Notification
		err := row.Scan(&n.ID, &n.ReceiverID, &n.SenderID, &n.RelatedPostID, &n.Message, &n.Seen, &n.Date)
		return n, err
	})
}

func (r *NotificationRepository) CountUnseen(ctx context.Context, receiverID string) (int, error) {
	var n int
	if err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM notifications WHERE receiver_id = $1 AND seen = FALSE
	`, receiverID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count notifications: %w", err)
	}
	return n, nil
}

func (r *NotificationRepository) DeleteSeen(ctx context.Context, receiverID string) (int64, error) {
	res, err := r.db.Exec(ctx, `DELETE FROM notifications WHERE receiver_id = $1 AND seen = TRUE`, receiverID)
	if err != nil {
		return 0, fmt.Errorf("clear notifications: %w", err)
	}
	return res.RowsAffected(), nil
}

func (r *NotificationRepository) Delete(ctx context.Context, id, receiverID string) error {
	res, err := r.db.Exec(ctx, `DELETE FROM notifications WHERE id = $1 AND receiver_id = $2`, id, receiverID)
	if err != nil {
		return fmt.Errorf("delete notification: %w", err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.NotificationRepository = (*NotificationRepository)(nil)

type ChatRepository struct {
	db DB
}

func NewChatRepository(db DB) *ChatRepository {
	return &ChatRepository{db: db}
}

func (r *ChatRepository) CountUnseenByUser(ctx context.Context, userID string) (int, error) {
	var n int
	if err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM chat_messages WHERE user_id = $1 AND is_user_seen = FALSE
	`, userID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count chat messages: %w", err)
	}
	return n, nil
}

var _ repository.ChatRepository = (*ChatRepository)(nil)

type BannerRepository struct {
	db DB
}

func NewBannerRepository(db DB) *BannerRepository {
	return &BannerRepository{db: db}
}

func (r *BannerRepository) ListActive(ctx context.Context) ([]entity.Banner, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id::text, title, description, image, is_deleted, created_at
		FROM banners WHERE is_deleted = FALSE
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list banners: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (entity.Banner, error) {
		var b entity.Banner
		err := row.Scan(&b.ID, &b.Title, &b.Description, &b.Image, &b.IsDeleted, &b.CreatedAt)
		return b, err
	})
}

var _ repository.BannerRepository = (*BannerRepository)(nil)
