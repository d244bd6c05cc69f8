package repository

import (
	"context"

	"github.com/oksasatya/artflow-api/internal/domain/entity"
)

type NotificationRepository interface {
	Create(ctx context.Context, n *entity.Notification) error
	// MarkAllSeen flags every unseen notification of receiverID as seen.
	MarkAllSeen(ctx context.Context, receiverID string) error
	// ListByReceiver returns notifications sorted by date desc, unpopulated.
	ListByReceiver(ctx context.Context, receiverID string) ([]entity.Notification, error)
	CountUnseen(ctx context.Context, receiverID string) (int, error)
	DeleteSeen(ctx context.Context, receiverID string) (int64, error)
	// Delete removes one notification owned by receiverID.
	Delete(ctx context.Context, id, receiverID string) error
}

// ChatRepository is the read side of the chat collaborator used for badge counts.
type ChatRepository interface {
	CountUnseenByUser(ctx context.Context, userID string) (int, error)
}

type BannerRepository interface {
	ListActive(ctx context.Context) ([]entity.Banner, error)
}
