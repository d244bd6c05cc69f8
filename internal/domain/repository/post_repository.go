package repository

import (
	"context"

	"github.com/oksasatya/artflow-api/internal/domain/entity"
)

// PostRepository returns posts with author and comment authors populated.
type PostRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Post, error)
	GetByIDs(ctx context.Context, ids []string) ([]entity.Post, error)
	// List returns posts newest first. A nil authors slice means all posts;
	// an empty one matches nothing.
	List(ctx context.Context, authors []string) ([]entity.Post, error)
	// AddLike reports whether userID was newly added to the like set.
	AddLike(ctx context.Context, postID, userID string) (bool, error)
	RemoveLike(ctx context.Context, postID, userID string) error
	AddComment(ctx context.Context, postID string, c *entity.Comment) error
	DeleteComment(ctx context.Context, postID, commentID string) error
}

