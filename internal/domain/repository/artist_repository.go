package repository

import (
	"context"

	"github.com/oksasatya/artflow-api/internal/domain/entity"
)

// ArtistQuery selects listable artists page by page.
type ArtistQuery struct {
	Offset int
	Limit  int
}

type ArtistRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Artist, error)
	GetByIDs(ctx context.Context, ids []string) ([]entity.Artist, error)
	// ListListable returns unblocked, verified artists by rating desc then createdAt desc.
	ListListable(ctx context.Context, q ArtistQuery) ([]entity.Artist, error)
	CountListable(ctx context.Context) (int, error)
	SearchByName(ctx context.Context, q string, limit int) ([]entity.Artist, error)
}

// FollowRepository maintains the user <-> artist follow relation on both sides.
// Implementations apply both sides atomically and keep each side a set.
type FollowRepository interface {
	Follow(ctx context.Context, userID, artistID string) error
	Unfollow(ctx context.Context, userID, artistID string) error
	ListFollowers(ctx context.Context, artistID string) ([]entity.User, error)
	ListFollowings(ctx context.Context, userID string) ([]entity.Artist, error)
}
