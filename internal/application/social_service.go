package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/artflow-api/internal/domain/entity"
	repo "github.com/oksasatya/artflow-api/internal/domain/repository"
)

const searchLimit = 20

// ArtistSearcher is a full-text artist index. Implemented by search.ArtistIndex.
type ArtistSearcher interface {
	Enabled() bool
	SearchIDs(ctx context.Context, q string, size int) ([]string, error)
}

type SocialService struct {
	Users    repo.UserRepository
	Artists  repo.ArtistRepository
	Follows  repo.FollowRepository
	Posts    repo.PostRepository
	Notifier *NotificationService
	Search   ArtistSearcher
	Logger   *logrus.Logger
	PageSize int
}

func NewSocialService(users repo.UserRepository, artists repo.ArtistRepository, follows repo.FollowRepository, posts repo.PostRepository, notifier *NotificationService, search ArtistSearcher, logger *logrus.Logger, pageSize int) *SocialService {
	if pageSize <= 0 {
		pageSize = 3
	}
	return &SocialService{
		Users:    users,
		Artists:  artists,
		Follows:  follows,
		Posts:    posts,
		Notifier: notifier,
		Search:   search,
		Logger:   logger,
		PageSize: pageSize,
	}
}

// ArtistPage is one page of listable artists.
type ArtistPage struct {
	Artists     []entity.Artist `json:"artists"`
	CurrentPage int             `json:"currentPage"`
	TotalPages  int             `json:"totalPages"`
}

func (s *SocialService) user(ctx context.Context, id string) (*entity.User, error) {
	u, err := s.Users.GetByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

func (s *SocialService) artist(ctx context.Context, id string) (*entity.Artist, error) {
	a, err := s.Artists.GetByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrArtistNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get artist: %w", err)
	}
	return a, nil
}

// Follow links userID and artistID on both sides and notifies the artist.
func (s *SocialService) Follow(ctx context.Context, userID, artistID string) error {
	u, err := s.user(ctx, userID)
	if err != nil {
		return err
	}
	if _, err := s.artist(ctx, artistID); err != nil {
		return err
	}
	if err := s.Follows.Follow(ctx, userID, artistID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrArtistNotFound
		}
		return fmt.Errorf("follow: %w", err)
	}
	s.Notifier.Notify(ctx, artistID, userID, u.Name+" started following you", "")
	return nil
}

func (s *SocialService) Unfollow(ctx context.Context, userID, artistID string) error {
	u, err := s.user(ctx, userID)
	if err != nil {
		return err
	}
	if _, err := s.artist(ctx, artistID); err != nil {
		return err
	}
	if err := s.Follows.Unfollow(ctx, userID, artistID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrArtistNotFound
		}
		return fmt.Errorf("unfollow: %w", err)
	}
	s.Notifier.Notify(ctx, artistID, userID, u.Name+" has stopped following you", "")
	return nil
}

// ListArtists pages through verified, unblocked artists by rating then recency.
func (s *SocialService) ListArtists(ctx context.Context, page int) (*ArtistPage, error) {
	if page < 1 {
		page = 1
	}
	total, err := s.Artists.CountListable(ctx)
	if err != nil {
		return nil, fmt.Errorf("count artists: %w", err)
	}
	artists, err := s.Artists.ListListable(ctx, repo.ArtistQuery{Offset: (page - 1) * s.PageSize, Limit: s.PageSize})
	if err != nil {
		return nil, fmt.Errorf("list artists: %w", err)
	}
	if artists == nil {
		artists = []entity.Artist{}
	}
	return &ArtistPage{
		Artists:     artists,
		CurrentPage: page,
		TotalPages:  (total + s.PageSize - 1) / s.PageSize,
	}, nil
}

// SearchArtists uses the search index when available and falls back to a
// name match in Postgres when it is not or when it fails.
func (s *SocialService) SearchArtists(ctx context.Context, q string) ([]entity.Artist, error) {
	if q == "" {
		return []entity.Artist{}, nil
	}
	if s.Search != nil && s.Search.Enabled() {
		out, err := s.searchIndex(ctx, q)
		if err == nil {
			return out, nil
		}
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("q", q).Warn("artist index search failed, falling back to postgres")
		}
	}
	artists, err := s.Artists.SearchByName(ctx, q, searchLimit)
	if err != nil {
		return nil, fmt.Errorf("search artists: %w", err)
	}
	if artists == nil {
		artists = []entity.Artist{}
	}
	return artists, nil
}

func (s *SocialService) searchIndex(ctx context.Context, q string) ([]entity.Artist, error) {
	ids, err := s.Search.SearchIDs(ctx, q, searchLimit)
	if err != nil {
		return nil, err
	}
	out := []entity.Artist{}
	if len(ids) == 0 {
		return out, nil
	}
	artists, err := s.Artists.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	// the index may lag behind flag changes
	for _, a := range artists {
		if a.Listable() {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *SocialService) ListArtistPosts(ctx context.Context, artistID string) ([]entity.Post, error) {
	if _, err := s.artist(ctx, artistID); err != nil {
		return nil, err
	}
	posts, err := s.Posts.List(ctx, []string{artistID})
	if err != nil {
		return nil, fmt.Errorf("list artist posts: %w", err)
	}
	if posts == nil {
		posts = []entity.Post{}
	}
	return posts, nil
}

func (s *SocialService) ListArtistFollowers(ctx context.Context, artistID string) ([]entity.User, error) {
	if _, err := s.artist(ctx, artistID); err != nil {
		return nil, err
	}
	users, err := s.Follows.ListFollowers(ctx, artistID)
	if err != nil {
		return nil, fmt.Errorf("list followers: %w", err)
	}
	if len(users) == 0 {
		return nil, ErrNoFollowers
	}
	return users, nil
}

func (s *SocialService) ListUserFollowings(ctx context.Context, userID string) ([]entity.Artist, error) {
	if _, err := s.user(ctx, userID); err != nil {
		return nil, err
	}
	artists, err := s.Follows.ListFollowings(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list followings: %w", err)
	}
	if len(artists) == 0 {
		return nil, ErrNoFollowings
	}
	return artists, nil
}
