package application

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/artflow-api/internal/domain/entity"
	repo "github.com/oksasatya/artflow-api/internal/domain/repository"
)

type FeedService struct {
	Users    repo.UserRepository
	Posts    repo.PostRepository
	Notifier *NotificationService
	Logger   *logrus.Logger
	Now      func() time.Time
}

func NewFeedService(users repo.UserRepository, posts repo.PostRepository, notifier *NotificationService, logger *logrus.Logger) *FeedService {
	return &FeedService{Users: users, Posts: posts, Notifier: notifier, Logger: logger, Now: time.Now}
}

func (s *FeedService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// RankPosts orders posts by like count desc, ties broken by creation time desc.
// The input is not modified.
func RankPosts(posts []entity.Post) []entity.Post {
	out := slices.Clone(posts)
	slices.SortStableFunc(out, func(a, b entity.Post) int {
		if d := len(b.Likes) - len(a.Likes); d != 0 {
			return d
		}
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return out
}

func (s *FeedService) user(ctx context.Context, id string) (*entity.User, error) {
	u, err := s.Users.GetByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

func (s *FeedService) post(ctx context.Context, id string) (*entity.Post, error) {
	p, err := s.Posts.GetByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrPostNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get post: %w", err)
	}
	return p, nil
}

// ListFollowedPosts returns posts by the artists userID follows, newest first.
func (s *FeedService) ListFollowedPosts(ctx context.Context, userID string) ([]entity.Post, error) {
	u, err := s.user(ctx, userID)
	if err != nil {
		return nil, err
	}
	authors := u.Followings
	if authors == nil {
		authors = []string{}
	}
	posts, err := s.Posts.List(ctx, authors)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	if posts == nil {
		posts = []entity.Post{}
	}
	return posts, nil
}

func (s *FeedService) ListAllPosts(ctx context.Context) ([]entity.Post, error) {
	posts, err := s.Posts.List(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	if posts == nil {
		return []entity.Post{}, nil
	}
	return RankPosts(posts), nil
}

// Like adds userID to the post's like set. Repeated likes are no-ops and
// only the first one notifies the author.
func (s *FeedService) Like(ctx context.Context, postID, userID string) (*entity.Post, error) {
	u, err := s.user(ctx, userID)
	if err != nil {
		return nil, err
	}
	p, err := s.post(ctx, postID)
	if err != nil {
		return nil, err
	}
	added, err := s.Posts.AddLike(ctx, postID, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrPostNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("like post: %w", err)
	}
	if added {
		if !p.LikedBy(userID) {
			p.Likes = append(p.Likes, userID)
		}
		s.Notifier.Notify(ctx, p.PostedBy, userID, u.Name+" liked your post", p.ID)
	}
	return p, nil
}

func (s *FeedService) Unlike(ctx context.Context, postID, userID string) (*entity.Post, error) {
	p, err := s.post(ctx, postID)
	if err != nil {
		return nil, err
	}
	err = s.Posts.RemoveLike(ctx, postID, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrPostNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("unlike post: %w", err)
	}
	p.Likes = slices.DeleteFunc(p.Likes, func(id string) bool { return id == userID })
	return p, nil
}

// Comment appends a comment and tells the author what was said.
func (s *FeedService) Comment(ctx context.Context, postID, userID, text string) (*entity.Post, error) {
	u, err := s.user(ctx, userID)
	if err != nil {
		return nil, err
	}
	p, err := s.post(ctx, postID)
	if err != nil {
		return nil, err
	}
	c := &entity.Comment{Text: text, PostedBy: userID, CreatedAt: s.now()}
	err = s.Posts.AddComment(ctx, postID, c)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrPostNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("comment post: %w", err)
	}
	c.Author = &entity.UserSummary{ID: u.ID, Name: u.Name, Profile: u.Profile}
	p.Comments = append(p.Comments, *c)
	s.Notifier.Notify(ctx, p.PostedBy, userID, fmt.Sprintf("%s commented '%s' to your post", u.Name, text), p.ID)
	return p, nil
}

func (s *FeedService) GetComments(ctx context.Context, postID string) ([]entity.Comment, error) {
	p, err := s.post(ctx, postID)
	if err != nil {
		return nil, err
	}
	if p.Comments == nil {
		return []entity.Comment{}, nil
	}
	return p.Comments, nil
}

func (s *FeedService) DeleteComment(ctx context.Context, postID, commentID string) error {
	err := s.Posts.DeleteComment(ctx, postID, commentID)
	if errors.Is(err, repo.ErrNotFound) {
		return ErrCommentNotFound
	}
	if err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	return nil
}
