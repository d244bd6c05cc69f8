package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/oksasatya/artflow-api/internal/domain/entity"
	"github.com/oksasatya/artflow-api/internal/domain/repository"
)

const postColumns = `p.id::text, p.posted_by::text, p.description, p.image, p.likes::text[], p.created_at, p.updated_at, ` + artistColumns

const postFrom = ` FROM posts p JOIN artists a ON a.id = p.posted_by`

type PostRepository struct {
	db DB
}

func NewPostRepository(db DB) *PostRepository {
	return &PostRepository{db: db}
}

func scanPost(row pgx.Row) (entity.Post, error) {
	var (
		p entity.Post
		a entity.Artist
	)
	err := row.Scan(&p.ID, &p.PostedBy, &p.Description, &p.Image, &p.Likes, &p.CreatedAt, &p.UpdatedAt,
		&a.ID, &a.Name, &a.Role, &a.Email, &a.Mobile, &a.WorksDone, &a.YearOfExperience,
		&a.Field, &a.Interest, &a.EducationalQualifications, &a.CommunicationLanguage,
		&a.IsVerified, &a.IsBlocked, &a.IsApproved, &a.Profile, &a.Rating,
		&a.Followers, &a.Posts, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return entity.Post{}, err
	}
	p.Author = &a
	p.Comments = []entity.Comment{}
	return p, nil
}

// queryPosts runs a post query and attaches comments with their authors.
func (r *PostRepository) queryPosts(ctx context.Context, sql string, args ...any) ([]entity.Post, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	posts, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (entity.Post, error) {
		return scanPost(row)
	})
	if err != nil {
		return nil, err
	}
	if err := r.attachComments(ctx, posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *PostRepository) attachComments(ctx context.Context, posts []entity.Post) error {
	if len(posts) == 0 {
		return nil
	}
	ids := make([]string, len(posts))
	index := make(map[string]int, len(posts))
	for i, p := range posts {
		ids[i] = p.ID
		index[p.ID] = i
	}
	rows, err := r.db.Query(ctx, `
		SELECT c.id::text, c.post_id::text, c.text, c.posted_by::text, c.created_at, u.name, u.profile
		FROM post_comments c JOIN users u ON u.id = c.posted_by
		WHERE c.post_id::text = ANY($1::text[])
		ORDER BY c.created_at, c.id
	`, ids)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var (
			c      entity.Comment
			postID string
			author entity.UserSummary
		)
		if err := rows.Scan(&c.ID, &postID, &c.Text, &c.PostedBy, &c.CreatedAt, &author.Name, &author.Profile); err != nil {
			return err
		}
		author.ID = c.PostedBy
		c.Author = &author
		if i, ok := index[postID]; ok {
			posts[i].Comments = append(posts[i].Comments, c)
		}
	}
	return rows.Err()
}

func (r *PostRepository) GetByID(ctx context.Context, id string) (*entity.Post, error) {
	posts, err := r.queryPosts(ctx, `SELECT `+postColumns+postFrom+` WHERE p.id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("get post: %w", err)
	}
	if len(posts) == 0 {
		return nil, repository.ErrNotFound
	}
	return &posts[0], nil
}

func (r *PostRepository) GetByIDs(ctx context.Context, ids []string) ([]entity.Post, error) {
	if len(ids) == 0 {
		return []entity.Post{}, nil
	}
	posts, err := r.queryPosts(ctx, `SELECT `+postColumns+postFrom+`
		WHERE p.id::text = ANY($1::text[])
		ORDER BY array_position($1::text[], p.id::text)`, ids)
	if err != nil {
		return nil, fmt.Errorf("get posts: %w", err)
	}
	return posts, nil
}

func (r *PostRepository) List(ctx context.Context, authors []string) ([]entity.Post, error) {
	var (
		posts []entity.Post
		err   error
	)
	switch {
	case authors == nil:
		posts, err = r.queryPosts(ctx, `SELECT `+postColumns+postFrom+` ORDER BY p.created_at DESC`)
	case len(authors) == 0:
		return []entity.Post{}, nil
	default:
		posts, err = r.queryPosts(ctx, `SELECT `+postColumns+postFrom+`
			WHERE p.posted_by::text = ANY($1::text[])
			ORDER BY p.created_at DESC`, authors)
	}
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return posts, nil
}

func (r *PostRepository) exists(ctx context.Context, postID string) error {
	var ok bool
	if err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM posts WHERE id = $1)`, postID).Scan(&ok); err != nil {
		return err
	}
	if !ok {
		return repository.ErrNotFound
	}
	return nil
}

func (r *PostRepository) AddLike(ctx context.Context, postID, userID string) (bool, error) {
	res, err := r.db.Exec(ctx, `
		UPDATE posts SET likes = array_append(likes, $1::uuid), updated_at = now()
		WHERE id = $2 AND NOT ($1::uuid = ANY(likes))
	`, userID, postID)
	if err != nil {
		return false, fmt.Errorf("like post: %w", err)
	}
	if res.RowsAffected() == 1 {
		return true, nil
	}
	// either already liked or the post does not exist
	if err := r.exists(ctx, postID); err != nil {
		return false, err
	}
	return false, nil
}

func (r *PostRepository) RemoveLike(ctx context.Context, postID, userID string) error {
	res, err := r.db.Exec(ctx, `
		UPDATE posts SET likes = array_remove(likes, $1::uuid), updated_at = now()
		WHERE id = $2
	`, userID, postID)
	if err != nil {
		return fmt.Errorf("unlike post: %w", err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *PostRepository) AddComment(ctx context.Context, postID string, c *entity.Comment) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO post_comments (post_id, posted_by, text, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id::text, created_at
	`, postID, c.PostedBy, c.Text, c.CreatedAt).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return repository.ErrNotFound
		}
		return fmt.Errorf("add comment: %w", err)
	}
	return nil
}

func (r *PostRepository) DeleteComment(ctx context.Context, postID, commentID string) error {
	res, err := r.db.Exec(ctx, `DELETE FROM post_comments WHERE id = $1 AND post_id = $2`, commentID, postID)
	if err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.PostRepository = (*PostRepository)(nil)
