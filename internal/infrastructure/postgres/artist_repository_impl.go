package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/oksasatya/artflow-api/internal/domain/entity"
	"github.com/oksasatya/artflow-api/internal/domain/repository"
)

const artistColumns = `a.id::text, a.name, a.role, a.email, a.mobile, a.works_done, a.year_of_experience,
		a.field, a.interest, a.educational_qualifications, a.communication_language,
		a.is_verified, a.is_blocked, a.is_approved, a.profile, a.rating::float8,
		a.followers::text[], a.posts::text[], a.created_at, a.updated_at`

const listableArtists = `a.is_blocked = FALSE AND a.is_verified = TRUE`

type ArtistRepository struct {
	db DB
}

func NewArtistRepository(db DB) *ArtistRepository {
	return &ArtistRepository{db: db}
}

func scanArtist(row pgx.Row) (entity.Artist, error) {
	var a entity.Artist
	err := row.Scan(&a.ID, &a.Name, &a.Role, &a.Email, &a.Mobile, &a.WorksDone, &a.YearOfExperience,
		&a.Field, &a.Interest, &a.EducationalQualifications, &a.CommunicationLanguage,
		&a.IsVerified, &a.IsBlocked, &a.IsApproved, &a.Profile, &a.Rating,
		&a.Followers, &a.Posts, &a.CreatedAt, &a.UpdatedAt)
	return a, err
}

func collectArtists(rows pgx.Rows, err error) ([]entity.Artist, error) {
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (entity.Artist, error) {
		return scanArtist(row)
	})
}

func (r *ArtistRepository) GetByID(ctx context.Context, id string) (*entity.Artist, error) {
	a, err := scanArtist(r.db.QueryRow(ctx, `SELECT `+artistColumns+` FROM artists a WHERE a.id = $1`, id))
	if err != nil {
		return nil, notFound(err)
	}
	return &a, nil
}

// GetByIDs keeps the order of ids; unknown ids are skipped.
func (r *ArtistRepository) GetByIDs(ctx context.Context, ids []string) ([]entity.Artist, error) {
	if len(ids) == 0 {
		return []entity.Artist{}, nil
	}
	artists, err := collectArtists(r.db.Query(ctx, `
		SELECT `+artistColumns+` FROM artists a
		WHERE a.id::text = ANY($1::text[])
		ORDER BY array_position($1::text[], a.id::text)
	`, ids))
	if err != nil {
		return nil, fmt.Errorf("get artists: %w", err)
	}
	return artists, nil
}

func (r *ArtistRepository) ListListable(ctx context.Context, q repository.ArtistQuery) ([]entity.Artist, error) {
	artists, err := collectArtists(r.db.Query(ctx, `
		SELECT `+artistColumns+` FROM artists a
		WHERE `+listableArtists+`
		ORDER BY a.rating DESC, a.created_at DESC
		OFFSET $1 LIMIT $2
	`, q.Offset, q.Limit))
	if err != nil {
		return nil, fmt.Errorf("list artists: %w", err)
	}
	return artists, nil
}

func (r *ArtistRepository) CountListable(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM artists a WHERE `+listableArtists).Scan(&n); err != nil {
		return 0, fmt.Errorf("count artists: %w", err)
	}
	return n, nil
}

func (r *ArtistRepository) SearchByName(ctx context.Context, q string, limit int) ([]entity.Artist, error) {
	artists, err := collectArtists(r.db.Query(ctx, `
		SELECT `+artistColumns+` FROM artists a
		WHERE `+listableArtists+` AND (a.name ILIKE '%' || $1 || '%' OR a.field ILIKE '%' || $1 || '%')
		ORDER BY a.rating DESC, a.created_at DESC
		LIMIT $2
	`, q, limit))
	if err != nil {
		return nil, fmt.Errorf("search artists: %w", err)
	}
	return artists, nil
}

var _ repository.ArtistRepository = (*ArtistRepository)(nil)

// FollowRepository updates artists.followers and users.followings in one transaction.
type FollowRepository struct {
	db      DB
	artists *ArtistRepository
}

func NewFollowRepository(db DB) *FollowRepository {
	return &FollowRepository{db: db, artists: NewArtistRepository(db)}
}

func execOne(ctx context.Context, tx pgx.Tx, sql string, args ...any) error {
	res, err := tx.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *FollowRepository) Follow(ctx context.Context, userID, artistID string) error {
	return inTx(ctx, r.db, func(tx pgx.Tx) error {
		if err := execOne(ctx, tx, `
			UPDATE artists
			SET followers = CASE WHEN $1::uuid = ANY(followers) THEN followers ELSE array_append(followers, $1::uuid) END,
			    updated_at = now()
			WHERE id = $2
		`, userID, artistID); err != nil {
			return err
		}
		return execOne(ctx, tx, `
			UPDATE users
			SET followings = CASE WHEN $1::uuid = ANY(followings) THEN followings ELSE array_append(followings, $1::uuid) END,
			    updated_at = now()
			WHERE id = $2
		`, artistID, userID)
	})
}

func (r *FollowRepository) Unfollow(ctx context.Context, userID, artistID string) error {
	return inTx(ctx, r.db, func(tx pgx.Tx) error {
		if err := execOne(ctx, tx, `
			UPDATE artists SET followers = array_remove(followers, $1::uuid), updated_at = now()
			WHERE id = $2
		`, userID, artistID); err != nil {
			return err
		}
		return execOne(ctx, tx, `
			UPDATE users SET followings = array_remove(followings, $1::uuid), updated_at = now()
			WHERE id = $2
		`, artistID, userID)
	})
}

func (r *FollowRepository) ListFollowers(ctx context.Context, artistID string) ([]entity.User, error) {
	var ids []string
	if err := r.db.QueryRow(ctx, `SELECT followers::text[] FROM artists WHERE id = $1`, artistID).Scan(&ids); err != nil {
		return nil, notFound(err)
	}
	if len(ids) == 0 {
		return []entity.User{}, nil
	}
	rows, err := r.db.Query(ctx, `
		SELECT `+userColumns+` FROM users
		WHERE id::text = ANY($1::text[])
		ORDER BY array_position($1::text[], id::text)
	`, ids)
	if err != nil {
		return nil, fmt.Errorf("list followers: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (entity.User, error) {
		u, err := scanUser(row)
		if err != nil {
			return entity.User{}, err
		}
		return *u, nil
	})
}

func (r *FollowRepository) ListFollowings(ctx context.Context, userID string) ([]entity.Artist, error) {
	var ids []string
	if err := r.db.QueryRow(ctx, `SELECT followings::text[] FROM users WHERE id = $1`, userID).Scan(&ids); err != nil {
		return nil, notFound(err)
	}
	return r.artists.GetByIDs(ctx, ids)
}

var _ repository.FollowRepository = (*FollowRepository)(nil)
