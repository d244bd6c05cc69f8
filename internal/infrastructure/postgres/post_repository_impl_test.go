package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/artflow-api/internal/domain/entity"
	"github.com/oksasatya/artflow-api/internal/domain/repository"
)

var commentCols = []string{"id", "post_id", "text", "posted_by", "created_at", "name", "profile"}

func TestPostRepository_List_AttachesComments(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	later := fixedTime.Add(time.Hour)
	rows := pgxmock.NewRows(postCols)
	postRow(rows, "p-2", "a-1", []string{"u-1"}, later)
	postRow(rows, "p-1", "a-1", []string{}, fixedTime)
	mock.ExpectQuery("SELECT (.+) FROM posts p JOIN artists a (.+) ORDER BY p.created_at DESC").
		WillReturnRows(rows)
	mock.ExpectQuery("FROM post_comments c JOIN users u").
		WithArgs([]string{"p-2", "p-1"}).
		WillReturnRows(pgxmock.NewRows(commentCols).
			AddRow("c-1", "p-1", "lovely", "u-1", fixedTime, "Asha", "asha.png"))

	repo := NewPostRepository(mock)
	posts, err := repo.List(context.Background(), nil)
	require.NoError(t, err)

	require.Len(t, posts, 2)
	assert.Equal(t, "p-2", posts[0].ID)
	assert.Equal(t, "Mira", posts[0].Author.Name)
	assert.Empty(t, posts[0].Comments)
	require.Len(t, posts[1].Comments, 1)
	assert.Equal(t, "Asha", posts[1].Comments[0].Author.Name)
	assert.Equal(t, "u-1", posts[1].Comments[0].Author.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_List_NoFollowedAuthors(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewPostRepository(mock)
	posts, err := repo.List(context.Background(), []string{})
	require.NoError(t, err)
	assert.Empty(t, posts)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_AddLike(t *testing.T) {
	t.Run("newly added", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectExec("UPDATE posts SET likes = array_append").WithArgs("u-1", "p-1").
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		added, err := NewPostRepository(mock).AddLike(context.Background(), "p-1", "u-1")
		require.NoError(t, err)
		assert.True(t, added)
	})

	t.Run("already liked", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectExec("UPDATE posts SET likes = array_append").WithArgs("u-1", "p-1").
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))
		mock.ExpectQuery("SELECT EXISTS").WithArgs("p-1").
			WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

		added, err := NewPostRepository(mock).AddLike(context.Background(), "p-1", "u-1")
		require.NoError(t, err)
		assert.False(t, added)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing post", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectExec("UPDATE posts SET likes = array_append").WithArgs("u-1", "nope").
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))
		mock.ExpectQuery("SELECT EXISTS").WithArgs("nope").
			WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))

		_, err = NewPostRepository(mock).AddLike(context.Background(), "nope", "u-1")
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})
}

func TestPostRepository_AddComment_StoresTimestamp(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery("INSERT INTO post_comments").
		WithArgs("p-1", "u-1", "hi", fixedTime).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow("c-1", fixedTime))

	c := &entity.Comment{PostedBy: "u-1", Text: "hi", CreatedAt: fixedTime}
	require.NoError(t, NewPostRepository(mock).AddComment(context.Background(), "p-1", c))
	assert.Equal(t, "c-1", c.ID)
	assert.Equal(t, fixedTime, c.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_AddComment_UnknownPost(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery("INSERT INTO post_comments").
		WithArgs("nope", "u-1", "hi", pgxmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: "23503"})

	c := &entity.Comment{PostedBy: "u-1", Text: "hi", CreatedAt: fixedTime}
	err = NewPostRepository(mock).AddComment(context.Background(), "nope", c)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestPostRepository_DeleteComment(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec("DELETE FROM post_comments").WithArgs("c-9", "p-1").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err = NewPostRepository(mock).DeleteComment(context.Background(), "p-1", "c-9")
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
