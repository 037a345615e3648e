package likeservice

import (
	"context"
	"database/sql"
	"errors"

	"github.com/karashiro/inkpost/internal/common"
)

var (
	ErrLikeNotFound = errors.New("like not found")
	ErrBlogNotFound = errors.New("blog not found")
	ErrUserNotFound = errors.New("user not found")
	ErrAlreadyLiked = errors.New("blog already liked")
)

func newLikeModel(db *sql.DB) *LikeModel {
	return &LikeModel{db: db}
}

// insert adds a like and returns the blog's new total, both inside one
// transaction. The (user_id, blog_id) unique constraint makes a duplicate
// like surface as ErrAlreadyLiked instead of a second row.
func (m *LikeModel) insert(ctx context.Context, userID, blogID int) (int, error) {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	query := `
		INSERT INTO likes (user_id, blog_id)
		VALUES ($1, $2)`

	_, err = tx.ExecContext(ctx, query, userID, blogID)
	if err != nil {
		switch {
		case common.UniqueViolationError(err, "likes_user_id_blog_id_key"):
			return 0, ErrAlreadyLiked
		case common.ForeignKeyError(err, "likes_blog_id_fkey"):
			return 0, ErrBlogNotFound
		case common.ForeignKeyError(err, "likes_user_id_fkey"):
			return 0, ErrUserNotFound
		default:
			return 0, err
		}
	}

	count, err := countForBlog(tx, ctx, blogID)
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}

	return count, nil
}

// delete removes the (user_id, blog_id) like and returns the blog's new
// total. Delete-by-pair is atomic, so of two concurrent removals exactly one
// observes an affected row; the other gets ErrLikeNotFound.
func (m *LikeModel) delete(ctx context.Context, userID, blogID int) (int, error) {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	query := `
		DELETE FROM likes
		WHERE user_id = $1 AND blog_id = $2`

	res, err := tx.ExecContext(ctx, query, userID, blogID)
	if err != nil {
		return 0, err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	if rows == 0 {
		return 0, ErrLikeNotFound
	}

	count, err := countForBlog(tx, ctx, blogID)
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}

	return count, nil
}

func (m *LikeModel) status(ctx context.Context, userID, blogID int) (*LikeStatus, error) {
	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE user_id = $1)
		FROM likes
		WHERE blog_id = $2`

	var status LikeStatus
	var liked int
	err := m.db.QueryRowContext(ctx, query, userID, blogID).Scan(&status.LikeCount, &liked)
	if err != nil {
		return nil, err
	}
	status.Liked = liked > 0

	return &status, nil
}

func countForBlog(tx *sql.Tx, ctx context.Context, blogID int) (int, error) {
	var count int
	err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM likes WHERE blog_id = $1`, blogID).Scan(&count)
	return count, err
}
