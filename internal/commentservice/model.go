package commentservice

import (
	"context"
	"database/sql"
	"errors"

	"github.com/karashiro/inkpost/internal/common"
)

var (
	ErrBlogNotFound = errors.New("blog not found")
	ErrUserNotFound = errors.New("user not found")
)

func newCommentModel(db *sql.DB) *CommentModel {
	return &CommentModel{db: db}
}

// insert creates the comment row. The blog and user foreign keys stand in for
// separate existence checks, so a vanished blog surfaces as ErrBlogNotFound
// from the insert itself.
func (m *CommentModel) insert(ctx context.Context, content string, userID, blogID int) (*Comment, error) {
	query := `
		INSERT INTO comments (content, user_id, blog_id)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	comment := Comment{
		Content: content,
		UserID:  userID,
		BlogID:  blogID,
	}

	err := m.db.QueryRowContext(ctx, query, content, userID, blogID).Scan(&comment.ID, &comment.CreatedAt)
	if err != nil {
		switch {
		case common.ForeignKeyError(err, "comments_blog_id_fkey"):
			return nil, ErrBlogNotFound
		case common.ForeignKeyError(err, "comments_user_id_fkey"):
			return nil, ErrUserNotFound
		default:
			return nil, err
		}
	}

	return &comment, nil
}

type commentNotification struct {
	BlogTitle         string
	AuthorEmail       string
	CommenterUsername string
}

// getNotification collects what the comment.created event needs: the blog
// title, its author's email and the commenter's username.
func (m *CommentModel) getNotification(ctx context.Context, blogID, commenterID int) (*commentNotification, error) {
	query := `
		SELECT b.title, a.email, c.username
		FROM blogs b
		JOIN users a ON b.author_id = a.id
		JOIN users c ON c.id = $2
		WHERE b.id = $1`

	var n commentNotification
	err := m.db.QueryRowContext(ctx, query, blogID, commenterID).Scan(&n.BlogTitle, &n.AuthorEmail, &n.CommenterUsername)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrBlogNotFound
		default:
			return nil, err
		}
	}

	return &n, nil
}
