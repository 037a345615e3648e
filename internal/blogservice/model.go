package blogservice

import (
	"context"
	"database/sql"
	"errors"

	"github.com/karashiro/inkpost/internal/common"
)

var (
	ErrRecordNotFound = errors.New("blog not found")
	ErrAuthorNotFound = errors.New("author does not exist")
)

func newBlogModel(db *sql.DB) *BlogModel {
	return &BlogModel{db: db}
}

// insert creates the blog row. Author existence is enforced by the foreign
// key so there is no check-then-act window under concurrent requests.
func (m *BlogModel) insert(ctx context.Context, title, content string, authorID int, isPublished bool) (*Blog, error) {
	query := `
		INSERT INTO blogs (title, content, author_id, is_published)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at`

	blog := Blog{
		Title:       title,
		Content:     content,
		AuthorID:    authorID,
		IsPublished: isPublished,
	}

	err := m.db.QueryRowContext(ctx, query, title, content, authorID, isPublished).Scan(&blog.ID, &blog.CreatedAt, &blog.UpdatedAt)
	if err != nil {
		switch {
		case common.ForeignKeyError(err, "blogs_author_id_fkey"):
			return nil, ErrAuthorNotFound
		default:
			return nil, err
		}
	}

	return &blog, nil
}

// getPublished returns one page of published blogs, newest first, along with
// the total published count for pagination.
func (m *BlogModel) getPublished(ctx context.Context, limit, offset int) ([]BlogSummary, int, error) {
	var total int
	err := m.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM blogs WHERE is_published = true`).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	query := `
		SELECT id, title, content, created_at, updated_at
		FROM blogs
		WHERE is_published = true
		ORDER BY created_at DESC, id DESC
		LIMIT $1 OFFSET $2`

	rows, err := m.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	blogs := []BlogSummary{}
	for rows.Next() {
		var blog BlogSummary
		err := rows.Scan(&blog.ID, &blog.Title, &blog.Content, &blog.CreatedAt, &blog.UpdatedAt)
		if err != nil {
			return nil, 0, err
		}
		blogs = append(blogs, blog)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return blogs, total, nil
}

// getDetailByID assembles the blog with its author, comments and likes. The
// selected columns are the projection whitelist; email and password hashes
// never leave the store.
func (m *BlogModel) getDetailByID(ctx context.Context, id int) (*BlogDetail, error) {
	query := `
		SELECT b.id, b.title, b.content, b.is_published, b.created_at, b.updated_at, u.id, u.username, u.name
		FROM blogs b
		JOIN users u ON b.author_id = u.id
		WHERE b.id = $1`

	var detail BlogDetail
	err := m.db.QueryRowContext(ctx, query, id).Scan(
		&detail.ID,
		&detail.Title,
		&detail.Content,
		&detail.IsPublished,
		&detail.CreatedAt,
		&detail.UpdatedAt,
		&detail.Author.ID,
		&detail.Author.Username,
		&detail.Author.Name,
	)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}

	comments, err := m.getComments(ctx, id)
	if err != nil {
		return nil, err
	}
	detail.Comments = comments

	likes, err := m.getLikes(ctx, id)
	if err != nil {
		return nil, err
	}
	detail.Likes = likes

	return &detail, nil
}

// getComments returns the blog's comments in insertion order.
func (m *BlogModel) getComments(ctx context.Context, blogID int) ([]CommentSummary, error) {
	query := `
		SELECT c.id, c.content, c.created_at, u.id, u.username, u.name
		FROM comments c
		JOIN users u ON c.user_id = u.id
		WHERE c.blog_id = $1
		ORDER BY c.created_at ASC, c.id ASC`

	rows, err := m.db.QueryContext(ctx, query, blogID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := []CommentSummary{}
	for rows.Next() {
		var comment CommentSummary
		err := rows.Scan(&comment.ID, &comment.Content, &comment.CreatedAt, &comment.User.ID, &comment.User.Username, &comment.User.Name)
		if err != nil {
			return nil, err
		}
		comments = append(comments, comment)
	}

	return comments, rows.Err()
}

func (m *BlogModel) getLikes(ctx context.Context, blogID int) ([]LikeSummary, error) {
	query := `
		SELECT l.id, u.id, u.username
		FROM likes l
		JOIN users u ON l.user_id = u.id
		WHERE l.blog_id = $1
		ORDER BY l.id ASC`

	rows, err := m.db.QueryContext(ctx, query, blogID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	likes := []LikeSummary{}
	for rows.Next() {
		var like LikeSummary
		err := rows.Scan(&like.ID, &like.User.ID, &like.User.Username)
		if err != nil {
			return nil, err
		}
		likes = append(likes, like)
	}

	return likes, rows.Err()
}
