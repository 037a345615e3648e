package blogservice

import (
	"database/sql"
	"time"

	"github.com/karashiro/inkpost/internal/common"
)

type BlogService struct {
	m *BlogModel
	c *common.Cache
}

type BlogModel struct {
	db *sql.DB
}

type Blog struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
	// Content is stored in Markdown format.
	Content     string    `json:"content"`
	AuthorID    int       `json:"author_id"`
	IsPublished bool      `json:"is_published"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// BlogSummary is the listing projection. Author and engagement data are
// deliberately absent.
type BlogSummary struct {
	ID        int       `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BlogList is one page of published blogs plus the page count the listing
// client paginates with.
type BlogList struct {
	Blogs      []BlogSummary `json:"blogs"`
	TotalPages int           `json:"total_pages"`
}

// UserSummary is the whitelisted slice of a user exposed through blog
// projections. Name is omitted where a projection does not select it.
type UserSummary struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name,omitempty"`
}

type CommentSummary struct {
	ID        int         `json:"id"`
	Content   string      `json:"content"`
	CreatedAt time.Time   `json:"created_at"`
	User      UserSummary `json:"user"`
}

type LikeSummary struct {
	ID   int         `json:"id"`
	User UserSummary `json:"user"`
}

// BlogDetail is the full fan-out: the blog row joined with its author and
// every comment and like, each carrying its whitelisted user projection.
type BlogDetail struct {
	ID          int              `json:"id"`
	Title       string           `json:"title"`
	Content     string           `json:"content"`
	IsPublished bool             `json:"is_published"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
	Author      UserSummary      `json:"author"`
	Comments    []CommentSummary `json:"comments"`
	Likes       []LikeSummary    `json:"likes"`
}
