package likeservice

import (
	"database/sql"
	"time"

	"github.com/karashiro/inkpost/internal/common"
)

type LikeService struct {
	m *LikeModel
	c *common.Cache
}

type LikeModel struct {
	db *sql.DB
}

type Like struct {
	ID        int       `json:"id"`
	UserID    int       `json:"user_id"`
	BlogID    int       `json:"blog_id"`
	CreatedAt time.Time `json:"created_at"`
}

// LikeStatus reports whether one user likes one blog and the blog's total.
type LikeStatus struct {
	Liked     bool `json:"liked"`
	LikeCount int  `json:"like_count"`
}
