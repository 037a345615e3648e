package commentservice

import (
	"database/sql"
	"log/slog"
	"time"

	"github.com/karashiro/inkpost/internal/common"
)

type CommentService struct {
	m      *CommentModel
	mb     common.MessageProducer
	c      *common.Cache
	logger *slog.Logger
}

type CommentModel struct {
	db *sql.DB
}

type Comment struct {
	ID        int       `json:"id"`
	Content   string    `json:"content"`
	UserID    int       `json:"user_id"`
	BlogID    int       `json:"blog_id"`
	CreatedAt time.Time `json:"created_at"`
}
