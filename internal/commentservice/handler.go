package commentservice

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"

	"github.com/karashiro/inkpost/internal/common"
)

func NewCommentService(db *sql.DB, mb common.MessageProducer, c *common.Cache, logger *slog.Logger) *CommentService {
	return &CommentService{m: newCommentModel(db), mb: mb, c: c, logger: logger}
}

type CreateCommentRequest struct {
	Content string `json:"content"`
	UserID  int    `json:"user_id"`
	BlogID  int    `json:"blog_id"`
}

// CreateComment inserts a comment on a blog and publishes a comment.created
// event so the blog's author gets notified. Returns ErrBlogNotFound when the
// blog does not exist.
func (s *CommentService) CreateComment(ctx context.Context, req *CreateCommentRequest) (*Comment, error) {
	v := common.NewValidator()
	validateCommentContent(v, req.Content)
	validateInt(v, req.UserID, "user_id")
	validateInt(v, req.BlogID, "blog_id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	comment, err := s.m.insert(ctx, req.Content, req.UserID, req.BlogID)
	if err != nil {
		return nil, err
	}

	s.c.Delete(common.CacheKeyBlogDetail(req.BlogID))

	// The comment is committed at this point; notification delivery is
	// best-effort and must not fail the request.
	if err := s.publishCommentCreated(ctx, comment); err != nil {
		s.logger.Error("could not publish comment.created event", slog.Int("comment_id", comment.ID), slog.String("error", err.Error()))
	}

	return comment, nil
}

func (s *CommentService) publishCommentCreated(ctx context.Context, comment *Comment) error {
	n, err := s.m.getNotification(ctx, comment.BlogID, comment.UserID)
	if err != nil {
		return err
	}

	payload, err := json.Marshal(struct {
		Email             string
		BlogTitle         string
		CommenterUsername string
	}{
		Email:             n.AuthorEmail,
		BlogTitle:         n.BlogTitle,
		CommenterUsername: n.CommenterUsername,
	})
	if err != nil {
		return err
	}

	return s.mb.Publish(ctx, payload, common.CommentCreatedKey, common.EngagementExchange)
}
