package likeservice

import (
	"context"
	"database/sql"

	"github.com/karashiro/inkpost/internal/common"
)

func NewLikeService(db *sql.DB, c *common.Cache) *LikeService {
	return &LikeService{m: newLikeModel(db), c: c}
}

// AddLike records a like for the (userID, blogID) pair and returns the
// blog's updated like count. Liking an already-liked blog returns
// ErrAlreadyLiked with nothing inserted.
func (s *LikeService) AddLike(ctx context.Context, userID, blogID int) (int, error) {
	v := common.NewValidator()
	validateInt(v, userID, "user_id")
	validateInt(v, blogID, "blog_id")
	if !v.Valid() {
		return 0, v.ValidationError()
	}

	count, err := s.m.insert(ctx, userID, blogID)
	if err != nil {
		return 0, err
	}

	s.c.Delete(common.CacheKeyBlogDetail(blogID))

	return count, nil
}

// RemoveLike deletes the (userID, blogID) like and returns the blog's
// updated like count. Returns ErrLikeNotFound when no such like exists, in
// which case the count is untouched.
func (s *LikeService) RemoveLike(ctx context.Context, userID, blogID int) (int, error) {
	v := common.NewValidator()
	validateInt(v, userID, "user_id")
	validateInt(v, blogID, "blog_id")
	if !v.Valid() {
		return 0, v.ValidationError()
	}

	count, err := s.m.delete(ctx, userID, blogID)
	if err != nil {
		return 0, err
	}

	s.c.Delete(common.CacheKeyBlogDetail(blogID))

	return count, nil
}

// GetLikeStatus reports whether the user likes the blog and the blog's total
// like count.
func (s *LikeService) GetLikeStatus(ctx context.Context, userID, blogID int) (*LikeStatus, error) {
	v := common.NewValidator()
	validateInt(v, userID, "user_id")
	validateInt(v, blogID, "blog_id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	return s.m.status(ctx, userID, blogID)
}

func validateInt(v *common.Validator, num int, name string) {
	v.Check(num > 0, name, "must be greater than zero")
}
