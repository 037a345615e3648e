package likeservice

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/karashiro/inkpost/internal/common"
)

func setupTestEnvironment(t *testing.T) (*LikeService, *sql.DB, func() error, *int, *int) {
	db := common.TestDB("file://../../migrations", t)
	cache := common.NewCache(5*time.Minute, 10*time.Minute)

	var userId int
	err := db.QueryRow("INSERT INTO users (username, name, email, password) VALUES ($1, $2, $3, $4) RETURNING id", "testuser", "Test User", "testuser@example.com", []byte("x")).Scan(&userId)
	assert.NoError(t, err)

	var blogId int
	err = db.QueryRow("INSERT INTO blogs (title, content, author_id, is_published) VALUES ($1, $2, $3, true) RETURNING id", "Test Blog", "This is a test blog.", userId).Scan(&blogId)
	assert.NoError(t, err)

	cleanup := func() error {
		_, err := db.Exec("DELETE FROM likes")
		if err != nil {
			return err
		}

		cache.Flush()

		return nil
	}

	return NewLikeService(db, cache), db, cleanup, &userId, &blogId
}

func likeCount(t *testing.T, db *sql.DB, blogId int) int {
	var count int
	err := db.QueryRow("SELECT COUNT(*) FROM likes WHERE blog_id = $1", blogId).Scan(&count)
	assert.NoError(t, err)
	return count
}

func TestAddLike(t *testing.T) {
	s, db, cleanup, userId, blogId := setupTestEnvironment(t)
	ctx := context.Background()

	count, err := s.AddLike(ctx, *userId, *blogId)
	assert.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.Equal(t, 1, likeCount(t, db, *blogId))

	// Liking the same blog again must not insert a second row.
	_, err = s.AddLike(ctx, *userId, *blogId)
	assert.Equal(t, ErrAlreadyLiked, err)
	assert.Equal(t, 1, likeCount(t, db, *blogId))

	t.Cleanup(func() {
		err := cleanup()
		assert.NoError(t, err)
	})
}

func TestAddLikeUnknownReferences(t *testing.T) {
	s, _, cleanup, userId, blogId := setupTestEnvironment(t)
	ctx := context.Background()

	_, err := s.AddLike(ctx, *userId, 999)
	assert.Equal(t, ErrBlogNotFound, err)

	_, err = s.AddLike(ctx, 999, *blogId)
	assert.Equal(t, ErrUserNotFound, err)

	_, err = s.AddLike(ctx, 0, *blogId)
	assert.Equal(t, common.ValidationError{Errors: map[string]string{"user_id": "must be greater than zero"}}, err)

	t.Cleanup(func() {
		err := cleanup()
		assert.NoError(t, err)
	})
}

func TestRemoveLike(t *testing.T) {
	s, db, cleanup, userId, blogId := setupTestEnvironment(t)
	ctx := context.Background()

	// Removing before any like exists leaves the count untouched.
	_, err := s.RemoveLike(ctx, *userId, *blogId)
	assert.Equal(t, ErrLikeNotFound, err)
	assert.Equal(t, 0, likeCount(t, db, *blogId))

	_, err = s.AddLike(ctx, *userId, *blogId)
	assert.NoError(t, err)

	count, err := s.RemoveLike(ctx, *userId, *blogId)
	assert.NoError(t, err)
	assert.Equal(t, 0, count)
	assert.Equal(t, 0, likeCount(t, db, *blogId))

	// A retry of the removal is a clean not-found, not a second decrement.
	_, err = s.RemoveLike(ctx, *userId, *blogId)
	assert.Equal(t, ErrLikeNotFound, err)
	assert.Equal(t, 0, likeCount(t, db, *blogId))

	t.Cleanup(func() {
		err := cleanup()
		assert.NoError(t, err)
	})
}

func TestGetLikeStatus(t *testing.T) {
	s, db, cleanup, userId, blogId := setupTestEnvironment(t)
	ctx := context.Background()

	var otherId int
	err := db.QueryRow("INSERT INTO users (username, name, email, password) VALUES ($1, $2, $3, $4) RETURNING id", "otheruser", "Other User", "otheruser@example.com", []byte("x")).Scan(&otherId)
	assert.NoError(t, err)

	status, err := s.GetLikeStatus(ctx, *userId, *blogId)
	assert.NoError(t, err)
	assert.False(t, status.Liked)
	assert.Equal(t, 0, status.LikeCount)

	_, err = s.AddLike(ctx, otherId, *blogId)
	assert.NoError(t, err)

	status, err = s.GetLikeStatus(ctx, *userId, *blogId)
	assert.NoError(t, err)
	assert.False(t, status.Liked)
	assert.Equal(t, 1, status.LikeCount)

	_, err = s.AddLike(ctx, *userId, *blogId)
	assert.NoError(t, err)

	status, err = s.GetLikeStatus(ctx, *userId, *blogId)
	assert.NoError(t, err)
	assert.True(t, status.Liked)
	assert.Equal(t, 2, status.LikeCount)

	t.Cleanup(func() {
		err := cleanup()
		assert.NoError(t, err)
	})
}
