package userservice

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/karashiro/inkpost/internal/common"
)

type mockProducer struct {
	mu       sync.Mutex
	messages [][]byte
}

func (p *mockProducer) Publish(ctx context.Context, message []byte, key common.BindingKey, exchange common.Exchange) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.messages = append(p.messages, message)
	return nil
}

func (p *mockProducer) published() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	return len(p.messages)
}

func setupTestEnvironment(t *testing.T) (*UserService, *sql.DB, *mockProducer, func() error) {
	db := common.TestDB("file://../../migrations", t)
	cache := common.NewCache(5*time.Minute, 10*time.Minute)
	producer := &mockProducer{}

	cleanup := func() error {
		_, err := db.Exec("DELETE FROM users")
		if err != nil {
			return err
		}

		cache.Flush()

		return nil
	}

	return NewUserService(db, producer, cache), db, producer, cleanup
}

func TestRegisterUser(t *testing.T) {
	s, db, producer, cleanup := setupTestEnvironment(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		username string
		email    string
		password string
		wantErr  error
	}{
		{name: "Valid User", username: "testuser", email: "testuser@example.com", password: "Password1!", wantErr: nil},
		{name: "Duplicate Username", username: "testuser", email: "other@example.com", password: "Password1!", wantErr: ErrDuplicateUsername},
		{name: "Duplicate Email", username: "otheruser", email: "testuser@example.com", password: "Password1!", wantErr: ErrDuplicateEmail},
		{name: "Duplicate Username Different Case", username: "TestUser", email: "case@example.com", password: "Password1!", wantErr: ErrDuplicateUsername},
		{name: "Duplicate Email Different Case", username: "caseuser", email: "TESTUSER@example.com", password: "Password1!", wantErr: ErrDuplicateEmail},
		{name: "Invalid Email", username: "thirduser", email: "not-an-email", password: "Password1!", wantErr: common.ValidationError{Errors: map[string]string{"email": "must be a valid email address"}}},
		{name: "Weak Password", username: "thirduser", email: "third@example.com", password: "password", wantErr: common.ValidationError{Errors: map[string]string{"password": "must be between 8 and 72 characters long and contain at least one uppercase letter, one lowercase letter, one number, and one symbol"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := s.RegisterUser(ctx, tt.username, "Test User", tt.email, tt.password)

			if tt.wantErr != nil {
				assert.Equal(t, tt.wantErr, err)
				return
			}

			assert.NoError(t, err)
			assert.NotZero(t, user.ID)

			var stored string
			err = db.QueryRow("SELECT username FROM users WHERE id = $1", user.ID).Scan(&stored)
			assert.NoError(t, err)
			assert.Equal(t, tt.username, stored)
		})
	}

	// Only the successful registration publishes a user.created event.
	assert.Equal(t, 1, producer.published())

	t.Cleanup(func() {
		err := cleanup()
		assert.NoError(t, err)
	})
}

func TestLoginUser(t *testing.T) {
	s, _, _, cleanup := setupTestEnvironment(t)
	ctx := context.Background()

	_, err := s.RegisterUser(ctx, "testuser", "Test User", "testuser@example.com", "Password1!")
	assert.NoError(t, err)

	token, err := s.LoginUser(ctx, "testuser", "Password1!")
	assert.NoError(t, err)
	assert.Len(t, token.Plain, 26)
	assert.True(t, token.Expiry.After(time.Now()))

	_, err = s.LoginUser(ctx, "testuser", "WrongPassword1!")
	assert.Equal(t, ErrAuthenticationFailure, err)

	_, err = s.LoginUser(ctx, "nosuchuser", "Password1!")
	assert.Equal(t, ErrNotFound, err)

	t.Cleanup(func() {
		err := cleanup()
		assert.NoError(t, err)
	})
}

func TestGetUserByAccessToken(t *testing.T) {
	s, _, _, cleanup := setupTestEnvironment(t)
	ctx := context.Background()

	registered, err := s.RegisterUser(ctx, "testuser", "Test User", "testuser@example.com", "Password1!")
	assert.NoError(t, err)

	token, err := s.LoginUser(ctx, "testuser", "Password1!")
	assert.NoError(t, err)

	user, err := s.GetUserByAccessToken(ctx, token.Plain)
	assert.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)
	assert.Equal(t, "testuser", user.Username)

	// A warm cache entry serves the second lookup without a row read.
	cached, err := s.GetUserByAccessToken(ctx, token.Plain)
	assert.NoError(t, err)
	assert.Equal(t, registered.ID, cached.ID)

	_, err = s.GetUserByAccessToken(ctx, "short")
	assert.Equal(t, common.ValidationError{Errors: map[string]string{"token": "must be 26 characters long"}}, err)

	_, err = s.GetUserByAccessToken(ctx, "ABCDEFGHIJKLMNOPQRSTUVWXYZ")
	assert.Equal(t, ErrNotFound, err)

	t.Cleanup(func() {
		err := cleanup()
		assert.NoError(t, err)
	})
}

func TestLogoutUser(t *testing.T) {
	s, db, _, cleanup := setupTestEnvironment(t)
	ctx := context.Background()

	registered, err := s.RegisterUser(ctx, "testuser", "Test User", "testuser@example.com", "Password1!")
	assert.NoError(t, err)

	token, err := s.LoginUser(ctx, "testuser", "Password1!")
	assert.NoError(t, err)

	// Warm the cache so logout has an entry to evict.
	_, err = s.GetUserByAccessToken(ctx, token.Plain)
	assert.NoError(t, err)

	err = s.LogoutUser(ctx, registered.ID)
	assert.NoError(t, err)

	var count int
	err = db.QueryRow("SELECT COUNT(*) FROM tokens WHERE user_id = $1", registered.ID).Scan(&count)
	assert.NoError(t, err)
	assert.Equal(t, 0, count)

	// The revoked token must stop authenticating immediately, even though
	// its cache entry has not expired yet.
	_, err = s.GetUserByAccessToken(ctx, token.Plain)
	assert.Equal(t, ErrNotFound, err)

	t.Cleanup(func() {
		err := cleanup()
		assert.NoError(t, err)
	})
}
