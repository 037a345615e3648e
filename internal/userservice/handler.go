package userservice

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/karashiro/inkpost/internal/common"
)

func NewUserService(db *sql.DB, mb common.MessageProducer, c *common.Cache) *UserService {
	return &UserService{m: newUserModel(db), t: newTokenModel(db), mb: mb, c: c}
}

// RegisterUser creates a new account and publishes a user.created event so
// the mail consumer can send the welcome email.
func (s *UserService) RegisterUser(ctx context.Context, username, name, email, password string) (*User, error) {
	v := common.NewValidator()
	validateUsername(v, username)
	validateEmail(v, email)
	validatePassword(v, password)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	user := &User{
		Username: username,
		Name:     name,
		Email:    email,
	}

	if err := user.Password.set(password); err != nil {
		return nil, err
	}

	if err := s.m.insert(ctx, user); err != nil {
		return nil, err
	}

	payload, err := json.Marshal(struct {
		Email    string
		Username string
	}{
		Email:    user.Email,
		Username: user.Username,
	})
	if err != nil {
		return nil, err
	}

	if err := s.mb.Publish(ctx, payload, common.UserCreatedKey, common.UserExchange); err != nil {
		return nil, fmt.Errorf("could not publish user.created event: %w", err)
	}

	return user, nil
}

// LoginUser checks the credentials and issues a new access token.
func (s *UserService) LoginUser(ctx context.Context, username, password string) (*Token, error) {
	v := common.NewValidator()
	validateUsername(v, username)
	v.Check(password != "", "password", "must be provided")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	user, err := s.m.getByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	match, err := user.Password.matches(password)
	if err != nil {
		return nil, err
	}
	if !match {
		return nil, ErrAuthenticationFailure
	}

	return s.t.createToken(ctx, user.ID, AccessTokenTime)
}

// LogoutUser revokes every access token held by the user. The cached
// token lookups are evicted alongside the rows so a revoked token stops
// authenticating immediately, not when its cache entry expires.
func (s *UserService) LogoutUser(ctx context.Context, userID int) error {
	hashes, err := s.t.deleteAllForUser(ctx, userID)
	if err != nil {
		return err
	}

	for _, hash := range hashes {
		s.c.Delete(common.CacheKeyUserByAccessToken(hash))
	}

	return nil
}

// GetUserByAccessToken resolves a plaintext bearer token to its user. Hits
// the shared cache first since the authenticate middleware calls this on
// every request.
func (s *UserService) GetUserByAccessToken(ctx context.Context, token string) (*User, error) {
	v := common.NewValidator()
	v.Check(len(token) == 26, "token", "must be 26 characters long")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	hash := hashToken(token)

	key := common.CacheKeyUserByAccessToken(hash)
	if cached, ok := s.c.Get(key); ok {
		if user, ok := cached.(*User); ok {
			return user, nil
		}
	}

	user, err := s.t.getUser(ctx, hash)
	if err != nil {
		return nil, err
	}

	s.c.Set(key, user)

	return user, nil
}

// GetUserByID returns the account with the given id.
func (s *UserService) GetUserByID(ctx context.Context, id int) (*User, error) {
	v := common.NewValidator()
	v.Check(id > 0, "id", "must be greater than zero")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	return s.m.getByID(ctx, id)
}
