package userservice

import (
	"database/sql"
	"time"

	"github.com/karashiro/inkpost/internal/common"
)

const (
	AccessTokenTime time.Duration = 7 * 24 * time.Hour
)

var (
	AnonymousUser = User{}
)

type UserService struct {
	m  *UserModel
	t  *TokenModel
	mb common.MessageProducer
	c  *common.Cache
}

type UserModel struct {
	db *sql.DB
}

type TokenModel struct {
	db *sql.DB
}

// User is the account record. Only ID, Username and Name may appear in
// engagement projections; email and password stay server-side.
type User struct {
	ID        int       `json:"id"`
	Username  string    `json:"username"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	Password  Password  `json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Version   int       `json:"-"`
}

func (u *User) IsAnonymous() bool {
	return u == nil || u.ID == 0
}

type Password struct {
	Plain string `json:"-"`
	hash  []byte `json:"-"`
}

// Token is a bearer access token. Only the sha-256 hash is stored.
type Token struct {
	Plain  string    `json:"token"`
	Hash   []byte    `json:"-"`
	UserID int       `json:"-"`
	Expiry time.Time `json:"expiry"`
}
