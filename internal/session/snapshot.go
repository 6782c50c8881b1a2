package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pixelplaque/pixelplaque/internal/model"
)

var ErrInvalidSnapshot = errors.New("invalid session snapshot")

// SnapshotCodec signs the user half of the session so the cookie cannot be forged
type SnapshotCodec struct {
	secret []byte
	expiry time.Duration
}

func NewSnapshotCodec(secret string, expiry time.Duration) *SnapshotCodec {
	return &SnapshotCodec{secret: []byte(secret), expiry: expiry}
}

type snapshotClaims struct {
	Name        string `json:"name,omitempty"`
	Email       string `json:"email"`
	Created     int64  `json:"created"`
	LastLoginAt int64  `json:"last_login"`
	jwt.RegisteredClaims
}

func (c *SnapshotCodec) Encode(user *model.User) (string, error) {
	now := time.Now()
	claims := snapshotClaims{
		Name:        user.Name,
		Email:       user.Email,
		Created:     user.CreatedAt.Unix(),
		LastLoginAt: user.LastLoginAt.Unix(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.UID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.expiry)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(c.secret)
}

func (c *SnapshotCodec) Decode(value string) (*model.User, error) {
	claims := &snapshotClaims{}
	token, err := jwt.ParseWithClaims(value, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return c.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSnapshot, err)
	}
	if !token.Valid || claims.Subject == "" {
		return nil, ErrInvalidSnapshot
	}

	return &model.User{
		UID:         claims.Subject,
		Name:        claims.Name,
		Email:       claims.Email,
		CreatedAt:   time.Unix(claims.Created, 0),
		LastLoginAt: time.Unix(claims.LastLoginAt, 0),
	}, nil
}
