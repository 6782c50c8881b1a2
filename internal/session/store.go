// Package session holds the per-request client state: who is signed in,
// with which token, and the chosen theme.
package session

import (
	"context"
	"log/slog"

	"github.com/pixelplaque/pixelplaque/internal/backend"
	"github.com/pixelplaque/pixelplaque/internal/errs"
	"github.com/pixelplaque/pixelplaque/internal/model"
)

// Persisted keys
const (
	TokenKey    = "pixelplaque-sid"
	SnapshotKey = "pixelplaque-auth"
	ThemeKey    = "pixelplaque-theme"
	LoginKey    = "pixelplaque-login"
)

// Store is loaded at the start of a request and writes through on every mutation
type Store struct {
	storage Storage
	codec   *SnapshotCodec
	user    *model.User
}

// Load rehydrates the store; an unreadable snapshot means no user
func Load(storage Storage, codec *SnapshotCodec) *Store {
	s := &Store{storage: storage, codec: codec}

	raw, ok := storage.Get(SnapshotKey)
	if !ok {
		return s
	}
	user, err := codec.Decode(raw)
	if err != nil {
		slog.Debug("discarding session snapshot", "error", err)
		return s
	}
	s.user = user
	return s
}

func (s *Store) User() *model.User { return s.user }

// Token returns the persisted session token, if any
func (s *Store) Token() (string, bool) {
	return s.storage.Get(TokenKey)
}

func (s *Store) SetUser(user *model.User, token string) error {
	snapshot, err := s.codec.Encode(user)
	if err != nil {
		return err
	}
	s.storage.Set(TokenKey, token)
	s.storage.Set(SnapshotKey, snapshot)
	s.user = user
	return nil
}

// CheckAuth reports token present AND user present. It never calls the backend.
func (s *Store) CheckAuth() bool {
	_, hasToken := s.Token()
	return hasToken && s.user != nil
}

func (s *Store) IsAuthenticated() bool { return s.CheckAuth() }

// WithToken attaches the session token to ctx for backend writes
func (s *Store) WithToken(ctx context.Context) context.Context {
	token, ok := s.Token()
	if !ok {
		return ctx
	}
	return backend.WithToken(ctx, token)
}

// Logout ends the remote session, then clears local state whatever the outcome.
// A remote failure is returned as errs.LogoutError for the caller to log.
func (s *Store) Logout(ctx context.Context, client backend.Auth) error {
	remoteErr := client.Logout(s.WithToken(ctx))

	s.clear()

	if remoteErr != nil {
		return errs.New(errs.KindLogoutError, remoteErr)
	}
	return nil
}

func (s *Store) clear() {
	s.storage.Delete(TokenKey)
	s.storage.Delete(SnapshotKey)
	s.user = nil
}
