// Package local is the self-hosted implementation of the backend contracts,
// built on the SQL repositories.
package local

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pixelplaque/pixelplaque/internal/backend"
	"github.com/pixelplaque/pixelplaque/internal/model"
	"github.com/pixelplaque/pixelplaque/internal/repository"
	"github.com/pixelplaque/pixelplaque/internal/validation"
	"golang.org/x/crypto/bcrypt"
)

// Messages here reach the login page verbatim
var (
	ErrInvalidEmail    = errors.New("please enter a valid email address")
	ErrEmailNotAllowed = errors.New("this email address is not allowed to sign in")
	ErrInvalidCode     = errors.New("invalid or expired code")
	ErrSendFailed      = errors.New("could not send the code, please try again")
)

const codeDigits = 6

// CodeSender delivers a login code to an email address
type CodeSender interface {
	SendLoginCode(ctx context.Context, email, code string) error
}

type AuthOptions struct {
	CodeExpiry    time.Duration
	SessionExpiry time.Duration
	AllowedEmails []string
	OpenSignup    bool // With no AllowedEmails, any address may sign in; otherwise nobody can
	BcryptCost    int      // 0 = bcrypt.DefaultCost
}

type Auth struct {
	users    repository.UserRepository
	codes    repository.CodeRepository
	sessions repository.SessionRepository
	sender   CodeSender
	opts     AuthOptions
}

var _ backend.Auth = (*Auth)(nil)

func NewAuth(
	users repository.UserRepository,
	codes repository.CodeRepository,
	sessions repository.SessionRepository,
	sender CodeSender,
	opts AuthOptions,
) *Auth {
	if opts.BcryptCost == 0 {
		opts.BcryptCost = bcrypt.DefaultCost
	}
	return &Auth{
		users:    users,
		codes:    codes,
		sessions: sessions,
		sender:   sender,
		opts:     opts,
	}
}

func normalizeEmail(email string) string {
	return strings.TrimSpace(strings.ToLower(email))
}

func (a *Auth) SendOTP(ctx context.Context, email string) error {
	email = normalizeEmail(email)

	err := validation.ValidateEmail(email)
	if err != nil {
		return ErrInvalidEmail
	}

	if !a.allowed(email) {
		slog.Warn("login code requested for email outside allowlist", "email", email)
		return ErrEmailNotAllowed
	}

	// Only the newest code is ever valid
	err = a.codes.DeleteUnusedByEmail(ctx, email)
	if err != nil {
		slog.Warn("failed to delete old login codes", "error", err, "email", email)
	}

	code, err := generateCode()
	if err != nil {
		return fmt.Errorf("failed to generate code: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(code), a.opts.BcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash code: %w", err)
	}

	err = a.codes.Create(ctx, &model.OneTimeCode{
		Email:     email,
		CodeHash:  string(hash),
		ExpiresAt: time.Now().Add(a.opts.CodeExpiry),
	})
	if err != nil {
		return fmt.Errorf("failed to store code: %w", err)
	}

	err = a.sender.SendLoginCode(ctx, email, code)
	if err != nil {
		slog.Error("failed to send login code", "error", err, "email", email)
		return ErrSendFailed
	}

	slog.Info("login code sent", "email", email)
	return nil
}

func (a *Auth) allowed(email string) bool {
	if len(a.opts.AllowedEmails) == 0 {
		return a.opts.OpenSignup
	}
	return slices.Contains(a.opts.AllowedEmails, email)
}

func (a *Auth) VerifyOTP(ctx context.Context, email, code string) (*backend.Session, error) {
	email = normalizeEmail(email)
	code = strings.TrimSpace(code)

	codes, err := a.codes.LiveByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to load codes: %w", err)
	}

	var match *model.OneTimeCode
	for _, c := range codes {
		if bcrypt.CompareHashAndPassword([]byte(c.CodeHash), []byte(code)) == nil {
			match = c
			break
		}
	}
	if match == nil {
		return nil, ErrInvalidCode
	}

	// Consume atomically; a concurrent verification of the same code loses here
	_, err = a.codes.Consume(ctx, match.ID)
	if errors.Is(err, repository.ErrCodeNotFound) {
		return nil, ErrInvalidCode
	}
	if err != nil {
		return nil, fmt.Errorf("failed to consume code: %w", err)
	}

	user, err := a.userForEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	token, err := generateToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	err = a.sessions.Create(ctx, &model.Session{
		UserID:    user.UID,
		TokenHash: hashToken(token),
		ExpiresAt: time.Now().Add(a.opts.SessionExpiry),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	slog.Info("user authenticated via login code", "user_id", user.UID, "email", user.Email)
	return &backend.Session{User: user, Token: token}, nil
}

// userForEmail returns the user for the email, creating it on first login
func (a *Auth) userForEmail(ctx context.Context, email string) (*model.User, error) {
	now := time.Now().UTC()

	user, err := a.users.ByEmail(ctx, email)
	if errors.Is(err, repository.ErrUserNotFound) {
		user = &model.User{
			UID:         uuid.New().String(),
			Email:       email,
			CreatedAt:   now,
			LastLoginAt: now,
		}
		err = a.users.Create(ctx, user)
		if err != nil {
			return nil, fmt.Errorf("failed to create user: %w", err)
		}
		slog.Info("new user created", "email", email, "user_id", user.UID)
		return user, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	err = a.users.UpdateLastLogin(ctx, user.UID, now)
	if err != nil {
		slog.Warn("failed to update last login", "error", err, "user_id", user.UID)
	} else {
		user.LastLoginAt = now
	}
	return user, nil
}

func (a *Auth) Logout(ctx context.Context) error {
	token, ok := backend.TokenFrom(ctx)
	if !ok {
		return backend.ErrUnauthorized
	}

	err := a.sessions.DeleteByTokenHash(ctx, hashToken(token))
	if errors.Is(err, repository.ErrSessionNotFound) {
		return backend.ErrUnauthorized
	}
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// authenticate resolves the session token on ctx to a user id
func authenticate(ctx context.Context, sessions repository.SessionRepository) (string, error) {
	token, ok := backend.TokenFrom(ctx)
	if !ok {
		return "", backend.ErrUnauthorized
	}

	session, err := sessions.LiveByTokenHash(ctx, hashToken(token))
	if errors.Is(err, repository.ErrSessionNotFound) {
		return "", backend.ErrUnauthorized
	}
	if err != nil {
		return "", fmt.Errorf("failed to load session: %w", err)
	}
	return session.UserID, nil
}

func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", codeDigits, n.Int64()), nil
}

func generateToken() (string, error) {
	bytes := make([]byte, 32)
	_, err := rand.Read(bytes)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}

// hashToken is what the sessions table stores; the raw token only lives in the client cookie
func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
