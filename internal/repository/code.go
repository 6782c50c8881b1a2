package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pixelplaque/pixelplaque/internal/model"
)

var (
	ErrCodeNotFound = errors.New("login code not found")
)

type CodeRepository interface {
	Create(ctx context.Context, code *model.OneTimeCode) error
	LiveByEmail(ctx context.Context, email string) ([]*model.OneTimeCode, error)
	Consume(ctx context.Context, id string) (*model.OneTimeCode, error)
	DeleteUnusedByEmail(ctx context.Context, email string) error
}

type codeRepository struct {
	db *sqlx.DB
}

func NewCodeRepository(db *sqlx.DB) CodeRepository {
	return &codeRepository{db: db}
}

func (r *codeRepository) Create(ctx context.Context, code *model.OneTimeCode) error {
	if code.ID == "" {
		code.ID = uuid.New().String()
	}
	if code.CreatedAt.IsZero() {
		code.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO one_time_codes (id, email, code_hash, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.ExecContext(ctx, query,
		code.ID,
		code.Email,
		code.CodeHash,
		code.ExpiresAt.UTC(),
		code.CreatedAt,
	)
	return err
}

// LiveByEmail returns unused, unexpired codes for the email, newest first
func (r *codeRepository) LiveByEmail(ctx context.Context, email string) ([]*model.OneTimeCode, error) {
	codes := []*model.OneTimeCode{}
	query := `
		SELECT * FROM one_time_codes
		WHERE email = $1
		AND used_at IS NULL
		AND expires_at > $2
		ORDER BY created_at DESC
	`

	err := r.db.SelectContext(ctx, &codes, query, email, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	return codes, nil
}

// Consume atomically marks the code as used.
// Of two concurrent verifications only the first succeeds; the other gets ErrCodeNotFound.
func (r *codeRepository) Consume(ctx context.Context, id string) (*model.OneTimeCode, error) {
	var c model.OneTimeCode
	now := time.Now().UTC()

	query := `
		UPDATE one_time_codes
		SET used_at = $1
		WHERE id = $2
		AND used_at IS NULL
		AND expires_at > $3
		RETURNING id, email
	`

	err := r.db.GetContext(ctx, &c, query, now, id, now)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCodeNotFound
	}
	if err != nil {
		return nil, err
	}

	c.UsedAt = &now
	return &c, nil
}

func (r *codeRepository) DeleteUnusedByEmail(ctx context.Context, email string) error {
	query := `DELETE FROM one_time_codes WHERE email = $1 AND used_at IS NULL`
	_, err := r.db.ExecContext(ctx, query, email)
	return err
}
