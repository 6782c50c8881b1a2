package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/pixelplaque/pixelplaque/internal/model"
)

var (
	ErrUploadNotFound = errors.New("upload not found")
)

type UploadRepository interface {
	Create(ctx context.Context, upload *model.Upload) error
	ByID(ctx context.Context, id string) (*model.Upload, error)
}

type uploadRepository struct {
	db *sqlx.DB
}

func NewUploadRepository(db *sqlx.DB) UploadRepository {
	return &uploadRepository{db: db}
}

func (r *uploadRepository) Create(ctx context.Context, upload *model.Upload) error {
	query := `INSERT INTO uploads (id, user_id, filename, original_name, mime_type, size, storage_path, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.ExecContext(ctx, query,
		upload.ID,
		upload.UserID,
		upload.Filename,
		upload.OriginalName,
		upload.MimeType,
		upload.Size,
		upload.StoragePath,
		upload.CreatedAt,
	)

	return err
}

func (r *uploadRepository) ByID(ctx context.Context, id string) (*model.Upload, error) {
	upload := &model.Upload{}
	query := `SELECT * FROM uploads WHERE id = $1`

	err := r.db.GetContext(ctx, upload, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUploadNotFound
	}
	if err != nil {
		return nil, err
	}

	return upload, nil
}
