package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/pixelplaque/pixelplaque/internal/model"
)

var (
	ErrRecordNotFound = errors.New("record not found")
	ErrInvalidSort    = errors.New("invalid sort column")
)

// Sortable columns of the records table
const (
	SortByID        = "id"
	SortByCreatedAt = "created_at"
)

// RecordListOptions selects and orders records of one collection
type RecordListOptions struct {
	SortColumn string // SortByID or SortByCreatedAt
	Descending bool
	Limit      int // <= 0 means no limit
}

type RecordRepository interface {
	List(ctx context.Context, collectionID string, opts RecordListOptions) ([]*model.StoredRecord, error)
	Create(ctx context.Context, record *model.StoredRecord) error
	ByKey(ctx context.Context, collectionID, ownerID, id string) (*model.StoredRecord, error)
	Update(ctx context.Context, record *model.StoredRecord) error
	Delete(ctx context.Context, collectionID, ownerID, id string) error
}

type recordRepository struct {
	db *sqlx.DB
}

func NewRecordRepository(db *sqlx.DB) RecordRepository {
	return &recordRepository{db: db}
}

func (r *recordRepository) List(ctx context.Context, collectionID string, opts RecordListOptions) ([]*model.StoredRecord, error) {
	// Column names cannot be bound as parameters, so only whitelisted values reach the query
	switch opts.SortColumn {
	case SortByID, SortByCreatedAt:
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidSort, opts.SortColumn)
	}

	direction := "ASC"
	if opts.Descending {
		direction = "DESC"
	}

	query := fmt.Sprintf(`SELECT * FROM records WHERE collection_id = $1 ORDER BY %s %s`, opts.SortColumn, direction)
	args := []any{collectionID}
	if opts.Limit > 0 {
		query += ` LIMIT $2`
		args = append(args, opts.Limit)
	}

	records := []*model.StoredRecord{}
	err := r.db.SelectContext(ctx, &records, query, args...)
	if err != nil {
		return nil, err
	}

	return records, nil
}

func (r *recordRepository) Create(ctx context.Context, record *model.StoredRecord) error {
	query := `INSERT INTO records (id, collection_id, owner_id, data, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.ExecContext(ctx, query,
		record.ID,
		record.CollectionID,
		record.OwnerID,
		record.Data,
		record.CreatedAt,
		record.UpdatedAt,
	)

	return err
}

func (r *recordRepository) ByKey(ctx context.Context, collectionID, ownerID, id string) (*model.StoredRecord, error) {
	record := &model.StoredRecord{}
	query := `SELECT * FROM records WHERE collection_id = $1 AND owner_id = $2 AND id = $3`

	err := r.db.GetContext(ctx, record, query, collectionID, ownerID, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRecordNotFound
	}
	if err != nil {
		return nil, err
	}

	return record, nil
}

// Update replaces the data of the record matching collection, owner and id
func (r *recordRepository) Update(ctx context.Context, record *model.StoredRecord) error {
	query := `UPDATE records SET data = $1, updated_at = $2 WHERE collection_id = $3 AND owner_id = $4 AND id = $5`

	result, err := r.db.ExecContext(ctx, query, record.Data, record.UpdatedAt, record.CollectionID, record.OwnerID, record.ID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrRecordNotFound
	}

	return nil
}

func (r *recordRepository) Delete(ctx context.Context, collectionID, ownerID, id string) error {
	query := `DELETE FROM records WHERE collection_id = $1 AND owner_id = $2 AND id = $3`

	result, err := r.db.ExecContext(ctx, query, collectionID, ownerID, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrRecordNotFound
	}

	return nil
}
