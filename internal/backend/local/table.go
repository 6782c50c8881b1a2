package local

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pixelplaque/pixelplaque/internal/backend"
	"github.com/pixelplaque/pixelplaque/internal/model"
	"github.com/pixelplaque/pixelplaque/internal/repository"
)

var sortColumns = map[string]string{
	"":                     repository.SortByID,
	backend.FieldID:        repository.SortByID,
	backend.FieldCreatedAt: repository.SortByCreatedAt,
}

type Table struct {
	records  repository.RecordRepository
	sessions repository.SessionRepository
}

var _ backend.Table = (*Table)(nil)

func NewTable(records repository.RecordRepository, sessions repository.SessionRepository) *Table {
	return &Table{records: records, sessions: sessions}
}

// GetItems is public: no session is needed to read a collection
func (t *Table) GetItems(ctx context.Context, collectionID string, q backend.Query) ([]backend.Record, error) {
	column, ok := sortColumns[q.Sort]
	if !ok {
		return nil, fmt.Errorf("%w: %q", backend.ErrUnsupportedSort, q.Sort)
	}

	stored, err := t.records.List(ctx, collectionID, repository.RecordListOptions{
		SortColumn: column,
		Descending: q.Order == backend.OrderDesc,
		Limit:      q.Limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", collectionID, err)
	}

	items := make([]backend.Record, 0, len(stored))
	for _, s := range stored {
		rec, err := toRecord(s)
		if err != nil {
			return nil, err
		}
		items = append(items, rec)
	}
	return items, nil
}

func (t *Table) AddItem(ctx context.Context, collectionID string, item backend.Record) (backend.Record, error) {
	userID, err := t.authorize(ctx, item)
	if err != nil {
		return nil, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate id: %w", err)
	}

	data, err := encodeData(item)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	stored := &model.StoredRecord{
		ID:           id.String(),
		CollectionID: collectionID,
		OwnerID:      userID,
		Data:         data,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	err = t.records.Create(ctx, stored)
	if err != nil {
		return nil, fmt.Errorf("failed to create item: %w", err)
	}

	return toRecord(stored)
}

// UpdateItem merges the given fields into the stored item identified by _uid and _id
func (t *Table) UpdateItem(ctx context.Context, collectionID string, item backend.Record) (backend.Record, error) {
	userID, err := t.authorize(ctx, item)
	if err != nil {
		return nil, err
	}

	stored, err := t.records.ByKey(ctx, collectionID, userID, item.ID())
	if errors.Is(err, repository.ErrRecordNotFound) {
		return nil, backend.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get item: %w", err)
	}

	merged, err := decodeData(stored.Data)
	if err != nil {
		return nil, err
	}
	for k, v := range item {
		merged[k] = v
	}

	stored.Data, err = encodeData(merged)
	if err != nil {
		return nil, err
	}
	stored.UpdatedAt = time.Now().UTC()

	err = t.records.Update(ctx, stored)
	if errors.Is(err, repository.ErrRecordNotFound) {
		return nil, backend.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update item: %w", err)
	}

	return toRecord(stored)
}

func (t *Table) DeleteItem(ctx context.Context, collectionID string, item backend.Record) error {
	userID, err := t.authorize(ctx, item)
	if err != nil {
		return err
	}

	err = t.records.Delete(ctx, collectionID, userID, item.ID())
	if errors.Is(err, repository.ErrRecordNotFound) {
		return backend.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}
	return nil
}

// authorize requires a live session whose user owns the item
func (t *Table) authorize(ctx context.Context, item backend.Record) (string, error) {
	userID, err := authenticate(ctx, t.sessions)
	if err != nil {
		return "", err
	}
	if item.OwnerID() != userID {
		return "", backend.ErrForbidden
	}
	return userID, nil
}

func toRecord(s *model.StoredRecord) (backend.Record, error) {
	rec, err := decodeData(s.Data)
	if err != nil {
		return nil, fmt.Errorf("record %s: %w", s.ID, err)
	}
	rec[backend.FieldID] = s.ID
	rec[backend.FieldOwnerID] = s.OwnerID
	rec[backend.FieldCreatedAt] = s.CreatedAt.UTC().Format(time.RFC3339)
	return rec, nil
}

// encodeData serializes the non-reserved fields
func encodeData(item backend.Record) (string, error) {
	fields := item.Clone()
	delete(fields, backend.FieldID)
	delete(fields, backend.FieldOwnerID)
	delete(fields, backend.FieldCreatedAt)

	b, err := json.Marshal(fields)
	if err != nil {
		return "", fmt.Errorf("failed to encode item: %w", err)
	}
	return string(b), nil
}

func decodeData(data string) (backend.Record, error) {
	rec := backend.Record{}
	err := json.Unmarshal([]byte(data), &rec)
	if err != nil {
		return nil, fmt.Errorf("failed to decode item: %w", err)
	}
	return rec, nil
}
