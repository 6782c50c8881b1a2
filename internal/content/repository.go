// Package content is the generic CRUD layer over backend collections,
// plus the slug and draft/edit composition helpers for the editor views.
package content

import (
	"context"
	"log/slog"

	"github.com/pixelplaque/pixelplaque/internal/backend"
	"github.com/pixelplaque/pixelplaque/internal/errs"
)

const DefaultLimit = 100

// Key addresses one item for update and delete
type Key struct {
	OwnerID string
	ID      string
}

// ListOptions zero values mean: limit 100, sorted by _id, newest first
type ListOptions struct {
	Limit     int
	SortField string
	Order     backend.Order
}

func (o ListOptions) query() backend.Query {
	q := backend.Query{Limit: o.Limit, Sort: o.SortField, Order: o.Order}
	if q.Limit <= 0 {
		q.Limit = DefaultLimit
	}
	if q.Sort == "" {
		q.Sort = backend.FieldID
	}
	return q
}

// Repository is a typed view of one collection. It applies no filtering and
// keeps no state between calls; concurrent writers follow last-write-wins.
type Repository[T any] struct {
	table        backend.Table
	collectionID string
	codec        Codec[T]
}

func NewRepository[T any](table backend.Table, collectionID string, codec Codec[T]) *Repository[T] {
	return &Repository[T]{table: table, collectionID: collectionID, codec: codec}
}

func (r *Repository[T]) List(ctx context.Context, opts ListOptions) ([]T, error) {
	records, err := r.table.GetItems(ctx, r.collectionID, opts.query())
	if err != nil {
		return nil, errs.New(errs.KindFetchError, err)
	}

	items := make([]T, 0, len(records))
	for _, rec := range records {
		item, err := r.codec.Decode(rec)
		if err != nil {
			slog.Warn("skipping undecodable record", "collection", r.collectionID, "id", rec.ID(), "error", err)
			continue
		}
		items = append(items, item)
	}
	return items, nil
}

// Create stores a new item owned by ownerID; the backend assigns the id
func (r *Repository[T]) Create(ctx context.Context, item T, ownerID string) (T, error) {
	rec := r.codec.Encode(item)
	delete(rec, backend.FieldID)
	rec[backend.FieldOwnerID] = ownerID

	return r.write(r.table.AddItem(ctx, r.collectionID, rec))
}

// Update replaces the item's fields; the backend rejects a key that does not match
func (r *Repository[T]) Update(ctx context.Context, key Key, item T) (T, error) {
	rec := r.codec.Encode(item)
	rec[backend.FieldID] = key.ID
	rec[backend.FieldOwnerID] = key.OwnerID

	return r.write(r.table.UpdateItem(ctx, r.collectionID, rec))
}

func (r *Repository[T]) Delete(ctx context.Context, key Key) error {
	err := r.table.DeleteItem(ctx, r.collectionID, backend.Record{
		backend.FieldID:      key.ID,
		backend.FieldOwnerID: key.OwnerID,
	})
	if err != nil {
		return errs.New(errs.KindWriteError, err)
	}
	return nil
}

func (r *Repository[T]) write(rec backend.Record, err error) (T, error) {
	var zero T
	if err != nil {
		return zero, errs.New(errs.KindWriteError, err)
	}
	item, err := r.codec.Decode(rec)
	if err != nil {
		return zero, errs.New(errs.KindWriteError, err)
	}
	return item, nil
}
