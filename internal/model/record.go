package model

import (
	"time"
)

// StoredRecord is one row of a generic table collection; Data holds the JSON fields
type StoredRecord struct {
	ID           string    `db:"id"`
	CollectionID string    `db:"collection_id"`
	OwnerID      string    `db:"owner_id"`
	Data         string    `db:"data"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}
