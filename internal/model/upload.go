package model

import (
	"time"
)

// Upload is an image stored in object storage for use in content items
type Upload struct {
	ID           string    `db:"id"`
	UserID       string    `db:"user_id"` // Who uploaded it
	Filename     string    `db:"filename"`
	OriginalName string    `db:"original_name"`
	MimeType     string    `db:"mime_type"`
	Size         int64     `db:"size"`
	StoragePath  string    `db:"storage_path"`
	CreatedAt    time.Time `db:"created_at"`
}
