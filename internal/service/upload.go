package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pixelplaque/pixelplaque/internal/model"
	"github.com/pixelplaque/pixelplaque/internal/repository"
	"github.com/pixelplaque/pixelplaque/internal/storage"
	"github.com/pixelplaque/pixelplaque/internal/validation"
)

var ErrUploadsDisabled = errors.New("image uploads are not configured")

// UploadService stores content images and returns their public URL.
// A nil storage disables uploads; content then references external image URLs only.
type UploadService struct {
	repo    repository.UploadRepository
	storage storage.Storage
	now     func() time.Time
}

func NewUploadService(repo repository.UploadRepository, storage storage.Storage) *UploadService {
	return &UploadService{
		repo:    repo,
		storage: storage,
		now:     time.Now,
	}
}

func (s *UploadService) Enabled() bool {
	return s.storage != nil
}

// UploadImage validates the image, stores it under public/images/ and records who uploaded it
func (s *UploadService) UploadImage(ctx context.Context, userID string, file multipart.File, header *multipart.FileHeader) (string, error) {
	if !s.Enabled() {
		return "", ErrUploadsDisabled
	}

	err := validation.ValidateFile(header, validation.ImageConstraints)
	if err != nil {
		return "", &validation.FieldError{Field: "file", Message: err.Error()}
	}

	// Sniff from the stream itself; the client-supplied header is not trusted
	head := make([]byte, 512)
	n, _ := file.Read(head)
	mimeType := http.DetectContentType(head[:n])
	_, err = file.Seek(0, io.SeekStart)
	if err != nil {
		return "", fmt.Errorf("failed to rewind upload: %w", err)
	}

	id := uuid.New().String()
	ext := strings.ToLower(filepath.Ext(header.Filename))
	filename := id + ext
	path := "public/images/" + filename

	err = s.storage.Save(ctx, path, file, mimeType)
	if err != nil {
		return "", fmt.Errorf("failed to store image: %w", err)
	}

	upload := &model.Upload{
		ID:           id,
		UserID:       userID,
		Filename:     filename,
		OriginalName: header.Filename,
		MimeType:     mimeType,
		Size:         header.Size,
		StoragePath:  path,
		CreatedAt:    s.now().UTC(),
	}
	err = s.repo.Create(ctx, upload)
	if err != nil {
		cleanupErr := s.storage.Delete(ctx, path)
		if cleanupErr != nil {
			slog.Error("failed to clean up orphaned image", "path", path, "error", cleanupErr)
		}
		return "", fmt.Errorf("failed to record upload: %w", err)
	}

	slog.Info("image uploaded", "upload_id", id, "user_id", userID, "size", header.Size)
	return s.storage.URL(path), nil
}
