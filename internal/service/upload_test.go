package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pixelplaque/pixelplaque/internal/model"
	"github.com/pixelplaque/pixelplaque/internal/repository"
	"github.com/pixelplaque/pixelplaque/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStorage struct {
	objects map[string][]byte
	types   map[string]string
}

var _ storage.Storage = (*fakeStorage)(nil)

func newFakeStorage() *fakeStorage {
	return &fakeStorage{objects: map[string][]byte{}, types: map[string]string{}}
}

func (f *fakeStorage) Save(_ context.Context, path string, file io.Reader, contentType string) error {
	data, err := io.ReadAll(file)
	if err != nil {
		return err
	}
	f.objects[path] = data
	f.types[path] = contentType
	return nil
}

func (f *fakeStorage) Delete(_ context.Context, path string) error {
	delete(f.objects, path)
	return nil
}

func (f *fakeStorage) URL(path string) string {
	return "https://cdn.test/" + path
}

type fakeUploadRepo struct {
	uploads []*model.Upload
	fail    error
}

var _ repository.UploadRepository = (*fakeUploadRepo)(nil)

func (f *fakeUploadRepo) Create(_ context.Context, upload *model.Upload) error {
	if f.fail != nil {
		return f.fail
	}
	f.uploads = append(f.uploads, upload)
	return nil
}

func (f *fakeUploadRepo) ByID(_ context.Context, id string) (*model.Upload, error) {
	for _, u := range f.uploads {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, repository.ErrUploadNotFound
}

var pngBytes = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01")

func formFile(t *testing.T, name string, data []byte) (multipart.File, *multipart.FileHeader) {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("image", name)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/admin/uploads", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	file, header, err := req.FormFile("image")
	require.NoError(t, err)
	t.Cleanup(func() { _ = file.Close() })
	return file, header
}

func TestUploadService_UploadImage(t *testing.T) {
	t.Parallel()
	store := newFakeStorage()
	repo := &fakeUploadRepo{}
	svc := NewUploadService(repo, store)

	file, header := formFile(t, "Cover.PNG", pngBytes)
	url, err := svc.UploadImage(context.Background(), "user-1", file, header)
	require.NoError(t, err)

	require.Len(t, repo.uploads, 1)
	upload := repo.uploads[0]
	assert.Equal(t, "user-1", upload.UserID)
	assert.Equal(t, "Cover.PNG", upload.OriginalName)
	assert.Equal(t, "image/png", upload.MimeType)
	assert.True(t, strings.HasPrefix(upload.StoragePath, "public/images/"))
	assert.True(t, strings.HasSuffix(upload.StoragePath, ".png"))
	assert.Equal(t, "https://cdn.test/"+upload.StoragePath, url)
	assert.Equal(t, pngBytes, store.objects[upload.StoragePath])
}

func TestUploadService_RejectsNonImage(t *testing.T) {
	t.Parallel()
	store := newFakeStorage()
	svc := NewUploadService(&fakeUploadRepo{}, store)

	file, header := formFile(t, "notes.png", []byte("just some text"))
	_, err := svc.UploadImage(context.Background(), "user-1", file, header)
	assert.Error(t, err)
	assert.Empty(t, store.objects)
}

func TestUploadService_CleansUpWhenRecordFails(t *testing.T) {
	t.Parallel()
	store := newFakeStorage()
	svc := NewUploadService(&fakeUploadRepo{fail: errors.New("disk full")}, store)

	file, header := formFile(t, "cover.png", pngBytes)
	_, err := svc.UploadImage(context.Background(), "user-1", file, header)
	assert.ErrorContains(t, err, "disk full")
	assert.Empty(t, store.objects)
}

func TestUploadService_Disabled(t *testing.T) {
	t.Parallel()
	svc := NewUploadService(&fakeUploadRepo{}, nil)
	assert.False(t, svc.Enabled())

	file, header := formFile(t, "cover.png", pngBytes)
	_, err := svc.UploadImage(context.Background(), "user-1", file, header)
	assert.ErrorIs(t, err, ErrUploadsDisabled)
}
