package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPublicBaseURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cfg  S3Config
		want string
	}{
		{"aws", S3Config{Bucket: "media", Region: "eu-west-1"}, "https://media.s3.eu-west-1.amazonaws.com"},
		{"custom endpoint", S3Config{Bucket: "media", Endpoint: "http://localhost:9000/"}, "http://localhost:9000/media"},
		{"explicit public url", S3Config{Bucket: "media", Endpoint: "http://minio:9000", PublicURL: "https://cdn.example.com/"}, "https://cdn.example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, publicBaseURL(tt.cfg))
		})
	}
}

func TestURL(t *testing.T) {
	t.Parallel()

	s := &S3Storage{publicURL: "https://cdn.example.com"}
	assert.Equal(t, "https://cdn.example.com/public/images/a.png", s.URL("public/images/a.png"))
}
