package validation

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheck(t *testing.T) {
	t.Parallel()

	t.Run("valid form", func(t *testing.T) {
		var c Check
		c.Required("title", "Title", "Launch site", 200)
		c.URL("image", "Image URL", "https://example.com/a.png", true)
		c.URL("liveUrl", "Live URL", "", false)
		c.Date("completionDate", "Completion date", "2024-03-15")
		c.Email("email", "hi@example.com")
		c.OneOf("category", "Category", true)
		assert.NoError(t, c.Err())
	})

	t.Run("collects every failure, reports the first", func(t *testing.T) {
		var c Check
		c.Required("title", "Title", "   ", 0)
		c.Required("client", "Client", "abcdef", 3)
		c.URL("image", "Image URL", "ftp://example.com/a.png", true)
		c.URL("liveUrl", "Live URL", "", true)
		c.Date("completionDate", "Completion date", "15/03/2024")
		c.Email("email", "nope")
		c.OneOf("category", "Category", false)

		require.Len(t, c.Errors(), 7)
		assert.EqualError(t, c.Err(), "Title is required")
		assert.Equal(t, "Client is too long (max 3 characters)", c.Errors()[1].Message)
		assert.Equal(t, "image", c.Errors()[2].Field)
	})
}

func TestValidateEmail(t *testing.T) {
	t.Parallel()

	tests := []struct {
		email   string
		message string
	}{
		{"admin@example.com", ""},
		{"", "Please enter your email address"},
		{"not-an-email", "Please enter a valid email address, like you@example.com"},
		{"Ada <ada@example.com>", "Please enter a valid email address, like you@example.com"},
		{strings.Repeat("a", 250) + "@x.io", "That email address is too long"},
	}

	for _, tt := range tests {
		err := ValidateEmail(tt.email)
		if tt.message == "" {
			assert.NoError(t, err, tt.email)
			continue
		}
		var fe *FieldError
		require.ErrorAs(t, err, &fe, tt.email)
		assert.Equal(t, "email", fe.Field)
		assert.Equal(t, tt.message, fe.Message)
	}
}

// multipartFile builds a FileHeader the way a browser upload would
func multipartFile(t *testing.T, name string, content []byte) *multipart.FileHeader {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("file", name)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))
	return req.MultipartForm.File["file"][0]
}

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func TestValidateFile(t *testing.T) {
	t.Parallel()

	assert.NoError(t, ValidateFile(multipartFile(t, "cover.png", pngHeader), ImageConstraints))
	assert.ErrorContains(t, ValidateFile(multipartFile(t, "cover.png", []byte("plain text")), ImageConstraints), "invalid file type")
	assert.ErrorContains(t, ValidateFile(multipartFile(t, "cover.gif", pngHeader), ImageConstraints), "invalid file extension")
	assert.Error(t, ValidateFile(multipartFile(t, "cover.png", pngHeader)))
}
