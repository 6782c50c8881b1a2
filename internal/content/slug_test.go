package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"Hello, World! 2024", "hello-world-2024"},
		{"My First Post", "my-first-post"},
		{"  spaced   out  ", "spaced-out"},
		{"already-a-slug", "already-a-slug"},
		{"--dash -- runs--", "dash-runs"},
		{"Café Déjà Vu", "cafe-deja-vu"},
		{"snake_case stays", "snake_case-stays"},
		{"Hello\u00a0World", "hello-world"},
		{"Em\u2003Space", "em-space"},
		{"vertical\vtab", "vertical-tab"},
		{" - leading and trailing - ", "leading-and-trailing"},
		{"!!!", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := Slugify(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, Slugify(got), "idempotent")
		})
	}
}
