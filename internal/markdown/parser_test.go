package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Parallel()
	p := NewParser()

	html, err := p.Parse([]byte("## Hello World\n\nSome **bold** text.\n\n<script>alert(1)</script>"))
	require.NoError(t, err)
	assert.Contains(t, string(html), `<h2 id="hello-world">Hello World</h2>`)
	assert.Contains(t, string(html), "<strong>bold</strong>")
	assert.NotContains(t, string(html), "<script>")
}

func TestParseWithFrontmatter(t *testing.T) {
	t.Parallel()
	p := NewParser()

	html, meta, err := p.ParseWithFrontmatter([]byte("---\ntitle: Privacy Policy\nlastUpdated: 2025-01-15\n---\n\nWe keep little.\n"))
	require.NoError(t, err)
	assert.Equal(t, "Privacy Policy", meta["title"])
	assert.Contains(t, string(html), "We keep little.")
	assert.NotContains(t, string(html), "title:")

	_, meta, err = p.ParseWithFrontmatter([]byte("no frontmatter here"))
	require.NoError(t, err)
	assert.Empty(t, meta)
}
