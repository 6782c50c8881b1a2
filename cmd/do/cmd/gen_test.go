package cmd

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerators(t *testing.T) {
	var names []string
	for _, g := range generators() {
		names = append(names, g.name)
		assert.NotEmpty(t, g.install, g.name)
	}
	assert.Equal(t, []string{"tailwindcss", "templ"}, names)
}

func TestSkipTempl(t *testing.T) {
	t.Chdir(t.TempDir())
	dir := filepath.Join("internal", "ui", "pages")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	src := filepath.Join(dir, "home.templ")
	out := filepath.Join(dir, "home_templ.go")

	require.NoError(t, os.WriteFile(src, []byte("package pages\n"), 0o644))
	assert.False(t, skipTempl(), "missing output")

	require.NoError(t, os.WriteFile(out, []byte("package pages\n"), 0o644))
	old := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(src, old, old))
	assert.True(t, skipTempl(), "output newer than source")

	require.NoError(t, os.Chtimes(src, time.Now().Add(time.Hour), time.Now().Add(time.Hour)))
	assert.False(t, skipTempl(), "source edited after generation")
}
