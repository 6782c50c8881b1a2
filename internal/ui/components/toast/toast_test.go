package toast

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T, p Props) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, Toast(p).Render(context.Background(), &buf))
	return buf.String()
}

func TestToast(t *testing.T) {
	t.Parallel()

	t.Run("error variant", func(t *testing.T) {
		out := render(t, Props{Title: "Error", Description: "Slug taken", Variant: VariantError, Icon: true, Dismissible: true})
		assert.Contains(t, out, `data-variant="error"`)
		assert.Contains(t, out, "border-red-500")
		assert.Contains(t, out, `<span class="font-bold" aria-hidden="true">!</span>`)
		assert.Contains(t, out, "data-toast-dismiss")
	})

	t.Run("unset variant uses the default style", func(t *testing.T) {
		out := render(t, Props{Description: "Saved"})
		assert.Contains(t, out, `data-variant="default"`)
		assert.Contains(t, out, "border-zinc-700")
		assert.NotContains(t, out, "aria-hidden")
		assert.NotContains(t, out, "data-toast-dismiss")
		assert.NotContains(t, out, "font-semibold")
	})

	t.Run("escapes text", func(t *testing.T) {
		out := render(t, Props{Title: `"quoted" & <b>`, Description: "<script>"})
		assert.Contains(t, out, "&#34;quoted&#34; &amp; &lt;b&gt;")
		assert.Contains(t, out, "&lt;script&gt;")
		assert.NotContains(t, out, "<script>")
	})
}
