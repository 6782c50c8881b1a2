package ui

import (
	"net/http/httptest"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
)

func TestRenderOOB(t *testing.T) {
	t.Parallel()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/", nil)

	RenderOOB(rec, req, templ.Raw("saved"), "beforeend:#toast-container")
	assert.Equal(t, `<div hx-swap-oob="beforeend:#toast-container">saved</div>`, rec.Body.String())
}

func TestClass(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "bg-red-500 px-2", Class("px-4 bg-red-500", "px-2"))
}
