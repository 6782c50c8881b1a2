package backend

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenContext(t *testing.T) {
	t.Parallel()

	_, ok := TokenFrom(context.Background())
	assert.False(t, ok)

	_, ok = TokenFrom(WithToken(context.Background(), ""))
	assert.False(t, ok, "empty token is no token")

	token, ok := TokenFrom(WithToken(context.Background(), "abc"))
	assert.True(t, ok)
	assert.Equal(t, "abc", token)
}

func TestRecordClone(t *testing.T) {
	t.Parallel()

	r := Record{FieldID: "1", FieldOwnerID: "u", "title": "x"}
	c := r.Clone()
	c["title"] = "y"

	assert.Equal(t, "x", r["title"])
	assert.Equal(t, "1", c.ID())
	assert.Equal(t, "u", c.OwnerID())
}
