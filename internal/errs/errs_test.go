package errs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsMatchesKind(t *testing.T) {
	t.Parallel()

	cause := errors.New("duplicate slug")
	err := fmt.Errorf("saving post: %w", New(KindWriteError, cause))

	assert.ErrorIs(t, err, WriteError)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, FetchError)
	assert.Equal(t, KindWriteError, KindOf(err))
	assert.Equal(t, KindUnknown, KindOf(cause))
}

func TestUserMessage(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "mailbox full", UserMessage(New(KindDeliveryFailure, errors.New("mailbox full")), "Failed to send code"))
	assert.Equal(t, "Failed to send code", UserMessage(New(KindDeliveryFailure, nil), "Failed to send code"))
	assert.Equal(t, "Something went wrong", UserMessage(errors.New("raw"), "Something went wrong"))
}

func TestErrorString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "invalid_code", InvalidCode.Error())
	assert.Equal(t, "logout_error: timeout", New(KindLogoutError, errors.New("timeout")).Error())
}
