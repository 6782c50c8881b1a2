package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pixelplaque/pixelplaque/internal/backend"
	"github.com/pixelplaque/pixelplaque/internal/errs"
	"github.com/pixelplaque/pixelplaque/internal/model"
	"github.com/pixelplaque/pixelplaque/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAuth struct {
	sendErr error
	code    string
	sent    []string
}

var _ backend.Auth = (*fakeAuth)(nil)

func (f *fakeAuth) SendOTP(_ context.Context, email string) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, email)
	return nil
}

func (f *fakeAuth) VerifyOTP(_ context.Context, email, code string) (*backend.Session, error) {
	if code != f.code {
		return nil, errors.New("invalid or expired code")
	}
	return &backend.Session{
		User:  &model.User{UID: "u-1", Email: email},
		Token: "tok",
	}, nil
}

func (f *fakeAuth) Logout(context.Context) error { return nil }

func newFlow(client backend.Auth) (*Flow, *session.Store, *session.MemoryStorage) {
	storage := session.NewMemoryStorage()
	store := session.Load(storage, session.NewSnapshotCodec("secret", time.Hour))
	return LoadFlow(client, store, storage), store, storage
}

func TestFlow_HappyPath(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	flow, store, _ := newFlow(&fakeAuth{code: "123456"})

	assert.Equal(t, StateAwaitingEmail, flow.State())

	require.NoError(t, flow.SubmitEmail(ctx, "admin@example.com"))
	assert.Equal(t, StateAwaitingCode, flow.State())
	assert.Equal(t, "admin@example.com", flow.Email())

	require.NoError(t, flow.SubmitCode(ctx, "admin@example.com", "123456"))
	assert.Equal(t, StateAuthenticated, flow.State())
	require.NotNil(t, store.User())
	assert.Equal(t, "admin@example.com", store.User().Email)
	assert.True(t, store.IsAuthenticated())
}

func TestFlow_WrongCode(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	flow, store, _ := newFlow(&fakeAuth{code: "123456"})

	require.NoError(t, flow.SubmitEmail(ctx, "admin@example.com"))

	err := flow.SubmitCode(ctx, "admin@example.com", "000000")
	assert.ErrorIs(t, err, errs.InvalidCode)
	assert.Equal(t, "invalid or expired code", errs.UserMessage(err, "Invalid code"))
	assert.Equal(t, StateAwaitingCode, flow.State())
	assert.Nil(t, store.User())
	assert.False(t, store.IsAuthenticated())
}

func TestFlow_DeliveryFailure(t *testing.T) {
	t.Parallel()
	flow, _, storage := newFlow(&fakeAuth{sendErr: errors.New("mailbox unavailable")})

	err := flow.SubmitEmail(context.Background(), "admin@example.com")
	assert.ErrorIs(t, err, errs.DeliveryFailure)
	assert.Equal(t, "mailbox unavailable", errs.UserMessage(err, "Failed to send code"))
	assert.Equal(t, StateAwaitingEmail, flow.State())

	_, ok := storage.Get(session.LoginKey)
	assert.False(t, ok)
}

func TestFlow_CodeBeforeEmail(t *testing.T) {
	t.Parallel()
	flow, _, _ := newFlow(&fakeAuth{code: "123456"})

	err := flow.SubmitCode(context.Background(), "admin@example.com", "123456")
	assert.ErrorIs(t, err, ErrWrongState)
	assert.Equal(t, StateAwaitingEmail, flow.State())
}

func TestFlow_ResumesAcrossRequests(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	client := &fakeAuth{code: "123456"}
	flow, store, storage := newFlow(client)

	require.NoError(t, flow.SubmitEmail(ctx, "admin@example.com"))

	resumed := LoadFlow(client, store, storage)
	assert.Equal(t, StateAwaitingCode, resumed.State())
	assert.Equal(t, "admin@example.com", resumed.Email())

	require.NoError(t, resumed.SubmitCode(ctx, resumed.Email(), "123456"))
	assert.Equal(t, StateAwaitingEmail, LoadFlow(client, store, storage).State(), "pending email is cleared")
}

func TestFlow_UseDifferentEmail(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	flow, _, storage := newFlow(&fakeAuth{code: "123456"})

	require.NoError(t, flow.SubmitEmail(ctx, "first@example.com"))
	flow.UseDifferentEmail()

	assert.Equal(t, StateAwaitingEmail, flow.State())
	assert.Empty(t, flow.Email())
	_, ok := storage.Get(session.LoginKey)
	assert.False(t, ok)

	require.NoError(t, flow.SubmitEmail(ctx, "second@example.com"))
	assert.Equal(t, "second@example.com", flow.Email())
}
