package session

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pixelplaque/pixelplaque/internal/backend"
	"github.com/pixelplaque/pixelplaque/internal/errs"
	"github.com/pixelplaque/pixelplaque/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAuth struct {
	logoutErr   error
	logoutToken string
}

var _ backend.Auth = (*fakeAuth)(nil)

func (f *fakeAuth) SendOTP(context.Context, string) error { return nil }

func (f *fakeAuth) VerifyOTP(context.Context, string, string) (*backend.Session, error) {
	return nil, errors.New("not used")
}

func (f *fakeAuth) Logout(ctx context.Context) error {
	f.logoutToken, _ = backend.TokenFrom(ctx)
	return f.logoutErr
}

func testCodec() *SnapshotCodec {
	return NewSnapshotCodec("test-secret", time.Hour)
}

func testUser() *model.User {
	return &model.User{UID: "u-1", Email: "admin@example.com", CreatedAt: time.Unix(1700000000, 0)}
}

func TestCheckAuth(t *testing.T) {
	t.Parallel()

	snapshot, err := testCodec().Encode(testUser())
	require.NoError(t, err)

	tests := []struct {
		name     string
		token    bool
		user     bool
		expected bool
	}{
		{"token and user", true, true, true},
		{"token only", true, false, false},
		{"user only", false, true, false},
		{"neither", false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			storage := NewMemoryStorage()
			if tt.token {
				storage.Set(TokenKey, "tok")
			}
			if tt.user {
				storage.Set(SnapshotKey, snapshot)
			}

			store := Load(storage, testCodec())
			assert.Equal(t, tt.expected, store.CheckAuth())
			assert.Equal(t, tt.expected, store.IsAuthenticated())
		})
	}
}

func TestSetUserPersists(t *testing.T) {
	t.Parallel()
	storage := NewMemoryStorage()

	store := Load(storage, testCodec())
	require.NoError(t, store.SetUser(testUser(), "tok"))
	assert.True(t, store.IsAuthenticated())

	reloaded := Load(storage, testCodec())
	require.NotNil(t, reloaded.User())
	assert.Equal(t, "u-1", reloaded.User().UID)
	assert.Equal(t, "admin@example.com", reloaded.User().Email)
	assert.True(t, reloaded.IsAuthenticated())
}

func TestLogout(t *testing.T) {
	t.Parallel()

	t.Run("success", func(t *testing.T) {
		storage := NewMemoryStorage()
		store := Load(storage, testCodec())
		require.NoError(t, store.SetUser(testUser(), "tok"))

		client := &fakeAuth{}
		require.NoError(t, store.Logout(context.Background(), client))
		assert.Equal(t, "tok", client.logoutToken)
		assert.Nil(t, store.User())
		assert.False(t, store.IsAuthenticated())
	})

	t.Run("remote failure still clears local state", func(t *testing.T) {
		storage := NewMemoryStorage()
		store := Load(storage, testCodec())
		require.NoError(t, store.SetUser(testUser(), "tok"))

		err := store.Logout(context.Background(), &fakeAuth{logoutErr: errors.New("network down")})
		assert.ErrorIs(t, err, errs.LogoutError)
		assert.Nil(t, store.User())
		assert.False(t, store.IsAuthenticated())

		_, ok := storage.Get(TokenKey)
		assert.False(t, ok)
		assert.False(t, Load(storage, testCodec()).IsAuthenticated())
	})
}

func TestSnapshotRejectsTampering(t *testing.T) {
	t.Parallel()

	snapshot, err := testCodec().Encode(testUser())
	require.NoError(t, err)

	_, err = NewSnapshotCodec("other-secret", time.Hour).Decode(snapshot)
	assert.ErrorIs(t, err, ErrInvalidSnapshot)

	_, err = testCodec().Decode(snapshot + "x")
	assert.ErrorIs(t, err, ErrInvalidSnapshot)

	expired, err := NewSnapshotCodec("test-secret", -time.Minute).Encode(testUser())
	require.NoError(t, err)
	_, err = testCodec().Decode(expired)
	assert.ErrorIs(t, err, ErrInvalidSnapshot)

	storage := NewMemoryStorage()
	storage.Set(TokenKey, "tok")
	storage.Set(SnapshotKey, "forged")
	assert.False(t, Load(storage, testCodec()).IsAuthenticated())
}

func TestThemeStore(t *testing.T) {
	t.Parallel()
	storage := NewMemoryStorage()

	themes := LoadTheme(storage)
	assert.Equal(t, ThemeDark, themes.Theme(), "dark by default")

	assert.Equal(t, ThemeLight, themes.Toggle())
	assert.Equal(t, ThemeLight, LoadTheme(storage).Theme())

	assert.Equal(t, ThemeDark, themes.Toggle())
	v, _ := storage.Get(ThemeKey)
	assert.Equal(t, "dark", v)
}

func TestCookieStorage(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "a", Value: "from-request"})
	req.AddCookie(&http.Cookie{Name: "b", Value: "doomed"})
	rec := httptest.NewRecorder()

	storage := NewCookieStorage(rec, req, true, time.Hour)

	v, ok := storage.Get("a")
	assert.True(t, ok)
	assert.Equal(t, "from-request", v)

	storage.Set("a", "overlay")
	v, _ = storage.Get("a")
	assert.Equal(t, "overlay", v, "reads see same-request writes")

	storage.Delete("b")
	_, ok = storage.Get("b")
	assert.False(t, ok)

	_, ok = storage.Get("missing")
	assert.False(t, ok)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 2)
	assert.Equal(t, "a", cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)
	assert.True(t, cookies[0].Secure)
	assert.Equal(t, "b", cookies[1].Name)
	assert.Equal(t, -1, cookies[1].MaxAge)
}
