package local

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pixelplaque/pixelplaque/internal/backend"
	"github.com/pixelplaque/pixelplaque/internal/db"
	"github.com/pixelplaque/pixelplaque/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"
)

type fakeSender struct {
	mu    sync.Mutex
	codes map[string]string
	err   error
}

var _ CodeSender = (*fakeSender)(nil)

func (f *fakeSender) SendLoginCode(_ context.Context, email, code string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	if f.codes == nil {
		f.codes = map[string]string{}
	}
	f.codes[email] = code
	return nil
}

func (f *fakeSender) last(email string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.codes[email]
}

type fixture struct {
	auth   *Auth
	table  *Table
	sender *fakeSender
	codes  repository.CodeRepository
}

func newFixture(t *testing.T, opts AuthOptions) *fixture {
	t.Helper()

	conn, err := sqlx.Connect("sqlite", ":memory:")
	require.NoError(t, err)
	conn.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = conn.Close() })
	require.NoError(t, db.RunMigrations(conn.DB, "sqlite"))

	if opts.CodeExpiry == 0 {
		opts.CodeExpiry = 10 * time.Minute
	}
	if opts.SessionExpiry == 0 {
		opts.SessionExpiry = time.Hour
	}
	opts.BcryptCost = bcrypt.MinCost

	sender := &fakeSender{}
	codes := repository.NewCodeRepository(conn)
	sessions := repository.NewSessionRepository(conn)
	return &fixture{
		auth:   NewAuth(repository.NewUserRepository(conn), codes, sessions, sender, opts),
		table:  NewTable(repository.NewRecordRepository(conn), sessions),
		sender: sender,
		codes:  codes,
	}
}

// login runs the full code exchange and returns a ctx carrying the session token
func (f *fixture) login(t *testing.T, email string) (context.Context, *backend.Session) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, f.auth.SendOTP(ctx, email))
	sess, err := f.auth.VerifyOTP(ctx, email, f.sender.last(email))
	require.NoError(t, err)
	return backend.WithToken(ctx, sess.Token), sess
}

func TestAuth_SendAndVerify(t *testing.T) {
	t.Parallel()
	f := newFixture(t, AuthOptions{OpenSignup: true})
	ctx := context.Background()

	require.NoError(t, f.auth.SendOTP(ctx, "  Admin@Example.com "))
	code := f.sender.last("admin@example.com")
	require.Len(t, code, codeDigits)

	_, err := f.auth.VerifyOTP(ctx, "admin@example.com", "not-it")
	assert.ErrorIs(t, err, ErrInvalidCode)

	sess, err := f.auth.VerifyOTP(ctx, "admin@example.com", code)
	require.NoError(t, err)
	assert.NotEmpty(t, sess.Token)
	assert.Equal(t, "admin@example.com", sess.User.Email)
	assert.NotEmpty(t, sess.User.UID)

	_, err = f.auth.VerifyOTP(ctx, "admin@example.com", code)
	assert.ErrorIs(t, err, ErrInvalidCode, "a code is consumed once")
}

func TestAuth_SameUserAcrossLogins(t *testing.T) {
	t.Parallel()
	f := newFixture(t, AuthOptions{OpenSignup: true})

	_, first := f.login(t, "admin@example.com")
	_, second := f.login(t, "admin@example.com")

	assert.Equal(t, first.User.UID, second.User.UID)
	assert.NotEqual(t, first.Token, second.Token)
}

func TestAuth_NewCodeReplacesOld(t *testing.T) {
	t.Parallel()
	f := newFixture(t, AuthOptions{OpenSignup: true})
	ctx := context.Background()

	require.NoError(t, f.auth.SendOTP(ctx, "a@example.com"))
	old := f.sender.last("a@example.com")
	require.NoError(t, f.auth.SendOTP(ctx, "a@example.com"))
	fresh := f.sender.last("a@example.com")

	if old != fresh {
		_, err := f.auth.VerifyOTP(ctx, "a@example.com", old)
		assert.ErrorIs(t, err, ErrInvalidCode)
	}
	_, err := f.auth.VerifyOTP(ctx, "a@example.com", fresh)
	assert.NoError(t, err)
}

func TestAuth_ExpiredCode(t *testing.T) {
	t.Parallel()
	f := newFixture(t, AuthOptions{CodeExpiry: -time.Second, OpenSignup: true})
	ctx := context.Background()

	require.NoError(t, f.auth.SendOTP(ctx, "a@example.com"))
	_, err := f.auth.VerifyOTP(ctx, "a@example.com", f.sender.last("a@example.com"))
	assert.ErrorIs(t, err, ErrInvalidCode)
}

func TestAuth_SendOTPRejections(t *testing.T) {
	t.Parallel()
	f := newFixture(t, AuthOptions{AllowedEmails: []string{"owner@example.com"}})
	ctx := context.Background()

	assert.ErrorIs(t, f.auth.SendOTP(ctx, "not-an-email"), ErrInvalidEmail)
	assert.ErrorIs(t, f.auth.SendOTP(ctx, "stranger@example.com"), ErrEmailNotAllowed)
	assert.NoError(t, f.auth.SendOTP(ctx, "Owner@Example.com"))

	f.sender.err = errors.New("smtp down")
	assert.ErrorIs(t, f.auth.SendOTP(ctx, "owner@example.com"), ErrSendFailed)
}

func TestAuth_EmptyAllowlistIsClosed(t *testing.T) {
	t.Parallel()
	f := newFixture(t, AuthOptions{})
	ctx := context.Background()

	assert.ErrorIs(t, f.auth.SendOTP(ctx, "stranger@example.com"), ErrEmailNotAllowed)
	assert.Empty(t, f.sender.last("stranger@example.com"), "no code is sent")

	_, err := f.auth.VerifyOTP(ctx, "stranger@example.com", "123456")
	assert.ErrorIs(t, err, ErrInvalidCode)
}

func TestAuth_Logout(t *testing.T) {
	t.Parallel()
	f := newFixture(t, AuthOptions{OpenSignup: true})
	ctx, sess := f.login(t, "a@example.com")

	require.NoError(t, f.auth.Logout(ctx))
	assert.ErrorIs(t, f.auth.Logout(ctx), backend.ErrUnauthorized, "session is gone")
	assert.ErrorIs(t, f.auth.Logout(context.Background()), backend.ErrUnauthorized)

	_, err := f.table.AddItem(ctx, "posts", backend.Record{backend.FieldOwnerID: sess.User.UID})
	assert.ErrorIs(t, err, backend.ErrUnauthorized)
}

func TestTable_Ownership(t *testing.T) {
	t.Parallel()
	f := newFixture(t, AuthOptions{OpenSignup: true})
	aliceCtx, alice := f.login(t, "alice@example.com")
	bobCtx, bob := f.login(t, "bob@example.com")

	_, err := f.table.AddItem(context.Background(), "posts", backend.Record{backend.FieldOwnerID: alice.User.UID})
	assert.ErrorIs(t, err, backend.ErrUnauthorized, "writes need a session")

	_, err = f.table.AddItem(bobCtx, "posts", backend.Record{backend.FieldOwnerID: alice.User.UID})
	assert.ErrorIs(t, err, backend.ErrForbidden)

	created, err := f.table.AddItem(aliceCtx, "posts", backend.Record{
		backend.FieldOwnerID: alice.User.UID,
		"title":              "Hello",
		"slug":               "hello",
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID())

	// Bob cannot touch Alice's item, neither as himself nor by claiming her uid
	_, err = f.table.UpdateItem(bobCtx, "posts", backend.Record{backend.FieldID: created.ID(), backend.FieldOwnerID: bob.User.UID, "title": "pwned"})
	assert.ErrorIs(t, err, backend.ErrNotFound)
	_, err = f.table.UpdateItem(bobCtx, "posts", backend.Record{backend.FieldID: created.ID(), backend.FieldOwnerID: alice.User.UID, "title": "pwned"})
	assert.ErrorIs(t, err, backend.ErrForbidden)
	assert.ErrorIs(t, f.table.DeleteItem(bobCtx, "posts", backend.Record{backend.FieldID: created.ID(), backend.FieldOwnerID: bob.User.UID}), backend.ErrNotFound)

	updated, err := f.table.UpdateItem(aliceCtx, "posts", backend.Record{backend.FieldID: created.ID(), backend.FieldOwnerID: alice.User.UID, "title": "Hello again"})
	require.NoError(t, err)
	assert.Equal(t, "Hello again", updated["title"])
	assert.Equal(t, "hello", updated["slug"], "update merges fields")

	require.NoError(t, f.table.DeleteItem(aliceCtx, "posts", created))
	items, err := f.table.GetItems(context.Background(), "posts", backend.Query{})
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestTable_GetItemsSortAndLimit(t *testing.T) {
	t.Parallel()
	f := newFixture(t, AuthOptions{OpenSignup: true})
	ctx, sess := f.login(t, "a@example.com")

	var ids []string
	for _, title := range []string{"one", "two", "three"} {
		rec, err := f.table.AddItem(ctx, "posts", backend.Record{backend.FieldOwnerID: sess.User.UID, "title": title})
		require.NoError(t, err)
		ids = append(ids, rec.ID())
	}

	// Reads are public
	items, err := f.table.GetItems(context.Background(), "posts", backend.Query{Limit: 2, Sort: backend.FieldID, Order: backend.OrderDesc})
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, ids[2], items[0].ID(), "UUIDv7 ids sort by creation")
	assert.Equal(t, "three", items[0]["title"])
	assert.Equal(t, sess.User.UID, items[0].OwnerID())

	items, err = f.table.GetItems(context.Background(), "posts", backend.Query{Sort: backend.FieldCreatedAt, Order: backend.OrderAsc})
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "one", items[0]["title"])

	_, err = f.table.GetItems(context.Background(), "posts", backend.Query{Sort: "title"})
	assert.ErrorIs(t, err, backend.ErrUnsupportedSort)

	items, err = f.table.GetItems(context.Background(), "empty", backend.Query{})
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}
