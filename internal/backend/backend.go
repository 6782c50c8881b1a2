// Package backend defines the collaborator contracts behind which all
// persistence, authentication and query logic lives.
package backend

import (
	"context"
	"errors"

	"github.com/pixelplaque/pixelplaque/internal/model"
)

// Reserved record fields
const (
	FieldID        = "_id"
	FieldOwnerID   = "_uid"
	FieldCreatedAt = "_createdAt"
)

var (
	ErrUnauthorized    = errors.New("no valid session")
	ErrForbidden       = errors.New("not the owner of this item")
	ErrNotFound        = errors.New("item not found")
	ErrUnsupportedSort = errors.New("unsupported sort field")
)

// Record is one item of a collection as the table API sees it: flat string fields
// plus the reserved _id and _uid keys.
type Record map[string]string

func (r Record) ID() string      { return r[FieldID] }
func (r Record) OwnerID() string { return r[FieldOwnerID] }

// Clone returns a shallow copy safe to mutate
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

type Order int

const (
	OrderDesc Order = iota
	OrderAsc
)

func (o Order) String() string {
	if o == OrderAsc {
		return "asc"
	}
	return "desc"
}

// Query parameters for GetItems
type Query struct {
	Limit int
	Sort  string
	Order Order
}

// Session is the result of a successful code verification
type Session struct {
	User  *model.User
	Token string
}

// Auth is the email one-time-code authentication collaborator
type Auth interface {
	SendOTP(ctx context.Context, email string) error
	VerifyOTP(ctx context.Context, email, code string) (*Session, error)
	// Logout ends the session whose token is attached to ctx
	Logout(ctx context.Context) error
}

// Table is the collection CRUD collaborator. Reads are public; writes
// require a session token on ctx and a matching _uid.
type Table interface {
	GetItems(ctx context.Context, collectionID string, q Query) ([]Record, error)
	AddItem(ctx context.Context, collectionID string, item Record) (Record, error)
	UpdateItem(ctx context.Context, collectionID string, item Record) (Record, error)
	DeleteItem(ctx context.Context, collectionID string, item Record) error
}

type tokenKey struct{}

// WithToken attaches a session token to ctx for authenticated collaborator calls
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

func TokenFrom(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(tokenKey{}).(string)
	return token, ok && token != ""
}
