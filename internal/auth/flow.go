// Package auth drives the email one-time-code sign-in.
package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/pixelplaque/pixelplaque/internal/backend"
	"github.com/pixelplaque/pixelplaque/internal/errs"
	"github.com/pixelplaque/pixelplaque/internal/session"
)

type State int

const (
	StateAwaitingEmail State = iota
	StateAwaitingCode
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateAwaitingCode:
		return "awaiting_code"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "awaiting_email"
	}
}

var ErrWrongState = errors.New("operation not valid in current login state")

// Flow is the sign-in state machine:
// AwaitingEmail -> AwaitingCode -> Authenticated, with AwaitingCode -> AwaitingEmail
// through UseDifferentEmail. The pending email is persisted so the flow can
// resume across requests.
type Flow struct {
	client  backend.Auth
	store   *session.Store
	storage session.Storage
	state   State
	email   string
}

// LoadFlow resumes the flow from storage
func LoadFlow(client backend.Auth, store *session.Store, storage session.Storage) *Flow {
	f := &Flow{client: client, store: store, storage: storage}
	if email, ok := storage.Get(session.LoginKey); ok {
		f.state = StateAwaitingCode
		f.email = email
	}
	return f
}

func (f *Flow) State() State { return f.state }

// Email is the address a code was sent to, while awaiting the code
func (f *Flow) Email() string { return f.email }

// SubmitEmail asks the backend to send a code. On failure the flow stays put
// and the error is an errs.DeliveryFailure.
func (f *Flow) SubmitEmail(ctx context.Context, email string) error {
	if f.state == StateAuthenticated {
		return ErrWrongState
	}

	err := f.client.SendOTP(ctx, email)
	if err != nil {
		return errs.New(errs.KindDeliveryFailure, err)
	}

	f.state = StateAwaitingCode
	f.email = email
	f.storage.Set(session.LoginKey, email)
	return nil
}

// SubmitCode verifies the code. On success the session store holds the user
// and token; on failure nothing changes and the error is an errs.InvalidCode.
func (f *Flow) SubmitCode(ctx context.Context, email, code string) error {
	if f.state != StateAwaitingCode {
		return ErrWrongState
	}

	sess, err := f.client.VerifyOTP(ctx, email, code)
	if err != nil {
		return errs.New(errs.KindInvalidCode, err)
	}

	err = f.store.SetUser(sess.User, sess.Token)
	if err != nil {
		return fmt.Errorf("failed to persist session: %w", err)
	}

	f.state = StateAuthenticated
	f.email = ""
	f.storage.Delete(session.LoginKey)
	return nil
}

// UseDifferentEmail abandons the pending code
func (f *Flow) UseDifferentEmail() {
	if f.state != StateAwaitingCode {
		return
	}
	f.state = StateAwaitingEmail
	f.email = ""
	f.storage.Delete(session.LoginKey)
}
