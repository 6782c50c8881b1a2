package validation

import (
	"net/mail"
)

// maxEmailLen is the RFC 5321 path limit
const maxEmailLen = 254

var (
	errEmailRequired = &FieldError{Field: "email", Message: "Please enter your email address"}
	errEmailTooLong  = &FieldError{Field: "email", Message: "That email address is too long"}
	errEmailInvalid  = &FieldError{Field: "email", Message: "Please enter a valid email address, like you@example.com"}
)

// ValidateEmail accepts a bare address only. Display-name forms such as
// "Ada <ada@example.com>" parse as RFC 5322 but are rejected here since the
// value is used as a login identity and a reply-to address.
func ValidateEmail(email string) error {
	if email == "" {
		return errEmailRequired
	}
	if len(email) > maxEmailLen {
		return errEmailTooLong
	}

	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Name != "" || addr.Address != email {
		return errEmailInvalid
	}
	return nil
}
