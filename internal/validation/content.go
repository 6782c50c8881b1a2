package validation

import (
	"fmt"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"
)

// FieldError is a validation failure of one form field
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return e.Message
}

// Check collects field errors of a submitted form. Only the input layer
// validates; repositories store what they are given.
type Check struct {
	errs []*FieldError
}

func (c *Check) add(field, format string, args ...any) {
	c.errs = append(c.errs, &FieldError{Field: field, Message: fmt.Sprintf(format, args...)})
}

// Required rejects blank values and values longer than max runes (max <= 0 = no limit)
func (c *Check) Required(field, label, value string, max int) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		c.add(field, "%s is required", label)
		return
	}
	if max > 0 && utf8.RuneCountInString(trimmed) > max {
		c.add(field, "%s is too long (max %d characters)", label, max)
	}
}

// URL accepts absolute http(s) URLs; an empty value passes unless required
func (c *Check) URL(field, label, value string, required bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		if required {
			c.add(field, "%s is required", label)
		}
		return
	}
	u, err := url.Parse(value)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		c.add(field, "%s must be a valid URL", label)
	}
}

// Date requires a YYYY-MM-DD calendar date
func (c *Check) Date(field, label, value string) {
	_, err := time.Parse(time.DateOnly, strings.TrimSpace(value))
	if err != nil {
		c.add(field, "%s must be a date (YYYY-MM-DD)", label)
	}
}

// Email reuses ValidateEmail's rules
func (c *Check) Email(field, value string) {
	err := ValidateEmail(strings.TrimSpace(value))
	if err != nil {
		c.add(field, "%s", err.Error())
	}
}

// OneOf fails when valid is false, e.g. Check.OneOf("category", "Category", cat.Valid())
func (c *Check) OneOf(field, label string, valid bool) {
	if !valid {
		c.add(field, "%s is not a valid choice", label)
	}
}

func (c *Check) Errors() []*FieldError { return c.errs }

// Err returns the first failure, or nil
func (c *Check) Err() error {
	if len(c.errs) == 0 {
		return nil
	}
	return c.errs[0]
}
