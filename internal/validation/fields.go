package validation

import (
	"errors"
	"fmt"
	"strings"
)

// Required rejects blank input. It backs interactive form fields.
func Required(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New(requiredText)
	}
	return nil
}

// OptionalURL accepts blank input or an absolute URL.
func OptionalURL(s string) error {
	if s == "" {
		return nil
	}
	return firstMessage(Var("url", s, "url"))
}

// RequiredURL rejects blank input and anything that is not an absolute URL.
func RequiredURL(s string) error {
	if err := Required(s); err != nil {
		return err
	}
	return firstMessage(Var("url", s, "url"))
}

// MaxLen rejects input longer than n characters.
func MaxLen(s string, n int) error {
	return firstMessage(Var("value", s, fmt.Sprintf("max=%d", n)))
}

// Slug accepts lowercase words joined by single hyphens.
func Slug(s string) error {
	if err := Required(s); err != nil {
		return err
	}
	return firstMessage(Var("slug", s, slugTag))
}

// firstMessage reduces a single-field *Error to a plain error carrying its
// message, which is what form inputs display.
func firstMessage(err error) error {
	var verr *Error
	if errors.As(err, &verr) && len(verr.Fields) > 0 {
		return errors.New(verr.Fields[0].Message)
	}
	return err
}
