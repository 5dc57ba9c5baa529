// Package apperr holds the error kinds shared by the store, the services and the HTTP boundary.
// Lower layers wrap these sentinels with oops codes; callers match them with errors.Is.
package apperr

import (
	"errors"
	"fmt"

	"github.com/samber/oops"
)

var (
	ErrValidation         = errors.New("validation failed")
	ErrDuplicate          = errors.New("already exists")
	ErrNotFound           = errors.New("not found")
	ErrReference          = errors.New("referenced record does not exist")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("not authenticated")
)

// Kind is the machine-readable error category returned to clients.
type Kind string

const (
	KindValidation      Kind = "VALIDATION"
	KindDuplicate       Kind = "DUPLICATE"
	KindNotFound        Kind = "NOT_FOUND"
	KindReference       Kind = "REFERENCE"
	KindAuthentication  Kind = "AUTHENTICATION"
	KindUnauthenticated Kind = "UNAUTHENTICATED"
	KindUnsupportedType Kind = "UNSUPPORTED_MEDIA_TYPE"
	KindInternal        Kind = "INTERNAL"
)

// KindOf classifies err by the first sentinel found in its chain.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrValidation):
		return KindValidation
	case errors.Is(err, ErrDuplicate):
		return KindDuplicate
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrReference):
		return KindReference
	case errors.Is(err, ErrInvalidCredentials):
		return KindAuthentication
	case errors.Is(err, ErrUnauthenticated):
		return KindUnauthenticated
	default:
		return KindInternal
	}
}

// Public returns the client-facing message attached with oops.Public, or fallback.
func Public(err error, fallback string) string {
	if msg := oops.GetPublic(err, ""); msg != "" {
		return msg
	}
	return fallback
}

// Validation builds an ErrValidation carrying a public message, e.g. a missing field.
func Validation(field, message string) error {
	return oops.Code("VALIDATION_FAILED").
		With("field", field).
		Public(message).
		Wrap(ErrValidation)
}

// NotFound wraps ErrNotFound for an unknown id. The public message reads "User 7 not found.".
func NotFound(code, entity string, id int64) error {
	return oops.Code(code).
		With("id", id).
		Public(fmt.Sprintf("%s %d not found.", entity, id)).
		Wrap(ErrNotFound)
}

// MissingReference wraps ErrReference for a foreign key that points at nothing.
func MissingReference(code, field, entity string, id int64) error {
	return oops.Code(code).
		With(field, id).
		Public(fmt.Sprintf("%s %d not found.", entity, id)).
		Wrap(ErrReference)
}
