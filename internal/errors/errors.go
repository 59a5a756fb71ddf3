package errors

import (
	"errors"
	"net/http"
	"strings"
)

var (
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrEmailAlreadyInUse   = errors.New("email already in use")
	ErrUnauthenticated     = errors.New("authentication required")
	ErrNotLoggedIn         = errors.New("not logged in")
	ErrTokenMalformed      = errors.New("token malformed")
	ErrTokenBadSignature   = errors.New("token signature invalid")
	ErrTokenExpired        = errors.New("token expired")
	ErrCourseNotFound      = errors.New("course not found")
	ErrNotFoundOrForbidden = errors.New("course not found")
	ErrAlreadyPurchased    = errors.New("user has already purchased this course")
	ErrCourseHasPurchases  = errors.New("course has purchases and cannot be deleted")
	ErrPrincipalNotFound   = errors.New("account no longer exists")
	ErrMissingImage        = errors.New("no image file uploaded")
	ErrInvalidImageFormat  = errors.New("invalid file format, only PNG and JPG are allowed")
	ErrImageTooLarge       = errors.New("image exceeds the maximum allowed size")
	ErrUpstream            = errors.New("upstream failure")
)

// ValidationError lists human readable problems with a request payload.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Fields, "; ")
}

func NewValidationError(fields ...string) *ValidationError {
	return &ValidationError{Fields: fields}
}

// StatusCode maps an error to the HTTP status the API answers with.
// Anything unrecognised is an internal failure.
func StatusCode(err error) int {
	var validationErr *ValidationError
	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &validationErr),
		errors.Is(err, ErrEmailAlreadyInUse),
		errors.Is(err, ErrAlreadyPurchased),
		errors.Is(err, ErrCourseHasPurchases),
		errors.Is(err, ErrNotLoggedIn),
		errors.Is(err, ErrMissingImage),
		errors.Is(err, ErrInvalidImageFormat),
		errors.Is(err, ErrImageTooLarge):
		return http.StatusBadRequest
	case errors.Is(err, ErrInvalidCredentials),
		errors.Is(err, ErrUnauthenticated),
		errors.Is(err, ErrTokenMalformed),
		errors.Is(err, ErrTokenBadSignature),
		errors.Is(err, ErrTokenExpired),
		errors.Is(err, ErrPrincipalNotFound):
		return http.StatusUnauthorized
	case errors.Is(err, ErrCourseNotFound),
		errors.Is(err, ErrNotFoundOrForbidden):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage is the message safe to show a client. Token failures all
// collapse into one message, internal causes are hidden.
func PublicMessage(err error) string {
	var validationErr *ValidationError
	switch {
	case errors.As(err, &validationErr):
		return validationErr.Error()
	case errors.Is(err, ErrTokenMalformed),
		errors.Is(err, ErrTokenBadSignature),
		errors.Is(err, ErrTokenExpired):
		return "invalid token or expired token"
	case errors.Is(err, ErrUpstream):
		return "error uploading image"
	}

	if StatusCode(err) == http.StatusInternalServerError {
		return "internal server error"
	}
	return err.Error()
}
