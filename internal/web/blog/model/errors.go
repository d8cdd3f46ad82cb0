package model

import (
	"net/http"

	"github.com/Laisky/errors/v2"
)

// Failure kinds raised by the blog service. Wrapped errors keep their kind,
// classify with errors.Is.
var (
	// ErrCategoryRequired indicates create was called without a category.
	ErrCategoryRequired = errors.New("category is a required field")
	// ErrCategoryEmpty indicates the supplied category set is empty.
	ErrCategoryEmpty = errors.New("category can not be empty")
	// ErrInvalidBlogID indicates the blog id is not a valid store identifier.
	ErrInvalidBlogID = errors.New("invalid blog id")
	// ErrNoInput indicates a query operation got an empty parameter set.
	ErrNoInput = errors.New("no input provided")
	// ErrUnsafeFilterKey indicates a filter key that could carry store operators.
	ErrUnsafeFilterKey = errors.New("unsafe filter key")
	// ErrInvalidInput covers remaining malformed request fields.
	ErrInvalidInput = errors.New("invalid input")

	// ErrBlogNotFound indicates the referenced blog or filter target does not exist.
	ErrBlogNotFound = errors.New("no blog found")
	// ErrUnauthorized indicates the requester does not own the blog.
	ErrUnauthorized = errors.New("you are trying to perform an unauthorized action")

	// ErrAlreadyExists indicates a create collided with an identical blog.
	ErrAlreadyExists = errors.New("this blog already exists, try updating it")
	// ErrAlreadyDeleted indicates the blog has been soft-deleted before.
	ErrAlreadyDeleted = errors.New("this blog has already been deleted")
)

var validationErrs = []error{
	ErrCategoryRequired,
	ErrCategoryEmpty,
	ErrInvalidBlogID,
	ErrNoInput,
	ErrUnsafeFilterKey,
	ErrInvalidInput,
}

// IsValidationErr reports whether err is a malformed-input failure.
func IsValidationErr(err error) bool {
	for _, e := range validationErrs {
		if errors.Is(err, e) {
			return true
		}
	}
	return false
}

// HTTPStatus maps a service error onto the transport status code.
// Unclassified errors are treated as internal store failures.
func HTTPStatus(err error) int {
	switch {
	case IsValidationErr(err):
		return http.StatusBadRequest
	case errors.Is(err, ErrBlogNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, ErrAlreadyExists), errors.Is(err, ErrAlreadyDeleted):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
