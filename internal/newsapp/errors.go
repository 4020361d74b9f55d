package newsapp

import "errors"

var (
	// ErrNewsNotFound reports an absent news row on update or delete.
	ErrNewsNotFound = errors.New("news not found")
	// ErrUserNotFound reports an absent user row.
	ErrUserNotFound = errors.New("user not found")
	// ErrNotOwner reports a mutation attempted by a non-owning user.
	ErrNotOwner = errors.New("unauthorized")
)

// ImageError is a field-scoped upload rejection: a missing or invalid
// image file. It is expected and recoverable, unlike infrastructure
// failures during the move itself.
type ImageError struct {
	Field  string
	Reason string
}

func (e *ImageError) Error() string {
	return e.Reason
}

func imageRequired(field string) *ImageError {
	return &ImageError{Field: field, Reason: "The " + field + " field is required"}
}
