// internal/data/models.go
package data

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrRecordNotFound is matched by every NotFoundError via errors.Is.
var ErrRecordNotFound = errors.New("record not found")

// ValidationError reports a rejected payload. It maps to 400.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// NotFoundError reports an unknown book id. It maps to 404.
type NotFoundError struct {
	ID      string
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

func (e *NotFoundError) Unwrap() error { return ErrRecordNotFound }

// Models groups the model services handed to the HTTP layer.
type Models struct {
	Books *BookService
}

// Options customizes the capabilities a BookService depends on. Zero values
// fall back to random UUIDs and the wall clock in UTC.
type Options struct {
	NewID func() string
	Now   func() time.Time
}

// NewModels constructs Models around a fresh, empty store. Call it once at
// startup; tests call it once per case for isolation.
func NewModels(opts Options) Models {
	return Models{
		Books: NewBookService(NewBookStore(), opts),
	}
}

func (o Options) withDefaults() Options {
	if o.NewID == nil {
		o.NewID = uuid.NewString
	}
	if o.Now == nil {
		o.Now = func() time.Time { return time.Now().UTC() }
	}
	return o
}
