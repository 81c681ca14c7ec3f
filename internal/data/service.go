package data

import (
	"fmt"
	"sync"
	"time"

	"github.com/rifkianggarks/book-self-api/internal/validator"
)

const (
	msgBookNotFound = "book not found"
	msgIDNotFound   = "id not found"
)

// BookService implements the five book operations on top of a BookStore.
// Each operation runs entirely under mu, so at most one mutation is in
// flight and readers never observe a half-applied update.
type BookService struct {
	mu    sync.RWMutex
	store *BookStore
	newID func() string
	now   func() time.Time
}

// NewBookService wraps store. The service becomes the store's only user.
func NewBookService(store *BookStore, opts Options) *BookService {
	opts = opts.withDefaults()
	return &BookService{
		store: store,
		newID: opts.NewID,
		now:   opts.Now,
	}
}

// Create validates input and inserts a new book with a fresh id.
func (s *BookService) Create(input BookInput) (Book, error) {
	if err := validate(input); err != nil {
		return Book{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	book := Book{
		ID:         s.newID(),
		InsertedAt: now,
		UpdatedAt:  now,
	}
	book.apply(input)
	s.store.Insert(book)
	return book, nil
}

// List returns the summaries of every book matching f, in store order.
// The result is never nil.
func (s *BookService) List(f ListFilters) []BookSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []BookSummary{}
	for b := range s.store.Scan(f.Match) {
		out = append(out, b.summary())
	}
	return out
}

// Get returns the book with the given id.
func (s *BookService) Get(id string) (Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	book, ok := s.store.FindByID(id)
	if !ok {
		return Book{}, &NotFoundError{ID: id, Message: msgBookNotFound}
	}
	return book, nil
}

// Update replaces the mutable fields of the book with the given id.
// Payload validation happens before the existence check.
func (s *BookService) Update(id string, input BookInput) (Book, error) {
	if err := validate(input); err != nil {
		return Book{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.store.IndexByID(id)
	if !ok {
		return Book{}, &NotFoundError{ID: id, Message: msgIDNotFound}
	}

	book := s.store.At(i)
	book.apply(input)
	book.UpdatedAt = s.now()
	s.store.ReplaceAt(i, book)
	return book, nil
}

// Delete removes the book with the given id.
func (s *BookService) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.store.IndexByID(id)
	if !ok {
		return &NotFoundError{ID: id, Message: msgIDNotFound}
	}
	s.store.RemoveAt(i)
	return nil
}

// Count returns the number of stored books.
func (s *BookService) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.store.Len()
}

func validate(input BookInput) error {
	v := validator.New()
	if err := ValidateBookInput(v, input); err != nil {
		return fmt.Errorf("validate book input: %w", err)
	}
	if field, msg, ok := v.First(); ok {
		return &ValidationError{Field: field, Message: msg}
	}
	return nil
}
