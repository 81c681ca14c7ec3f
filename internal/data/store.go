package data

import "iter"

// BookStore is an ordered, mutable collection of books. It is not safe for
// concurrent use; BookService serializes access to it.
//
// Books are stored and returned by value so callers never hold a reference
// into the collection.
type BookStore struct {
	books []Book
}

// NewBookStore returns an empty store.
func NewBookStore() *BookStore {
	return &BookStore{}
}

// Insert appends book. Uniqueness of book.ID is the caller's concern.
func (s *BookStore) Insert(book Book) {
	s.books = append(s.books, book)
}

// FindByID returns the first book whose ID equals id.
func (s *BookStore) FindByID(id string) (Book, bool) {
	i, ok := s.IndexByID(id)
	if !ok {
		return Book{}, false
	}
	return s.books[i], true
}

// IndexByID returns the position of the first book whose ID equals id.
func (s *BookStore) IndexByID(id string) (int, bool) {
	for i := range s.books {
		if s.books[i].ID == id {
			return i, true
		}
	}
	return -1, false
}

// Scan returns a lazy view over the books matching pred, in store order.
// A nil pred matches every book. The store must not be mutated while the
// sequence is being consumed.
func (s *BookStore) Scan(pred func(Book) bool) iter.Seq[Book] {
	return func(yield func(Book) bool) {
		for _, b := range s.books {
			if pred != nil && !pred(b) {
				continue
			}
			if !yield(b) {
				return
			}
		}
	}
}

// At returns a copy of the book at index i.
func (s *BookStore) At(i int) Book {
	return s.books[i]
}

// ReplaceAt overwrites the book at index i.
func (s *BookStore) ReplaceAt(i int, book Book) {
	s.books[i] = book
}

// RemoveAt deletes the book at index i, shifting later books down by one.
func (s *BookStore) RemoveAt(i int) {
	copy(s.books[i:], s.books[i+1:])
	s.books[len(s.books)-1] = Book{}
	s.books = s.books[:len(s.books)-1]
}

// Len returns the number of stored books.
func (s *BookStore) Len() int {
	return len(s.books)
}
