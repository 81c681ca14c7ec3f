// Package data provides the book model, the in-memory book store and the
// service operations that validate and mutate it.
package data

import (
	"time"

	"github.com/rifkianggarks/book-self-api/internal/validator"
)

// Book is a single record in the shelf.
type Book struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Year       int       `json:"year"`
	Author     string    `json:"author"`
	Summary    string    `json:"summary"`
	Publisher  string    `json:"publisher"`
	PageCount  int       `json:"pageCount"`
	ReadPage   int       `json:"readPage"`
	Finished   bool      `json:"finished"` // derived: ReadPage == PageCount
	Reading    bool      `json:"reading"`
	InsertedAt time.Time `json:"insertedAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// BookSummary is the projection returned by List.
type BookSummary struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Publisher string `json:"publisher"`
}

func (b Book) summary() BookSummary {
	return BookSummary{ID: b.ID, Name: b.Name, Publisher: b.Publisher}
}

// BookInput holds the client-supplied fields for both Create and Update.
// Validation tags run in field order, so a missing name is reported before
// a readPage that exceeds pageCount.
type BookInput struct {
	Name      string `json:"name"      validate:"required"`
	Year      int    `json:"year"`
	Author    string `json:"author"`
	Summary   string `json:"summary"`
	Publisher string `json:"publisher"`
	PageCount int    `json:"pageCount"`
	ReadPage  int    `json:"readPage"  validate:"ltefield=PageCount"`
	Reading   bool   `json:"reading"`
}

// ValidateBookInput records every failing field of input in v.
func ValidateBookInput(v *validator.Validator, input BookInput) error {
	return v.Struct(input)
}

// apply copies the mutable fields of input onto b and recomputes Finished.
// ID and InsertedAt are never touched.
func (b *Book) apply(input BookInput) {
	b.Name = input.Name
	b.Year = input.Year
	b.Author = input.Author
	b.Summary = input.Summary
	b.Publisher = input.Publisher
	b.PageCount = input.PageCount
	b.ReadPage = input.ReadPage
	b.Reading = input.Reading
	b.Finished = input.ReadPage == input.PageCount
}
