// cmd/api/handlers.go
// This file contains the HTTP request handlers for the books resource.
// Each handler parses the request, calls the book service, and maps the
// outcome onto a response envelope.
package main

import (
	"net/http"

	"github.com/rifkianggarks/book-self-api/internal/data"
)

// healthcheckHandler handles GET /healthz.
func (app *applicationDependencies) healthcheckHandler(w http.ResponseWriter, r *http.Request) {
	app.successResponse(w, r, http.StatusOK, "", envelope{
		"status":      "available",
		"environment": app.config.environment,
		"version":     appVersion,
		"books":       app.models.Books.Count(),
	})
}

// createBookHandler handles POST /books.
// Responds 201 with the new book's id, or 400 when the payload is rejected.
func (app *applicationDependencies) createBookHandler(w http.ResponseWriter, r *http.Request) {
	var input data.BookInput

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	book, err := app.models.Books.Create(input)
	if err != nil {
		app.bookErrorResponse(w, r, err)
		return
	}

	app.requestLogger(r).Info("book created", "book_id", book.ID)
	app.successResponse(w, r, http.StatusCreated, "book added successfully", envelope{"bookId": book.ID})
}

// listBooksHandler handles GET /books.
// Optional filters: reading=0|1, finished=0|1, name=<substring>.
func (app *applicationDependencies) listBooksHandler(w http.ResponseWriter, r *http.Request) {
	qs := r.URL.Query()

	filters := data.ListFilters{
		Reading:  app.readFlag(r, qs, "reading"),
		Finished: app.readFlag(r, qs, "finished"),
		Name:     app.readString(qs, "name", ""),
	}

	books := app.models.Books.List(filters)
	app.successResponse(w, r, http.StatusOK, "", envelope{"books": books})
}

// showBookHandler handles GET /books/:bookId.
func (app *applicationDependencies) showBookHandler(w http.ResponseWriter, r *http.Request) {
	book, err := app.models.Books.Get(app.readBookIDParam(r))
	if err != nil {
		app.bookErrorResponse(w, r, err)
		return
	}

	app.successResponse(w, r, http.StatusOK, "", envelope{"book": book})
}

// updateBookHandler handles PUT /books/:bookId.
// The payload replaces every mutable field of the book.
func (app *applicationDependencies) updateBookHandler(w http.ResponseWriter, r *http.Request) {
	id := app.readBookIDParam(r)

	var input data.BookInput
	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	_, err = app.models.Books.Update(id, input)
	if err != nil {
		app.bookErrorResponse(w, r, err)
		return
	}

	app.requestLogger(r).Info("book updated", "book_id", id)
	app.successResponse(w, r, http.StatusOK, "book updated successfully", nil)
}

// deleteBookHandler handles DELETE /books/:bookId.
func (app *applicationDependencies) deleteBookHandler(w http.ResponseWriter, r *http.Request) {
	id := app.readBookIDParam(r)

	err := app.models.Books.Delete(id)
	if err != nil {
		app.bookErrorResponse(w, r, err)
		return
	}

	app.requestLogger(r).Info("book deleted", "book_id", id)
	app.successResponse(w, r, http.StatusOK, "book deleted successfully", nil)
}

// successResponse writes a {"status": "success"} envelope. message and
// payload are omitted when empty; payload is sent under "data".
func (app *applicationDependencies) successResponse(w http.ResponseWriter, r *http.Request, status int, message string, payload envelope) {
	body := envelope{"status": "success"}
	if message != "" {
		body["message"] = message
	}
	if payload != nil {
		body["data"] = payload
	}

	err := app.writeJSON(w, status, body, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
