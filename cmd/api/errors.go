// cmd/api/errors.go
// This file contains all error-response helpers for the application.
package main

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/rifkianggarks/book-self-api/internal/data"
)

// logError logs an internal error at ERROR level with the request method and URL for context.
func (app *applicationDependencies) logError(r *http.Request, err error) {
	app.requestLogger(r).Error(err.Error(),
		slog.String("request_method", r.Method),
		slog.String("request_url", r.URL.String()),
	)
}

// errorResponse sends a {"status": "fail"} envelope with the given status
// code and message. It is the building block for every client-error helper.
func (app *applicationDependencies) errorResponse(w http.ResponseWriter, r *http.Request, status int, message string) {
	body := envelope{"status": "fail", "message": message}
	err := app.writeJSON(w, status, body, nil)
	if err != nil {
		app.logError(r, err)
		w.WriteHeader(http.StatusInternalServerError)
	}
}

// serverErrorResponse logs the error and sends a generic {"status": "error"}
// envelope. Internal details never reach the client.
func (app *applicationDependencies) serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logError(r, err)

	body := envelope{
		"status":  "error",
		"message": "the server encountered a problem and could not process your request",
	}
	if werr := app.writeJSON(w, http.StatusInternalServerError, body, nil); werr != nil {
		app.logError(r, werr)
		w.WriteHeader(http.StatusInternalServerError)
	}
}

// notFoundResponse sends a 404 for unknown routes.
func (app *applicationDependencies) notFoundResponse(w http.ResponseWriter, r *http.Request) {
	app.errorResponse(w, r, http.StatusNotFound, "the requested resource could not be found")
}

// methodNotAllowedResponse sends a 405 Method Not Allowed error.
func (app *applicationDependencies) methodNotAllowedResponse(w http.ResponseWriter, r *http.Request) {
	message := "the " + r.Method + " method is not supported for this resource"
	app.errorResponse(w, r, http.StatusMethodNotAllowed, message)
}

// badRequestResponse sends a 400 Bad Request error with the error message from the caller.
func (app *applicationDependencies) badRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.errorResponse(w, r, http.StatusBadRequest, err.Error())
}

// rateLimitExceededResponse sends a 429 Too Many Requests error.
func (app *applicationDependencies) rateLimitExceededResponse(w http.ResponseWriter, r *http.Request) {
	app.errorResponse(w, r, http.StatusTooManyRequests, "rate limit exceeded")
}

// bookErrorResponse maps an error returned by the book service to a response:
// validation failures are 400, unknown ids are 404, anything else is a 500.
func (app *applicationDependencies) bookErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	var validationErr *data.ValidationError
	var notFoundErr *data.NotFoundError

	switch {
	case errors.As(err, &validationErr):
		app.errorResponse(w, r, http.StatusBadRequest, validationErr.Message)
	case errors.As(err, &notFoundErr):
		app.errorResponse(w, r, http.StatusNotFound, notFoundErr.Message)
	default:
		app.serverErrorResponse(w, r, err)
	}
}
