// cmd/api/routes.go
package main

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

// routes registers all HTTP endpoints and returns the router wrapped in
// middleware.
//
// Middleware chain (outermost → innermost):
//
//	requestID → logRequest → recoverPanic → rateLimit → router
//
// Endpoints:
//
//	GET    /healthz         – liveness and build information
//	POST   /books           – create a book
//	GET    /books           – list books (reading, finished, name filters)
//	GET    /books/:bookId   – retrieve a single book
//	PUT    /books/:bookId   – replace a book's mutable fields
//	DELETE /books/:bookId   – delete a book
func (app *applicationDependencies) routes() http.Handler {
	router := httprouter.New()

	router.NotFound = http.HandlerFunc(app.notFoundResponse)
	router.MethodNotAllowed = http.HandlerFunc(app.methodNotAllowedResponse)

	router.HandlerFunc(http.MethodGet, "/healthz", app.healthcheckHandler)

	router.HandlerFunc(http.MethodPost, "/books", app.createBookHandler)
	router.HandlerFunc(http.MethodGet, "/books", app.listBooksHandler)
	router.HandlerFunc(http.MethodGet, "/books/:bookId", app.showBookHandler)
	router.HandlerFunc(http.MethodPut, "/books/:bookId", app.updateBookHandler)
	router.HandlerFunc(http.MethodDelete, "/books/:bookId", app.deleteBookHandler)

	// logRequest sits outside recoverPanic so recovered panics are still logged
	// with their 500 status.
	return app.requestID(app.logRequest(app.recoverPanic(app.rateLimit(router))))
}
