package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rifkianggarks/book-self-api/internal/data"
)

type apiResponse struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newTestApplication(t *testing.T) *applicationDependencies {
	t.Helper()

	n := 0
	clock := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	return &applicationDependencies{
		config: defaultConfig(),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		models: data.NewModels(data.Options{
			NewID: func() string {
				n++
				return fmt.Sprintf("book-%d", n)
			},
			Now: func() time.Time {
				clock = clock.Add(time.Second)
				return clock
			},
		}),
	}
}

func do(t *testing.T, h http.Handler, method, target, body string) (int, apiResponse) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	r := httptest.NewRequest(method, target, reader)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var resp apiResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), "body: %s", w.Body.String())
	return w.Code, resp
}

const codingBook = `{
	"name": "Coding for Fun",
	"year": 2010,
	"author": "John Doe",
	"summary": "Lorem ipsum dolor sit amet",
	"publisher": "Dicoding Indonesia",
	"pageCount": 100,
	"readPage": 25,
	"reading": false
}`

func createBook(t *testing.T, h http.Handler, body string) string {
	t.Helper()

	code, resp := do(t, h, http.MethodPost, "/books", body)
	require.Equal(t, http.StatusCreated, code, resp.Message)

	var payload struct {
		BookID string `json:"bookId"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &payload))
	require.NotEmpty(t, payload.BookID)
	return payload.BookID
}

func getBook(t *testing.T, h http.Handler, id string) (int, data.Book) {
	t.Helper()

	code, resp := do(t, h, http.MethodGet, "/books/"+id, "")
	var payload struct {
		Book data.Book `json:"book"`
	}
	if code == http.StatusOK {
		require.NoError(t, json.Unmarshal(resp.Data, &payload))
	}
	return code, payload.Book
}

func TestCreateBookHandler(t *testing.T) {
	app := newTestApplication(t)
	h := app.routes()

	code, resp := do(t, h, http.MethodPost, "/books", codingBook)
	require.Equal(t, http.StatusCreated, code)
	assert.Equal(t, "success", resp.Status)
	assert.Equal(t, "book added successfully", resp.Message)
	assert.JSONEq(t, `{"bookId": "book-1"}`, string(resp.Data))

	code, book := getBook(t, h, "book-1")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Coding for Fun", book.Name)
	assert.False(t, book.Finished)
	assert.Equal(t, book.InsertedAt, book.UpdatedAt)
}

func TestCreateBookHandler_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		message string
	}{
		{
			name:    "missing name",
			body:    `{"year": 2010, "pageCount": 10, "readPage": 1}`,
			message: "name is required",
		},
		{
			name:    "empty name",
			body:    `{"name": "", "pageCount": 10, "readPage": 1}`,
			message: "name is required",
		},
		{
			name:    "readPage over pageCount",
			body:    `{"name": "x", "pageCount": 10, "readPage": 11}`,
			message: "readPage exceeds pageCount",
		},
		{
			name:    "wrong type",
			body:    `{"name": 42}`,
			message: `body contains incorrect JSON type for field "name"`,
		},
		{
			name:    "badly formed",
			body:    `{"name": "x",}`,
			message: "body contains badly-formed JSON",
		},
		{
			name:    "empty body",
			body:    "",
			message: "body must not be empty",
		},
		{
			name:    "two values",
			body:    `{"name": "x"}{"name": "y"}`,
			message: "body must only contain a single JSON value",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApplication(t)
			h := app.routes()

			code, resp := do(t, h, http.MethodPost, "/books", tt.body)

			assert.Equal(t, http.StatusBadRequest, code)
			assert.Equal(t, "fail", resp.Status)
			assert.Contains(t, resp.Message, tt.message)
			assert.Zero(t, app.models.Books.Count())
		})
	}
}

func TestCreateBookHandler_IgnoresExtraKeys(t *testing.T) {
	app := newTestApplication(t)
	h := app.routes()

	id := createBook(t, h, `{
		"name": "x",
		"pageCount": 10,
		"readPage": 1,
		"reading": false,
		"finished": true,
		"id": "abc",
		"insertedAt": "1999-01-01T00:00:00Z",
		"shelf": "top"
	}`)
	assert.Equal(t, "book-1", id)

	code, book := getBook(t, h, id)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "book-1", book.ID)
	assert.False(t, book.Finished, "finished follows readPage/pageCount")
	assert.Equal(t, 2024, book.InsertedAt.Year())

	code, resp := do(t, h, http.MethodPut, "/books/"+id, `{"name": "x", "pageCount": 10, "readPage": 10, "finished": false}`)
	require.Equal(t, http.StatusOK, code, resp.Message)

	_, book = getBook(t, h, id)
	assert.True(t, book.Finished, "finished follows readPage/pageCount")
}

func TestCreateBookHandler_BodyTooLarge(t *testing.T) {
	app := newTestApplication(t)
	h := app.routes()

	body := `{"name": "` + strings.Repeat("a", maxBodyBytes) + `"}`
	code, resp := do(t, h, http.MethodPost, "/books", body)

	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, fmt.Sprintf("body must not be larger than %d bytes", maxBodyBytes), resp.Message)
}

func TestListBooksHandler(t *testing.T) {
	app := newTestApplication(t)
	h := app.routes()

	createBook(t, h, `{"name": "Coding for Fun", "publisher": "P1", "pageCount": 10, "readPage": 10, "reading": false}`)
	createBook(t, h, `{"name": "Gardening", "publisher": "P2", "pageCount": 10, "readPage": 3, "reading": true}`)
	createBook(t, h, `{"name": "coding in go", "publisher": "P3", "pageCount": 10, "readPage": 0, "reading": true}`)

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"all", "", []string{"book-1", "book-2", "book-3"}},
		{"name case-insensitive", "?name=CODING", []string{"book-1", "book-3"}},
		{"reading", "?reading=1", []string{"book-2", "book-3"}},
		{"not reading", "?reading=0", []string{"book-1"}},
		{"finished", "?finished=1", []string{"book-1"}},
		{"unfinished", "?finished=0", []string{"book-2", "book-3"}},
		{"and composition", "?reading=1&finished=0&name=coding", []string{"book-3"}},
		{"unrecognised flag is ignored", "?reading=yes", []string{"book-1", "book-2", "book-3"}},
		{"empty name is ignored", "?name=", []string{"book-1", "book-2", "book-3"}},
		{"no match", "?name=zzz", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, resp := do(t, h, http.MethodGet, "/books"+tt.query, "")
			require.Equal(t, http.StatusOK, code)
			assert.Equal(t, "success", resp.Status)

			var payload struct {
				Books []data.BookSummary `json:"books"`
			}
			require.NoError(t, json.Unmarshal(resp.Data, &payload))
			require.NotNil(t, payload.Books)

			got := make([]string, 0, len(payload.Books))
			for _, b := range payload.Books {
				got = append(got, b.ID)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestListBooksHandler_Projection(t *testing.T) {
	app := newTestApplication(t)
	h := app.routes()
	createBook(t, h, codingBook)

	_, resp := do(t, h, http.MethodGet, "/books", "")

	assert.JSONEq(t, `{"books": [{"id": "book-1", "name": "Coding for Fun", "publisher": "Dicoding Indonesia"}]}`, string(resp.Data))
}

func TestShowBookHandler_NotFound(t *testing.T) {
	app := newTestApplication(t)

	code, resp := do(t, app.routes(), http.MethodGet, "/books/missing", "")

	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "fail", resp.Status)
	assert.Equal(t, "book not found", resp.Message)
}

func TestUpdateBookHandler(t *testing.T) {
	app := newTestApplication(t)
	h := app.routes()
	id := createBook(t, h, codingBook)
	_, before := getBook(t, h, id)

	code, resp := do(t, h, http.MethodPut, "/books/"+id, `{
		"name": "Coding for Profit",
		"year": 2011,
		"author": "Jane Doe",
		"summary": "Second edition",
		"publisher": "Another Press",
		"pageCount": 200,
		"readPage": 200,
		"reading": true
	}`)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "success", resp.Status)
	assert.Equal(t, "book updated successfully", resp.Message)
	assert.Empty(t, resp.Data)

	_, after := getBook(t, h, id)
	assert.Equal(t, id, after.ID)
	assert.True(t, before.InsertedAt.Equal(after.InsertedAt))
	assert.True(t, after.UpdatedAt.After(before.UpdatedAt))
	assert.Equal(t, "Coding for Profit", after.Name)
	assert.Equal(t, 2011, after.Year)
	assert.Equal(t, "Jane Doe", after.Author)
	assert.Equal(t, "Second edition", after.Summary)
	assert.Equal(t, "Another Press", after.Publisher)
	assert.Equal(t, 200, after.PageCount)
	assert.Equal(t, 200, after.ReadPage)
	assert.True(t, after.Reading)
	assert.True(t, after.Finished)
}

func TestUpdateBookHandler_Failures(t *testing.T) {
	app := newTestApplication(t)
	h := app.routes()
	id := createBook(t, h, codingBook)
	_, original := getBook(t, h, id)

	tests := []struct {
		name    string
		id      string
		body    string
		code    int
		message string
	}{
		{"missing name", id, `{"pageCount": 10, "readPage": 1}`, http.StatusBadRequest, "name is required"},
		{"readPage over pageCount", id, `{"name": "x", "pageCount": 10, "readPage": 11}`, http.StatusBadRequest, "readPage exceeds pageCount"},
		{"unknown id", "missing", `{"name": "x", "pageCount": 10, "readPage": 1}`, http.StatusNotFound, "id not found"},
		{"validation before lookup", "missing", `{"pageCount": 10}`, http.StatusBadRequest, "name is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, resp := do(t, h, http.MethodPut, "/books/"+tt.id, tt.body)
			assert.Equal(t, tt.code, code)
			assert.Equal(t, "fail", resp.Status)
			assert.Equal(t, tt.message, resp.Message)
		})
	}

	_, current := getBook(t, h, id)
	assert.Equal(t, original, current)
}

func TestDeleteBookHandler(t *testing.T) {
	app := newTestApplication(t)
	h := app.routes()
	id := createBook(t, h, codingBook)
	createBook(t, h, codingBook)

	code, resp := do(t, h, http.MethodDelete, "/books/"+id, "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "book deleted successfully", resp.Message)

	code, _ = getBook(t, h, id)
	assert.Equal(t, http.StatusNotFound, code)

	code, resp = do(t, h, http.MethodDelete, "/books/"+id, "")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "id not found", resp.Message)
	assert.Equal(t, 1, app.models.Books.Count())
}

func TestRoutes_Fallbacks(t *testing.T) {
	app := newTestApplication(t)
	h := app.routes()

	code, resp := do(t, h, http.MethodPatch, "/books/book-1", `{}`)
	assert.Equal(t, http.StatusMethodNotAllowed, code)
	assert.Equal(t, "the PATCH method is not supported for this resource", resp.Message)

	code, resp = do(t, h, http.MethodGet, "/shelves", "")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "fail", resp.Status)
}

func TestHealthcheckHandler(t *testing.T) {
	app := newTestApplication(t)
	h := app.routes()
	createBook(t, h, codingBook)

	code, resp := do(t, h, http.MethodGet, "/healthz", "")

	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"status": "available", "environment": "development", "version": "1.0.0", "books": 1}`, string(resp.Data))
}
