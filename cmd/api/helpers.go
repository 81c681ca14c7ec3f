// cmd/api/helpers.go
// This file contains general-purpose helper functions for the application.
// Error-response helpers live in errors.go; only non-error utilities are here.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/julienschmidt/httprouter"

	"github.com/rifkianggarks/book-self-api/internal/data"
)

// maxBodyBytes caps request bodies read by readJSON.
const maxBodyBytes = 1_048_576

// envelope is the JSON object wrapper used for every response body,
// e.g. {"status": "success", "data": {"books": [...]}}.
type envelope map[string]any

// readBookIDParam returns the ":bookId" URL parameter added by httprouter.
func (app *applicationDependencies) readBookIDParam(r *http.Request) string {
	params := httprouter.ParamsFromContext(r.Context())
	return params.ByName("bookId")
}

// readString reads a string query parameter from qs, returning defaultValue
// if the key is absent or empty.
func (app *applicationDependencies) readString(qs url.Values, key, defaultValue string) string {
	s := qs.Get(key)
	if s == "" {
		return defaultValue
	}
	return s
}

// readFlag reads a "0"/"1" boolean filter from qs. Absent or unrecognised
// values yield nil, meaning the filter is not applied.
func (app *applicationDependencies) readFlag(r *http.Request, qs url.Values, key string) *bool {
	raw, present := qs[key]
	if !present || len(raw) == 0 {
		return nil
	}
	value, ok := data.ParseFlag(raw[0])
	if !ok {
		app.requestLogger(r).Debug("ignoring unrecognised filter value", "key", key, "value", raw[0])
		return nil
	}
	return value
}

// writeJSON marshals data to indented JSON, applies any custom headers,
// sets Content-Type to "application/json", writes the status code, and
// streams the body to the client.
func (app *applicationDependencies) writeJSON(w http.ResponseWriter, status int, data envelope, headers http.Header) error {
	js, err := json.MarshalIndent(data, "", "\t")
	if err != nil {
		return err
	}
	js = append(js, '\n')

	for key, value := range headers {
		w.Header()[key] = value
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(js)
	return nil
}

// readJSON decodes a single JSON value from the request body into dst.
// It enforces a 1 MB size limit, ensures the body contains exactly one JSON
// value, and turns decoder errors into messages that are safe to show to the
// client. Keys that dst does not declare are ignored.
func (app *applicationDependencies) readJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	// Cap the request body to 1 MB to prevent large-payload attacks.
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	dec := json.NewDecoder(r.Body)

	err := dec.Decode(dst)
	if err != nil {
		var syntaxError *json.SyntaxError
		var unmarshalTypeError *json.UnmarshalTypeError
		var invalidUnmarshalError *json.InvalidUnmarshalError
		var maxBytesError *http.MaxBytesError

		switch {
		// Malformed JSON, reported with the offset where decoding stopped.
		case errors.As(err, &syntaxError):
			return fmt.Errorf("body contains badly-formed JSON (at character %d)", syntaxError.Offset)

		// Decode can also return this for some syntax errors in the body.
		case errors.Is(err, io.ErrUnexpectedEOF):
			return errors.New("body contains badly-formed JSON")

		// A value of the wrong type for the target field, e.g. a number for "name".
		case errors.As(err, &unmarshalTypeError):
			if unmarshalTypeError.Field != "" {
				return fmt.Errorf("body contains incorrect JSON type for field %q", unmarshalTypeError.Field)
			}
			return fmt.Errorf("body contains incorrect JSON type (at character %d)", unmarshalTypeError.Offset)

		// Nothing was sent at all.
		case errors.Is(err, io.EOF):
			return errors.New("body must not be empty")

		// MaxBytesReader stopped the read.
		case errors.As(err, &maxBytesError):
			return fmt.Errorf("body must not be larger than %d bytes", maxBytesError.Limit)

		// A non-nil pointer must be passed to Decode; anything else is a bug here.
		case errors.As(err, &invalidUnmarshalError):
			panic(err)

		default:
			return err
		}
	}

	// Ensure there is no second JSON value in the body.
	err = dec.Decode(&struct{}{})
	if !errors.Is(err, io.EOF) {
		return errors.New("body must only contain a single JSON value")
	}

	return nil
}
