package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shadyar-bakr/storefront/internal/apperr"
	"github.com/shadyar-bakr/storefront/internal/validator"
)

type envelope map[string]any

func (app *application) readIDParam(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id < 1 {
		return 0, apperr.Validation("invalid id parameter", map[string]any{"id": chi.URLParam(r, "id")})
	}

	return id, nil
}

func (app *application) writeJSON(w http.ResponseWriter, status int, data any, headers http.Header) error {
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

// writeSuccess writes the success counterpart of the error envelope.
func (app *application) writeSuccess(w http.ResponseWriter, status int, data any, message string, headers http.Header) error {
	return app.writeJSON(w, status, envelope{"success": true, "data": data, "message": message}, headers)
}

// readJSON decodes a single JSON value from the body. Every failure is a
// Validation error whose message is safe to show to the client.
func (app *application) readJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	maxBytes := 1_048_576
	r.Body = http.MaxBytesReader(w, r.Body, int64(maxBytes))

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	err := dec.Decode(dst)
	if err != nil {
		var syntaxError *json.SyntaxError
		var unmarshalTypeError *json.UnmarshalTypeError
		var invalidUnmarshalError *json.InvalidUnmarshalError
		var maxBytesError *http.MaxBytesError

		switch {
		case errors.As(err, &syntaxError):
			return apperr.Validation(fmt.Sprintf("body contains badly-formed JSON (at character %d)", syntaxError.Offset), nil)

		case errors.Is(err, io.ErrUnexpectedEOF):
			return apperr.Validation("body contains badly-formed JSON", nil)

		case errors.As(err, &unmarshalTypeError):
			if unmarshalTypeError.Field != "" {
				return apperr.Validation(fmt.Sprintf("body contains incorrect JSON type for field %q", unmarshalTypeError.Field), nil)
			}
			return apperr.Validation(fmt.Sprintf("body contains incorrect JSON type (at character %d)", unmarshalTypeError.Offset), nil)

		case errors.Is(err, io.EOF):
			return apperr.Validation("body must not be empty", nil)

		case strings.HasPrefix(err.Error(), "json: unknown field "):
			fieldName := strings.TrimPrefix(err.Error(), "json: unknown field ")
			return apperr.Validation(fmt.Sprintf("body contains unknown key %s", fieldName), nil)

		case errors.As(err, &maxBytesError):
			return apperr.Validation(fmt.Sprintf("body must not be larger than %d bytes", maxBytesError.Limit), nil)

		case errors.As(err, &invalidUnmarshalError):
			panic(err)

		default:
			return err
		}
	}

	err = dec.Decode(&struct{}{})
	if !errors.Is(err, io.EOF) {
		return apperr.Validation("body must only contain a single JSON value", nil)
	}

	return nil
}

func (app *application) readString(qs url.Values, key string, defaultValue string) string {
	s := qs.Get(key)
	if s == "" {
		return defaultValue
	}

	return s
}

func (app *application) readInt(qs url.Values, key string, defaultValue int, v *validator.Validator) int {
	s := qs.Get(key)
	if s == "" {
		return defaultValue
	}

	i, err := strconv.Atoi(s)
	if err != nil {
		v.AddError(key, "must be an integer value")
		return defaultValue
	}

	return i
}

// background runs fn on its own goroutine. serve waits for it on shutdown.
func (app *application) background(fn func()) {
	app.wg.Add(1)

	go func() {
		defer app.wg.Done()

		defer func() {
			if err := recover(); err != nil {
				app.logger.Error(fmt.Sprintf("%v", err))
			}
		}()

		fn()
	}()
}
