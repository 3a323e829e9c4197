package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/shadyar-bakr/storefront/internal/apperr"
)

// handlerFunc is a handler that reports failure by returning it.
type handlerFunc func(w http.ResponseWriter, r *http.Request) error

// handle adapts fn to http.HandlerFunc. A returned error is logged and
// rendered into the error envelope.
func (app *application) handle(fn handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := fn(w, r); err != nil {
			app.errorResponse(w, r, err)
		}
	}
}

// logError hands err to the error logger off the request path. The
// request's values (request and user id) are kept, its cancellation is not.
func (app *application) logError(r *http.Request, err error) {
	var (
		method = r.Method
		uri    = r.URL.RequestURI()
		ctx    = context.WithoutCancel(r.Context())
	)

	app.background(func() {
		app.errors.Log(ctx, err, map[string]any{"method": method, "uri": uri})
	})
}

func (app *application) errorResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logError(r, err)

	resp := apperr.NewResponse(err, app.env, middleware.GetReqID(r.Context()))

	if resp.Status == http.StatusUnauthorized {
		w.Header().Set("WWW-Authenticate", "Bearer")
	}

	err = app.writeJSON(w, resp.Status, resp, nil)
	if err != nil && resp.Details != nil {
		// Error context is arbitrary; retry without it when it cannot be
		// encoded.
		resp.Details = nil
		err = app.writeJSON(w, resp.Status, resp, nil)
	}
	if err != nil {
		app.logger.Error("unable to write error response", "error", err, "method", r.Method, "uri", r.URL.RequestURI())
		w.WriteHeader(http.StatusInternalServerError)
	}
}

func (app *application) serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.errorResponse(w, r, apperr.Defect(err))
}

func (app *application) notFoundResponse(w http.ResponseWriter, r *http.Request) {
	app.errorResponse(w, r, apperr.NotFound(""))
}

func (app *application) methodNotAllowedResponse(w http.ResponseWriter, r *http.Request) {
	message := fmt.Sprintf(msgMethodNotSupportedF, r.Method)
	app.errorResponse(w, r, apperr.New(message,
		apperr.WithStatus(http.StatusMethodNotAllowed),
		apperr.WithCode(errCodeMethodNotAllowed),
	))
}

func (app *application) rateLimitExceededResponse(w http.ResponseWriter, r *http.Request) {
	app.errorResponse(w, r, apperr.RateLimit(""))
}

func (app *application) invalidAuthenticationTokenResponse(w http.ResponseWriter, r *http.Request) {
	app.errorResponse(w, r, apperr.Unauthorized(msgInvalidToken))
}

func (app *application) expiredAuthenticationTokenResponse(w http.ResponseWriter, r *http.Request) {
	app.errorResponse(w, r, apperr.Unauthorized(msgExpiredToken))
}

func (app *application) authenticationRequiredResponse(w http.ResponseWriter, r *http.Request) {
	app.errorResponse(w, r, apperr.Unauthorized(msgAuthRequired))
}

func (app *application) notPermittedResponse(w http.ResponseWriter, r *http.Request) {
	app.errorResponse(w, r, apperr.Forbidden(msgNotPermitted))
}
