package main

import (
	"context"
	"net/http"

	"github.com/shadyar-bakr/storefront/internal/apperr"
	"github.com/shadyar-bakr/storefront/internal/errlog"
	"github.com/shadyar-bakr/storefront/internal/validator"
)

// reportClientErrorHandler accepts failures observed in the browser and
// feeds them to the error logger. The response tells the error boundary
// what to render in place of the crashed view.
func (app *application) reportClientErrorHandler(w http.ResponseWriter, r *http.Request) error {
	var report errlog.ClientReport

	err := app.readJSON(w, r, &report)
	if err != nil {
		return err
	}

	if err := validator.Required(report.Message, "Message"); err != nil {
		return err
	}

	if report.UserAgent == "" {
		report.UserAgent = r.UserAgent()
	}

	ctx := context.WithoutCancel(r.Context())
	app.background(func() {
		app.errors.Report(ctx, report)
	})

	props := apperr.NewBoundaryProps(report.Message, report.Stack, app.env)

	return app.writeSuccess(w, http.StatusAccepted, props, "Error reported", nil)
}
