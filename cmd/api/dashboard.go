package main

import (
	"net/http"

	"github.com/shadyar-bakr/storefront/internal/data"
)

func (app *application) showDashboardHandler(w http.ResponseWriter, r *http.Request) error {
	user := app.contextGetUser(r)

	dashboard := envelope{
		"user":      user,
		"analytics": app.models.Analytics.Get(),
	}

	if user.Permissions().Include(data.PermissionDashboardAdmin) {
		dashboard["admin"] = envelope{
			"environment":     app.env,
			"version":         version,
			"errorFallbacks":  app.errors.Fallbacks(),
			"accountsSeeded":  app.models.Users.Count(),
			"catalogueLength": app.models.Products.Count(),
		}
	}

	return app.writeSuccess(w, http.StatusOK, dashboard, "Dashboard loaded successfully", nil)
}
