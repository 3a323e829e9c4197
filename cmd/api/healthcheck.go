package main

import (
	"net/http"
)

func (app *application) healthcheckHandler(w http.ResponseWriter, r *http.Request) error {
	env := envelope{
		"status": "available",
		"system_info": map[string]string{
			"environment": string(app.env),
			"version":     version,
		},
	}

	return app.writeJSON(w, http.StatusOK, env, nil)
}
