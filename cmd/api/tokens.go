package main

import (
	"errors"
	"net/http"
	"strings"

	"github.com/shadyar-bakr/storefront/internal/apperr"
	"github.com/shadyar-bakr/storefront/internal/data"
	"github.com/shadyar-bakr/storefront/internal/validator"
)

func (app *application) createAuthenticationTokenHandler(w http.ResponseWriter, r *http.Request) error {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	err := app.readJSON(w, r, &input)
	if err != nil {
		return err
	}

	if err := validator.Required(input.Email, "Email"); err != nil {
		return err
	}
	if err := validator.Email(input.Email); err != nil {
		return err
	}
	if err := validator.Required(input.Password, "Password"); err != nil {
		return err
	}

	user, err := app.models.Users.GetByEmail(input.Email)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			return apperr.Unauthorized(msgInvalidCredentials)
		default:
			return err
		}
	}

	match, err := user.Password.Matches(input.Password)
	if err != nil {
		return err
	}

	if !match {
		return apperr.Unauthorized(msgInvalidCredentials)
	}

	token, err := app.models.Tokens.New(user.ID, app.config.sessionTTL, data.ScopeAuthentication)
	if err != nil {
		return err
	}

	return app.writeSuccess(w, http.StatusCreated, envelope{
		"authentication_token": token,
		"user":                 user,
	}, "Login successful", nil)
}

func (app *application) deleteAuthenticationTokenHandler(w http.ResponseWriter, r *http.Request) error {
	token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	app.models.Tokens.Delete(token)

	return app.writeSuccess(w, http.StatusOK, nil, "Logged out successfully", nil)
}
