package main

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/shadyar-bakr/storefront/internal/apperr"
	"github.com/shadyar-bakr/storefront/internal/data"
	"github.com/shadyar-bakr/storefront/internal/validator"
)

func (app *application) listProductsHandler(w http.ResponseWriter, r *http.Request) error {
	qs := r.URL.Query()
	v := validator.New()

	filters := data.Filters{
		Category:     app.readString(qs, "category", ""),
		Search:       app.readString(qs, "search", ""),
		InStock:      app.readString(qs, "inStock", ""),
		Page:         app.readInt(qs, "page", 1, v),
		PageSize:     app.readInt(qs, "limit", 10, v),
		SortBy:       app.readString(qs, "sort", "name"),
		SortSafeList: data.ProductSortSafeList,
	}

	if data.ValidateFilters(v, filters); !v.Valid() {
		return v.Err()
	}

	products, metadata := app.models.Products.GetAll(filters)

	return app.writeSuccess(w, http.StatusOK, envelope{
		"products":   products,
		"pagination": metadata,
		"filters": map[string]string{
			"category": filters.Category,
			"search":   filters.Search,
			"inStock":  filters.InStock,
		},
	}, "Products retrieved successfully", nil)
}

func (app *application) showProductHandler(w http.ResponseWriter, r *http.Request) error {
	id, err := app.readIDParam(r)
	if err != nil {
		return err
	}

	product, err := app.models.Products.Get(id)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			return apperr.NotFound("Product")
		default:
			return err
		}
	}

	return app.writeSuccess(w, http.StatusOK, product, "Product retrieved successfully", nil)
}

func (app *application) createProductHandler(w http.ResponseWriter, r *http.Request) error {
	var input struct {
		Name        string   `json:"name"`
		Price       *float64 `json:"price"`
		Image       string   `json:"image"`
		Description string   `json:"description"`
		Category    string   `json:"category"`
		InStock     *bool    `json:"inStock"`
		Stock       int      `json:"stock"`
	}

	err := app.readJSON(w, r, &input)
	if err != nil {
		return err
	}

	required := []struct {
		field string
		value any
	}{
		{"name", input.Name},
		{"price", input.Price},
		{"description", input.Description},
		{"category", input.Category},
	}

	missing := []string{}
	for _, f := range required {
		if validator.Required(f.value, f.field) != nil {
			missing = append(missing, f.field)
		}
	}
	if len(missing) > 0 {
		return apperr.Validation("Missing required fields", map[string]any{"missingFields": missing})
	}

	err = validator.PositiveNumber(*input.Price, "Price")
	if err != nil {
		return err
	}

	product := &data.Product{
		Name:        input.Name,
		Price:       *input.Price,
		Image:       input.Image,
		Description: input.Description,
		Category:    input.Category,
		InStock:     input.InStock == nil || *input.InStock,
		Stock:       input.Stock,
	}

	v := validator.New()
	if data.ValidateProduct(v, product); !v.Valid() {
		return v.Err()
	}

	err = app.models.Products.Insert(product)
	if err != nil {
		return err
	}

	headers := make(http.Header)
	headers.Set("Location", fmt.Sprintf("/v1/products/%d", product.ID))

	return app.writeSuccess(w, http.StatusCreated, product, "Product created successfully", headers)
}

type updateError struct {
	ID    int64  `json:"id"`
	Code  string `json:"code"`
	Error string `json:"error"`
}

func (app *application) bulkUpdateProductsHandler(w http.ResponseWriter, r *http.Request) error {
	var input struct {
		Updates []data.ProductUpdate `json:"updates"`
	}

	err := app.readJSON(w, r, &input)
	if err != nil {
		return err
	}

	if input.Updates == nil {
		return apperr.Validation("Updates must be an array", nil)
	}

	updated, failures := app.models.Products.BulkUpdate(input.Updates)

	errs := make([]updateError, 0, len(failures))
	for _, f := range failures {
		var e *apperr.Error
		switch {
		case errors.Is(f.Err, data.ErrRecordNotFound):
			e = apperr.NotFound("Product")
		case errors.Is(f.Err, data.ErrEditConflict):
			e = apperr.Conflict(msgEditConflict, map[string]any{"id": f.ID})
		default:
			e = apperr.From(f.Err)
		}

		resp := apperr.NewResponse(e, app.env, "")
		errs = append(errs, updateError{ID: f.ID, Code: resp.Code, Error: resp.Message})
	}

	return app.writeSuccess(w, http.StatusOK, envelope{
		"updated": updated,
		"errors":  errs,
	}, fmt.Sprintf("%d products updated successfully", len(updated)), nil)
}
