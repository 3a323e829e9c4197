package data

import (
	"strings"

	"github.com/shadyar-bakr/storefront/internal/validator"
)

func ValidateFilters(v *validator.Validator, f Filters) {
	v.Check(f.Page > 0, "page", "must be greater than zero")
	v.Check(f.Page <= 10_000_000, "page", "must be a reasonable number")
	v.Check(f.PageSize > 0, "limit", "must be greater than zero")
	v.Check(f.PageSize <= 100, "limit", "must not be more than 100")
	v.Check(validator.PermittedValue(f.SortBy, f.SortSafeList...), "sort", "invalid sort value")
	v.Check(validator.PermittedValue(f.InStock, "", "true", "false"), "inStock", "must be true or false")
}

type Filters struct {
	Category     string   `json:"category"`
	Search       string   `json:"search"`
	InStock      string   `json:"inStock"`
	Page         int      `json:"page"`
	PageSize     int      `json:"limit"`
	SortBy       string   `json:"sort"`
	SortSafeList []string `json:"-"`
}

func (f Filters) limit() int {
	return f.PageSize
}

func (f Filters) offset() int {
	return (f.Page - 1) * f.PageSize
}

func (f Filters) matches(p *Product) bool {
	if f.Category != "" && !strings.EqualFold(f.Category, "all") && !strings.EqualFold(p.Category, f.Category) {
		return false
	}

	if f.Search != "" {
		term := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(p.Name), term) && !strings.Contains(strings.ToLower(p.Description), term) {
			return false
		}
	}

	switch f.InStock {
	case "true":
		return p.InStock
	case "false":
		return !p.InStock
	}
	return true
}

type Metadata struct {
	CurrentPage   int  `json:"currentPage"`
	TotalPages    int  `json:"totalPages"`
	TotalProducts int  `json:"totalProducts"`
	HasNextPage   bool `json:"hasNextPage"`
	HasPrevPage   bool `json:"hasPrevPage"`
}

func calculateMetadata(totalRecords, page, pageSize int) Metadata {
	if pageSize <= 0 {
		return Metadata{CurrentPage: page, TotalProducts: totalRecords}
	}

	totalPages := (totalRecords + pageSize - 1) / pageSize

	return Metadata{
		CurrentPage:   page,
		TotalPages:    totalPages,
		TotalProducts: totalRecords,
		HasNextPage:   page < totalPages,
		HasPrevPage:   page > 1,
	}
}
