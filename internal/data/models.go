package data

import (
	"errors"
)

var (
	ErrRecordNotFound = errors.New("record not found")
	ErrEditConflict   = errors.New("edit conflict")
)

type Models struct {
	Products  *ProductModel
	Users     *UserModel
	Tokens    *TokenModel
	Analytics AnalyticsModel
}

// NewModels wires the in-memory models around an already seeded user store.
func NewModels(users *UserModel) Models {
	products := NewProductModel(SeedProducts())

	return Models{
		Products: products,
		Users:    users,
		Tokens:   NewTokenModel(),
		Analytics: AnalyticsModel{
			Products: products,
			Users:    users,
		},
	}
}
