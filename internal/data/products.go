package data

import (
	"cmp"
	"slices"
	"strings"
	"sync"

	"github.com/shadyar-bakr/storefront/internal/validator"
)

const defaultImage = "/next.svg"

// ProductSortSafeList holds every sort key the catalogue understands.
var ProductSortSafeList = []string{"name", "price-low", "price-high", "rating", "id", "-id"}

type Product struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Image       string  `json:"image"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	InStock     bool    `json:"inStock"`
	Stock       int     `json:"stock"`
	Rating      float64 `json:"rating"`
	Reviews     int     `json:"reviews"`
	Version     int32   `json:"version"`
}

func ValidateProduct(v *validator.Validator, product *Product) {
	v.Check(product.Name != "", "name", "must be provided")
	v.Check(len(product.Name) <= 500, "name", "must not be more than 500 bytes long")

	v.Check(validator.PositiveNumber(product.Price, "price") == nil, "price", "must be a positive number")

	v.Check(product.Description != "", "description", "must be provided")
	v.Check(product.Category != "", "category", "must be provided")

	v.Check(product.Stock >= 0, "stock", "must not be negative")
	v.Check(product.Rating >= 0 && product.Rating <= 5, "rating", "must be between 0 and 5")
}

func SeedProducts() []Product {
	return []Product{
		{ID: 1, Name: "Premium Headphones", Price: 299.99, Image: "/next.svg", Description: "High-quality wireless headphones with noise cancellation", Category: "Electronics", InStock: true, Stock: 15, Rating: 4.5, Reviews: 128},
		{ID: 2, Name: "Smart Watch", Price: 199.99, Image: "/vercel.svg", Description: "Feature-rich smartwatch with health tracking", Category: "Electronics", InStock: true, Stock: 8, Rating: 4.3, Reviews: 89},
		{ID: 3, Name: "Laptop Stand", Price: 79.99, Image: "/globe.svg", Description: "Ergonomic aluminum laptop stand for better posture", Category: "Accessories", InStock: true, Stock: 25, Rating: 4.4, Reviews: 67},
		{ID: 4, Name: "Wireless Mouse", Price: 49.99, Image: "/file.svg", Description: "Precision wireless mouse with ergonomic design", Category: "Accessories", InStock: false, Stock: 0, Rating: 4.2, Reviews: 94},
		{ID: 5, Name: "USB-C Hub", Price: 89.99, Image: "/window.svg", Description: "Multi-port USB-C hub with 4K HDMI output", Category: "Accessories", InStock: true, Stock: 12, Rating: 4.6, Reviews: 156},
		{ID: 6, Name: "Bluetooth Speaker", Price: 129.99, Image: "/next.svg", Description: "Portable Bluetooth speaker with premium sound", Category: "Electronics", InStock: true, Stock: 20, Rating: 4.7, Reviews: 203},
	}
}

// ProductModel is the in-memory catalogue. Callers receive copies, never
// pointers into the store.
type ProductModel struct {
	mu       sync.RWMutex
	products []*Product
}

func NewProductModel(seed []Product) *ProductModel {
	m := &ProductModel{}
	for i := range seed {
		p := seed[i]
		if p.Version == 0 {
			p.Version = 1
		}
		m.products = append(m.products, &p)
	}
	return m
}

func (m *ProductModel) Insert(product *Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var maxID int64
	for _, p := range m.products {
		maxID = max(maxID, p.ID)
	}

	product.ID = maxID + 1
	product.Version = 1
	if product.Image == "" {
		product.Image = defaultImage
	}

	stored := *product
	m.products = append(m.products, &stored)
	return nil
}

func (m *ProductModel) Get(id int64) (*Product, error) {
	if id < 1 {
		return nil, ErrRecordNotFound
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, p := range m.products {
		if p.ID == id {
			product := *p
			return &product, nil
		}
	}
	return nil, ErrRecordNotFound
}

func (m *ProductModel) GetAll(filters Filters) ([]*Product, Metadata) {
	m.mu.RLock()
	matched := []*Product{}
	for _, p := range m.products {
		if filters.matches(p) {
			product := *p
			matched = append(matched, &product)
		}
	}
	m.mu.RUnlock()

	sortProducts(matched, filters.SortBy)

	total := len(matched)
	start := min(max(filters.offset(), 0), total)
	end := min(start+max(filters.limit(), 0), total)

	return matched[start:end], calculateMetadata(total, filters.Page, filters.PageSize)
}

// Count returns the number of products in the catalogue.
func (m *ProductModel) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.products)
}

// ProductUpdate is a partial update; nil fields are left unchanged. When
// Version is set it must match the stored version.
type ProductUpdate struct {
	ID          int64    `json:"id"`
	Version     *int32   `json:"version"`
	Name        *string  `json:"name"`
	Price       *float64 `json:"price"`
	Image       *string  `json:"image"`
	Description *string  `json:"description"`
	Category    *string  `json:"category"`
	InStock     *bool    `json:"inStock"`
	Stock       *int     `json:"stock"`
}

type UpdateFailure struct {
	ID  int64 `json:"id"`
	Err error `json:"-"`
}

// BulkUpdate applies each update independently. Updates that fail are
// reported and skipped; they never abort the batch.
func (m *ProductModel) BulkUpdate(updates []ProductUpdate) ([]*Product, []UpdateFailure) {
	m.mu.Lock()
	defer m.mu.Unlock()

	updated := []*Product{}
	failures := []UpdateFailure{}

	for _, u := range updates {
		idx := slices.IndexFunc(m.products, func(p *Product) bool { return p.ID == u.ID })
		if idx == -1 {
			failures = append(failures, UpdateFailure{ID: u.ID, Err: ErrRecordNotFound})
			continue
		}

		current := m.products[idx]
		if u.Version != nil && *u.Version != current.Version {
			failures = append(failures, UpdateFailure{ID: u.ID, Err: ErrEditConflict})
			continue
		}

		next := *current
		u.apply(&next)

		v := validator.New()
		if ValidateProduct(v, &next); !v.Valid() {
			failures = append(failures, UpdateFailure{ID: u.ID, Err: v.Err()})
			continue
		}

		next.Version++
		m.products[idx] = &next

		product := next
		updated = append(updated, &product)
	}

	return updated, failures
}

func (u ProductUpdate) apply(p *Product) {
	if u.Name != nil {
		p.Name = *u.Name
	}
	if u.Price != nil {
		p.Price = *u.Price
	}
	if u.Image != nil {
		p.Image = *u.Image
	}
	if u.Description != nil {
		p.Description = *u.Description
	}
	if u.Category != nil {
		p.Category = *u.Category
	}
	if u.InStock != nil {
		p.InStock = *u.InStock
	}
	if u.Stock != nil {
		p.Stock = *u.Stock
	}
}

func sortProducts(products []*Product, sortBy string) {
	var compare func(a, b *Product) int

	switch sortBy {
	case "price-low":
		compare = func(a, b *Product) int { return cmp.Compare(a.Price, b.Price) }
	case "price-high":
		compare = func(a, b *Product) int { return cmp.Compare(b.Price, a.Price) }
	case "rating":
		compare = func(a, b *Product) int { return cmp.Compare(b.Rating, a.Rating) }
	case "id":
		compare = func(a, b *Product) int { return cmp.Compare(a.ID, b.ID) }
	case "-id":
		compare = func(a, b *Product) int { return cmp.Compare(b.ID, a.ID) }
	default:
		compare = func(a, b *Product) int {
			return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
		}
	}

	slices.SortStableFunc(products, compare)
}
