package data

import (
	"math"
	"sort"
)

const (
	OrderPending   = "pending"
	OrderCompleted = "completed"
	OrderCancelled = "cancelled"
)

type Order struct {
	ID       int64   `json:"id"`
	Customer string  `json:"customer"`
	Amount   float64 `json:"amount"`
	Status   string  `json:"status"`
	Date     string  `json:"date"`
}

type TopProduct struct {
	ID      int64   `json:"id"`
	Name    string  `json:"name"`
	Sales   int     `json:"sales"`
	Revenue float64 `json:"revenue"`
}

type Analytics struct {
	TotalProducts int            `json:"totalProducts"`
	TotalOrders   int            `json:"totalOrders"`
	TotalRevenue  float64        `json:"totalRevenue"`
	TotalUsers    int            `json:"totalUsers"`
	RecentOrders  []Order        `json:"recentOrders"`
	TopProducts   []TopProduct   `json:"topProducts"`
	Inventory     InventoryStats `json:"inventory"`
}

// InventoryStats is derived from the live catalogue.
type InventoryStats struct {
	InStock    int            `json:"inStock"`
	OutOfStock int            `json:"outOfStock"`
	Units      int            `json:"units"`
	Value      float64        `json:"value"`
	Categories map[string]int `json:"categories"`
}

// Order history is mocked; there is no checkout.
var (
	mockOrderCount   = 1247
	mockOrderRevenue = 89650.50

	mockRecentOrders = []Order{
		{ID: 1001, Customer: "Alice Johnson", Amount: 299.99, Status: OrderCompleted, Date: "2024-01-15"},
		{ID: 1002, Customer: "Bob Smith", Amount: 199.99, Status: OrderPending, Date: "2024-01-15"},
		{ID: 1003, Customer: "Carol Davis", Amount: 79.99, Status: OrderCompleted, Date: "2024-01-14"},
		{ID: 1004, Customer: "David Wilson", Amount: 449.99, Status: OrderCancelled, Date: "2024-01-14"},
		{ID: 1005, Customer: "Eva Brown", Amount: 129.99, Status: OrderCompleted, Date: "2024-01-13"},
	}

	mockSales = map[int64]int{1: 245, 2: 189, 3: 156}
)

type AnalyticsModel struct {
	Products *ProductModel
	Users    *UserModel
}

func (m AnalyticsModel) Get() Analytics {
	a := Analytics{
		TotalOrders:  mockOrderCount,
		TotalRevenue: mockOrderRevenue,
		RecentOrders: append([]Order(nil), mockRecentOrders...),
		TopProducts:  []TopProduct{},
		Inventory:    InventoryStats{Categories: map[string]int{}},
	}
	if m.Users != nil {
		a.TotalUsers = m.Users.Count()
	}

	m.Products.mu.RLock()
	defer m.Products.mu.RUnlock()

	a.TotalProducts = len(m.Products.products)
	for _, p := range m.Products.products {
		if p.InStock {
			a.Inventory.InStock++
		} else {
			a.Inventory.OutOfStock++
		}
		a.Inventory.Units += p.Stock
		a.Inventory.Value += p.Price * float64(p.Stock)
		a.Inventory.Categories[p.Category]++

		if sales, ok := mockSales[p.ID]; ok {
			a.TopProducts = append(a.TopProducts, TopProduct{
				ID:      p.ID,
				Name:    p.Name,
				Sales:   sales,
				Revenue: roundCents(p.Price * float64(sales)),
			})
		}
	}
	a.Inventory.Value = roundCents(a.Inventory.Value)

	sort.Slice(a.TopProducts, func(i, j int) bool {
		return a.TopProducts[i].Sales > a.TopProducts[j].Sales
	})

	return a
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
