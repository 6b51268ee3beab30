package domain

import "github.com/shopspring/decimal"

type Product struct {
	ID          string          `db:"pid" json:"id"`
	Name        string          `db:"name" json:"name"`
	Category    string          `db:"category" json:"category"`
	Price       decimal.Decimal `db:"price" json:"price"`
	Stock       int             `db:"stock_count" json:"stock"`
	Description string          `db:"descr" json:"description"`
}

type Availability struct {
	Status string `json:"status"` // IN_STOCK | LOW_STOCK | OUT_OF_STOCK
	Qty    int    `json:"qty,omitempty"`
}

// CartLine is a cart row joined with the live catalog record.
type CartLine struct {
	ProductID string          `db:"pid"`
	Name      string          `db:"name"`
	Price     decimal.Decimal `db:"price"`
	Qty       int             `db:"qty"`
	Stock     int             `db:"stock_count"`
}

func (l CartLine) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Qty)))
}

type Cart struct {
	Lines []CartLine
	Total decimal.Decimal
}

type Order struct {
	No        int64  `db:"ono"`
	Customer  string `db:"cid"`
	SessionNo int    `db:"session_no"`
	Date      string `db:"odate"`
	Address   string `db:"shipping_address"`
}

// OrderSummary is a history row: an order header with its summed lines.
type OrderSummary struct {
	Order
	Lines int             `db:"lines"`
	Total decimal.Decimal `db:"total"`
}

type OrderLine struct {
	LineNo    int             `db:"line_no"`
	ProductID string          `db:"pid"`
	Name      string          `db:"name"`
	Category  string          `db:"category"`
	Qty       int             `db:"qty"`
	UnitPrice decimal.Decimal `db:"uprice"`
}

func (l OrderLine) Total() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Qty)))
}

type OrderDetail struct {
	Order Order
	Lines []OrderLine
	Total decimal.Decimal
}

// Receipt is what a successful checkout hands back for display.
type Receipt struct {
	OrderNo int64
	Total   decimal.Decimal
	Address string
	Lines   []OrderLine
}

type SalesReport struct {
	From               string          `json:"from"`
	To                 string          `json:"to"`
	Orders             int             `json:"orders"`
	Products           int             `json:"products"`
	Customers          int             `json:"customers"`
	Revenue            decimal.Decimal `json:"revenue"`
	AveragePerCustomer decimal.Decimal `json:"average_per_customer"`
}

// RankedProduct carries one per-product metric (order count or view count).
type RankedProduct struct {
	ProductID string `db:"pid" json:"id"`
	Name      string `db:"name" json:"name"`
	Category  string `db:"category" json:"category"`
	Metric    int    `db:"metric" json:"count"`
}

type Category struct {
	Name     string `db:"name"`
	Products int    `db:"products"`
}
