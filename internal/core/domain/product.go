package domain

import "time"

// StockStatus is the availability label shown on a product.
type StockStatus string

const (
	StockInStock    StockStatus = "In Stock"
	StockOutOfStock StockStatus = "Out of Stock"
	StockUpcoming   StockStatus = "Upcoming"
)

// ParseStockStatus maps an admin-entered label to a StockStatus.
// Empty input defaults to StockInStock.
func ParseStockStatus(s string) (StockStatus, bool) {
	switch StockStatus(s) {
	case "":
		return StockInStock, true
	case StockInStock, StockOutOfStock, StockUpcoming:
		return StockStatus(s), true
	}
	return "", false
}

// ColorVariant is one selectable color of a product.
type ColorVariant struct {
	Name string `json:"name" bson:"name" validate:"required"`
	Hex  string `json:"hex"  bson:"hex"  validate:"required,hexcolor"`
}

// SizeVariant is one selectable size. At least one of the two fields is set.
type SizeVariant struct {
	SizeName     string `json:"sizeName,omitempty"     bson:"sizeName,omitempty"     validate:"required_without=Measurements"`
	Measurements string `json:"measurements,omitempty" bson:"measurements,omitempty" validate:"required_without=SizeName"`
}

// Product is the full catalog document.
type Product struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	Slug          string         `json:"slug"`
	Description   string         `json:"description"`
	Price         float64        `json:"price"`
	OriginalPrice float64        `json:"originalPrice"`
	CategoryID    string         `json:"category"`
	Images        []string       `json:"images"`
	Quantity      int            `json:"quantity"`
	StockStatus   StockStatus    `json:"stockStatus"`
	ColorVariants []ColorVariant `json:"colorVariants"`
	SizeVariants  []SizeVariant  `json:"sizeVariants"`
	Weight        string         `json:"weight,omitempty"`
	DeliveryTime  int            `json:"deliveryTime"`
	SKU           string         `json:"sku,omitempty"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
}

// ProductSummary is the lightweight listing projection.
type ProductSummary struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Slug        string       `json:"slug"`
	Price       float64      `json:"price"`
	Images      []string     `json:"images"`
	StockStatus StockStatus  `json:"stockStatus,omitempty"`
	Category    *CategoryRef `json:"category,omitempty"`
}
