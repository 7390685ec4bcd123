package products

import "time"

// Attribute is one key/value pair of a variant's combination, e.g. Color=Red.
type Attribute struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Variant represents one attribute combination of a variable product. Each
// combination is unique within its parent product.
type Variant struct {
	ID         int64       `json:"id"`
	ProductID  int64       `json:"product_id"`
	Attributes []Attribute `json:"attributes"`
	SellPrice  float64     `json:"sell_price"`
	CostPrice  float64     `json:"cost_price"`
	Stock      int         `json:"stock"`
	Serials    []string    `json:"serials,omitempty"`
	Images     []string    `json:"images,omitempty"`
}

// Product is a catalog entity. Serials holds the currently available serial
// numbers for serial-tracked products; for variable products the serials live
// on the variants instead.
type Product struct {
	ID         int64     `json:"id"`
	Barcode    string    `json:"barcode"`
	Name       string    `json:"name"`
	SellPrice  float64   `json:"sell_price"`
	CostPrice  float64   `json:"cost_price"`
	Stock      int       `json:"stock"`
	IsVariable bool      `json:"is_variable"`
	IsSerial   bool      `json:"is_serial"`
	IsActive   bool      `json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	Variants []Variant `json:"variants,omitempty"`
	Serials  []string  `json:"serials,omitempty"`
}

// SerialStatus tracks the lifecycle of a tracked unit.
type SerialStatus string

const (
	SerialStatusAvailable SerialStatus = "AVAILABLE"
	SerialStatusSold      SerialStatus = "SOLD"
)
