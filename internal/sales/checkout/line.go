package checkout

import (
	"github.com/google/uuid"

	"github.com/aleamz/salespoint/internal/catalog/products"
)

// LineKind discriminates which price and quantity fields of a cart line are
// authoritative.
type LineKind string

const (
	// LineKindPlain is a product without variants or serial tracking.
	LineKindPlain LineKind = "PLAIN"
	// LineKindVariant is a variant without serial tracking.
	LineKindVariant LineKind = "VARIANT"
	// LineKindVariantSerial is a serial-tracked variant.
	LineKindVariantSerial LineKind = "VARIANT_SERIAL"
	// LineKindSerial is a serial-tracked product without variants.
	LineKindSerial LineKind = "SERIAL"
)

// VariantSnapshot captures the chosen variant at selection time. Prices are
// copies; later catalog edits never change an in-progress line.
type VariantSnapshot struct {
	VariantID     int64                `json:"variant_id"`
	Attributes    []products.Attribute `json:"attributes"`
	SellPrice     float64              `json:"sell_price"`
	RealSellPrice *float64             `json:"real_sell_price,omitempty"`
}

// CartLine is one row of a bill. ID is the sole key for line-level
// operations; the same product may legitimately appear on several lines.
type CartLine struct {
	ID        string   `json:"cart_line_id"`
	Kind      LineKind `json:"kind"`
	ProductID int64    `json:"product_id"`
	Barcode   string   `json:"barcode"`
	Name      string   `json:"name"`
	Quantity  int      `json:"quantity"`
	SellPrice float64  `json:"sell_price"`
	// RealSellPrice is set only after a discount is applied; when absent,
	// SellPrice is authoritative.
	RealSellPrice *float64         `json:"real_sell_price,omitempty"`
	Serials       []string         `json:"serials,omitempty"`
	Variant       *VariantSnapshot `json:"variant,omitempty"`
	Discount      *Discount        `json:"discount,omitempty"`
}

// NewLineID mints the opaque identifier for a fresh cart line.
func NewLineID() string {
	return uuid.NewString()
}

func (l CartLine) isVariant() bool {
	return l.Variant != nil
}

// HasSerials reports whether the line's quantity is derived from serials.
func (l CartLine) HasSerials() bool {
	return len(l.Serials) > 0
}

// EffectiveQuantity is the serial count for serial-bearing lines and the
// stored quantity otherwise, defaulting to one.
func (l CartLine) EffectiveQuantity() int {
	if len(l.Serials) > 0 {
		return len(l.Serials)
	}
	if l.Quantity > 0 {
		return l.Quantity
	}
	return 1
}

// BasePrice is the undiscounted unit price: the variant's price for variant
// lines, the product's otherwise.
func (l CartLine) BasePrice() float64 {
	if l.isVariant() {
		return l.Variant.SellPrice
	}
	return l.SellPrice
}

// UnitPrice resolves the price one unit actually sells at: the discounted
// price when present (line level first, then variant level), the base price
// otherwise.
func (l CartLine) UnitPrice() float64 {
	if l.RealSellPrice != nil {
		return *l.RealSellPrice
	}
	if l.isVariant() && l.Variant.RealSellPrice != nil {
		return *l.Variant.RealSellPrice
	}
	return l.BasePrice()
}

// Subtotal is the unit price times the effective quantity.
func (l CartLine) Subtotal() float64 {
	return l.UnitPrice() * float64(l.EffectiveQuantity())
}
