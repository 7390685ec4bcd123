package checkout

import (
	"errors"
	"fmt"
)

// DiscountKind selects how a discount value is interpreted.
type DiscountKind string

const (
	// DiscountMoney subtracts an absolute amount from the unit price.
	DiscountMoney DiscountKind = "money"
	// DiscountPercent subtracts a percentage of the unit price.
	DiscountPercent DiscountKind = "percent"
)

var (
	ErrDiscountKind  = errors.New("unknown discount kind")
	ErrDiscountRange = errors.New("discount value out of range")
)

// Discount is stored per unit price, never per line total.
type Discount struct {
	Kind  DiscountKind `json:"kind"`
	Value float64      `json:"value"`
}

// Validate bounds the discount value: non-negative for both kinds, and at
// most 100 for percent.
func (d Discount) Validate() error {
	switch d.Kind {
	case DiscountMoney:
		if d.Value < 0 {
			return fmt.Errorf("%w: money discount must be >= 0", ErrDiscountRange)
		}
	case DiscountPercent:
		if d.Value < 0 || d.Value > 100 {
			return fmt.Errorf("%w: percent discount must be within [0,100]", ErrDiscountRange)
		}
	default:
		return fmt.Errorf("%w: %q", ErrDiscountKind, d.Kind)
	}
	return nil
}

// Apply computes the effective price for a base price. The result is clamped
// at zero; a discount never drives a price negative.
func (d Discount) Apply(basePrice float64) (float64, error) {
	if err := d.Validate(); err != nil {
		return 0, err
	}
	var price float64
	switch d.Kind {
	case DiscountMoney:
		price = basePrice - d.Value
	case DiscountPercent:
		price = basePrice - basePrice*d.Value/100
	}
	if price < 0 {
		price = 0
	}
	return price, nil
}

// EffectivePrice is the raw discount computation, exposed for callers that
// hold the parts separately.
func EffectivePrice(basePrice float64, kind DiscountKind, value float64) (float64, error) {
	return Discount{Kind: kind, Value: value}.Apply(basePrice)
}
