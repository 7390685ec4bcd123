package checkout

import (
	"errors"
	"time"

	"github.com/aleamz/salespoint/internal/sales/customers"
	"github.com/aleamz/salespoint/internal/sales/orders"
)

var (
	ErrNoCustomer = errors.New("a customer must be attached before submitting")
	ErrEmptyCart  = errors.New("the bill has no lines")
)

// PaymentInput carries the cashier-entered figures that accompany a
// submission.
type PaymentInput struct {
	StaffID      int64
	CustomerPaid float64
	SaleDate     *time.Time
}

// NormalizeSaleDate defaults a missing sale date to now. Backdated (or
// forward-dated) sales are pinned to 01:00 local time of the chosen day so
// they sort deterministically within that day.
func NormalizeSaleDate(chosen *time.Time, now time.Time) time.Time {
	if chosen == nil {
		return now
	}
	y1, m1, d1 := chosen.Date()
	y2, m2, d2 := now.Date()
	if y1 == y2 && m1 == m2 && d1 == d2 {
		return now
	}
	return time.Date(y1, m1, d1, 1, 0, 0, 0, now.Location())
}

// BuildOrderPayload turns a bill plus its customer and payment figures into a
// complete order submission. The bill is read, never mutated; callers reset it
// only after the order is accepted downstream.
func BuildOrderPayload(bill *Bill, customer customers.Customer, payment PaymentInput, now time.Time) (orders.CreateOrderRequest, error) {
	if len(bill.Lines) == 0 {
		return orders.CreateOrderRequest{}, ErrEmptyCart
	}

	total := bill.Total()
	discounted := total
	var discountKind *string
	var discountValue float64
	if bill.Discount != nil {
		applied, err := bill.Discount.Apply(total)
		if err != nil {
			return orders.CreateOrderRequest{}, err
		}
		discounted = applied
		kind := string(bill.Discount.Kind)
		discountKind = &kind
		discountValue = bill.Discount.Value
	}

	lines := make([]orders.CreateOrderLine, 0, len(bill.Lines))
	for i := range bill.Lines {
		l := &bill.Lines[i]
		line := orders.CreateOrderLine{
			ProductID: l.ProductID,
			Barcode:   l.Barcode,
			Name:      l.Name,
			Quantity:  l.EffectiveQuantity(),
			UnitPrice: l.UnitPrice(),
			Subtotal:  l.Subtotal(),
			Serials:   append([]string(nil), l.Serials...),
		}
		if l.Variant != nil {
			variantID := l.Variant.VariantID
			line.VariantID = &variantID
		}
		lines = append(lines, line)
	}

	return orders.CreateOrderRequest{
		StaffID:             payment.StaffID,
		CustomerID:          customer.ID,
		CustomerName:        customer.Name,
		CustomerPhone:       customer.Phone,
		CustomerAddress:     customer.Address,
		Lines:               lines,
		DiscountKind:        discountKind,
		DiscountValue:       discountValue,
		TotalAmount:         total,
		TotalAmountDiscount: discounted,
		CustomerPaid:        payment.CustomerPaid,
		SaleDate:            NormalizeSaleDate(payment.SaleDate, now),
	}, nil
}
