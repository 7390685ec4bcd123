package checkout

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aleamz/salespoint/internal/sales/customers"
)

var testCustomer = customers.Customer{ID: 7, Name: "Nguyen Van A", Phone: "0901234567"}

func TestNormalizeSaleDateDefaultsToNow(t *testing.T) {
	now := time.Date(2026, 3, 10, 14, 30, 0, 0, time.Local)
	assert.Equal(t, now, NormalizeSaleDate(nil, now))
}

func TestNormalizeSaleDateTodayKeepsNow(t *testing.T) {
	now := time.Date(2026, 3, 10, 14, 30, 0, 0, time.Local)
	chosen := time.Date(2026, 3, 10, 9, 0, 0, 0, time.Local)
	assert.Equal(t, now, NormalizeSaleDate(&chosen, now))
}

func TestNormalizeSaleDateBackdatedPinsToOne(t *testing.T) {
	now := time.Date(2026, 3, 10, 14, 30, 0, 0, time.Local)
	chosen := time.Date(2026, 3, 8, 23, 45, 0, 0, time.Local)

	got := NormalizeSaleDate(&chosen, now)
	assert.Equal(t, time.Date(2026, 3, 8, 1, 0, 0, 0, time.Local), got)
}

func TestBuildOrderPayloadEmptyCart(t *testing.T) {
	bill := NewBill(time.Now())
	_, err := BuildOrderPayload(bill, testCustomer, PaymentInput{StaffID: 1}, time.Now())
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestBuildOrderPayload(t *testing.T) {
	now := time.Date(2026, 3, 10, 14, 30, 0, 0, time.Local)
	bill := NewBill(now)

	plain := plainLine(100000, 2)
	bill.AddLine(plain)

	variant := CartLine{
		ID:        NewLineID(),
		Kind:      LineKindVariantSerial,
		ProductID: 9,
		Barcode:   "IP15-128",
		Name:      "iPhone 15",
		Quantity:  1,
		SellPrice: 0,
		Serials:   []string{"SN1", "SN2"},
		Variant:   &VariantSnapshot{VariantID: 31, SellPrice: 20000000},
	}
	bill.AddLine(variant)

	bill.Discount = &Discount{Kind: DiscountPercent, Value: 10}

	payload, err := BuildOrderPayload(bill, testCustomer, PaymentInput{StaffID: 3, CustomerPaid: 36000000}, now)
	require.NoError(t, err)

	assert.Equal(t, int64(3), payload.StaffID)
	assert.Equal(t, int64(7), payload.CustomerID)
	assert.Equal(t, "Nguyen Van A", payload.CustomerName)

	require.Len(t, payload.Lines, 2)
	assert.Equal(t, 2, payload.Lines[0].Quantity)
	assert.Equal(t, 200000.0, payload.Lines[0].Subtotal)
	assert.Nil(t, payload.Lines[0].VariantID)

	require.NotNil(t, payload.Lines[1].VariantID)
	assert.Equal(t, int64(31), *payload.Lines[1].VariantID)
	// Serial count drives the quantity and subtotal.
	assert.Equal(t, 2, payload.Lines[1].Quantity)
	assert.Equal(t, 40000000.0, payload.Lines[1].Subtotal)
	assert.Equal(t, []string{"SN1", "SN2"}, payload.Lines[1].Serials)

	assert.Equal(t, 40200000.0, payload.TotalAmount)
	assert.Equal(t, 36180000.0, payload.TotalAmountDiscount)
	require.NotNil(t, payload.DiscountKind)
	assert.Equal(t, "percent", *payload.DiscountKind)
	assert.Equal(t, 10.0, payload.DiscountValue)
	assert.Equal(t, 36000000.0, payload.CustomerPaid)
	assert.Equal(t, now, payload.SaleDate)
}

func TestBuildOrderPayloadWithoutBillDiscount(t *testing.T) {
	bill := NewBill(time.Now())
	bill.AddLine(plainLine(50000, 1))

	payload, err := BuildOrderPayload(bill, testCustomer, PaymentInput{StaffID: 1, CustomerPaid: 50000}, time.Now())
	require.NoError(t, err)

	assert.Nil(t, payload.DiscountKind)
	assert.Equal(t, payload.TotalAmount, payload.TotalAmountDiscount)
}

func TestBuildOrderPayloadDoesNotMutateBill(t *testing.T) {
	bill := NewBill(time.Now())
	bill.AddLine(serialLine("SN1"))

	before := len(bill.Lines)
	payload, err := BuildOrderPayload(bill, testCustomer, PaymentInput{StaffID: 1}, time.Now())
	require.NoError(t, err)

	payload.Lines[0].Serials[0] = "mutated"
	assert.Equal(t, "SN1", bill.Lines[0].Serials[0])
	assert.Len(t, bill.Lines, before)
}
