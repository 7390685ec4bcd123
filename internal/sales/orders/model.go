package orders

import "time"

// Order is one completed point-of-sale transaction. Customer fields are a
// snapshot taken at payment time.
type Order struct {
	ID              int64     `json:"id"`
	DocNumber       string    `json:"doc_number"`
	StaffID         int64     `json:"staff_id"`
	CustomerID      int64     `json:"customer_id"`
	CustomerName    string    `json:"customer_name"`
	CustomerPhone   string    `json:"customer_phone"`
	CustomerAddress *string   `json:"customer_address,omitempty"`
	DiscountKind    *string   `json:"discount_kind,omitempty"`
	DiscountValue   float64   `json:"discount_value"`
	TotalAmount     float64   `json:"total_amount"`
	// TotalAmountDiscount is the payable total after the order-level discount.
	TotalAmountDiscount float64 `json:"total_amount_discount"`
	CustomerPaid        float64 `json:"customer_paid"`
	// ChangeAmount may be negative, signaling outstanding customer debt.
	ChangeAmount float64     `json:"change_amount"`
	SaleDate     time.Time   `json:"sale_date"`
	CreatedAt    time.Time   `json:"created_at"`
	Lines        []OrderLine `json:"lines,omitempty"`
}

type OrderLine struct {
	ID        int64    `json:"id"`
	OrderID   int64    `json:"order_id"`
	ProductID int64    `json:"product_id"`
	VariantID *int64   `json:"variant_id,omitempty"`
	Barcode   string   `json:"barcode"`
	Name      string   `json:"name"`
	Quantity  int      `json:"quantity"`
	UnitPrice float64  `json:"unit_price"`
	Subtotal  float64  `json:"subtotal"`
	Serials   []string `json:"serials,omitempty"`
	LineOrder int      `json:"line_order"`
}
