package orders

import "time"

// CreateOrderRequest is the fully assembled submission payload produced by
// the checkout payload builder.
type CreateOrderRequest struct {
	StaffID             int64             `json:"staff_id"`
	CustomerID          int64             `json:"customer_id"`
	CustomerName        string            `json:"customer_name"`
	CustomerPhone       string            `json:"customer_phone"`
	CustomerAddress     *string           `json:"customer_address,omitempty"`
	Lines               []CreateOrderLine `json:"product_list"`
	DiscountKind        *string           `json:"discount_type,omitempty"`
	DiscountValue       float64           `json:"discount_value"`
	TotalAmount         float64           `json:"total_amount"`
	TotalAmountDiscount float64           `json:"total_amount_discount"`
	CustomerPaid        float64           `json:"customer_paid"`
	SaleDate            time.Time         `json:"sale_date"`
}

type CreateOrderLine struct {
	ProductID int64    `json:"product_id"`
	VariantID *int64   `json:"variant_id,omitempty"`
	Barcode   string   `json:"barcode"`
	Name      string   `json:"name"`
	Quantity  int      `json:"quantity"`
	UnitPrice float64  `json:"unit_price"`
	Subtotal  float64  `json:"subtotal"`
	Serials   []string `json:"serials,omitempty"`
}

type ListOrdersRequest struct {
	DateFrom *time.Time
	DateTo   *time.Time
	Limit    int
	Offset   int
}

type ListOrdersResponse struct {
	Orders []Order `json:"orders"`
	Total  int     `json:"total"`
}
