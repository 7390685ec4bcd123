package checkout

import "time"

type UpdateQuantityRequest struct {
	Quantity int `json:"quantity" validate:"required,gte=1"`
}

type UpdateDiscountRequest struct {
	Kind  DiscountKind `json:"kind" validate:"required"`
	Value float64      `json:"value"`
}

type ReplaceSerialsRequest struct {
	Serials []string `json:"serials" validate:"required,min=1"`
}

type AttachCustomerRequest struct {
	CustomerID int64 `json:"customer_id" validate:"required,gt=0"`
}

type BillDiscountRequest struct {
	Discount *Discount `json:"discount"`
}

type SubmitRequest struct {
	StaffID      int64      `json:"staff_id" validate:"required,gt=0"`
	CustomerPaid float64    `json:"customer_paid" validate:"gte=0"`
	SaleDate     *time.Time `json:"sale_date,omitempty"`
}

// BillResponse decorates the stored bill with its derived total so clients
// never recompute it.
type BillResponse struct {
	*Bill
	Total float64 `json:"total"`
}

func newBillResponse(bill *Bill) BillResponse {
	return BillResponse{Bill: bill, Total: bill.Total()}
}
