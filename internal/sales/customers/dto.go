package customers

type ListCustomersRequest struct {
	Keyword string
	Limit   int
	Offset  int
}

type ListCustomersResponse struct {
	Customers []Customer `json:"customers"`
	Total     int        `json:"total"`
}

type CreateCustomerRequest struct {
	Name    string  `json:"name" validate:"required"`
	Phone   string  `json:"phone" validate:"required,min=6"`
	Address *string `json:"address"`
	Email   *string `json:"email" validate:"omitempty,email"`
}
