package products

// SearchProductsRequest filters the catalog listing.
type SearchProductsRequest struct {
	Keyword string
	Limit   int
	Offset  int
}

// SearchProductsResponse mirrors the product search contract.
type SearchProductsResponse struct {
	Products []Product `json:"products"`
	Total    int       `json:"total"`
}

type CreateVariantRequest struct {
	Attributes []Attribute `json:"attributes" validate:"required,min=1,dive"`
	SellPrice  float64     `json:"sell_price" validate:"gte=0"`
	CostPrice  float64     `json:"cost_price" validate:"gte=0"`
	Stock      int         `json:"stock" validate:"gte=0"`
	Serials    []string    `json:"serials" validate:"omitempty,unique,dive,required"`
	Images     []string    `json:"images"`
}

type CreateProductRequest struct {
	Barcode    string                 `json:"barcode" validate:"required"`
	Name       string                 `json:"name" validate:"required"`
	SellPrice  float64                `json:"sell_price" validate:"gte=0"`
	CostPrice  float64                `json:"cost_price" validate:"gte=0"`
	Stock      int                    `json:"stock" validate:"gte=0"`
	IsVariable bool                   `json:"is_variable"`
	IsSerial   bool                   `json:"is_serial"`
	Variants   []CreateVariantRequest `json:"variants" validate:"omitempty,dive"`
	Serials    []string               `json:"serials" validate:"omitempty,unique,dive,required"`
}

type UpdateProductRequest struct {
	Barcode   *string  `json:"barcode" validate:"omitempty,min=1"`
	Name      *string  `json:"name" validate:"omitempty,min=1"`
	SellPrice *float64 `json:"sell_price" validate:"omitempty,gte=0"`
	CostPrice *float64 `json:"cost_price" validate:"omitempty,gte=0"`
	Stock     *int     `json:"stock" validate:"omitempty,gte=0"`
	IsActive  *bool    `json:"is_active"`
}

// SerialLookupRequest asks for the available serials of a product or one of
// its variants.
type SerialLookupRequest struct {
	ProductID int64  `json:"product_id" validate:"required,gt=0"`
	VariantID *int64 `json:"variant_id" validate:"omitempty,gt=0"`
}
