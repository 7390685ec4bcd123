package checkout

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aleamz/salespoint/internal/catalog/products"
	"github.com/aleamz/salespoint/internal/platform/httpx"
	"github.com/aleamz/salespoint/internal/sales/customers"
	"github.com/aleamz/salespoint/internal/sales/orders"
)

var (
	ErrVariantRequired = errors.New("product has variants, a variant must be chosen")
	ErrSerialsRequired = errors.New("product is serial-tracked, serials must be chosen")
	ErrVariantMismatch = errors.New("variant does not belong to the product")
)

// CatalogReader is the slice of the catalog the checkout flow needs.
type CatalogReader interface {
	Get(ctx context.Context, id int64) (*products.Product, error)
	GetVariant(ctx context.Context, id int64) (*products.Variant, error)
}

// CustomerReader resolves the customer attached to a submission.
type CustomerReader interface {
	Get(ctx context.Context, id int64) (*customers.Customer, error)
}

// OrderCreator accepts the assembled payload. In production this is the
// orders service.
type OrderCreator interface {
	Create(ctx context.Context, req orders.CreateOrderRequest) (*orders.Order, error)
}

type Service struct {
	logger    *slog.Logger
	store     Store
	catalog   CatalogReader
	customers CustomerReader
	orders    OrderCreator
	now       func() time.Time
}

func NewService(logger *slog.Logger, store Store, catalog CatalogReader, customerReader CustomerReader, orderCreator OrderCreator) *Service {
	return &Service{
		logger:    logger,
		store:     store,
		catalog:   catalog,
		customers: customerReader,
		orders:    orderCreator,
		now:       time.Now,
	}
}

func (s *Service) OpenBill(ctx context.Context) (*Bill, error) {
	bill := NewBill(s.now())
	if err := s.store.Save(ctx, bill); err != nil {
		return nil, err
	}
	return bill, nil
}

func (s *Service) GetBill(ctx context.Context, billID string) (*Bill, error) {
	return s.store.Get(ctx, billID)
}

func (s *Service) CloseBill(ctx context.Context, billID string) error {
	return s.store.Delete(ctx, billID)
}

// Selection is the cashier's pick: a product, optionally narrowed to a
// variant, optionally with serial numbers. LineID is set when the pick
// confirms additional serials for an existing line instead of creating a new
// one.
type Selection struct {
	ProductID int64    `json:"product_id" validate:"required,gt=0"`
	VariantID *int64   `json:"variant_id,omitempty"`
	Serials   []string `json:"serials,omitempty"`
	Quantity  int      `json:"quantity,omitempty"`
	LineID    *string  `json:"cart_line_id,omitempty"`
}

// AddLine materializes a selection into a cart line. Prices and names are
// snapshotted from the catalog at this moment.
func (s *Service) AddLine(ctx context.Context, billID string, sel Selection) (*Bill, error) {
	bill, err := s.store.Get(ctx, billID)
	if err != nil {
		return nil, err
	}

	product, err := s.catalog.Get(ctx, sel.ProductID)
	if err != nil {
		return nil, err
	}

	line, err := s.buildLine(ctx, product, sel)
	if err != nil {
		return nil, err
	}

	if sel.LineID != nil {
		// Confirming serials for an existing line replaces its serial set.
		target := bill.Line(*sel.LineID)
		if target == nil {
			return nil, fmt.Errorf("%w: %s", ErrLineNotFound, *sel.LineID)
		}
		if err := bill.ReplaceSerials(*sel.LineID, sel.Serials); err != nil {
			return nil, err
		}
	} else {
		if err := bill.ValidateSerials("", line.Serials); err != nil {
			return nil, err
		}
		bill.AddLine(line)
	}

	bill.UpdatedAt = s.now()
	if err := s.store.Save(ctx, bill); err != nil {
		return nil, err
	}
	return bill, nil
}

func (s *Service) buildLine(ctx context.Context, product *products.Product, sel Selection) (CartLine, error) {
	line := CartLine{
		ID:        NewLineID(),
		ProductID: product.ID,
		Barcode:   product.Barcode,
		Name:      product.Name,
		SellPrice: product.SellPrice,
		Quantity:  1,
	}
	if sel.Quantity > 0 {
		line.Quantity = sel.Quantity
	}

	switch {
	case sel.VariantID != nil:
		variant, err := s.catalog.GetVariant(ctx, *sel.VariantID)
		if err != nil {
			return CartLine{}, err
		}
		if variant.ProductID != product.ID {
			return CartLine{}, ErrVariantMismatch
		}
		line.Variant = &VariantSnapshot{
			VariantID:  variant.ID,
			Attributes: variant.Attributes,
			SellPrice:  variant.SellPrice,
		}
		if len(variant.Serials) > 0 {
			if len(sel.Serials) == 0 {
				return CartLine{}, ErrSerialsRequired
			}
			line.Kind = LineKindVariantSerial
			line.Serials = append([]string(nil), sel.Serials...)
		} else {
			line.Kind = LineKindVariant
		}

	case product.IsVariable && len(product.Variants) > 0:
		return CartLine{}, ErrVariantRequired

	case product.IsSerial:
		if len(sel.Serials) == 0 {
			return CartLine{}, ErrSerialsRequired
		}
		line.Kind = LineKindSerial
		line.Serials = append([]string(nil), sel.Serials...)

	default:
		line.Kind = LineKindPlain
	}
	return line, nil
}

func (s *Service) UpdateQuantity(ctx context.Context, billID, lineID string, quantity int) (*Bill, error) {
	return s.mutate(ctx, billID, func(bill *Bill) error {
		return bill.UpdateQuantity(lineID, quantity)
	})
}

func (s *Service) UpdateDiscount(ctx context.Context, billID, lineID string, d Discount) (*Bill, error) {
	return s.mutate(ctx, billID, func(bill *Bill) error {
		return bill.UpdateDiscount(lineID, d)
	})
}

func (s *Service) UpdateBillDiscount(ctx context.Context, billID string, d *Discount) (*Bill, error) {
	return s.mutate(ctx, billID, func(bill *Bill) error {
		if d != nil {
			if err := d.Validate(); err != nil {
				return err
			}
		}
		bill.Discount = d
		return nil
	})
}

func (s *Service) ReplaceSerials(ctx context.Context, billID, lineID string, serials []string) (*Bill, error) {
	return s.mutate(ctx, billID, func(bill *Bill) error {
		return bill.ReplaceSerials(lineID, serials)
	})
}

func (s *Service) RemoveLine(ctx context.Context, billID, lineID string) (*Bill, error) {
	return s.mutate(ctx, billID, func(bill *Bill) error {
		return bill.RemoveLine(lineID)
	})
}

func (s *Service) mutate(ctx context.Context, billID string, fn func(*Bill) error) (*Bill, error) {
	bill, err := s.store.Get(ctx, billID)
	if err != nil {
		return nil, err
	}
	if err := fn(bill); err != nil {
		return nil, err
	}
	bill.UpdatedAt = s.now()
	if err := s.store.Save(ctx, bill); err != nil {
		return nil, err
	}
	return bill, nil
}

// Submit assembles the order payload and hands it to the orders service. The
// bill resets only on acceptance; any failure leaves it exactly as it was, so
// the cashier can retry.
func (s *Service) Submit(ctx context.Context, billID string, payment PaymentInput) (*orders.Order, error) {
	bill, err := s.store.Get(ctx, billID)
	if err != nil {
		return nil, err
	}
	if len(bill.Lines) == 0 {
		return nil, ErrEmptyCart
	}
	if bill.CustomerID == nil {
		return nil, ErrNoCustomer
	}

	customer, err := s.customers.Get(ctx, *bill.CustomerID)
	if err != nil {
		if errors.Is(err, httpx.ErrNotFound) {
			return nil, ErrNoCustomer
		}
		return nil, err
	}

	bill.CustomerPaid = payment.CustomerPaid
	payload, err := BuildOrderPayload(bill, *customer, payment, s.now())
	if err != nil {
		return nil, err
	}

	order, err := s.orders.Create(ctx, payload)
	if err != nil {
		return nil, err
	}

	bill.Reset()
	bill.UpdatedAt = s.now()
	if err := s.store.Save(ctx, bill); err != nil {
		// The order exists; losing the reset only leaves a stale tab behind.
		s.logger.Warn("failed to reset bill after submission", "bill_id", billID, "error", err)
	}

	s.logger.Info("order submitted", "bill_id", billID, "order_id", order.ID, "doc_number", order.DocNumber)
	return order, nil
}

// AttachCustomer links a customer to the bill for the upcoming submission.
func (s *Service) AttachCustomer(ctx context.Context, billID string, customerID int64) (*Bill, error) {
	if _, err := s.customers.Get(ctx, customerID); err != nil {
		return nil, err
	}
	return s.mutate(ctx, billID, func(bill *Bill) error {
		bill.CustomerID = &customerID
		return nil
	})
}
