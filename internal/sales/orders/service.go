package orders

import (
	"context"
	"fmt"
	"log/slog"
)

// RevenueInvalidator is notified after an order commits so cached revenue
// figures can be refreshed. Optional.
type RevenueInvalidator interface {
	Bump(ctx context.Context) error
}

type Service struct {
	logger  *slog.Logger
	repo    Repository
	revenue RevenueInvalidator
}

func NewService(logger *slog.Logger, repo Repository, revenue RevenueInvalidator) *Service {
	return &Service{logger: logger, repo: repo, revenue: revenue}
}

// Create persists an order, decrements stock, and consumes the sold serials
// in a single transaction. A failure rolls everything back.
func (s *Service) Create(ctx context.Context, req CreateOrderRequest) (*Order, error) {
	if len(req.Lines) == 0 {
		return nil, fmt.Errorf("order has no lines")
	}

	docNumber, err := s.repo.GenerateNumber(ctx, req.SaleDate)
	if err != nil {
		return nil, fmt.Errorf("generate doc number: %w", err)
	}

	order := Order{
		DocNumber:           docNumber,
		StaffID:             req.StaffID,
		CustomerID:          req.CustomerID,
		CustomerName:        req.CustomerName,
		CustomerPhone:       req.CustomerPhone,
		CustomerAddress:     req.CustomerAddress,
		DiscountKind:        req.DiscountKind,
		DiscountValue:       req.DiscountValue,
		TotalAmount:         req.TotalAmount,
		TotalAmountDiscount: req.TotalAmountDiscount,
		CustomerPaid:        req.CustomerPaid,
		ChangeAmount:        req.CustomerPaid - req.TotalAmountDiscount,
		SaleDate:            req.SaleDate,
	}

	var orderID int64
	err = s.repo.WithTx(ctx, func(ctx context.Context, repo Repository) error {
		var err error
		orderID, err = repo.Create(ctx, order)
		if err != nil {
			return fmt.Errorf("create order: %w", err)
		}

		for i, lineReq := range req.Lines {
			line := OrderLine{
				OrderID:   orderID,
				ProductID: lineReq.ProductID,
				VariantID: lineReq.VariantID,
				Barcode:   lineReq.Barcode,
				Name:      lineReq.Name,
				Quantity:  lineReq.Quantity,
				UnitPrice: lineReq.UnitPrice,
				Subtotal:  lineReq.Subtotal,
				Serials:   lineReq.Serials,
				LineOrder: i + 1,
			}
			if _, err := repo.InsertLine(ctx, line); err != nil {
				return fmt.Errorf("insert order line: %w", err)
			}
			if err := repo.DecrementStock(ctx, lineReq.ProductID, lineReq.VariantID, lineReq.Quantity); err != nil {
				return err
			}
			if err := repo.ConsumeSerials(ctx, lineReq.ProductID, lineReq.Serials); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.revenue != nil {
		if err := s.revenue.Bump(ctx); err != nil {
			s.logger.Warn("revenue cache bump failed", "error", err)
		}
	}

	return s.repo.Get(ctx, orderID)
}

func (s *Service) Get(ctx context.Context, id int64) (*Order, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, req ListOrdersRequest) ([]Order, int, error) {
	if req.Limit <= 0 {
		req.Limit = 50
	}
	if req.Offset < 0 {
		req.Offset = 0
	}
	return s.repo.List(ctx, req)
}
