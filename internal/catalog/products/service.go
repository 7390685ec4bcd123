package products

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/aleamz/salespoint/internal/platform/httpx"
)

const (
	defaultSearchLimit = 20
	maxSearchLimit     = 100
)

type Service struct {
	repo     Repository
	validate *validator.Validate
}

func NewService(repo Repository) *Service {
	return &Service{
		repo:     repo,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (s *Service) Search(ctx context.Context, req SearchProductsRequest) ([]Product, int, error) {
	if req.Limit <= 0 {
		req.Limit = defaultSearchLimit
	}
	if req.Limit > maxSearchLimit {
		req.Limit = maxSearchLimit
	}
	if req.Offset < 0 {
		req.Offset = 0
	}
	return s.repo.Search(ctx, req)
}

func (s *Service) Get(ctx context.Context, id int64) (*Product, error) {
	p, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("%w: product %d", httpx.ErrNotFound, id)
		}
		return nil, err
	}
	return p, nil
}

func (s *Service) GetVariant(ctx context.Context, id int64) (*Variant, error) {
	v, err := s.repo.GetVariant(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("%w: variant %d", httpx.ErrNotFound, id)
		}
		return nil, err
	}
	return v, nil
}

func (s *Service) ListVariants(ctx context.Context, productID int64) ([]Variant, error) {
	if _, err := s.Get(ctx, productID); err != nil {
		return nil, err
	}
	return s.repo.ListVariants(ctx, productID)
}

// AvailableSerials returns the unsold serials of a product or one of its variants.
func (s *Service) AvailableSerials(ctx context.Context, req SerialLookupRequest) ([]string, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, err
	}
	if _, err := s.Get(ctx, req.ProductID); err != nil {
		return nil, err
	}
	return s.repo.AvailableSerials(ctx, req.ProductID, req.VariantID)
}

func (s *Service) Create(ctx context.Context, req CreateProductRequest) (*Product, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, err
	}
	if req.IsVariable && req.IsSerial {
		return nil, fmt.Errorf("%w: a product cannot be both variable and serial tracked", httpx.ErrValidation)
	}
	if req.IsVariable && len(req.Variants) == 0 {
		return nil, fmt.Errorf("%w: variable product requires at least one variant", httpx.ErrValidation)
	}
	if !req.IsVariable && len(req.Variants) > 0 {
		return nil, fmt.Errorf("%w: variants given for a non-variable product", httpx.ErrValidation)
	}
	if !req.IsSerial && len(req.Serials) > 0 {
		return nil, fmt.Errorf("%w: serials given for a product not serial tracked", httpx.ErrValidation)
	}
	if err := validateVariantUniqueness(req.Variants); err != nil {
		return nil, err
	}

	product := Product{
		Barcode:    req.Barcode,
		Name:       req.Name,
		SellPrice:  req.SellPrice,
		CostPrice:  req.CostPrice,
		Stock:      req.Stock,
		IsVariable: req.IsVariable,
		IsSerial:   req.IsSerial,
	}

	var id int64
	err := s.repo.WithTx(ctx, func(ctx context.Context, repo Repository) error {
		var err error
		id, err = repo.Create(ctx, product)
		if err != nil {
			return fmt.Errorf("create product: %w", err)
		}

		for _, vr := range req.Variants {
			variantID, err := repo.InsertVariant(ctx, Variant{
				ProductID:  id,
				Attributes: vr.Attributes,
				SellPrice:  vr.SellPrice,
				CostPrice:  vr.CostPrice,
				Stock:      vr.Stock,
				Images:     vr.Images,
			})
			if err != nil {
				return fmt.Errorf("create variant: %w", err)
			}
			if len(vr.Serials) > 0 {
				if err := repo.InsertSerials(ctx, id, &variantID, vr.Serials); err != nil {
					return err
				}
			}
		}

		if len(req.Serials) > 0 {
			if err := repo.InsertSerials(ctx, id, nil, req.Serials); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if IsUniqueViolation(err) {
			return nil, fmt.Errorf("%w: barcode %s already exists", httpx.ErrDuplicate, req.Barcode)
		}
		return nil, err
	}

	return s.repo.Get(ctx, id)
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateProductRequest) (*Product, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.Barcode != nil {
		updates["barcode"] = *req.Barcode
	}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.SellPrice != nil {
		updates["sell_price"] = *req.SellPrice
	}
	if req.CostPrice != nil {
		updates["cost_price"] = *req.CostPrice
	}
	if req.Stock != nil {
		updates["stock"] = *req.Stock
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if len(updates) == 0 {
		return s.Get(ctx, id)
	}

	if err := s.repo.Update(ctx, id, updates); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("%w: product %d", httpx.ErrNotFound, id)
		}
		if IsUniqueViolation(err) {
			return nil, fmt.Errorf("%w: barcode already exists", httpx.ErrDuplicate)
		}
		return nil, fmt.Errorf("update product: %w", err)
	}
	return s.Get(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return fmt.Errorf("%w: product %d", httpx.ErrNotFound, id)
		}
		return err
	}
	return nil
}

func validateVariantUniqueness(variants []CreateVariantRequest) error {
	seen := make(map[string]struct{}, len(variants))
	for _, v := range variants {
		key := ""
		for _, a := range v.Attributes {
			key += a.Key + "=" + a.Value + ";"
		}
		if _, dup := seen[key]; dup {
			return fmt.Errorf("%w: duplicate variant combination %s", httpx.ErrValidation, key)
		}
		seen[key] = struct{}{}
	}
	return nil
}
