package customers

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/aleamz/salespoint/internal/platform/httpx"
)

const defaultListLimit = 20

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

func (s *Service) Get(ctx context.Context, id int64) (*Customer, error) {
	c, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("%w: customer %d", httpx.ErrNotFound, id)
		}
		return nil, err
	}
	return c, nil
}

func (s *Service) List(ctx context.Context, req ListCustomersRequest) ([]Customer, int, error) {
	if req.Limit <= 0 {
		req.Limit = defaultListLimit
	}
	if req.Offset < 0 {
		req.Offset = 0
	}
	return s.repo.List(ctx, req)
}

func (s *Service) Create(ctx context.Context, req CreateCustomerRequest) (*Customer, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, err
	}

	customer := Customer{
		Name:    req.Name,
		Phone:   req.Phone,
		Address: req.Address,
		Email:   req.Email,
	}

	id, err := s.repo.Create(ctx, customer)
	if err != nil {
		return nil, fmt.Errorf("create customer: %w", err)
	}
	return s.repo.Get(ctx, id)
}
