package reports

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/aleamz/salespoint/internal/sales/orders"
)

// RevenueProvider is the slice of the orders repository the reports service
// reads from.
type RevenueProvider interface {
	RevenueByDay(ctx context.Context, from, to time.Time) ([]orders.DayRevenue, error)
}

type RevenueReport struct {
	From    time.Time           `json:"from"`
	To      time.Time           `json:"to"`
	Days    []orders.DayRevenue `json:"days"`
	Orders  int                 `json:"orders"`
	Revenue float64             `json:"revenue"`
}

type Service struct {
	logger  *slog.Logger
	revenue RevenueProvider
	cache   *Cache
	group   singleflight.Group
}

func NewService(logger *slog.Logger, revenue RevenueProvider, cache *Cache) *Service {
	return &Service{logger: logger, revenue: revenue, cache: cache}
}

// Revenue aggregates daily revenue over [from, to). Concurrent requests for
// the same window collapse into one database round trip, and results are
// cached until the next order bumps the version.
func (s *Service) Revenue(ctx context.Context, from, to time.Time) (*RevenueReport, error) {
	key, err := s.cache.BuildKey(ctx, keyRevenue(from, to))
	if err != nil {
		return nil, fmt.Errorf("reports: build cache key: %w", err)
	}

	result, err, _ := s.group.Do(key, func() (interface{}, error) {
		var report RevenueReport
		err := s.cache.FetchJSON(ctx, key, &report, func(ctx context.Context) (interface{}, error) {
			return s.build(ctx, from, to)
		})
		if err != nil {
			return nil, err
		}
		return &report, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*RevenueReport), nil
}

func (s *Service) build(ctx context.Context, from, to time.Time) (*RevenueReport, error) {
	days, err := s.revenue.RevenueByDay(ctx, from, to)
	if err != nil {
		return nil, err
	}
	if days == nil {
		days = []orders.DayRevenue{}
	}

	report := &RevenueReport{From: from, To: to, Days: days}
	for _, d := range days {
		report.Orders += d.Orders
		report.Revenue += d.Revenue
	}
	return report, nil
}

// Warm precomputes the report for a window, used by the background warmup
// job.
func (s *Service) Warm(ctx context.Context, from, to time.Time) error {
	if _, err := s.Revenue(ctx, from, to); err != nil {
		return err
	}
	s.logger.Info("revenue report warmed", "from", from.Format("2006-01-02"), "to", to.Format("2006-01-02"))
	return nil
}
