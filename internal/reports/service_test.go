package reports

import (
	"context"
	"log/slog"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aleamz/salespoint/internal/sales/orders"
)

type mockRevenue struct {
	rows  []orders.DayRevenue
	calls int
}

func (m *mockRevenue) RevenueByDay(ctx context.Context, from, to time.Time) ([]orders.DayRevenue, error) {
	m.calls++
	return m.rows, nil
}

func newTestService(t *testing.T, rows []orders.DayRevenue) (*Service, *mockRevenue, *Cache) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	cache := NewCache(client, time.Minute)
	provider := &mockRevenue{rows: rows}
	return NewService(slog.Default(), provider, cache), provider, cache
}

func window() (time.Time, time.Time) {
	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	return from, from.AddDate(0, 0, 7)
}

func TestRevenueAggregates(t *testing.T) {
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	svc, _, _ := newTestService(t, []orders.DayRevenue{
		{Day: day, Orders: 3, Revenue: 450000},
		{Day: day.AddDate(0, 0, 1), Orders: 1, Revenue: 120000},
	})

	from, to := window()
	report, err := svc.Revenue(context.Background(), from, to)
	require.NoError(t, err)

	assert.Equal(t, 4, report.Orders)
	assert.Equal(t, 570000.0, report.Revenue)
	assert.Len(t, report.Days, 2)
}

func TestRevenueEmptyWindow(t *testing.T) {
	svc, _, _ := newTestService(t, nil)

	from, to := window()
	report, err := svc.Revenue(context.Background(), from, to)
	require.NoError(t, err)

	assert.Zero(t, report.Orders)
	assert.Zero(t, report.Revenue)
	assert.NotNil(t, report.Days)
	assert.Empty(t, report.Days)
}

func TestRevenueCaches(t *testing.T) {
	svc, provider, _ := newTestService(t, []orders.DayRevenue{
		{Day: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), Orders: 1, Revenue: 100000},
	})

	from, to := window()
	_, err := svc.Revenue(context.Background(), from, to)
	require.NoError(t, err)
	_, err = svc.Revenue(context.Background(), from, to)
	require.NoError(t, err)

	assert.Equal(t, 1, provider.calls)
}

func TestBumpInvalidatesCache(t *testing.T) {
	svc, provider, cache := newTestService(t, []orders.DayRevenue{
		{Day: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), Orders: 1, Revenue: 100000},
	})
	ctx := context.Background()

	from, to := window()
	_, err := svc.Revenue(ctx, from, to)
	require.NoError(t, err)

	require.NoError(t, cache.Bump(ctx))

	_, err = svc.Revenue(ctx, from, to)
	require.NoError(t, err)
	assert.Equal(t, 2, provider.calls)
}

func TestNilCacheDegradesToPassThrough(t *testing.T) {
	provider := &mockRevenue{rows: []orders.DayRevenue{
		{Day: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), Orders: 2, Revenue: 80000},
	}}
	svc := NewService(slog.Default(), provider, NewCache(nil, time.Minute))

	from, to := window()
	report, err := svc.Revenue(context.Background(), from, to)
	require.NoError(t, err)
	assert.Equal(t, 2, report.Orders)

	_, err = svc.Revenue(context.Background(), from, to)
	require.NoError(t, err)
	assert.Equal(t, 2, provider.calls)
}

func TestWarm(t *testing.T) {
	svc, provider, _ := newTestService(t, nil)

	from, to := window()
	require.NoError(t, svc.Warm(context.Background(), from, to))
	assert.Equal(t, 1, provider.calls)
}
