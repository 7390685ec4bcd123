package orders

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockRepo struct {
	orders       map[int64]Order
	lines        map[int64][]OrderLine
	nextID       int64
	stock        map[int64]int
	soldSerials  map[string]bool
	decrementErr error
	consumeErr   error
	numberCalls  int
}

func newMockRepo() *mockRepo {
	return &mockRepo{
		orders:      make(map[int64]Order),
		lines:       make(map[int64][]OrderLine),
		nextID:      1,
		stock:       map[int64]int{1: 10, 2: 3},
		soldSerials: make(map[string]bool),
	}
}

func (m *mockRepo) WithTx(ctx context.Context, fn func(context.Context, Repository) error) error {
	// Snapshot state so a failing fn rolls back like a real transaction.
	ordersBefore := make(map[int64]Order, len(m.orders))
	for k, v := range m.orders {
		ordersBefore[k] = v
	}
	stockBefore := make(map[int64]int, len(m.stock))
	for k, v := range m.stock {
		stockBefore[k] = v
	}
	if err := fn(ctx, m); err != nil {
		m.orders = ordersBefore
		m.stock = stockBefore
		return err
	}
	return nil
}

func (m *mockRepo) Get(ctx context.Context, id int64) (*Order, error) {
	o, ok := m.orders[id]
	if !ok {
		return nil, ErrNotFound
	}
	o.Lines = m.lines[id]
	return &o, nil
}

func (m *mockRepo) List(ctx context.Context, req ListOrdersRequest) ([]Order, int, error) {
	var out []Order
	for _, o := range m.orders {
		out = append(out, o)
	}
	return out, len(out), nil
}

func (m *mockRepo) Create(ctx context.Context, o Order) (int64, error) {
	o.ID = m.nextID
	m.nextID++
	m.orders[o.ID] = o
	return o.ID, nil
}

func (m *mockRepo) InsertLine(ctx context.Context, line OrderLine) (int64, error) {
	line.ID = m.nextID
	m.nextID++
	m.lines[line.OrderID] = append(m.lines[line.OrderID], line)
	return line.ID, nil
}

func (m *mockRepo) GenerateNumber(ctx context.Context, date time.Time) (string, error) {
	m.numberCalls++
	return "POS-2603-0001", nil
}

func (m *mockRepo) DecrementStock(ctx context.Context, productID int64, variantID *int64, quantity int) error {
	if m.decrementErr != nil {
		return m.decrementErr
	}
	if m.stock[productID] < quantity {
		return ErrInsufficientStock
	}
	m.stock[productID] -= quantity
	return nil
}

func (m *mockRepo) ConsumeSerials(ctx context.Context, productID int64, serials []string) error {
	if m.consumeErr != nil {
		return m.consumeErr
	}
	for _, s := range serials {
		if m.soldSerials[s] {
			return ErrSerialUnavailable
		}
		m.soldSerials[s] = true
	}
	return nil
}

func (m *mockRepo) RevenueByDay(ctx context.Context, from, to time.Time) ([]DayRevenue, error) {
	return nil, nil
}

type mockBumper struct {
	calls int
	err   error
}

func (m *mockBumper) Bump(ctx context.Context) error {
	m.calls++
	return m.err
}

func sampleRequest() CreateOrderRequest {
	return CreateOrderRequest{
		StaffID:       1,
		CustomerID:    7,
		CustomerName:  "Nguyen Van A",
		CustomerPhone: "0901234567",
		Lines: []CreateOrderLine{
			{ProductID: 1, Barcode: "CABLE-01", Name: "USB Cable", Quantity: 2, UnitPrice: 50000, Subtotal: 100000},
		},
		TotalAmount:         100000,
		TotalAmountDiscount: 100000,
		CustomerPaid:        100000,
		SaleDate:            time.Date(2026, 3, 10, 14, 0, 0, 0, time.Local),
	}
}

func TestCreateOrder(t *testing.T) {
	repo := newMockRepo()
	bumper := &mockBumper{}
	svc := NewService(slog.Default(), repo, bumper)

	order, err := svc.Create(context.Background(), sampleRequest())
	require.NoError(t, err)

	assert.Equal(t, "POS-2603-0001", order.DocNumber)
	assert.Equal(t, 0.0, order.ChangeAmount)
	assert.Equal(t, 8, repo.stock[1])
	require.Len(t, order.Lines, 1)
	assert.Equal(t, 1, order.Lines[0].LineOrder)
	assert.Equal(t, 1, bumper.calls)
}

func TestCreateOrderChangeMayBeNegative(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(slog.Default(), repo, nil)

	req := sampleRequest()
	req.CustomerPaid = 60000

	order, err := svc.Create(context.Background(), req)
	require.NoError(t, err)
	// A partial payment records the shortfall as customer debt.
	assert.Equal(t, -40000.0, order.ChangeAmount)
}

func TestCreateOrderEmptyLines(t *testing.T) {
	svc := NewService(slog.Default(), newMockRepo(), nil)

	_, err := svc.Create(context.Background(), CreateOrderRequest{})
	assert.Error(t, err)
}

func TestCreateOrderInsufficientStockRollsBack(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(slog.Default(), repo, nil)

	req := sampleRequest()
	req.Lines[0].Quantity = 99

	_, err := svc.Create(context.Background(), req)
	require.ErrorIs(t, err, ErrInsufficientStock)
	assert.Empty(t, repo.orders)
	assert.Equal(t, 10, repo.stock[1])
}

func TestCreateOrderSerialUnavailable(t *testing.T) {
	repo := newMockRepo()
	repo.soldSerials["SN1"] = true
	svc := NewService(slog.Default(), repo, nil)

	req := sampleRequest()
	req.Lines[0].Serials = []string{"SN1"}

	_, err := svc.Create(context.Background(), req)
	require.ErrorIs(t, err, ErrSerialUnavailable)
	assert.Empty(t, repo.orders)
}

func TestCreateOrderBumpFailureIsNotFatal(t *testing.T) {
	repo := newMockRepo()
	bumper := &mockBumper{err: errors.New("redis down")}
	svc := NewService(slog.Default(), repo, bumper)

	_, err := svc.Create(context.Background(), sampleRequest())
	require.NoError(t, err)
	assert.Equal(t, 1, bumper.calls)
}

func TestListDefaultsLimit(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(slog.Default(), repo, nil)

	_, _, err := svc.List(context.Background(), ListOrdersRequest{Limit: -5, Offset: -1})
	require.NoError(t, err)
}
