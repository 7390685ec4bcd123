package customers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aleamz/salespoint/internal/platform/httpx"
)

type mockRepo struct {
	customers map[int64]Customer
	nextID    int64
	listReq   ListCustomersRequest
}

func newMockRepo() *mockRepo {
	return &mockRepo{customers: make(map[int64]Customer), nextID: 1}
}

func (m *mockRepo) Get(ctx context.Context, id int64) (*Customer, error) {
	c, ok := m.customers[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &c, nil
}

func (m *mockRepo) List(ctx context.Context, req ListCustomersRequest) ([]Customer, int, error) {
	m.listReq = req
	var out []Customer
	for _, c := range m.customers {
		out = append(out, c)
	}
	return out, len(out), nil
}

func (m *mockRepo) Create(ctx context.Context, c Customer) (int64, error) {
	c.ID = m.nextID
	m.nextID++
	m.customers[c.ID] = c
	return c.ID, nil
}

func TestCreateCustomer(t *testing.T) {
	svc := NewService(newMockRepo())

	c, err := svc.Create(context.Background(), CreateCustomerRequest{
		Name:  "Nguyen Van A",
		Phone: "0901234567",
	})
	require.NoError(t, err)
	assert.Equal(t, "Nguyen Van A", c.Name)
	assert.NotZero(t, c.ID)
}

func TestCreateCustomerRequiresName(t *testing.T) {
	svc := NewService(newMockRepo())

	_, err := svc.Create(context.Background(), CreateCustomerRequest{Phone: "0901234567"})
	assert.Error(t, err)
}

func TestCreateCustomerShortPhone(t *testing.T) {
	svc := NewService(newMockRepo())

	_, err := svc.Create(context.Background(), CreateCustomerRequest{Name: "A", Phone: "123"})
	assert.Error(t, err)
}

func TestGetUnknownCustomer(t *testing.T) {
	svc := NewService(newMockRepo())

	_, err := svc.Get(context.Background(), 999)
	assert.ErrorIs(t, err, httpx.ErrNotFound)
}

func TestListDefaultsLimit(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)

	_, _, err := svc.List(context.Background(), ListCustomersRequest{})
	require.NoError(t, err)
	assert.Equal(t, 20, repo.listReq.Limit)
}
