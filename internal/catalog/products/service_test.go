package products

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aleamz/salespoint/internal/platform/httpx"
)

type mockRepo struct {
	products    map[int64]Product
	variants    map[int64]Variant
	serials     map[int64][]string
	nextID      int64
	searchReq   SearchProductsRequest
	searchCalls int
}

func newMockRepo() *mockRepo {
	return &mockRepo{
		products: make(map[int64]Product),
		variants: make(map[int64]Variant),
		serials:  make(map[int64][]string),
		nextID:   1,
	}
}

func (m *mockRepo) WithTx(ctx context.Context, fn func(context.Context, Repository) error) error {
	return fn(ctx, m)
}

func (m *mockRepo) Search(ctx context.Context, req SearchProductsRequest) ([]Product, int, error) {
	m.searchCalls++
	m.searchReq = req
	var out []Product
	for _, p := range m.products {
		out = append(out, p)
	}
	return out, len(out), nil
}

func (m *mockRepo) Get(ctx context.Context, id int64) (*Product, error) {
	p, ok := m.products[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &p, nil
}

func (m *mockRepo) GetByBarcode(ctx context.Context, barcode string) (*Product, error) {
	for _, p := range m.products {
		if p.Barcode == barcode {
			return &p, nil
		}
	}
	return nil, ErrNotFound
}

func (m *mockRepo) Create(ctx context.Context, p Product) (int64, error) {
	for _, existing := range m.products {
		if existing.Barcode == p.Barcode {
			return 0, fmt.Errorf("duplicate barcode %s", p.Barcode)
		}
	}
	p.ID = m.nextID
	m.nextID++
	p.IsActive = true
	m.products[p.ID] = p
	return p.ID, nil
}

func (m *mockRepo) Update(ctx context.Context, id int64, updates map[string]interface{}) error {
	p, ok := m.products[id]
	if !ok {
		return ErrNotFound
	}
	if name, ok := updates["name"]; ok {
		p.Name = name.(string)
	}
	if price, ok := updates["sell_price"]; ok {
		p.SellPrice = price.(float64)
	}
	m.products[id] = p
	return nil
}

func (m *mockRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := m.products[id]; !ok {
		return ErrNotFound
	}
	delete(m.products, id)
	return nil
}

func (m *mockRepo) InsertVariant(ctx context.Context, v Variant) (int64, error) {
	v.ID = m.nextID
	m.nextID++
	m.variants[v.ID] = v
	p := m.products[v.ProductID]
	p.Variants = append(p.Variants, v)
	m.products[v.ProductID] = p
	return v.ID, nil
}

func (m *mockRepo) ListVariants(ctx context.Context, productID int64) ([]Variant, error) {
	var out []Variant
	for _, v := range m.variants {
		if v.ProductID == productID {
			out = append(out, v)
		}
	}
	return out, nil
}

func (m *mockRepo) GetVariant(ctx context.Context, id int64) (*Variant, error) {
	v, ok := m.variants[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &v, nil
}

func (m *mockRepo) InsertSerials(ctx context.Context, productID int64, variantID *int64, serials []string) error {
	m.serials[productID] = append(m.serials[productID], serials...)
	return nil
}

func (m *mockRepo) AvailableSerials(ctx context.Context, productID int64, variantID *int64) ([]string, error) {
	return m.serials[productID], nil
}

func TestSearchClampsLimit(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)

	_, _, err := svc.Search(context.Background(), SearchProductsRequest{Limit: 0})
	require.NoError(t, err)
	assert.Equal(t, 20, repo.searchReq.Limit)

	_, _, err = svc.Search(context.Background(), SearchProductsRequest{Limit: 500})
	require.NoError(t, err)
	assert.Equal(t, 100, repo.searchReq.Limit)
}

func TestCreatePlainProduct(t *testing.T) {
	svc := NewService(newMockRepo())

	p, err := svc.Create(context.Background(), CreateProductRequest{
		Barcode:   "CABLE-01",
		Name:      "USB Cable",
		SellPrice: 50000,
	})
	require.NoError(t, err)
	assert.Equal(t, "USB Cable", p.Name)
	assert.False(t, p.IsVariable)
}

func TestCreateRejectsVariableAndSerial(t *testing.T) {
	svc := NewService(newMockRepo())

	_, err := svc.Create(context.Background(), CreateProductRequest{
		Barcode:    "X",
		Name:       "X",
		IsVariable: true,
		IsSerial:   true,
		Variants:   []CreateVariantRequest{{Attributes: []Attribute{{Key: "size", Value: "M"}}}},
	})
	assert.ErrorIs(t, err, httpx.ErrValidation)
}

func TestCreateVariableRequiresVariants(t *testing.T) {
	svc := NewService(newMockRepo())

	_, err := svc.Create(context.Background(), CreateProductRequest{
		Barcode:    "SHIRT-01",
		Name:       "Shirt",
		IsVariable: true,
	})
	assert.ErrorIs(t, err, httpx.ErrValidation)
}

func TestCreateRejectsDuplicateVariantCombination(t *testing.T) {
	svc := NewService(newMockRepo())

	_, err := svc.Create(context.Background(), CreateProductRequest{
		Barcode:    "SHIRT-01",
		Name:       "Shirt",
		IsVariable: true,
		Variants: []CreateVariantRequest{
			{Attributes: []Attribute{{Key: "size", Value: "M"}}},
			{Attributes: []Attribute{{Key: "size", Value: "M"}}},
		},
	})
	assert.ErrorIs(t, err, httpx.ErrValidation)
}

func TestCreateVariableProductWithVariants(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)

	p, err := svc.Create(context.Background(), CreateProductRequest{
		Barcode:    "SHIRT-01",
		Name:       "Shirt",
		IsVariable: true,
		Variants: []CreateVariantRequest{
			{Attributes: []Attribute{{Key: "size", Value: "M"}}, SellPrice: 120000},
			{Attributes: []Attribute{{Key: "size", Value: "L"}}, SellPrice: 130000},
		},
	})
	require.NoError(t, err)
	assert.Len(t, repo.variants, 2)
	assert.True(t, p.IsVariable)
}

func TestCreateValidationFailure(t *testing.T) {
	svc := NewService(newMockRepo())

	_, err := svc.Create(context.Background(), CreateProductRequest{Name: "No Barcode"})
	assert.Error(t, err)
}

func TestGetUnknownProduct(t *testing.T) {
	svc := NewService(newMockRepo())

	_, err := svc.Get(context.Background(), 404)
	assert.ErrorIs(t, err, httpx.ErrNotFound)
}

func TestUpdateProduct(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)

	created, err := svc.Create(context.Background(), CreateProductRequest{Barcode: "B1", Name: "Old"})
	require.NoError(t, err)

	name := "New"
	updated, err := svc.Update(context.Background(), created.ID, UpdateProductRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "New", updated.Name)
}

func TestAvailableSerialsValidatesProduct(t *testing.T) {
	svc := NewService(newMockRepo())

	_, err := svc.AvailableSerials(context.Background(), SerialLookupRequest{ProductID: 42})
	assert.ErrorIs(t, err, httpx.ErrNotFound)
}
