package checkout

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aleamz/salespoint/internal/catalog/products"
)

func TestResolveProductPlain(t *testing.T) {
	p := products.Product{ID: 1, Name: "USB Cable"}
	assert.Equal(t, DirectAdd, ResolveProduct(p))
}

func TestResolveProductSerial(t *testing.T) {
	p := products.Product{ID: 2, IsSerial: true, Serials: []string{"SN1", "SN2"}}
	assert.Equal(t, RequireSerialPick, ResolveProduct(p))
}

func TestResolveProductVariants(t *testing.T) {
	p := products.Product{ID: 3, IsVariable: true, Variants: []products.Variant{{ID: 10}}}
	assert.Equal(t, RequireVariantPick, ResolveProduct(p))
}

func TestResolveProductVariableWithoutVariants(t *testing.T) {
	// Flagged variable but no variants exist: treat like a plain product
	// instead of presenting an empty picker.
	p := products.Product{ID: 4, IsVariable: true}
	assert.Equal(t, DirectAdd, ResolveProduct(p))
}

func TestResolveProductSerialBeatsVariants(t *testing.T) {
	p := products.Product{
		ID:       5,
		IsSerial: true,
		Serials:  []string{"SN9"},
		Variants: []products.Variant{{ID: 11}},
	}
	assert.Equal(t, RequireSerialPick, ResolveProduct(p))
}

func TestResolveVariant(t *testing.T) {
	assert.Equal(t, DirectAdd, ResolveVariant(products.Variant{ID: 1}))
	assert.Equal(t, RequireSerialPick, ResolveVariant(products.Variant{ID: 2, Serials: []string{"SN1"}}))
}
