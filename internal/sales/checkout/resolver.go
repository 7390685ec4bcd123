package checkout

import (
	"github.com/aleamz/salespoint/internal/catalog/products"
)

// Resolution tells the client which interaction is required before a cart
// line can be created from a product selection.
type Resolution string

const (
	// DirectAdd means the product can be placed into the cart as-is.
	DirectAdd Resolution = "DIRECT_ADD"
	// RequireSerialPick means the client must choose serial numbers first.
	RequireSerialPick Resolution = "REQUIRE_SERIAL_PICK"
	// RequireVariantPick means the client must choose a variant first.
	RequireVariantPick Resolution = "REQUIRE_VARIANT_PICK"
)

// ResolveProduct decides the next interaction for a chosen product. A product
// flagged variable but carrying no variants resolves to a direct add rather
// than an empty choice.
func ResolveProduct(p products.Product) Resolution {
	if len(p.Serials) > 0 {
		return RequireSerialPick
	}
	if len(p.Variants) > 0 {
		return RequireVariantPick
	}
	return DirectAdd
}

// ResolveVariant repeats the decision one level down after a variant pick.
func ResolveVariant(v products.Variant) Resolution {
	if len(v.Serials) > 0 {
		return RequireSerialPick
	}
	return DirectAdd
}
