// Package cart owns the client-side shopping cart: an ordered list of line
// items, at most one applied coupon, and totals derived on every read.
//
// The cart is touched only from the session's event loop, matching the
// single-threaded model of the storefront UI. Store is therefore not safe
// for concurrent use; callers serialize access.
package cart

import (
	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/patioshop/storefront/internal/domain/product"
)

// ErrCouponNotEligible is returned when a category-restricted coupon is
// applied to a cart with no line in that category.
var ErrCouponNotEligible = errors.New("coupon not eligible for cart contents")

// Line is a product snapshot plus a quantity. The price and category are
// frozen at the time the product was added and never re-fetched.
type Line struct {
	ProductID int64
	Name      string
	Price     decimal.Decimal
	ImageURL  string
	Category  string
	Quantity  int
}

// LineTotal returns price * quantity for this line.
func (l Line) LineTotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// newLine freezes a product snapshot into a cart line with quantity 1.
func newLine(p product.Product) Line {
	return Line{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		ImageURL:  p.ImageURL,
		Category:  p.Category,
		Quantity:  1,
	}
}

// Coupon is a discount code with a percentage and an optional category
// restriction. An empty Category means the coupon applies to every line.
type Coupon struct {
	Code               string
	DiscountPercentage decimal.Decimal
	Category           string
}

// Totals bundles the derived monetary state of the cart. All fields are
// recomputed from the current lines and coupon on every call; nothing here
// is cached.
type Totals struct {
	Subtotal decimal.Decimal
	Discount decimal.Decimal
	Total    decimal.Decimal
	Items    int
}
