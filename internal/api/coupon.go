package api

import (
	"context"
	"net/url"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/patioshop/storefront/internal/domain/cart"
)

// ErrInvalidCoupon is returned when the API rejects a coupon code as unknown
// or expired. Any non-2xx validation response means the code is unusable.
var ErrInvalidCoupon = errors.New("invalid or expired coupon code")

type couponDTO struct {
	Code               string          `json:"code"`
	DiscountPercentage decimal.Decimal `json:"discountPercentage"`
	Category           string          `json:"category"`
}

// ValidateCoupon asks the API whether a coupon code is currently valid and
// returns its discount terms.
func (c *Client) ValidateCoupon(ctx context.Context, code string) (*cart.Coupon, error) {
	var dto couponDTO
	if err := c.getJSON(ctx, "/api/store/coupons/validate/"+url.PathEscape(code), &dto); err != nil {
		var se *StatusError
		if errors.As(err, &se) {
			return nil, ErrInvalidCoupon
		}
		return nil, errors.Wrapf(err, "validate coupon %q", code)
	}
	return &cart.Coupon{
		Code:               dto.Code,
		DiscountPercentage: dto.DiscountPercentage,
		Category:           dto.Category,
	}, nil
}
