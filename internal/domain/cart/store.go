package cart

import (
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/patioshop/storefront/internal/domain/product"
	"github.com/patioshop/storefront/internal/storage"
)

// StorageKey is the local store entry holding the serialized cart lines.
// The applied coupon is session-only and never persisted.
const StorageKey = "petshop-cart"

var hundred = decimal.NewFromInt(100)

// Store owns the cart state for a single session: ordered lines, at most one
// applied coupon, and an open/closed flag for the cart sidebar. Every
// mutation of the line list is immediately persisted to the injected storage.
type Store struct {
	lines  []Line
	coupon *Coupon
	open   bool

	store storage.Storage
	lg    *zap.Logger
	subs  []func()
}

// NewStore creates a cart Store backed by the given storage and rehydrates
// any previously persisted lines. Absent or malformed persisted data yields
// an empty cart; it is logged and never an error.
func NewStore(store storage.Storage, lg *zap.Logger) *Store {
	s := &Store{store: store, lg: lg}
	s.load()
	return s
}

func (s *Store) load() {
	data, ok, err := s.store.Get(StorageKey)
	if err != nil {
		s.lg.Warn("Failed to read persisted cart", zap.Error(err))
		return
	}
	if !ok {
		return
	}
	lines, err := decodeLines(data)
	if err != nil {
		s.lg.Warn("Discarding malformed persisted cart", zap.Error(err))
		return
	}
	s.lines = lines
}

// persist writes the current line list to storage. Failures are logged and
// swallowed: a broken local store must not take the cart down with it.
func (s *Store) persist() {
	if err := s.store.Put(StorageKey, encodeLines(s.lines)); err != nil {
		s.lg.Warn("Failed to persist cart", zap.Error(err))
	}
}

func (s *Store) notify() {
	for _, fn := range s.subs {
		if fn != nil {
			fn()
		}
	}
}

// Subscribe registers fn to run after every state change. It returns an
// unsubscribe function.
func (s *Store) Subscribe(fn func()) (unsubscribe func()) {
	s.subs = append(s.subs, fn)
	i := len(s.subs) - 1
	return func() { s.subs[i] = nil }
}

// AddItem adds the product to the cart. If a line with the same product ID
// already exists its quantity is incremented by one; otherwise a new line is
// appended with quantity 1 and the product's current price frozen in.
// Adding always succeeds and opens the cart.
func (s *Store) AddItem(p product.Product) {
	merged := false
	for i := range s.lines {
		if s.lines[i].ProductID == p.ID {
			s.lines[i].Quantity++
			merged = true
			break
		}
	}
	if !merged {
		s.lines = append(s.lines, newLine(p))
	}
	s.open = true
	s.persist()
	s.notify()
}

// RemoveItem deletes the line with the given product ID. Removing an absent
// product is a no-op, not an error.
func (s *Store) RemoveItem(productID int64) {
	for i := range s.lines {
		if s.lines[i].ProductID == productID {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
			s.persist()
			s.notify()
			return
		}
	}
}

// SetQuantity replaces the quantity of the line with the given product ID.
// A quantity below one removes the line entirely. An absent product ID is a
// no-op.
func (s *Store) SetQuantity(productID int64, quantity int) {
	if quantity < 1 {
		s.RemoveItem(productID)
		return
	}
	for i := range s.lines {
		if s.lines[i].ProductID == productID {
			s.lines[i].Quantity = quantity
			s.persist()
			s.notify()
			return
		}
	}
}

// Clear empties the cart and drops any applied coupon.
func (s *Store) Clear() {
	s.lines = nil
	s.coupon = nil
	s.persist()
	s.notify()
}

// ApplyCoupon stores c as the single applied coupon, replacing any previous
// one. A coupon with a category restriction is rejected with
// ErrCouponNotEligible when no current line matches the category; the cart
// state is left untouched in that case.
func (s *Store) ApplyCoupon(c Coupon) error {
	if c.Category != "" {
		eligible := false
		for _, l := range s.lines {
			if l.Category == c.Category {
				eligible = true
				break
			}
		}
		if !eligible {
			return ErrCouponNotEligible
		}
	}
	s.coupon = &c
	s.notify()
	return nil
}

// RemoveCoupon drops the applied coupon unconditionally.
func (s *Store) RemoveCoupon() {
	s.coupon = nil
	s.notify()
}

// Lines returns a copy of the current line list in insertion order.
func (s *Store) Lines() []Line {
	out := make([]Line, len(s.lines))
	copy(out, s.lines)
	return out
}

// AppliedCoupon returns the applied coupon, or nil when none is applied.
func (s *Store) AppliedCoupon() *Coupon {
	if s.coupon == nil {
		return nil
	}
	c := *s.coupon
	return &c
}

// IsOpen reports whether the cart sidebar is open.
func (s *Store) IsOpen() bool { return s.open }

// SetOpen opens or closes the cart sidebar.
func (s *Store) SetOpen(open bool) {
	if s.open == open {
		return
	}
	s.open = open
	s.notify()
}

// Subtotal returns the sum of price * quantity over all lines.
func (s *Store) Subtotal() decimal.Decimal {
	sum := decimal.Zero
	for _, l := range s.lines {
		sum = sum.Add(l.LineTotal())
	}
	return sum
}

// DiscountAmount returns the coupon discount for the current cart. Without a
// coupon it is zero. A coupon without a category restriction discounts the
// full subtotal; a restricted coupon discounts only the matching lines.
func (s *Store) DiscountAmount() decimal.Decimal {
	if s.coupon == nil {
		return decimal.Zero
	}
	base := decimal.Zero
	for _, l := range s.lines {
		if s.coupon.Category == "" || l.Category == s.coupon.Category {
			base = base.Add(l.LineTotal())
		}
	}
	return base.Mul(s.coupon.DiscountPercentage).Div(hundred)
}

// FinalTotal returns subtotal minus discount, floored at zero.
func (s *Store) FinalTotal() decimal.Decimal {
	total := s.Subtotal().Sub(s.DiscountAmount())
	if total.IsNegative() {
		return decimal.Zero
	}
	return total
}

// ItemCount returns the sum of quantities over all lines, for badge display.
func (s *Store) ItemCount() int {
	count := 0
	for _, l := range s.lines {
		count += l.Quantity
	}
	return count
}

// Totals recomputes and bundles subtotal, discount, final total, and item
// count in one call.
func (s *Store) Totals() Totals {
	return Totals{
		Subtotal: s.Subtotal(),
		Discount: s.DiscountAmount(),
		Total:    s.FinalTotal(),
		Items:    s.ItemCount(),
	}
}
