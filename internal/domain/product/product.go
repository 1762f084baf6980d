package product

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// ErrNotFound is returned when a requested product does not exist.
var ErrNotFound = errors.New("product not found")

// Product represents a catalog item available for purchase. Instances are
// read-only snapshots sourced from the remote commerce API; the price a cart
// line carries is frozen at the moment the product is added.
type Product struct {
	ID       int64
	Name     string
	Price    decimal.Decimal
	ImageURL string
	Category string
}

// Catalog defines read operations against the remote product catalog.
type Catalog interface {
	List(ctx context.Context) ([]Product, error)
	GetByID(ctx context.Context, id int64) (*Product, error)
	Categories(ctx context.Context) ([]string, error)
}
