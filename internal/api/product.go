package api

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/patioshop/storefront/internal/domain/product"
)

var _ product.Catalog = (*Client)(nil)

type productDTO struct {
	ID       int64           `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	ImageURL string          `json:"imageUrl"`
	Category string          `json:"category"`
}

func (d productDTO) toDomain() product.Product {
	return product.Product{
		ID:       d.ID,
		Name:     d.Name,
		Price:    d.Price,
		ImageURL: d.ImageURL,
		Category: d.Category,
	}
}

// List fetches the full product catalog.
func (c *Client) List(ctx context.Context) ([]product.Product, error) {
	var dtos []productDTO
	if err := c.getJSON(ctx, "/api/store/products", &dtos); err != nil {
		return nil, errors.Wrap(err, "list products")
	}
	products := make([]product.Product, len(dtos))
	for i, d := range dtos {
		products[i] = d.toDomain()
	}
	return products, nil
}

// GetByID fetches a single product. A 404 maps to product.ErrNotFound.
func (c *Client) GetByID(ctx context.Context, id int64) (*product.Product, error) {
	var dto productDTO
	if err := c.getJSON(ctx, fmt.Sprintf("/api/store/products/%d", id), &dto); err != nil {
		var se *StatusError
		if errors.As(err, &se) && se.Status == 404 {
			return nil, product.ErrNotFound
		}
		return nil, errors.Wrapf(err, "get product %d", id)
	}
	p := dto.toDomain()
	return &p, nil
}

type categoryDTO struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Categories fetches the catalog category names.
func (c *Client) Categories(ctx context.Context) ([]string, error) {
	var dtos []categoryDTO
	if err := c.getJSON(ctx, "/api/store/categories", &dtos); err != nil {
		return nil, errors.Wrap(err, "list categories")
	}
	names := make([]string, len(dtos))
	for i, d := range dtos {
		names[i] = d.Name
	}
	return names, nil
}
