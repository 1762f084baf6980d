package session

import (
	"context"
	"testing"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"

	"github.com/patioshop/storefront/internal/api"
	"github.com/patioshop/storefront/internal/domain/cart"
	"github.com/patioshop/storefront/internal/domain/checkout"
	"github.com/patioshop/storefront/internal/domain/product"
	"github.com/patioshop/storefront/internal/siteconfig"
	"github.com/patioshop/storefront/internal/storage/memory"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// --- Mock API ---

type mockAPI struct {
	products   []product.Product
	byID       map[int64]*product.Product
	categories []string
	coupon     *cart.Coupon
	couponErr  error
	config     *siteconfig.Config
	configErr  error
	order      *checkout.OrderResult
	orderErr   error

	listErr error
	getByID int64
}

func (m *mockAPI) List(_ context.Context) ([]product.Product, error) {
	return m.products, m.listErr
}

func (m *mockAPI) GetByID(_ context.Context, id int64) (*product.Product, error) {
	m.getByID = id
	p, ok := m.byID[id]
	if !ok {
		return nil, product.ErrNotFound
	}
	return p, nil
}

func (m *mockAPI) Categories(_ context.Context) ([]string, error) {
	return m.categories, nil
}

func (m *mockAPI) ValidateCoupon(_ context.Context, _ string) (*cart.Coupon, error) {
	return m.coupon, m.couponErr
}

func (m *mockAPI) SiteConfig(_ context.Context) (*siteconfig.Config, error) {
	if m.config == nil && m.configErr == nil {
		cfg := siteconfig.Defaults()
		return &cfg, nil
	}
	return m.config, m.configErr
}

func (m *mockAPI) CreateOrder(_ context.Context, _ checkout.OrderRequest) (*checkout.OrderResult, error) {
	return m.order, m.orderErr
}

// --- Helpers ---

func testProduct(id int64, price int64, category string) product.Product {
	return product.Product{ID: id, Name: "p", Price: decimal.NewFromInt(price), Category: category}
}

func newWarmSession(t *testing.T, client *mockAPI) *Session {
	t.Helper()
	s := New(client, memory.New(), zap.NewNop())
	t.Cleanup(s.Close)
	require.NoError(t, s.Warmup(context.Background()))
	return s
}

// --- Tests ---

func TestSession_Warmup(t *testing.T) {
	client := &mockAPI{
		products:   []product.Product{testProduct(1, 10, "Food")},
		categories: []string{"Food", "Toys"},
		config:     &siteconfig.Config{Theme: "Light", StoreEnabled: true},
	}
	s := newWarmSession(t, client)

	assert.Len(t, s.Products(), 1)
	assert.Equal(t, []string{"Food", "Toys"}, s.Categories())
	assert.Equal(t, "Light", s.Config.Current().Theme)
	assert.False(t, s.Config.Loading())
}

func TestSession_Warmup_CatalogFailure(t *testing.T) {
	client := &mockAPI{listErr: errors.New("connection refused")}
	s := New(client, memory.New(), zap.NewNop())
	defer s.Close()

	err := s.Warmup(context.Background())

	assert.Error(t, err)
}

func TestSession_Warmup_ConfigFailureIsNotFatal(t *testing.T) {
	client := &mockAPI{configErr: errors.New("config service down")}
	s := newWarmSession(t, client)

	assert.Equal(t, siteconfig.Defaults(), s.Config.Current())
}

func TestSession_AddToCart(t *testing.T) {
	t.Run("from prefetched catalog", func(t *testing.T) {
		client := &mockAPI{products: []product.Product{testProduct(1, 10, "Food")}}
		s := newWarmSession(t, client)

		require.NoError(t, s.AddToCart(context.Background(), 1))

		assert.Equal(t, 1, s.Cart.ItemCount())
		assert.Zero(t, client.getByID, "should not refetch a prefetched product")
	})

	t.Run("falls back to direct fetch", func(t *testing.T) {
		fetched := testProduct(5, 99, "Toys")
		client := &mockAPI{byID: map[int64]*product.Product{5: &fetched}}
		s := newWarmSession(t, client)

		require.NoError(t, s.AddToCart(context.Background(), 5))

		assert.Equal(t, int64(5), client.getByID)
		assert.Equal(t, 1, s.Cart.ItemCount())
	})

	t.Run("unknown product", func(t *testing.T) {
		s := newWarmSession(t, &mockAPI{})

		err := s.AddToCart(context.Background(), 123)

		assert.ErrorIs(t, err, product.ErrNotFound)
		assert.Zero(t, s.Cart.ItemCount())
	})
}

func TestSession_ApplyCouponCode(t *testing.T) {
	t.Run("valid and eligible", func(t *testing.T) {
		client := &mockAPI{
			products: []product.Product{testProduct(1, 10, "Food")},
			coupon:   &cart.Coupon{Code: "FOOD10", DiscountPercentage: decimal.NewFromInt(10), Category: "Food"},
		}
		s := newWarmSession(t, client)
		require.NoError(t, s.AddToCart(context.Background(), 1))

		require.NoError(t, s.ApplyCouponCode(context.Background(), "FOOD10"))

		require.NotNil(t, s.Cart.AppliedCoupon())
		assert.Equal(t, "FOOD10", s.Cart.AppliedCoupon().Code)
	})

	t.Run("rejected by API", func(t *testing.T) {
		client := &mockAPI{couponErr: api.ErrInvalidCoupon}
		s := newWarmSession(t, client)

		err := s.ApplyCouponCode(context.Background(), "NOPE")

		assert.ErrorIs(t, err, api.ErrInvalidCoupon)
		assert.Nil(t, s.Cart.AppliedCoupon())
	})

	t.Run("valid but not eligible", func(t *testing.T) {
		client := &mockAPI{
			products: []product.Product{testProduct(1, 10, "Food")},
			coupon:   &cart.Coupon{Code: "TOYS10", DiscountPercentage: decimal.NewFromInt(10), Category: "Toys"},
		}
		s := newWarmSession(t, client)
		require.NoError(t, s.AddToCart(context.Background(), 1))

		err := s.ApplyCouponCode(context.Background(), "TOYS10")

		assert.ErrorIs(t, err, cart.ErrCouponNotEligible)
		assert.Nil(t, s.Cart.AppliedCoupon())
	})
}

func TestSession_MaintenanceGatesEverything(t *testing.T) {
	client := &mockAPI{
		products: []product.Product{testProduct(1, 10, "Food")},
		config:   &siteconfig.Config{StoreEnabled: false},
	}
	s := newWarmSession(t, client)

	assert.ErrorIs(t, s.AddToCart(context.Background(), 1), ErrStoreDisabled)
	assert.ErrorIs(t, s.ApplyCouponCode(context.Background(), "X"), ErrStoreDisabled)
	_, err := s.BeginCheckout()
	assert.ErrorIs(t, err, ErrStoreDisabled)
}

func TestSession_BeginCheckout(t *testing.T) {
	client := &mockAPI{products: []product.Product{testProduct(1, 10, "Food")}}
	s := newWarmSession(t, client)

	_, err := s.BeginCheckout()
	assert.ErrorIs(t, err, checkout.ErrEmptyCart)

	require.NoError(t, s.AddToCart(context.Background(), 1))

	first, err := s.BeginCheckout()
	require.NoError(t, err)
	assert.Equal(t, checkout.StepDetails, first.Step())

	// Starting a new flow closes the previous one.
	second, err := s.BeginCheckout()
	require.NoError(t, err)
	assert.ErrorIs(t, first.Next(), checkout.ErrClosed)
	assert.Equal(t, checkout.StepDetails, second.Step())
}

func TestSession_CartSurvivesAcrossSessions(t *testing.T) {
	store := memory.New()
	client := &mockAPI{products: []product.Product{testProduct(1, 10, "Food")}}

	s1 := New(client, store, zap.NewNop())
	require.NoError(t, s1.Warmup(context.Background()))
	require.NoError(t, s1.AddToCart(context.Background(), 1))
	s1.Close()

	s2 := New(client, store, zap.NewNop())
	defer s2.Close()

	assert.Equal(t, 1, s2.Cart.ItemCount())
}

func TestSession_ClosedSessionRejectsOperations(t *testing.T) {
	client := &mockAPI{products: []product.Product{testProduct(1, 10, "Food")}}
	s := New(client, memory.New(), zap.NewNop())
	require.NoError(t, s.Warmup(context.Background()))

	s.Close()

	assert.ErrorIs(t, s.AddToCart(context.Background(), 1), ErrClosed)
	_, err := s.BeginCheckout()
	assert.ErrorIs(t, err, ErrClosed)
}
