// Package session ties one browser-equivalent session together: the cart
// store rehydrated from local storage, the site configuration snapshot, the
// catalog view, and checkout flows. All session state is touched from a
// single event loop.
package session

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/patioshop/storefront/internal/domain/cart"
	"github.com/patioshop/storefront/internal/domain/checkout"
	"github.com/patioshop/storefront/internal/domain/product"
	"github.com/patioshop/storefront/internal/siteconfig"
	"github.com/patioshop/storefront/internal/storage"
)

var (
	// ErrStoreDisabled is returned by cart and checkout entry points while
	// the site configuration has the store in maintenance.
	ErrStoreDisabled = errors.New("store is disabled for maintenance")
	// ErrClosed is returned after the session has been closed.
	ErrClosed = errors.New("session closed")
)

// API is the slice of the commerce client the session consumes. The concrete
// implementation is api.Client; tests substitute mocks per concern.
type API interface {
	product.Catalog
	siteconfig.Fetcher
	checkout.Submitter
	ValidateCoupon(ctx context.Context, code string) (*cart.Coupon, error)
}

// Session owns the client-side state for one storefront visit.
type Session struct {
	id     string
	lg     *zap.Logger
	client API

	Cart   *cart.Store
	Config *siteconfig.Store

	products   []product.Product
	categories []string

	controller *checkout.Controller
	closed     bool
}

// New builds a session over the given API client and local storage. The cart
// is rehydrated immediately; remote state is fetched by Warmup.
func New(client API, store storage.Storage, lg *zap.Logger) *Session {
	id := uuid.NewString()
	lg = lg.With(zap.String("session_id", id))

	return &Session{
		id:     id,
		lg:     lg,
		client: client,
		Cart:   cart.NewStore(store, lg.Named("cart")),
		Config: siteconfig.NewStore(client, lg.Named("siteconfig")),
	}
}

// ID returns the session identifier used for log correlation.
func (s *Session) ID() string { return s.id }

// Warmup fans out the initial remote reads: site configuration and catalog
// prefetch. A failed config fetch keeps defaults (handled inside the config
// store); catalog failures are returned since the storefront has nothing to
// show without them.
func (s *Session) Warmup(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.Config.Load(ctx)
		return nil
	})
	g.Go(func() error {
		products, err := s.client.List(ctx)
		if err != nil {
			return errors.Wrap(err, "prefetch products")
		}
		s.products = products
		return nil
	})
	g.Go(func() error {
		categories, err := s.client.Categories(ctx)
		if err != nil {
			return errors.Wrap(err, "prefetch categories")
		}
		s.categories = categories
		return nil
	})

	return g.Wait()
}

// Products returns the prefetched catalog.
func (s *Session) Products() []product.Product { return s.products }

// Categories returns the prefetched category names.
func (s *Session) Categories() []string { return s.categories }

// guard rejects operations on a closed session or a store in maintenance.
func (s *Session) guard() error {
	if s.closed {
		return ErrClosed
	}
	if s.Config.Maintenance() {
		return ErrStoreDisabled
	}
	return nil
}

// AddToCart resolves a product and adds it to the cart. The prefetched
// catalog is consulted first; unknown IDs fall back to a direct fetch so a
// deep-linked product page still works.
func (s *Session) AddToCart(ctx context.Context, productID int64) error {
	if err := s.guard(); err != nil {
		return err
	}
	for _, p := range s.products {
		if p.ID == productID {
			s.Cart.AddItem(p)
			return nil
		}
	}
	p, err := s.client.GetByID(ctx, productID)
	if err != nil {
		return errors.Wrapf(err, "resolve product %d", productID)
	}
	s.Cart.AddItem(*p)
	return nil
}

// ApplyCouponCode validates a coupon code against the remote API and applies
// it to the cart. Rejection by the API or by cart eligibility leaves the
// cart untouched.
func (s *Session) ApplyCouponCode(ctx context.Context, code string) error {
	if err := s.guard(); err != nil {
		return err
	}
	coupon, err := s.client.ValidateCoupon(ctx, code)
	if err != nil {
		return err
	}
	return s.Cart.ApplyCoupon(*coupon)
}

// BeginCheckout starts a checkout flow over the current cart. Any previous
// flow is closed first, so a stale submission response cannot land in the
// new one.
func (s *Session) BeginCheckout() (*checkout.Controller, error) {
	if err := s.guard(); err != nil {
		return nil, err
	}
	if s.Cart.ItemCount() == 0 {
		return nil, checkout.ErrEmptyCart
	}
	if s.controller != nil {
		s.controller.Close()
	}
	s.controller = checkout.NewController(s.Cart, s.client, s.lg.Named("checkout"))
	return s.controller, nil
}

// Close ends the session. The persisted cart survives for the next session;
// in-memory state (coupon, checkout flow) is discarded.
func (s *Session) Close() {
	if s.closed {
		return
	}
	s.closed = true
	if s.controller != nil {
		s.controller.Close()
		s.controller = nil
	}
	s.lg.Info("Session closed")
}
