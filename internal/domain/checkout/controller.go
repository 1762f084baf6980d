package checkout

import (
	"context"

	"github.com/go-faster/errors"
	"go.uber.org/zap"

	"github.com/patioshop/storefront/internal/domain/cart"
)

// Controller drives the checkout flow for a single cart. Like the cart store
// it lives on the session's event loop and is not safe for concurrent use;
// the Submitting flag exists to reject double-clicks, not parallel callers.
type Controller struct {
	cart      *cart.Store
	submitter Submitter
	lg        *zap.Logger

	step       Step
	draft      Draft
	fieldErrs  map[string]string
	submitting bool
	closed     bool
	result     *OrderResult
}

// NewController starts a checkout flow at the details step with a default
// draft.
func NewController(c *cart.Store, submitter Submitter, lg *zap.Logger) *Controller {
	return &Controller{
		cart:      c,
		submitter: submitter,
		lg:        lg,
		step:      StepDetails,
		draft:     NewDraft(),
	}
}

// Step returns the current step.
func (c *Controller) Step() Step { return c.step }

// Draft returns the mutable form state for the UI to bind inputs to.
func (c *Controller) Draft() *Draft { return &c.draft }

// Errors returns the per-field validation errors from the last blocked
// transition, or nil.
func (c *Controller) Errors() map[string]string { return c.fieldErrs }

// Submitting reports whether an order submission is in flight, so the UI can
// disable the triggering control.
func (c *Controller) Submitting() bool { return c.submitting }

// Result returns the outcome of a successful submission, or nil.
func (c *Controller) Result() *OrderResult { return c.result }

// Close marks the flow abandoned (navigation away). A response from an
// in-flight submission arriving afterwards is discarded.
func (c *Controller) Close() { c.closed = true }

// Next advances from the details step to the payment step. Failing
// validation populates Errors and returns ErrValidation without changing
// the step.
func (c *Controller) Next() error {
	if c.closed {
		return ErrClosed
	}
	if c.step != StepDetails {
		return errors.Errorf("cannot advance from step %s", c.step)
	}
	if errs := validateDetails(c.draft); errs != nil {
		c.fieldErrs = errs
		return ErrValidation
	}
	c.fieldErrs = nil
	c.step = StepPayment
	return nil
}

// Back returns from the payment step to the details step unconditionally.
func (c *Controller) Back() {
	if c.step == StepPayment {
		c.step = StepDetails
		c.fieldErrs = nil
	}
}

// Submit validates the payment step, assembles the order payload, and posts
// it to the remote API.
//
// On the gateway path the result carries the redirect URL and the cart is
// left intact: the external payment flow owns completion. On the coordinate
// path the cart is cleared and the result carries the new order ID. On any
// submission error the flow stays at the payment step so the customer can
// retry; no partial order exists until the API call succeeds.
func (c *Controller) Submit(ctx context.Context) (*OrderResult, error) {
	if c.closed {
		return nil, ErrClosed
	}
	if c.step != StepPayment {
		return nil, errors.Errorf("cannot submit from step %s", c.step)
	}
	if c.submitting {
		return nil, ErrSubmitInFlight
	}
	if errs := validatePayment(c.draft); errs != nil {
		c.fieldErrs = errs
		return nil, ErrValidation
	}
	lines := c.cart.Lines()
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}
	c.fieldErrs = nil

	req := c.buildOrder(lines)

	c.submitting = true
	res, err := c.submitter.CreateOrder(ctx, req)
	c.submitting = false

	if c.closed {
		// Stale response: the customer navigated away while the request
		// was in flight.
		return nil, ErrClosed
	}
	if err != nil {
		c.lg.Warn("Order submission failed", zap.Error(err))
		return nil, errors.Wrap(err, "create order")
	}

	if res.GatewayURL == "" {
		c.cart.Clear()
	}
	c.step = StepSubmitted
	c.result = res
	c.lg.Info("Order submitted",
		zap.String("order_id", res.OrderID),
		zap.Bool("gateway", res.GatewayURL != ""))
	return res, nil
}

// buildOrder reduces the draft and cart to the order payload. Fields that do
// not apply to the chosen delivery method are blanked rather than sent with
// stale values.
func (c *Controller) buildOrder(lines []cart.Line) OrderRequest {
	req := OrderRequest{
		Name:           c.draft.Name,
		Surname:        c.draft.Surname,
		Phone:          c.draft.Phone,
		Email:          c.draft.Email,
		TaxID:          c.draft.TaxID,
		DeliveryMethod: c.draft.DeliveryMethod,
		Notes:          c.draft.Notes,
		PaymentMethod:  c.draft.PaymentMethod,
	}

	switch c.draft.DeliveryMethod {
	case DeliveryShip:
		req.AddressStreet = c.draft.AddressStreet
		req.AddressNumber = c.draft.AddressNumber
		req.AddressFloor = c.draft.AddressFloor
		req.AddressApartment = c.draft.AddressApartment
		req.AddressNeighborhood = c.draft.AddressNeighborhood
		req.AddressCity = c.draft.AddressCity
		req.AddressZipCode = c.draft.AddressZipCode
	case DeliveryPickup:
		req.Branch = c.draft.Branch
	}

	if coupon := c.cart.AppliedCoupon(); coupon != nil {
		req.CouponCode = coupon.Code
	}

	req.Items = make([]OrderItem, len(lines))
	for i, l := range lines {
		req.Items[i] = OrderItem{ProductID: l.ProductID, Quantity: l.Quantity}
	}
	return req
}
