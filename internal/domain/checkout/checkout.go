// Package checkout implements the two-step order entry flow: contact and
// delivery details first, then payment. Advancement between steps is gated
// by field validation, and submission hands the assembled order to the
// remote API.
package checkout

import (
	"context"

	"github.com/go-faster/errors"
)

// Step identifies a stage of the checkout flow.
type Step int

const (
	// StepDetails collects personal data and the delivery method.
	StepDetails Step = iota + 1
	// StepPayment collects the payment method and submits the order.
	StepPayment
	// StepSubmitted is terminal: the order was accepted by the API.
	StepSubmitted
)

// String returns the step name for logging.
func (s Step) String() string {
	switch s {
	case StepDetails:
		return "details"
	case StepPayment:
		return "payment"
	case StepSubmitted:
		return "submitted"
	default:
		return "unknown"
	}
}

// DeliveryMethod selects how the order reaches the customer.
type DeliveryMethod string

const (
	// DeliveryShip sends the order to the customer's address.
	DeliveryShip DeliveryMethod = "envio"
	// DeliveryPickup has the customer collect the order at a branch.
	DeliveryPickup DeliveryMethod = "retiro"
)

// PaymentMethod selects how the order is paid.
type PaymentMethod string

const (
	// PaymentCoordinate resolves payment with the seller at fulfillment
	// (cash, transfer, or card at the store).
	PaymentCoordinate PaymentMethod = "coordinate"
	// PaymentGateway pays online through the external gateway redirect.
	PaymentGateway PaymentMethod = "mercadopago"
)

// Branches lists the pickup branches a customer may choose from.
var Branches = []string{"Sucursal Tucumán", "Sucursal Independencia"}

// Sentinel errors for flow control.
var (
	// ErrValidation is returned when a step transition is blocked by field
	// validation; the per-field details live in Controller.Errors.
	ErrValidation = errors.New("validation failed")
	// ErrSubmitInFlight is returned when Submit is called while a previous
	// submission has not finished.
	ErrSubmitInFlight = errors.New("order submission already in flight")
	// ErrClosed is returned when the controller was closed by navigation
	// away from checkout.
	ErrClosed = errors.New("checkout closed")
	// ErrEmptyCart is returned when checkout is attempted with no lines.
	ErrEmptyCart = errors.New("cart is empty")
)

// Draft is the mutable checkout form state. Field values are plain strings
// as entered; validation happens on step transitions, not on assignment.
type Draft struct {
	Name    string `validate:"required"`
	Surname string `validate:"required"`
	Phone   string `validate:"required"`
	TaxID   string `validate:"required"`
	Email   string `validate:"omitempty,email"`

	DeliveryMethod DeliveryMethod `validate:"required,oneof=envio retiro"`

	AddressStreet       string `validate:"required_if=DeliveryMethod envio"`
	AddressNumber       string `validate:"required_if=DeliveryMethod envio"`
	AddressFloor        string
	AddressApartment    string
	AddressNeighborhood string
	AddressCity         string `validate:"required_if=DeliveryMethod envio"`
	AddressZipCode      string

	Branch string
	Notes  string

	PaymentMethod PaymentMethod
}

// NewDraft returns a draft pre-filled with the storefront defaults.
func NewDraft() Draft {
	return Draft{
		DeliveryMethod: DeliveryShip,
		AddressCity:    "Mar del Plata",
		Branch:         Branches[0],
	}
}

// OrderItem is a cart line reduced to what the order API needs.
type OrderItem struct {
	ProductID int64
	Quantity  int
}

// OrderRequest is the assembled order payload. Address fields are blanked
// when the delivery method is pickup, and the branch is blanked when it is
// shipping, so the API never sees fields that do not apply.
type OrderRequest struct {
	Name    string
	Surname string
	Phone   string
	Email   string
	TaxID   string

	AddressStreet       string
	AddressNumber       string
	AddressFloor        string
	AddressApartment    string
	AddressNeighborhood string
	AddressCity         string
	AddressZipCode      string

	DeliveryMethod DeliveryMethod
	Branch         string
	Notes          string
	CouponCode     string
	PaymentMethod  PaymentMethod

	Items []OrderItem
}

// OrderResult is the API's answer to a created order. A non-empty GatewayURL
// means the customer must be sent to the external payment gateway; the cart
// stays intact until that flow completes.
type OrderResult struct {
	OrderID    string
	GatewayURL string
}

// Submitter posts an assembled order to the remote commerce API.
type Submitter interface {
	CreateOrder(ctx context.Context, req OrderRequest) (*OrderResult, error)
}
