package checkout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// validDetails returns a draft that passes the details step for shipping.
func validDetails() Draft {
	d := NewDraft()
	d.Name = "Ana"
	d.Surname = "García"
	d.Phone = "2235550000"
	d.TaxID = "30123456"
	d.AddressStreet = "Av. Colón"
	d.AddressNumber = "1234"
	return d
}

func TestValidateDetails(t *testing.T) {
	tests := []struct {
		name       string
		mutate     func(*Draft)
		wantFields []string
	}{
		{
			name:   "complete shipping draft passes",
			mutate: func(d *Draft) {},
		},
		{
			name: "missing personal fields",
			mutate: func(d *Draft) {
				d.Name = ""
				d.Surname = ""
				d.Phone = ""
				d.TaxID = ""
			},
			wantFields: []string{"name", "surname", "phone", "tax_id"},
		},
		{
			name:       "shipping requires street",
			mutate:     func(d *Draft) { d.AddressStreet = "" },
			wantFields: []string{"address_street"},
		},
		{
			name:       "shipping requires number",
			mutate:     func(d *Draft) { d.AddressNumber = "" },
			wantFields: []string{"address_number"},
		},
		{
			name:       "shipping requires city",
			mutate:     func(d *Draft) { d.AddressCity = "" },
			wantFields: []string{"address_city"},
		},
		{
			name: "pickup does not require address",
			mutate: func(d *Draft) {
				d.DeliveryMethod = DeliveryPickup
				d.AddressStreet = ""
				d.AddressNumber = ""
				d.AddressCity = ""
			},
		},
		{
			name:       "invalid email rejected",
			mutate:     func(d *Draft) { d.Email = "not-an-email" },
			wantFields: []string{"email"},
		},
		{
			name:   "empty email allowed",
			mutate: func(d *Draft) { d.Email = "" },
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validDetails()
			tt.mutate(&d)

			errs := validateDetails(d)

			if len(tt.wantFields) == 0 {
				assert.Nil(t, errs)
				return
			}
			require.Len(t, errs, len(tt.wantFields))
			for _, field := range tt.wantFields {
				assert.Contains(t, errs, field)
				assert.NotEmpty(t, errs[field])
			}
		})
	}
}

func TestValidatePayment(t *testing.T) {
	d := NewDraft()

	errs := validatePayment(d)
	require.Contains(t, errs, "payment_method")

	d.PaymentMethod = PaymentCoordinate
	assert.Nil(t, validatePayment(d))

	d.PaymentMethod = PaymentGateway
	assert.Nil(t, validatePayment(d))

	d.PaymentMethod = "cheque"
	assert.Contains(t, validatePayment(d), "payment_method")
}
