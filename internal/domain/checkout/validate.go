package checkout

import (
	"github.com/go-faster/errors"
	validatorv10 "github.com/go-playground/validator/v10"
)

var validate = validatorv10.New()

// fieldKeys maps struct field names to the stable keys the UI layer uses to
// place inline errors next to inputs.
var fieldKeys = map[string]string{
	"Name":          "name",
	"Surname":       "surname",
	"Phone":         "phone",
	"TaxID":         "tax_id",
	"Email":         "email",
	"AddressStreet": "address_street",
	"AddressNumber": "address_number",
	"AddressCity":   "address_city",
}

// User-facing copy stays in the storefront's language.
var fieldMessages = map[string]string{
	"name":           "El nombre es requerido",
	"surname":        "El apellido es requerido",
	"phone":          "El teléfono es requerido",
	"tax_id":         "DNI/CUIT es requerido",
	"email":          "El email no es válido",
	"address_street": "La calle es requerida",
	"address_number": "La altura es requerida",
	"address_city":   "La ciudad es requerida",
	"payment_method": "Seleccioná un método de pago",
}

// validateDetails checks the step-one fields: personal data always, address
// fields only when the delivery method is shipping. It returns a per-field
// error map, or nil when the draft passes.
func validateDetails(d Draft) map[string]string {
	err := validate.Struct(d)
	if err == nil {
		return nil
	}

	var verrs validatorv10.ValidationErrors
	if !errors.As(err, &verrs) {
		// Only tag-based errors are expected from a plain struct; anything
		// else is a programming error in the tags.
		panic(err)
	}

	fieldErrs := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		key, ok := fieldKeys[fe.StructField()]
		if !ok {
			key = fe.StructField()
		}
		msg, ok := fieldMessages[key]
		if !ok {
			msg = "Campo inválido"
		}
		fieldErrs[key] = msg
	}
	return fieldErrs
}

// validatePayment checks the step-two gate: a payment method must be chosen.
func validatePayment(d Draft) map[string]string {
	switch d.PaymentMethod {
	case PaymentCoordinate, PaymentGateway:
		return nil
	default:
		return map[string]string{"payment_method": fieldMessages["payment_method"]}
	}
}
