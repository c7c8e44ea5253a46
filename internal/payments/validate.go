package payments

import (
	"errors"
	"regexp"

	"github.com/go-playground/validator/v10"
)

var Validate *validator.Validate

var contactRe = regexp.MustCompile(`^[0-9]{10,15}$`)

func init() {
	Validate = validator.New(validator.WithRequiredStructEnabled())

	// contact numbers: 10 to 15 digits, no separators
	Validate.RegisterValidation("contact", func(fl validator.FieldLevel) bool {
		return contactRe.MatchString(fl.Field().String())
	})
}

// ValidationError is a caller mistake caught before any network call. The
// message is exact and user-facing.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// validateStruct runs the validator and translates the first failure into
// the mandated message. Messages are keyed "Field.tag" with a "Field"
// fallback covering every tag on that field.
func validateStruct(v any, messages map[string]string) error {
	err := Validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		if msg, ok := messages[fe.Field()+"."+fe.Tag()]; ok {
			return &ValidationError{Field: fe.Field(), Message: msg}
		}
		if msg, ok := messages[fe.Field()]; ok {
			return &ValidationError{Field: fe.Field(), Message: msg}
		}
		return &ValidationError{Field: fe.Field(), Message: fe.Field() + " is invalid."}
	}
	return err
}

// CustomerInput is the caller-supplied customer payload.
type CustomerInput struct {
	Name    string            `json:"name" validate:"required"`
	Email   string            `json:"email" validate:"required"`
	Contact string            `json:"contact" validate:"required"`
	Notes   map[string]string `json:"notes,omitempty"`
}

var customerMessages = map[string]string{
	"Name.required":    "Name is mandatory.",
	"Email.required":   "Email is mandatory.",
	"Contact.required": "Contact is mandatory.",
}

func validateCustomerInput(input CustomerInput) error {
	return validateStruct(input, customerMessages)
}

// MethodEMandate is the bank-transfer order variant that must carry the
// customer's bank account details.
const MethodEMandate = "emandate"

type BankAccountInput struct {
	AccountNumber   string `json:"account_number" validate:"required"`
	IFSC            string `json:"ifsc" validate:"required"`
	BeneficiaryName string `json:"beneficiary_name" validate:"required"`
}

type ChargeOrderInput struct {
	Amount      int64             `json:"amount" validate:"required"`
	Currency    string            `json:"currency" validate:"required"`
	CustomerID  string            `json:"customer_id" validate:"required"`
	Method      string            `json:"method,omitempty"`
	Receipt     string            `json:"receipt,omitempty"`
	BankAccount *BankAccountInput `json:"bank_account,omitempty"`
	Notes       map[string]string `json:"notes,omitempty"`
}

var orderMessages = map[string]string{
	"Amount.required":     "Amount is mandatory.",
	"Currency.required":   "Currency is mandatory.",
	"CustomerID.required": "Customer id is mandatory.",
}

var bankAccountMessages = map[string]string{
	"AccountNumber.required":   "Bank account number is mandatory.",
	"IFSC.required":            "Bank IFSC is mandatory.",
	"BeneficiaryName.required": "Beneficiary name is mandatory.",
}

func validateChargeOrderInput(input ChargeOrderInput) error {
	if err := validateStruct(input, orderMessages); err != nil {
		return err
	}

	if input.Method == MethodEMandate {
		if input.BankAccount == nil {
			return &ValidationError{Field: "BankAccount", Message: "Bank account details are mandatory for emandate orders."}
		}
		if err := validateStruct(*input.BankAccount, bankAccountMessages); err != nil {
			return err
		}
	}
	return nil
}

type RecurringPaymentInput struct {
	Email       string            `json:"email" validate:"required,email"`
	Contact     string            `json:"contact" validate:"required,contact"`
	Amount      int64             `json:"amount" validate:"required,gt=0"`
	Currency    string            `json:"currency" validate:"required"`
	OrderID     string            `json:"order_id" validate:"required"`
	CustomerID  string            `json:"customer_id" validate:"required"`
	TokenID     string            `json:"token_id" validate:"required"`
	Description string            `json:"description,omitempty"`
	Notes       map[string]string `json:"notes,omitempty"`
}

var recurringMessages = map[string]string{
	"Email.required":      "Email is mandatory.",
	"Email.email":         "Email format is invalid.",
	"Contact.required":    "Contact is mandatory.",
	"Contact.contact":     "Contact must be 10 to 15 digits.",
	"Amount":              "Amount must be greater than zero.",
	"Currency.required":   "Currency is mandatory.",
	"OrderID.required":    "Order id is mandatory.",
	"CustomerID.required": "Customer id is mandatory.",
	"TokenID.required":    "Token is mandatory.",
}

func validateRecurringPaymentInput(input RecurringPaymentInput) error {
	return validateStruct(input, recurringMessages)
}
