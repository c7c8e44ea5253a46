package gateway

import "context"

// Client is the opaque payment-gateway contract. One client is bound to one
// merchant account; the accounts package owns the instances.
type Client interface {
	CreateCustomer(ctx context.Context, params CustomerParams) (*Customer, error)
	FetchCustomer(ctx context.Context, customerID string) (*Customer, error)
	EditCustomer(ctx context.Context, customerID string, params CustomerParams) (*Customer, error)
	FetchTokens(ctx context.Context, customerID string) (*TokenList, error)
	DeleteToken(ctx context.Context, customerID, tokenID string) error
	CreateOrder(ctx context.Context, params OrderParams) (*Order, error)
	CreateRecurringPayment(ctx context.Context, params RecurringParams) (*Payment, error)
}

type CustomerParams struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Contact string `json:"contact"`
	// FailExisting makes the provider reject a duplicate instead of
	// returning the existing record.
	FailExisting bool `json:"-"`
}

type Customer struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Contact string `json:"contact"`
}

type Token struct {
	ID              string `json:"id"`
	Method          string `json:"method"`
	Bank            string `json:"bank,omitempty"`
	RecurringStatus string `json:"recurring_status,omitempty"`
}

type TokenList struct {
	Count int     `json:"count"`
	Items []Token `json:"items"`
}

type BankAccount struct {
	AccountNumber   string `json:"account_number"`
	IFSC            string `json:"ifsc"`
	BeneficiaryName string `json:"beneficiary_name"`
}

type OrderParams struct {
	// Amount is in the smallest currency unit.
	Amount      int64             `json:"amount"`
	Currency    string            `json:"currency"`
	Method      string            `json:"method,omitempty"`
	CustomerID  string            `json:"customer_id,omitempty"`
	Receipt     string            `json:"receipt,omitempty"`
	BankAccount *BankAccount      `json:"bank_account,omitempty"`
	Notes       map[string]string `json:"notes,omitempty"`
}

type Order struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

type RecurringParams struct {
	Email       string            `json:"email"`
	Contact     string            `json:"contact"`
	Amount      int64             `json:"amount"`
	Currency    string            `json:"currency"`
	OrderID     string            `json:"order_id"`
	CustomerID  string            `json:"customer_id"`
	Token       string            `json:"token"`
	Recurring   string            `json:"recurring"`
	Description string            `json:"description,omitempty"`
	Notes       map[string]string `json:"notes,omitempty"`
}

type Payment struct {
	ID      string `json:"id"`
	OrderID string `json:"order_id,omitempty"`
	Status  string `json:"status,omitempty"`
}
