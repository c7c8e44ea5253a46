package payments

import (
	"context"

	"github.com/google/uuid"

	"payguard/internal/accounts"
	"payguard/internal/gateway"
)

// CreateChargeOrder creates a provider order for a future charge. A receipt
// is generated when the caller does not supply one.
func (s *Service) CreateChargeOrder(ctx context.Context, input ChargeOrderInput, mandate accounts.MandateType) (*gateway.Order, error) {
	if err := validateChargeOrderInput(input); err != nil {
		return nil, err
	}

	receipt := input.Receipt
	if receipt == "" {
		receipt = "rcpt_" + uuid.NewString()
	}

	params := gateway.OrderParams{
		Amount:     input.Amount,
		Currency:   input.Currency,
		Method:     input.Method,
		CustomerID: input.CustomerID,
		Receipt:    receipt,
		Notes:      input.Notes,
	}
	if input.BankAccount != nil {
		params.BankAccount = &gateway.BankAccount{
			AccountNumber:   input.BankAccount.AccountNumber,
			IFSC:            input.BankAccount.IFSC,
			BeneficiaryName: input.BankAccount.BeneficiaryName,
		}
	}

	return call(ctx, s, mandate, "order.create", input.CustomerID, func(ctx context.Context, client gateway.Client) (*gateway.Order, error) {
		return client.CreateOrder(ctx, params)
	})
}
