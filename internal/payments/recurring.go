package payments

import (
	"context"

	"payguard/internal/accounts"
	"payguard/internal/gateway"
)

// CreateRecurringPayment charges a saved mandate token against an order.
func (s *Service) CreateRecurringPayment(ctx context.Context, input RecurringPaymentInput, mandate accounts.MandateType) (*gateway.Payment, error) {
	if err := validateRecurringPaymentInput(input); err != nil {
		return nil, err
	}

	params := gateway.RecurringParams{
		Email:       input.Email,
		Contact:     input.Contact,
		Amount:      input.Amount,
		Currency:    input.Currency,
		OrderID:     input.OrderID,
		CustomerID:  input.CustomerID,
		Token:       input.TokenID,
		Recurring:   "1",
		Description: input.Description,
		Notes:       input.Notes,
	}

	payment, err := call(ctx, s, mandate, "payment.recurring", input.Email, func(ctx context.Context, client gateway.Client) (*gateway.Payment, error) {
		return client.CreateRecurringPayment(ctx, params)
	})
	if err != nil {
		// purely descriptive, the retry/circuit decision is already made
		desc := DescribeRecurringFailure(err)
		s.logger.Warnw("recurring payment failed",
			"mandate_type", mandate,
			"account", sanitizeAccount(input.Email),
			"code", desc.Code,
			"recommended_action", desc.Action,
			"retryable", desc.Retryable,
		)
		return nil, err
	}
	return payment, nil
}
