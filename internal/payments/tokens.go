package payments

import (
	"context"

	"payguard/internal/accounts"
	"payguard/internal/gateway"
)

// FetchMandateTokens lists the customer's saved mandate tokens.
func (s *Service) FetchMandateTokens(ctx context.Context, customerID string, mandate accounts.MandateType) (*gateway.TokenList, error) {
	if customerID == "" {
		return nil, &ValidationError{Field: "CustomerID", Message: "Customer id is mandatory."}
	}

	return call(ctx, s, mandate, "token.fetch", customerID, func(ctx context.Context, client gateway.Client) (*gateway.TokenList, error) {
		return client.FetchTokens(ctx, customerID)
	})
}

// DeleteMandateToken revokes one saved token.
func (s *Service) DeleteMandateToken(ctx context.Context, customerID, tokenID string, mandate accounts.MandateType) error {
	if customerID == "" {
		return &ValidationError{Field: "CustomerID", Message: "Customer id is mandatory."}
	}
	if tokenID == "" {
		return &ValidationError{Field: "TokenID", Message: "Token is mandatory."}
	}

	_, err := call(ctx, s, mandate, "token.delete", customerID, func(ctx context.Context, client gateway.Client) (struct{}, error) {
		return struct{}{}, client.DeleteToken(ctx, customerID, tokenID)
	})
	return err
}
