// Package payments is the operation facade over the payment gateway:
// validated customer, order, recurring-payment and token operations per
// mandate type, plus webhook signature verification.
package payments

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"payguard/internal/accounts"
	"payguard/internal/gateway"
	"payguard/internal/retry"
	"payguard/internal/secrets"
)

type Service struct {
	accounts *accounts.Manager
	engine   *retry.Engine
	policy   retry.Policy
	secrets  secrets.Store
	logger   *zap.SugaredLogger
}

func NewService(mgr *accounts.Manager, engine *retry.Engine, policy retry.Policy, secretStore secrets.Store, logger *zap.SugaredLogger) *Service {
	return &Service{
		accounts: mgr,
		engine:   engine,
		policy:   policy,
		secrets:  secretStore,
		logger:   logger,
	}
}

// call resolves the account handle and runs fn through the retry engine with
// the logging decorator composed around the operation closure.
func call[T any](ctx context.Context, s *Service, mandate accounts.MandateType, opName, account string, fn func(context.Context, gateway.Client) (T, error)) (T, error) {
	client, err := s.accounts.EnsureReady(ctx, mandate)
	if err != nil {
		var zero T
		return zero, err
	}

	op := logged(s, opName, mandate, account, func(ctx context.Context) (T, error) {
		return fn(ctx, client)
	})
	return retry.Execute(ctx, s.engine, mandate.APIName(), s.policy, op)
}

// logged wraps an operation closure with structured before/after logging.
func logged[T any](s *Service, opName string, mandate accounts.MandateType, account string, fn func(context.Context) (T, error)) func(context.Context) (T, error) {
	return func(ctx context.Context) (T, error) {
		result, err := fn(ctx)
		if err != nil {
			s.logger.Errorw("gateway operation failed",
				"operation", opName,
				"mandate_type", mandate,
				"account", sanitizeAccount(account),
				"error", err,
			)
			return result, err
		}
		s.logger.Infow("gateway operation succeeded",
			"operation", opName,
			"mandate_type", mandate,
			"account", sanitizeAccount(account),
		)
		return result, nil
	}
}

// sanitizeAccount reduces an email-like identifier to its first character
// plus domain so logs never carry personal data.
func sanitizeAccount(account string) string {
	if account == "" {
		return ""
	}
	at := strings.LastIndex(account, "@")
	if at <= 0 {
		return account[:1] + "***"
	}
	return account[:1] + "***" + account[at:]
}
