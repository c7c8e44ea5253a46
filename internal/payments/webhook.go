package payments

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"

	"payguard/internal/accounts"
)

// VerifyWebhookSignature checks the provider's HMAC-SHA256 signature over the
// raw webhook body. It never fails with an error: anything going wrong
// (secret fetch, bad input) degrades to false. The signing secret is fetched
// on every call so a rotation takes effect immediately.
func (s *Service) VerifyWebhookSignature(ctx context.Context, body, signature string) bool {
	if signature == "" {
		return false
	}

	secret, err := s.secrets.GetSecret(ctx, accounts.SecretNamespace, "webhook_secret")
	if err != nil {
		s.logger.Errorw("webhook secret unavailable", "error", err)
		return false
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(body))
	expected := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(signature))
}
