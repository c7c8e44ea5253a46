package payments

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"
)

func sign(secret, body string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(body))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifyWebhookSignature(t *testing.T) {
	t.Parallel()

	svc := newTestService(newMockGateway())
	body := `{"event":"payment.captured","payload":{}}`

	if !svc.VerifyWebhookSignature(context.Background(), body, sign("whsec_test", body)) {
		t.Fatal("valid signature rejected")
	}
}

func TestVerifyWebhookSignatureTampered(t *testing.T) {
	t.Parallel()

	svc := newTestService(newMockGateway())
	body := `{"event":"payment.captured"}`

	sig := sign("whsec_test", body)
	if svc.VerifyWebhookSignature(context.Background(), body+" ", sig) {
		t.Fatal("tampered body accepted")
	}
	if svc.VerifyWebhookSignature(context.Background(), body, sign("wrong_secret", body)) {
		t.Fatal("signature from wrong secret accepted")
	}
	if svc.VerifyWebhookSignature(context.Background(), body, "") {
		t.Fatal("empty signature accepted")
	}
}

func TestVerifyWebhookSignatureMissingSecretDegradesToFalse(t *testing.T) {
	t.Parallel()

	// no webhook_secret provisioned, verify must return false, not panic
	mock := newMockGateway()
	svc := newTestService(mock)
	svc.secrets = staticSecrets{}

	body := `{"event":"payment.captured"}`
	if svc.VerifyWebhookSignature(context.Background(), body, sign("whsec_test", body)) {
		t.Fatal("verification must fail without a secret")
	}
}
