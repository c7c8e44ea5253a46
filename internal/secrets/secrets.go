package secrets

import (
	"context"
	"fmt"
	"os"
	"strings"
)

// Store is the secret source the rest of the app depends on. Secrets are
// grouped by namespace (one per external provider) and addressed by key.
type Store interface {
	GetSecret(ctx context.Context, namespace, key string) (string, error)
}

// EnvStore resolves secrets from environment variables. A (namespace, key)
// pair maps to UPPER(namespace)_UPPER(key), so ("payment_gateway",
// "upi_key_id") reads PAYMENT_GATEWAY_UPI_KEY_ID. Combined with godotenv in
// cmd/api this covers local .env files and real environments alike.
type EnvStore struct{}

func NewEnvStore() *EnvStore {
	return &EnvStore{}
}

func (s *EnvStore) GetSecret(_ context.Context, namespace, key string) (string, error) {
	name := envName(namespace, key)
	val, ok := os.LookupEnv(name)
	if !ok || val == "" {
		return "", fmt.Errorf("secret %s/%s not found (env %s)", namespace, key, name)
	}
	return val, nil
}

func envName(namespace, key string) string {
	return strings.ToUpper(namespace) + "_" + strings.ToUpper(key)
}
