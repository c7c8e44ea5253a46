package accounts

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"payguard/internal/secrets"
)

// Credentials is one merchant account's key pair. KeySecret may be empty for
// accounts provisioned without one.
type Credentials struct {
	KeyID     string
	KeySecret string
}

// ConfigurationError means an account's credentials are missing or malformed.
// It is fatal for the affected mandate type and never retried.
type ConfigurationError struct {
	Mandate MandateType
	Err     error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("payment account %s is not configured: %v", e.Mandate, e.Err)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// CredentialResolver fetches key pairs from the secret store. It is
// stateless; caching is the Manager's job.
type CredentialResolver struct {
	secrets secrets.Store
}

func NewCredentialResolver(store secrets.Store) *CredentialResolver {
	return &CredentialResolver{secrets: store}
}

// Resolve fetches both key fields concurrently. The key id is mandatory; a
// missing key secret is tolerated since some account setups omit it.
func (r *CredentialResolver) Resolve(ctx context.Context, mandate MandateType) (Credentials, error) {
	var creds Credentials

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		id, err := r.secrets.GetSecret(gctx, SecretNamespace, string(mandate)+"_key_id")
		if err != nil {
			return err
		}
		creds.KeyID = id
		return nil
	})
	g.Go(func() error {
		secret, err := r.secrets.GetSecret(gctx, SecretNamespace, string(mandate)+"_key_secret")
		if err == nil {
			creds.KeySecret = secret
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return Credentials{}, &ConfigurationError{Mandate: mandate, Err: err}
	}
	return creds, nil
}
