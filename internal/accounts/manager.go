package accounts

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"payguard/internal/gateway"
)

// Factory builds one gateway client from resolved credentials. Swappable so
// tests can hand back fakes.
type Factory func(mandate MandateType, creds Credentials) gateway.Client

// RESTFactory builds real HTTP-backed clients against baseURL.
func RESTFactory(baseURL string) Factory {
	return func(_ MandateType, creds Credentials) gateway.Client {
		return gateway.NewRESTClient(baseURL, creds.KeyID, creds.KeySecret)
	}
}

// Manager lazily initializes one gateway client per mandate type. Concurrent
// callers for the same type join a single in-flight initialization and all
// receive its outcome; a failed attempt leaves the type uninitialized so a
// later call can try again.
type Manager struct {
	resolver *CredentialResolver
	factory  Factory
	logger   *zap.SugaredLogger

	mu      sync.RWMutex
	handles map[MandateType]gateway.Client
	sf      singleflight.Group
}

func NewManager(resolver *CredentialResolver, factory Factory, logger *zap.SugaredLogger) *Manager {
	return &Manager{
		resolver: resolver,
		factory:  factory,
		logger:   logger,
		handles:  make(map[MandateType]gateway.Client),
	}
}

// EnsureReady returns the account's client, initializing it on first use.
func (m *Manager) EnsureReady(ctx context.Context, mandate MandateType) (gateway.Client, error) {
	if !mandate.Valid() {
		return nil, &ConfigurationError{Mandate: mandate, Err: fmt.Errorf("unknown mandate type")}
	}

	m.mu.RLock()
	handle, ok := m.handles[mandate]
	m.mu.RUnlock()
	if ok {
		return handle, nil
	}

	v, err, _ := m.sf.Do(string(mandate), func() (any, error) {
		// another caller may have finished between the fast path and here
		m.mu.RLock()
		handle, ok := m.handles[mandate]
		m.mu.RUnlock()
		if ok {
			return handle, nil
		}

		creds, err := m.resolver.Resolve(ctx, mandate)
		if err != nil {
			return nil, err
		}

		client := m.factory(mandate, creds)
		m.mu.Lock()
		m.handles[mandate] = client
		m.mu.Unlock()

		m.logger.Infow("payment account initialized", "mandate_type", mandate)
		return client, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(gateway.Client), nil
}

// InitializeAll warms every mandate type. Failures are isolated per type; the
// call errors only when every type failed.
func (m *Manager) InitializeAll(ctx context.Context) error {
	var failed []string
	for _, mandate := range All() {
		if _, err := m.EnsureReady(ctx, mandate); err != nil {
			m.logger.Errorw("payment account initialization failed", "mandate_type", mandate, "error", err)
			failed = append(failed, string(mandate))
		}
	}

	if len(failed) == len(All()) {
		return fmt.Errorf("all payment accounts failed to initialize: %s", strings.Join(failed, ", "))
	}
	return nil
}
