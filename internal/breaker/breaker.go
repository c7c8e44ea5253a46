// Package breaker keeps circuit state for external APIs in the shared cache
// so every process instance sees an outage within one TTL window.
package breaker

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"payguard/internal/cache"
)

const keyPrefix = "circuit:"

const (
	StatusSuccess = "SUCCESS"
	StatusFailed  = "FAILED"
)

// Thresholds controls when a circuit opens and how long its record lives.
type Thresholds struct {
	// FailureCount is the number of consecutive counted failures that
	// flips the circuit to FAILED.
	FailureCount int
	// TimeToExpire is the TTL set when the first failure is recorded.
	// Later updates keep the original expiry, so a circuit always decays
	// within one window of its first failure going quiet.
	TimeToExpire time.Duration
}

func DefaultThresholds() Thresholds {
	return Thresholds{
		FailureCount: 5,
		TimeToExpire: 2 * time.Minute,
	}
}

// Record is the cache value for one logical API name.
type Record struct {
	Status              string    `json:"status"`
	ConsecutiveFailures int       `json:"consecutive_failures"`
	LastFailedAt        time.Time `json:"last_failed_at"`
}

// CircuitStore reads and writes circuit records. The read-modify-write in
// RecordFailure is deliberately lock-free: a lost update merely delays the
// trip by one increment, it never opens a healthy circuit.
type CircuitStore struct {
	cache  cache.Store
	logger *zap.SugaredLogger
}

func NewCircuitStore(store cache.Store, logger *zap.SugaredLogger) *CircuitStore {
	return &CircuitStore{cache: store, logger: logger}
}

// IsOpen reports whether the circuit for apiName has tripped. Cache errors
// fail open: a cache outage must not disable payments on its own.
func (s *CircuitStore) IsOpen(ctx context.Context, apiName string) bool {
	rec, err := s.get(ctx, apiName)
	if err != nil {
		if !errors.Is(err, cache.ErrMiss) {
			s.logger.Warnw("circuit read failed, treating as closed", "api", apiName, "error", err)
		}
		return false
	}
	return rec.Status == StatusFailed
}

// RecordSuccess closes the circuit by deleting the record.
func (s *CircuitStore) RecordSuccess(ctx context.Context, apiName string) {
	if err := s.cache.Del(ctx, keyPrefix+apiName); err != nil {
		s.logger.Warnw("circuit reset failed", "api", apiName, "error", err)
	}
}

// RecordFailure counts one qualifying failure. The first failure creates the
// record with the full TTL; later failures update in place with KeepTTL so
// the expiry set at the start of the outage is never extended or shortened.
func (s *CircuitStore) RecordFailure(ctx context.Context, apiName string, th Thresholds) {
	key := keyPrefix + apiName

	rec, err := s.get(ctx, apiName)
	switch {
	case errors.Is(err, cache.ErrMiss):
		rec = Record{Status: StatusSuccess, ConsecutiveFailures: 1, LastFailedAt: time.Now().UTC()}
		if rec.ConsecutiveFailures >= th.FailureCount {
			rec.Status = StatusFailed
		}
		s.write(ctx, key, rec, th.TimeToExpire, false)
		return
	case err != nil:
		s.logger.Warnw("circuit read failed, skipping failure record", "api", apiName, "error", err)
		return
	}

	rec.ConsecutiveFailures++
	rec.LastFailedAt = time.Now().UTC()
	if rec.ConsecutiveFailures >= th.FailureCount {
		if rec.Status != StatusFailed {
			s.logger.Errorw("circuit opened", "api", apiName, "consecutive_failures", rec.ConsecutiveFailures)
		}
		rec.Status = StatusFailed
	}
	s.write(ctx, key, rec, 0, true)
}

// Snapshot returns the current record per API name, for the debug surface.
func (s *CircuitStore) Snapshot(ctx context.Context) (map[string]Record, error) {
	keys, err := s.cache.Keys(ctx, keyPrefix+"*")
	if err != nil {
		return nil, err
	}

	out := make(map[string]Record, len(keys))
	for _, key := range keys {
		rec, err := s.get(ctx, strings.TrimPrefix(key, keyPrefix))
		if err != nil {
			// expired between KEYS and GET
			continue
		}
		out[strings.TrimPrefix(key, keyPrefix)] = rec
	}
	return out, nil
}

func (s *CircuitStore) get(ctx context.Context, apiName string) (Record, error) {
	raw, err := s.cache.Get(ctx, keyPrefix+apiName)
	if err != nil {
		return Record{}, err
	}

	var rec Record
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return Record{}, err
	}
	return rec, nil
}

func (s *CircuitStore) write(ctx context.Context, key string, rec Record, ttl time.Duration, keepTTL bool) {
	raw, err := json.Marshal(rec)
	if err != nil {
		s.logger.Warnw("circuit record marshal failed", "key", key, "error", err)
		return
	}

	if keepTTL {
		err = s.cache.SetKeepTTL(ctx, key, string(raw))
	} else {
		err = s.cache.Set(ctx, key, string(raw), ttl)
	}
	if err != nil {
		s.logger.Warnw("circuit record write failed", "key", key, "error", err)
	}
}
