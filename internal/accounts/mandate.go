// Package accounts owns the per-mandate-type merchant account contexts:
// credential resolution and lazy, idempotent gateway client initialization.
package accounts

import "fmt"

// SecretNamespace groups every secret this provider integration reads.
const SecretNamespace = "payment_gateway"

// MandateType identifies one isolated merchant account context. The provider
// requires a separate account (key pair) per payment-authorization method.
type MandateType string

const (
	UPI      MandateType = "upi"
	EMandate MandateType = "emandate"
)

// All lists every supported mandate type. The set is fixed at compile time.
func All() []MandateType {
	return []MandateType{UPI, EMandate}
}

func (t MandateType) Valid() bool {
	switch t {
	case UPI, EMandate:
		return true
	}
	return false
}

// APIName is the logical circuit-breaker key for this account's calls.
// Per-type names keep one mandate type's outage from disabling the others.
func (t MandateType) APIName() string {
	return SecretNamespace + ":" + string(t)
}

func ParseMandateType(s string) (MandateType, error) {
	t := MandateType(s)
	if !t.Valid() {
		return "", fmt.Errorf("unknown mandate type %q", s)
	}
	return t, nil
}
