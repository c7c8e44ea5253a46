package retry

import (
	"errors"

	"payguard/internal/gateway"
)

// Provider codes that mean the caller got something wrong. They never count
// toward the circuit and retrying them is pointless.
var deniedCodes = map[string]struct{}{
	"BAD_REQUEST_ERROR":     {},
	"VALIDATION_ERROR":      {},
	"INVALID_REQUEST_ERROR": {},
	"DUPLICATE_ENTRY_ERROR": {},
	"NOT_FOUND_ERROR":       {},
	"UNAUTHORIZED_ERROR":    {},
}

// Classification is the retry/circuit verdict for one failure.
type Classification struct {
	Retryable           bool
	CountsTowardCircuit bool
}

// Classify decides, in priority order:
//  1. HTTP status present: only 403 and 5xx indicate provider trouble.
//     Other 4xx (400, 422, ...) are caller mistakes.
//  2. Provider code present: denied codes are caller mistakes, everything
//     else counts.
//  3. Neither (raw network/timeout failures): count, fail safe toward
//     protecting the breaker.
func Classify(err error) Classification {
	var gerr *gateway.Error
	if errors.As(err, &gerr) {
		if gerr.StatusCode != 0 {
			counted := gerr.StatusCode == 403 || gerr.StatusCode >= 500
			return Classification{Retryable: counted, CountsTowardCircuit: counted}
		}
		if gerr.Code != "" {
			if _, denied := deniedCodes[gerr.Code]; denied {
				return Classification{}
			}
			return Classification{Retryable: true, CountsTowardCircuit: true}
		}
	}
	return Classification{Retryable: true, CountsTowardCircuit: true}
}

// ShouldCountAsFailure reports whether err qualifies for a circuit increment.
func ShouldCountAsFailure(err error) bool {
	return Classify(err).CountsTowardCircuit
}
