package payments

import (
	"errors"
	"fmt"

	"payguard/internal/gateway"
)

// RecurringFailure is a human-readable explanation of a recurring-payment
// failure. It is surfaced to callers and logged, and never feeds back into
// retry or circuit decisions.
type RecurringFailure struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Action    string `json:"recommended_action"`
	Retryable bool   `json:"retryable"`
}

var recurringFailures = map[string]RecurringFailure{
	"BAD_REQUEST_ERROR": {
		Message:   "The recurring payment request was rejected by the payment gateway.",
		Action:    "Review the order, customer and token details before trying again.",
		Retryable: false,
	},
	"GATEWAY_ERROR": {
		Message:   "The payment gateway could not process the charge.",
		Action:    "Try again after some time.",
		Retryable: true,
	},
	"SERVER_ERROR": {
		Message:   "The payment gateway had an internal problem.",
		Action:    "Try again after some time.",
		Retryable: true,
	},
	"NOT_FOUND_ERROR": {
		Message:   "The customer, order or token no longer exists at the payment gateway.",
		Action:    "Re-create the mandate before charging again.",
		Retryable: false,
	},
	"UNAUTHORIZED_ERROR": {
		Message:   "The merchant account credentials were rejected.",
		Action:    "Verify the account key configuration.",
		Retryable: false,
	},
	"MANDATE_NOT_ACTIVE": {
		Message:   "The customer's mandate is paused, cancelled or expired.",
		Action:    "Ask the customer to authorize a new mandate.",
		Retryable: false,
	},
	"PAYMENT_DECLINED": {
		Message:   "The customer's bank declined the charge.",
		Action:    "Retry on the next billing cycle or contact the customer.",
		Retryable: false,
	},
}

// DescribeRecurringFailure maps a recurring-payment error to its description.
// Unknown codes get a generic templated message.
func DescribeRecurringFailure(err error) RecurringFailure {
	code := ""
	var gerr *gateway.Error
	if errors.As(err, &gerr) {
		code = gerr.Code
	}

	if desc, ok := recurringFailures[code]; ok {
		desc.Code = code
		return desc
	}

	if code == "" {
		return RecurringFailure{
			Message:   "The recurring payment could not be completed.",
			Action:    "Try again after some time, and contact support if the problem persists.",
			Retryable: true,
		}
	}
	return RecurringFailure{
		Code:      code,
		Message:   fmt.Sprintf("Recurring payment failed with code %s.", code),
		Action:    "Contact support if the problem persists.",
		Retryable: false,
	}
}
