package main

import (
	"errors"
	"net/http"

	"payguard/internal/accounts"
	"payguard/internal/gateway"
	"payguard/internal/payments"
	"payguard/internal/retry"
)

func (app *application) internalServerError(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Errorw("internal error", "method", r.Method, "path", r.URL.Path, "error", err)
	writeJSONError(w, http.StatusInternalServerError, "the server encountered a problem")
}

func (app *application) badRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Warnw("bad request", "method", r.Method, "path", r.URL.Path, "error", err)
	writeJSONError(w, http.StatusBadRequest, err.Error())
}

func (app *application) unauthorizedBasicErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Warnw("unauthorized basic error", "method", r.Method, "path", r.URL.Path, "error", err)
	w.Header().Set("WWW-Authenticate", `Basic realm="restricted", charset="UTF-8"`)
	writeJSONError(w, http.StatusUnauthorized, "unauthorized")
}

func (app *application) rateLimitExceededResponse(w http.ResponseWriter, r *http.Request, retryAfter string) {
	app.logger.Warnw("rate limit exceeded", "method", r.Method, "path", r.URL.Path)
	w.Header().Set("Retry-After", retryAfter)
	writeJSONError(w, http.StatusTooManyRequests, "rate limit exceeded, retry after: "+retryAfter)
}

// serviceErrorResponse maps facade errors onto HTTP responses. Every message
// sent back is already user-safe.
func (app *application) serviceErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	var verr *payments.ValidationError
	if errors.As(err, &verr) {
		writeJSONError(w, http.StatusBadRequest, verr.Message)
		return
	}

	if errors.Is(err, retry.ErrCircuitOpen) {
		writeJSONError(w, http.StatusServiceUnavailable, retry.ErrCircuitOpen.Error())
		return
	}

	var cerr *accounts.ConfigurationError
	if errors.As(err, &cerr) {
		app.internalServerError(w, r, err)
		return
	}

	var gerr *gateway.Error
	if errors.As(err, &gerr) {
		status := gerr.StatusCode
		if status < 400 || status > 599 {
			status = http.StatusBadGateway
		}
		app.logger.Warnw("gateway error surfaced", "method", r.Method, "path", r.URL.Path, "code", gerr.Code, "status", status)
		writeJSONError(w, status, gerr.Error())
		return
	}

	app.internalServerError(w, r, err)
}
