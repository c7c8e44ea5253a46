package main

import (
	"io"
	"net/http"
)

// paymentWebhookHandler authenticates provider webhooks. Verification reads
// the raw body, so no JSON decoding happens before the signature check.
func (app *application) paymentWebhookHandler(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 1_048_576))
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	signature := r.Header.Get("X-Webhook-Signature")
	if !app.payments.VerifyWebhookSignature(r.Context(), string(body), signature) {
		app.logger.Warnw("webhook signature rejected", "path", r.URL.Path)
		writeJSONError(w, http.StatusUnauthorized, "invalid webhook signature")
		return
	}

	app.logger.Infow("webhook accepted", "bytes", len(body))
	if err := app.jsonResponse(w, http.StatusOK, map[string]bool{"verified": true}); err != nil {
		app.internalServerError(w, r, err)
	}
}
