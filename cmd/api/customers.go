package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"payguard/internal/accounts"
	"payguard/internal/payments"
)

// mandateFromRequest resolves the mandate_type query parameter, defaulting
// to upi when absent.
func mandateFromRequest(r *http.Request) (accounts.MandateType, error) {
	raw := r.URL.Query().Get("mandate_type")
	if raw == "" {
		return accounts.UPI, nil
	}
	return accounts.ParseMandateType(raw)
}

type customerPayload struct {
	CustomerID string `json:"customer_id,omitempty"`
	payments.CustomerInput
}

func (app *application) createOrUpdateCustomerHandler(w http.ResponseWriter, r *http.Request) {
	mandate, err := mandateFromRequest(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var payload customerPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	outcome, err := app.payments.CreateOrUpdateCustomer(r.Context(), payload.CustomerID, payload.CustomerInput, mandate)
	if err != nil {
		app.serviceErrorResponse(w, r, err)
		return
	}

	status := http.StatusOK
	if outcome.Created {
		status = http.StatusCreated
	}

	if err := app.jsonResponse(w, status, outcome); err != nil {
		app.internalServerError(w, r, err)
	}
}

func (app *application) validateCustomerHandler(w http.ResponseWriter, r *http.Request) {
	customerID := chi.URLParam(r, "customerID")

	mandate, err := mandateFromRequest(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var payload payments.CustomerInput
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	validation, err := app.payments.ValidateCustomer(r.Context(), customerID, payload, mandate)
	if err != nil {
		app.serviceErrorResponse(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, validation); err != nil {
		app.internalServerError(w, r, err)
	}
}
