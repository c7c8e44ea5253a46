package main

import (
	"net/http"

	"payguard/internal/payments"
)

func (app *application) createChargeOrderHandler(w http.ResponseWriter, r *http.Request) {
	mandate, err := mandateFromRequest(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var payload payments.ChargeOrderInput
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	order, err := app.payments.CreateChargeOrder(r.Context(), payload, mandate)
	if err != nil {
		app.serviceErrorResponse(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusCreated, order); err != nil {
		app.internalServerError(w, r, err)
	}
}

func (app *application) createRecurringPaymentHandler(w http.ResponseWriter, r *http.Request) {
	mandate, err := mandateFromRequest(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var payload payments.RecurringPaymentInput
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	payment, err := app.payments.CreateRecurringPayment(r.Context(), payload, mandate)
	if err != nil {
		app.serviceErrorResponse(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusCreated, payment); err != nil {
		app.internalServerError(w, r, err)
	}
}
