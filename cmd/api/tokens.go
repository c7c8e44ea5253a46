package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (app *application) fetchTokensHandler(w http.ResponseWriter, r *http.Request) {
	customerID := chi.URLParam(r, "customerID")

	mandate, err := mandateFromRequest(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	tokens, err := app.payments.FetchMandateTokens(r.Context(), customerID, mandate)
	if err != nil {
		app.serviceErrorResponse(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, tokens); err != nil {
		app.internalServerError(w, r, err)
	}
}

func (app *application) deleteTokenHandler(w http.ResponseWriter, r *http.Request) {
	customerID := chi.URLParam(r, "customerID")
	tokenID := chi.URLParam(r, "tokenID")

	mandate, err := mandateFromRequest(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := app.payments.DeleteMandateToken(r.Context(), customerID, tokenID, mandate); err != nil {
		app.serviceErrorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
