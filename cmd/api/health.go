package main

import "net/http"

func (app *application) healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	data := map[string]string{
		"status":  "ok",
		"env":     app.config.env,
		"version": version,
	}

	if err := app.jsonResponse(w, http.StatusOK, data); err != nil {
		app.internalServerError(w, r, err)
	}
}

// circuitSnapshotHandler dumps the live circuit records so an operator can
// see which provider calls are currently disabled.
func (app *application) circuitSnapshotHandler(w http.ResponseWriter, r *http.Request) {
	records, err := app.circuit.Snapshot(r.Context())
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, records); err != nil {
		app.internalServerError(w, r, err)
	}
}
