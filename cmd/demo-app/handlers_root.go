package main

import (
	"encoding/json"
	"net/http"
	"strconv"
)

const helloMessage = "Hello from demo app!"

type rootResponse struct {
	OK      bool   `json:"ok"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// rootHandler fails with probability profile.ErrorRate, otherwise sleeps for
// a latency drawn from the profile range and answers with a greeting.
// Latency is observed only for successful responses.
func (a *app) rootHandler(w http.ResponseWriter, r *http.Request) {
	start := a.now()

	if a.source.NextFloat() < a.profile.ErrorRate {
		a.metrics.recordError()
		a.metrics.recordRequest(r.Method, "/", strconv.Itoa(http.StatusInternalServerError))
		writeJSON(w, http.StatusInternalServerError, rootResponse{OK: false, Error: "simulated"})
		return
	}

	a.delay(a.profile.latency(a.source.NextFloat()))

	a.metrics.recordRequest(r.Method, "/", strconv.Itoa(http.StatusOK))
	a.metrics.observeLatency(a.now().Sub(start).Seconds())
	writeJSON(w, http.StatusOK, rootResponse{OK: true, Message: helloMessage})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
