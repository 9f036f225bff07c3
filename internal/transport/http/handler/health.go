package handler

import "net/http"

// Health reports liveness. It does not touch the store.
func Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, ResultEnvelope{Result: "ok"})
}
