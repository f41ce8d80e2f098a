package handlers

import (
	"encoding/json"
	"net/http"
)

// HealthResponse is the liveness probe body.
type HealthResponse struct {
	Status string `json:"status"`
}

// HealthCheck always reports healthy: the store has no external
// dependencies to be unready for.
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(HealthResponse{Status: "healthy"})
}
