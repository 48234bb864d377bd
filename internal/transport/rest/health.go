package rest

import (
	"encoding/json"
	"net/http"
	"time"
)

// credentialChecker reports whether the API credential is available.
type credentialChecker interface {
	CredentialConfigured() bool
}

// HealthHandler serves health check endpoints.
type HealthHandler struct {
	credential credentialChecker
	version    string
}

// NewHealthHandler creates a HealthHandler.
func NewHealthHandler(credential credentialChecker, version string) *HealthHandler {
	return &HealthHandler{credential: credential, version: version}
}

// HealthResponse is the JSON response for /live and /health.
type HealthResponse struct {
	Status     string                `json:"status"`
	Version    string                `json:"version,omitempty"`
	Components map[string]CompStatus `json:"components,omitempty"`
	Timestamp  time.Time             `json:"timestamp"`
}

// CompStatus is the status of an individual component.
type CompStatus struct {
	Status string `json:"status"`
}

// Live is the liveness probe. Always returns 200.
func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
	})
}

// Health reports the version and whether the API credential is set.
// Without a credential every page is an error page, so it returns 503.
// The upstream API is not probed: that would spend quota.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	status, overall := http.StatusOK, "ok"
	credential := CompStatus{Status: "ok"}
	if !h.credential.CredentialConfigured() {
		status, overall = http.StatusServiceUnavailable, "down"
		credential.Status = "missing"
	}

	writeJSON(w, status, HealthResponse{
		Status:     overall,
		Version:    h.version,
		Components: map[string]CompStatus{"credential": credential},
		Timestamp:  time.Now(),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}
