package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/weathersafe/admin-console/internal/core/ports"
)

// HealthHandler handles GET /health, the liveness probe. Returns 200
// immediately; only confirms the process is alive.
type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

func (h *HealthHandler) Liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// ReadinessHandler handles GET /health/ready, the readiness probe.
// Checks that the remote API answers and the credential storage is readable
// before declaring the console ready.
type ReadinessHandler struct {
	serverURL string
	storage   ports.CredentialStorage
	http      *http.Client
}

func NewReadinessHandler(serverURL string, storage ports.CredentialStorage) *ReadinessHandler {
	return &ReadinessHandler{
		serverURL: serverURL,
		storage:   storage,
		http:      &http.Client{Timeout: 3 * time.Second},
	}
}

type dependencyStatus struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type readinessResponse struct {
	Status       string                      `json:"status"`
	Dependencies map[string]dependencyStatus `json:"dependencies"`
}

func (h *ReadinessHandler) Readiness(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 3*time.Second)
	defer cancel()

	deps := make(map[string]dependencyStatus)
	healthy := true

	// --- Remote API reachable ---
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, h.serverURL, nil)
	if err == nil {
		var resp *http.Response
		resp, err = h.http.Do(req)
		if resp != nil {
			resp.Body.Close()
		}
	}
	if err != nil {
		deps["remote_api"] = dependencyStatus{Status: "unhealthy", Error: err.Error()}
		healthy = false
	} else {
		deps["remote_api"] = dependencyStatus{Status: "ok"}
	}

	// --- Credential storage readable ---
	if _, _, err := h.storage.Load(ctx); err != nil {
		deps["credential_storage"] = dependencyStatus{Status: "unhealthy", Error: err.Error()}
		healthy = false
	} else {
		deps["credential_storage"] = dependencyStatus{Status: "ok"}
	}

	status := "ok"
	httpStatus := http.StatusOK
	if !healthy {
		status = "degraded"
		httpStatus = http.StatusServiceUnavailable
	}

	return c.JSON(httpStatus, readinessResponse{
		Status:       status,
		Dependencies: deps,
	})
}
