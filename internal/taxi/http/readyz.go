package http

import (
	"net/http"
	"time"

	"github.com/aussiebroadwan/taxi/internal/taxi/store"
	"github.com/aussiebroadwan/taxi/pkg/httpx"
	"github.com/aussiebroadwan/taxi/pkg/jwtx"
	"github.com/aussiebroadwan/taxi/pkg/taxisdk"
)

// ReadyzHandler godoc
//
//	@Summary		Readiness Check Endpoint
//	@Description	Readiness probe checking the database connection and the session signing keys
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	taxisdk.HealthResponse	"status, uptime, version, checks"
//	@Failure		503	{object}	taxisdk.HealthResponse	"service not ready"
//	@Router			/readyz [get]
func ReadyzHandler(startTime time.Time, version string, st store.Store, keys *jwtx.KeySet) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := &taxisdk.HealthChecks{Database: "ok", Signer: "ok"}
		status, code := "ok", http.StatusOK

		if err := st.Ping(r.Context()); err != nil {
			checks.Database = "error: " + err.Error()
			status, code = "degraded", http.StatusServiceUnavailable
		}
		if !keys.IsReady() {
			checks.Signer = "error: no keys loaded"
			status, code = "degraded", http.StatusServiceUnavailable
		}

		httpx.WriteJSON(w, code, taxisdk.HealthResponse{
			Status:  status,
			Uptime:  time.Since(startTime).String(),
			Version: version,
			Checks:  checks,
		})
	}
}
