package http

import (
	"net/http"

	"github.com/MKhiriev/clean-auth/internal/app"
	"github.com/MKhiriev/clean-auth/internal/logger"
	"github.com/MKhiriev/clean-auth/internal/utils"
	"github.com/MKhiriev/clean-auth/models"
)

// health reports the server version and whether the store answers a ping.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	version := h.services.AppInfoService.GetAppVersion(ctx)

	if err := h.services.HealthService.CheckStore(ctx); err != nil {
		logger.FromRequest(r).Err(err).Msg("health check failed")
		utils.WriteJSON(w, models.HealthResponse{
			Success:  false,
			Database: app.DatabaseDisconnected,
			Version:  version,
		}, http.StatusServiceUnavailable)
		return
	}

	utils.WriteJSON(w, models.HealthResponse{
		Success:  true,
		Database: app.DatabaseConnected,
		Version:  version,
	}, http.StatusOK)
}
