package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pos-floor-frontend/internal/reconcile"
)

// GetDashboard handles GET /api/dashboard: the derived statistics panel plus
// the backend's own stats document and the AI insights feed, recomputed in
// full from the current snapshot.
func (h *Handler) GetDashboard(c *gin.Context) {
	snap, ok := h.svc.Snapshot()
	if !ok {
		h.respondServiceError(c, reconcile.ErrNotLoaded)
		return
	}

	respondJSON(c, http.StatusOK, "Dashboard", gin.H{
		"stats":        reconcile.ComputeStatistics(snap),
		"backendStats": snap.BackendStats,
		"insights":     snap.Insights,
		"fetchedAt":    snap.FetchedAt,
	})
}
