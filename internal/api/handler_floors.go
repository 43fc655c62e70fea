package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"pos-floor-frontend/internal/floorplan"
	"pos-floor-frontend/internal/reconcile"
)

// GetFloors handles GET /api/floors: the floor tab strip and the default
// active floor.
func (h *Handler) GetFloors(c *gin.Context) {
	snap, ok := h.svc.Snapshot()
	if !ok {
		h.respondServiceError(c, reconcile.ErrNotLoaded)
		return
	}

	tabs, activeID := floorplan.FloorTabs(&snap.Layout)
	respondJSON(c, http.StatusOK, "Floor list", gin.H{
		"floors":        tabs,
		"activeFloorId": activeID,
	})
}

// GetCanvas handles GET /api/floors/:floor_id/canvas: the interactive floor
// plan for one floor.
func (h *Handler) GetCanvas(c *gin.Context) {
	snap, ok := h.svc.Snapshot()
	if !ok {
		h.respondServiceError(c, reconcile.ErrNotLoaded)
		return
	}

	floor, found := snap.Layout.FindFloor(c.Param("floor_id"))
	if !found {
		h.respondServiceError(c, reconcile.ErrUnknownFloor)
		return
	}

	respondJSON(c, http.StatusOK, "Floor canvas",
		floorplan.BuildCanvas(floor, snap.Statuses))
}

// GetCards handles GET /api/floors/:floor_id/cards: the card-list alternate
// view over the same merged view-models.
func (h *Handler) GetCards(c *gin.Context) {
	snap, ok := h.svc.Snapshot()
	if !ok {
		h.respondServiceError(c, reconcile.ErrNotLoaded)
		return
	}

	floor, found := snap.Layout.FindFloor(c.Param("floor_id"))
	if !found {
		h.respondServiceError(c, reconcile.ErrUnknownFloor)
		return
	}

	respondJSON(c, http.StatusOK, "Table cards", gin.H{
		"floorId": floor.ID,
		"cards":   floorplan.BuildCards(floor, snap.Statuses, time.Now().UTC()),
	})
}

// Refresh handles POST /api/refresh: a manual full re-fetch.
func (h *Handler) Refresh(c *gin.Context) {
	if _, err := h.svc.Refresh(c.Request.Context()); err != nil {
		h.respondServiceError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, "Snapshot refreshed", nil)
}
