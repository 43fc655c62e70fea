package api

import (
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"

	"pos-floor-frontend/internal/actions"
	"pos-floor-frontend/internal/floorplan"
	"pos-floor-frontend/internal/model"
	"pos-floor-frontend/internal/mw"
)

// GetTable handles GET /api/tables/:table_id: the merged view-model plus the
// actions resolved for the caller's role. This is what opens when a table is
// clicked on the canvas.
func (h *Handler) GetTable(c *gin.Context) {
	view, err := h.svc.SelectTable(c.Param("table_id"))
	if err != nil {
		h.respondServiceError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, "Table detail", gin.H{
		"table":    view,
		"actions":  actions.Resolve(view, mw.RoleFrom(c)),
		"orderAge": view.OrderAge(time.Now().UTC()),
	})
}

type setStatusRequest struct {
	Status model.TableStatusValue `json:"status" binding:"required"`
}

// SetTableStatus handles POST /api/tables/:table_id/status. Offline targets
// (maintenance, unavailable) are manage-only; the state preconditions are
// enforced by the reconciliation service before any request goes out.
func (h *Handler) SetTableStatus(c *gin.Context) {
	var req setStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}

	role := mw.RoleFrom(c)
	if req.Status == model.StatusMaintenance || req.Status == model.StatusUnavailable {
		view, err := h.svc.SelectTable(c.Param("table_id"))
		if err != nil {
			h.respondServiceError(c, err)
			return
		}
		if err := actions.CheckOfflineTransition(view, role); err != nil {
			h.respondServiceError(c, err)
			return
		}
	}

	if err := h.svc.SetTableStatus(c.Request.Context(), c.Param("table_id"), req.Status); err != nil {
		h.respondServiceError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, "Table status updated", nil)
}

// InvokeAction handles POST /api/tables/:table_id/actions/:action for the
// four primary actions. order and bill answer with the order-entry URL the
// UI navigates to; book and clear mutate the table's status.
func (h *Handler) InvokeAction(c *gin.Context) {
	view, err := h.svc.SelectTable(c.Param("table_id"))
	if err != nil {
		h.respondServiceError(c, err)
		return
	}

	key := c.Param("action")
	resolved := findAction(actions.Resolve(view, mw.RoleFrom(c)), key)
	if resolved == nil {
		respondJSON(c, http.StatusNotFound, "unknown action", nil)
		return
	}
	if !resolved.Enabled {
		respondJSON(c, http.StatusConflict, resolved.Reason, nil)
		return
	}

	switch key {
	case actions.KeyOrder:
		respondJSON(c, http.StatusOK, resolved.Label, gin.H{
			"navigateTo": orderEntryURL(view, view.Status == model.StatusOccupied && view.HasOrder()),
		})
	case actions.KeyBill:
		respondJSON(c, http.StatusOK, resolved.Label, gin.H{
			"navigateTo": orderEntryURL(view, true),
		})
	case actions.KeyBook:
		if err := h.svc.SetTableStatus(c.Request.Context(), view.Table.ID, model.StatusReserved); err != nil {
			h.respondServiceError(c, err)
			return
		}
		respondJSON(c, http.StatusOK, "Table booked", nil)
	case actions.KeyClear:
		if err := h.svc.ClearTable(c.Request.Context(), view.Table.ID); err != nil {
			h.respondServiceError(c, err)
			return
		}
		respondJSON(c, http.StatusOK, "Table cleared", nil)
	}
}

func findAction(resolved []actions.Action, key string) *actions.Action {
	for i := range resolved {
		if resolved[i].Key == key {
			return &resolved[i]
		}
	}
	return nil
}

// orderEntryURL builds the hand-off URL to the order-entry view. The query
// contract (tableId, optional orderId, type=dine-in, tableLabel) is shared
// with the order-entry page and must not change shape.
func orderEntryURL(view floorplan.TableView, includeOrder bool) string {
	u := "/order-entry?tableId=" + url.QueryEscape(view.Table.ID)
	if includeOrder && view.HasOrder() && view.Order.ID != "" {
		u += "&orderId=" + url.QueryEscape(view.Order.ID)
	}
	u += "&type=dine-in&tableLabel=" + url.QueryEscape(view.Table.Label)
	return u
}

// AddTable handles POST /api/floors/:floor_id/tables.
func (h *Handler) AddTable(c *gin.Context) {
	if !actions.Allowed(mw.RoleFrom(c), actions.CapManage) {
		h.respondServiceError(c, actions.ErrNoPermission)
		return
	}

	table, err := h.svc.AddTable(c.Request.Context(), c.Param("floor_id"))
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	respondJSON(c, http.StatusCreated, "Table added", table)
}

// DeleteTable handles DELETE /api/floors/:floor_id/tables/:table_id. The
// caller must confirm explicitly; deletion is not undoable from the UI.
func (h *Handler) DeleteTable(c *gin.Context) {
	if !actions.Allowed(mw.RoleFrom(c), actions.CapManage) {
		h.respondServiceError(c, actions.ErrNoPermission)
		return
	}
	if c.Query("confirm") != "true" {
		respondJSON(c, http.StatusBadRequest, "confirmation required", nil)
		return
	}

	if err := h.svc.DeleteTable(c.Request.Context(), c.Param("floor_id"), c.Param("table_id")); err != nil {
		h.respondServiceError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, "Table deleted", nil)
}
