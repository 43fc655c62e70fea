// Package api serves the floor-plan, dashboard and action endpoints consumed
// by the POS browser UI.
package api

import (
	"errors"
	"net/http"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"pos-floor-frontend/internal/actions"
	"pos-floor-frontend/internal/backend"
	"pos-floor-frontend/internal/reconcile"
	"pos-floor-frontend/internal/store"
)

// Handler holds shared dependencies for API handlers.
type Handler struct {
	svc     *reconcile.Service
	store   store.Store
	webpush *webpush.Options
	log     *logrus.Logger
}

// NewHandler creates a new API handler.
func NewHandler(svc *reconcile.Service, st store.Store, webpushOptions *webpush.Options, log *logrus.Logger) *Handler {
	return &Handler{
		svc:     svc,
		store:   st,
		webpush: webpushOptions,
		log:     log,
	}
}

// jsonResponse is the envelope every endpoint answers with.
type jsonResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func respondJSON(c *gin.Context, code int, message string, data any) {
	c.JSON(code, jsonResponse{
		Status:  code >= 200 && code < 300,
		Message: message,
		Data:    data,
	})
}

func respondError(c *gin.Context, code int, err error) {
	c.JSON(code, jsonResponse{
		Status:  false,
		Message: err.Error(),
	})
}

// respondServiceError maps reconciliation and gating errors onto HTTP
// statuses. Local precondition violations answer before any network call
// happened; transport failures relay the backend's message when it sent one.
func (h *Handler) respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, reconcile.ErrNotLoaded):
		respondJSON(c, http.StatusServiceUnavailable, "still loading", nil)
	case errors.Is(err, reconcile.ErrUnknownTable), errors.Is(err, reconcile.ErrUnknownFloor):
		respondError(c, http.StatusNotFound, err)
	case errors.Is(err, reconcile.ErrBadStatus):
		respondError(c, http.StatusUnprocessableEntity, err)
	case errors.Is(err, reconcile.ErrTableOccupied),
		errors.Is(err, reconcile.ErrNotAvailable),
		errors.Is(err, reconcile.ErrUnpaidBalance),
		errors.Is(err, actions.ErrNotAvailable),
		errors.Is(err, actions.ErrHasOrder):
		respondError(c, http.StatusConflict, err)
	case errors.Is(err, actions.ErrNoPermission):
		respondError(c, http.StatusForbidden, err)
	default:
		h.log.WithError(err).Error("backend request failed")
		respondJSON(c, http.StatusBadGateway,
			backend.UserMessage(err, "backend request failed"), nil)
	}
}
