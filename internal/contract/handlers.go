package contract

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/hellaspet/backend-insurance/internal/application"
	"github.com/hellaspet/backend-insurance/internal/common"
	"github.com/hellaspet/backend-insurance/internal/rating"
)

// FieldsHandler exposes the document slot map for inspection and for the
// filler service to pull directly.
type FieldsHandler struct {
	Svc *application.Service
}

// Mount registers the contract-fields route.
func (h *FieldsHandler) Mount(r chi.Router) {
	r.Get("/applications/{id}/contract-fields", h.Get)
}

// Get returns the flat field map for one pet slot.
func (h *FieldsHandler) Get(w http.ResponseWriter, r *http.Request) {
	raw := strings.TrimSpace(chi.URLParam(r, "id"))
	id, err := uuid.Parse(raw)
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid application id", nil)
		return
	}
	slot := rating.SlotPrimary
	if q := strings.TrimSpace(r.URL.Query().Get("slot")); q != "" {
		slot, err = rating.ParseSlot(q)
		if err != nil {
			common.JSONError(w, http.StatusUnprocessableEntity, "UNKNOWN_ENUM", err.Error(), nil)
			return
		}
	}

	app, err := h.Svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, application.ErrNotFound) {
			common.JSONError(w, http.StatusNotFound, "NOT_FOUND", "application not found", nil)
			return
		}
		common.RenderError(w, err)
		return
	}
	if app.PetFor(slot) == nil {
		common.JSONError(w, http.StatusNotFound, "NOT_FOUND", "no pet in requested slot", nil)
		return
	}

	breakdown, err := h.Svc.BreakdownFromApp(r.Context(), app, slot, app.Frequency)
	if err != nil {
		if errors.Is(err, application.ErrPremiumUnavailable) {
			common.JSONError(w, http.StatusUnprocessableEntity, "PREMIUM_UNAVAILABLE", "premium has not been computed", nil)
			return
		}
		common.RenderError(w, err)
		return
	}
	fields, err := Fields(app, breakdown, slot)
	if err != nil {
		common.RenderError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": fields})
}
