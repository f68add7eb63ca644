package application

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/hellaspet/backend-insurance/internal/common"
	"github.com/hellaspet/backend-insurance/internal/rating"
)

// Handler exposes the application lifecycle endpoints.
type Handler struct {
	Svc      *Service
	Validate *validator.Validate
}

type petPayload struct {
	Name              string     `json:"name" validate:"required"`
	Species           string     `json:"species" validate:"required"`
	Breed             string     `json:"breed"`
	BirthDate         *time.Time `json:"birthDate"`
	Weight            string     `json:"weight" validate:"required"`
	Breed5Surcharge   bool       `json:"breed5Surcharge"`
	Breed20Surcharge  bool       `json:"breed20Surcharge"`
	PoisoningCoverage bool       `json:"poisoningCoverage"`
	BloodCheckup      bool       `json:"bloodCheckup"`
}

type applicationPayload struct {
	FirstName        string      `json:"firstName" validate:"required"`
	LastName         string      `json:"lastName" validate:"required"`
	Email            string      `json:"email" validate:"required,email"`
	Phone            string      `json:"phone"`
	Street           string      `json:"street"`
	PostalCode       string      `json:"postalCode"`
	City             string      `json:"city"`
	Program          string      `json:"program" validate:"required"`
	Frequency        string      `json:"billingFrequency" validate:"required"`
	PaymentMethod    string      `json:"paymentMethod"`
	IBAN             string      `json:"iban"`
	DesiredStart     *time.Time  `json:"desiredStart"`
	HealthyConfirmed bool        `json:"healthyConfirmed"`
	TermsAccepted    bool        `json:"termsAccepted"`
	Pet              petPayload  `json:"pet" validate:"required"`
	SecondPet        *petPayload `json:"secondPet"`
}

type quotePayload struct {
	Species           string `json:"species" validate:"required"`
	Program           string `json:"program" validate:"required"`
	Weight            string `json:"weight" validate:"required"`
	Frequency         string `json:"billingFrequency"`
	Slot              string `json:"slot"`
	Breed5Surcharge   bool   `json:"breed5Surcharge"`
	Breed20Surcharge  bool   `json:"breed20Surcharge"`
	PoisoningCoverage bool   `json:"poisoningCoverage"`
	BloodCheckup      bool   `json:"bloodCheckup"`
}

// Mount registers the application routes on the router. The quote endpoint
// is wired separately so the caller can rate-limit it.
func (h *Handler) Mount(r chi.Router) {
	r.Route("/applications", func(r chi.Router) {
		r.Post("/", h.Create)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.Get)
			r.Put("/", h.Update)
			r.Get("/breakdown", h.Breakdown)
			r.Post("/contract", h.Contract)
			r.Post("/repair", h.Repair)
		})
	})
}

// Quote returns a stateless premium computation.
func (h *Handler) Quote(w http.ResponseWriter, r *http.Request) {
	var payload quotePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return
	}
	if err := h.Validate.Struct(payload); err != nil {
		common.JSONError(w, http.StatusBadRequest, "VALIDATION", err.Error(), nil)
		return
	}
	in, err := toQuoteInput(payload)
	if err != nil {
		renderRatingError(w, err)
		return
	}
	result, err := h.Svc.Quote(r.Context(), in)
	if err != nil {
		renderRatingError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": result})
}

// Create persists a new application.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var payload applicationPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return
	}
	if err := h.Validate.Struct(payload); err != nil {
		common.JSONError(w, http.StatusBadRequest, "VALIDATION", err.Error(), nil)
		return
	}
	app, err := toApplication(payload)
	if err != nil {
		renderRatingError(w, err)
		return
	}
	created, err := h.Svc.Create(r.Context(), app)
	if err != nil {
		renderRatingError(w, err)
		return
	}
	common.JSON(w, http.StatusCreated, map[string]any{"data": toView(created)})
}

// Get fetches one application, repairing premium drift on the way out.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	app, err := h.Svc.Get(r.Context(), id)
	if err != nil {
		renderStoreError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": toView(app)})
}

// Update replaces the mutable fields of an application.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var payload applicationPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return
	}
	if err := h.Validate.Struct(payload); err != nil {
		common.JSONError(w, http.StatusBadRequest, "VALIDATION", err.Error(), nil)
		return
	}
	incoming, err := toApplication(payload)
	if err != nil {
		renderRatingError(w, err)
		return
	}
	updated, err := h.Svc.Update(r.Context(), id, incoming)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			renderStoreError(w, err)
			return
		}
		renderRatingError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": toView(updated)})
}

// Breakdown returns the reconciled premium lines for one slot and frequency.
func (h *Handler) Breakdown(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	frequency, err := frequencyQuery(r)
	if err != nil {
		renderRatingError(w, err)
		return
	}
	slot, err := slotQuery(r)
	if err != nil {
		renderRatingError(w, err)
		return
	}
	breakdown, err := h.Svc.Breakdown(r.Context(), id, slot, frequency)
	if err != nil {
		if errors.Is(err, ErrPremiumUnavailable) {
			common.JSONError(w, http.StatusUnprocessableEntity, "PREMIUM_UNAVAILABLE", "premium has not been computed", nil)
			return
		}
		renderStoreError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": breakdown})
}

// Contract marks the contract generated and schedules the document fill.
func (h *Handler) Contract(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	app, err := h.Svc.RequestContract(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrPremiumUnavailable) {
			common.JSONError(w, http.StatusUnprocessableEntity, "PREMIUM_UNAVAILABLE", "premium has not been computed", nil)
			return
		}
		if errors.Is(err, ErrNotFound) {
			renderStoreError(w, err)
			return
		}
		renderRatingError(w, err)
		return
	}
	common.JSON(w, http.StatusAccepted, map[string]any{"data": toView(app)})
}

// Repair runs an explicit drift check and reports the outcome per slot.
func (h *Handler) Repair(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	results, err := h.Svc.Repair(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			renderStoreError(w, err)
			return
		}
		renderRatingError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": results})
}

func idParam(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	raw := strings.TrimSpace(chi.URLParam(r, "id"))
	id, err := uuid.Parse(raw)
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid application id", nil)
		return uuid.Nil, false
	}
	return id, true
}

func frequencyQuery(r *http.Request) (rating.BillingFrequency, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("frequency"))
	if raw == "" {
		return rating.FrequencyAnnual, nil
	}
	return rating.ParseFrequency(raw)
}

func slotQuery(r *http.Request) (rating.PetSlot, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("slot"))
	if raw == "" {
		return rating.SlotPrimary, nil
	}
	return rating.ParseSlot(raw)
}

func renderRatingError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, rating.ErrUnknownWeight):
		common.JSONError(w, http.StatusUnprocessableEntity, "UNKNOWN_WEIGHT", "weight cannot be mapped to a rate bucket", nil)
	case errors.Is(err, rating.ErrMissingRateEntry):
		common.JSONError(w, http.StatusUnprocessableEntity, "MISSING_RATE_ENTRY", "no rate exists for this combination", nil)
	case errors.Is(err, rating.ErrUnknownEnum):
		common.JSONError(w, http.StatusUnprocessableEntity, "UNKNOWN_ENUM", err.Error(), nil)
	default:
		common.RenderError(w, err)
	}
}

func renderStoreError(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrNotFound) {
		common.JSONError(w, http.StatusNotFound, "NOT_FOUND", "application not found", nil)
		return
	}
	common.RenderError(w, err)
}

func toQuoteInput(payload quotePayload) (QuoteInput, error) {
	species, err := rating.ParseSpecies(payload.Species)
	if err != nil {
		return QuoteInput{}, err
	}
	tier, err := rating.ParseTier(payload.Program)
	if err != nil {
		return QuoteInput{}, err
	}
	frequency := rating.FrequencyAnnual
	if strings.TrimSpace(payload.Frequency) != "" {
		frequency, err = rating.ParseFrequency(payload.Frequency)
		if err != nil {
			return QuoteInput{}, err
		}
	}
	slot := rating.SlotPrimary
	if strings.TrimSpace(payload.Slot) != "" {
		slot, err = rating.ParseSlot(payload.Slot)
		if err != nil {
			return QuoteInput{}, err
		}
	}
	return QuoteInput{
		Species:           species,
		Tier:              tier,
		WeightRaw:         payload.Weight,
		Slot:              slot,
		Frequency:         frequency,
		Breed5:            payload.Breed5Surcharge,
		Breed20:           payload.Breed20Surcharge,
		PoisoningCoverage: payload.PoisoningCoverage,
		BloodCheckup:      payload.BloodCheckup,
	}, nil
}

func toApplication(payload applicationPayload) (*Application, error) {
	tier, err := rating.ParseTier(payload.Program)
	if err != nil {
		return nil, err
	}
	frequency, err := rating.ParseFrequency(payload.Frequency)
	if err != nil {
		return nil, err
	}
	pet, err := toPet(payload.Pet)
	if err != nil {
		return nil, err
	}
	app := &Application{
		FirstName:        payload.FirstName,
		LastName:         payload.LastName,
		Email:            payload.Email,
		Phone:            payload.Phone,
		Street:           payload.Street,
		PostalCode:       payload.PostalCode,
		City:             payload.City,
		Program:          tier,
		Frequency:        frequency,
		PaymentMethod:    payload.PaymentMethod,
		IBAN:             payload.IBAN,
		DesiredStart:     payload.DesiredStart,
		HealthyConfirmed: payload.HealthyConfirmed,
		TermsAccepted:    payload.TermsAccepted,
		Pet:              pet,
	}
	if payload.SecondPet != nil {
		second, err := toPet(*payload.SecondPet)
		if err != nil {
			return nil, err
		}
		app.SecondPet = &second
	}
	return app, nil
}

func toPet(payload petPayload) (Pet, error) {
	species, err := rating.ParseSpecies(payload.Species)
	if err != nil {
		return Pet{}, err
	}
	return Pet{
		Name:              payload.Name,
		Species:           species,
		Breed:             payload.Breed,
		BirthDate:         payload.BirthDate,
		WeightRaw:         payload.Weight,
		Breed5Surcharge:   payload.Breed5Surcharge,
		Breed20Surcharge:  payload.Breed20Surcharge,
		PoisoningCoverage: payload.PoisoningCoverage,
		BloodCheckup:      payload.BloodCheckup,
	}, nil
}
