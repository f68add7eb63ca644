package contract

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/hellaspet/backend-insurance/internal/application"
	"github.com/hellaspet/backend-insurance/internal/events"
	"github.com/hellaspet/backend-insurance/internal/obs"
	"github.com/hellaspet/backend-insurance/internal/rating"
)

// Worker consumes regeneration tasks and drives the filler.
type Worker struct {
	Svc    *application.Service
	Filler Filler
	Bus    *events.Bus
	Log    zerolog.Logger
}

// HandleRegenerate rebuilds one contract document. The application is loaded
// through the service so stored premiums are drift-checked and repaired
// before any field is rendered; the document can never print a premium the
// store does not hold.
func (w *Worker) HandleRegenerate(ctx context.Context, t *asynq.Task) error {
	var payload RegeneratePayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("contract: decode regenerate payload: %w: %w", err, asynq.SkipRetry)
	}
	slot := payload.Slot
	if slot == "" {
		slot = rating.SlotPrimary
	}

	err := w.regenerate(ctx, payload, slot)
	countRegeneration(err)
	if err != nil {
		w.Log.Error().Err(err).
			Str("application_id", payload.ApplicationID.String()).
			Str("slot", string(slot)).
			Msg("contract regeneration failed")
		return err
	}
	return nil
}

func (w *Worker) regenerate(ctx context.Context, payload RegeneratePayload, slot rating.PetSlot) error {
	app, err := w.Svc.Get(ctx, payload.ApplicationID)
	if err != nil {
		return err
	}
	if app.PetFor(slot) == nil {
		// The second pet was removed after the task was enqueued.
		w.Log.Info().Str("application_id", app.ID.String()).Str("slot", string(slot)).
			Msg("slot no longer occupied, skipping regeneration")
		return nil
	}

	breakdown, err := w.Svc.BreakdownFromApp(ctx, app, slot, app.Frequency)
	if err != nil {
		return err
	}
	fields, err := Fields(app, breakdown, slot)
	if err != nil {
		return err
	}
	if err := w.Filler.Fill(ctx, app.ContractPDFPath, fields); err != nil {
		return err
	}

	if w.Bus != nil {
		if _, err := w.Bus.Emit(ctx, events.TopicContractGenerated, app.ID, map[string]any{
			"slot": string(slot),
			"path": app.ContractPDFPath,
		}); err != nil {
			w.Log.Warn().Err(err).Msg("emit contract generated event")
		}
	}
	w.Log.Info().Str("application_id", app.ID.String()).Str("slot", string(slot)).
		Str("path", app.ContractPDFPath).Msg("contract document regenerated")
	return nil
}

func countRegeneration(err error) {
	if obs.ContractRegenerationTotal == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	obs.ContractRegenerationTotal.WithLabelValues(result).Inc()
}
