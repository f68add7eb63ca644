package application

import (
	"context"

	"github.com/google/uuid"

	"github.com/hellaspet/backend-insurance/internal/events"
	"github.com/hellaspet/backend-insurance/internal/lock"
	"github.com/hellaspet/backend-insurance/internal/money"
	"github.com/hellaspet/backend-insurance/internal/obs"
	"github.com/hellaspet/backend-insurance/internal/rating"
)

// DriftTolerance is the maximum per-amount difference between a stored
// premium and a fresh recompute before the stored value is rewritten.
var DriftTolerance = money.MustParse("0.01")

// SlotRepair reports the outcome of a drift check for one pet slot.
type SlotRepair struct {
	Slot     rating.PetSlot `json:"slot"`
	Repaired bool           `json:"repaired"`
	Old      *StoredPremium `json:"old,omitempty"`
	New      *StoredPremium `json:"new,omitempty"`
}

// CheckAndRepair recomputes the premium for one slot and rewrites the stored
// triple when any amount drifts beyond tolerance. The write happens under a
// per-application lock and re-reads the row first, so concurrent repairs
// converge on the same recomputed values. The in-memory aggregate is updated
// to match what was persisted.
func (s *Service) CheckAndRepair(ctx context.Context, app *Application, slot rating.PetSlot) (SlotRepair, error) {
	result := SlotRepair{Slot: slot}

	pet := app.PetFor(slot)
	if pet == nil || pet.WeightRaw == "" {
		return result, nil
	}
	input, err := app.RatingInput(slot)
	if err != nil {
		return result, err
	}
	premium, err := rating.ComputePremium(input)
	countCompute(input.Species, input.Tier, err)
	if err != nil {
		return result, err
	}
	fresh := FromCanonical(premium)
	stored := app.PremiumFor(slot)
	result.Old = stored
	result.New = &fresh

	if stored != nil && premiumsMatch(*stored, fresh) {
		return result, nil
	}

	err = s.Locker.WithLock(ctx, lock.ApplicationKey(app.ID.String()), s.LockTTL, func(ctx context.Context) error {
		// Re-read inside the lock; another repairer may have won.
		current, err := s.Store.Get(ctx, app.ID)
		if err != nil {
			return err
		}
		if cur := current.PremiumFor(slot); cur != nil && premiumsMatch(*cur, fresh) {
			app.SetPremium(slot, cur)
			return nil
		}
		if err := s.Store.UpdatePremiums(ctx, app.ID, slot, fresh); err != nil {
			return err
		}
		result.Repaired = true
		app.SetPremium(slot, &fresh)
		return nil
	})
	if err != nil {
		return result, err
	}

	if result.Repaired {
		if obs.PremiumDriftRepairedTotal != nil {
			obs.PremiumDriftRepairedTotal.WithLabelValues(string(slot)).Inc()
		}
		payload := map[string]any{
			"slot": string(slot),
			"new": map[string]string{
				"annual":   fresh.Annual.String(),
				"semester": fresh.Semester.String(),
				"quarter":  fresh.Quarter.String(),
			},
		}
		if result.Old != nil {
			payload["old"] = map[string]string{
				"annual":   result.Old.Annual.String(),
				"semester": result.Old.Semester.String(),
				"quarter":  result.Old.Quarter.String(),
			}
		}
		s.emit(ctx, events.TopicPremiumDriftRepaired, app.ID, payload)
		s.Log.Info().Str("application_id", app.ID.String()).Str("slot", string(slot)).
			Msg("stored premium repaired")
	}
	return result, nil
}

// Repair runs an explicit drift check across every occupied slot.
func (s *Service) Repair(ctx context.Context, id uuid.UUID) ([]SlotRepair, error) {
	app, err := s.Store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	results := make([]SlotRepair, 0, 2)
	for _, slot := range app.Slots() {
		repair, err := s.CheckAndRepair(ctx, app, slot)
		if err != nil {
			return nil, err
		}
		results = append(results, repair)
	}
	return results, nil
}

func premiumsMatch(a, b StoredPremium) bool {
	return a.Annual.Within(b.Annual, DriftTolerance) &&
		a.Semester.Within(b.Semester, DriftTolerance) &&
		a.Quarter.Within(b.Quarter, DriftTolerance)
}
