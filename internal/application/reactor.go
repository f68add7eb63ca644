package application

import (
	"context"
	"time"

	"github.com/hellaspet/backend-insurance/internal/events"
	"github.com/hellaspet/backend-insurance/internal/rating"
)

// ChangeSet classifies an update. Rating changes alter the premium inputs;
// content changes alter only what appears on the contract document.
type ChangeSet struct {
	Rating  bool
	Content bool
}

// Any reports whether the update changed anything of interest.
func (c ChangeSet) Any() bool { return c.Rating || c.Content }

// Diff classifies the field changes between two application states.
func Diff(old, updated *Application) ChangeSet {
	var c ChangeSet
	if old.Program != updated.Program {
		c.Rating = true
	}
	c = diffPet(c, &old.Pet, &updated.Pet)
	switch {
	case old.SecondPet == nil && updated.SecondPet == nil:
	case old.SecondPet == nil || updated.SecondPet == nil:
		c.Rating = true
		c.Content = true
	default:
		c = diffPet(c, old.SecondPet, updated.SecondPet)
	}

	if old.FirstName != updated.FirstName ||
		old.LastName != updated.LastName ||
		old.Email != updated.Email ||
		old.Phone != updated.Phone ||
		old.Street != updated.Street ||
		old.PostalCode != updated.PostalCode ||
		old.City != updated.City ||
		old.Frequency != updated.Frequency ||
		old.PaymentMethod != updated.PaymentMethod ||
		old.IBAN != updated.IBAN ||
		!timesEqual(old.DesiredStart, updated.DesiredStart) ||
		old.HealthyConfirmed != updated.HealthyConfirmed ||
		old.TermsAccepted != updated.TermsAccepted {
		c.Content = true
	}
	return c
}

func diffPet(c ChangeSet, old, updated *Pet) ChangeSet {
	if old.Species != updated.Species ||
		old.WeightRaw != updated.WeightRaw ||
		old.Breed5Surcharge != updated.Breed5Surcharge ||
		old.Breed20Surcharge != updated.Breed20Surcharge ||
		old.PoisoningCoverage != updated.PoisoningCoverage ||
		old.BloodCheckup != updated.BloodCheckup {
		c.Rating = true
	}
	if old.Name != updated.Name ||
		old.Breed != updated.Breed ||
		!timesEqual(old.BirthDate, updated.BirthDate) {
		c.Content = true
	}
	return c
}

// react runs after an update is persisted. Rating changes recompute and
// persist the premium first; only then, if a contract document exists, is
// regeneration requested. A document is therefore never rebuilt from stale
// premiums.
func (s *Service) react(ctx context.Context, old, updated *Application, diff ChangeSet) error {
	if diff.Rating {
		for _, slot := range updated.Slots() {
			pet := updated.PetFor(slot)
			if pet == nil || pet.WeightRaw == "" {
				continue
			}
			input, err := updated.RatingInput(slot)
			if err != nil {
				return err
			}
			premium, err := rating.ComputePremium(input)
			countCompute(input.Species, input.Tier, err)
			if err != nil {
				return err
			}
			fresh := FromCanonical(premium)
			if err := s.Store.UpdatePremiums(ctx, updated.ID, slot, fresh); err != nil {
				return err
			}
			updated.SetPremium(slot, &fresh)
		}
		// A removed second pet leaves its premium columns behind; harmless,
		// the slot is no longer read.
		s.emit(ctx, events.TopicPremiumRecomputed, updated.ID, map[string]any{"reason": "update"})
	}

	if updated.ContractGenerated && diff.Any() {
		s.emit(ctx, events.TopicContractRegenerationRequested, updated.ID, map[string]any{"reason": "update"})
		for _, slot := range updated.Slots() {
			if err := s.enqueueRegenerate(ctx, updated.ID, slot); err != nil {
				return err
			}
		}
	}
	return nil
}

func timesEqual(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}
