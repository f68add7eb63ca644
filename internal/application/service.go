package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/hellaspet/backend-insurance/internal/events"
	"github.com/hellaspet/backend-insurance/internal/lock"
	"github.com/hellaspet/backend-insurance/internal/obs"
	"github.com/hellaspet/backend-insurance/internal/rating"
)

// ServiceStore is the persistence surface the service depends on.
type ServiceStore interface {
	Create(ctx context.Context, app *Application) error
	Get(ctx context.Context, id uuid.UUID) (*Application, error)
	Update(ctx context.Context, app *Application) error
	UpdatePremiums(ctx context.Context, id uuid.UUID, slot rating.PetSlot, p StoredPremium) error
	MarkContractGenerated(ctx context.Context, id uuid.UUID, pdfPath string) error
}

// RegenEnqueuer schedules contract document regeneration in the background.
type RegenEnqueuer interface {
	EnqueueRegenerate(ctx context.Context, appID uuid.UUID, slot rating.PetSlot) error
}

// Service coordinates rating, persistence and document regeneration for
// applications.
type Service struct {
	Store    ServiceStore
	Bus      *events.Bus
	Locker   lock.Locker
	LockTTL  time.Duration
	Enqueuer RegenEnqueuer
	Log      zerolog.Logger
}

// QuoteInput is a stateless rating request.
type QuoteInput struct {
	Species           rating.Species
	Tier              rating.ProgramTier
	WeightRaw         string
	Slot              rating.PetSlot
	Frequency         rating.BillingFrequency
	Breed5            bool
	Breed20           bool
	PoisoningCoverage bool
	BloodCheckup      bool
}

// QuoteResult carries the premium triple plus the breakdown for the requested
// billing frequency.
type QuoteResult struct {
	Premium   rating.CanonicalPremium `json:"premium"`
	Frequency rating.BillingFrequency `json:"frequency"`
	Breakdown rating.Breakdown        `json:"breakdown"`
}

// Quote computes a premium without persisting anything.
func (s *Service) Quote(ctx context.Context, in QuoteInput) (QuoteResult, error) {
	start := time.Now()
	input := rating.Input{
		Species:    in.Species,
		Tier:       in.Tier,
		WeightRaw:  in.WeightRaw,
		Slot:       in.Slot,
		Surcharges: rating.SurchargeFlags{Breed5: in.Breed5, Breed20: in.Breed20},
		AddOns:     rating.AddOnFlags{PoisoningCoverage: in.PoisoningCoverage, BloodCheckup: in.BloodCheckup},
	}
	premium, err := rating.ComputePremium(input)
	countCompute(in.Species, in.Tier, err)
	if err != nil {
		return QuoteResult{}, err
	}
	breakdown, err := s.breakdownFor(ctx, input, premium, in.Frequency, uuid.Nil)
	if err != nil {
		return QuoteResult{}, err
	}
	if obs.QuoteLatency != nil {
		obs.QuoteLatency.Observe(obs.DurationMillis(time.Since(start)))
	}
	return QuoteResult{Premium: premium, Frequency: in.Frequency, Breakdown: breakdown}, nil
}

// Create persists a new application. Display numbers are assigned here and
// the canonical premium is computed up front when the rating inputs are
// complete. A rating failure aborts creation rather than storing a zeroed
// premium.
func (s *Service) Create(ctx context.Context, app *Application) (*Application, error) {
	if app.ApplicationNumber == "" {
		app.ApplicationNumber = NewApplicationNumber()
	}
	if app.ContractNumber == "" {
		year := time.Now().Year()
		if app.DesiredStart != nil {
			year = app.DesiredStart.Year()
		}
		app.ContractNumber = NewContractNumber(year)
	}

	for _, slot := range app.Slots() {
		pet := app.PetFor(slot)
		if pet == nil || pet.WeightRaw == "" {
			continue
		}
		input, err := app.RatingInput(slot)
		if err != nil {
			return nil, err
		}
		premium, err := rating.ComputePremium(input)
		countCompute(input.Species, input.Tier, err)
		if err != nil {
			return nil, err
		}
		stored := FromCanonical(premium)
		app.SetPremium(slot, &stored)
	}

	if err := s.Store.Create(ctx, app); err != nil {
		return nil, err
	}
	s.emit(ctx, events.TopicPremiumRecomputed, app.ID, map[string]any{
		"reason": "create",
	})
	return app, nil
}

// Get fetches an application and repairs premium drift before returning it.
// Repair failures are logged, not surfaced; a read never fails because a
// recompute could not run.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Application, error) {
	app, err := s.Store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	for _, slot := range app.Slots() {
		if _, err := s.CheckAndRepair(ctx, app, slot); err != nil {
			s.Log.Warn().Err(err).Str("application_id", id.String()).Str("slot", string(slot)).
				Msg("drift check failed on read")
		}
	}
	return app, nil
}

// Update applies the incoming state, recomputes premiums when rating inputs
// changed, and requests document regeneration when a generated contract no
// longer matches. Premium persistence always happens before the regeneration
// event is emitted.
func (s *Service) Update(ctx context.Context, id uuid.UUID, incoming *Application) (*Application, error) {
	old, err := s.Store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	updated := *old
	applyMutableFields(&updated, incoming)

	diff := Diff(old, &updated)
	if err := s.Store.Update(ctx, &updated); err != nil {
		return nil, err
	}
	if err := s.react(ctx, old, &updated, diff); err != nil {
		return nil, err
	}
	return &updated, nil
}

// Breakdown reconciles the stored premium for one slot and frequency into
// labeled lines.
func (s *Service) Breakdown(ctx context.Context, id uuid.UUID, slot rating.PetSlot, frequency rating.BillingFrequency) (rating.Breakdown, error) {
	app, err := s.Store.Get(ctx, id)
	if err != nil {
		return rating.Breakdown{}, err
	}
	if _, err := s.CheckAndRepair(ctx, app, slot); err != nil {
		s.Log.Warn().Err(err).Str("application_id", id.String()).Msg("drift check failed before breakdown")
	}
	return s.BreakdownFromApp(ctx, app, slot, frequency)
}

// BreakdownFromApp builds the breakdown for an already loaded application.
func (s *Service) BreakdownFromApp(ctx context.Context, app *Application, slot rating.PetSlot, frequency rating.BillingFrequency) (rating.Breakdown, error) {
	premium := app.PremiumFor(slot)
	if premium == nil {
		return rating.Breakdown{}, ErrPremiumUnavailable
	}
	input, err := app.RatingInput(slot)
	if err != nil {
		return rating.Breakdown{}, err
	}
	canonical := rating.CanonicalPremium{Annual: premium.Annual, Semester: premium.Semester, Quarter: premium.Quarter}
	return s.breakdownFor(ctx, input, canonical, frequency, app.ID)
}

// RequestContract marks the contract as generated and schedules the initial
// document fill for every occupied slot. It refuses to proceed when no
// premium is computable.
func (s *Service) RequestContract(ctx context.Context, id uuid.UUID) (*Application, error) {
	app, err := s.Store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	for _, slot := range app.Slots() {
		if app.PremiumFor(slot) == nil {
			repair, err := s.CheckAndRepair(ctx, app, slot)
			if err != nil {
				return nil, err
			}
			if repair.New == nil {
				return nil, ErrPremiumUnavailable
			}
		}
	}
	pdfPath := fmt.Sprintf("contracts/%s.pdf", app.ContractNumber)
	if err := s.Store.MarkContractGenerated(ctx, id, pdfPath); err != nil {
		return nil, err
	}
	app.ContractGenerated = true
	app.ContractPDFPath = pdfPath
	s.emit(ctx, events.TopicContractRegenerationRequested, id, map[string]any{"reason": "initial"})
	for _, slot := range app.Slots() {
		if err := s.enqueueRegenerate(ctx, id, slot); err != nil {
			return nil, err
		}
	}
	return app, nil
}

func (s *Service) breakdownFor(ctx context.Context, input rating.Input, premium rating.CanonicalPremium, frequency rating.BillingFrequency, appID uuid.UUID) (rating.Breakdown, error) {
	authoritative := premium.For(frequency)
	slot := input.Slot
	if slot == "" {
		slot = rating.SlotPrimary
	}

	var entry rating.Entry
	bucket, err := rating.NormalizeWeight(input.WeightRaw)
	if err == nil {
		entry, err = rating.Lookup(input.Species, input.Tier, bucket, frequency, slot)
	}
	surcharges := input.Surcharges
	addons := input.AddOns
	if err != nil {
		// No base rate to scale. The fallback split still produces a
		// document; itemized lines are dropped because they derive from
		// the base.
		entry = rating.Entry{}
		surcharges = rating.SurchargeFlags{}
		addons = rating.AddOnFlags{}
	}

	breakdown := rating.Reconcile(authoritative, entry, surcharges, addons)
	if breakdown.Fallback {
		if obs.BreakdownFallbackTotal != nil {
			obs.BreakdownFallbackTotal.Inc()
		}
		s.Log.Warn().Str("application_id", appID.String()).Str("frequency", string(frequency)).
			Msg("breakdown used fallback split")
		if appID != uuid.Nil {
			s.emit(ctx, events.TopicPremiumReconcileFallback, appID, map[string]any{
				"frequency": string(frequency),
				"slot":      string(slot),
			})
		}
	}
	return breakdown, nil
}

func (s *Service) enqueueRegenerate(ctx context.Context, id uuid.UUID, slot rating.PetSlot) error {
	if s.Enqueuer == nil {
		return nil
	}
	return s.Enqueuer.EnqueueRegenerate(ctx, id, slot)
}

func (s *Service) emit(ctx context.Context, topic string, id uuid.UUID, payload any) {
	if s.Bus == nil {
		return
	}
	if _, err := s.Bus.Emit(ctx, topic, id, payload); err != nil {
		s.Log.Warn().Err(err).Str("topic", topic).Msg("emit domain event")
	}
}

func countCompute(species rating.Species, tier rating.ProgramTier, err error) {
	if obs.PremiumComputeTotal == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	obs.PremiumComputeTotal.WithLabelValues(string(species), string(tier), result).Inc()
}

// applyMutableFields copies the caller-editable fields of incoming onto dst,
// leaving identity, premiums, contract state and timestamps untouched.
func applyMutableFields(dst, incoming *Application) {
	dst.FirstName = incoming.FirstName
	dst.LastName = incoming.LastName
	dst.Email = incoming.Email
	dst.Phone = incoming.Phone
	dst.Street = incoming.Street
	dst.PostalCode = incoming.PostalCode
	dst.City = incoming.City
	dst.Program = incoming.Program
	dst.Frequency = incoming.Frequency
	dst.PaymentMethod = incoming.PaymentMethod
	dst.IBAN = incoming.IBAN
	dst.DesiredStart = incoming.DesiredStart
	dst.HealthyConfirmed = incoming.HealthyConfirmed
	dst.TermsAccepted = incoming.TermsAccepted
	dst.Pet = incoming.Pet
	if incoming.SecondPet != nil {
		pet := *incoming.SecondPet
		dst.SecondPet = &pet
	} else {
		dst.SecondPet = nil
	}
}
