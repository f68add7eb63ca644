package rating

import (
	"github.com/hellaspet/backend-insurance/internal/money"
)

// Input carries everything needed to rate one pet.
type Input struct {
	Species    Species
	Tier       ProgramTier
	WeightRaw  string
	Slot       PetSlot
	Surcharges SurchargeFlags
	AddOns     AddOnFlags
}

// CanonicalPremium is the authoritative premium triple persisted on an
// application. Display and document paths derive from it and never recompute
// independently.
type CanonicalPremium struct {
	Annual   money.Money `json:"annual"`
	Semester money.Money `json:"semester"`
	Quarter  money.Money `json:"quarter"`
}

// For selects the premium for a billing frequency.
func (p CanonicalPremium) For(frequency BillingFrequency) money.Money {
	switch frequency {
	case FrequencySemester:
		return p.Semester
	case FrequencyQuarter:
		return p.Quarter
	default:
		return p.Annual
	}
}

// ComputePremium rates the input for all three billing frequencies. It is
// pure and idempotent: identical inputs always produce identical amounts, and
// nothing is read from or written to storage here. The first unknown-weight
// or missing-rate failure aborts the whole computation; a partial or zeroed
// triple is never returned.
func ComputePremium(in Input) (CanonicalPremium, error) {
	bucket, err := NormalizeWeight(in.WeightRaw)
	if err != nil {
		return CanonicalPremium{}, err
	}
	slot := in.Slot
	if slot == "" {
		slot = SlotPrimary
	}
	var out CanonicalPremium
	for _, frequency := range Frequencies() {
		entry, err := Lookup(in.Species, in.Tier, bucket, frequency, slot)
		if err != nil {
			return CanonicalPremium{}, err
		}
		premium := PremiumFor(entry, in.Surcharges, in.AddOns)
		switch frequency {
		case FrequencyAnnual:
			out.Annual = premium
		case FrequencySemester:
			out.Semester = premium
		case FrequencyQuarter:
			out.Quarter = premium
		}
	}
	return out, nil
}
