package rating

import (
	"github.com/shopspring/decimal"

	"github.com/hellaspet/backend-insurance/internal/money"
)

// SurchargeFlags marks the breed loadings selected on the questionnaire.
// Both may be set at once.
type SurchargeFlags struct {
	Breed5  bool `json:"breed5"`
	Breed20 bool `json:"breed20"`
}

// AddOnFlags marks the optional coverages selected on the questionnaire.
type AddOnFlags struct {
	PoisoningCoverage bool `json:"poisoningCoverage"`
	BloodCheckup      bool `json:"bloodCheckup"`
}

var (
	factorBreed5  = decimal.RequireFromString("1.05")
	factorBreed20 = decimal.RequireFromString("1.20")

	prorationSemester = decimal.RequireFromString("0.5")
	prorationQuarter  = decimal.RequireFromString("0.25")

	// poisoningAnnual prices the poisoning add-on per tier, annual terms.
	poisoningAnnual = map[ProgramTier]money.Money{
		TierSilver:   money.MustParse("18.00"),
		TierGold:     money.MustParse("20.00"),
		TierPlatinum: money.MustParse("25.00"),
	}

	bloodCheckupAnnual = money.MustParse("28.00")
)

// ApplySurcharges loads the base amount with the selected breed surcharges.
// The composition is fixed: 5% first, then 20% on the already-adjusted value,
// each step rounded to two decimals. The loadings are never additive.
func ApplySurcharges(base money.Money, flags SurchargeFlags) money.Money {
	out := base
	if flags.Breed5 {
		out = out.MulRound(factorBreed5)
	}
	if flags.Breed20 {
		out = out.MulRound(factorBreed20)
	}
	return out
}

// Breed5Amount returns the itemizable 5% loading on the untouched base.
func Breed5Amount(base money.Money) money.Money {
	return base.MulRound(factorBreed5).Sub(base)
}

// Breed20Amount returns the itemizable 20% loading. When the 5% surcharge is
// also active, the 20% is taken on the 5%-adjusted value.
func Breed20Amount(base money.Money, breed5Active bool) money.Money {
	if breed5Active {
		base = base.MulRound(factorBreed5)
	}
	return base.MulRound(factorBreed20).Sub(base)
}

// Prorate scales an annual add-on amount to the billing frequency. Unlike the
// per-frequency base rates, add-ons are always derived from the annual amount
// at fixed 50% / 25% ratios.
func Prorate(annual money.Money, frequency BillingFrequency) money.Money {
	switch frequency {
	case FrequencySemester:
		return annual.MulRound(prorationSemester)
	case FrequencyQuarter:
		return annual.MulRound(prorationQuarter)
	default:
		return annual
	}
}

// PoisoningAmount returns the poisoning coverage price for the tier at the
// given frequency.
func PoisoningAmount(tier ProgramTier, frequency BillingFrequency) money.Money {
	annual, ok := poisoningAnnual[tier]
	if !ok {
		return money.Zero()
	}
	return Prorate(annual, frequency)
}

// BloodCheckupAmount returns the blood checkup price at the given frequency.
func BloodCheckupAmount(frequency BillingFrequency) money.Money {
	return Prorate(bloodCheckupAnnual, frequency)
}

// AddOnTotal sums the selected add-on amounts for the frequency.
func AddOnTotal(tier ProgramTier, frequency BillingFrequency, flags AddOnFlags) money.Money {
	total := money.Zero()
	if flags.PoisoningCoverage {
		total = total.Add(PoisoningAmount(tier, frequency))
	}
	if flags.BloodCheckup {
		total = total.Add(BloodCheckupAmount(frequency))
	}
	return total
}

// PremiumFor composes one frequency's premium: the frequency-specific base
// gross, surcharge-loaded, plus the prorated add-ons.
func PremiumFor(entry Entry, surcharges SurchargeFlags, addons AddOnFlags) money.Money {
	loaded := ApplySurcharges(entry.Rate.Gross, surcharges)
	return loaded.Add(AddOnTotal(entry.Tier, entry.Frequency, addons))
}
