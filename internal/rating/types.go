package rating

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnknownWeight is returned when a raw weight value cannot be mapped to
	// a rating bucket. Computation must not proceed with a guessed bucket.
	ErrUnknownWeight = errors.New("rating: unknown weight category")
	// ErrMissingRateEntry is returned when the rate table has no row for the
	// requested combination. The caller decides fallback policy.
	ErrMissingRateEntry = errors.New("rating: missing rate entry")
	// ErrUnknownEnum is returned by the enum parsers for values outside their
	// closed domains, including tiers that exist in display code but carry no
	// rates.
	ErrUnknownEnum = errors.New("rating: unknown enum value")
)

// Species identifies the insured animal kind.
type Species string

// ProgramTier is the product level determining base rates.
type ProgramTier string

// WeightBucket is the discretized pet-weight rating dimension.
type WeightBucket string

// BillingFrequency is the payment schedule. Each frequency has its own base
// rate rows; frequencies are never derived from one another at runtime.
type BillingFrequency string

// PetSlot selects the first-pet or second-pet rate variant. The two are
// separate table rows, not a computed discount.
type PetSlot string

const (
	SpeciesDog Species = "dog"
	SpeciesCat Species = "cat"

	TierSilver   ProgramTier = "silver"
	TierGold     ProgramTier = "gold"
	TierPlatinum ProgramTier = "platinum"

	WeightUpTo10  WeightBucket = "up_to_10"
	Weight11To20  WeightBucket = "11_20"
	Weight21To40  WeightBucket = "21_40"
	WeightOver40  WeightBucket = "over_40"
	WeightUnknown WeightBucket = ""

	FrequencyAnnual   BillingFrequency = "annual"
	FrequencySemester BillingFrequency = "semester"
	FrequencyQuarter  BillingFrequency = "quarter"

	SlotPrimary   PetSlot = "primary"
	SlotSecondary PetSlot = "secondary"
)

// ParseSpecies maps a raw species code onto the closed Species domain.
func ParseSpecies(raw string) (Species, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "dog":
		return SpeciesDog, nil
	case "cat":
		return SpeciesCat, nil
	default:
		return "", fmt.Errorf("%w: species %q", ErrUnknownEnum, raw)
	}
}

// ParseTier maps a raw program code onto the rated tiers. Tier codes that
// appear in legacy display paths but have no rate rows are rejected here so
// they fail closed before any lookup.
func ParseTier(raw string) (ProgramTier, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "silver":
		return TierSilver, nil
	case "gold":
		return TierGold, nil
	case "platinum":
		return TierPlatinum, nil
	default:
		return "", fmt.Errorf("%w: program tier %q", ErrUnknownEnum, raw)
	}
}

// ParseFrequency accepts both the canonical frequency codes and the legacy
// questionnaire codes.
func ParseFrequency(raw string) (BillingFrequency, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "annual":
		return FrequencyAnnual, nil
	case "semester", "six_month", "6m":
		return FrequencySemester, nil
	case "quarter", "three_month", "3m":
		return FrequencyQuarter, nil
	default:
		return "", fmt.Errorf("%w: billing frequency %q", ErrUnknownEnum, raw)
	}
}

// ParseSlot maps a raw slot code onto the pet slot domain.
func ParseSlot(raw string) (PetSlot, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "primary", "1":
		return SlotPrimary, nil
	case "secondary", "2":
		return SlotSecondary, nil
	default:
		return "", fmt.Errorf("%w: pet slot %q", ErrUnknownEnum, raw)
	}
}

// Frequencies lists the billing frequencies in canonical order.
func Frequencies() []BillingFrequency {
	return []BillingFrequency{FrequencyAnnual, FrequencySemester, FrequencyQuarter}
}

// DisplayName renders the tier for user-facing strings.
func (t ProgramTier) DisplayName() string {
	switch t {
	case TierSilver:
		return "Silver"
	case TierGold:
		return "Gold"
	case TierPlatinum:
		return "Platinum"
	default:
		return string(t)
	}
}

// DisplayName renders the frequency for user-facing strings.
func (f BillingFrequency) DisplayName() string {
	switch f {
	case FrequencyAnnual:
		return "Annual"
	case FrequencySemester:
		return "Semester"
	case FrequencyQuarter:
		return "Quarter"
	default:
		return string(f)
	}
}

// DisplayName renders the weight bucket the way documents print it.
func (b WeightBucket) DisplayName() string {
	switch b {
	case WeightUpTo10:
		return "up to 10 kg"
	case Weight11To20:
		return "11-20 kg"
	case Weight21To40:
		return "21-40 kg"
	case WeightOver40:
		return "over 40 kg"
	default:
		return string(b)
	}
}
