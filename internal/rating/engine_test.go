package rating

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestComputePremiumScenarioBase(t *testing.T) {
	// Dog, Silver, 11-20 kg, no surcharges or add-ons.
	premium, err := ComputePremium(Input{
		Species:   SpeciesDog,
		Tier:      TierSilver,
		WeightRaw: "10_25",
	})
	require.NoError(t, err)
	require.Equal(t, "207.20", premium.Annual.String())
	require.Equal(t, "108.78", premium.Semester.String())
	require.Equal(t, "56.98", premium.Quarter.String())
}

func TestComputePremiumScenarioLoaded(t *testing.T) {
	// Dog, Gold, 11-20 kg, both surcharges, both add-ons.
	// 261.09 -> 274.14 -> 328.97, +20.00 poisoning, +28.00 blood checkup.
	premium, err := ComputePremium(Input{
		Species:    SpeciesDog,
		Tier:       TierGold,
		WeightRaw:  "15",
		Surcharges: SurchargeFlags{Breed5: true, Breed20: true},
		AddOns:     AddOnFlags{PoisoningCoverage: true, BloodCheckup: true},
	})
	require.NoError(t, err)
	require.Equal(t, "376.97", premium.Annual.String())

	// Semester base is its own table row, loaded the same way, with add-ons
	// prorated from annual amounts: 137.07 -> 143.92 -> 172.70, +10.00 +14.00.
	require.Equal(t, "196.70", premium.Semester.String())
}

func TestComputePremiumIdempotent(t *testing.T) {
	in := Input{
		Species:    SpeciesCat,
		Tier:       TierGold,
		WeightRaw:  "12",
		Surcharges: SurchargeFlags{Breed5: true},
		AddOns:     AddOnFlags{BloodCheckup: true},
	}
	first, err := ComputePremium(in)
	require.NoError(t, err)
	second, err := ComputePremium(in)
	require.NoError(t, err)
	require.True(t, first.Annual.Equal(second.Annual))
	require.True(t, first.Semester.Equal(second.Semester))
	require.True(t, first.Quarter.Equal(second.Quarter))
}

func TestComputePremiumUnknownWeightFailsClosed(t *testing.T) {
	_, err := ComputePremium(Input{
		Species:   SpeciesDog,
		Tier:      TierSilver,
		WeightRaw: "999kg-invalid",
	})
	require.ErrorIs(t, err, ErrUnknownWeight)
}

func TestComputePremiumMissingEntryFailsClosed(t *testing.T) {
	// A 30 kg cat has no rate row in any tier.
	_, err := ComputePremium(Input{
		Species:   SpeciesCat,
		Tier:      TierPlatinum,
		WeightRaw: "30",
	})
	require.ErrorIs(t, err, ErrMissingRateEntry)
}

func TestComputePremiumSecondarySlot(t *testing.T) {
	premium, err := ComputePremium(Input{
		Species:   SpeciesDog,
		Tier:      TierSilver,
		WeightRaw: "10_25",
		Slot:      SlotSecondary,
	})
	require.NoError(t, err)
	require.Equal(t, "196.84", premium.Annual.String())
}

func TestCanonicalPremiumFor(t *testing.T) {
	premium, err := ComputePremium(Input{Species: SpeciesDog, Tier: TierSilver, WeightRaw: "8"})
	require.NoError(t, err)
	require.True(t, premium.For(FrequencyAnnual).Equal(premium.Annual))
	require.True(t, premium.For(FrequencySemester).Equal(premium.Semester))
	require.True(t, premium.For(FrequencyQuarter).Equal(premium.Quarter))
}
