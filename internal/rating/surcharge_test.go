package rating

import (
	"testing"

	"github.com/hellaspet/backend-insurance/internal/money"
)

func TestSurchargeOrder(t *testing.T) {
	base := money.MustParse("261.09")
	got := ApplySurcharges(base, SurchargeFlags{Breed5: true, Breed20: true})
	// round(round(261.09*1.05)*1.20) = 328.97; neither 261.09*1.25 nor
	// 20%-before-5% produces this.
	if got.String() != "328.97" {
		t.Fatalf("expected 328.97, got %s", got)
	}
}

func TestSurchargesIndividually(t *testing.T) {
	base := money.MustParse("100.00")
	if got := ApplySurcharges(base, SurchargeFlags{}); got.String() != "100.00" {
		t.Fatalf("no flags should leave base untouched, got %s", got)
	}
	if got := ApplySurcharges(base, SurchargeFlags{Breed5: true}); got.String() != "105.00" {
		t.Fatalf("expected 105.00, got %s", got)
	}
	if got := ApplySurcharges(base, SurchargeFlags{Breed20: true}); got.String() != "120.00" {
		t.Fatalf("expected 120.00, got %s", got)
	}
}

func TestAddOnProration(t *testing.T) {
	for _, tier := range []ProgramTier{TierSilver, TierGold, TierPlatinum} {
		if got := BloodCheckupAmount(FrequencyAnnual); got.String() != "28.00" {
			t.Fatalf("tier %s: annual blood checkup %s", tier, got)
		}
		if got := BloodCheckupAmount(FrequencySemester); got.String() != "14.00" {
			t.Fatalf("tier %s: semester blood checkup %s", tier, got)
		}
		if got := BloodCheckupAmount(FrequencyQuarter); got.String() != "7.00" {
			t.Fatalf("tier %s: quarter blood checkup %s", tier, got)
		}
	}
}

func TestPoisoningRates(t *testing.T) {
	cases := []struct {
		tier      ProgramTier
		frequency BillingFrequency
		want      string
	}{
		{TierSilver, FrequencyAnnual, "18.00"},
		{TierSilver, FrequencySemester, "9.00"},
		{TierSilver, FrequencyQuarter, "4.50"},
		{TierGold, FrequencyAnnual, "20.00"},
		{TierGold, FrequencySemester, "10.00"},
		{TierGold, FrequencyQuarter, "5.00"},
		{TierPlatinum, FrequencyAnnual, "25.00"},
		{TierPlatinum, FrequencySemester, "12.50"},
		{TierPlatinum, FrequencyQuarter, "6.25"},
	}
	for _, tc := range cases {
		if got := PoisoningAmount(tc.tier, tc.frequency); got.String() != tc.want {
			t.Fatalf("%s/%s: expected %s, got %s", tc.tier, tc.frequency, tc.want, got)
		}
	}
}

func TestBreedAmountsItemization(t *testing.T) {
	base := money.MustParse("261.09")
	if got := Breed5Amount(base); got.String() != "13.05" {
		t.Fatalf("breed5 amount %s", got)
	}
	// 20% on the 5%-adjusted value: 274.14 * 0.20 = 54.83.
	if got := Breed20Amount(base, true); got.String() != "54.83" {
		t.Fatalf("breed20-after-5 amount %s", got)
	}
	if got := Breed20Amount(base, false); got.String() != "52.22" {
		t.Fatalf("breed20 amount %s", got)
	}
}
