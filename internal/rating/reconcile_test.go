package rating

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hellaspet/backend-insurance/internal/money"
)

func TestReconcilePlainBreakdown(t *testing.T) {
	entry, err := Lookup(SpeciesDog, TierSilver, Weight11To20, FrequencyAnnual, SlotPrimary)
	require.NoError(t, err)

	b := Reconcile(money.MustParse("207.20"), entry, SurchargeFlags{}, AddOnFlags{})
	require.False(t, b.Fallback)
	require.Equal(t, "138.60", b.Amount(LabelNet).String())
	require.Equal(t, "41.58", b.Amount(LabelFee).String())
	require.Equal(t, "27.03", b.Amount(LabelTax).String())
	require.Equal(t, "207.20", b.Total.String())
	require.True(t, b.ComponentSum().Within(b.Total, ReconcileTolerance))
}

func TestReconcileScalesToAuthoritativeTotal(t *testing.T) {
	entry, err := Lookup(SpeciesDog, TierGold, Weight11To20, FrequencyAnnual, SlotPrimary)
	require.NoError(t, err)

	// Authoritative total already carries both surcharges and both add-ons.
	authoritative := money.MustParse("376.97")
	b := Reconcile(authoritative, entry,
		SurchargeFlags{Breed5: true, Breed20: true},
		AddOnFlags{PoisoningCoverage: true, BloodCheckup: true})

	require.False(t, b.Fallback)
	require.True(t, b.ComponentSum().Within(authoritative, ReconcileTolerance),
		"components %s vs total %s", b.ComponentSum(), authoritative)
	require.True(t, b.Amount(LabelNet).Cmp(entry.Rate.Net) > 0, "net must scale up")

	// Itemized lines below the components.
	require.Equal(t, "13.05", b.Amount(LabelBreed5).String())
	require.Equal(t, "54.83", b.Amount(LabelBreed20).String())
	require.Equal(t, "20.00", b.Amount(LabelPoisoning).String())
	require.Equal(t, "28.00", b.Amount(LabelBloodCheckup).String())
	require.Equal(t, authoritative.String(), b.Total.String())
}

func TestReconcileSumProperty(t *testing.T) {
	for _, entry := range Rows() {
		for _, factor := range []string{"1.05", "1.20", "1.26", "2.00"} {
			authoritative := entry.Rate.Gross.MulRound(money.MustParse(factor).Decimal())
			b := Reconcile(authoritative, entry, SurchargeFlags{}, AddOnFlags{})
			require.Truef(t, b.ComponentSum().Within(authoritative, ReconcileTolerance),
				"entry %s/%s/%s/%s/%s factor %s: sum %s total %s",
				entry.Species, entry.Tier, entry.Bucket, entry.Frequency, entry.Slot,
				factor, b.ComponentSum(), authoritative)
		}
	}
}

func TestReconcileFallbackSplit(t *testing.T) {
	authoritative := money.MustParse("100.00")
	b := Reconcile(authoritative, Entry{}, SurchargeFlags{}, AddOnFlags{})
	require.True(t, b.Fallback)
	require.Equal(t, "60.00", b.Amount(LabelNet).String())
	require.Equal(t, "18.00", b.Amount(LabelFee).String())
	require.Equal(t, "21.50", b.Amount(LabelTax).String())
	require.Equal(t, "100.00", b.Total.String())
}
