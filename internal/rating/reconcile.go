package rating

import (
	"github.com/shopspring/decimal"

	"github.com/hellaspet/backend-insurance/internal/money"
)

// Breakdown line labels. Document slots and the on-screen view key off these.
const (
	LabelNet          = "Net premium"
	LabelFee          = "Management fee"
	LabelTax          = "Insurance premium tax"
	LabelBreed5       = "Breed surcharge 5%"
	LabelBreed20      = "Breed surcharge 20%"
	LabelPoisoning    = "Poisoning coverage"
	LabelBloodCheckup = "Blood checkup"
)

// ReconcileTolerance bounds the residual between the rescaled component lines
// and the authoritative total. Independent per-line rounding can leave up to
// two cents; callers surface the breakdown as-is and never silently adjust it.
var ReconcileTolerance = money.MustParse("0.02")

// fallback split applied when the base gross is zero and no scale exists.
var (
	fallbackNet = decimal.RequireFromString("0.60")
	fallbackFee = decimal.RequireFromString("0.18")
	fallbackTax = decimal.RequireFromString("0.215")
)

// Line is one labeled amount on a reconciled breakdown.
type Line struct {
	Label  string      `json:"label"`
	Amount money.Money `json:"amount"`
}

// Breakdown is the document- and display-facing itemization of a canonical
// premium. Component lines come first, itemized surcharges and add-ons
// follow, and Total always equals the authoritative premium.
type Breakdown struct {
	Lines    []Line      `json:"lines"`
	Total    money.Money `json:"total"`
	Fallback bool        `json:"fallback,omitempty"`
}

// Reconcile rescales the base-rate component split so the breakdown lines sum
// to the authoritative premium, which may already carry surcharges and
// add-ons the split knows nothing about. Each component is rounded to two
// decimals independently, so the sum may sit within ReconcileTolerance of the
// total rather than matching it exactly.
//
// When the base gross is zero there is nothing to scale; a fixed percentage
// split of the authoritative total is used instead so a document can still be
// produced. That path is best-effort, not a pricing rule, and is flagged so
// callers can log and count it.
func Reconcile(authoritative money.Money, entry Entry, surcharges SurchargeFlags, addons AddOnFlags) Breakdown {
	var lines []Line
	fallback := !entry.Rate.Gross.IsPositive()
	if fallback {
		lines = append(lines,
			Line{LabelNet, authoritative.MulRound(fallbackNet)},
			Line{LabelFee, authoritative.MulRound(fallbackFee)},
			Line{LabelTax, authoritative.MulRound(fallbackTax)},
		)
	} else {
		scale := authoritative.Ratio(entry.Rate.Gross)
		lines = append(lines,
			Line{LabelNet, entry.Rate.Net.MulRound(scale)},
			Line{LabelFee, entry.Rate.Fee.MulRound(scale)},
			Line{LabelTax, entry.Rate.Tax.MulRound(scale)},
		)
	}

	base := entry.Rate.Gross
	if surcharges.Breed5 {
		lines = append(lines, Line{LabelBreed5, Breed5Amount(base)})
	}
	if surcharges.Breed20 {
		lines = append(lines, Line{LabelBreed20, Breed20Amount(base, surcharges.Breed5)})
	}
	if addons.PoisoningCoverage {
		lines = append(lines, Line{LabelPoisoning, PoisoningAmount(entry.Tier, entry.Frequency)})
	}
	if addons.BloodCheckup {
		lines = append(lines, Line{LabelBloodCheckup, BloodCheckupAmount(entry.Frequency)})
	}

	return Breakdown{Lines: lines, Total: authoritative, Fallback: fallback}
}

// ComponentSum adds the net, fee and tax lines of the breakdown.
func (b Breakdown) ComponentSum() money.Money {
	sum := money.Zero()
	for _, line := range b.Lines {
		switch line.Label {
		case LabelNet, LabelFee, LabelTax:
			sum = sum.Add(line.Amount)
		}
	}
	return sum
}

// Amount returns the line amount for a label, or zero when absent.
func (b Breakdown) Amount(label string) money.Money {
	for _, line := range b.Lines {
		if line.Label == label {
			return line.Amount
		}
	}
	return money.Zero()
}
