package contract

import (
	"fmt"
	"strings"

	"github.com/hellaspet/backend-insurance/internal/application"
	"github.com/hellaspet/backend-insurance/internal/rating"
)

// Fields flattens one application and one reconciled breakdown into the named
// document slots the filler service expects. Every amount on the document
// comes from the breakdown; nothing is recomputed here, so the printed lines
// always sum to the printed total within the reconciliation tolerance.
func Fields(app *application.Application, breakdown rating.Breakdown, slot rating.PetSlot) (map[string]string, error) {
	pet := app.PetFor(slot)
	if pet == nil {
		return nil, fmt.Errorf("contract: no pet in slot %s", slot)
	}

	fields := map[string]string{
		"application_number": app.ApplicationNumber,
		"contract_number":    app.ContractNumber,

		"owner_name":   strings.TrimSpace(app.FirstName + " " + app.LastName),
		"owner_street": app.Street,
		"owner_city":   strings.TrimSpace(app.PostalCode + " " + app.City),
		"owner_email":  app.Email,
		"owner_phone":  app.Phone,

		"pet_number":  petNumber(slot),
		"pet_name":    pet.Name,
		"pet_species": string(pet.Species),
		"pet_breed":   pet.Breed,
		"pet_weight":  weightDisplay(pet.WeightRaw),

		"program":                app.Program.DisplayName(),
		"program_with_frequency": ProgramWithFrequency(app.Program, app.Frequency),
		"billing_frequency":      app.Frequency.DisplayName(),
		"payment_method":         app.PaymentMethod,
		"iban":                   app.IBAN,

		"premium_total": breakdown.Total.DisplayEuro(),
		"premium_net":   breakdown.Amount(rating.LabelNet).DisplayEuro(),
		"premium_fee":   breakdown.Amount(rating.LabelFee).DisplayEuro(),
		"premium_tax":   breakdown.Amount(rating.LabelTax).DisplayEuro(),
	}

	if pet.BirthDate != nil {
		fields["pet_birth_date"] = pet.BirthDate.Format("02.01.2006")
	}
	if app.DesiredStart != nil {
		fields["start_date"] = app.DesiredStart.Format("02.01.2006")
	}

	// Itemized surcharge and add-on lines appear only when priced.
	optional := map[string]string{
		"surcharge_breed_5":   rating.LabelBreed5,
		"surcharge_breed_20":  rating.LabelBreed20,
		"addon_poisoning":     rating.LabelPoisoning,
		"addon_blood_checkup": rating.LabelBloodCheckup,
	}
	for field, label := range optional {
		for _, line := range breakdown.Lines {
			if line.Label == label {
				fields[field] = line.Amount.DisplayEuro()
			}
		}
	}

	return fields, nil
}

// ProgramWithFrequency renders the combined product line shown on documents,
// e.g. "Gold (Annual)".
func ProgramWithFrequency(tier rating.ProgramTier, frequency rating.BillingFrequency) string {
	return fmt.Sprintf("%s (%s)", tier.DisplayName(), frequency.DisplayName())
}

func petNumber(slot rating.PetSlot) string {
	if slot == rating.SlotSecondary {
		return "2"
	}
	return "1"
}

func weightDisplay(raw string) string {
	bucket, err := rating.NormalizeWeight(raw)
	if err != nil {
		return raw
	}
	return bucket.DisplayName()
}
