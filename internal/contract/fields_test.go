package contract_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/hellaspet/backend-insurance/internal/application"
	"github.com/hellaspet/backend-insurance/internal/contract"
	"github.com/hellaspet/backend-insurance/internal/money"
	"github.com/hellaspet/backend-insurance/internal/rating"
)

func loadedApplication() *application.Application {
	birth := time.Date(2022, 3, 14, 0, 0, 0, 0, time.UTC)
	start := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	return &application.Application{
		ApplicationNumber: "HPI00042",
		ContractNumber:    "HOL-2026-3fa2b1",
		FirstName:         "Ada",
		LastName:          "Klein",
		Email:             "ada@example.com",
		Street:            "Hauptstr. 1",
		PostalCode:        "10115",
		City:              "Berlin",
		Program:           rating.TierGold,
		Frequency:         rating.FrequencyAnnual,
		PaymentMethod:     "sepa",
		IBAN:              "DE02120300000000202051",
		DesiredStart:      &start,
		Pet: application.Pet{
			Name:              "Rex",
			Species:           rating.SpeciesDog,
			Breed:             "Beagle",
			BirthDate:         &birth,
			WeightRaw:         "10_25",
			Breed5Surcharge:   true,
			Breed20Surcharge:  true,
			PoisoningCoverage: true,
			BloodCheckup:      true,
		},
	}
}

func TestFieldsMapsBreakdownOntoDocumentSlots(t *testing.T) {
	app := loadedApplication()
	entry, err := rating.Lookup(rating.SpeciesDog, rating.TierGold, rating.Weight11To20, rating.FrequencyAnnual, rating.SlotPrimary)
	require.NoError(t, err)
	breakdown := rating.Reconcile(money.MustParse("376.97"), entry,
		app.Pet.SurchargeFlags(), app.Pet.AddOnFlags())

	fields, err := contract.Fields(app, breakdown, rating.SlotPrimary)
	require.NoError(t, err)

	require.Equal(t, "HPI00042", fields["application_number"])
	require.Equal(t, "HOL-2026-3fa2b1", fields["contract_number"])
	require.Equal(t, "Ada Klein", fields["owner_name"])
	require.Equal(t, "10115 Berlin", fields["owner_city"])
	require.Equal(t, "1", fields["pet_number"])
	require.Equal(t, "Rex", fields["pet_name"])
	require.Equal(t, "11-20 kg", fields["pet_weight"])
	require.Equal(t, "14.03.2022", fields["pet_birth_date"])
	require.Equal(t, "01.10.2026", fields["start_date"])
	require.Equal(t, "Gold (Annual)", fields["program_with_frequency"])

	require.Equal(t, "376.97€", fields["premium_total"])
	require.Equal(t, breakdown.Amount(rating.LabelNet).DisplayEuro(), fields["premium_net"])
	require.Equal(t, "13.05€", fields["surcharge_breed_5"])
	require.Equal(t, "54.83€", fields["surcharge_breed_20"])
	require.Equal(t, "20.00€", fields["addon_poisoning"])
	require.Equal(t, "28.00€", fields["addon_blood_checkup"])
}

func TestFieldsOmitsUnpricedLines(t *testing.T) {
	app := loadedApplication()
	app.Pet.Breed5Surcharge = false
	app.Pet.Breed20Surcharge = false
	app.Pet.PoisoningCoverage = false
	app.Pet.BloodCheckup = false

	entry, err := rating.Lookup(rating.SpeciesDog, rating.TierGold, rating.Weight11To20, rating.FrequencyAnnual, rating.SlotPrimary)
	require.NoError(t, err)
	breakdown := rating.Reconcile(entry.Rate.Gross, entry, rating.SurchargeFlags{}, rating.AddOnFlags{})

	fields, err := contract.Fields(app, breakdown, rating.SlotPrimary)
	require.NoError(t, err)
	require.NotContains(t, fields, "surcharge_breed_5")
	require.NotContains(t, fields, "surcharge_breed_20")
	require.NotContains(t, fields, "addon_poisoning")
	require.NotContains(t, fields, "addon_blood_checkup")
}

func TestFieldsSecondSlotRequiresSecondPet(t *testing.T) {
	app := loadedApplication()
	_, err := contract.Fields(app, rating.Breakdown{}, rating.SlotSecondary)
	require.Error(t, err)

	app.SecondPet = &application.Pet{Name: "Mia", Species: rating.SpeciesCat, WeightRaw: "4"}
	fields, err := contract.Fields(app, rating.Breakdown{Total: money.MustParse("113.81")}, rating.SlotSecondary)
	require.NoError(t, err)
	require.Equal(t, "2", fields["pet_number"])
	require.Equal(t, "Mia", fields["pet_name"])
	require.Equal(t, "up to 10 kg", fields["pet_weight"])
}

func TestProgramWithFrequency(t *testing.T) {
	require.Equal(t, "Platinum (Quarter)", contract.ProgramWithFrequency(rating.TierPlatinum, rating.FrequencyQuarter))
}
