package application

import (
	"time"

	"github.com/google/uuid"

	"github.com/hellaspet/backend-insurance/internal/money"
)

type premiumView struct {
	Annual   money.Money `json:"annual"`
	Semester money.Money `json:"semester"`
	Quarter  money.Money `json:"quarter"`
}

type petView struct {
	Name              string     `json:"name"`
	Species           string     `json:"species"`
	Breed             string     `json:"breed,omitempty"`
	BirthDate         *time.Time `json:"birthDate,omitempty"`
	Weight            string     `json:"weight"`
	Breed5Surcharge   bool       `json:"breed5Surcharge"`
	Breed20Surcharge  bool       `json:"breed20Surcharge"`
	PoisoningCoverage bool       `json:"poisoningCoverage"`
	BloodCheckup      bool       `json:"bloodCheckup"`
}

type applicationView struct {
	ID                uuid.UUID    `json:"id"`
	ApplicationNumber string       `json:"applicationNumber"`
	ContractNumber    string       `json:"contractNumber"`
	FirstName         string       `json:"firstName"`
	LastName          string       `json:"lastName"`
	Email             string       `json:"email"`
	Phone             string       `json:"phone,omitempty"`
	Street            string       `json:"street,omitempty"`
	PostalCode        string       `json:"postalCode,omitempty"`
	City              string       `json:"city,omitempty"`
	Program           string       `json:"program"`
	Frequency         string       `json:"billingFrequency"`
	PaymentMethod     string       `json:"paymentMethod,omitempty"`
	IBAN              string       `json:"iban,omitempty"`
	DesiredStart      *time.Time   `json:"desiredStart,omitempty"`
	HealthyConfirmed  bool         `json:"healthyConfirmed"`
	TermsAccepted     bool         `json:"termsAccepted"`
	Pet               petView      `json:"pet"`
	SecondPet         *petView     `json:"secondPet,omitempty"`
	PrimaryPremium    *premiumView `json:"primaryPremium,omitempty"`
	SecondaryPremium  *premiumView `json:"secondaryPremium,omitempty"`
	ContractGenerated bool         `json:"contractGenerated"`
	ContractPDFPath   string       `json:"contractPdfPath,omitempty"`
	CreatedAt         time.Time    `json:"createdAt"`
	UpdatedAt         time.Time    `json:"updatedAt"`
}

func toView(app *Application) applicationView {
	view := applicationView{
		ID:                app.ID,
		ApplicationNumber: app.ApplicationNumber,
		ContractNumber:    app.ContractNumber,
		FirstName:         app.FirstName,
		LastName:          app.LastName,
		Email:             app.Email,
		Phone:             app.Phone,
		Street:            app.Street,
		PostalCode:        app.PostalCode,
		City:              app.City,
		Program:           string(app.Program),
		Frequency:         string(app.Frequency),
		PaymentMethod:     app.PaymentMethod,
		IBAN:              app.IBAN,
		DesiredStart:      app.DesiredStart,
		HealthyConfirmed:  app.HealthyConfirmed,
		TermsAccepted:     app.TermsAccepted,
		Pet:               toPetView(app.Pet),
		ContractGenerated: app.ContractGenerated,
		ContractPDFPath:   app.ContractPDFPath,
		CreatedAt:         app.CreatedAt,
		UpdatedAt:         app.UpdatedAt,
	}
	if app.SecondPet != nil {
		second := toPetView(*app.SecondPet)
		view.SecondPet = &second
	}
	view.PrimaryPremium = toPremiumView(app.PrimaryPremium)
	view.SecondaryPremium = toPremiumView(app.SecondaryPremium)
	return view
}

func toPetView(pet Pet) petView {
	return petView{
		Name:              pet.Name,
		Species:           string(pet.Species),
		Breed:             pet.Breed,
		BirthDate:         pet.BirthDate,
		Weight:            pet.WeightRaw,
		Breed5Surcharge:   pet.Breed5Surcharge,
		Breed20Surcharge:  pet.Breed20Surcharge,
		PoisoningCoverage: pet.PoisoningCoverage,
		BloodCheckup:      pet.BloodCheckup,
	}
}

func toPremiumView(p *StoredPremium) *premiumView {
	if p == nil {
		return nil
	}
	return &premiumView{Annual: p.Annual, Semester: p.Semester, Quarter: p.Quarter}
}
