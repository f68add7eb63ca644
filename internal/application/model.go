package application

import (
	"encoding/hex"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"github.com/hellaspet/backend-insurance/internal/money"
	"github.com/hellaspet/backend-insurance/internal/rating"
)

// ErrNotFound is returned when an application does not exist.
var ErrNotFound = errors.New("application not found")

// ErrPremiumUnavailable is returned when an operation needs a stored premium
// that was never computed.
var ErrPremiumUnavailable = errors.New("premium not available")

// Pet holds the insurable animal's attributes for one slot.
type Pet struct {
	Name              string
	Species           rating.Species
	Breed             string
	BirthDate         *time.Time
	WeightRaw         string
	Breed5Surcharge   bool
	Breed20Surcharge  bool
	PoisoningCoverage bool
	BloodCheckup      bool
}

// SurchargeFlags maps the pet's breed flags into rating terms.
func (p Pet) SurchargeFlags() rating.SurchargeFlags {
	return rating.SurchargeFlags{Breed5: p.Breed5Surcharge, Breed20: p.Breed20Surcharge}
}

// AddOnFlags maps the pet's optional coverages into rating terms.
func (p Pet) AddOnFlags() rating.AddOnFlags {
	return rating.AddOnFlags{PoisoningCoverage: p.PoisoningCoverage, BloodCheckup: p.BloodCheckup}
}

// StoredPremium is the canonical premium triple persisted per pet slot.
type StoredPremium struct {
	Annual   money.Money
	Semester money.Money
	Quarter  money.Money
}

// For returns the stored amount for the billing frequency.
func (s StoredPremium) For(freq rating.BillingFrequency) money.Money {
	switch freq {
	case rating.FrequencySemester:
		return s.Semester
	case rating.FrequencyQuarter:
		return s.Quarter
	default:
		return s.Annual
	}
}

// FromCanonical converts an engine result into a storable triple.
func FromCanonical(p rating.CanonicalPremium) StoredPremium {
	return StoredPremium{Annual: p.Annual, Semester: p.Semester, Quarter: p.Quarter}
}

// Application is the policy application aggregate.
type Application struct {
	ID                uuid.UUID
	ApplicationNumber string
	ContractNumber    string

	FirstName  string
	LastName   string
	Email      string
	Phone      string
	Street     string
	PostalCode string
	City       string

	Program       rating.ProgramTier
	Frequency     rating.BillingFrequency
	PaymentMethod string
	IBAN          string
	DesiredStart  *time.Time

	HealthyConfirmed bool
	TermsAccepted    bool

	Pet       Pet
	SecondPet *Pet

	PrimaryPremium   *StoredPremium
	SecondaryPremium *StoredPremium

	ContractGenerated bool
	ContractPDFPath   string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasSecondPet reports whether a second pet slot is filled.
func (a *Application) HasSecondPet() bool {
	return a.SecondPet != nil && a.SecondPet.Name != ""
}

// PetFor returns the pet occupying the slot, or nil.
func (a *Application) PetFor(slot rating.PetSlot) *Pet {
	if slot == rating.SlotSecondary {
		return a.SecondPet
	}
	return &a.Pet
}

// PremiumFor returns the stored premium triple for the slot, or nil.
func (a *Application) PremiumFor(slot rating.PetSlot) *StoredPremium {
	if slot == rating.SlotSecondary {
		return a.SecondaryPremium
	}
	return a.PrimaryPremium
}

// SetPremium stores the premium triple for the slot.
func (a *Application) SetPremium(slot rating.PetSlot, p *StoredPremium) {
	if slot == rating.SlotSecondary {
		a.SecondaryPremium = p
		return
	}
	a.PrimaryPremium = p
}

// RatingInput builds the engine input for the slot. The second slot rates
// against the secondary rate rows.
func (a *Application) RatingInput(slot rating.PetSlot) (rating.Input, error) {
	pet := a.PetFor(slot)
	if pet == nil {
		return rating.Input{}, fmt.Errorf("no pet in slot %s", slot)
	}
	return rating.Input{
		Species:    pet.Species,
		Tier:       a.Program,
		WeightRaw:  pet.WeightRaw,
		Slot:       slot,
		Surcharges: pet.SurchargeFlags(),
		AddOns:     pet.AddOnFlags(),
	}, nil
}

// Slots returns the occupied pet slots in order.
func (a *Application) Slots() []rating.PetSlot {
	slots := []rating.PetSlot{rating.SlotPrimary}
	if a.HasSecondPet() {
		slots = append(slots, rating.SlotSecondary)
	}
	return slots
}

// NewApplicationNumber produces a display number like HPI48201.
func NewApplicationNumber() string {
	return fmt.Sprintf("HPI%05d", rand.IntN(100000))
}

// NewContractNumber produces a display number like HOL-2026-3fa2b1.
func NewContractNumber(year int) string {
	u := uuid.New()
	return fmt.Sprintf("HOL-%d-%s", year, hex.EncodeToString(u[:3]))
}
