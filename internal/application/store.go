package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hellaspet/backend-insurance/internal/events"
	"github.com/hellaspet/backend-insurance/internal/money"
	"github.com/hellaspet/backend-insurance/internal/rating"
)

// Store persists applications and their domain events in Postgres.
type Store struct {
	Pool *pgxpool.Pool
}

const applicationColumns = `
	id, application_number, contract_number,
	first_name, last_name, email, phone, street, postal_code, city,
	program, billing_frequency, payment_method, iban, desired_start,
	healthy_confirmed, terms_accepted,
	pet_name, pet_species, pet_breed, pet_birth_date, pet_weight_raw,
	pet_breed5, pet_breed20, pet_poisoning, pet_blood_checkup,
	second_pet_name, second_pet_species, second_pet_breed, second_pet_birth_date, second_pet_weight_raw,
	second_pet_breed5, second_pet_breed20, second_pet_poisoning, second_pet_blood_checkup,
	premium_primary_annual::text, premium_primary_semester::text, premium_primary_quarter::text,
	premium_secondary_annual::text, premium_secondary_semester::text, premium_secondary_quarter::text,
	contract_generated, contract_pdf_path,
	created_at, updated_at`

// Create inserts a new application and fills in generated timestamps.
func (s *Store) Create(ctx context.Context, app *Application) error {
	if app.ID == uuid.Nil {
		app.ID = uuid.New()
	}
	const q = `
		INSERT INTO applications (
			id, application_number, contract_number,
			first_name, last_name, email, phone, street, postal_code, city,
			program, billing_frequency, payment_method, iban, desired_start,
			healthy_confirmed, terms_accepted,
			pet_name, pet_species, pet_breed, pet_birth_date, pet_weight_raw,
			pet_breed5, pet_breed20, pet_poisoning, pet_blood_checkup,
			second_pet_name, second_pet_species, second_pet_breed, second_pet_birth_date, second_pet_weight_raw,
			second_pet_breed5, second_pet_breed20, second_pet_poisoning, second_pet_blood_checkup,
			premium_primary_annual, premium_primary_semester, premium_primary_quarter,
			premium_secondary_annual, premium_secondary_semester, premium_secondary_quarter,
			contract_generated, contract_pdf_path
		) VALUES (
			$1, $2, $3,
			$4, $5, $6, $7, $8, $9, $10,
			$11, $12, $13, $14, $15,
			$16, $17,
			$18, $19, $20, $21, $22,
			$23, $24, $25, $26,
			$27, $28, $29, $30, $31,
			$32, $33, $34, $35,
			$36::numeric, $37::numeric, $38::numeric,
			$39::numeric, $40::numeric, $41::numeric,
			$42, $43
		)
		RETURNING created_at, updated_at`

	second := secondPetArgs(app.SecondPet)
	primary := premiumArgs(app.PrimaryPremium)
	secondary := premiumArgs(app.SecondaryPremium)

	row := s.Pool.QueryRow(ctx, q,
		app.ID, app.ApplicationNumber, app.ContractNumber,
		app.FirstName, app.LastName, app.Email, app.Phone, app.Street, app.PostalCode, app.City,
		string(app.Program), string(app.Frequency), app.PaymentMethod, app.IBAN, app.DesiredStart,
		app.HealthyConfirmed, app.TermsAccepted,
		app.Pet.Name, string(app.Pet.Species), app.Pet.Breed, app.Pet.BirthDate, app.Pet.WeightRaw,
		app.Pet.Breed5Surcharge, app.Pet.Breed20Surcharge, app.Pet.PoisoningCoverage, app.Pet.BloodCheckup,
		second.name, second.species, second.breed, second.birthDate, second.weightRaw,
		second.breed5, second.breed20, second.poisoning, second.bloodCheckup,
		primary[0], primary[1], primary[2],
		secondary[0], secondary[1], secondary[2],
		app.ContractGenerated, app.ContractPDFPath,
	)
	if err := row.Scan(&app.CreatedAt, &app.UpdatedAt); err != nil {
		return fmt.Errorf("insert application: %w", err)
	}
	return nil
}

// Get fetches an application by id.
func (s *Store) Get(ctx context.Context, id uuid.UUID) (*Application, error) {
	q := `SELECT ` + applicationColumns + ` FROM applications WHERE id = $1`
	row := s.Pool.QueryRow(ctx, q, id)
	app, err := scanApplication(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get application: %w", err)
	}
	return app, nil
}

// Update rewrites the mutable fields of an application.
func (s *Store) Update(ctx context.Context, app *Application) error {
	const q = `
		UPDATE applications SET
			first_name = $2, last_name = $3, email = $4, phone = $5,
			street = $6, postal_code = $7, city = $8,
			program = $9, billing_frequency = $10, payment_method = $11, iban = $12, desired_start = $13,
			healthy_confirmed = $14, terms_accepted = $15,
			pet_name = $16, pet_species = $17, pet_breed = $18, pet_birth_date = $19, pet_weight_raw = $20,
			pet_breed5 = $21, pet_breed20 = $22, pet_poisoning = $23, pet_blood_checkup = $24,
			second_pet_name = $25, second_pet_species = $26, second_pet_breed = $27,
			second_pet_birth_date = $28, second_pet_weight_raw = $29,
			second_pet_breed5 = $30, second_pet_breed20 = $31, second_pet_poisoning = $32, second_pet_blood_checkup = $33,
			updated_at = now()
		WHERE id = $1
		RETURNING updated_at`

	second := secondPetArgs(app.SecondPet)
	row := s.Pool.QueryRow(ctx, q,
		app.ID,
		app.FirstName, app.LastName, app.Email, app.Phone,
		app.Street, app.PostalCode, app.City,
		string(app.Program), string(app.Frequency), app.PaymentMethod, app.IBAN, app.DesiredStart,
		app.HealthyConfirmed, app.TermsAccepted,
		app.Pet.Name, string(app.Pet.Species), app.Pet.Breed, app.Pet.BirthDate, app.Pet.WeightRaw,
		app.Pet.Breed5Surcharge, app.Pet.Breed20Surcharge, app.Pet.PoisoningCoverage, app.Pet.BloodCheckup,
		second.name, second.species, second.breed,
		second.birthDate, second.weightRaw,
		second.breed5, second.breed20, second.poisoning, second.bloodCheckup,
	)
	if err := row.Scan(&app.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("update application: %w", err)
	}
	return nil
}

// UpdatePremiums persists the canonical triple for one pet slot.
func (s *Store) UpdatePremiums(ctx context.Context, id uuid.UUID, slot rating.PetSlot, p StoredPremium) error {
	q := `
		UPDATE applications SET
			premium_primary_annual = $2::numeric,
			premium_primary_semester = $3::numeric,
			premium_primary_quarter = $4::numeric,
			updated_at = now()
		WHERE id = $1`
	if slot == rating.SlotSecondary {
		q = `
		UPDATE applications SET
			premium_secondary_annual = $2::numeric,
			premium_secondary_semester = $3::numeric,
			premium_secondary_quarter = $4::numeric,
			updated_at = now()
		WHERE id = $1`
	}
	tag, err := s.Pool.Exec(ctx, q, id, p.Annual.String(), p.Semester.String(), p.Quarter.String())
	if err != nil {
		return fmt.Errorf("update premiums: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// MarkContractGenerated flips the contract flag and records the document path.
func (s *Store) MarkContractGenerated(ctx context.Context, id uuid.UUID, pdfPath string) error {
	const q = `
		UPDATE applications SET
			contract_generated = TRUE,
			contract_pdf_path = $2,
			updated_at = now()
		WHERE id = $1`
	tag, err := s.Pool.Exec(ctx, q, id, pdfPath)
	if err != nil {
		return fmt.Errorf("mark contract generated: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// InsertDomainEvent persists a domain event row. Satisfies events.EventStore.
func (s *Store) InsertDomainEvent(ctx context.Context, topic string, aggregateID uuid.UUID, payload []byte) (events.DomainEvent, error) {
	const q = `
		INSERT INTO domain_events (id, topic, aggregate_id, payload)
		VALUES ($1, $2, $3, $4)
		RETURNING occurred_at`
	ev := events.DomainEvent{
		ID:          uuid.New(),
		Topic:       topic,
		AggregateID: aggregateID,
		Payload:     payload,
	}
	if err := s.Pool.QueryRow(ctx, q, ev.ID, ev.Topic, ev.AggregateID, ev.Payload).Scan(&ev.OccurredAt); err != nil {
		return events.DomainEvent{}, fmt.Errorf("insert domain event: %w", err)
	}
	return ev, nil
}

type secondPetRow struct {
	name         *string
	species      *string
	breed        *string
	birthDate    *time.Time
	weightRaw    *string
	breed5       *bool
	breed20      *bool
	poisoning    *bool
	bloodCheckup *bool
}

func secondPetArgs(pet *Pet) secondPetRow {
	if pet == nil {
		return secondPetRow{}
	}
	species := string(pet.Species)
	return secondPetRow{
		name:         &pet.Name,
		species:      &species,
		breed:        &pet.Breed,
		birthDate:    pet.BirthDate,
		weightRaw:    &pet.WeightRaw,
		breed5:       &pet.Breed5Surcharge,
		breed20:      &pet.Breed20Surcharge,
		poisoning:    &pet.PoisoningCoverage,
		bloodCheckup: &pet.BloodCheckup,
	}
}

func premiumArgs(p *StoredPremium) [3]*string {
	if p == nil {
		return [3]*string{}
	}
	annual := p.Annual.String()
	semester := p.Semester.String()
	quarter := p.Quarter.String()
	return [3]*string{&annual, &semester, &quarter}
}

func scanApplication(row pgx.Row) (*Application, error) {
	var (
		app            Application
		program        string
		frequency      string
		petSpecies     string
		second         secondPetRow
		primaryAnnual  *string
		primarySem     *string
		primaryQuarter *string
		secAnnual      *string
		secSem         *string
		secQuarter     *string
	)
	err := row.Scan(
		&app.ID, &app.ApplicationNumber, &app.ContractNumber,
		&app.FirstName, &app.LastName, &app.Email, &app.Phone, &app.Street, &app.PostalCode, &app.City,
		&program, &frequency, &app.PaymentMethod, &app.IBAN, &app.DesiredStart,
		&app.HealthyConfirmed, &app.TermsAccepted,
		&app.Pet.Name, &petSpecies, &app.Pet.Breed, &app.Pet.BirthDate, &app.Pet.WeightRaw,
		&app.Pet.Breed5Surcharge, &app.Pet.Breed20Surcharge, &app.Pet.PoisoningCoverage, &app.Pet.BloodCheckup,
		&second.name, &second.species, &second.breed, &second.birthDate, &second.weightRaw,
		&second.breed5, &second.breed20, &second.poisoning, &second.bloodCheckup,
		&primaryAnnual, &primarySem, &primaryQuarter,
		&secAnnual, &secSem, &secQuarter,
		&app.ContractGenerated, &app.ContractPDFPath,
		&app.CreatedAt, &app.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	app.Program = rating.ProgramTier(program)
	app.Frequency = rating.BillingFrequency(frequency)
	app.Pet.Species = rating.Species(petSpecies)
	if second.name != nil && *second.name != "" {
		pet := Pet{
			Name:      *second.name,
			Breed:     deref(second.breed),
			BirthDate: second.birthDate,
			WeightRaw: deref(second.weightRaw),
		}
		if second.species != nil {
			pet.Species = rating.Species(*second.species)
		}
		pet.Breed5Surcharge = derefBool(second.breed5)
		pet.Breed20Surcharge = derefBool(second.breed20)
		pet.PoisoningCoverage = derefBool(second.poisoning)
		pet.BloodCheckup = derefBool(second.bloodCheckup)
		app.SecondPet = &pet
	}
	primary, err := parsePremium(primaryAnnual, primarySem, primaryQuarter)
	if err != nil {
		return nil, err
	}
	app.PrimaryPremium = primary
	secondary, err := parsePremium(secAnnual, secSem, secQuarter)
	if err != nil {
		return nil, err
	}
	app.SecondaryPremium = secondary
	return &app, nil
}

func parsePremium(annual, semester, quarter *string) (*StoredPremium, error) {
	if annual == nil || semester == nil || quarter == nil {
		return nil, nil
	}
	a, err := money.Parse(*annual)
	if err != nil {
		return nil, fmt.Errorf("parse stored premium: %w", err)
	}
	s, err := money.Parse(*semester)
	if err != nil {
		return nil, fmt.Errorf("parse stored premium: %w", err)
	}
	q, err := money.Parse(*quarter)
	if err != nil {
		return nil, fmt.Errorf("parse stored premium: %w", err)
	}
	return &StoredPremium{Annual: a, Semester: s, Quarter: q}, nil
}

func deref(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func derefBool(v *bool) bool {
	if v == nil {
		return false
	}
	return *v
}
