package domain

import "time"

// Pet is the single persisted entity of the catalogue. A pet with no death
// date is living; a set death date marks it remembered. The classification
// is derived, never stored.
type Pet struct {
	ID        int
	Name      string `validate:"required,max=255"`
	Species   string `validate:"required,max=255"`
	BirthDate Date
	DeathDate *Date
	Note      string `validate:"max=1000"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (p *Pet) Living() bool {
	return p.DeathDate == nil
}

func (p *Pet) ToMap() map[string]interface{} {
	var death any
	if p.DeathDate != nil {
		death = p.DeathDate.String()
	}

	return map[string]interface{}{
		"name":       p.Name,
		"species":    p.Species,
		"birth_date": p.BirthDate.String(),
		"death_date": death,
		"note":       p.Note,
		"updated_at": p.UpdatedAt,
	}
}

// ValidateDates enforces the write-time invariants against the given
// reference day. Dates are never re-validated after the write.
func (p *Pet) ValidateDates(today Date) FieldErrors {
	errs := FieldErrors{}

	if p.BirthDate.IsZero() {
		errs.Add("birth_date", "The birth date field is required.")
		return errs
	}

	if p.BirthDate.AfterDate(today) {
		errs.Add("birth_date", "The birth date field must be a date before or equal to today.")
	}

	if p.DeathDate != nil {
		if !p.DeathDate.AfterDate(p.BirthDate) {
			errs.Add("death_date", "The death date field must be a date after birth date.")
		}
		if p.DeathDate.AfterDate(today) {
			errs.Add("death_date", "The death date field must be a date before or equal to today.")
		}
	}

	return errs
}

type SpeciesCount struct {
	Species string `json:"species"`
	Count   int    `json:"count"`
}

// Statistics are aggregate counts computed on demand from the current table
// state; total is always the sum of living and deceased.
type Statistics struct {
	TotalPets        int
	LivingPets       int
	DeceasedPets     int
	SpeciesCount     int
	SpeciesBreakdown []SpeciesCount
}
