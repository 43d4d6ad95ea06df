package client

import "time"

const dateLayout = "2006-01-02"

// ValidateForm mirrors the server's write rules so obviously invalid input
// never costs a round trip. Stages short-circuit: required fields first, then
// the birth date check, then the death date checks. Dates are ISO calendar
// strings, so ordering comparisons are plain string comparisons.
func ValidateForm(form PetFormData, today string) map[string][]string {
	required := map[string][]string{}

	if form.Name == "" {
		required["name"] = append(required["name"], "The name field is required.")
	}
	if form.Species == "" {
		required["species"] = append(required["species"], "The species field is required.")
	}
	if form.BirthDate == "" {
		required["birth_date"] = append(required["birth_date"], "The birth date field is required.")
	}

	if len(required) > 0 {
		return required
	}

	if form.BirthDate > today {
		return map[string][]string{
			"birth_date": {"The birth date field must be a date before or equal to today."},
		}
	}

	if form.DeathDate != nil && *form.DeathDate != "" {
		if *form.DeathDate <= form.BirthDate {
			return map[string][]string{
				"death_date": {"The death date field must be a date after birth date."},
			}
		}
		if *form.DeathDate > today {
			return map[string][]string{
				"death_date": {"The death date field must be a date before or equal to today."},
			}
		}
	}

	return nil
}

// Validate runs ValidateForm against the local calendar date.
func Validate(form PetFormData) map[string][]string {
	return ValidateForm(form, time.Now().Format(dateLayout))
}
