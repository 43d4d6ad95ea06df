package request

// PetRequest is the PetFormData payload shared by create and update; update
// carries the full field set, there is no partial form.
type PetRequest struct {
	Name      string  `json:"name" validate:"required,max=255"`
	Species   string  `json:"species" validate:"required,max=255"`
	BirthDate string  `json:"birth_date" validate:"required"`
	DeathDate *string `json:"death_date"`
	Note      string  `json:"note" validate:"max=1000"`
}
