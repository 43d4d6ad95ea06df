package response

import (
	"time"

	"petstore/internal/core/domain"
)

// Envelope is the uniform response wrapper every endpoint returns.
type Envelope struct {
	Success bool                `json:"success"`
	Data    any                 `json:"data,omitempty"`
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

type PetResponse struct {
	ID        int          `json:"id"`
	Name      string       `json:"name"`
	Species   string       `json:"species"`
	BirthDate domain.Date  `json:"birth_date"`
	DeathDate *domain.Date `json:"death_date"`
	Note      string       `json:"note"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

func NewPetResponse(pet domain.Pet) PetResponse {
	return PetResponse{
		ID:        pet.ID,
		Name:      pet.Name,
		Species:   pet.Species,
		BirthDate: pet.BirthDate,
		DeathDate: pet.DeathDate,
		Note:      pet.Note,
		CreatedAt: pet.CreatedAt,
		UpdatedAt: pet.UpdatedAt,
	}
}

func NewPetListResponse(pets []domain.Pet) []PetResponse {
	out := make([]PetResponse, 0, len(pets))
	for _, pet := range pets {
		out = append(out, NewPetResponse(pet))
	}
	return out
}

type StatisticsResponse struct {
	TotalPets        int                   `json:"total_pets"`
	LivingPets       int                   `json:"living_pets"`
	DeceasedPets     int                   `json:"deceased_pets"`
	SpeciesCount     int                   `json:"species_count"`
	SpeciesBreakdown []domain.SpeciesCount `json:"species_breakdown"`
}

func NewStatisticsResponse(stats domain.Statistics) StatisticsResponse {
	breakdown := stats.SpeciesBreakdown
	if breakdown == nil {
		breakdown = []domain.SpeciesCount{}
	}

	return StatisticsResponse{
		TotalPets:        stats.TotalPets,
		LivingPets:       stats.LivingPets,
		DeceasedPets:     stats.DeceasedPets,
		SpeciesCount:     stats.SpeciesCount,
		SpeciesBreakdown: breakdown,
	}
}

type HealthResponse struct {
	Success   bool      `json:"success"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}
