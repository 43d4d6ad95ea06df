package factory

import (
	"time"

	fab "github.com/Goldziher/fabricator"

	"petstore/internal/core/domain"
)

// NewPet builds a pet record with sensible defaults; pass a map to override
// individual fields. Build only honors a single override map, so the custom
// data is merged into the defaults before the call.
func NewPet(customData ...map[string]any) domain.Pet {
	now := time.Now()

	defaults := map[string]any{
		"ID":        0,
		"BirthDate": domain.DateOf(time.Date(2020, 1, 15, 0, 0, 0, 0, time.UTC)),
		"DeathDate": (*domain.Date)(nil),
		"Note":      "",
		"CreatedAt": now,
		"UpdatedAt": now,
	}

	for _, overrides := range customData {
		for field, value := range overrides {
			defaults[field] = value
		}
	}

	instance := fab.New(domain.Pet{})

	return instance.Build(defaults)
}
