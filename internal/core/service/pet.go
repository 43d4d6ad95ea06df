package service

import (
	"context"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"petstore/internal/core/domain"
	"petstore/internal/core/port"
	tel "petstore/internal/core/telemetry"
)

type PetService struct {
	repo      port.PetRepository
	telemetry port.Telemetry
}

func NewPetService(repo port.PetRepository, telemetry port.Telemetry) *PetService {
	if telemetry == nil {
		telemetry = tel.NewNoOpProbe()
	}

	return &PetService{
		repo:      repo,
		telemetry: telemetry,
	}
}

func (s *PetService) List(ctx context.Context) ([]domain.Pet, error) {
	ctx, span := s.telemetry.StartServiceSpan(ctx, "pet", "List", nil)
	defer span.End()

	start := time.Now()

	pets, err := s.repo.List(ctx)
	s.telemetry.RecordServiceOperation(ctx, "pet", "List", time.Since(start), err)

	if err != nil {
		span.SetStatus("error", err.Error())
		span.RecordError(err)
		return nil, err
	}

	span.SetAttributes(map[string]interface{}{"pet.count": len(pets)})
	span.SetStatus("ok", "")

	return pets, nil
}

func (s *PetService) Get(ctx context.Context, id int) (domain.Pet, error) {
	ctx, span := s.telemetry.StartServiceSpan(ctx, "pet", "Get", map[string]interface{}{
		"pet.id": id,
	})
	defer span.End()

	start := time.Now()

	pet, err := s.repo.GetByID(ctx, id)
	s.telemetry.RecordServiceOperation(ctx, "pet", "Get", time.Since(start), err)

	if err != nil {
		span.SetStatus("error", err.Error())
		return domain.Pet{}, err
	}

	span.SetStatus("ok", "")
	return pet, nil
}

func (s *PetService) Create(ctx context.Context, pet domain.Pet) (domain.Pet, error) {
	ctx, span := s.telemetry.StartServiceSpan(ctx, "pet", "Create", map[string]interface{}{
		"pet.name":    pet.Name,
		"pet.species": pet.Species,
	})
	defer span.End()

	start := time.Now()

	if errs := validatePet(&pet); errs.HasErrors() {
		err := domain.NewValidationError(errs)
		span.SetStatus("error", err.Error())
		s.telemetry.RecordServiceOperation(ctx, "pet", "Create", time.Since(start), err)
		return domain.Pet{}, err
	}

	now := time.Now()
	pet.CreatedAt = now
	pet.UpdatedAt = now

	created, err := s.repo.Create(ctx, pet)
	s.telemetry.RecordServiceOperation(ctx, "pet", "Create", time.Since(start), err)

	if err != nil {
		span.SetStatus("error", err.Error())
		span.RecordError(err)
		return domain.Pet{}, err
	}

	s.telemetry.RecordBusinessEvent(ctx, "created", "pet", strconv.Itoa(created.ID), map[string]interface{}{
		"name":    created.Name,
		"species": created.Species,
		"living":  created.Living(),
	})

	span.SetStatus("ok", "")
	return created, nil
}

// Update replaces every mutable field of the record; it validates exactly
// like Create and either persists the full field set or changes nothing.
func (s *PetService) Update(ctx context.Context, pet domain.Pet) (domain.Pet, error) {
	ctx, span := s.telemetry.StartServiceSpan(ctx, "pet", "Update", map[string]interface{}{
		"pet.id": pet.ID,
	})
	defer span.End()

	start := time.Now()

	existing, err := s.repo.GetByID(ctx, pet.ID)
	if err != nil {
		span.SetStatus("error", err.Error())
		s.telemetry.RecordServiceOperation(ctx, "pet", "Update", time.Since(start), err)
		return domain.Pet{}, err
	}

	if errs := validatePet(&pet); errs.HasErrors() {
		verr := domain.NewValidationError(errs)
		span.SetStatus("error", verr.Error())
		s.telemetry.RecordServiceOperation(ctx, "pet", "Update", time.Since(start), verr)
		return domain.Pet{}, verr
	}

	pet.CreatedAt = existing.CreatedAt
	pet.UpdatedAt = time.Now()

	updated, err := s.repo.Update(ctx, pet)
	s.telemetry.RecordServiceOperation(ctx, "pet", "Update", time.Since(start), err)

	if err != nil {
		span.SetStatus("error", err.Error())
		span.RecordError(err)
		return domain.Pet{}, err
	}

	s.telemetry.RecordBusinessEvent(ctx, "updated", "pet", strconv.Itoa(updated.ID), map[string]interface{}{
		"name":   updated.Name,
		"living": updated.Living(),
	})

	span.SetStatus("ok", "")
	return updated, nil
}

// Delete removes the record permanently and returns the name it had, so the
// confirmation message can reference the pet after the row is gone.
func (s *PetService) Delete(ctx context.Context, id int) (string, error) {
	ctx, span := s.telemetry.StartServiceSpan(ctx, "pet", "Delete", map[string]interface{}{
		"pet.id": id,
	})
	defer span.End()

	start := time.Now()

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		span.SetStatus("error", err.Error())
		s.telemetry.RecordServiceOperation(ctx, "pet", "Delete", time.Since(start), err)
		return "", err
	}

	err = s.repo.Delete(ctx, id)
	s.telemetry.RecordServiceOperation(ctx, "pet", "Delete", time.Since(start), err)

	if err != nil {
		span.SetStatus("error", err.Error())
		return "", err
	}

	s.telemetry.RecordBusinessEvent(ctx, "deleted", "pet", strconv.Itoa(id), map[string]interface{}{
		"name": existing.Name,
	})

	span.SetStatus("ok", "")
	return existing.Name, nil
}

func (s *PetService) Statistics(ctx context.Context) (domain.Statistics, error) {
	ctx, span := s.telemetry.StartServiceSpan(ctx, "pet", "Statistics", nil)
	defer span.End()

	start := time.Now()

	stats, err := s.repo.Statistics(ctx)
	s.telemetry.RecordServiceOperation(ctx, "pet", "Statistics", time.Since(start), err)

	if err != nil {
		span.SetStatus("error", err.Error())
		span.RecordError(err)
		return domain.Statistics{}, err
	}

	span.SetAttributes(map[string]interface{}{
		"stats.total":   stats.TotalPets,
		"stats.species": stats.SpeciesCount,
	})
	span.SetStatus("ok", "")

	return stats, nil
}

// validatePet applies every write invariant: presence, length and the date
// rules. The service is the authoritative validator; the HTTP layer only
// pre-checks request shape.
func validatePet(pet *domain.Pet) domain.FieldErrors {
	errs := domain.FieldErrors{}

	if strings.TrimSpace(pet.Name) == "" {
		errs.Add("name", "The name field is required.")
	} else if utf8.RuneCountInString(pet.Name) > 255 {
		errs.Add("name", "The name field must not be greater than 255 characters.")
	}

	if strings.TrimSpace(pet.Species) == "" {
		errs.Add("species", "The species field is required.")
	} else if utf8.RuneCountInString(pet.Species) > 255 {
		errs.Add("species", "The species field must not be greater than 255 characters.")
	}

	if utf8.RuneCountInString(pet.Note) > 1000 {
		errs.Add("note", "The note field must not be greater than 1000 characters.")
	}

	for field, messages := range pet.ValidateDates(domain.Today()) {
		errs[field] = append(errs[field], messages...)
	}

	return errs
}
