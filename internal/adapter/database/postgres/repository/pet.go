package repository

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"petstore/internal/adapter/database/postgres"
	"petstore/internal/core/domain"
	"petstore/internal/core/port"
	tel "petstore/internal/core/telemetry"
)

var petColumns = []string{"id", "name", "species", "birth_date", "death_date", "note", "created_at", "updated_at"}

type PetRepository struct {
	db        *postgres.DB
	telemetry port.Telemetry
}

func NewPetRepository(db *postgres.DB, telemetry port.Telemetry) port.PetRepository {
	if telemetry == nil {
		telemetry = tel.NewNoOpProbe()
	}

	return &PetRepository{
		db:        db,
		telemetry: telemetry,
	}
}

func scanPet(rows pgx.Rows) (domain.Pet, error) {
	var pet domain.Pet
	var birth time.Time
	var death *time.Time
	var note *string

	err := rows.Scan(&pet.ID, &pet.Name, &pet.Species, &birth, &death, &note, &pet.CreatedAt, &pet.UpdatedAt)
	if err != nil {
		return domain.Pet{}, err
	}

	pet.BirthDate = domain.DateOf(birth)
	if death != nil {
		d := domain.DateOf(*death)
		pet.DeathDate = &d
	}
	if note != nil {
		pet.Note = *note
	}

	return pet, nil
}

func (pr *PetRepository) List(ctx context.Context) ([]domain.Pet, error) {
	ctx, span := pr.telemetry.StartRepositorySpan(ctx, "List", "pet", map[string]interface{}{
		"db.system": "postgresql",
		"db.table":  "pets",
	})
	defer span.End()

	startTime := time.Now()

	query, args, err := pr.db.QueryBuilder.Select(petColumns...).
		From("pets").
		OrderBy("created_at DESC", "id DESC").
		ToSql()

	if err != nil {
		span.SetStatus("error", err.Error())
		pr.telemetry.RecordRepositoryOperation(ctx, "List", "pet", time.Since(startTime), err)
		return nil, err
	}

	pr.telemetry.RecordRepositoryQuery(ctx, "List", "pet", query, args)

	rows, err := pr.db.Query(ctx, query, args...)
	if err != nil {
		span.SetStatus("error", err.Error())
		span.RecordError(err)
		pr.telemetry.RecordRepositoryOperation(ctx, "List", "pet", time.Since(startTime), err)
		return nil, err
	}
	defer rows.Close()

	pets := make([]domain.Pet, 0)
	for rows.Next() {
		pet, err := scanPet(rows)
		if err != nil {
			span.SetStatus("error", err.Error())
			pr.telemetry.RecordRepositoryOperation(ctx, "List", "pet", time.Since(startTime), err)
			return nil, err
		}
		pets = append(pets, pet)
	}

	if err := rows.Err(); err != nil {
		span.SetStatus("error", err.Error())
		pr.telemetry.RecordRepositoryOperation(ctx, "List", "pet", time.Since(startTime), err)
		return nil, err
	}

	span.SetAttributes(map[string]interface{}{"db.rows_returned": len(pets)})
	span.SetStatus("ok", "")
	pr.telemetry.RecordRepositoryOperation(ctx, "List", "pet", time.Since(startTime), nil)

	return pets, nil
}

func (pr *PetRepository) GetByID(ctx context.Context, id int) (domain.Pet, error) {
	query, args, err := pr.db.QueryBuilder.Select(petColumns...).
		From("pets").
		Where(sq.Eq{"id": id}).
		Limit(1).
		ToSql()

	if err != nil {
		return domain.Pet{}, err
	}

	rows, err := pr.db.Query(ctx, query, args...)
	if err != nil {
		return domain.Pet{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return domain.Pet{}, err
		}
		return domain.Pet{}, domain.ErrPetNotFound
	}

	return scanPet(rows)
}

func (pr *PetRepository) Create(ctx context.Context, pet domain.Pet) (domain.Pet, error) {
	ctx, span := pr.telemetry.StartRepositorySpan(ctx, "Create", "pet", map[string]interface{}{
		"db.system":    "postgresql",
		"db.table":     "pets",
		"db.operation": "INSERT",
		"pet.name":     pet.Name,
	})
	defer span.End()

	startTime := time.Now()

	var death any
	if pet.DeathDate != nil {
		death = pet.DeathDate.String()
	}

	query, args, err := pr.db.QueryBuilder.Insert("pets").
		Columns("name", "species", "birth_date", "death_date", "note", "created_at", "updated_at").
		Values(pet.Name, pet.Species, pet.BirthDate.String(), death, pet.Note, pet.CreatedAt, pet.UpdatedAt).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		span.SetStatus("error", err.Error())
		pr.telemetry.RecordRepositoryOperation(ctx, "Create", "pet", time.Since(startTime), err)
		return domain.Pet{}, err
	}

	pr.telemetry.RecordRepositoryQuery(ctx, "Create", "pet", query, args)

	var id int
	err = pr.db.QueryRow(ctx, query, args...).Scan(&id)
	if err != nil {
		span.SetStatus("error", err.Error())
		span.RecordError(err)
		pr.telemetry.RecordRepositoryOperation(ctx, "Create", "pet", time.Since(startTime), err)
		return domain.Pet{}, err
	}

	saved, err := pr.GetByID(ctx, id)
	if err != nil {
		span.SetStatus("error", err.Error())
		pr.telemetry.RecordRepositoryOperation(ctx, "Create", "pet", time.Since(startTime), err)
		return domain.Pet{}, err
	}

	span.SetAttributes(map[string]interface{}{"pet.id": saved.ID})
	span.SetStatus("ok", "")
	pr.telemetry.RecordRepositoryOperation(ctx, "Create", "pet", time.Since(startTime), nil)

	return saved, nil
}

func (pr *PetRepository) Update(ctx context.Context, pet domain.Pet) (domain.Pet, error) {
	ctx, span := pr.telemetry.StartRepositorySpan(ctx, "Update", "pet", map[string]interface{}{
		"db.system":    "postgresql",
		"db.table":     "pets",
		"db.operation": "UPDATE",
		"pet.id":       pet.ID,
	})
	defer span.End()

	startTime := time.Now()

	query, args, err := pr.db.QueryBuilder.Update("pets").
		SetMap(pet.ToMap()).
		Where(sq.Eq{"id": pet.ID}).
		ToSql()

	if err != nil {
		span.SetStatus("error", err.Error())
		pr.telemetry.RecordRepositoryOperation(ctx, "Update", "pet", time.Since(startTime), err)
		return domain.Pet{}, err
	}

	pr.telemetry.RecordRepositoryQuery(ctx, "Update", "pet", query, args)

	tag, err := pr.db.Exec(ctx, query, args...)
	if err != nil {
		span.SetStatus("error", err.Error())
		span.RecordError(err)
		pr.telemetry.RecordRepositoryOperation(ctx, "Update", "pet", time.Since(startTime), err)
		return domain.Pet{}, err
	}

	if tag.RowsAffected() == 0 {
		span.SetStatus("error", "no rows updated")
		pr.telemetry.RecordRepositoryOperation(ctx, "Update", "pet", time.Since(startTime), domain.ErrPetNotFound)
		return domain.Pet{}, domain.ErrPetNotFound
	}

	updated, err := pr.GetByID(ctx, pet.ID)
	if err != nil {
		span.SetStatus("error", err.Error())
		pr.telemetry.RecordRepositoryOperation(ctx, "Update", "pet", time.Since(startTime), err)
		return domain.Pet{}, err
	}

	span.SetStatus("ok", "")
	pr.telemetry.RecordRepositoryOperation(ctx, "Update", "pet", time.Since(startTime), nil)

	return updated, nil
}

func (pr *PetRepository) Delete(ctx context.Context, id int) error {
	ctx, span := pr.telemetry.StartRepositorySpan(ctx, "Delete", "pet", map[string]interface{}{
		"db.system":    "postgresql",
		"db.table":     "pets",
		"db.operation": "DELETE",
		"pet.id":       id,
	})
	defer span.End()

	startTime := time.Now()

	query, args, err := pr.db.QueryBuilder.Delete("pets").
		Where(sq.Eq{"id": id}).
		ToSql()

	if err != nil {
		span.SetStatus("error", err.Error())
		pr.telemetry.RecordRepositoryOperation(ctx, "Delete", "pet", time.Since(startTime), err)
		return err
	}

	tag, err := pr.db.Exec(ctx, query, args...)
	if err != nil {
		span.SetStatus("error", err.Error())
		span.RecordError(err)
		pr.telemetry.RecordRepositoryOperation(ctx, "Delete", "pet", time.Since(startTime), err)
		return err
	}

	if tag.RowsAffected() == 0 {
		span.SetStatus("error", "no rows deleted")
		pr.telemetry.RecordRepositoryOperation(ctx, "Delete", "pet", time.Since(startTime), domain.ErrPetNotFound)
		return domain.ErrPetNotFound
	}

	span.SetStatus("ok", "")
	pr.telemetry.RecordRepositoryOperation(ctx, "Delete", "pet", time.Since(startTime), nil)

	return nil
}

func (pr *PetRepository) Statistics(ctx context.Context) (domain.Statistics, error) {
	ctx, span := pr.telemetry.StartRepositorySpan(ctx, "Statistics", "pet", map[string]interface{}{
		"db.system": "postgresql",
		"db.table":  "pets",
	})
	defer span.End()

	startTime := time.Now()

	totalsQuery, totalsArgs, err := pr.db.QueryBuilder.
		Select("COUNT(*)", "COUNT(death_date)").
		From("pets").
		ToSql()

	if err != nil {
		span.SetStatus("error", err.Error())
		pr.telemetry.RecordRepositoryOperation(ctx, "Statistics", "pet", time.Since(startTime), err)
		return domain.Statistics{}, err
	}

	var stats domain.Statistics
	err = pr.db.QueryRow(ctx, totalsQuery, totalsArgs...).Scan(&stats.TotalPets, &stats.DeceasedPets)
	if err != nil {
		span.SetStatus("error", err.Error())
		span.RecordError(err)
		pr.telemetry.RecordRepositoryOperation(ctx, "Statistics", "pet", time.Since(startTime), err)
		return domain.Statistics{}, err
	}

	stats.LivingPets = stats.TotalPets - stats.DeceasedPets

	breakdownQuery, breakdownArgs, err := pr.db.QueryBuilder.
		Select("species", "COUNT(*) AS count").
		From("pets").
		GroupBy("species").
		OrderBy("count DESC", "species ASC").
		ToSql()

	if err != nil {
		span.SetStatus("error", err.Error())
		pr.telemetry.RecordRepositoryOperation(ctx, "Statistics", "pet", time.Since(startTime), err)
		return domain.Statistics{}, err
	}

	rows, err := pr.db.Query(ctx, breakdownQuery, breakdownArgs...)
	if err != nil {
		span.SetStatus("error", err.Error())
		span.RecordError(err)
		pr.telemetry.RecordRepositoryOperation(ctx, "Statistics", "pet", time.Since(startTime), err)
		return domain.Statistics{}, err
	}
	defer rows.Close()

	breakdown := make([]domain.SpeciesCount, 0)
	for rows.Next() {
		var entry domain.SpeciesCount
		if err := rows.Scan(&entry.Species, &entry.Count); err != nil {
			span.SetStatus("error", err.Error())
			pr.telemetry.RecordRepositoryOperation(ctx, "Statistics", "pet", time.Since(startTime), err)
			return domain.Statistics{}, err
		}
		breakdown = append(breakdown, entry)
	}

	if err := rows.Err(); err != nil {
		span.SetStatus("error", err.Error())
		pr.telemetry.RecordRepositoryOperation(ctx, "Statistics", "pet", time.Since(startTime), err)
		return domain.Statistics{}, err
	}

	stats.SpeciesBreakdown = breakdown
	stats.SpeciesCount = len(breakdown)

	span.SetAttributes(map[string]interface{}{
		"stats.total":   stats.TotalPets,
		"stats.species": stats.SpeciesCount,
	})
	span.SetStatus("ok", "")
	pr.telemetry.RecordRepositoryOperation(ctx, "Statistics", "pet", time.Since(startTime), nil)

	return stats, nil
}
