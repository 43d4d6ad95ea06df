package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	. "petstore/internal/adapter/http/helper"
	. "petstore/internal/adapter/http/validation"
	"petstore/internal/core/domain"
	"petstore/internal/core/model/request"
	"petstore/internal/core/model/response"
	"petstore/internal/core/port"
	"petstore/pkg/config"
	. "petstore/pkg/tracing"
)

type PetHandler struct {
	svc    port.PetService
	Logger *config.AppLogger
}

func NewPetHandler(svc port.PetService, logger *config.AppLogger) *PetHandler {
	return &PetHandler{
		svc:    svc,
		Logger: logger,
	}
}

// petID parses the path parameter. Anything that is not an integer is
// treated as a record that does not exist.
func petID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return 0, false
	}
	return id, true
}

// buildPet converts the request body into a domain record, turning malformed
// dates into field errors instead of passing them downstream.
func buildPet(params request.PetRequest) (domain.Pet, domain.FieldErrors) {
	errs := domain.FieldErrors{}

	pet := domain.Pet{
		Name:    params.Name,
		Species: params.Species,
		Note:    params.Note,
	}

	if params.BirthDate != "" {
		birth, err := domain.ParseDate(params.BirthDate)
		if err != nil {
			errs.Add("birth_date", "The birth date field must be a valid date.")
		} else {
			pet.BirthDate = birth
		}
	}

	if params.DeathDate != nil && *params.DeathDate != "" {
		death, err := domain.ParseDate(*params.DeathDate)
		if err != nil {
			errs.Add("death_date", "The death date field must be a valid date.")
		} else {
			pet.DeathDate = &death
		}
	}

	return pet, errs
}

func (h *PetHandler) sendError(c *gin.Context, err error, fallback string) {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		SendValidationError(c, verr.Fields)
		return
	}

	if errors.Is(err, domain.ErrPetNotFound) {
		SendNotFoundError(c, "Pet not found")
		return
	}

	if h.Logger != nil {
		h.Logger.Logger.Ctx(c.Request.Context()).Error(fallback, zap.Error(err))
	}

	SendInternalError(c, fallback)
}

func (h *PetHandler) ListPets(c *gin.Context) {
	ctx, span := CreateChildSpan(c.Request.Context(), "handler.pet.ListPets", []attribute.KeyValue{
		attribute.String("handler.operation", "ListPets"),
		attribute.String("handler.method", c.Request.Method),
		attribute.String("handler.path", c.FullPath()),
	})

	defer span.End()

	pets, err := h.svc.List(ctx)

	if err != nil {
		AddSpanError(span, err)

		if h.Logger != nil {
			h.Logger.Logger.Ctx(ctx).Error("Failed to list pets", zap.Error(err))
		}

		SendInternalError(c, "Error retrieving pets")
		return
	}

	span.SetAttributes(
		attribute.Int("pet.count", len(pets)),
		attribute.Int("http.status_code", http.StatusOK),
	)

	SendSuccess(c, http.StatusOK, response.NewPetListResponse(pets), "Pets retrieved successfully")
}

func (h *PetHandler) GetPet(c *gin.Context) {
	ctx := c.Request.Context()

	id, ok := petID(c)
	if !ok {
		SendNotFoundError(c, "Pet not found")
		return
	}

	pet, err := h.svc.Get(ctx, id)

	if err != nil {
		h.sendError(c, err, "Error retrieving pet")
		return
	}

	SendSuccess(c, http.StatusOK, response.NewPetResponse(pet), "Pet retrieved successfully")
}

func (h *PetHandler) CreatePet(c *gin.Context) {
	ctx := c.Request.Context()

	var params request.PetRequest
	if err := c.ShouldBindJSON(&params); err != nil {
		SendValidationError(c, domain.FieldErrors{
			"body": {"The request body must be valid JSON."},
		})
		return
	}

	if err := Validator.Struct(params); err != nil {
		SendValidationError(c, FormatValidationErrors(err))
		return
	}

	pet, errs := buildPet(params)
	if errs.HasErrors() {
		SendValidationError(c, errs)
		return
	}

	slog.Info("Pet#create", "name", pet.Name, "species", pet.Species)

	created, err := h.svc.Create(ctx, pet)

	if err != nil {
		h.sendError(c, err, "Error creating pet")
		return
	}

	SendSuccess(c, http.StatusCreated, response.NewPetResponse(created), "Pet created successfully")
}

func (h *PetHandler) UpdatePet(c *gin.Context) {
	ctx := c.Request.Context()

	id, ok := petID(c)
	if !ok {
		SendNotFoundError(c, "Pet not found")
		return
	}

	var params request.PetRequest
	if err := c.ShouldBindJSON(&params); err != nil {
		SendValidationError(c, domain.FieldErrors{
			"body": {"The request body must be valid JSON."},
		})
		return
	}

	if err := Validator.Struct(params); err != nil {
		SendValidationError(c, FormatValidationErrors(err))
		return
	}

	pet, errs := buildPet(params)
	if errs.HasErrors() {
		SendValidationError(c, errs)
		return
	}

	pet.ID = id

	updated, err := h.svc.Update(ctx, pet)

	if err != nil {
		h.sendError(c, err, "Error updating pet")
		return
	}

	SendSuccess(c, http.StatusOK, response.NewPetResponse(updated), "Pet updated successfully")
}

func (h *PetHandler) DeletePet(c *gin.Context) {
	ctx := c.Request.Context()

	id, ok := petID(c)
	if !ok {
		SendNotFoundError(c, "Pet not found")
		return
	}

	name, err := h.svc.Delete(ctx, id)

	if err != nil {
		h.sendError(c, err, "Error deleting pet")
		return
	}

	SendSuccess(c, http.StatusOK, nil, "Pet '"+name+"' deleted successfully")
}

func (h *PetHandler) Statistics(c *gin.Context) {
	ctx, span := CreateChildSpan(c.Request.Context(), "handler.pet.Statistics", []attribute.KeyValue{
		attribute.String("handler.operation", "Statistics"),
		attribute.String("handler.method", c.Request.Method),
		attribute.String("handler.path", c.FullPath()),
	})

	defer span.End()

	stats, err := h.svc.Statistics(ctx)

	if err != nil {
		AddSpanError(span, err)

		if h.Logger != nil {
			h.Logger.Logger.Ctx(ctx).Error("Failed to compute statistics", zap.Error(err))
		}

		SendInternalError(c, "Error retrieving statistics")
		return
	}

	SendSuccess(c, http.StatusOK, response.NewStatisticsResponse(stats), "Statistics retrieved successfully")
}
