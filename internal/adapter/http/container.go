package http

import (
	"petstore/internal/adapter/http/handler"
	"petstore/internal/core/port"
	"petstore/internal/core/service"
	"petstore/pkg/config"
)

type Container struct {
	PetRepo    port.PetRepository
	PetUseCase port.PetService

	PetHandler    *handler.PetHandler
	HealthHandler *handler.HealthHandler
}

func NewContainer(repo port.PetRepository, telemetry port.Telemetry, logger *config.AppLogger) *Container {
	petSvc := service.NewPetService(repo, telemetry)

	return &Container{
		PetRepo:       repo,
		PetUseCase:    petSvc,
		PetHandler:    handler.NewPetHandler(petSvc, logger),
		HealthHandler: handler.NewHealthHandler(),
	}
}
