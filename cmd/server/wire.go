//go:build wireinject

package main

import (
	"colloquy/dialogue-api/internal/domain"
	"colloquy/dialogue-api/internal/infrastructure"
	"colloquy/dialogue-api/internal/interfaces"
	"colloquy/dialogue-api/internal/interfaces/httpserver/handlers"
	"colloquy/dialogue-api/internal/interfaces/httpserver/routes"

	"github.com/google/wire"
)

func CreateApplication() (*Application, error) {
	wire.Build(
		domain.ServiceProvider,
		infrastructure.InfrastructureProvider,
		handlers.HandlerProvider,
		routes.RouteProvider,
		interfaces.InterfacesProvider,
		wire.Struct(new(Application), "*"),
	)
	return nil, nil
}

func CreateDataInitializer() (*DataInitializer, error) {
	wire.Build(
		domain.ServiceProvider,
		infrastructure.InfrastructureProvider,
		wire.Struct(new(DataInitializer), "*"),
	)
	return nil, nil
}
