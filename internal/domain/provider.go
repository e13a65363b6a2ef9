package domain

import (
	"github.com/google/wire"

	"colloquy/dialogue-api/internal/domain/dialogue"
	"colloquy/dialogue-api/internal/domain/history"
	"colloquy/dialogue-api/internal/domain/role"
	"colloquy/dialogue-api/internal/domain/user"
)

// ServiceProvider provides all domain services
var ServiceProvider = wire.NewSet(
	role.NewService,
	history.NewService,
	user.NewService,
	dialogue.NewResolver,
	dialogue.NewOrchestrator,
)
