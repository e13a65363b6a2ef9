package routes

import (
	v1 "colloquy/dialogue-api/internal/interfaces/httpserver/routes/v1"
	"colloquy/dialogue-api/internal/interfaces/httpserver/routes/v1/dialogue"
	"colloquy/dialogue-api/internal/interfaces/httpserver/routes/v1/history"
	"colloquy/dialogue-api/internal/interfaces/httpserver/routes/v1/role"

	"github.com/google/wire"
)

var RouteProvider = wire.NewSet(
	v1.NewV1Route,
	role.NewRoleRoute,
	dialogue.NewDialogueRoute,
	history.NewHistoryRoute,
)
