package handlers

import (
	"github.com/google/wire"

	"colloquy/dialogue-api/internal/interfaces/httpserver/handlers/dialoguehandler"
	"colloquy/dialogue-api/internal/interfaces/httpserver/handlers/historyhandler"
	"colloquy/dialogue-api/internal/interfaces/httpserver/handlers/rolehandler"
)

var HandlerProvider = wire.NewSet(
	rolehandler.NewRoleHandler,
	dialoguehandler.NewDialogueHandler,
	historyhandler.NewHistoryHandler,
)
