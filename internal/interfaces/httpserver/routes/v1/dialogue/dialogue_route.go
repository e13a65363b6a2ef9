package dialogue

import (
	"github.com/gin-gonic/gin"

	"colloquy/dialogue-api/internal/interfaces/httpserver/handlers/dialoguehandler"
)

type DialogueRoute struct {
	handler *dialoguehandler.DialogueHandler
}

func NewDialogueRoute(handler *dialoguehandler.DialogueHandler) *DialogueRoute {
	return &DialogueRoute{handler: handler}
}

func (dialogueRoute *DialogueRoute) RegisterRouter(router gin.IRouter) {
	router.POST("/ask-role/", dialogueRoute.handler.AskRole)
	router.POST("/ask-role", dialogueRoute.handler.AskRole)
	router.POST("/full-dialogue/", dialogueRoute.handler.FullDialogue)
	router.POST("/full-dialogue", dialogueRoute.handler.FullDialogue)
	router.POST("/stream-dialogue/", dialogueRoute.handler.StreamDialogue)
	router.POST("/stream-dialogue", dialogueRoute.handler.StreamDialogue)
}
