package history

import (
	"github.com/gin-gonic/gin"

	"colloquy/dialogue-api/internal/interfaces/httpserver/handlers/historyhandler"
)

type HistoryRoute struct {
	handler *historyhandler.HistoryHandler
}

func NewHistoryRoute(handler *historyhandler.HistoryHandler) *HistoryRoute {
	return &HistoryRoute{handler: handler}
}

func (historyRoute *HistoryRoute) RegisterRouter(router gin.IRouter) {
	router.GET("/history/", historyRoute.handler.List)
	router.GET("/history", historyRoute.handler.List)
	router.POST("/history/reset/", historyRoute.handler.Reset)
	router.POST("/history/reset", historyRoute.handler.Reset)
}
