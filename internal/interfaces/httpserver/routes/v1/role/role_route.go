package role

import (
	"github.com/gin-gonic/gin"

	"colloquy/dialogue-api/internal/interfaces/httpserver/handlers/rolehandler"
)

type RoleRoute struct {
	handler *rolehandler.RoleHandler
}

func NewRoleRoute(handler *rolehandler.RoleHandler) *RoleRoute {
	return &RoleRoute{handler: handler}
}

func (roleRoute *RoleRoute) RegisterRouter(router gin.IRouter) {
	router.GET("/roles/", roleRoute.handler.List)
	router.GET("/roles", roleRoute.handler.List)
}
