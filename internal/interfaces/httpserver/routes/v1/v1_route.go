package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"colloquy/dialogue-api/internal/config"
	"colloquy/dialogue-api/internal/interfaces/httpserver/routes/v1/dialogue"
	"colloquy/dialogue-api/internal/interfaces/httpserver/routes/v1/history"
	"colloquy/dialogue-api/internal/interfaces/httpserver/routes/v1/role"
)

type V1Route struct {
	role     *role.RoleRoute
	dialogue *dialogue.DialogueRoute
	history  *history.HistoryRoute
}

func NewV1Route(
	role *role.RoleRoute,
	dialogue *dialogue.DialogueRoute,
	history *history.HistoryRoute,
) *V1Route {
	return &V1Route{
		role,
		dialogue,
		history,
	}
}

// RegisterRouter registers the API surface on the given router. It is called
// once for the root group and once for the /v1 mirror.
func (v1Route *V1Route) RegisterRouter(router gin.IRouter) {
	router.GET("/version", GetVersion)
	router.GET("/healthz", GetHealthz)
	router.GET("/readyz", GetReadyz)

	v1Route.role.RegisterRouter(router)
	v1Route.dialogue.RegisterRouter(router)
	v1Route.history.RegisterRouter(router)
}

// GetVersion returns the current build version of the API server.
func GetVersion(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"version": config.Version})
}

// GetHealthz returns the health status of the API server.
func GetHealthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// GetReadyz returns the readiness status of the API server.
func GetReadyz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}
