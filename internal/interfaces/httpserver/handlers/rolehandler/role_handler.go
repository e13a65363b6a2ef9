package rolehandler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"colloquy/dialogue-api/internal/domain/role"
	"colloquy/dialogue-api/internal/interfaces/httpserver/requests"
	"colloquy/dialogue-api/internal/utils/platformerrors"
)

// RoleHandler handles HTTP requests for the persona registry
type RoleHandler struct {
	service *role.Service
}

// NewRoleHandler creates a new role handler
func NewRoleHandler(service *role.Service) *RoleHandler {
	return &RoleHandler{service: service}
}

// RoleResponse is the API response format for a role
type RoleResponse struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// List returns all registered roles in registration order
func (h *RoleHandler) List(c *gin.Context) {
	pagination, err := requests.GetPaginationFromQuery(c)
	if err != nil {
		handleError(c, err)
		return
	}

	roles, err := h.service.List(c.Request.Context(), pagination)
	if err != nil {
		handleError(c, err)
		return
	}

	data := make([]RoleResponse, 0, len(roles))
	for _, r := range roles {
		data = append(data, RoleResponse{
			Name:        r.Name,
			Description: r.Description,
		})
	}

	c.JSON(http.StatusOK, gin.H{"roles": data})
}

func handleError(c *gin.Context, err error) {
	if platformerrors.IsErrorType(err, platformerrors.ErrorTypeValidation) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation_failed", "message": messageOf(err, "invalid request")})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error", "message": "failed to list roles"})
}

// messageOf keeps wrapped cause text out of responses.
func messageOf(err error, fallback string) string {
	var platformErr *platformerrors.PlatformError
	if errors.As(err, &platformErr) && platformErr.PublicMessage() != "" {
		return platformErr.PublicMessage()
	}
	return fallback
}
