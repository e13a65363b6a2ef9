package historyhandler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"colloquy/dialogue-api/internal/domain/history"
	"colloquy/dialogue-api/internal/interfaces/httpserver/requests"
	"colloquy/dialogue-api/internal/utils/platformerrors"
)

// HistoryHandler handles HTTP requests for recorded exchanges
type HistoryHandler struct {
	service *history.Service
}

// NewHistoryHandler creates a new history handler
func NewHistoryHandler(service *history.Service) *HistoryHandler {
	return &HistoryHandler{service: service}
}

// RecordResponse is the API response format for a history record
type RecordResponse struct {
	ID        string `json:"id"`
	Prompt    string `json:"prompt"`
	Response  string `json:"response"`
	Role      string `json:"role"`
	CreatedAt string `json:"created_at"`
}

// List returns recorded exchanges newest first, optionally filtered by user
// or role
func (h *HistoryHandler) List(c *gin.Context) {
	pagination, err := requests.GetPaginationFromQuery(c)
	if err != nil {
		handleError(c, err)
		return
	}

	filter := history.Filter{}
	if username := c.Query("user"); username != "" {
		filter.Username = &username
	}
	if roleName := c.Query("role"); roleName != "" {
		filter.RoleName = &roleName
	}

	records, err := h.service.List(c.Request.Context(), filter, pagination)
	if err != nil {
		handleError(c, err)
		return
	}

	data := make([]RecordResponse, 0, len(records))
	for _, rec := range records {
		data = append(data, RecordResponse{
			ID:        rec.ID,
			Prompt:    rec.Prompt,
			Response:  rec.Response,
			Role:      rec.RoleName,
			CreatedAt: rec.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		})
	}

	c.JSON(http.StatusOK, gin.H{"history": data})
}

// Reset deletes every recorded exchange and reports how many were removed
func (h *HistoryHandler) Reset(c *gin.Context) {
	deleted, err := h.service.Reset(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}

func handleError(c *gin.Context, err error) {
	if platformerrors.IsErrorType(err, platformerrors.ErrorTypeValidation) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation_failed", "message": messageOf(err, "invalid request")})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error", "message": "history operation failed"})
}

// messageOf keeps wrapped cause text out of responses.
func messageOf(err error, fallback string) string {
	var platformErr *platformerrors.PlatformError
	if errors.As(err, &platformErr) && platformErr.PublicMessage() != "" {
		return platformErr.PublicMessage()
	}
	return fallback
}
