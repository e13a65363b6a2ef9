package dialoguehandler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"colloquy/dialogue-api/internal/domain/dialogue"
	"colloquy/dialogue-api/internal/infrastructure/logger"
	"colloquy/dialogue-api/internal/interfaces/httpserver/middlewares"
	"colloquy/dialogue-api/internal/interfaces/httpserver/requests"
	"colloquy/dialogue-api/internal/utils/platformerrors"
)

// DialogueHandler handles HTTP requests for single-role asks and multi-role
// dialogues
type DialogueHandler struct {
	orchestrator *dialogue.Orchestrator
	validate     *validator.Validate
}

// NewDialogueHandler creates a new dialogue handler
func NewDialogueHandler(orchestrator *dialogue.Orchestrator) *DialogueHandler {
	return &DialogueHandler{
		orchestrator: orchestrator,
		validate:     validator.New(validator.WithRequiredStructEnabled()),
	}
}

// AskRoleResponse is the API response format for a single-role ask.
// Collaboration is null when the role answered alone.
type AskRoleResponse struct {
	Response      dialogue.ParsedResponse `json:"response"`
	Collaboration *dialogue.Decision      `json:"collaboration"`
}

// AskRole answers one question as a named role
func (h *DialogueHandler) AskRole(c *gin.Context) {
	var req requests.AskRole
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation_failed", "message": "invalid JSON body"})
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation_failed", "message": "missing prompt or role"})
		return
	}

	result, err := h.orchestrator.SingleRole(c.Request.Context(), req.Role, req.Prompt, req.User)
	if err != nil {
		handleError(c, err)
		return
	}

	resp := AskRoleResponse{Response: result.Response}
	if result.Collaboration != nil && result.Collaboration.ShouldCollaborate {
		resp.Collaboration = result.Collaboration
	}

	c.JSON(http.StatusOK, resp)
}

// FullDialogue runs every registered role in order and returns the complete
// conversation with its synthesis
func (h *DialogueHandler) FullDialogue(c *gin.Context) {
	var req requests.FullDialogue
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation_failed", "message": "invalid JSON body"})
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation_failed", "message": "no prompt provided"})
		return
	}

	conversation, err := h.orchestrator.FullDialogue(c.Request.Context(), req.Prompt, req.Debate)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, conversation)
}

// StreamDialogue runs a full dialogue and streams each step as one NDJSON
// line. The request is validated before the stream opens; once open, turn
// failures are reported as error events and the stream always ends with a
// complete event.
func (h *DialogueHandler) StreamDialogue(c *gin.Context) {
	var req requests.FullDialogue
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation_failed", "message": "invalid JSON body"})
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation_failed", "message": "no prompt provided"})
		return
	}

	flusher, ok := middlewares.PrepareNDJSON(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error", "message": "streaming unsupported"})
		return
	}

	log := logger.GetLogger()
	encoder := json.NewEncoder(c.Writer)
	for event := range h.orchestrator.StreamFullDialogue(c.Request.Context(), req.Prompt, req.Debate) {
		if err := encoder.Encode(event); err != nil {
			log.Warn().Err(err).Msg("client went away mid-stream")
			return
		}
		flusher.Flush()
	}
}

func handleError(c *gin.Context, err error) {
	if platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not_found", "message": messageOf(err, "role not found")})
		return
	}
	if platformerrors.IsErrorType(err, platformerrors.ErrorTypeValidation) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation_failed", "message": messageOf(err, "invalid request")})
		return
	}
	if platformerrors.IsErrorType(err, platformerrors.ErrorTypeMalformedDecision) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "malformed_decision", "message": messageOf(err, "collaboration decision was not valid JSON")})
		return
	}
	if platformerrors.IsErrorType(err, platformerrors.ErrorTypeCompletion) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "completion_failed", "message": messageOf(err, "failed to generate response")})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error", "message": messageOf(err, "internal server error")})
}

// messageOf returns the platform error message without its cause chain so
// backend error text is never echoed to clients.
func messageOf(err error, fallback string) string {
	var platformErr *platformerrors.PlatformError
	if errors.As(err, &platformErr) && platformErr.PublicMessage() != "" {
		return platformErr.PublicMessage()
	}
	return fallback
}
