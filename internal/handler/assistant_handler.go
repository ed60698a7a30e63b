package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Moti-Eli/edu-plus/internal/service"
	appErrors "github.com/Moti-Eli/edu-plus/pkg/errors"
	"github.com/Moti-Eli/edu-plus/pkg/response"
)

// AssistantHandler exposes the admin AI assistant endpoint.
type AssistantHandler struct {
	service *service.AssistantService
}

// NewAssistantHandler creates a new assistant handler.
func NewAssistantHandler(svc *service.AssistantService) *AssistantHandler {
	return &AssistantHandler{service: svc}
}

type assistantPayload struct {
	Question string `json:"question" binding:"required"`
	APIKey   string `json:"api_key"`
}

// Ask godoc
// @Summary Ask the assistant
// @Description Answer an admin question about the attendance data
// @Tags Assistant
// @Accept json
// @Produce json
// @Param payload body assistantPayload true "Question payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Security BearerAuth
// @Router /assistant [post]
func (h *AssistantHandler) Ask(c *gin.Context) {
	var payload assistantPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid assistant payload"))
		return
	}

	answer, err := h.service.Ask(c.Request.Context(), payload.Question, payload.APIKey)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, gin.H{"answer": answer}, nil)
}
