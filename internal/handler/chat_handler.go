package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Moti-Eli/edu-plus/internal/service"
	appErrors "github.com/Moti-Eli/edu-plus/pkg/errors"
	"github.com/Moti-Eli/edu-plus/pkg/response"
)

// ChatHandler exposes the chat-based attendance entry shortcut.
type ChatHandler struct {
	service *service.ChatService
}

// NewChatHandler creates a new chat handler.
func NewChatHandler(svc *service.ChatService) *ChatHandler {
	return &ChatHandler{service: svc}
}

type chatPayload struct {
	Message string `json:"message" binding:"required"`
}

// Handle godoc
// @Summary Chat attendance entry
// @Description Parse a Hebrew attendance command and record the report it describes
// @Tags Chat
// @Accept json
// @Produce json
// @Param payload body chatPayload true "Chat message"
// @Success 200 {object} response.Envelope
// @Failure 422 {object} response.Envelope
// @Security BearerAuth
// @Router /chat [post]
func (h *ChatHandler) Handle(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var payload chatPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid chat payload"))
		return
	}

	reply, err := h.service.Handle(c.Request.Context(), claims.UserID, claims.Role, payload.Message)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, reply, nil)
}
