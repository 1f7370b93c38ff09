package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/stitts-dev/weather-caddie/internal/services"
	"github.com/stitts-dev/weather-caddie/internal/utils"
)

// ChatHandler answers typed questions.
type ChatHandler struct {
	chat *services.ChatService
}

// ChatRequest is one typed question.
type ChatRequest struct {
	Question string `json:"question" binding:"required"`
	Profile  string `json:"profile"`
}

func NewChatHandler(chat *services.ChatService) *ChatHandler {
	return &ChatHandler{chat: chat}
}

// Ask handles POST /api/v1/chat
func (h *ChatHandler) Ask(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendBadRequest(c, "question is required")
		return
	}

	reply, err := h.chat.Reply(c.Request.Context(), req.Profile, req.Question)
	if err != nil {
		utils.SendBadRequest(c, err.Error())
		return
	}
	utils.SendSuccess(c, reply)
}
