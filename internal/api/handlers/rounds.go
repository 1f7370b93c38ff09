package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stitts-dev/weather-caddie/internal/preferences"
	"github.com/stitts-dev/weather-caddie/internal/services"
	"github.com/stitts-dev/weather-caddie/internal/utils"
)

// RoundHandler starts and reports rounds.
type RoundHandler struct {
	rounds *services.RoundService
}

func NewRoundHandler(rounds *services.RoundService) *RoundHandler {
	return &RoundHandler{rounds: rounds}
}

// StartRound handles POST /api/v1/rounds
func (h *RoundHandler) StartRound(c *gin.Context) {
	var req services.StartRoundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendBadRequest(c, "invalid round: "+err.Error())
		return
	}

	round, err := h.rounds.StartRound(c.Request.Context(), req)
	if err != nil {
		utils.SendError(c, http.StatusUnprocessableEntity, err.Error())
		return
	}
	utils.SendCreated(c, round)
}

// GetActiveRound handles GET /api/v1/rounds/active
func (h *RoundHandler) GetActiveRound(c *gin.Context) {
	round, err := h.rounds.ActiveRound(c.Request.Context())
	if errors.Is(err, preferences.ErrNoActiveRound) {
		utils.SendNotFound(c, err.Error())
		return
	}
	if err != nil {
		utils.SendCaddieError(c, err)
		return
	}
	utils.SendSuccess(c, round)
}
