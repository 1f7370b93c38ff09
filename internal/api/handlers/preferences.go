package handlers

import (
	"math"

	"github.com/gin-gonic/gin"

	"github.com/stitts-dev/weather-caddie/internal/preferences"
	"github.com/stitts-dev/weather-caddie/internal/services"
	"github.com/stitts-dev/weather-caddie/internal/utils"
)

// PreferencesHandler exposes the saved carries and bearing.
type PreferencesHandler struct {
	store services.PreferenceStore
}

// UpdatePreferencesRequest replaces the saved preferences wholesale.
type UpdatePreferencesRequest struct {
	DriverCarry   float64  `json:"driver"`
	IronCarry     float64  `json:"iron"`
	LastBearing   *float64 `json:"last_bearing"`
	ActiveProfile string   `json:"active_profile"`
}

func NewPreferencesHandler(store services.PreferenceStore) *PreferencesHandler {
	return &PreferencesHandler{store: store}
}

// GetPreferences handles GET /api/v1/preferences
func (h *PreferencesHandler) GetPreferences(c *gin.Context) {
	p, err := h.store.Load(c.Request.Context())
	if err != nil {
		utils.SendCaddieError(c, err)
		return
	}
	utils.SendSuccess(c, p)
}

// UpdatePreferences handles PUT /api/v1/preferences
func (h *PreferencesHandler) UpdatePreferences(c *gin.Context) {
	var req UpdatePreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendBadRequest(c, "invalid preferences: "+err.Error())
		return
	}
	if req.DriverCarry < 0 || req.IronCarry < 0 {
		utils.SendValidationError(c, "carries must not be negative")
		return
	}

	p := &preferences.Preferences{
		DriverCarry:   req.DriverCarry,
		IronCarry:     req.IronCarry,
		ActiveProfile: req.ActiveProfile,
	}
	if req.LastBearing != nil && !math.IsNaN(*req.LastBearing) {
		b := services.ClampBearing(*req.LastBearing)
		p.LastBearing = &b
	}

	if err := h.store.Save(c.Request.Context(), p); err != nil {
		utils.SendCaddieError(c, err)
		return
	}
	utils.SendSuccess(c, p)
}
