package handlers

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/stitts-dev/weather-caddie/internal/caddie"
	"github.com/stitts-dev/weather-caddie/internal/render"
	"github.com/stitts-dev/weather-caddie/internal/services"
	"github.com/stitts-dev/weather-caddie/internal/utils"
)

// AdviceHandler serves hole-by-hole tips.
type AdviceHandler struct {
	advice *services.AdviceService
	coeff  caddie.Coefficients
}

// AdviceResponse is the advice plus its rendered text.
type AdviceResponse struct {
	*services.AdviceResponse
	Tips string `json:"tips"`
}

func NewAdviceHandler(advice *services.AdviceService, coeff caddie.Coefficients) *AdviceHandler {
	return &AdviceHandler{advice: advice, coeff: coeff}
}

// GetAdvice handles GET /api/v1/advice
func (h *AdviceHandler) GetAdvice(c *gin.Context) {
	req, err := parseAdviceRequest(c)
	if err != nil {
		utils.SendBadRequest(c, err.Error())
		return
	}

	resp, err := h.advice.GetAdvice(c.Request.Context(), req)
	if err != nil {
		utils.SendCaddieError(c, err)
		return
	}

	utils.SendSuccess(c, AdviceResponse{
		AdviceResponse: resp,
		Tips:           render.Tips(resp.Advice, h.coeff),
	})
}

func parseAdviceRequest(c *gin.Context) (services.AdviceRequest, error) {
	var req services.AdviceRequest

	holeStr := c.Query("hole")
	if holeStr == "" {
		// absent hole is an invalid selection, not a malformed request
		return req, nil
	}
	hole, err := strconv.Atoi(holeStr)
	if err != nil {
		return req, fmt.Errorf("hole must be an integer")
	}
	req.Hole = hole

	if req.Bearing, err = optionalFloat(c, "bearing"); err != nil {
		return req, err
	}
	if req.DriverCarry, err = optionalFloat(c, "driver"); err != nil {
		return req, err
	}
	if req.IronCarry, err = optionalFloat(c, "iron"); err != nil {
		return req, err
	}
	if req.NextHour, err = parseWhen(c); err != nil {
		return req, err
	}
	if tee := c.Query("tee"); tee != "" {
		idx, err := strconv.Atoi(tee)
		if err != nil {
			return req, fmt.Errorf("tee must be an integer")
		}
		req.TeeIndex = &idx
	}
	req.ProfileID = c.Query("profile")
	return req, nil
}

func optionalFloat(c *gin.Context, name string) (*float64, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("%s must be a number", name)
	}
	return &v, nil
}

func parseWhen(c *gin.Context) (bool, error) {
	switch c.DefaultQuery("when", "now") {
	case "now":
		return false, nil
	case "next":
		return true, nil
	}
	return false, fmt.Errorf("when must be now or next")
}
