package handlers

import (
	"context"
	"errors"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/stitts-dev/weather-caddie/internal/caddie"
	"github.com/stitts-dev/weather-caddie/internal/render"
	"github.com/stitts-dev/weather-caddie/internal/services"
	"github.com/stitts-dev/weather-caddie/internal/utils"
	"github.com/stitts-dev/weather-caddie/pkg/logger"
)

const (
	compassReadWait  = 2 * time.Minute
	compassWriteWait = 10 * time.Second
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // the overlay is served from the device, not this origin
	},
}

// CompassHandler classifies the wind against the direction the player faces.
type CompassHandler struct {
	weather services.WeatherSource
}

// CompassMessage is sent by the overlay whenever the device heading changes.
// WindFrom overrides the live wind, mainly for testing on the range.
type CompassMessage struct {
	Heading  *float64 `json:"heading"`
	WindFrom *float64 `json:"wind_from,omitempty"`
}

// CompassResponse is a reading plus its one-line rendering.
type CompassResponse struct {
	caddie.CompassReading
	Text  string `json:"text"`
	Error string `json:"error,omitempty"`
}

func NewCompassHandler(weather services.WeatherSource) *CompassHandler {
	return &CompassHandler{weather: weather}
}

// GetCompass handles GET /api/v1/compass?heading=H[&wind_from=W]
func (h *CompassHandler) GetCompass(c *gin.Context) {
	heading, err := strconv.ParseFloat(c.Query("heading"), 64)
	if err != nil || math.IsNaN(heading) || math.IsInf(heading, 0) {
		utils.SendBadRequest(c, "heading must be a number")
		return
	}
	msg := CompassMessage{Heading: &heading}
	if raw := c.Query("wind_from"); raw != "" {
		w, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(w) || math.IsInf(w, 0) {
			utils.SendBadRequest(c, "wind_from must be a number")
			return
		}
		msg.WindFrom = &w
	}

	resp, err := h.read(c.Request.Context(), msg)
	if err != nil {
		utils.SendCaddieError(c, err)
		return
	}
	utils.SendSuccess(c, resp)
}

// Stream handles GET /ws/compass. Each heading message gets one reading
// back; a bad message gets an error reply and the stream stays open.
func (h *CompassHandler) Stream(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		utils.RequestLogger(c).WithError(err).Error("Failed to upgrade WebSocket connection")
		return
	}
	defer conn.Close()

	log := logger.WithRequestID(c.GetString("request_id")).WithField("component", "compass_stream")
	log.Debug("Compass stream opened")

	ctx := c.Request.Context()
	for {
		conn.SetReadDeadline(time.Now().Add(compassReadWait))
		var msg CompassMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.WithError(err).Warn("Compass stream closed unexpectedly")
			}
			return
		}

		resp, err := h.read(ctx, msg)
		if err != nil {
			resp = &CompassResponse{Error: err.Error()}
		}

		conn.SetWriteDeadline(time.Now().Add(compassWriteWait))
		if err := conn.WriteJSON(resp); err != nil {
			log.WithError(err).Error("Failed to write WebSocket message")
			return
		}
	}
}

func (h *CompassHandler) read(ctx context.Context, msg CompassMessage) (*CompassResponse, error) {
	if msg.Heading == nil {
		return nil, errors.New("heading is required")
	}

	var windFrom caddie.Degrees
	if msg.WindFrom != nil {
		windFrom = caddie.Degrees(*msg.WindFrom)
	} else {
		snapshot, err := h.weather.GetSnapshot(ctx, false)
		if err != nil {
			return nil, err
		}
		windFrom = snapshot.WindFromDeg
	}

	reading := caddie.ReadCompass(caddie.Degrees(*msg.Heading), windFrom)
	return &CompassResponse{CompassReading: reading, Text: render.Compass(reading)}, nil
}
