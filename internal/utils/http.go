package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/stitts-dev/weather-caddie/internal/caddie"
	"github.com/stitts-dev/weather-caddie/pkg/logger"
)

// RequestIDHeader carries the request id in and out.
const RequestIDHeader = "X-Request-ID"

// ErrorResponse represents an API error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    int    `json:"code"`
	Kind    string `json:"kind,omitempty"`
	Hole    int    `json:"hole,omitempty"`
	Club    string `json:"club,omitempty"`
}

// SuccessResponse represents a successful API response
type SuccessResponse struct {
	Data interface{} `json:"data"`
}

// SendError sends a generic error response
func SendError(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
		Code:    statusCode,
	})
}

// SendBadRequest sends a 400 bad request error
func SendBadRequest(c *gin.Context, message string) {
	SendError(c, http.StatusBadRequest, message)
}

// SendNotFound sends a 404 not found error
func SendNotFound(c *gin.Context, message string) {
	SendError(c, http.StatusNotFound, message)
}

// SendSuccess sends a 200 success response
func SendSuccess(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, SuccessResponse{
		Data: data,
	})
}

// SendCreated sends a 201 created response
func SendCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, SuccessResponse{
		Data: data,
	})
}

// SendValidationError sends a 422 validation error
func SendValidationError(c *gin.Context, message string) {
	SendError(c, http.StatusUnprocessableEntity, message)
}

// StatusFor maps caddie errors to HTTP status codes and a short kind.
func StatusFor(err error) (int, string) {
	switch {
	case errors.Is(err, caddie.ErrInvalidHoleSelection):
		return http.StatusBadRequest, "invalid_hole_selection"
	case errors.Is(err, caddie.ErrHoleDataMissing):
		return http.StatusNotFound, "hole_data_missing"
	case errors.Is(err, caddie.ErrMissingClubData):
		return http.StatusUnprocessableEntity, "missing_club_data"
	case errors.Is(err, caddie.ErrProfileUnavailable):
		return http.StatusNotFound, "profile_unavailable"
	case errors.Is(err, caddie.ErrWeatherUnavailable):
		return http.StatusServiceUnavailable, "weather_unavailable"
	}
	return http.StatusInternalServerError, ""
}

// SendCaddieError maps err with StatusFor and includes the hole or club
// the error names. Unknown errors are logged and hidden behind a 500.
func SendCaddieError(c *gin.Context, err error) {
	status, kind := StatusFor(err)
	resp := ErrorResponse{
		Error:   http.StatusText(status),
		Message: err.Error(),
		Code:    status,
		Kind:    kind,
	}

	var holeErr *caddie.HoleError
	if errors.As(err, &holeErr) {
		resp.Hole = holeErr.Hole
	}
	var clubErr *caddie.ClubError
	if errors.As(err, &clubErr) {
		resp.Club = clubErr.Club
	}

	if status == http.StatusInternalServerError {
		RequestLogger(c).WithError(err).Error("Unhandled error")
		resp.Message = "internal error"
	}
	c.JSON(status, resp)
}

// RequestID assigns each request an id, reusing a well-formed incoming one.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.New().String()
		}
		c.Set("request_id", id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// RequestLogger returns a logger tagged with the request id and route.
func RequestLogger(c *gin.Context) *logrus.Entry {
	return logger.WithHTTPContext(c.Request.Method, c.FullPath(), c.Request.UserAgent()).
		WithField("request_id", c.GetString("request_id"))
}

// AccessLog logs each request once it completes.
func AccessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		entry := RequestLogger(c).WithField("status", c.Writer.Status())
		if c.Writer.Status() >= http.StatusInternalServerError {
			entry.Warn("Request failed")
			return
		}
		entry.Debug("Request served")
	}
}
