package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/stitts-dev/weather-caddie/internal/caddie"
	"github.com/stitts-dev/weather-caddie/internal/course"
	"github.com/stitts-dev/weather-caddie/internal/render"
	"github.com/stitts-dev/weather-caddie/internal/services"
	"github.com/stitts-dev/weather-caddie/internal/utils"
)

// CourseHandler serves course data and conditions at the course.
type CourseHandler struct {
	course  *course.Course
	weather services.WeatherSource
	loc     *time.Location
}

type teeSummary struct {
	Index        int              `json:"index"`
	Name         string           `json:"name"`
	TotalYardage int              `json:"total_yardage"`
	Holes        []course.TeeHole `json:"holes"`
}

type courseSummary struct {
	Name        string                 `json:"course"`
	Latitude    float64                `json:"latitude"`
	Longitude   float64                `json:"longitude"`
	ElevationFt caddie.Feet            `json:"elevation_ft"`
	Timezone    string                 `json:"timezone"`
	Bearings    map[int]caddie.Degrees `json:"bearings"`
	Tees        []teeSummary           `json:"tees"`
}

type weatherResponse struct {
	*caddie.WeatherSnapshot
	NextHour bool   `json:"next_hour"`
	Summary  string `json:"summary"`
}

func NewCourseHandler(c *course.Course, weather services.WeatherSource) *CourseHandler {
	return &CourseHandler{course: c, weather: weather, loc: c.Location()}
}

// GetCourse handles GET /api/v1/course
func (h *CourseHandler) GetCourse(c *gin.Context) {
	summary := courseSummary{
		Name:        h.course.Name,
		Latitude:    h.course.Latitude,
		Longitude:   h.course.Longitude,
		ElevationFt: h.course.ElevationFt,
		Timezone:    h.course.Timezone,
		Bearings:    h.course.Bearings(),
	}
	for i, tee := range h.course.Tees {
		summary.Tees = append(summary.Tees, teeSummary{
			Index:        i,
			Name:         tee.Name,
			TotalYardage: tee.TotalYardage(),
			Holes:        tee.Holes,
		})
	}
	utils.SendSuccess(c, summary)
}

// GetWeather handles GET /api/v1/weather
func (h *CourseHandler) GetWeather(c *gin.Context) {
	nextHour, err := parseWhen(c)
	if err != nil {
		utils.SendBadRequest(c, err.Error())
		return
	}

	snapshot, err := h.weather.GetSnapshot(c.Request.Context(), nextHour)
	if err != nil {
		utils.SendCaddieError(c, err)
		return
	}

	utils.SendSuccess(c, weatherResponse{
		WeatherSnapshot: snapshot,
		NextHour:        nextHour,
		Summary:         render.Weather(h.course.Name, snapshot, h.loc),
	})
}
