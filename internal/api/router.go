package api

import (
	"github.com/gin-gonic/gin"

	"github.com/stitts-dev/weather-caddie/internal/api/handlers"
	"github.com/stitts-dev/weather-caddie/internal/caddie"
	"github.com/stitts-dev/weather-caddie/internal/course"
	"github.com/stitts-dev/weather-caddie/internal/profile"
	"github.com/stitts-dev/weather-caddie/internal/services"
)

// Dependencies is everything the routes are built from.
type Dependencies struct {
	Course       *course.Course
	Coefficients caddie.Coefficients
	Weather      services.WeatherSource
	Advice       *services.AdviceService
	Profiles     profile.Source
	Preferences  services.PreferenceStore
	Rounds       *services.RoundService
	Chat         *services.ChatService
	Health       *handlers.HealthHandler
}

// SetupRoutes registers the health endpoints, the /api/v1 group and the compass stream.
func SetupRoutes(router *gin.Engine, deps Dependencies) {
	adviceHandler := handlers.NewAdviceHandler(deps.Advice, deps.Coefficients)
	courseHandler := handlers.NewCourseHandler(deps.Course, deps.Weather)
	compassHandler := handlers.NewCompassHandler(deps.Weather)
	profileHandler := handlers.NewProfileHandler(deps.Profiles)
	preferencesHandler := handlers.NewPreferencesHandler(deps.Preferences)
	roundHandler := handlers.NewRoundHandler(deps.Rounds)
	chatHandler := handlers.NewChatHandler(deps.Chat)

	if deps.Health != nil {
		router.GET("/health", deps.Health.GetHealth)
		router.GET("/ready", deps.Health.GetReady)
	}

	v1 := router.Group("/api/v1")
	{
		v1.GET("/advice", adviceHandler.GetAdvice)
		v1.GET("/course", courseHandler.GetCourse)
		v1.GET("/weather", courseHandler.GetWeather)
		v1.GET("/compass", compassHandler.GetCompass)

		v1.GET("/profiles/:id", profileHandler.GetProfile)
		v1.POST("/profiles/:id/clubs", profileHandler.AddClub)

		v1.GET("/preferences", preferencesHandler.GetPreferences)
		v1.PUT("/preferences", preferencesHandler.UpdatePreferences)

		v1.POST("/rounds", roundHandler.StartRound)
		v1.GET("/rounds/active", roundHandler.GetActiveRound)

		v1.POST("/chat", chatHandler.Ask)
	}

	// websocket lives outside /api/v1 like the other streaming endpoints
	router.GET("/ws/compass", compassHandler.Stream)
}
