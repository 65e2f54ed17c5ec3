package app

import (
	"github.com/gin-gonic/gin"

	internalhttp "github.com/yungbote/resilience-backend/internal/http"
	"github.com/yungbote/resilience-backend/internal/platform/logger"
)

func wireRouter(log *logger.Logger, cfg Config, h Handlers, mw Middleware) *gin.Engine {
	return internalhttp.NewRouter(internalhttp.RouterConfig{
		Log:         log,
		ServiceName: cfg.ServiceName,
		CORSOrigins: cfg.CORSOrigins,

		AuthMiddleware: mw.Auth,

		HealthHandler:      h.Health,
		AuthHandler:        h.Auth,
		ClientHandler:      h.Client,
		HabitHandler:       h.Habit,
		ClientHabitHandler: h.ClientHabit,
		AssessmentHandler:  h.Assessment,
		InsightsHandler:    h.Insights,
	})
}
