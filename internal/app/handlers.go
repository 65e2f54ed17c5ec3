package app

import (
	httpH "github.com/yungbote/resilience-backend/internal/http/handlers"
	"github.com/yungbote/resilience-backend/internal/platform/logger"
)

type Handlers struct {
	Health      *httpH.HealthHandler
	Auth        *httpH.AuthHandler
	Client      *httpH.ClientHandler
	Habit       *httpH.HabitHandler
	ClientHabit *httpH.ClientHabitHandler
	Assessment  *httpH.AssessmentHandler
	Insights    *httpH.InsightsHandler
}

func wireHandlers(log *logger.Logger, s Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:      httpH.NewHealthHandler(),
		Auth:        httpH.NewAuthHandler(s.Auth),
		Client:      httpH.NewClientHandler(s.User, s.SoftDelete),
		Habit:       httpH.NewHabitHandler(s.Habit, s.SoftDelete),
		ClientHabit: httpH.NewClientHabitHandler(s.ClientHabit, s.SoftDelete),
		Assessment:  httpH.NewAssessmentHandler(s.Assessment, s.SoftDelete),
		Insights:    httpH.NewInsightsHandler(s.Insights),
	}
}
