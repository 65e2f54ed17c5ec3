package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/resilience-backend/internal/http/handlers"
	httpMW "github.com/yungbote/resilience-backend/internal/http/middleware"
	"github.com/yungbote/resilience-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log         *logger.Logger
	ServiceName string
	CORSOrigins []string

	AuthMiddleware *httpMW.AuthMiddleware

	HealthHandler      *httpH.HealthHandler
	AuthHandler        *httpH.AuthHandler
	ClientHandler      *httpH.ClientHandler
	HabitHandler       *httpH.HabitHandler
	ClientHabitHandler *httpH.ClientHabitHandler
	AssessmentHandler  *httpH.AssessmentHandler
	InsightsHandler    *httpH.InsightsHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(otelgin.Middleware(cfg.ServiceName))
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.CORS(cfg.CORSOrigins))

	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	api := r.Group("/api")
	{
		if cfg.AuthHandler != nil {
			api.POST("/register", cfg.AuthHandler.Register)
			api.POST("/login", cfg.AuthHandler.Login)
			api.POST("/refresh", cfg.AuthHandler.Refresh)
		}
	}

	protected := api.Group("/")
	{
		if cfg.AuthMiddleware != nil {
			protected.Use(cfg.AuthMiddleware.RequireAuth())
		}

		if cfg.AuthHandler != nil {
			protected.POST("/logout", cfg.AuthHandler.Logout)
		}

		if cfg.ClientHandler != nil {
			protected.POST("/clients", cfg.ClientHandler.CreateClient)
			protected.GET("/clients", cfg.ClientHandler.ListClients)
			protected.GET("/clients/:id", cfg.ClientHandler.GetClient)
			protected.PUT("/clients/:id", cfg.ClientHandler.UpdateClient)
			protected.DELETE("/clients/:id", cfg.ClientHandler.DeleteClient)
		}

		if cfg.HabitHandler != nil {
			protected.POST("/habits", cfg.HabitHandler.CreateHabit)
			protected.GET("/habits", cfg.HabitHandler.ListHabits)
			protected.GET("/habits/:id", cfg.HabitHandler.GetHabit)
			protected.PUT("/habits/:id", cfg.HabitHandler.UpdateHabit)
			protected.DELETE("/habits/:id", cfg.HabitHandler.DeleteHabit)
		}

		if cfg.ClientHabitHandler != nil {
			protected.POST("/client-habits", cfg.ClientHabitHandler.AssignHabit)
			protected.GET("/clients/:id/habits", cfg.ClientHabitHandler.ListClientHabits)
			protected.PUT("/client-habits/:id", cfg.ClientHabitHandler.UpdateClientHabit)
			protected.DELETE("/client-habits/:id", cfg.ClientHabitHandler.DeleteClientHabit)
			protected.GET("/client-habits/:id/scores", cfg.ClientHabitHandler.ScoreHistory)
		}

		if cfg.AssessmentHandler != nil {
			protected.POST("/assessments", cfg.AssessmentHandler.CreateAssessment)
			protected.GET("/assessments/:id", cfg.AssessmentHandler.GetAssessment)
			protected.PUT("/assessments/:id/comment", cfg.AssessmentHandler.UpdateComment)
			protected.DELETE("/assessments/:id", cfg.AssessmentHandler.DeleteAssessment)
			protected.GET("/clients/:id/assessments", cfg.AssessmentHandler.ListAssessments)
			protected.POST("/assessments/:id/scores", cfg.AssessmentHandler.AddScore)
			protected.GET("/assessments/:id/scores", cfg.AssessmentHandler.ListScores)
			protected.PUT("/scores/:id", cfg.AssessmentHandler.UpdateScore)
			protected.DELETE("/scores/:id", cfg.AssessmentHandler.DeleteScore)
		}

		if cfg.InsightsHandler != nil {
			protected.GET("/clients/:id/insights/latest", cfg.InsightsHandler.Latest)
		}
	}

	return r
}
