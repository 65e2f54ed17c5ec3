package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/resilience-backend/internal/clients/cache"
	"github.com/yungbote/resilience-backend/internal/platform/logger"
	"github.com/yungbote/resilience-backend/internal/services"
)

type Services struct {
	Auth        services.AuthService
	User        services.UserService
	Habit       services.HabitService
	ClientHabit services.ClientHabitService
	Assessment  services.AssessmentService
	Wellbeing   services.WellbeingService
	Insights    services.InsightsService
	SoftDelete  services.SoftDeleteService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, r Repos) Services {
	log.Info("Wiring services...")

	// Insights degrade to uncached derivation when redis is not
	// reachable; boot continues either way.
	insightsCache, err := cache.NewRedisCache(log)
	if err != nil {
		log.Warn("redis unavailable, insights cache disabled", "error", err)
		insightsCache = nil
	}

	wellbeing := services.NewWellbeingService(db, log, r.HabitScore, r.Assessment)
	insights := services.NewInsightsService(db, log, r.Assessment, insightsCache)

	return Services{
		Auth:        services.NewAuthService(db, log, r.User, r.UserToken, cfg.JWTSecretKey, cfg.AccessTokenTTL, cfg.RefreshTokenTTL),
		User:        services.NewUserService(db, log, r.User),
		Habit:       services.NewHabitService(db, log, r.Habit),
		ClientHabit: services.NewClientHabitService(db, log, r.User, r.Habit, r.ClientHabit, r.HabitScore),
		Assessment:  services.NewAssessmentService(db, log, r.User, r.ClientHabit, r.Assessment, r.HabitScore, wellbeing, insights),
		Wellbeing:   wellbeing,
		Insights:    insights,
		SoftDelete:  services.NewSoftDeleteService(db, log, r.User, r.Habit, r.ClientHabit, r.Assessment, r.HabitScore, wellbeing, insights),
	}
}
