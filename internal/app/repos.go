package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/resilience-backend/internal/platform/logger"
	"github.com/yungbote/resilience-backend/internal/repos"
)

type Repos struct {
	User        repos.UserRepo
	UserToken   repos.UserTokenRepo
	Habit       repos.HabitRepo
	ClientHabit repos.ClientHabitRepo
	Assessment  repos.AssessmentRepo
	HabitScore  repos.HabitScoreRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:        repos.NewUserRepo(db, log),
		UserToken:   repos.NewUserTokenRepo(db, log),
		Habit:       repos.NewHabitRepo(db, log),
		ClientHabit: repos.NewClientHabitRepo(db, log),
		Assessment:  repos.NewAssessmentRepo(db, log),
		HabitScore:  repos.NewHabitScoreRepo(db, log),
	}
}
