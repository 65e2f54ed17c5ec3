package services

import (
	"context"
	"fmt"
	"math"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/resilience-backend/internal/platform/logger"
	"github.com/yungbote/resilience-backend/internal/repos"
)

// WellbeingService owns the stored wellbeing aggregate on an
// assessment. Recompute must run inside the same transaction as the
// score mutation that triggered it, so the stored value is never
// observably stale.
type WellbeingService interface {
	Recompute(ctx context.Context, tx *gorm.DB, assessmentID uuid.UUID) error
}

type wellbeingService struct {
	db             *gorm.DB
	log            *logger.Logger
	scoreRepo      repos.HabitScoreRepo
	assessmentRepo repos.AssessmentRepo
}

func NewWellbeingService(db *gorm.DB, log *logger.Logger, scoreRepo repos.HabitScoreRepo, assessmentRepo repos.AssessmentRepo) WellbeingService {
	return &wellbeingService{
		db:             db,
		log:            log.With("service", "WellbeingService"),
		scoreRepo:      scoreRepo,
		assessmentRepo: assessmentRepo,
	}
}

func (ws *wellbeingService) Recompute(ctx context.Context, tx *gorm.DB, assessmentID uuid.UUID) error {
	scores, err := ws.scoreRepo.ListByAssessmentID(ctx, tx, assessmentID)
	if err != nil {
		return fmt.Errorf("list scores for recompute: %w", err)
	}

	// No active scores means no wellbeing signal: the aggregate is
	// cleared to NULL, never set to zero.
	var aggregate *float64
	if len(scores) > 0 {
		total := 0
		for _, s := range scores {
			total += s.Score
		}
		mean := roundScore(float64(total) / float64(len(scores)))
		aggregate = &mean
	}

	if err := ws.assessmentRepo.UpdateWellbeingScore(ctx, tx, assessmentID, aggregate); err != nil {
		return fmt.Errorf("store wellbeing score: %w", err)
	}
	return nil
}

func roundScore(v float64) float64 {
	return math.Round(v*100) / 100
}
