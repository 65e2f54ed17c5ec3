package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yungbote/resilience-backend/internal/apperr"
	"github.com/yungbote/resilience-backend/internal/normalization"
	"github.com/yungbote/resilience-backend/internal/platform/logger"
	"github.com/yungbote/resilience-backend/internal/repos"
	"github.com/yungbote/resilience-backend/internal/types"
)

const (
	minHabitScore          = 0
	maxHabitScore          = 10
	maxScoresPerAssessment = 7
)

type CreateAssessmentRequest struct {
	ClientID       uuid.UUID `json:"client_id"`
	WeekStart      time.Time `json:"week_start_date"`
	OverallComment *string   `json:"overall_comment"`
}

type AddScoreRequest struct {
	ClientHabitID uuid.UUID `json:"client_habit_id"`
	Score         int       `json:"score"`
	Note          *string   `json:"note"`
}

type UpdateScoreRequest struct {
	Score *int    `json:"score"`
	Note  *string `json:"note"`
}

type ListAssessmentsRequest struct {
	ClientID uuid.UUID
	From     *time.Time
	To       *time.Time
	Limit    int
	Offset   int
}

// AssessmentService manages weekly assessments and their habit
// scores. Every score mutation recomputes the parent's wellbeing
// aggregate in the same transaction and invalidates the client's
// cached insights after commit.
type AssessmentService interface {
	CreateAssessment(ctx context.Context, req CreateAssessmentRequest) (*types.WeeklyAssessment, error)
	GetAssessment(ctx context.Context, assessmentID uuid.UUID) (*types.WeeklyAssessment, error)
	UpdateComment(ctx context.Context, assessmentID uuid.UUID, comment *string) (*types.WeeklyAssessment, error)
	ListAssessments(ctx context.Context, req ListAssessmentsRequest) ([]*types.WeeklyAssessment, error)
	AddScore(ctx context.Context, assessmentID uuid.UUID, req AddScoreRequest) (*types.HabitScore, error)
	UpdateScore(ctx context.Context, scoreID uuid.UUID, req UpdateScoreRequest) (*types.HabitScore, error)
	ListScores(ctx context.Context, assessmentID uuid.UUID) ([]*types.HabitScore, error)
	GetScore(ctx context.Context, scoreID uuid.UUID) (*types.HabitScore, error)
}

type assessmentService struct {
	db              *gorm.DB
	log             *logger.Logger
	userRepo        repos.UserRepo
	clientHabitRepo repos.ClientHabitRepo
	assessmentRepo  repos.AssessmentRepo
	scoreRepo       repos.HabitScoreRepo
	wellbeing       WellbeingService
	insights        InsightsService
}

func NewAssessmentService(
	db *gorm.DB,
	log *logger.Logger,
	userRepo repos.UserRepo,
	clientHabitRepo repos.ClientHabitRepo,
	assessmentRepo repos.AssessmentRepo,
	scoreRepo repos.HabitScoreRepo,
	wellbeing WellbeingService,
	insights InsightsService,
) AssessmentService {
	return &assessmentService{
		db:              db,
		log:             log.With("service", "AssessmentService"),
		userRepo:        userRepo,
		clientHabitRepo: clientHabitRepo,
		assessmentRepo:  assessmentRepo,
		scoreRepo:       scoreRepo,
		wellbeing:       wellbeing,
		insights:        insights,
	}
}

func (as *assessmentService) CreateAssessment(ctx context.Context, req CreateAssessmentRequest) (*types.WeeklyAssessment, error) {
	if req.WeekStart.IsZero() {
		return nil, apperr.Validation("week_start_date", "week_start_date is required")
	}
	weekStart := datatypes.Date(req.WeekStart)
	comment := normalization.StripMarkupPtr(req.OverallComment)
	if err := checkFreeText("overall_comment", comment); err != nil {
		return nil, err
	}

	assessment := &types.WeeklyAssessment{
		ID:             uuid.New(),
		ClientID:       req.ClientID,
		WeekStart:      weekStart,
		OverallComment: comment,
		SubmittedAt:    time.Now().UTC(),
	}

	err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		client, err := as.userRepo.GetByID(ctx, tx, req.ClientID)
		if err != nil {
			return err
		}
		if client == nil || client.Role != types.RoleClient {
			return apperr.NotFound("client")
		}

		taken, err := as.assessmentRepo.WeekTaken(ctx, tx, req.ClientID, weekStart, uuid.Nil)
		if err != nil {
			return err
		}
		if taken {
			return apperr.Conflict("week_start_date", "an assessment already exists for this week")
		}

		return as.assessmentRepo.Create(ctx, tx, assessment)
	})
	if err != nil {
		return nil, err
	}

	// A new assessment changes which week is "latest" even before it
	// has scores.
	as.insights.Invalidate(ctx, req.ClientID)
	as.log.Info("assessment created",
		"assessment_id", assessment.ID.String(),
		"client_id", assessment.ClientID.String())
	return assessment, nil
}

func (as *assessmentService) GetAssessment(ctx context.Context, assessmentID uuid.UUID) (*types.WeeklyAssessment, error) {
	assessment, err := as.assessmentRepo.GetByID(ctx, nil, assessmentID)
	if err != nil {
		return nil, err
	}
	if assessment == nil {
		return nil, apperr.NotFound("assessment")
	}
	return assessment, nil
}

func (as *assessmentService) UpdateComment(ctx context.Context, assessmentID uuid.UUID, comment *string) (*types.WeeklyAssessment, error) {
	sanitized := normalization.StripMarkupPtr(comment)
	if err := checkFreeText("overall_comment", sanitized); err != nil {
		return nil, err
	}

	var assessment *types.WeeklyAssessment
	err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := as.assessmentRepo.GetByID(ctx, tx, assessmentID)
		if err != nil {
			return err
		}
		if existing == nil {
			return apperr.NotFound("assessment")
		}

		existing.OverallComment = sanitized
		if err := as.assessmentRepo.UpdateComment(ctx, tx, existing.ID, existing.OverallComment); err != nil {
			return err
		}
		assessment = existing
		return nil
	})
	if err != nil {
		return nil, err
	}
	return assessment, nil
}

func (as *assessmentService) ListAssessments(ctx context.Context, req ListAssessmentsRequest) ([]*types.WeeklyAssessment, error) {
	limit, offset, err := NormalizePage(req.Limit, req.Offset)
	if err != nil {
		return nil, err
	}
	if req.From != nil && req.To != nil && req.To.Before(*req.From) {
		return nil, apperr.Validation("to", "to must not be before from")
	}
	return as.assessmentRepo.ListByClientID(ctx, nil, req.ClientID, req.From, req.To, limit, offset)
}

func (as *assessmentService) AddScore(ctx context.Context, assessmentID uuid.UUID, req AddScoreRequest) (*types.HabitScore, error) {
	if req.Score < minHabitScore || req.Score > maxHabitScore {
		return nil, apperr.Validation("score", "score must be between %d and %d", minHabitScore, maxHabitScore)
	}

	note := normalization.StripMarkupPtr(req.Note)
	if err := checkFreeText("note", note); err != nil {
		return nil, err
	}

	score := &types.HabitScore{
		ID:            uuid.New(),
		AssessmentID:  assessmentID,
		ClientHabitID: req.ClientHabitID,
		Score:         req.Score,
		Note:          note,
	}

	var clientID uuid.UUID
	err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		assessment, err := as.assessmentRepo.GetByID(ctx, tx, assessmentID)
		if err != nil {
			return err
		}
		if assessment == nil {
			return apperr.NotFound("assessment")
		}
		clientID = assessment.ClientID

		assignment, err := as.clientHabitRepo.GetByID(ctx, tx, req.ClientHabitID)
		if err != nil {
			return err
		}
		if assignment == nil {
			return apperr.NotFound("client habit")
		}
		if assignment.ClientID != assessment.ClientID {
			return apperr.Semantic("habit is not assigned to this assessment's client")
		}

		paired, err := as.scoreRepo.PairExists(ctx, tx, assessmentID, req.ClientHabitID)
		if err != nil {
			return err
		}
		if paired {
			return apperr.Conflict("client_habit_id", "habit is already scored in this assessment")
		}

		count, err := as.scoreRepo.CountActiveByAssessmentID(ctx, tx, assessmentID)
		if err != nil {
			return err
		}
		if count >= maxScoresPerAssessment {
			return apperr.Semantic("assessment already holds the maximum of %d scores", maxScoresPerAssessment)
		}

		if err := as.scoreRepo.Create(ctx, tx, score); err != nil {
			return err
		}
		return as.wellbeing.Recompute(ctx, tx, assessmentID)
	})
	if err != nil {
		return nil, err
	}

	as.insights.Invalidate(ctx, clientID)
	as.log.Info("score added",
		"score_id", score.ID.String(),
		"assessment_id", assessmentID.String())
	return score, nil
}

func (as *assessmentService) UpdateScore(ctx context.Context, scoreID uuid.UUID, req UpdateScoreRequest) (*types.HabitScore, error) {
	var (
		score    *types.HabitScore
		clientID uuid.UUID
	)
	err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := as.scoreRepo.GetByID(ctx, tx, scoreID)
		if err != nil {
			return err
		}
		if existing == nil {
			return apperr.NotFound("habit score")
		}

		if req.Score != nil {
			if *req.Score < minHabitScore || *req.Score > maxHabitScore {
				return apperr.Validation("score", "score must be between %d and %d", minHabitScore, maxHabitScore)
			}
			existing.Score = *req.Score
		}
		if req.Note != nil {
			note := normalization.StripMarkupPtr(req.Note)
			if err := checkFreeText("note", note); err != nil {
				return err
			}
			existing.Note = note
		}

		if err := as.scoreRepo.Update(ctx, tx, existing); err != nil {
			return err
		}
		if err := as.wellbeing.Recompute(ctx, tx, existing.AssessmentID); err != nil {
			return err
		}

		assessment, err := as.assessmentRepo.GetByID(ctx, tx, existing.AssessmentID)
		if err != nil {
			return err
		}
		if assessment != nil {
			clientID = assessment.ClientID
		}
		score = existing
		return nil
	})
	if err != nil {
		return nil, err
	}

	if clientID != uuid.Nil {
		as.insights.Invalidate(ctx, clientID)
	}
	return score, nil
}

func (as *assessmentService) ListScores(ctx context.Context, assessmentID uuid.UUID) ([]*types.HabitScore, error) {
	assessment, err := as.assessmentRepo.GetByID(ctx, nil, assessmentID)
	if err != nil {
		return nil, err
	}
	if assessment == nil {
		return nil, apperr.NotFound("assessment")
	}
	return as.scoreRepo.ListByAssessmentID(ctx, nil, assessmentID)
}

func (as *assessmentService) GetScore(ctx context.Context, scoreID uuid.UUID) (*types.HabitScore, error) {
	score, err := as.scoreRepo.GetByID(ctx, nil, scoreID)
	if err != nil {
		return nil, err
	}
	if score == nil {
		return nil, apperr.NotFound("habit score")
	}
	return score, nil
}
