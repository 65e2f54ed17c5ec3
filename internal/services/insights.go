package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"

	"github.com/yungbote/resilience-backend/internal/clients/cache"
	"github.com/yungbote/resilience-backend/internal/platform/logger"
	"github.com/yungbote/resilience-backend/internal/repos"
)

const insightsCacheTTL = 5 * time.Minute

// LatestInsights is the trend derivation for one client: the most
// recent wellbeing score and its change against the prior week.
// Score is nil when the latest assessment has no active scores yet;
// Delta is nil unless both of the two most recent scores are present.
type LatestInsights struct {
	HasData bool     `json:"has_data"`
	Score   *float64 `json:"score,omitempty"`
	Delta   *float64 `json:"delta,omitempty"`
	AsOf    *string  `json:"as_of,omitempty"`
}

// InsightsService is a pure read derivation over stored assessments;
// it creates no records. A redis cache fronts the derivation and
// every mutation that can change it calls Invalidate after commit.
type InsightsService interface {
	Latest(ctx context.Context, clientID uuid.UUID) (*LatestInsights, error)
	Invalidate(ctx context.Context, clientID uuid.UUID)
}

type insightsService struct {
	db             *gorm.DB
	log            *logger.Logger
	assessmentRepo repos.AssessmentRepo
	cache          cache.Cache
	group          singleflight.Group
}

// NewInsightsService accepts a nil cache; derivation then always hits
// the store.
func NewInsightsService(db *gorm.DB, log *logger.Logger, assessmentRepo repos.AssessmentRepo, c cache.Cache) InsightsService {
	return &insightsService{
		db:             db,
		log:            log.With("service", "InsightsService"),
		assessmentRepo: assessmentRepo,
		cache:          c,
	}
}

func (is *insightsService) Latest(ctx context.Context, clientID uuid.UUID) (*LatestInsights, error) {
	key := insightsCacheKey(clientID)

	if is.cache != nil {
		raw, err := is.cache.Get(ctx, key)
		if err != nil {
			is.log.Warn("Insights cache read failed, falling back to store", "error", err)
		} else if raw != nil {
			var cached LatestInsights
			if err := json.Unmarshal(raw, &cached); err == nil {
				return &cached, nil
			}
			is.log.Warn("Insights cache entry unreadable, recomputing", "key", key)
		}
	}

	// Concurrent requests for the same client collapse into one
	// derivation.
	result, err, _ := is.group.Do(key, func() (interface{}, error) {
		return is.derive(ctx, clientID)
	})
	if err != nil {
		return nil, err
	}
	insights := result.(*LatestInsights)

	if is.cache != nil {
		if raw, err := json.Marshal(insights); err == nil {
			if err := is.cache.Set(ctx, key, raw, insightsCacheTTL); err != nil {
				is.log.Warn("Insights cache write failed", "error", err)
			}
		}
	}
	return insights, nil
}

func (is *insightsService) derive(ctx context.Context, clientID uuid.UUID) (*LatestInsights, error) {
	latest, err := is.assessmentRepo.LatestTwoByClientID(ctx, nil, clientID)
	if err != nil {
		return nil, fmt.Errorf("load latest assessments: %w", err)
	}
	if len(latest) == 0 {
		return &LatestInsights{HasData: false}, nil
	}

	newest := latest[0]
	asOf := time.Time(newest.WeekStart).Format("2006-01-02")
	insights := &LatestInsights{
		HasData: true,
		Score:   newest.WellbeingScore,
		AsOf:    &asOf,
	}
	if len(latest) == 2 && newest.WellbeingScore != nil && latest[1].WellbeingScore != nil {
		delta := roundScore(*newest.WellbeingScore - *latest[1].WellbeingScore)
		insights.Delta = &delta
	}
	return insights, nil
}

func (is *insightsService) Invalidate(ctx context.Context, clientID uuid.UUID) {
	if is.cache == nil {
		return
	}
	if err := is.cache.Del(ctx, insightsCacheKey(clientID)); err != nil {
		is.log.Warn("Insights cache invalidation failed", "client_id", clientID, "error", err)
	}
}

func insightsCacheKey(clientID uuid.UUID) string {
	return "insights:latest:" + clientID.String()
}
