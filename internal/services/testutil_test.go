package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/yungbote/resilience-backend/internal/platform/logger"
	"github.com/yungbote/resilience-backend/internal/repos"
	"github.com/yungbote/resilience-backend/internal/types"
)

// memCache is a map-backed cache so tests exercise the caching and
// invalidation paths without a redis server.
type memCache struct {
	mu      sync.Mutex
	entries map[string][]byte
}

func newMemCache() *memCache {
	return &memCache{entries: map[string][]byte{}}
}

func (m *memCache) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.entries[key]
	if !ok {
		return nil, nil
	}
	return val, nil
}

func (m *memCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = value
	return nil
}

func (m *memCache) Del(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
	return nil
}

func (m *memCache) Close() error { return nil }

// fixture bundles every service against one in-memory database so a
// test can drive the full flow: register, assign, assess, score.
type fixture struct {
	db          *gorm.DB
	user        UserService
	habit       HabitService
	clientHabit ClientHabitService
	assessment  AssessmentService
	wellbeing   WellbeingService
	insights    InsightsService
	deleter     SoftDeleteService
	auth        AuthService
	cache       *memCache

	userRepo       repos.UserRepo
	assessmentRepo repos.AssessmentRepo
	scoreRepo      repos.HabitScoreRepo
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("unwrap sql.DB: %v", err)
	}
	// One connection keeps the in-memory database alive across the
	// pool.
	sqlDB.SetMaxOpenConns(1)

	if err := gdb.AutoMigrate(
		&types.User{},
		&types.UserToken{},
		&types.Habit{},
		&types.ClientHabit{},
		&types.WeeklyAssessment{},
		&types.HabitScore{},
	); err != nil {
		t.Fatalf("automigrate: %v", err)
	}

	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}

	userRepo := repos.NewUserRepo(gdb, log)
	userTokenRepo := repos.NewUserTokenRepo(gdb, log)
	habitRepo := repos.NewHabitRepo(gdb, log)
	clientHabitRepo := repos.NewClientHabitRepo(gdb, log)
	assessmentRepo := repos.NewAssessmentRepo(gdb, log)
	scoreRepo := repos.NewHabitScoreRepo(gdb, log)

	wellbeing := NewWellbeingService(gdb, log, scoreRepo, assessmentRepo)
	c := newMemCache()
	insights := NewInsightsService(gdb, log, assessmentRepo, c)

	return &fixture{
		db:          gdb,
		user:        NewUserService(gdb, log, userRepo),
		habit:       NewHabitService(gdb, log, habitRepo),
		clientHabit: NewClientHabitService(gdb, log, userRepo, habitRepo, clientHabitRepo, scoreRepo),
		assessment:  NewAssessmentService(gdb, log, userRepo, clientHabitRepo, assessmentRepo, scoreRepo, wellbeing, insights),
		wellbeing:   wellbeing,
		insights:    insights,
		deleter:     NewSoftDeleteService(gdb, log, userRepo, habitRepo, clientHabitRepo, assessmentRepo, scoreRepo, wellbeing, insights),
		auth:        NewAuthService(gdb, log, userRepo, userTokenRepo, "test-secret", time.Hour, 24*time.Hour),
		cache:       c,

		userRepo:       userRepo,
		assessmentRepo: assessmentRepo,
		scoreRepo:      scoreRepo,
	}
}

func (f *fixture) mustClient(t *testing.T, email string) *types.User {
	t.Helper()
	client, err := f.user.CreateClient(context.Background(), CreateClientRequest{
		FirstName: "Test",
		LastName:  "Client",
		Email:     email,
		Password:  "password123",
	})
	if err != nil {
		t.Fatalf("create client: %v", err)
	}
	return client
}

func (f *fixture) mustHabit(t *testing.T, name string) *types.Habit {
	t.Helper()
	habit, err := f.habit.CreateHabit(context.Background(), CreateHabitRequest{Name: name})
	if err != nil {
		t.Fatalf("create habit %q: %v", name, err)
	}
	return habit
}

func (f *fixture) mustAssign(t *testing.T, clientID, habitID uuid.UUID, order int) *types.ClientHabit {
	t.Helper()
	assignment, err := f.clientHabit.AssignHabit(context.Background(), AssignHabitRequest{
		ClientID:     clientID,
		HabitID:      habitID,
		DisplayOrder: order,
	})
	if err != nil {
		t.Fatalf("assign habit: %v", err)
	}
	return assignment
}

func (f *fixture) mustAssessment(t *testing.T, clientID uuid.UUID, weekStart time.Time) *types.WeeklyAssessment {
	t.Helper()
	assessment, err := f.assessment.CreateAssessment(context.Background(), CreateAssessmentRequest{
		ClientID:  clientID,
		WeekStart: weekStart,
	})
	if err != nil {
		t.Fatalf("create assessment: %v", err)
	}
	return assessment
}

func (f *fixture) mustScore(t *testing.T, assessmentID, clientHabitID uuid.UUID, value int) *types.HabitScore {
	t.Helper()
	score, err := f.assessment.AddScore(context.Background(), assessmentID, AddScoreRequest{
		ClientHabitID: clientHabitID,
		Score:         value,
	})
	if err != nil {
		t.Fatalf("add score: %v", err)
	}
	return score
}

func week(t *testing.T, iso string) time.Time {
	t.Helper()
	ts, err := time.Parse("2006-01-02", iso)
	if err != nil {
		t.Fatalf("parse week %q: %v", iso, err)
	}
	return ts
}
