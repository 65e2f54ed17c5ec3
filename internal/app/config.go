package app

import (
	"strings"
	"time"

	"github.com/yungbote/resilience-backend/internal/platform/logger"
	"github.com/yungbote/resilience-backend/internal/utils"
)

type Config struct {
	JWTSecretKey    string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
	SeedHabitsFile  string
	CORSOrigins     []string
	ServiceName     string
	Environment     string
	Version         string
}

func LoadConfig(log *logger.Logger) Config {
	jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	accessTokenTTLSeconds := utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)
	refreshTokenTTLSeconds := utils.GetEnvAsInt("REFRESH_TOKEN_TTL", 86400, log)
	seedHabitsFile := utils.GetEnv("SEED_HABITS_FILE", "configs/habits.yaml", log)
	corsOrigins := utils.GetEnv("CORS_ORIGINS", "", log)

	var origins []string
	for _, o := range strings.Split(corsOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}

	return Config{
		JWTSecretKey:    jwtSecretKey,
		AccessTokenTTL:  time.Duration(accessTokenTTLSeconds) * time.Second,
		RefreshTokenTTL: time.Duration(refreshTokenTTLSeconds) * time.Second,
		SeedHabitsFile:  seedHabitsFile,
		CORSOrigins:     origins,
		ServiceName:     utils.GetEnv("SERVICE_NAME", "resilience", log),
		Environment:     utils.GetEnv("ENVIRONMENT", "development", log),
		Version:         utils.GetEnv("SERVICE_VERSION", "dev", log),
	}
}
