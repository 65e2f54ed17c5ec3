package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/yungbote/resilience-backend/internal/apperr"
	"github.com/yungbote/resilience-backend/internal/normalization"
	"github.com/yungbote/resilience-backend/internal/platform/logger"
	"github.com/yungbote/resilience-backend/internal/repos"
	"github.com/yungbote/resilience-backend/internal/requestdata"
	"github.com/yungbote/resilience-backend/internal/types"
)

type RegisterRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Role      string `json:"role"`
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// JWTClaims carries the role alongside the registered subject so the
// authorization decision never needs a user lookup.
type JWTClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

type AuthService interface {
	Register(ctx context.Context, req RegisterRequest) (*types.User, error)
	Login(ctx context.Context, email, password string) (*TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)
	Logout(ctx context.Context) error
	SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
}

type authService struct {
	db            *gorm.DB
	log           *logger.Logger
	userRepo      repos.UserRepo
	userTokenRepo repos.UserTokenRepo
	jwtSecretKey  string
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewAuthService(
	db *gorm.DB,
	log *logger.Logger,
	userRepo repos.UserRepo,
	userTokenRepo repos.UserTokenRepo,
	jwtSecretKey string,
	accessTTL time.Duration,
	refreshTTL time.Duration,
) AuthService {
	return &authService{
		db:            db,
		log:           log.With("service", "AuthService"),
		userRepo:      userRepo,
		userTokenRepo: userTokenRepo,
		jwtSecretKey:  jwtSecretKey,
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

func (as *authService) Register(ctx context.Context, req RegisterRequest) (*types.User, error) {
	firstName := normalization.TrimInputString(req.FirstName)
	lastName := normalization.TrimInputString(req.LastName)
	email := normalization.ParseInputString(req.Email)
	if firstName == "" {
		return nil, apperr.Validation("first_name", "first_name is required")
	}
	if lastName == "" {
		return nil, apperr.Validation("last_name", "last_name is required")
	}
	if email == "" {
		return nil, apperr.Validation("email", "email is required")
	}
	if req.Password == "" {
		return nil, apperr.Validation("password", "password is required")
	}
	role := types.Role(normalization.ParseInputString(req.Role))
	if role == "" {
		role = types.RoleClient
	}
	if !role.Valid() {
		return nil, apperr.Validation("role", "role must be %q or %q", types.RoleClient, types.RoleCounsellor)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("hash password: %w", err))
	}

	user := &types.User{
		ID:        uuid.New(),
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		Password:  string(hashed),
		Role:      role,
	}

	err = as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		taken, err := as.userRepo.EmailTaken(ctx, tx, email, uuid.Nil)
		if err != nil {
			return err
		}
		if taken {
			return apperr.Conflict("email", "email %q is already in use", email)
		}
		return as.userRepo.Create(ctx, tx, user)
	})
	if err != nil {
		return nil, err
	}

	as.log.Info("user registered", "user_id", user.ID.String(), "role", string(user.Role))
	return user, nil
}

func (as *authService) Login(ctx context.Context, email, password string) (*TokenPair, error) {
	email = normalization.ParseInputString(email)
	if email == "" || password == "" {
		return nil, apperr.Auth("email and password are required")
	}

	user, err := as.userRepo.GetByEmail(ctx, nil, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.Auth("invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, apperr.Auth("invalid credentials")
	}

	var pair *TokenPair
	err = as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// One live refresh token per user: a new login replaces any
		// earlier session.
		if err := as.userTokenRepo.DeleteByUserID(ctx, tx, user.ID); err != nil {
			return err
		}
		issued, err := as.issueTokens(ctx, tx, user)
		if err != nil {
			return err
		}
		pair = issued
		return nil
	})
	if err != nil {
		return nil, err
	}

	as.log.Info("user logged in", "user_id", user.ID.String())
	return pair, nil
}

func (as *authService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	if refreshToken == "" {
		return nil, apperr.Auth("refresh token is required")
	}

	var pair *TokenPair
	err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := as.userTokenRepo.GetByToken(ctx, tx, hashRefreshToken(refreshToken))
		if err != nil {
			return err
		}
		if existing == nil {
			return apperr.Auth("unknown refresh token")
		}
		if existing.ExpiresAt.Before(time.Now()) {
			if err := as.userTokenRepo.DeleteByUserID(ctx, tx, existing.UserID); err != nil {
				return err
			}
			return apperr.Auth("refresh token expired")
		}

		user, err := as.userRepo.GetByID(ctx, tx, existing.UserID)
		if err != nil {
			return err
		}
		if user == nil {
			return apperr.Auth("user no longer active")
		}

		// Rotate: old token out, fresh pair in.
		if err := as.userTokenRepo.DeleteByUserID(ctx, tx, existing.UserID); err != nil {
			return err
		}
		issued, err := as.issueTokens(ctx, tx, user)
		if err != nil {
			return err
		}
		pair = issued
		return nil
	})
	if err != nil {
		return nil, err
	}
	return pair, nil
}

func (as *authService) Logout(ctx context.Context) error {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil {
		return apperr.Auth("not authenticated")
	}
	return as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return as.userTokenRepo.DeleteByUserID(ctx, tx, rd.UserID)
	})
}

func (as *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
	claims := &JWTClaims{}
	parsed, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return []byte(as.jwtSecretKey), nil
	})
	if err != nil || !parsed.Valid {
		return ctx, apperr.Auth("invalid or expired token")
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return ctx, apperr.Auth("invalid token subject")
	}
	role := types.Role(claims.Role)
	if !role.Valid() {
		return ctx, apperr.Auth("invalid token role")
	}

	rd := &requestdata.RequestData{
		TokenString: tokenString,
		UserID:      userID,
		Role:        role,
	}
	return requestdata.WithRequestData(ctx, rd), nil
}

func (as *authService) issueTokens(ctx context.Context, tx *gorm.DB, user *types.User) (*TokenPair, error) {
	now := time.Now()
	claims := JWTClaims{
		Role: string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(as.accessTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	accessToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(as.jwtSecretKey))
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("sign access token: %w", err))
	}

	// Only the hash is persisted; a leaked row cannot be replayed.
	refreshToken := uuid.New().String()
	row := &types.UserToken{
		ID:        uuid.New(),
		UserID:    user.ID,
		Token:     hashRefreshToken(refreshToken),
		ExpiresAt: now.Add(as.refreshTTL),
	}
	if err := as.userTokenRepo.Create(ctx, tx, row); err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

func hashRefreshToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
