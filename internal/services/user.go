package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/yungbote/resilience-backend/internal/apperr"
	"github.com/yungbote/resilience-backend/internal/normalization"
	"github.com/yungbote/resilience-backend/internal/platform/logger"
	"github.com/yungbote/resilience-backend/internal/repos"
	"github.com/yungbote/resilience-backend/internal/types"
)

type CreateClientRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// UpdateClientRequest carries partial updates. Nil means "leave it
// alone". Role is not here on purpose: it is immutable after creation.
type UpdateClientRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Email     *string `json:"email"`
}

// UserService manages client accounts. Counsellors are created out of
// band (seeding), never through this surface.
type UserService interface {
	CreateClient(ctx context.Context, req CreateClientRequest) (*types.User, error)
	GetClient(ctx context.Context, clientID uuid.UUID) (*types.User, error)
	UpdateClient(ctx context.Context, clientID uuid.UUID, req UpdateClientRequest) (*types.User, error)
	ListClients(ctx context.Context, limit, offset int) ([]*types.User, error)
}

type userService struct {
	db       *gorm.DB
	log      *logger.Logger
	userRepo repos.UserRepo
}

func NewUserService(db *gorm.DB, log *logger.Logger, userRepo repos.UserRepo) UserService {
	return &userService{
		db:       db,
		log:      log.With("service", "UserService"),
		userRepo: userRepo,
	}
}

func (us *userService) CreateClient(ctx context.Context, req CreateClientRequest) (*types.User, error) {
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

	password := req.Password
	if password == "" {
		generated, err := randomPassword()
		if err != nil {
			return nil, apperr.Internal(err)
		}
		password = generated
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("hash password: %w", err))
	}

	user := &types.User{
		ID:        uuid.New(),
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		Password:  string(hashed),
		Role:      types.RoleClient,
	}

	err = us.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		taken, err := us.userRepo.EmailTaken(ctx, tx, email, uuid.Nil)
		if err != nil {
			return err
		}
		if taken {
			return apperr.Conflict("email", "email %q is already in use", email)
		}
		return us.userRepo.Create(ctx, tx, user)
	})
	if err != nil {
		return nil, err
	}

	us.log.Info("client created", "client_id", user.ID.String())
	return user, nil
}

func (us *userService) GetClient(ctx context.Context, clientID uuid.UUID) (*types.User, error) {
	user, err := us.userRepo.GetByID(ctx, nil, clientID)
	if err != nil {
		return nil, err
	}
	if user == nil || user.Role != types.RoleClient {
		return nil, apperr.NotFound("client")
	}
	return user, nil
}

func (us *userService) UpdateClient(ctx context.Context, clientID uuid.UUID, req UpdateClientRequest) (*types.User, error) {
	var user *types.User
	err := us.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := us.userRepo.GetByID(ctx, tx, clientID)
		if err != nil {
			return err
		}
		if existing == nil || existing.Role != types.RoleClient {
			return apperr.NotFound("client")
		}

		if req.FirstName != nil {
			name := normalization.TrimInputString(*req.FirstName)
			if name == "" {
				return apperr.Validation("first_name", "first_name cannot be empty")
			}
			existing.FirstName = name
		}
		if req.LastName != nil {
			name := normalization.TrimInputString(*req.LastName)
			if name == "" {
				return apperr.Validation("last_name", "last_name cannot be empty")
			}
			existing.LastName = name
		}
		if req.Email != nil {
			email := normalization.ParseInputString(*req.Email)
			if email == "" {
				return apperr.Validation("email", "email cannot be empty")
			}
			if email != existing.Email {
				taken, err := us.userRepo.EmailTaken(ctx, tx, email, existing.ID)
				if err != nil {
					return err
				}
				if taken {
					return apperr.Conflict("email", "email %q is already in use", email)
				}
				existing.Email = email
			}
		}

		if err := us.userRepo.Update(ctx, tx, existing); err != nil {
			return err
		}
		user = existing
		return nil
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (us *userService) ListClients(ctx context.Context, limit, offset int) ([]*types.User, error) {
	limit, offset, err := NormalizePage(limit, offset)
	if err != nil {
		return nil, err
	}
	return us.userRepo.ListClients(ctx, nil, limit, offset)
}

func randomPassword() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate password: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
