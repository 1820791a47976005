package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"siports-backend/internal/adapters/persistence/models"
	"siports-backend/internal/adapters/persistence/repositories"
	"siports-backend/internal/config"
	"siports-backend/internal/core/domain"
	"siports-backend/internal/pkg/jwt"
	"siports-backend/internal/pkg/password"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AuthService handles authentication business logic
type AuthService struct {
	userRepo repositories.UserRepository
	cfg      *config.Config
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo repositories.UserRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		cfg:      cfg,
	}
}

// RegisterInput represents registration input
type RegisterInput struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	FirstName string `json:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name" validate:"required,max=100"`
	UserType  string `json:"user_type" validate:"omitempty,oneof=visitor exhibitor partner"`
	Company   string `json:"company" validate:"omitempty,max=200"`
	Position  string `json:"position" validate:"omitempty,max=100"`
	Phone     string `json:"phone" validate:"omitempty,max=30"`
	Sector    string `json:"sector" validate:"omitempty,max=100"`
	Interests string `json:"interests"`
}

// LoginInput represents login input
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse represents an authentication result
type AuthResponse struct {
	User        *models.User
	AccessToken string
}

// Register creates a new account in pending status. Login works right
// away; the pending status gates validation-dependent features, not
// authentication.
func (s *AuthService) Register(ctx context.Context, input *RegisterInput) (*models.User, error) {
	role := domain.Role(input.UserType)
	if input.UserType == "" {
		role = domain.RoleVisitor
	}
	if !domain.ValidRegistrationRole(role) {
		return nil, domain.ErrInvalidArgument
	}

	exists, err := s.userRepo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrDuplicateEmail
	}

	hashed, err := password.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:        input.Email,
		PasswordHash: hashed,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Company:      input.Company,
		Position:     input.Position,
		Phone:        input.Phone,
		Sector:       input.Sector,
		Interests:    input.Interests,
		Role:         string(role),
		Status:       string(domain.StatusPending),
	}
	user.ProfileCompletion = ProfileCompletion(user)

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Login authenticates a registered account and issues an access token.
// A missing account and a wrong password produce the same error so
// callers cannot probe which emails exist.
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*AuthResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !password.Verify(input.Password, user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := jwt.GenerateAccessToken(user.ID, s.cfg.JWT.Secret, s.cfg.JWT.ExpiryHours)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{User: user, AccessToken: token}, nil
}

// VisitorSession creates an anonymous visitor account and logs it in.
// The row is persisted so the rest of the system can treat the session
// like any other user; a cleanup job purges stale ones.
func (s *AuthService) VisitorSession(ctx context.Context) (*AuthResponse, error) {
	tag := uuid.New().String()[:8]

	hashed, err := password.Hash(uuid.New().String())
	if err != nil {
		return nil, err
	}

	freePass := "free"
	freeExpiry := time.Now().AddDate(0, 0, 1)
	user := &models.User{
		Email:             fmt.Sprintf("visiteur_%s@siportevent.com", tag),
		PasswordHash:      hashed,
		FirstName:         "Visiteur",
		LastName:          tag,
		Role:              string(domain.RoleVisitor),
		Status:            string(domain.StatusPending),
		IsAnonymous:       true,
		ProfileCompletion: 30,
		CurrentPackage:    &freePass,
		PackageExpiresAt:  &freeExpiry,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	token, err := jwt.GenerateAccessToken(user.ID, s.cfg.JWT.Secret, s.cfg.JWT.ExpiryHours)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{User: user, AccessToken: token}, nil
}

// GetUserByID loads a user by ID
func (s *AuthService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// profile fields that count toward completion, 10% each
func ProfileCompletion(u *models.User) int {
	fields := []string{
		u.Email,
		u.PasswordHash,
		u.FirstName,
		u.LastName,
		u.Role,
		u.Company,
		u.Position,
		u.Phone,
		u.Sector,
		u.Interests,
	}

	score := 0
	for _, f := range fields {
		if f != "" {
			score += 10
		}
	}
	return score
}
