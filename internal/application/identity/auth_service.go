package identity

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jobsight/backend/internal/domain/identity"
	"github.com/jobsight/backend/internal/domain/shared"
	"github.com/jobsight/backend/internal/infrastructure/auth"
)

// errInvalidCredentials is returned for both unknown emails and wrong
// passwords so login responses cannot be used to probe for accounts.
var errInvalidCredentials = shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")

// AuthService handles registration and login
type AuthService struct {
	userRepo identity.UserRepository
	jwt      *auth.JWTService
	logger   *zap.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo identity.UserRepository, jwt *auth.JWTService, logger *zap.Logger) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		jwt:      jwt,
		logger:   logger,
	}
}

// Register creates a user account and issues its first token
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	exists, err := s.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.ErrAlreadyExists
	}

	u, err := identity.NewUser(email, req.Password, req.FullName)
	if err != nil {
		return nil, err
	}
	if err := s.userRepo.Save(ctx, u); err != nil {
		return nil, err
	}

	token, err := s.jwt.Generate(u.ID, u.Email)
	if err != nil {
		return nil, err
	}

	s.logger.Info("user registered", zap.String("user_id", u.ID.String()))

	return &AuthResponse{Token: token, User: ToUserResponse(u)}, nil
}

// Login authenticates a user and issues a token
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	u, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, errInvalidCredentials
	}
	if !u.CheckPassword(req.Password) {
		return nil, errInvalidCredentials
	}
	if !u.IsActive() {
		return nil, shared.NewDomainError("ACCOUNT_DISABLED", "This account has been disabled")
	}

	u.RecordLogin()
	if err := s.userRepo.Save(ctx, u); err != nil {
		// A failed login stamp must not block the login itself
		s.logger.Warn("failed to record login time",
			zap.String("user_id", u.ID.String()),
			zap.Error(err))
	}

	token, err := s.jwt.Generate(u.ID, u.Email)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{Token: token, User: ToUserResponse(u)}, nil
}

// GetUser retrieves the authenticated user's profile
func (s *AuthService) GetUser(ctx context.Context, userID uuid.UUID) (*UserResponse, error) {
	u, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	response := ToUserResponse(u)
	return &response, nil
}
