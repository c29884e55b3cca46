package identity

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/baogia/backend/internal/domain/identity"
	"github.com/baogia/backend/internal/domain/shared"
	"github.com/baogia/backend/internal/infrastructure/auth"
)

// AuthService handles account registration and login
type AuthService struct {
	users  identity.Repository
	tokens *auth.JWTService
	logger *zap.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(users identity.Repository, tokens *auth.JWTService, logger *zap.Logger) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		users:  users,
		tokens: tokens,
		logger: logger,
	}
}

// Register creates a new account and issues its first token
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	exists, err := s.users.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "An account with this email already exists")
	}

	user, err := identity.NewUser(req.Email, req.Name, req.Password)
	if err != nil {
		return nil, err
	}

	if err := s.users.Save(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to save user: %w", err)
	}

	s.logger.Info("account registered",
		zap.String("userId", user.ID.String()),
		zap.String("email", user.Email))

	return s.issueToken(user)
}

// Login verifies credentials and issues a token
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	user, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !user.Active {
		return nil, shared.NewDomainError("ACCOUNT_DISABLED", "This account has been disabled")
	}
	if !user.CheckPassword(req.Password) {
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
	}

	s.logger.Info("login", zap.String("userId", user.ID.String()))

	return s.issueToken(user)
}

// GetProfile returns the account behind a token
func (s *AuthService) GetProfile(ctx context.Context, userID uuid.UUID) (*UserResponse, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Account not found")
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	resp := toUserResponse(user)
	return &resp, nil
}

// ChangePassword verifies the current password and stores a new one
func (s *AuthService) ChangePassword(ctx context.Context, userID uuid.UUID, req ChangePasswordRequest) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError("NOT_FOUND", "Account not found")
		}
		return fmt.Errorf("failed to find user: %w", err)
	}

	if !user.CheckPassword(req.CurrentPassword) {
		return shared.NewDomainError("INVALID_CREDENTIALS", "Current password is incorrect")
	}
	if err := user.ChangePassword(req.NewPassword); err != nil {
		return err
	}

	if err := s.users.Save(ctx, user); err != nil {
		return fmt.Errorf("failed to save user: %w", err)
	}

	s.logger.Info("password changed", zap.String("userId", user.ID.String()))
	return nil
}

func (s *AuthService) issueToken(user *identity.User) (*AuthResponse, error) {
	token, err := s.tokens.GenerateToken(user.ID, user.Email, user.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}
	return &AuthResponse{
		User:        toUserResponse(user),
		AccessToken: token.AccessToken,
		TokenType:   token.TokenType,
		ExpiresAt:   token.ExpiresAt,
	}, nil
}

func toUserResponse(u *identity.User) UserResponse {
	return UserResponse{
		ID:        u.ID.String(),
		Email:     u.Email,
		Name:      u.Name,
		Active:    u.Active,
		CreatedAt: u.CreatedAt,
	}
}
