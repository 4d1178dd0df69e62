package services

import (
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"asset_inventory_backend/internal/models"
	"asset_inventory_backend/internal/repositories"
	"asset_inventory_backend/pkg/utils"
)

// --- Auth DTOs ---

type LoginRequest struct {
	UserID string `json:"user_id" binding:"required"`
	PIN    string `json:"pin" binding:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// LoginResult carries the authenticated user and the issued token pair.
type LoginResult struct {
	User         *models.User `json:"user"`
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
}

// --- AuthService Interface ---

type AuthService interface {
	Login(req LoginRequest) (*LoginResult, error)
	Refresh(req RefreshTokenRequest) (*LoginResult, error)
	GetCurrentUser(userID string) (*models.User, error)
}

type authService struct {
	userRepo repositories.UserRepository
	db       repositories.SQLExecutor
}

// NewAuthService creates a new instance of AuthService.
func NewAuthService(userRepo repositories.UserRepository, db repositories.SQLExecutor) AuthService {
	return &authService{userRepo: userRepo, db: db}
}

// Login verifies the user's PIN and issues an access/refresh token pair. A
// wrong PIN and a malformed PIN both surface as ErrInvalidPIN so the response
// does not leak which part failed.
func (s *authService) Login(req LoginRequest) (*LoginResult, error) {
	if !utils.IsValidPIN(req.PIN) {
		return nil, fmt.Errorf("%w: PIN must be 4 to 6 digits", ErrInvalidPIN)
	}

	user, err := s.userRepo.GetByID(s.db, req.UserID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user for login: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PinHash), []byte(req.PIN)); err != nil {
		return nil, fmt.Errorf("%w: PIN does not match", ErrInvalidPIN)
	}

	now := time.Now().UTC()
	if err := s.userRepo.UpdateLastLogin(s.db, user.ID, now); err != nil {
		// Login still succeeds; the timestamp is informational.
		utils.LogError(err, "Failed to stamp last_login")
	} else {
		user.LastLogin = &now
	}

	return s.issueTokens(user)
}

// Refresh exchanges a valid refresh token for a fresh token pair.
func (s *authService) Refresh(req RefreshTokenRequest) (*LoginResult, error) {
	claims, err := utils.ValidateToken(req.RefreshToken)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid refresh token", ErrValidation)
	}

	user, err := s.userRepo.GetByID(s.db, claims.UserID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user for refresh: %w", err)
	}
	return s.issueTokens(user)
}

func (s *authService) GetCurrentUser(userID string) (*models.User, error) {
	user, err := s.userRepo.GetByID(s.db, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load current user: %w", err)
	}
	return user, nil
}

func (s *authService) issueTokens(user *models.User) (*LoginResult, error) {
	accessToken, err := utils.GenerateAccessToken(user.ID, user.Name, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}
	refreshToken, err := utils.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}
	return &LoginResult{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}
