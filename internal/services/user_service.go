package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"asset_inventory_backend/internal/models"
	"asset_inventory_backend/internal/repositories"
	"asset_inventory_backend/pkg/utils"
)

// --- User DTOs ---

type CreateUserRequest struct {
	Name      string  `json:"name" binding:"required"`
	Role      string  `json:"role" binding:"required"`
	PIN       string  `json:"pin" binding:"required"`
	CreatedBy *string `json:"created_by"`
}

type UpdateUserRequest struct {
	Name *string `json:"name"`
	Role *string `json:"role"`
	PIN  *string `json:"pin"`
}

// --- UserService Interface ---

type UserService interface {
	CreateUser(req CreateUserRequest) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	GetUsers(limit int) ([]models.User, error)
	UpdateUser(id string, req UpdateUserRequest) (*models.User, error)
	DeleteUser(id string) error
	SeedDefaultUsers() error
}

type userService struct {
	userRepo repositories.UserRepository
	db       repositories.SQLExecutor
}

// NewUserService creates a new instance of UserService.
func NewUserService(userRepo repositories.UserRepository, db repositories.SQLExecutor) UserService {
	return &userService{userRepo: userRepo, db: db}
}

func (s *userService) CreateUser(req CreateUserRequest) (*models.User, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: user name cannot be empty", ErrValidation)
	}
	if !models.IsValidRole(req.Role) {
		return nil, fmt.Errorf("%w: unknown role %q", ErrValidation, req.Role)
	}
	if !utils.IsValidPIN(req.PIN) {
		return nil, fmt.Errorf("%w: PIN must be 4 to 6 digits", ErrInvalidPIN)
	}

	pinHash, err := bcrypt.GenerateFromPassword([]byte(req.PIN), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash PIN: %w", err)
	}

	user := &models.User{
		ID:        uuid.NewString(),
		Name:      req.Name,
		Role:      req.Role,
		PinHash:   string(pinHash),
		CreatedAt: time.Now().UTC(),
		CreatedBy: req.CreatedBy,
	}
	if err := s.userRepo.Create(s.db, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, fmt.Errorf("%w: %s", ErrUserNameExists, req.Name)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

func (s *userService) GetUserByID(id string) (*models.User, error) {
	user, err := s.userRepo.GetByID(s.db, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

func (s *userService) GetUsers(limit int) ([]models.User, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	users, err := s.userRepo.GetAll(limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get users: %w", err)
	}
	return users, nil
}

func (s *userService) UpdateUser(id string, req UpdateUserRequest) (*models.User, error) {
	user, err := s.userRepo.GetByID(s.db, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user for update: %w", err)
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, fmt.Errorf("%w: user name cannot be empty if provided", ErrValidation)
		}
		user.Name = *req.Name
	}
	if req.Role != nil {
		if !models.IsValidRole(*req.Role) {
			return nil, fmt.Errorf("%w: unknown role %q", ErrValidation, *req.Role)
		}
		user.Role = *req.Role
	}
	if req.PIN != nil {
		if !utils.IsValidPIN(*req.PIN) {
			return nil, fmt.Errorf("%w: PIN must be 4 to 6 digits", ErrInvalidPIN)
		}
		pinHash, err := bcrypt.GenerateFromPassword([]byte(*req.PIN), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash PIN: %w", err)
		}
		user.PinHash = string(pinHash)
	}

	if err := s.userRepo.Update(s.db, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, fmt.Errorf("%w: %s", ErrUserNameExists, user.Name)
		}
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

func (s *userService) DeleteUser(id string) error {
	if err := s.userRepo.Delete(s.db, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}

// defaultUsers is the team seeded into an empty database so the app is usable
// on first boot. All seeded accounts share the default PIN.
var defaultUsers = []struct {
	name string
	role string
}{
	{"lee_carter", models.RoleSupervisor},
	{"dan_carter", models.RoleSupervisor},
	{"lee_paull", models.RoleEngineer},
	{"dean_turnill", models.RoleEngineer},
	{"luis", models.RoleEngineer},
}

const defaultSeedPIN = "1234"

// SeedDefaultUsers inserts the default team when the users table is empty.
// It is a no-op on any subsequent boot.
func (s *userService) SeedDefaultUsers() error {
	count, err := s.userRepo.Count()
	if err != nil {
		return fmt.Errorf("failed to count users: %w", err)
	}
	if count > 0 {
		return nil
	}

	pinHash, err := bcrypt.GenerateFromPassword([]byte(defaultSeedPIN), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash seed PIN: %w", err)
	}
	for _, seed := range defaultUsers {
		user := &models.User{
			ID:        uuid.NewString(),
			Name:      seed.name,
			Role:      seed.role,
			PinHash:   string(pinHash),
			CreatedAt: time.Now().UTC(),
		}
		if err := s.userRepo.Create(s.db, user); err != nil {
			return fmt.Errorf("failed to seed user %s: %w", seed.name, err)
		}
	}
	utils.LogInfo("Seeded default users", map[string]interface{}{"count": len(defaultUsers)})
	return nil
}
