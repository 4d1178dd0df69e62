package repositories

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"asset_inventory_backend/internal/models"
)

// UserRepository defines the interface for user-related database operations.
type UserRepository interface {
	Create(executor SQLExecutor, user *models.User) error
	GetByID(executor SQLExecutor, id string) (*models.User, error)
	GetByName(executor SQLExecutor, name string) (*models.User, error)
	GetAll(limit int) ([]models.User, error)
	Update(executor SQLExecutor, user *models.User) error
	Delete(executor SQLExecutor, id string) error
	UpdateLastLogin(executor SQLExecutor, id string, at time.Time) error
	Count() (int, error)
}

type userRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new instance of UserRepository.
func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{db: db}
}

const userColumns = `id, name, role, pin_hash, created_at, last_login, created_by`

func (r *userRepository) Create(executor SQLExecutor, user *models.User) error {
	query := `INSERT INTO users (id, name, role, pin_hash, created_at, last_login, created_by)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := executor.Exec(query,
		user.ID, user.Name, user.Role, user.PinHash, user.CreatedAt, user.LastLogin, user.CreatedBy,
	)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return fmt.Errorf("%w: creating user: %v", ErrDuplicateKey, err)
		}
		return fmt.Errorf("%w: creating user: %v", ErrDatabaseError, err)
	}
	return nil
}

func (r *userRepository) GetByID(executor SQLExecutor, id string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(executor.QueryRow(query, id))
}

func (r *userRepository) GetByName(executor SQLExecutor, name string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE name = $1`
	return scanUser(executor.QueryRow(query, name))
}

func (r *userRepository) GetAll(limit int) ([]models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY name ASC LIMIT $1`
	rows, err := r.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: getting users: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		var user models.User
		if err := rows.Scan(
			&user.ID, &user.Name, &user.Role, &user.PinHash,
			&user.CreatedAt, &user.LastLogin, &user.CreatedBy,
		); err != nil {
			return nil, fmt.Errorf("%w: scanning user: %v", ErrDatabaseError, err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating users: %v", ErrDatabaseError, err)
	}
	return users, nil
}

func (r *userRepository) Update(executor SQLExecutor, user *models.User) error {
	query := `UPDATE users SET name = $2, role = $3, pin_hash = $4 WHERE id = $1`
	result, err := executor.Exec(query, user.ID, user.Name, user.Role, user.PinHash)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return fmt.Errorf("%w: updating user: %v", ErrDuplicateKey, err)
		}
		return fmt.Errorf("%w: updating user: %v", ErrDatabaseError, err)
	}
	return requireRowsAffected(result, "updating user")
}

func (r *userRepository) Delete(executor SQLExecutor, id string) error {
	result, err := executor.Exec(`DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%w: deleting user: %v", ErrDatabaseError, err)
	}
	return requireRowsAffected(result, "deleting user")
}

func (r *userRepository) UpdateLastLogin(executor SQLExecutor, id string, at time.Time) error {
	result, err := executor.Exec(`UPDATE users SET last_login = $2 WHERE id = $1`, id, at)
	if err != nil {
		return fmt.Errorf("%w: updating last login: %v", ErrDatabaseError, err)
	}
	return requireRowsAffected(result, "updating last login")
}

func (r *userRepository) Count() (int, error) {
	var count int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: counting users: %v", ErrDatabaseError, err)
	}
	return count, nil
}

func scanUser(row *sql.Row) (*models.User, error) {
	var user models.User
	err := row.Scan(
		&user.ID, &user.Name, &user.Role, &user.PinHash,
		&user.CreatedAt, &user.LastLogin, &user.CreatedBy,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: scanning user: %v", ErrDatabaseError, err)
	}
	return &user, nil
}
