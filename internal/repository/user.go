package repository

import (
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/hadikasem/AI-Financial-Advisor/internal/model"
)

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrDuplicateUser = errors.New("email or username already exists")
)

type UserRepository interface {
	Create(user *model.User) error
	ByID(id string) (*model.User, error)
	ByEmail(email string) (*model.User, error)
	ByUsername(username string) (*model.User, error)
	Update(user *model.User) error
	UpdateGamification(user *model.User) error
	TouchLastLogin(id string, at time.Time) error
	ActiveUserIDs() ([]string, error)
	TopByPoints(limit int) ([]*model.User, error)
	Delete(id string) error
}

type userRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(user *model.User) error {
	query := `INSERT INTO users (id, email, password_hash, full_name, username, phone, created_at, is_active, total_points, level, current_streak)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.db.Exec(query,
		user.ID,
		user.Email,
		user.PasswordHash,
		user.FullName,
		user.Username,
		user.Phone,
		user.CreatedAt,
		user.IsActive,
		user.TotalPoints,
		user.Level,
		user.CurrentStreak,
	)
	if err != nil {
		// Unique constraint wording differs between SQLite and PostgreSQL
		errStr := err.Error()
		if strings.Contains(errStr, "UNIQUE constraint failed") || strings.Contains(errStr, "duplicate key value") {
			return ErrDuplicateUser
		}
		return err
	}

	return nil
}

func (r *userRepository) ByID(id string) (*model.User, error) {
	user := &model.User{}
	query := `SELECT * FROM users WHERE id = $1`

	err := r.db.Get(user, query, id)
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}

	return user, err
}

func (r *userRepository) ByEmail(email string) (*model.User, error) {
	user := &model.User{}
	query := `SELECT * FROM users WHERE email = $1`

	err := r.db.Get(user, query, email)
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}

	return user, err
}

func (r *userRepository) ByUsername(username string) (*model.User, error) {
	user := &model.User{}
	query := `SELECT * FROM users WHERE username = $1`

	err := r.db.Get(user, query, username)
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}

	return user, err
}

func (r *userRepository) Update(user *model.User) error {
	query := `UPDATE users SET email = $1, password_hash = $2, full_name = $3, phone = $4, is_active = $5 WHERE id = $6`

	_, err := r.db.Exec(query, user.Email, user.PasswordHash, user.FullName, user.Phone, user.IsActive, user.ID)
	return err
}

func (r *userRepository) UpdateGamification(user *model.User) error {
	query := `UPDATE users
	          SET total_points = $1, level = $2, current_streak = $3, last_activity_date = $4
	          WHERE id = $5`

	result, err := r.db.Exec(query,
		user.TotalPoints,
		user.Level,
		user.CurrentStreak,
		user.LastActivityDate,
		user.ID,
	)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrUserNotFound
	}

	return nil
}

func (r *userRepository) TouchLastLogin(id string, at time.Time) error {
	query := `UPDATE users SET last_login = $1 WHERE id = $2`
	_, err := r.db.Exec(query, at, id)
	return err
}

func (r *userRepository) ActiveUserIDs() ([]string, error) {
	var ids []string
	query := `SELECT id FROM users WHERE is_active = TRUE`
	err := r.db.Select(&ids, query)
	return ids, err
}

func (r *userRepository) TopByPoints(limit int) ([]*model.User, error) {
	if limit <= 0 {
		limit = 10
	}

	var users []*model.User
	query := `SELECT * FROM users WHERE is_active = TRUE ORDER BY total_points DESC LIMIT $1`
	err := r.db.Select(&users, query, limit)
	if err != nil {
		return nil, err
	}

	return users, nil
}

func (r *userRepository) Delete(id string) error {
	query := `DELETE FROM users WHERE id = $1`

	result, err := r.db.Exec(query, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrUserNotFound
	}

	return nil
}
