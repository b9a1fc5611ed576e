package model

import (
	"time"
)

// Gamification levels, ordered by point threshold.
const (
	LevelBronze    = "Bronze"
	LevelSilver    = "Silver"
	LevelGold      = "Gold"
	LevelDiamond   = "Diamond"
	LevelLegendary = "Legendary"
)

type User struct {
	ID           string     `db:"id" json:"id"`
	Email        string     `db:"email" json:"email"`
	PasswordHash string     `db:"password_hash" json:"-"`
	FullName     string     `db:"full_name" json:"full_name"`
	Username     string     `db:"username" json:"username"`
	Phone        *string    `db:"phone" json:"phone,omitempty"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	LastLogin    *time.Time `db:"last_login" json:"last_login,omitempty"`
	IsActive     bool       `db:"is_active" json:"is_active"`

	// Gamification state
	TotalPoints      int        `db:"total_points" json:"total_points"`
	Level            string     `db:"level" json:"level"`
	CurrentStreak    int        `db:"current_streak" json:"current_streak"`
	LastActivityDate *time.Time `db:"last_activity_date" json:"last_activity_date,omitempty"`
}
