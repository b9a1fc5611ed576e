package model

import (
	"time"
)

const (
	NotificationTypeMilestone      = "milestone"
	NotificationTypeDeadline       = "deadline"
	NotificationTypeWeeklyUpdate   = "weekly_update"
	NotificationTypeRecommendation = "recommendation"
)

type Notification struct {
	ID        string    `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"user_id"`
	GoalID    *string   `db:"goal_id" json:"goal_id,omitempty"`
	Type      string    `db:"type" json:"type"`
	Title     string    `db:"title" json:"title"`
	Message   string    `db:"message" json:"message"`
	IsRead    bool      `db:"is_read" json:"is_read"`
	SentEmail bool      `db:"sent_email" json:"sent_email"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
